// Package paymentproof is the Postgres-backed implementation of the
// payment proof Repository interface.
package paymentproof

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	domainproof "github.com/epandurski/swpt-payments/internal/domain/paymentproof"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

type PostgreSQLRepository struct {
	connection *postgres.Connection
	tableName  string
}

func NewPostgreSQLRepository(conn *postgres.Connection) *PostgreSQLRepository {
	r := &PostgreSQLRepository{connection: conn, tableName: "payment_proof"}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		panic("paymentproof: failed to connect database: " + err.Error())
	}

	return r
}

const proofColumns = `payee_id, proof_id, proof_secret, payer_id, debtor_id, amount,
	payer_note, reciprocal_debtor_id, reciprocal_amount, paid_at_ts,
	offer_id, offer_created_at_ts, offer_description_doc_id`

func scanProof(row interface{ Scan(...any) error }) (*domainproof.PostgreSQLModel, error) {
	var m domainproof.PostgreSQLModel

	if err := row.Scan(
		&m.PayeeID, &m.ProofID, &m.ProofSecret, &m.PayerID, &m.DebtorID, &m.Amount,
		&m.PayerNote, &m.ReciprocalDebtorID, &m.ReciprocalAmount, &m.PaidAtTS,
		&m.OfferID, &m.OfferCreatedAtTS, &m.OfferDescriptionDocID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &m, nil
}

// Create allocates proof_id from the payee's proof counter and inserts
// the proof row, in the same transaction as the order's finalization
// and the offer's deletion (§4.2.4).
func (r *PostgreSQLRepository) Create(ctx context.Context, m *domainproof.PostgreSQLModel) (int64, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.paymentproof.create")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return 0, err
	}

	var proofID int64

	row := q.QueryRowContext(ctx, `
		INSERT INTO proof_counters (payee_id, next_proof_id)
		VALUES ($1, 1)
		ON CONFLICT (payee_id) DO UPDATE SET next_proof_id = proof_counters.next_proof_id + 1
		RETURNING next_proof_id - 1`, m.PayeeID)
	if err := row.Scan(&proofID); err != nil {
		telemetry.HandleSpanError(&span, "failed to allocate proof id", err)
		return 0, err
	}

	m.ProofID = proofID

	_, err = q.ExecContext(ctx, `
		INSERT INTO payment_proof (
			payee_id, proof_id, proof_secret, payer_id, debtor_id, amount,
			payer_note, reciprocal_debtor_id, reciprocal_amount, paid_at_ts,
			offer_id, offer_created_at_ts, offer_description_doc_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.PayeeID, m.ProofID, m.ProofSecret, m.PayerID, m.DebtorID, m.Amount,
		m.PayerNote, m.ReciprocalDebtorID, m.ReciprocalAmount, m.PaidAtTS,
		m.OfferID, m.OfferCreatedAtTS, m.OfferDescriptionDocID,
	)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to insert payment proof", err)
		return 0, postgres.TranslatePGError(err, "PaymentProof")
	}

	return proofID, nil
}

func (r *PostgreSQLRepository) Get(ctx context.Context, payeeID, proofID int64) (*domainproof.PostgreSQLModel, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.paymentproof.get")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return nil, err
	}

	row := q.QueryRowContext(ctx, `SELECT `+proofColumns+` FROM payment_proof WHERE payee_id = $1 AND proof_id = $2`, payeeID, proofID)

	m, err := scanProof(row)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to scan payment proof", err)
		return nil, err
	}

	return m, nil
}

func (r *PostgreSQLRepository) ListOlderThan(ctx context.Context, cutoff int64, limit int) ([]*domainproof.PostgreSQLModel, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.paymentproof.list_older_than")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return nil, err
	}

	query, args, err := squirrel.Select(proofColumns).
		From(r.tableName).
		Where(squirrel.LtOrEq{"paid_at_ts": time.Unix(cutoff, 0).UTC()}).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to build query", err)
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to query old proofs", err)
		return nil, err
	}
	defer rows.Close()

	var out []*domainproof.PostgreSQLModel

	for rows.Next() {
		m, err := scanProof(rows)
		if err != nil {
			telemetry.HandleSpanError(&span, "failed to scan payment proof", err)
			return nil, err
		}

		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *PostgreSQLRepository) DeleteBatch(ctx context.Context, keys []domainproof.ProofKey) (int64, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.paymentproof.delete_batch")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return 0, err
	}

	var total int64

	for _, k := range keys {
		res, err := q.ExecContext(ctx, `DELETE FROM payment_proof WHERE payee_id = $1 AND proof_id = $2`, k.PayeeID, k.ProofID)
		if err != nil {
			telemetry.HandleSpanError(&span, "failed to delete payment proof", err)
			return total, err
		}

		n, err := res.RowsAffected()
		if err != nil {
			telemetry.HandleSpanError(&span, "failed to read rows affected", err)
			return total, err
		}

		total += n
	}

	return total, nil
}
