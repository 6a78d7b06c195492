// Package paymentorder is the Postgres-backed implementation of the
// payment order engine's Repository interface.
package paymentorder

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// PostgreSQLRepository is the Postgres-specific implementation of
// paymentorder.Repository.
type PostgreSQLRepository struct {
	connection *postgres.Connection
	tableName  string
}

func NewPostgreSQLRepository(conn *postgres.Connection) *PostgreSQLRepository {
	r := &PostgreSQLRepository{connection: conn, tableName: "payment_order"}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		panic("paymentorder: failed to connect database: " + err.Error())
	}

	return r
}

const orderColumns = `payee_id, offer_id, payer_id, payer_seqnum, coordinator_request_id,
	debtor_id, amount, reciprocal_debtor_id, reciprocal_amount,
	payer_note, proof_secret, payment_transfer_id, reciprocal_payment_transfer_id,
	finalized_at_ts, success, created_at_ts`

func scanOrder(row interface{ Scan(...any) error }) (*domainorder.PostgreSQLModel, error) {
	var m domainorder.PostgreSQLModel

	if err := row.Scan(
		&m.PayeeID, &m.OfferID, &m.PayerID, &m.PayerSeqnum, &m.CoordinatorRequestID,
		&m.DebtorID, &m.Amount, &m.ReciprocalDebtorID, &m.ReciprocalAmount,
		&m.PayerNote, &m.ProofSecret, &m.PaymentTransferID, &m.ReciprocalPaymentTransferID,
		&m.FinalizedAtTS, &m.Success, &m.CreatedAtTS,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &m, nil
}

// Create allocates coordinator_request_id from the global
// coordinator_request_id_seq (§4.2.1) and inserts the order.
func (r *PostgreSQLRepository) Create(ctx context.Context, m *domainorder.PostgreSQLModel) (int64, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.paymentorder.create")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return 0, err
	}

	var requestID int64
	if err := q.QueryRowContext(ctx, `SELECT nextval('coordinator_request_id_seq')`).Scan(&requestID); err != nil {
		telemetry.HandleSpanError(&span, "failed to allocate coordinator_request_id", err)
		return 0, err
	}

	m.CoordinatorRequestID = requestID

	_, err = q.ExecContext(ctx, `
		INSERT INTO payment_order (
			payee_id, offer_id, payer_id, payer_seqnum, coordinator_request_id,
			debtor_id, amount, reciprocal_debtor_id, reciprocal_amount,
			payer_note, proof_secret, payment_transfer_id, reciprocal_payment_transfer_id,
			finalized_at_ts, success, created_at_ts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		m.PayeeID, m.OfferID, m.PayerID, m.PayerSeqnum, m.CoordinatorRequestID,
		m.DebtorID, m.Amount, m.ReciprocalDebtorID, m.ReciprocalAmount,
		m.PayerNote, m.ProofSecret, m.PaymentTransferID, m.ReciprocalPaymentTransferID,
		m.FinalizedAtTS, m.Success, m.CreatedAtTS,
	)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to insert payment order", err)
		return 0, postgres.TranslatePGError(err, "PaymentOrder")
	}

	return requestID, nil
}

func (r *PostgreSQLRepository) FindByKey(ctx context.Context, payeeID, offerID, payerID, payerSeqnum int64) (*domainorder.PostgreSQLModel, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.paymentorder.find_by_key")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return nil, err
	}

	row := q.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM payment_order
		WHERE payee_id = $1 AND offer_id = $2 AND payer_id = $3 AND payer_seqnum = $4`,
		payeeID, offerID, payerID, payerSeqnum)

	m, err := scanOrder(row)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to scan payment order", err)
		return nil, err
	}

	return m, nil
}

// GetForUpdate locates an order by (payeeID, |requestID|) under an
// exclusive lock.
func (r *PostgreSQLRepository) GetForUpdate(ctx context.Context, payeeID, requestID int64) (*domainorder.PostgreSQLModel, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.paymentorder.get_for_update")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return nil, err
	}

	absID := requestID
	if absID < 0 {
		absID = -absID
	}

	row := q.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM payment_order
		WHERE payee_id = $1 AND coordinator_request_id = $2 FOR UPDATE`, payeeID, absID)

	m, err := scanOrder(row)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to scan payment order", err)
		return nil, err
	}

	return m, nil
}

func (r *PostgreSQLRepository) ListLiveByOffer(ctx context.Context, payeeID, offerID int64) ([]*domainorder.PostgreSQLModel, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.paymentorder.list_live_by_offer")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return nil, err
	}

	query, args, err := squirrel.Select(orderColumns).
		From(r.tableName).
		Where(squirrel.Eq{"payee_id": payeeID, "offer_id": offerID}).
		Where(squirrel.Eq{"finalized_at_ts": nil}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to build query", err)
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to query live orders", err)
		return nil, err
	}
	defer rows.Close()

	var out []*domainorder.PostgreSQLModel

	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			telemetry.HandleSpanError(&span, "failed to scan payment order", err)
			return nil, err
		}

		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *PostgreSQLRepository) Update(ctx context.Context, m *domainorder.PostgreSQLModel) error {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.paymentorder.update")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return err
	}

	_, err = q.ExecContext(ctx, `
		UPDATE payment_order SET
			payer_note = $1, proof_secret = $2,
			payment_transfer_id = $3, reciprocal_payment_transfer_id = $4,
			finalized_at_ts = $5, success = $6
		WHERE payee_id = $7 AND coordinator_request_id = $8`,
		m.PayerNote, m.ProofSecret, m.PaymentTransferID, m.ReciprocalPaymentTransferID,
		m.FinalizedAtTS, m.Success, m.PayeeID, m.CoordinatorRequestID,
	)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to update payment order", err)
		return err
	}

	return nil
}

func (r *PostgreSQLRepository) ListFinalizedBefore(ctx context.Context, cutoff int64, limit int) ([]*domainorder.PostgreSQLModel, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.paymentorder.list_finalized_before")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return nil, err
	}

	query, args, err := squirrel.Select(orderColumns).
		From(r.tableName).
		Where(squirrel.LtOrEq{"finalized_at_ts": time.Unix(cutoff, 0).UTC()}).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to build query", err)
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to query finalized orders", err)
		return nil, err
	}
	defer rows.Close()

	var out []*domainorder.PostgreSQLModel

	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			telemetry.HandleSpanError(&span, "failed to scan payment order", err)
			return nil, err
		}

		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *PostgreSQLRepository) DeleteBatch(ctx context.Context, keys []domainorder.OrderKey) (int64, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.paymentorder.delete_batch")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return 0, err
	}

	var total int64

	for _, k := range keys {
		res, err := q.ExecContext(ctx, `DELETE FROM payment_order
			WHERE payee_id = $1 AND offer_id = $2 AND payer_id = $3 AND payer_seqnum = $4`,
			k.PayeeID, k.OfferID, k.PayerID, k.PayerSeqnum)
		if err != nil {
			telemetry.HandleSpanError(&span, "failed to delete payment order", err)
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
