// Package offer is the Postgres-backed implementation of the offer
// registry's Repository interface.
package offer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	domainoffer "github.com/epandurski/swpt-payments/internal/domain/offer"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// PostgreSQLRepository is the Postgres-specific implementation of
// offer.Repository. Every method resolves its querier from context via
// postgres.QuerierFromContext, so callers that wrap several repository
// calls in postgres.WithTx get one transaction across all of them.
type PostgreSQLRepository struct {
	connection *postgres.Connection
	tableName  string
}

// NewPostgreSQLRepository returns a new offer repository bound to conn,
// panicking if the connection cannot be established — mirroring the
// teacher's fail-fast repository constructors.
func NewPostgreSQLRepository(conn *postgres.Connection) *PostgreSQLRepository {
	r := &PostgreSQLRepository{connection: conn, tableName: "offer"}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		panic("offer: failed to connect database: " + err.Error())
	}

	return r
}

// Create allocates the next offer_id from the payee's counter and
// inserts the offer row.
func (r *PostgreSQLRepository) Create(ctx context.Context, m *domainoffer.PostgreSQLModel) (int64, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.offer.create")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return 0, err
	}

	var offerID int64

	row := q.QueryRowContext(ctx, `
		INSERT INTO offer_counters (payee_id, next_offer_id)
		VALUES ($1, 1)
		ON CONFLICT (payee_id) DO UPDATE SET next_offer_id = offer_counters.next_offer_id + 1
		RETURNING next_offer_id - 1`, m.PayeeID)
	if err := row.Scan(&offerID); err != nil {
		telemetry.HandleSpanError(&span, "failed to allocate offer id", err)
		return 0, err
	}

	m.OfferID = offerID

	_, err = q.ExecContext(ctx, `
		INSERT INTO offer (
			payee_id, offer_id, offer_secret, debtor_ids, debtor_amounts,
			valid_until_ts, created_at_ts, reciprocal_debtor_id,
			reciprocal_amount, description_doc_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.PayeeID, m.OfferID, m.OfferSecret, postgres.FormatBigintArray(m.DebtorIDs), postgres.FormatBigintArray(m.DebtorAmounts),
		m.ValidUntilTS, m.CreatedAtTS, m.ReciprocalDebtorID, m.ReciprocalAmount, m.DescriptionDocID,
	)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to insert offer", err)
		return 0, postgres.TranslatePGError(err, "Offer")
	}

	return offerID, nil
}

func (r *PostgreSQLRepository) getWithLock(ctx context.Context, payeeID, offerID int64, lockClause string) (*domainoffer.PostgreSQLModel, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.offer.get")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return nil, err
	}

	query, args, err := squirrel.Select("payee_id, offer_id, offer_secret, debtor_ids, debtor_amounts, "+
		"valid_until_ts, created_at_ts, reciprocal_debtor_id, reciprocal_amount, description_doc_id").
		From(r.tableName).
		Where(squirrel.Eq{"payee_id": payeeID, "offer_id": offerID}).
		Suffix(lockClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to build query", err)
		return nil, err
	}

	var m domainoffer.PostgreSQLModel

	row := q.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&m.PayeeID, &m.OfferID, &m.OfferSecret,
		postgres.BigintArrayScanner{Dest: &m.DebtorIDs}, postgres.BigintArrayScanner{Dest: &m.DebtorAmounts},
		&m.ValidUntilTS, &m.CreatedAtTS, &m.ReciprocalDebtorID, &m.ReciprocalAmount, &m.DescriptionDocID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		telemetry.HandleSpanError(&span, "failed to scan offer row", err)
		return nil, err
	}

	return &m, nil
}

// GetForShare returns the offer under a shared lock, used by
// make_payment_order while validating a route against it.
func (r *PostgreSQLRepository) GetForShare(ctx context.Context, payeeID, offerID int64) (*domainoffer.PostgreSQLModel, error) {
	return r.getWithLock(ctx, payeeID, offerID, "FOR SHARE")
}

// GetForUpdate returns the offer under an exclusive lock, used by
// cancel_offer and the commit path.
func (r *PostgreSQLRepository) GetForUpdate(ctx context.Context, payeeID, offerID int64) (*domainoffer.PostgreSQLModel, error) {
	return r.getWithLock(ctx, payeeID, offerID, "FOR UPDATE")
}

// Get returns the offer with no lock, used by the read-only HTTP surface.
func (r *PostgreSQLRepository) Get(ctx context.Context, payeeID, offerID int64) (*domainoffer.PostgreSQLModel, error) {
	return r.getWithLock(ctx, payeeID, offerID, "")
}

// Delete removes the offer row. Callers must already hold the exclusive
// lock acquired via GetForUpdate in the same transaction.
func (r *PostgreSQLRepository) Delete(ctx context.Context, payeeID, offerID int64) error {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.offer.delete")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return err
	}

	_, err = q.ExecContext(ctx, `DELETE FROM offer WHERE payee_id = $1 AND offer_id = $2`, payeeID, offerID)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to delete offer", err)
		return err
	}

	return nil
}
