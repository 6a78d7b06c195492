// Package outbox is the Postgres-backed implementation of the outbound
// signal log (C2): rows inserted here in the same transaction as the
// state change that produced them, later drained by the relay.
package outbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	domainoutbox "github.com/epandurski/swpt-payments/internal/domain/outbox"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

type PostgreSQLRepository struct {
	connection *postgres.Connection
}

func NewPostgreSQLRepository(conn *postgres.Connection) *PostgreSQLRepository {
	r := &PostgreSQLRepository{connection: conn}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		panic("outbox: failed to connect database: " + err.Error())
	}

	return r
}

func (r *PostgreSQLRepository) Insert(ctx context.Context, s *domainoutbox.Signal) error {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.outbox.insert")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return err
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO outbox_signal (id, type, payee_id, payload, status, attempts, created_at_ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, string(s.Type), s.PayeeID, s.Payload, string(s.Status), s.Attempts, s.CreatedAtTS,
	)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to insert outbox signal", err)
		return err
	}

	return nil
}

func (r *PostgreSQLRepository) ListPending(ctx context.Context, limit int) ([]*domainoutbox.Signal, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.outbox.list_pending")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, type, payee_id, payload, status, attempts, created_at_ts
		FROM outbox_signal
		WHERE status IN ('PENDING', 'FAILED')
		ORDER BY created_at_ts
		LIMIT $1`, limit)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to query pending signals", err)
		return nil, err
	}
	defer rows.Close()

	var out []*domainoutbox.Signal

	for rows.Next() {
		var (
			s          domainoutbox.Signal
			typ, stat  string
		)

		if err := rows.Scan(&s.ID, &typ, &s.PayeeID, &s.Payload, &stat, &s.Attempts, &s.CreatedAtTS); err != nil {
			telemetry.HandleSpanError(&span, "failed to scan outbox signal", err)
			return nil, err
		}

		s.Type = domainoutbox.SignalType(typ)
		s.Status = domainoutbox.Status(stat)
		out = append(out, &s)
	}

	return out, rows.Err()
}

// predecessorsOf lists every status that may legally move to next,
// the inverse of domainoutbox.ValidTransitions.
func predecessorsOf(next domainoutbox.Status) []string {
	var preds []string

	for from, tos := range domainoutbox.ValidTransitions {
		for _, to := range tos {
			if to == next {
				preds = append(preds, string(from))
			}
		}
	}

	return preds
}

func (r *PostgreSQLRepository) MarkStatus(ctx context.Context, id uuid.UUID, next domainoutbox.Status) error {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "postgres.outbox.mark_status")
	defer span.End()

	q, err := postgres.QuerierFromContext(ctx, r.connection)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get database connection", err)
		return err
	}

	preds := predecessorsOf(next)
	if len(preds) == 0 {
		return fmt.Errorf("outbox: %q has no valid predecessor status", next)
	}

	placeholders := make([]string, len(preds))
	args := make([]any, 0, len(preds)+2)
	args = append(args, string(next), id)

	for i, p := range preds {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, p)
	}

	query := fmt.Sprintf(`
		UPDATE outbox_signal
		SET status = $1, attempts = attempts + CASE WHEN $1 = 'PROCESSING' THEN 1 ELSE 0 END
		WHERE id = $2 AND status IN (%s)`, strings.Join(placeholders, ", "))

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to update outbox signal status", err)
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return fmt.Errorf("outbox: signal %s not found or not eligible to transition to %q", id, next)
	}

	return nil
}
