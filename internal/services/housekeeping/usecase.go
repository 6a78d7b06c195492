// Package housekeeping implements C6: bulk deletion of finalized payment
// orders and old payment proofs past an age cutoff. Both operations are
// idempotent and never touch live orders or existing offers (§4.4).
package housekeeping

import (
	"context"
	"time"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	"github.com/epandurski/swpt-payments/internal/domain/document"
	"github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	"github.com/epandurski/swpt-payments/internal/domain/paymentproof"
	"github.com/epandurski/swpt-payments/internal/swptlog"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// batchSize bounds how many rows a single flush transaction touches, so
// a large backlog doesn't hold locks for an unbounded time.
const batchSize = 500

// UseCase aggregates the repositories housekeeping needs.
type UseCase struct {
	Conn *postgres.Connection

	OrderRepo    paymentorder.Repository
	ProofRepo    paymentproof.Repository
	DocumentRepo document.Repository
}

// FlushOrders deletes PaymentOrders finalized at or before cutoff,
// returning the count deleted.
func (uc *UseCase) FlushOrders(ctx context.Context, cutoff time.Time) (int64, error) {
	logger := swptlog.FromContext(ctx)
	tracer := telemetry.TracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "housekeeping.flush_orders")
	defer span.End()

	var total int64

	for {
		rows, err := uc.OrderRepo.ListFinalizedBefore(ctx, cutoff.Unix(), batchSize)
		if err != nil {
			telemetry.HandleSpanError(&span, "failed to list finalized orders", err)
			return total, err
		}

		if len(rows) == 0 {
			break
		}

		keys := make([]paymentorder.OrderKey, 0, len(rows))
		for _, r := range rows {
			keys = append(keys, paymentorder.OrderKey{
				PayeeID:     r.PayeeID,
				OfferID:     r.OfferID,
				PayerID:     r.PayerID,
				PayerSeqnum: r.PayerSeqnum,
			})
		}

		n, err := uc.OrderRepo.DeleteBatch(ctx, keys)
		if err != nil {
			telemetry.HandleSpanError(&span, "failed to delete finalized orders", err)
			return total, err
		}

		total += n

		if len(rows) < batchSize {
			break
		}
	}

	logger.Infof("housekeeping flushed %d payment orders finalized at or before %s", total, cutoff)

	return total, nil
}

// FlushProofs deletes PaymentProofs paid at or before cutoff, along with
// the offer-description documents they snapshot, returning the count
// of proofs deleted.
func (uc *UseCase) FlushProofs(ctx context.Context, cutoff time.Time) (int64, error) {
	logger := swptlog.FromContext(ctx)
	tracer := telemetry.TracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "housekeeping.flush_proofs")
	defer span.End()

	var total int64

	for {
		rows, err := uc.ProofRepo.ListOlderThan(ctx, cutoff.Unix(), batchSize)
		if err != nil {
			telemetry.HandleSpanError(&span, "failed to list old proofs", err)
			return total, err
		}

		if len(rows) == 0 {
			break
		}

		keys := make([]paymentproof.ProofKey, 0, len(rows))

		for _, r := range rows {
			keys = append(keys, paymentproof.ProofKey{PayeeID: r.PayeeID, ProofID: r.ProofID})

			if r.OfferDescriptionDocID != nil {
				if err := uc.DocumentRepo.Delete(ctx, document.CollectionOfferDescription, *r.OfferDescriptionDocID); err != nil {
					telemetry.HandleSpanError(&span, "failed to delete proof description document", err)
					return total, err
				}
			}
		}

		n, err := uc.ProofRepo.DeleteBatch(ctx, keys)
		if err != nil {
			telemetry.HandleSpanError(&span, "failed to delete old proofs", err)
			return total, err
		}

		total += n

		if len(rows) < batchSize {
			break
		}
	}

	logger.Infof("housekeeping flushed %d payment proofs paid at or before %s", total, cutoff)

	return total, nil
}
