package offers

import (
	"context"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	"github.com/epandurski/swpt-payments/internal/domain/document"
	"github.com/epandurski/swpt-payments/internal/domain/outbox"
	"github.com/epandurski/swpt-payments/internal/swptlog"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// CancelOffer withdraws a still-live offer (§4.1). Every non-finalized
// order against it is aborted with PAY004 before the offer row is
// removed, so no order is left pointing at a vanished offer.
func (uc *UseCase) CancelOffer(ctx context.Context, payeeID, offerID int64, offerSecret []byte) error {
	logger := swptlog.FromContext(ctx)
	tracer := telemetry.TracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "offers.cancel_offer")
	defer span.End()

	err := postgres.WithTx(ctx, uc.Conn, func(ctx context.Context) error {
		o, err := uc.OfferRepo.GetForUpdate(ctx, payeeID, offerID)
		if err != nil {
			return err
		}

		// An absent offer (or one canceled under a different secret) is a
		// no-op, not a failure (§4.1, §8) — there is no payer waiting on a
		// signal for a cancel_offer request, so nothing is retried here.
		if o == nil || !secretsMatch(o.OfferSecret, offerSecret) {
			return nil
		}

		orders, err := uc.OrderRepo.ListLiveByOffer(ctx, payeeID, offerID)
		if err != nil {
			return err
		}

		for _, ord := range orders {
			if err := uc.abortOrder(ctx, ord, "PAY004", "offer canceled by payee"); err != nil {
				return err
			}
		}

		if o.DescriptionDocID != nil {
			if err := uc.DocumentRepo.Delete(ctx, document.CollectionOfferDescription, *o.DescriptionDocID); err != nil {
				return err
			}
		}

		signal, err := outbox.NewSignal(outbox.SignalCanceledOffer, payeeID, outbox.CanceledOfferPayload{
			PayeeID: payeeID,
			OfferID: offerID,
		})
		if err != nil {
			return err
		}

		if err := uc.OutboxRepo.Insert(ctx, signal); err != nil {
			return err
		}

		return uc.OfferRepo.Delete(ctx, payeeID, offerID)
	})
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to cancel offer", err)
		logger.Errorf("failed to cancel offer %d for payee %d: %v", offerID, payeeID, err)

		return err
	}

	logger.Infof("canceled offer %d for payee %d", offerID, payeeID)

	return nil
}
