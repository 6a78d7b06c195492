package offers

import (
	"context"
	"time"

	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	"github.com/epandurski/swpt-payments/internal/domain/outbox"
)

// abortOrder finalizes ord as failed and emits FailedPayment, inside the
// caller's transaction. Shared by cancel_offer (sibling orders losing
// their offer) and anywhere else the registry needs to fail an order
// outright rather than hand it off to the payment order engine.
func (uc *UseCase) abortOrder(ctx context.Context, ord *domainorder.PostgreSQLModel, errorCode, message string) error {
	ord.Abort(time.Now().UTC())

	if err := uc.OrderRepo.Update(ctx, ord); err != nil {
		return err
	}

	return uc.emitFailedPayment(ctx, ord, errorCode, message)
}

// emitFailedPayment writes a FailedPayment signal for ord.
func (uc *UseCase) emitFailedPayment(ctx context.Context, ord *domainorder.PostgreSQLModel, errorCode, message string) error {
	signal, err := outbox.NewSignal(outbox.SignalFailedPayment, ord.PayeeID, outbox.FailedPaymentPayload{
		PayeeID:     ord.PayeeID,
		OfferID:     ord.OfferID,
		PayerID:     ord.PayerID,
		PayerSeqnum: ord.PayerSeqnum,
		Details: outbox.FailedPaymentDetails{
			ErrorCode: errorCode,
			Message:   message,
		},
	})
	if err != nil {
		return err
	}

	return uc.OutboxRepo.Insert(ctx, signal)
}
