package payments

import (
	"context"
	"time"

	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	"github.com/epandurski/swpt-payments/internal/domain/outbox"
)

// abortOrder finalizes ord as failed (§4.2.2 step 3): releases every
// already-filled transfer slot with a zero-amount finalize, emits
// FailedPayment with errorCode, then persists the cleared, finalized
// row. Must run inside the caller's transaction, with ord already
// locked via GetForUpdate.
func (uc *UseCase) abortOrder(ctx context.Context, ord *domainorder.PostgreSQLModel, errorCode, message string) error {
	if ord.PaymentTransferID != nil {
		if err := uc.emitFinalize(ctx, ord, *ord.PaymentTransferID, 0, "primary"); err != nil {
			return err
		}
	}

	if ord.ReciprocalPaymentTransferID != nil {
		if err := uc.emitFinalize(ctx, ord, *ord.ReciprocalPaymentTransferID, 0, "reciprocal"); err != nil {
			return err
		}
	}

	if err := uc.emitFailedPayment(ctx, ord, errorCode, message); err != nil {
		return err
	}

	ord.Abort(time.Now().UTC())

	return uc.OrderRepo.Update(ctx, ord)
}

func (uc *UseCase) emitFinalize(ctx context.Context, ord *domainorder.PostgreSQLModel, transferID, committed int64, leg string) error {
	signal, err := outbox.NewSignal(outbox.SignalFinalizePreparedTransfer, ord.PayeeID, outbox.FinalizePreparedTransferPayload{
		CoordinatorID: ord.PayeeID,
		TransferID:    transferID,
		Committed:     committed,
		OfferID:       ord.OfferID,
		Leg:           leg,
	})
	if err != nil {
		return err
	}

	return uc.OutboxRepo.Insert(ctx, signal)
}

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
