package payments

import (
	"context"

	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	"github.com/epandurski/swpt-payments/internal/domain/outbox"
)

// tryAdvance moves ord one step along the state machine (§4.2.2 step 2).
// Called right after creation and again after every prepared-slot fill.
// ord must already be locked via GetForUpdate in the caller's transaction.
func (uc *UseCase) tryAdvance(ctx context.Context, ord *domainorder.PostgreSQLModel) error {
	switch ord.CurrentState() {
	case domainorder.StateLiveNeedsPrimary:
		return uc.emitPrepare(ctx, ord, ord.PrimaryRequestID(), ord.PayerID, ord.PayeeID, ord.DebtorID, ord.Amount)

	case domainorder.StateLiveNeedsReciprocal:
		return uc.emitPrepare(ctx, ord, ord.ReciprocalRequestID(), ord.PayeeID, ord.PayerID, *ord.ReciprocalDebtorID, ord.ReciprocalAmount)

	case domainorder.StateLiveReadyToCommit:
		return uc.commit(ctx, ord)

	default:
		return nil
	}
}

func (uc *UseCase) emitPrepare(ctx context.Context, ord *domainorder.PostgreSQLModel, requestID, sender, recipient, debtorID, amount int64) error {
	signal, err := outbox.NewSignal(outbox.SignalPrepareTransfer, ord.PayeeID, outbox.PrepareTransferPayload{
		CoordinatorID:        ord.PayeeID,
		CoordinatorRequestID: requestID,
		Sender:               sender,
		Recipient:            recipient,
		DebtorID:             debtorID,
		Amount:               amount,
	})
	if err != nil {
		return err
	}

	return uc.OutboxRepo.Insert(ctx, signal)
}
