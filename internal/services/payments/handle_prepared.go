package payments

import (
	"context"
	"fmt"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	"github.com/epandurski/swpt-payments/internal/swptlog"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// ErrMismatchedPreparedTransfer is returned when a prepared transfer
// that did pass dispatch carries a (debtor, amount, sender, recipient)
// that doesn't match the leg its request_id identifies. This should
// never happen for a signal the accounts service prepared against our
// own PrepareTransfer request, so it is a programmer-detected invariant
// violation (§7): the caller should nack/escalate it rather than treat
// it as a business rejection.
var ErrMismatchedPreparedTransfer = fmt.Errorf("payments: prepared transfer does not match the expected leg")

// PreparedTransfer is the accounts service's confirmation that a
// transfer has been locked, dispatched to us by the router (C5).
type PreparedTransfer struct {
	CoordinatorID int64
	RequestID     int64
	DebtorID      int64
	SenderID      int64
	RecipientID   int64
	TransferID    int64
	LockedAmount  int64
}

// HandlePrepared implements §4.2.3. Redelivery of the same transfer_id
// into an already-filled slot is a no-op; a prepared transfer that can't
// be matched to a live, unfilled slot is released with a zero-amount
// finalize rather than left locked forever.
func (uc *UseCase) HandlePrepared(ctx context.Context, in *PreparedTransfer) error {
	logger := swptlog.FromContext(ctx)
	tracer := telemetry.TracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "payments.handle_prepared")
	defer span.End()

	if uc.Dedup != nil && uc.Dedup.SeenBefore(ctx, in.CoordinatorID, in.RequestID, in.TransferID) {
		logger.Infof("dropping redelivered prepared transfer payee=%d request=%d transfer=%d", in.CoordinatorID, in.RequestID, in.TransferID)
		return nil
	}

	err := postgres.WithTx(ctx, uc.Conn, func(ctx context.Context) error {
		ord, err := uc.OrderRepo.GetForUpdate(ctx, in.CoordinatorID, in.RequestID)
		if err != nil {
			return err
		}

		primary := in.RequestID > 0

		if ord == nil || ord.Finalized() {
			return uc.release(ctx, in)
		}

		if primary {
			if ord.PaymentTransferID != nil {
				if *ord.PaymentTransferID == in.TransferID {
					return nil
				}

				return uc.release(ctx, in)
			}

			if !legMatches(in, ord.DebtorID, ord.PayerID, ord.PayeeID, ord.Amount) {
				return ErrMismatchedPreparedTransfer
			}

			ord.PaymentTransferID = &in.TransferID
		} else {
			if ord.ReciprocalPaymentTransferID != nil {
				if *ord.ReciprocalPaymentTransferID == in.TransferID {
					return nil
				}

				return uc.release(ctx, in)
			}

			if ord.ReciprocalDebtorID == nil || !legMatches(in, *ord.ReciprocalDebtorID, ord.PayeeID, ord.PayerID, ord.ReciprocalAmount) {
				return ErrMismatchedPreparedTransfer
			}

			ord.ReciprocalPaymentTransferID = &in.TransferID
		}

		if err := uc.OrderRepo.Update(ctx, ord); err != nil {
			return err
		}

		return uc.tryAdvance(ctx, ord)
	})
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to handle prepared transfer", err)
		logger.Errorf("failed to handle prepared transfer payee=%d request=%d: %v", in.CoordinatorID, in.RequestID, err)

		return err
	}

	return nil
}

// legMatches reports whether the inbound prepared transfer's
// (debtor, sender, recipient, amount) match the expected leg (§4.2.3).
func legMatches(in *PreparedTransfer, debtorID, senderID, recipientID, amount int64) bool {
	return in.DebtorID == debtorID &&
		in.SenderID == senderID &&
		in.RecipientID == recipientID &&
		in.LockedAmount == amount
}

// release emits a zero-amount finalize for a prepared transfer that
// arrived with no matching live slot to fill (order gone, already
// finalized, or slot already holds a different transfer_id).
func (uc *UseCase) release(ctx context.Context, in *PreparedTransfer) error {
	return uc.emitFinalize(ctx, &domainorder.PostgreSQLModel{PayeeID: in.CoordinatorID, OfferID: 0}, in.TransferID, 0, "")
}
