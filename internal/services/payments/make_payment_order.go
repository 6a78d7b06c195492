package payments

import (
	"context"
	"time"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	"github.com/epandurski/swpt-payments/internal/swptlog"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// MakePaymentOrderInput is the validated request shape for
// make_payment_order.
type MakePaymentOrderInput struct {
	PayeeID     int64
	OfferID     int64
	OfferSecret []byte
	PayerID     int64
	PayerSeqnum int64
	DebtorID    int64
	Amount      int64
	PayerNote   *string
}

// MakePaymentOrder creates a payment order against an offer and advances
// it through the first transition of the state machine (§4.2.2 step 1).
// Redelivery of the same four-tuple is a no-op.
func (uc *UseCase) MakePaymentOrder(ctx context.Context, in *MakePaymentOrderInput) error {
	logger := swptlog.FromContext(ctx)
	tracer := telemetry.TracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "payments.make_payment_order")
	defer span.End()

	err := postgres.WithTx(ctx, uc.Conn, func(ctx context.Context) error {
		existing, err := uc.OrderRepo.FindByKey(ctx, in.PayeeID, in.OfferID, in.PayerID, in.PayerSeqnum)
		if err != nil {
			return err
		}

		if existing != nil {
			return nil
		}

		o, err := uc.OfferRepo.GetForShare(ctx, in.PayeeID, in.OfferID)
		if err != nil {
			return err
		}

		if o == nil || !secretsMatch(o.OfferSecret, in.OfferSecret) {
			return uc.rejectBeforeCreation(ctx, in, "PAY001", "offer not found or wrong secret")
		}

		if !debtorAccepted(o.DebtorIDs, in.DebtorID) {
			return uc.rejectBeforeCreation(ctx, in, "PAY002", "debtor not in the offer's accepted routes")
		}

		if !routeMatches(o.DebtorIDs, o.DebtorAmounts, in.DebtorID, in.Amount) {
			return uc.rejectBeforeCreation(ctx, in, "PAY003", "amount does not match the route")
		}

		now := time.Now().UTC()

		proofSecret, err := generateProofSecret()
		if err != nil {
			return err
		}

		model := &domainorder.PostgreSQLModel{
			PayeeID:            in.PayeeID,
			OfferID:            in.OfferID,
			PayerID:            in.PayerID,
			PayerSeqnum:        in.PayerSeqnum,
			DebtorID:           in.DebtorID,
			Amount:             in.Amount,
			ReciprocalDebtorID: o.ReciprocalDebtorID,
			ReciprocalAmount:   o.ReciprocalAmount,
			PayerNote:          in.PayerNote,
			ProofSecret:        proofSecret,
			CreatedAtTS:        now,
		}

		if now.After(o.ValidUntilTS) {
			model.Abort(now)

			requestID, err := uc.OrderRepo.Create(ctx, model)
			if err != nil {
				return err
			}

			model.CoordinatorRequestID = requestID

			return uc.emitFailedPayment(ctx, model, "PAY006", "offer expired before order was accepted")
		}

		requestID, err := uc.OrderRepo.Create(ctx, model)
		if err != nil {
			return err
		}

		model.CoordinatorRequestID = requestID

		return uc.tryAdvance(ctx, model)
	})
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to make payment order", err)
		logger.Errorf("failed to make payment order for payee %d offer %d: %v", in.PayeeID, in.OfferID, err)

		return err
	}

	logger.Infof("made payment order payee=%d offer=%d payer=%d seqnum=%d", in.PayeeID, in.OfferID, in.PayerID, in.PayerSeqnum)

	return nil
}

// rejectBeforeCreation handles the three validation failures of §4.2.2
// step 1 that occur before any order row is ever inserted (§8 boundary:
// "no order persisted"). Per §4.2.6/§7 these are caller-visible business
// failures, not programmer errors: they are reported to the payer via a
// FailedPayment signal built from a minimal, never-persisted order model,
// and the transaction still commits.
func (uc *UseCase) rejectBeforeCreation(ctx context.Context, in *MakePaymentOrderInput, code, message string) error {
	model := &domainorder.PostgreSQLModel{
		PayeeID:     in.PayeeID,
		OfferID:     in.OfferID,
		PayerID:     in.PayerID,
		PayerSeqnum: in.PayerSeqnum,
	}

	return uc.emitFailedPayment(ctx, model, code, message)
}

func debtorAccepted(debtorIDs []int64, debtorID int64) bool {
	for _, id := range debtorIDs {
		if id == debtorID {
			return true
		}
	}

	return false
}

func sanitize(amount int64) int64 {
	if amount < 0 {
		return 0
	}

	return amount
}

func routeMatches(debtorIDs, debtorAmounts []int64, debtorID, amount int64) bool {
	for i, id := range debtorIDs {
		if id != debtorID {
			continue
		}

		var routeAmount int64

		if i < len(debtorAmounts) {
			routeAmount = debtorAmounts[i]
		}

		if sanitize(routeAmount) == sanitize(amount) {
			return true
		}
	}

	return false
}
