package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/epandurski/swpt-payments/internal/domain/document"
	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	domainproof "github.com/epandurski/swpt-payments/internal/domain/paymentproof"
	"github.com/epandurski/swpt-payments/internal/domain/outbox"
)

// commit runs §4.2.4 once both required legs of ord are prepared. ord
// must already be locked via GetForUpdate in the caller's transaction.
func (uc *UseCase) commit(ctx context.Context, ord *domainorder.PostgreSQLModel) error {
	o, err := uc.OfferRepo.GetForUpdate(ctx, ord.PayeeID, ord.OfferID)
	if err != nil {
		return err
	}

	if o == nil {
		// The offer vanished between try-advance and commit — the cancel
		// path (§5) guarantees this can't happen while the order is
		// live, but a defensive abort keeps commit total.
		return uc.abortOrder(ctx, ord, "PAY004", "offer canceled by payee while order was live")
	}

	// A zero-amount leg never went through PrepareTransfer (§8 boundary),
	// so there is nothing to finalize for it.
	if ord.PaymentTransferID != nil {
		if err := uc.emitFinalize(ctx, ord, *ord.PaymentTransferID, ord.Amount, "primary"); err != nil {
			return err
		}
	}

	if ord.ReciprocalPaymentTransferID != nil {
		if err := uc.emitFinalize(ctx, ord, *ord.ReciprocalPaymentTransferID, ord.ReciprocalAmount, "reciprocal"); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	proofSecret, payerNote := ord.ProofSecret, ord.PayerNote

	ord.Commit(now)

	if err := uc.OrderRepo.Update(ctx, ord); err != nil {
		return err
	}

	siblings, err := uc.OrderRepo.ListLiveByOffer(ctx, ord.PayeeID, ord.OfferID)
	if err != nil {
		return err
	}

	for _, sib := range siblings {
		if sib.PayerID == ord.PayerID && sib.PayerSeqnum == ord.PayerSeqnum {
			continue
		}

		if err := uc.abortOrder(ctx, sib, "PAY004", "offer paid by another order"); err != nil {
			return err
		}
	}

	var description map[string]any

	if o.DescriptionDocID != nil {
		doc, err := uc.DocumentRepo.FindByEntity(ctx, document.CollectionOfferDescription, *o.DescriptionDocID)
		if err != nil {
			return err
		}

		if doc != nil {
			description = doc.Data
		}
	}

	proof := &domainproof.PostgreSQLModel{
		PayeeID:            ord.PayeeID,
		ProofSecret:        proofSecret,
		PayerID:            ord.PayerID,
		DebtorID:           ord.DebtorID,
		Amount:             ord.Amount,
		PayerNote:          payerNote,
		ReciprocalDebtorID: ord.ReciprocalDebtorID,
		ReciprocalAmount:   ord.ReciprocalAmount,
		PaidAtTS:           now,
		OfferID:            o.OfferID,
		OfferCreatedAtTS:   o.CreatedAtTS,
	}

	if description != nil {
		docID := uuid.New().String()
		proof.OfferDescriptionDocID = &docID

		if err := uc.DocumentRepo.Create(ctx, document.CollectionOfferDescription, &document.Document{
			EntityID: docID,
			Data:     description,
		}); err != nil {
			return err
		}
	}

	proofID, err := uc.ProofRepo.Create(ctx, proof)
	if err != nil {
		return err
	}

	signal, err := outbox.NewSignal(outbox.SignalSuccessfulPayment, ord.PayeeID, outbox.SuccessfulPaymentPayload{
		PayeeID: ord.PayeeID,
		ProofID: proofID,
	})
	if err != nil {
		return err
	}

	if err := uc.OutboxRepo.Insert(ctx, signal); err != nil {
		return err
	}

	return uc.OfferRepo.Delete(ctx, o.PayeeID, o.OfferID)
}
