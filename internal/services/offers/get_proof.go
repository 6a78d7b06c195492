package offers

import (
	"context"

	"github.com/epandurski/swpt-payments/internal/domain/coordinatorerr"
	"github.com/epandurski/swpt-payments/internal/domain/document"
	domainproof "github.com/epandurski/swpt-payments/internal/domain/paymentproof"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// GetProof returns the payment proof identified by (payeeID, proofID)
// once proofSecret checks out, the receipt side of the same
// not-found-or-wrong-secret pattern as GetOffer.
func (uc *UseCase) GetProof(ctx context.Context, payeeID, proofID int64, proofSecret []byte) (*domainproof.PaymentProof, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "offers.get_proof")
	defer span.End()

	m, err := uc.ProofRepo.Get(ctx, payeeID, proofID)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to fetch payment proof", err)
		return nil, err
	}

	if m == nil || !secretsMatch(m.ProofSecret, proofSecret) {
		return nil, coordinatorerr.ValidateBusinessError(coordinatorerr.ErrProofNotFound, "PaymentProof")
	}

	var description map[string]any

	if m.OfferDescriptionDocID != nil {
		doc, err := uc.DocumentRepo.FindByEntity(ctx, document.CollectionOfferDescription, *m.OfferDescriptionDocID)
		if err != nil {
			telemetry.HandleSpanError(&span, "failed to fetch offer description", err)
			return nil, err
		}

		if doc != nil {
			description = doc.Data
		}
	}

	return m.ToEntity(description), nil
}
