package offers

import (
	"context"

	"github.com/epandurski/swpt-payments/internal/domain/coordinatorerr"
	"github.com/epandurski/swpt-payments/internal/domain/document"
	domainoffer "github.com/epandurski/swpt-payments/internal/domain/offer"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// GetOffer returns the offer identified by (payeeID, offerID) once
// offerSecret checks out. A wrong secret and a missing offer look
// identical to the caller — both map to PAY001 — so a brute-force
// attempt can't distinguish "no such offer" from "wrong secret" (§4.1).
func (uc *UseCase) GetOffer(ctx context.Context, payeeID, offerID int64, offerSecret []byte) (*domainoffer.Offer, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "offers.get_offer")
	defer span.End()

	m, err := uc.OfferRepo.Get(ctx, payeeID, offerID)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to fetch offer", err)
		return nil, err
	}

	if m == nil || !secretsMatch(m.OfferSecret, offerSecret) {
		return nil, coordinatorerr.ValidateBusinessError(coordinatorerr.ErrOfferNotFound, "Offer")
	}

	var description map[string]any

	if m.DescriptionDocID != nil {
		doc, err := uc.DocumentRepo.FindByEntity(ctx, document.CollectionOfferDescription, *m.DescriptionDocID)
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
