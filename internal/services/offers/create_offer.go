package offers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	"github.com/epandurski/swpt-payments/internal/domain/document"
	domainoffer "github.com/epandurski/swpt-payments/internal/domain/offer"
	"github.com/epandurski/swpt-payments/internal/domain/outbox"
	"github.com/epandurski/swpt-payments/internal/swptlog"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

var (
	ErrRouteLengthMismatch = errors.New("offers: len(debtor_ids) must equal len(debtor_amounts)")
	ErrReciprocalInvalid   = errors.New("offers: reciprocal_amount must be zero when reciprocal_debtor_id is absent")
	ErrDescriptionConflict = errors.New("offers: an offer may carry a description or a reciprocal leg, not both")
)

// CreateOfferInput is the validated request shape for create_offer.
type CreateOfferInput struct {
	PayeeID            int64
	AnnouncementID     string
	DebtorIDs          []int64
	DebtorAmounts      []int64
	ValidUntilTS       time.Time
	Description        map[string]any
	ReciprocalDebtorID *int64
	ReciprocalAmount   int64
}

func (in *CreateOfferInput) validate() error {
	if len(in.DebtorIDs) != len(in.DebtorAmounts) {
		return ErrRouteLengthMismatch
	}

	if in.ReciprocalDebtorID == nil && in.ReciprocalAmount != 0 {
		return ErrReciprocalInvalid
	}

	if in.ReciprocalAmount < 0 {
		return ErrReciprocalInvalid
	}

	hasReciprocal := in.ReciprocalDebtorID != nil && in.ReciprocalAmount > 0
	hasDescription := in.Description != nil

	if hasReciprocal && hasDescription {
		return ErrDescriptionConflict
	}

	return nil
}

// CreateOffer creates a new offer and emits CreatedOffer (§4.1). The
// announcement_id is echoed in the signal, never stored.
func (uc *UseCase) CreateOffer(ctx context.Context, in *CreateOfferInput) (*domainoffer.Offer, error) {
	logger := swptlog.FromContext(ctx)
	tracer := telemetry.TracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "offers.create_offer")
	defer span.End()

	if err := in.validate(); err != nil {
		telemetry.HandleSpanError(&span, "invalid create_offer input", err)
		return nil, err
	}

	secret, err := generateSecret()
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to generate offer secret", err)
		return nil, err
	}

	now := time.Now().UTC()

	var result *domainoffer.Offer

	err = postgres.WithTx(ctx, uc.Conn, func(ctx context.Context) error {
		var docID *string

		if in.Description != nil {
			id := uuid.New().String()
			docID = &id

			if err := uc.DocumentRepo.Create(ctx, document.CollectionOfferDescription, &document.Document{
				EntityID: id,
				Data:     in.Description,
			}); err != nil {
				return err
			}
		}

		model := &domainoffer.PostgreSQLModel{
			PayeeID:            in.PayeeID,
			OfferSecret:        secret,
			DebtorIDs:          in.DebtorIDs,
			DebtorAmounts:      in.DebtorAmounts,
			ValidUntilTS:       in.ValidUntilTS,
			CreatedAtTS:        now,
			ReciprocalDebtorID: in.ReciprocalDebtorID,
			ReciprocalAmount:   in.ReciprocalAmount,
			DescriptionDocID:   docID,
		}

		offerID, err := uc.OfferRepo.Create(ctx, model)
		if err != nil {
			return err
		}

		signal, err := outbox.NewSignal(outbox.SignalCreatedOffer, in.PayeeID, outbox.CreatedOfferPayload{
			PayeeID:        in.PayeeID,
			OfferID:        offerID,
			AnnouncementID: in.AnnouncementID,
			OfferSecret:    secret,
			CreatedAtTS:    now.Unix(),
		})
		if err != nil {
			return err
		}

		if err := uc.OutboxRepo.Insert(ctx, signal); err != nil {
			return err
		}

		result = model.ToEntity(in.Description)

		return nil
	})
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to create offer", err)
		logger.Errorf("failed to create offer for payee %d: %v", in.PayeeID, err)

		return nil, err
	}

	logger.Infof("created offer %d for payee %d", result.OfferID, in.PayeeID)

	return result, nil
}
