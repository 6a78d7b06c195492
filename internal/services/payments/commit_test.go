package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/epandurski/swpt-payments/internal/domain/document"
	domainoffer "github.com/epandurski/swpt-payments/internal/domain/offer"
	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	domainproof "github.com/epandurski/swpt-payments/internal/domain/paymentproof"
	documentmock "github.com/epandurski/swpt-payments/internal/gen/mock/document"
	offermock "github.com/epandurski/swpt-payments/internal/gen/mock/offer"
	ordermock "github.com/epandurski/swpt-payments/internal/gen/mock/paymentorder"
	outboxmock "github.com/epandurski/swpt-payments/internal/gen/mock/outbox"
	proofmock "github.com/epandurski/swpt-payments/internal/gen/mock/paymentproof"
)

func TestCommitAbortsVanishedOfferDefensively(t *testing.T) {
	ctrl := gomock.NewController(t)

	primaryTransferID := int64(1)

	ord := &domainorder.PostgreSQLModel{
		PayeeID: 1, OfferID: 2, PayerID: 3, PayerSeqnum: 4,
		PaymentTransferID: &primaryTransferID,
		Amount:            100,
		CreatedAtTS:        time.Now(),
	}

	offerRepo := offermock.NewMockRepository(ctrl)
	offerRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(2)).Return(nil, nil)

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	// abortOrder: finalize the already-prepared primary leg, then FailedPayment
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *domainorder.PostgreSQLModel) error {
		assert.Equal(t, domainorder.StateFinalizedFailure, m.CurrentState())
		return nil
	})

	uc := &UseCase{OrderRepo: orderRepo, OfferRepo: offerRepo, OutboxRepo: outboxRepo}

	err := uc.commit(context.Background(), ord)

	require.NoError(t, err)
}

func TestCommitSnapshotsDescriptionAndAbortsSiblings(t *testing.T) {
	ctrl := gomock.NewController(t)

	primaryTransferID := int64(1)
	docID := "offer-doc"

	ord := &domainorder.PostgreSQLModel{
		PayeeID: 1, OfferID: 2, PayerID: 3, PayerSeqnum: 4,
		PaymentTransferID: &primaryTransferID,
		Amount:            100,
		CreatedAtTS:        time.Now(),
	}

	sibling := &domainorder.PostgreSQLModel{
		PayeeID: 1, OfferID: 2, PayerID: 9, PayerSeqnum: 1,
		Amount: 100,
	}

	offerRepo := offermock.NewMockRepository(ctrl)
	offerRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(2)).Return(&domainoffer.PostgreSQLModel{
		PayeeID: 1, OfferID: 2, DescriptionDocID: &docID, CreatedAtTS: time.Now(),
	}, nil)
	offerRepo.EXPECT().Delete(gomock.Any(), int64(1), int64(2)).Return(nil)

	docRepo := documentmock.NewMockRepository(ctrl)
	docRepo.EXPECT().
		FindByEntity(gomock.Any(), document.CollectionOfferDescription, docID).
		Return(&document.Document{Data: document.JSON{"memo": "hi"}}, nil)
	docRepo.EXPECT().
		Create(gomock.Any(), document.CollectionOfferDescription, gomock.Any()).
		Return(nil)

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	// finalize primary, SuccessfulPayment, FailedPayment for the sibling
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().Update(gomock.Any(), ord).Return(nil)
	orderRepo.EXPECT().ListLiveByOffer(gomock.Any(), int64(1), int64(2)).Return([]*domainorder.PostgreSQLModel{sibling}, nil)
	orderRepo.EXPECT().Update(gomock.Any(), sibling).DoAndReturn(func(_ context.Context, m *domainorder.PostgreSQLModel) error {
		assert.Equal(t, domainorder.StateFinalizedFailure, m.CurrentState())
		return nil
	})

	proofRepo := proofmock.NewMockRepository(ctrl)
	proofRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domainproof.PostgreSQLModel) (int64, error) {
			assert.NotNil(t, p.OfferDescriptionDocID)
			return 5, nil
		})

	uc := &UseCase{
		OrderRepo:    orderRepo,
		OfferRepo:    offerRepo,
		OutboxRepo:   outboxRepo,
		DocumentRepo: docRepo,
		ProofRepo:    proofRepo,
	}

	err := uc.commit(context.Background(), ord)

	require.NoError(t, err)
}
