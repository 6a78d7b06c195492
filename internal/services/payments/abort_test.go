package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	ordermock "github.com/epandurski/swpt-payments/internal/gen/mock/paymentorder"
	outboxmock "github.com/epandurski/swpt-payments/internal/gen/mock/outbox"
)

func TestAbortOrderWithNoPreparedLegsOnlyEmitsFailedPayment(t *testing.T) {
	ctrl := gomock.NewController(t)

	ord := &domainorder.PostgreSQLModel{PayeeID: 1, OfferID: 2, PayerID: 3, PayerSeqnum: 4}

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().Update(gomock.Any(), ord).Return(nil)

	uc := &UseCase{OrderRepo: orderRepo, OutboxRepo: outboxRepo}

	err := uc.abortOrder(context.Background(), ord, "PAY002", "debtor not accepted")

	require.NoError(t, err)
	assert.True(t, ord.Finalized())
	assert.False(t, ord.Success)
}

func TestAbortOrderReleasesBothPreparedLegs(t *testing.T) {
	ctrl := gomock.NewController(t)

	primary := int64(1)
	reciprocal := int64(2)

	ord := &domainorder.PostgreSQLModel{
		PayeeID: 1, OfferID: 2, PayerID: 3, PayerSeqnum: 4,
		PaymentTransferID:           &primary,
		ReciprocalPaymentTransferID: &reciprocal,
	}

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	// finalize(primary, 0), finalize(reciprocal, 0), FailedPayment
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().Update(gomock.Any(), ord).Return(nil)

	uc := &UseCase{OrderRepo: orderRepo, OutboxRepo: outboxRepo}

	err := uc.abortOrder(context.Background(), ord, "PAY005", "reciprocal transfer could not be prepared")

	require.NoError(t, err)
	assert.True(t, ord.Finalized())
}
