package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	outboxmock "github.com/epandurski/swpt-payments/internal/gen/mock/outbox"
)

func TestTryAdvanceOnFinalizedOrderIsNoop(t *testing.T) {
	now := time.Now().UTC()

	ord := &domainorder.PostgreSQLModel{
		PayeeID: 1, OfferID: 2, PayerID: 3, PayerSeqnum: 4,
		FinalizedAtTS: &now,
		Success:       true,
	}

	uc := &UseCase{}

	err := uc.tryAdvance(context.Background(), ord)

	require.NoError(t, err)
}

func TestTryAdvanceNeedsPrimaryEmitsPrepareForPrimaryLeg(t *testing.T) {
	ctrl := gomock.NewController(t)

	ord := &domainorder.PostgreSQLModel{
		PayeeID: 1, OfferID: 2, PayerID: 3, PayerSeqnum: 4,
		DebtorID: 7, Amount: 100,
	}

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	uc := &UseCase{OutboxRepo: outboxRepo}

	err := uc.tryAdvance(context.Background(), ord)

	require.NoError(t, err)
}
