package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	ordermock "github.com/epandurski/swpt-payments/internal/gen/mock/paymentorder"
	outboxmock "github.com/epandurski/swpt-payments/internal/gen/mock/outbox"
)

func TestHandleRejectedNoopWhenOrderGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(5)).Return(nil, nil)

	uc := &UseCase{Conn: conn, OrderRepo: orderRepo}

	err := uc.HandleRejected(context.Background(), &RejectedTransfer{CoordinatorID: 1, RequestID: 5})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleRejectedNoopWhenAlreadyFinalized(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	now := time.Now().UTC()

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(5)).Return(&domainorder.PostgreSQLModel{
		PayeeID: 1, FinalizedAtTS: &now,
	}, nil)

	uc := &UseCase{Conn: conn, OrderRepo: orderRepo}

	err := uc.HandleRejected(context.Background(), &RejectedTransfer{CoordinatorID: 1, RequestID: 5})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleRejectedPrimaryLegUsesGivenErrorCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(5)).Return(&domainorder.PostgreSQLModel{
		PayeeID: 1, OfferID: 2, PayerID: 3, PayerSeqnum: 4,
	}, nil)

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil) // FailedPayment only, no legs prepared

	orderRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *domainorder.PostgreSQLModel) error {
		assert.Equal(t, domainorder.StateFinalizedFailure, m.CurrentState())
		return nil
	})

	uc := &UseCase{Conn: conn, OrderRepo: orderRepo, OutboxRepo: outboxRepo}

	err := uc.HandleRejected(context.Background(), &RejectedTransfer{
		CoordinatorID: 1, RequestID: 5, ErrorCode: "ACC001", Details: "insufficient funds",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleRejectedReciprocalLegIsAlwaysPAY005(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	primaryTransferID := int64(1)

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(-5)).Return(&domainorder.PostgreSQLModel{
		PayeeID: 1, OfferID: 2, PayerID: 3, PayerSeqnum: 4,
		PaymentTransferID: &primaryTransferID,
	}, nil)

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	// finalize (release) the already-prepared primary leg, then FailedPayment
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	orderRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	uc := &UseCase{Conn: conn, OrderRepo: orderRepo, OutboxRepo: outboxRepo}

	// The accounts service's own error code for a reciprocal rejection is
	// irrelevant — HandleRejected always reports PAY005 for it.
	err := uc.HandleRejected(context.Background(), &RejectedTransfer{
		CoordinatorID: 1, RequestID: -5, ErrorCode: "ACC999", Details: "whatever",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
