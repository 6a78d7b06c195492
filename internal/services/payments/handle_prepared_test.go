package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainoffer "github.com/epandurski/swpt-payments/internal/domain/offer"
	domainorder "github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	offermock "github.com/epandurski/swpt-payments/internal/gen/mock/offer"
	ordermock "github.com/epandurski/swpt-payments/internal/gen/mock/paymentorder"
	outboxmock "github.com/epandurski/swpt-payments/internal/gen/mock/outbox"
	proofmock "github.com/epandurski/swpt-payments/internal/gen/mock/paymentproof"
)

func TestHandlePreparedReleasesWhenOrderGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(5)).Return(nil, nil)

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil) // release -> zero-amount finalize

	uc := &UseCase{Conn: conn, OrderRepo: orderRepo, OutboxRepo: outboxRepo}

	err := uc.HandlePrepared(context.Background(), &PreparedTransfer{
		CoordinatorID: 1, RequestID: 5, TransferID: 77,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePreparedReleasesWhenOrderAlreadyFinalized(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	now := time.Now().UTC()

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(5)).Return(&domainorder.PostgreSQLModel{
		PayeeID: 1, FinalizedAtTS: &now, Success: true,
	}, nil)

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	uc := &UseCase{Conn: conn, OrderRepo: orderRepo, OutboxRepo: outboxRepo}

	err := uc.HandlePrepared(context.Background(), &PreparedTransfer{
		CoordinatorID: 1, RequestID: 5, TransferID: 77,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePreparedRedeliveryOfSameTransferIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	transferID := int64(77)

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(5)).Return(&domainorder.PostgreSQLModel{
		PayeeID: 1, OfferID: 2, PaymentTransferID: &transferID,
	}, nil)

	uc := &UseCase{Conn: conn, OrderRepo: orderRepo}

	err := uc.HandlePrepared(context.Background(), &PreparedTransfer{
		CoordinatorID: 1, RequestID: 5, TransferID: 77,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePreparedReleasesWhenSlotHoldsDifferentTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	existing := int64(1)

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(5)).Return(&domainorder.PostgreSQLModel{
		PayeeID: 1, OfferID: 2, PaymentTransferID: &existing,
	}, nil)

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	uc := &UseCase{Conn: conn, OrderRepo: orderRepo, OutboxRepo: outboxRepo}

	err := uc.HandlePrepared(context.Background(), &PreparedTransfer{
		CoordinatorID: 1, RequestID: 5, TransferID: 999,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePreparedFillsPrimarySlotThenAwaitsReciprocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	reciprocalDebtorID := int64(55)

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(5)).Return(&domainorder.PostgreSQLModel{
		PayeeID:            1,
		OfferID:            2,
		PayerID:            3,
		DebtorID:           10,
		Amount:             100,
		ReciprocalDebtorID: &reciprocalDebtorID,
		ReciprocalAmount:   30,
	}, nil)

	orderRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *domainorder.PostgreSQLModel) error {
		require.NotNil(t, m.PaymentTransferID)
		assert.Equal(t, int64(77), *m.PaymentTransferID)
		assert.Equal(t, domainorder.StateLiveNeedsReciprocal, m.CurrentState())
		return nil
	})

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil) // PrepareTransfer for the reciprocal leg

	uc := &UseCase{Conn: conn, OrderRepo: orderRepo, OutboxRepo: outboxRepo}

	err := uc.HandlePrepared(context.Background(), &PreparedTransfer{
		CoordinatorID: 1, RequestID: 5, TransferID: 77,
		DebtorID: 10, SenderID: 3, RecipientID: 1, LockedAmount: 100,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePreparedReciprocalLegUsesNegativeRequestID(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	primaryTransferID := int64(1)
	reciprocalDebtorID := int64(55)

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(-5)).Return(&domainorder.PostgreSQLModel{
		PayeeID:            1,
		OfferID:            2,
		PayerID:            3,
		DebtorID:           10,
		Amount:             100,
		PaymentTransferID:  &primaryTransferID,
		ReciprocalDebtorID: &reciprocalDebtorID,
		ReciprocalAmount:   30,
	}, nil)

	orderRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *domainorder.PostgreSQLModel) error {
		require.NotNil(t, m.ReciprocalPaymentTransferID)
		assert.Equal(t, int64(88), *m.ReciprocalPaymentTransferID)
		assert.Equal(t, domainorder.StateLiveReadyToCommit, m.CurrentState())
		return nil
	})

	// commit persists the order a second time, now finalized.
	orderRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *domainorder.PostgreSQLModel) error {
		assert.Equal(t, domainorder.StateFinalizedSuccess, m.CurrentState())
		return nil
	})

	offerRepo := offermock.NewMockRepository(ctrl)
	offerRepo.EXPECT().
		GetForUpdate(gomock.Any(), int64(1), int64(2)).
		Return(&domainoffer.PostgreSQLModel{PayeeID: 1, OfferID: 2}, nil)
	offerRepo.EXPECT().Delete(gomock.Any(), int64(1), int64(2)).Return(nil)

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	// finalize primary, finalize reciprocal, SuccessfulPayment
	outboxRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	orderRepo.EXPECT().ListLiveByOffer(gomock.Any(), int64(1), int64(2)).Return(nil, nil)

	proofRepo := proofmock.NewMockRepository(ctrl)
	proofRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	uc := &UseCase{
		Conn:       conn,
		OrderRepo:  orderRepo,
		OutboxRepo: outboxRepo,
		OfferRepo:  offerRepo,
		ProofRepo:  proofRepo,
	}

	err := uc.HandlePrepared(context.Background(), &PreparedTransfer{
		CoordinatorID: 1, RequestID: -5, TransferID: 88,
		DebtorID: 55, SenderID: 1, RecipientID: 3, LockedAmount: 30,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePreparedRejectsMismatchedLeg(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn, mock := newMockConn(t)
	mock.ExpectRollback()

	orderRepo := ordermock.NewMockRepository(ctrl)
	orderRepo.EXPECT().GetForUpdate(gomock.Any(), int64(1), int64(5)).Return(&domainorder.PostgreSQLModel{
		PayeeID:  1,
		OfferID:  2,
		PayerID:  3,
		DebtorID: 10,
		Amount:   100,
	}, nil)

	uc := &UseCase{Conn: conn, OrderRepo: orderRepo}

	// Wrong debtor for the primary leg: this should never happen for a
	// transfer the accounts service prepared against our own request, so
	// it is escalated rather than treated as a business rejection.
	err := uc.HandlePrepared(context.Background(), &PreparedTransfer{
		CoordinatorID: 1, RequestID: 5, TransferID: 77,
		DebtorID: 999, SenderID: 3, RecipientID: 1, LockedAmount: 100,
	})

	assert.ErrorIs(t, err, ErrMismatchedPreparedTransfer)
	assert.NoError(t, mock.ExpectationsWereMet())
}
