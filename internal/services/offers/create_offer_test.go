package offers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainoffer "github.com/epandurski/swpt-payments/internal/domain/offer"
	documentmock "github.com/epandurski/swpt-payments/internal/gen/mock/document"
	offermock "github.com/epandurski/swpt-payments/internal/gen/mock/offer"
	outboxmock "github.com/epandurski/swpt-payments/internal/gen/mock/outbox"
)

func TestCreateOfferInputValidate(t *testing.T) {
	debtorID := int64(7)

	tests := []struct {
		name    string
		in      CreateOfferInput
		wantErr error
	}{
		{
			name:    "route length mismatch",
			in:      CreateOfferInput{DebtorIDs: []int64{1, 2}, DebtorAmounts: []int64{100}},
			wantErr: ErrRouteLengthMismatch,
		},
		{
			name:    "reciprocal amount without reciprocal debtor",
			in:      CreateOfferInput{DebtorIDs: []int64{1}, DebtorAmounts: []int64{100}, ReciprocalAmount: 50},
			wantErr: ErrReciprocalInvalid,
		},
		{
			name:    "negative reciprocal amount",
			in:      CreateOfferInput{DebtorIDs: []int64{1}, DebtorAmounts: []int64{100}, ReciprocalDebtorID: &debtorID, ReciprocalAmount: -1},
			wantErr: ErrReciprocalInvalid,
		},
		{
			name: "reciprocal leg and description both set",
			in: CreateOfferInput{
				DebtorIDs:          []int64{1},
				DebtorAmounts:      []int64{100},
				ReciprocalDebtorID: &debtorID,
				ReciprocalAmount:   50,
				Description:        map[string]any{"memo": "hi"},
			},
			wantErr: ErrDescriptionConflict,
		},
		{
			name: "valid with description only",
			in: CreateOfferInput{
				DebtorIDs:     []int64{1},
				DebtorAmounts: []int64{100},
				Description:   map[string]any{"memo": "hi"},
			},
			wantErr: nil,
		},
		{
			name: "valid with reciprocal leg only",
			in: CreateOfferInput{
				DebtorIDs:          []int64{1},
				DebtorAmounts:      []int64{100},
				ReciprocalDebtorID: &debtorID,
				ReciprocalAmount:   50,
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCreateOffer(t *testing.T) {
	ctrl := gomock.NewController(t)

	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	offerRepo := offermock.NewMockRepository(ctrl)
	outboxRepo := outboxmock.NewMockRepository(ctrl)
	docRepo := documentmock.NewMockRepository(ctrl)

	offerRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(int64(42), nil)

	outboxRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	uc := &UseCase{
		Conn:         conn,
		OfferRepo:    offerRepo,
		OutboxRepo:   outboxRepo,
		DocumentRepo: docRepo,
	}

	result, err := uc.CreateOffer(context.Background(), &CreateOfferInput{
		PayeeID:        1,
		AnnouncementID: "ann-1",
		DebtorIDs:      []int64{10},
		DebtorAmounts:  []int64{100},
		ValidUntilTS:   time.Now().Add(time.Hour),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.OfferSecret)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOfferWithDescriptionStoresDocument(t *testing.T) {
	ctrl := gomock.NewController(t)

	conn, mock := newMockConn(t)
	mock.ExpectCommit()

	offerRepo := offermock.NewMockRepository(ctrl)
	outboxRepo := outboxmock.NewMockRepository(ctrl)
	docRepo := documentmock.NewMockRepository(ctrl)

	docRepo.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	offerRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *domainoffer.PostgreSQLModel) (int64, error) {
			assert.NotNil(t, m.DescriptionDocID)
			return 1, nil
		})

	outboxRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	uc := &UseCase{
		Conn:         conn,
		OfferRepo:    offerRepo,
		OutboxRepo:   outboxRepo,
		DocumentRepo: docRepo,
	}

	_, err := uc.CreateOffer(context.Background(), &CreateOfferInput{
		PayeeID:       1,
		DebtorIDs:     []int64{10},
		DebtorAmounts: []int64{100},
		ValidUntilTS:  time.Now().Add(time.Hour),
		Description:   map[string]any{"memo": "hi"},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOfferInvalidInputNeverOpensTransaction(t *testing.T) {
	conn, mock := newMockConn(t)

	uc := &UseCase{Conn: conn}

	_, err := uc.CreateOffer(context.Background(), &CreateOfferInput{
		DebtorIDs:     []int64{1, 2},
		DebtorAmounts: []int64{100},
	})

	assert.ErrorIs(t, err, ErrRouteLengthMismatch)
	// ExpectBegin was armed by newMockConn but never consumed: validation
	// failed before postgres.WithTx ran.
	assert.Error(t, mock.ExpectationsWereMet())
}
