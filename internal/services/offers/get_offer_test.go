package offers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/epandurski/swpt-payments/internal/domain/coordinatorerr"
	"github.com/epandurski/swpt-payments/internal/domain/document"
	domainoffer "github.com/epandurski/swpt-payments/internal/domain/offer"
	documentmock "github.com/epandurski/swpt-payments/internal/gen/mock/document"
	offermock "github.com/epandurski/swpt-payments/internal/gen/mock/offer"
)

func TestGetOfferNotFoundLooksLikeWrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)

	offerRepo := offermock.NewMockRepository(ctrl)
	offerRepo.EXPECT().Get(gomock.Any(), int64(1), int64(2)).Return(nil, nil)

	uc := &UseCase{OfferRepo: offerRepo}

	_, err := uc.GetOffer(context.Background(), 1, 2, []byte("whatever"))

	var notFound coordinatorerr.EntityNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, coordinatorerr.CodeOfferNotFoundOrWrongSecret, notFound.Code)
}

func TestGetOfferWrongSecretLooksLikeNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	offerRepo := offermock.NewMockRepository(ctrl)
	offerRepo.EXPECT().Get(gomock.Any(), int64(1), int64(2)).Return(&domainoffer.PostgreSQLModel{
		PayeeID:     1,
		OfferID:     2,
		OfferSecret: []byte("right"),
	}, nil)

	uc := &UseCase{OfferRepo: offerRepo}

	_, err := uc.GetOffer(context.Background(), 1, 2, []byte("wrong"))

	var notFound coordinatorerr.EntityNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGetOfferFetchesDescriptionDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	docID := "doc-1"

	offerRepo := offermock.NewMockRepository(ctrl)
	offerRepo.EXPECT().Get(gomock.Any(), int64(1), int64(2)).Return(&domainoffer.PostgreSQLModel{
		PayeeID:          1,
		OfferID:          2,
		OfferSecret:      []byte("right"),
		ValidUntilTS:     time.Now().Add(time.Hour),
		DescriptionDocID: &docID,
	}, nil)

	docRepo := documentmock.NewMockRepository(ctrl)
	docRepo.EXPECT().
		FindByEntity(gomock.Any(), document.CollectionOfferDescription, docID).
		Return(&document.Document{Data: document.JSON{"memo": "hi"}}, nil)

	uc := &UseCase{OfferRepo: offerRepo, DocumentRepo: docRepo}

	o, err := uc.GetOffer(context.Background(), 1, 2, []byte("right"))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"memo": "hi"}, o.Description)
}
