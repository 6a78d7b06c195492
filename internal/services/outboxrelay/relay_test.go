package outboxrelay

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainoutbox "github.com/epandurski/swpt-payments/internal/domain/outbox"
	outboxmock "github.com/epandurski/swpt-payments/internal/gen/mock/outbox"
	producermock "github.com/epandurski/swpt-payments/internal/gen/mock/rabbitmq"
	"github.com/epandurski/swpt-payments/internal/swptlog"
)

func TestDrainOnceListsAndPublishesEachPendingSignal(t *testing.T) {
	ctrl := gomock.NewController(t)

	s1 := &domainoutbox.Signal{ID: uuid.New(), Type: domainoutbox.SignalCreatedOffer, PayeeID: 1, Payload: []byte(`{}`)}
	s2 := &domainoutbox.Signal{ID: uuid.New(), Type: domainoutbox.SignalFailedPayment, PayeeID: 2, Payload: []byte(`{}`)}

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	outboxRepo.EXPECT().ListPending(gomock.Any(), 100).Return([]*domainoutbox.Signal{s1, s2}, nil)
	outboxRepo.EXPECT().MarkStatus(gomock.Any(), s1.ID, domainoutbox.StatusProcessing).Return(nil)
	outboxRepo.EXPECT().MarkStatus(gomock.Any(), s1.ID, domainoutbox.StatusPublished).Return(nil)
	outboxRepo.EXPECT().MarkStatus(gomock.Any(), s2.ID, domainoutbox.StatusProcessing).Return(nil)
	outboxRepo.EXPECT().MarkStatus(gomock.Any(), s2.ID, domainoutbox.StatusPublished).Return(nil)

	producer := producermock.NewMockProducerRepository(ctrl)
	producer.EXPECT().Publish(gomock.Any(), "payments.created_offer", "1", []byte(`{}`)).Return(nil)
	producer.EXPECT().Publish(gomock.Any(), "payments.failed_payment", "2", []byte(`{}`)).Return(nil)

	r := &Relay{OutboxRepo: outboxRepo, Producer: producer, Logger: &swptlog.NoneLogger{}}

	err := r.drainOnce(context.Background())

	require.NoError(t, err)
}

func TestDrainOnceReturnsErrorWhenListFails(t *testing.T) {
	ctrl := gomock.NewController(t)

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	outboxRepo.EXPECT().ListPending(gomock.Any(), 100).Return(nil, errors.New("db down"))

	r := &Relay{OutboxRepo: outboxRepo, Logger: &swptlog.NoneLogger{}}

	err := r.drainOnce(context.Background())

	require.Error(t, err)
}

func TestPublishOneRetriesOnFailureBelowMaxAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := &domainoutbox.Signal{ID: uuid.New(), Type: domainoutbox.SignalPrepareTransfer, PayeeID: 1, Payload: []byte(`{}`), Attempts: 1}

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	outboxRepo.EXPECT().MarkStatus(gomock.Any(), s.ID, domainoutbox.StatusProcessing).Return(nil)
	outboxRepo.EXPECT().MarkStatus(gomock.Any(), s.ID, domainoutbox.StatusFailed).Return(nil)

	producer := producermock.NewMockProducerRepository(ctrl)
	producer.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))

	r := &Relay{OutboxRepo: outboxRepo, Producer: producer, Logger: &swptlog.NoneLogger{}}

	r.publishOne(context.Background(), s)
}

func TestPublishOneMovesToDLQAfterMaxAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := &domainoutbox.Signal{ID: uuid.New(), Type: domainoutbox.SignalPrepareTransfer, PayeeID: 1, Payload: []byte(`{}`), Attempts: maxAttempts - 1}

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	gomock.InOrder(
		outboxRepo.EXPECT().MarkStatus(gomock.Any(), s.ID, domainoutbox.StatusProcessing).Return(nil),
		outboxRepo.EXPECT().MarkStatus(gomock.Any(), s.ID, domainoutbox.StatusFailed).Return(nil),
		outboxRepo.EXPECT().MarkStatus(gomock.Any(), s.ID, domainoutbox.StatusDLQ).Return(nil),
	)

	producer := producermock.NewMockProducerRepository(ctrl)
	producer.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))

	r := &Relay{OutboxRepo: outboxRepo, Producer: producer, Logger: &swptlog.NoneLogger{}}

	r.publishOne(context.Background(), s)
}

func TestPublishOneSendsUnroutableTypeThroughFailedToDLQ(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := &domainoutbox.Signal{ID: uuid.New(), Type: domainoutbox.SignalType("Unknown"), PayeeID: 1, Payload: []byte(`{}`)}

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	gomock.InOrder(
		outboxRepo.EXPECT().MarkStatus(gomock.Any(), s.ID, domainoutbox.StatusProcessing).Return(nil),
		outboxRepo.EXPECT().MarkStatus(gomock.Any(), s.ID, domainoutbox.StatusFailed).Return(nil),
		outboxRepo.EXPECT().MarkStatus(gomock.Any(), s.ID, domainoutbox.StatusDLQ).Return(nil),
	)

	r := &Relay{OutboxRepo: outboxRepo, Logger: &swptlog.NoneLogger{}}

	r.publishOne(context.Background(), s)
}

func TestPublishOneAbortsWhenMarkProcessingFails(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := &domainoutbox.Signal{ID: uuid.New(), Type: domainoutbox.SignalCreatedOffer, PayeeID: 1, Payload: []byte(`{}`)}

	outboxRepo := outboxmock.NewMockRepository(ctrl)
	outboxRepo.EXPECT().MarkStatus(gomock.Any(), s.ID, domainoutbox.StatusProcessing).Return(errors.New("row locked"))

	r := &Relay{OutboxRepo: outboxRepo, Logger: &swptlog.NoneLogger{}}

	// No Producer.Publish expectation set; a call would panic the mock,
	// asserting that publishOne bails out before publishing.
	r.publishOne(context.Background(), s)

	assert.NotNil(t, r)
}
