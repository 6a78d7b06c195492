// Package outboxrelay drains the outbound signal log (C2) and publishes
// each row onto the message bus, the external half of the outbox
// pattern: the coordinator never publishes inside a request-handling
// transaction (§9), it only ever writes a row here.
package outboxrelay

import (
	"context"
	"fmt"
	"time"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	"github.com/epandurski/swpt-payments/internal/adapters/rabbitmq"
	domainoutbox "github.com/epandurski/swpt-payments/internal/domain/outbox"
	"github.com/epandurski/swpt-payments/internal/swptlog"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// maxAttempts is how many publish attempts a row gets before the relay
// gives up and moves it to DLQ rather than looping forever on a row the
// broker keeps refusing.
const maxAttempts = 5

// exchangesByType names the outbound routing for each signal kind. The
// relay owns this mapping, not the domain layer — the outbox row itself
// carries no transport detail (§2, C2).
var exchangesByType = map[domainoutbox.SignalType]string{
	domainoutbox.SignalCreatedOffer:            "payments.created_offer",
	domainoutbox.SignalCanceledOffer:           "payments.canceled_offer",
	domainoutbox.SignalPrepareTransfer:         "payments.prepare_transfer",
	domainoutbox.SignalFinalizePreparedTransfer: "payments.finalize_prepared_transfer",
	domainoutbox.SignalSuccessfulPayment:       "payments.successful_payment",
	domainoutbox.SignalFailedPayment:           "payments.failed_payment",
}

// Relay periodically drains pending outbox rows and publishes them.
type Relay struct {
	Conn       *postgres.Connection
	OutboxRepo domainoutbox.Repository
	Producer   rabbitmq.ProducerRepository
	Logger     swptlog.Logger

	BatchSize    int
	PollInterval time.Duration
}

// Run polls until ctx is canceled, publishing whatever batch of pending
// signals it finds each tick.
func (r *Relay) Run(ctx context.Context) error {
	interval := r.PollInterval
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				r.Logger.Errorf("outbox relay: drain failed: %v", err)
			}
		}
	}
}

func (r *Relay) drainOnce(ctx context.Context) error {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "outboxrelay.drain")
	defer span.End()

	batchSize := r.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	signals, err := r.OutboxRepo.ListPending(ctx, batchSize)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to list pending signals", err)
		return err
	}

	for _, s := range signals {
		r.publishOne(ctx, s)
	}

	return nil
}

func (r *Relay) publishOne(ctx context.Context, s *domainoutbox.Signal) {
	if err := r.OutboxRepo.MarkStatus(ctx, s.ID, domainoutbox.StatusProcessing); err != nil {
		r.Logger.Errorf("outbox relay: failed to mark signal %s processing: %v", s.ID, err)
		return
	}

	exchange, ok := exchangesByType[s.Type]
	if !ok {
		r.Logger.Errorf("outbox relay: no exchange mapped for signal type %q, sending to DLQ", s.Type)

		// DLQ is only reachable from FAILED (domainoutbox.ValidTransitions),
		// so an unroutable signal still passes through FAILED on its way.
		if err := r.OutboxRepo.MarkStatus(ctx, s.ID, domainoutbox.StatusFailed); err != nil {
			r.Logger.Errorf("outbox relay: failed to mark signal %s failed: %v", s.ID, err)
			return
		}

		if err := r.OutboxRepo.MarkStatus(ctx, s.ID, domainoutbox.StatusDLQ); err != nil {
			r.Logger.Errorf("outbox relay: failed to mark signal %s dlq: %v", s.ID, err)
		}

		return
	}

	err := r.Producer.Publish(ctx, exchange, routingKey(s), s.Payload)
	if err == nil {
		if markErr := r.OutboxRepo.MarkStatus(ctx, s.ID, domainoutbox.StatusPublished); markErr != nil {
			r.Logger.Errorf("outbox relay: failed to mark signal %s published: %v", s.ID, markErr)
		}

		return
	}

	r.Logger.Warnf("outbox relay: failed to publish signal %s: %v", s.ID, err)

	if markErr := r.OutboxRepo.MarkStatus(ctx, s.ID, domainoutbox.StatusFailed); markErr != nil {
		r.Logger.Errorf("outbox relay: failed to mark signal %s failed: %v", s.ID, markErr)
		return
	}

	// Out of attempts: DLQ is only reachable from FAILED, which the row
	// now holds.
	if s.Attempts+1 >= maxAttempts {
		if markErr := r.OutboxRepo.MarkStatus(ctx, s.ID, domainoutbox.StatusDLQ); markErr != nil {
			r.Logger.Errorf("outbox relay: failed to mark signal %s dlq: %v", s.ID, markErr)
		}
	}
}

func routingKey(s *domainoutbox.Signal) string {
	return fmt.Sprintf("%d", s.PayeeID)
}
