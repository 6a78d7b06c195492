package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/epandurski/swpt-payments/internal/swptlog"
)

// Handler processes one delivery's body. Returning an error nacks and
// requeues the delivery so at-least-once redelivery (§1 non-goals) is
// the broker's job, not the handler's.
type Handler func(ctx context.Context, body []byte) error

// ConsumerRoutes binds queue names to handlers and runs one consumer
// goroutine per registered queue, mirroring the teacher's
// Register/RunConsumers shape (components/consumer's MultiQueueConsumer).
type ConsumerRoutes struct {
	conn    *Connection
	Logger  swptlog.Logger
	routes  map[string]Handler
}

func NewConsumerRoutes(conn *Connection, logger swptlog.Logger) *ConsumerRoutes {
	return &ConsumerRoutes{conn: conn, Logger: logger, routes: make(map[string]Handler)}
}

// Register binds handler to queue. Call before RunConsumers.
func (r *ConsumerRoutes) Register(queue string, handler Handler) {
	r.routes[queue] = handler
}

// RunConsumers starts one delivery loop per registered queue and
// returns once all of them are running; each loop runs in its own
// goroutine until ctx is canceled.
func (r *ConsumerRoutes) RunConsumers(ctx context.Context) error {
	ch, err := r.conn.GetChannel(ctx)
	if err != nil {
		return err
	}

	for queue, handler := range r.routes {
		deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
		if err != nil {
			return err
		}

		go r.drain(ctx, queue, deliveries, handler)
	}

	return nil
}

func (r *ConsumerRoutes) drain(ctx context.Context, queue string, deliveries <-chan amqp.Delivery, handler Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}

			if err := handler(ctx, d.Body); err != nil {
				r.Logger.Errorf("handler for queue %s failed: %v", queue, err)
				_ = d.Nack(false, true)

				continue
			}

			_ = d.Ack(false)
		}
	}
}
