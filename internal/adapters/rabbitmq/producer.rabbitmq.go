package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// ProducerRepository publishes outbound signals onto the message bus.
// The outbox relay is the only caller — signals are never published
// inline with the transaction that created them (§2, C2).
type ProducerRepository interface {
	Publish(ctx context.Context, exchange, routingKey string, body []byte) error
}

// ProducerRabbitMQRepository is the RabbitMQ implementation of
// ProducerRepository.
type ProducerRabbitMQRepository struct {
	conn *Connection
}

func NewProducerRabbitMQ(conn *Connection) *ProducerRabbitMQRepository {
	return &ProducerRabbitMQRepository{conn: conn}
}

func (p *ProducerRabbitMQRepository) Publish(ctx context.Context, exchange, routingKey string, body []byte) error {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "rabbitmq.producer.publish")
	defer span.End()

	ch, err := p.conn.GetChannel(ctx)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get rabbitmq channel", err)
		return err
	}

	err = ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to publish message", err)
		return err
	}

	return nil
}
