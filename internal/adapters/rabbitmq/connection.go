// Package rabbitmq is the message-bus transport: an inbound consumer for
// create_offer/cancel_offer/make_payment_order/PreparedTransfer/
// RejectedTransfer, and the outbound producer the outbox relay uses.
package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/epandurski/swpt-payments/internal/swptlog"
)

// Connection is a hub which deals with the coordinator's RabbitMQ
// connection, mirroring the teacher's RabbitMQConnection singleton.
type Connection struct {
	ConnectionString string
	Logger           swptlog.Logger

	conn      *amqp.Connection
	channel   *amqp.Channel
	Connected bool
}

func (c *Connection) Connect(ctx context.Context) error {
	c.Logger.Info("connecting to rabbitmq...")

	conn, err := amqp.Dial(c.ConnectionString)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("rabbitmq: open channel: %w", err)
	}

	c.conn = conn
	c.channel = ch
	c.Connected = true

	c.Logger.Info("connected to rabbitmq")

	return nil
}

// GetChannel returns the open channel, establishing the connection on
// first use.
func (c *Connection) GetChannel(ctx context.Context) (*amqp.Channel, error) {
	if !c.Connected {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return c.channel, nil
}

func (c *Connection) Close() error {
	if c.channel != nil {
		_ = c.channel.Close()
	}

	if c.conn != nil {
		return c.conn.Close()
	}

	return nil
}
