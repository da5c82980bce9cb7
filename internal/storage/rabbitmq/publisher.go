package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher writes messages onto per-recipient durable queues. Each call is
// self-contained: it opens a fresh channel on the shared connection,
// declares the queue, publishes, and closes the channel. Declaring an
// existing queue with identical arguments is a no-op, so first-publish and
// re-publish take the same path.
type Publisher struct {
	conn   *amqp.Connection
	logger zerolog.Logger
}

// NewPublisher creates a new Publisher on top of a shared connection.
func NewPublisher(conn *amqp.Connection, logger *zerolog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger.With().Str("component", "rabbitmq_publisher").Logger(),
	}
}

// Publish puts body on the recipient's queue with at-least-once semantics.
// The queue is named by the recipient identifier verbatim, which keeps
// names stable and collision-free across recipients. No retries happen
// here; retry policy belongs to the caller.
func (p *Publisher) Publish(ctx context.Context, recipient string, body []byte) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	defer ch.Close()

	if err := declareRecipientQueue(ch, recipient); err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := ch.PublishWithContext(ctx, "", recipient, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish to queue %s: %w", recipient, err)
	}

	p.logger.Debug().Str("queue", recipient).Int("bytes", len(body)).Msg("message published")
	return nil
}

// declareRecipientQueue idempotently declares the durable queue for a recipient.
func declareRecipientQueue(ch *amqp.Channel, recipient string) error {
	if _, err := ch.QueueDeclare(
		recipient,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		return fmt.Errorf("rabbitmq: declare queue %s: %w", recipient, err)
	}
	return nil
}
