package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Subscriber attaches consumers to per-recipient queues for the websocket
// gateway. Every Consume call opens its own channel on the shared
// connection, so one slow or blocked subscription cannot stall another.
type Subscriber struct {
	conn   *amqp.Connection
	logger zerolog.Logger
}

// NewSubscriber creates a new Subscriber on top of a shared connection.
func NewSubscriber(conn *amqp.Connection, logger *zerolog.Logger) *Subscriber {
	return &Subscriber{
		conn:   conn,
		logger: logger.With().Str("component", "rabbitmq_subscriber").Logger(),
	}
}

// Consume declares the recipient's durable queue and returns a channel of
// raw message bodies in the order the broker delivers them. The returned
// channel is closed when ctx is cancelled or the broker drops the
// subscription; the underlying amqp channel is released on both paths.
func (s *Subscriber) Consume(ctx context.Context, recipient string) (<-chan []byte, error) {
	ch, err := s.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}

	if err := declareRecipientQueue(ch, recipient); err != nil {
		_ = ch.Close()
		return nil, err
	}

	deliveries, err := ch.Consume(
		recipient,
		"",    // consumer tag, broker-generated
		true,  // autoAck: the gateway forwards best-effort, no redelivery
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("rabbitmq: consume queue %s: %w", recipient, err)
	}

	log := s.logger.With().Str("queue", recipient).Logger()
	log.Info().Msg("subscription attached")

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer ch.Close()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("subscription released")
				return
			case d, ok := <-deliveries:
				if !ok {
					log.Warn().Msg("delivery channel closed by broker")
					return
				}
				select {
				case out <- d.Body:
				case <-ctx.Done():
					log.Info().Msg("subscription released")
					return
				}
			}
		}
	}()

	return out, nil
}
