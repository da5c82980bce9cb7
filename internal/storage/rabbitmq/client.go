package rabbitmq

import (
	"fmt"

	"github.com/osahon-dev/notistream/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NewConnection creates and returns a raw amqp.Connection.
// The connection is shared; every publish and every gateway consumer opens
// its own amqp.Channel on top of it, so unrelated recipients never block
// each other on a shared channel.
func NewConnection(cfg *config.Config) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: failed to connect: %w", err)
	}
	return conn, nil
}
