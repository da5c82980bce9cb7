package gateway

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// connHandler owns the per-connection subscribe-and-forward lifecycle.
// Each accepted websocket runs on its own handler goroutine: blocking on
// one recipient's queue or on one slow socket never stalls another
// connection.
type connHandler struct {
	sub      QueueSubscriber
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func newConnHandler(sub QueueSubscriber, logger *zerolog.Logger) *connHandler {
	return &connHandler{
		sub: sub,
		upgrader: websocket.Upgrader{
			// Origin checks are the perimeter's concern, like auth.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With().Str("component", "gateway_conn").Logger(),
	}
}

// handle upgrades the request and forwards every broker message for the
// recipient to the socket, one text frame per message, in arrival order,
// until the client disconnects or the subscription drops.
//
// Note: a broker queue delivers each message to exactly one consumer.
// Two simultaneous connections for the same recipient therefore split the
// stream between them rather than both receiving every message.
func (h *connHandler) handle(c *gin.Context) {
	recipient := c.Param("recipient")
	log := h.logger.With().Str("recipient", recipient).Logger()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	msgs, err := h.sub.Consume(ctx, recipient)
	if err != nil {
		log.Error().Err(err).Msg("failed to attach broker subscription")
		return
	}
	log.Info().Msg("client attached")

	// The read pump exists only to detect client disconnect promptly; the
	// gateway never expects inbound frames.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for msg := range msgs {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Info().Err(err).Msg("client write failed, closing connection")
			return
		}
	}

	// msgs closed: subscription cancelled or broker dropped. The client
	// observes a closed socket and reconnects on its own.
	log.Info().Msg("subscription ended, closing connection")
}
