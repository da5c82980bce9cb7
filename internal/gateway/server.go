// Package gateway implements the standalone websocket server that bridges
// per-recipient broker queues to live client connections.
package gateway

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/osahon-dev/notistream/internal/config"
	"github.com/rs/zerolog"
)

// QueueSubscriber attaches a consumer to a recipient's broker queue and
// yields raw message bodies in delivery order. The returned channel closes
// when ctx is cancelled or the broker drops the subscription.
type QueueSubscriber interface {
	Consume(ctx context.Context, recipient string) (<-chan []byte, error)
}

// Server is a wrapper for the gateway HTTP server.
type Server struct {
	*http.Server
	logger zerolog.Logger
}

// NewServer creates and configures the gateway server. The single
// websocket route is /:recipient — the path segment is the recipient's
// stable identifier, taken verbatim. Authentication is assumed to be
// handled by the deployment's network perimeter.
func NewServer(cfg *config.Config, sub QueueSubscriber, logger *zerolog.Logger) *Server {
	log := logger.With().Str("layer", "gateway_server").Logger()
	log.Info().Str("mode", cfg.Gateway.GinMode).Msg("initializing gateway server")

	gin.SetMode(cfg.Gateway.GinMode)
	router := newRouter(sub, logger)

	server := &http.Server{
		Addr:    cfg.Gateway.Port,
		Handler: router,
	}

	return &Server{server, log}
}

// newRouter wires the websocket and health routes onto a gin engine.
func newRouter(sub QueueSubscriber, logger *zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := newConnHandler(sub, logger)
	router.GET("/:recipient", h.handle)

	return router
}
