package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osahon-dev/notistream/internal/channels"
	"github.com/osahon-dev/notistream/internal/config"
	deliveryHTTP "github.com/osahon-dev/notistream/internal/delivery/http"
	"github.com/osahon-dev/notistream/internal/dispatch"
	repo "github.com/osahon-dev/notistream/internal/domain/repository"
	"github.com/osahon-dev/notistream/internal/event"
	"github.com/osahon-dev/notistream/internal/gateway"
	"github.com/osahon-dev/notistream/internal/logger"
	"github.com/osahon-dev/notistream/internal/service"
	"github.com/osahon-dev/notistream/internal/storage/postgres"
	"github.com/osahon-dev/notistream/internal/storage/rabbitmq"
	"github.com/osahon-dev/notistream/internal/storage/redis"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// CommonModule provides dependencies that are shared between the API and Gateway applications.
var CommonModule = fx.Options(
	fx.Provide(
		config.NewConfig,
		logger.NewLogger,
		rabbitmq.NewConnection,
	),

	fx.Invoke(func(conn *amqp.Connection, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return conn.Close()
			},
		})
	}),
)

// APIModule defines the Fx module for the producer-side API application.
var APIModule = fx.Options(
	CommonModule,
	fx.Provide(
		// Storage layer - concrete implementations
		postgres.NewPool,
		redis.NewClient,
		postgres.NewNotificationRepository,
		redis.NewNotificationCache,
		rabbitmq.NewPublisher,

		// Core components
		event.NewBus,
		channels.NewRegistry,
		dispatch.NewDispatcher,
		service.NewNotificationService,

		// API-specific components
		deliveryHTTP.NewHandlers,
		deliveryHTTP.NewServer,
	),

	fx.Decorate(func(
		pgRepo *postgres.NotificationRepository,
		cache *redis.NotificationCache,
		logger *zerolog.Logger,
	) repo.NotificationRepository {
		return redis.NewCachedNotificationRepository(pgRepo, cache, logger)
	}),

	// The dispatcher and the read authorizer listen on the event bus; the
	// HTTP layer only ever emits events.
	fx.Invoke(func(bus *event.Bus, d *dispatch.Dispatcher, svc *service.NotificationService) {
		bus.Subscribe(event.Notify, d.HandleNotify)
		bus.Subscribe(event.Read, svc.HandleRead)
	}),

	fx.Invoke(func(pool *pgxpool.Pool, client *goredis.Client, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				pool.Close()
				return client.Close()
			},
		})
	}),

	fx.Invoke(func(server *deliveryHTTP.Server, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						panic(err)
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
		})
	}),
)

// GatewayModule defines the Fx module for the websocket gateway application.
var GatewayModule = fx.Options(
	CommonModule,
	fx.Provide(
		rabbitmq.NewSubscriber,
		func(s *rabbitmq.Subscriber) gateway.QueueSubscriber { return s },
		gateway.NewServer,
	),

	fx.Invoke(func(server *gateway.Server, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						panic(err)
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
		})
	}),
)
