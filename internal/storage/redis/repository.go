package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/osahon-dev/notistream/internal/domain/model"
	repo "github.com/osahon-dev/notistream/internal/domain/repository"
	"github.com/rs/zerolog"
)

// cacheTTL bounds how long a notification stays cached after a read.
const cacheTTL = 10 * time.Minute

// Ensure CachedNotificationRepository implements the interface
var _ repo.NotificationRepository = (*CachedNotificationRepository)(nil)

// CachedNotificationRepository is a decorator for a NotificationRepository
// that adds a cache-aside layer using Redis. Cache failures are logged and
// ignored; the primary repository is always the source of truth.
type CachedNotificationRepository struct {
	primaryRepo repo.NotificationRepository
	cache       repo.NotificationCache
	logger      zerolog.Logger
}

// NewCachedNotificationRepository wraps primary with the caching layer.
func NewCachedNotificationRepository(primary repo.NotificationRepository, cache repo.NotificationCache, logger *zerolog.Logger) *CachedNotificationRepository {
	return &CachedNotificationRepository{
		primaryRepo: primary,
		cache:       cache,
		logger:      logger.With().Str("layer", "cached_repository").Logger(),
	}
}

// Create persists through the primary repository and warms the cache.
func (r *CachedNotificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	created, err := r.primaryRepo.Create(ctx, n)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, created, cacheTTL); err != nil {
		r.logger.Warn().Err(err).Stringer("id", created.ID).Msg("failed to warm cache after create")
	}
	return created, nil
}

// GetByID implements cache-aside: cache hit wins, miss falls through to
// the primary repository and repopulates the cache.
func (r *CachedNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	cached, err := r.cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		r.logger.Warn().Err(err).Stringer("id", id).Msg("cache lookup failed, falling back to primary")
	}

	n, err := r.primaryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, n, cacheTTL); err != nil {
		r.logger.Warn().Err(err).Stringer("id", id).Msg("failed to repopulate cache")
	}
	return n, nil
}

// MarkRead updates the primary repository and invalidates the cache entry.
func (r *CachedNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := r.primaryRepo.MarkRead(ctx, id); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		r.logger.Warn().Err(err).Stringer("id", id).Msg("failed to invalidate cache after read")
	}
	return nil
}
