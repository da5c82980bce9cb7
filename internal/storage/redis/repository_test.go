package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/osahon-dev/notistream/internal/domain/model"
	repo "github.com/osahon-dev/notistream/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakePrimary struct {
	records map[uuid.UUID]*model.Notification
	gets    int
}

func newFakePrimary() *fakePrimary {
	return &fakePrimary{records: make(map[uuid.UUID]*model.Notification)}
}

func (f *fakePrimary) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	f.records[n.ID] = n
	return n, nil
}

func (f *fakePrimary) GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	f.gets++
	n, ok := f.records[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return n, nil
}

func (f *fakePrimary) MarkRead(ctx context.Context, id uuid.UUID) error {
	n, ok := f.records[id]
	if !ok {
		return repo.ErrNotFound
	}
	n.Read = true
	return nil
}

type fakeCache struct {
	entries map[uuid.UUID]*model.Notification
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[uuid.UUID]*model.Notification)}
}

func (f *fakeCache) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	n, ok := f.entries[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return n, nil
}

func (f *fakeCache) Set(ctx context.Context, n *model.Notification, _ time.Duration) error {
	f.entries[n.ID] = n
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.entries, id)
	return nil
}

func newCachedRepo(primary repo.NotificationRepository, cache repo.NotificationCache) *CachedNotificationRepository {
	logger := zerolog.Nop()
	return NewCachedNotificationRepository(primary, cache, &logger)
}

// --- tests ---

func TestCachedRepository_CreateWarmsCache(t *testing.T) {
	primary := newFakePrimary()
	cache := newFakeCache()
	r := newCachedRepo(primary, cache)

	n := model.NewNotification(model.Params{Recipient: "bob", ShortDescription: "hi"})
	_, err := r.Create(context.Background(), n)
	require.NoError(t, err)

	// Subsequent reads are served without touching the primary.
	_, err = r.GetByID(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Zero(t, primary.gets)
}

func TestCachedRepository_CacheMissFallsThroughAndRepopulates(t *testing.T) {
	primary := newFakePrimary()
	cache := newFakeCache()
	n := model.NewNotification(model.Params{Recipient: "bob", ShortDescription: "hi"})
	primary.records[n.ID] = n
	r := newCachedRepo(primary, cache)

	got, err := r.GetByID(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, 1, primary.gets)

	_, err = r.GetByID(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, primary.gets, "second read served from cache")
}

func TestCachedRepository_CacheFailureFallsBackToPrimary(t *testing.T) {
	primary := newFakePrimary()
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	n := model.NewNotification(model.Params{Recipient: "bob", ShortDescription: "hi"})
	primary.records[n.ID] = n
	r := newCachedRepo(primary, cache)

	got, err := r.GetByID(context.Background(), n.ID)

	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)
}

func TestCachedRepository_MarkReadInvalidatesCache(t *testing.T) {
	primary := newFakePrimary()
	cache := newFakeCache()
	r := newCachedRepo(primary, cache)

	n := model.NewNotification(model.Params{Recipient: "bob", ShortDescription: "hi"})
	_, err := r.Create(context.Background(), n)
	require.NoError(t, err)

	require.NoError(t, r.MarkRead(context.Background(), n.ID))

	got, err := r.GetByID(context.Background(), n.ID)
	require.NoError(t, err)
	assert.True(t, got.Read, "stale unread copy must not survive in the cache")
}

func TestCachedRepository_NotFoundPassesThrough(t *testing.T) {
	r := newCachedRepo(newFakePrimary(), newFakeCache())

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repo.ErrNotFound)
}
