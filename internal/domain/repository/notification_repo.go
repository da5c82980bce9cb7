package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/osahon-dev/notistream/internal/domain/model"
)

var (
	// ErrNotFound is returned when a notification does not exist.
	ErrNotFound = errors.New("notification not found")

	// ErrDuplicateRecord is returned when a notification with the same ID
	// already exists.
	ErrDuplicateRecord = errors.New("notification already exists")

	// ErrUnauthorizedRead is returned when a read request's claimed
	// recipient does not match the notification's recipient.
	ErrUnauthorizedRead = errors.New("unauthorized read")
)

// NotificationRepository defines the contract for notification persistence (e.g., a database).
type NotificationRepository interface {
	// Create persists a new notification and returns it with DB-generated fields.
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)

	// GetByID retrieves a notification by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)

	// MarkRead flips the read flag of a notification. Ownership checks are
	// the caller's responsibility (see service.NotificationService).
	MarkRead(ctx context.Context, id uuid.UUID) error
}

// NotificationCache defines the contract for a caching layer.
type NotificationCache interface {
	// Get retrieves an item from the cache.
	Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)

	// Set adds an item to the cache for a specified duration.
	Set(ctx context.Context, n *model.Notification, expiration time.Duration) error

	// Delete removes an item from the cache.
	Delete(ctx context.Context, id uuid.UUID) error
}
