package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osahon-dev/notistream/internal/domain/model"
	repo "github.com/osahon-dev/notistream/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Ensure NotificationRepository implements the interface
var _ repo.NotificationRepository = (*NotificationRepository)(nil)

const (
	insertNotification = `
		INSERT INTO notifications (
			id, source, source_display_name, recipient, category, action,
			obj, short_description, url, extra_data, read
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE)
		RETURNING created_at`

	selectNotification = `
		SELECT id, source, source_display_name, recipient, category, action,
		       obj, short_description, url, extra_data, read, created_at
		FROM notifications
		WHERE id = $1`

	updateNotificationRead = `
		UPDATE notifications SET read = TRUE WHERE id = $1`
)

// NotificationRepository implements the domain repository interface using
// PostgreSQL as a backend.
type NotificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNotificationRepository creates a new instance of the NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *NotificationRepository {
	return &NotificationRepository{
		pool:   pool,
		logger: logger.With().Str("layer", "postgres_repository").Logger(),
	}
}

// Create persists a new notification and returns it with the DB-generated
// creation timestamp.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	// ExtraData is stored as a JSON document in a text column; the store
	// never interprets its contents.
	extra, err := json.Marshal(n.ExtraData)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to encode extra data")
		return nil, fmt.Errorf("postgres: encode extra data: %w", err)
	}

	var source pgtype.Text
	if n.Source != nil {
		source = pgtype.Text{String: *n.Source, Valid: true}
	}

	created := *n
	err = r.pool.QueryRow(ctx, insertNotification,
		n.ID, source, n.SourceDisplayName, n.Recipient, n.Category, n.Action,
		n.Obj, n.ShortDescription, n.URL, string(extra),
	).Scan(&created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, repo.ErrDuplicateRecord
		}
		r.logger.Err(err).Msg("cannot create notification")
		return nil, fmt.Errorf("postgres: insert notification: %w", err)
	}
	created.Read = false

	return &created, nil
}

// GetByID retrieves a notification by its unique ID.
func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var (
		n      model.Notification
		source pgtype.Text
		extra  string
	)
	err := r.pool.QueryRow(ctx, selectNotification, id).Scan(
		&n.ID, &source, &n.SourceDisplayName, &n.Recipient, &n.Category,
		&n.Action, &n.Obj, &n.ShortDescription, &n.URL, &extra, &n.Read,
		&n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn().Stringer("id", id).Msg("notification not found by id")
			return nil, repo.ErrNotFound
		}
		r.logger.Err(err).Str("method", "GetByID").Msg("cannot get notification")
		return nil, fmt.Errorf("postgres: select notification: %w", err)
	}

	if source.Valid {
		n.Source = &source.String
	}
	if err := json.Unmarshal([]byte(extra), &n.ExtraData); err != nil {
		r.logger.Err(err).Stringer("id", id).Msg("cannot decode extra data")
		return nil, fmt.Errorf("postgres: decode extra data: %w", err)
	}

	return &n, nil
}

// MarkRead flips the read flag of a notification.
func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, updateNotificationRead, id)
	if err != nil {
		r.logger.Err(err).Stringer("id", id).Msg("cannot mark notification read")
		return fmt.Errorf("postgres: update notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn().Stringer("id", id).Msg("tried to mark non-existent notification read")
		return repo.ErrNotFound
	}
	return nil
}
