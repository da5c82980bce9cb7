package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/osahon-dev/notistream/internal/domain/model"
	repo "github.com/osahon-dev/notistream/internal/domain/repository"
	"github.com/rs/zerolog"
)

// NotificationService encapsulates the read-side business logic: fetching
// notifications and authorizing read acknowledgements.
type NotificationService struct {
	repo   repo.NotificationRepository
	logger zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(r repo.NotificationRepository, logger *zerolog.Logger) *NotificationService {
	return &NotificationService{
		repo:   r,
		logger: logger.With().Str("layer", "service").Logger(),
	}
}

// GetNotification retrieves a notification by its ID.
func (s *NotificationService) GetNotification(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Stringer("id", id).Msg("failed to get notification")
		return nil, err
	}
	return n, nil
}

// MarkRead marks a notification as read on behalf of claimedRecipient.
// The claimed recipient must match the record's recipient: the read path
// is reachable from client-supplied identifiers, and a mismatch must not
// disclose or mutate another recipient's notification. On mismatch the
// call fails with ErrUnauthorizedRead and the record is untouched.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID, claimedRecipient string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if n.Recipient != claimedRecipient {
		s.logger.Warn().
			Stringer("notification_id", id).
			Str("owner", n.Recipient).
			Str("claimed", claimedRecipient).
			Msg("rejected read for wrong recipient")
		return repo.ErrUnauthorizedRead
	}

	if n.Read {
		return nil
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		s.logger.Error().Err(err).Stringer("notification_id", id).Msg("failed to mark notification read")
		return err
	}
	s.logger.Info().Stringer("notification_id", id).Str("recipient", claimedRecipient).Msg("notification marked read")
	return nil
}

// HandleRead adapts MarkRead to the event bus.
func (s *NotificationService) HandleRead(ctx context.Context, payload any) error {
	req, ok := payload.(model.ReadRequest)
	if !ok {
		return fmt.Errorf("service: unexpected payload type %T", payload)
	}
	return s.MarkRead(ctx, req.NotificationID, req.Recipient)
}
