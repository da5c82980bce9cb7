package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/osahon-dev/notistream/internal/domain/model"
	repo "github.com/osahon-dev/notistream/internal/domain/repository"
	"github.com/osahon-dev/notistream/internal/event"
	"github.com/osahon-dev/notistream/internal/service"
	"github.com/rs/zerolog"
)

// Handlers exposes the producer-side HTTP surface. It raises events on the
// bus rather than calling the dispatcher directly, so any other subscribed
// listener sees the same events.
type Handlers struct {
	bus     *event.Bus
	service *service.NotificationService
	logger  zerolog.Logger
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(bus *event.Bus, svc *service.NotificationService, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		bus:     bus,
		service: svc,
		logger:  logger.With().Str("layer", "http_handler").Logger(),
	}
}

// RegisterRoutes sets up the routing for the notification API.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/notifications", h.CreateNotification)
		api.GET("/notifications/:id", h.GetNotificationByID)
		api.POST("/notifications/:id/read", h.MarkNotificationRead)
	}
}

// CreateNotification raises a notify event. Channel-level partial failures
// are logged by the dispatcher and do not fail the request; only a fatal
// persistence error does.
func (h *Handlers) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	n := model.NewNotification(model.Params{
		Source:            req.Source,
		SourceDisplayName: req.SourceDisplayName,
		Recipient:         req.Recipient,
		Category:          req.Category,
		Action:            req.Action,
		Obj:               req.Obj,
		ShortDescription:  req.ShortDescription,
		URL:               req.URL,
		Silent:            req.Silent,
		ExtraData:         req.ExtraData,
	})

	if err := h.bus.Emit(c.Request.Context(), event.Notify, n); err != nil {
		if errors.Is(err, repo.ErrDuplicateRecord) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error().Err(err).Msg("failed to dispatch notification")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to dispatch notification"})
		return
	}

	c.JSON(http.StatusAccepted, toNotificationResponse(n))
}

// GetNotificationByID handles the HTTP request to retrieve a notification.
func (h *Handlers) GetNotificationByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	n, err := h.service.GetNotification(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error().Err(err).Stringer("id", id).Msg("failed to get notification by id")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to retrieve notification"})
		return
	}

	c.JSON(http.StatusOK, toNotificationResponse(n))
}

// MarkNotificationRead raises a read event for the claimed recipient.
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	err := h.bus.Emit(c.Request.Context(), event.Read, model.ReadRequest{
		NotificationID: id,
		Recipient:      req.Recipient,
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: repo.ErrNotFound.Error()})
		case errors.Is(err, repo.ErrUnauthorizedRead):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: repo.ErrUnauthorizedRead.Error()})
		default:
			h.logger.Error().Err(err).Stringer("id", id).Msg("failed to mark notification read")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to mark notification read"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID extracts the notification id path parameter, writing the error
// response itself on failure.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notification ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// toNotificationResponse is a helper function to map the domain model to the DTO.
func toNotificationResponse(n *model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:                n.ID,
		Source:            n.Source,
		SourceDisplayName: n.SourceDisplayName,
		Recipient:         n.Recipient,
		Category:          n.Category,
		Action:            n.Action,
		Obj:               n.Obj,
		ShortDescription:  n.ShortDescription,
		URL:               n.URL,
		ExtraData:         n.ExtraData,
		Read:              n.Read,
		CreatedAt:         n.CreatedAt,
	}
}
