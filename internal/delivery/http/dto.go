package http

import (
	"time"

	"github.com/google/uuid"
)

// CreateNotificationRequest defines the structure for raising a new
// notification event.
// It uses `json` tags for unmarshalling and `binding` for validation with Gin.
type CreateNotificationRequest struct {
	Source            *string           `json:"source,omitempty"`
	SourceDisplayName string            `json:"source_display_name"`
	Recipient         string            `json:"recipient" binding:"required"`
	Category          string            `json:"category"`
	Action            string            `json:"action" binding:"required"`
	Obj               string            `json:"obj,omitempty"`
	ShortDescription  string            `json:"short_description" binding:"required"`
	URL               string            `json:"url,omitempty"`
	Silent            bool              `json:"silent"`
	ExtraData         map[string]string `json:"extra_data,omitempty"`
}

// MarkReadRequest carries the recipient claiming to have read a notification.
type MarkReadRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

// NotificationResponse defines the structure for a standard notification response.
type NotificationResponse struct {
	ID                uuid.UUID         `json:"id"`
	Source            *string           `json:"source,omitempty"`
	SourceDisplayName string            `json:"source_display_name"`
	Recipient         string            `json:"recipient"`
	Category          string            `json:"category"`
	Action            string            `json:"action"`
	Obj               string            `json:"obj,omitempty"`
	ShortDescription  string            `json:"short_description"`
	URL               string            `json:"url,omitempty"`
	ExtraData         map[string]string `json:"extra_data"`
	Read              bool              `json:"read"`
	CreatedAt         time.Time         `json:"created_at"`
}

// ErrorResponse defines a standard structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
