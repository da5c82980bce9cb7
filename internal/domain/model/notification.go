package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the core business entity of the application. The same
// struct is used as the ephemeral event payload handed to the dispatcher
// and, once persisted, as the stored record.
// It is technology-agnostic and does not contain any DB or JSON tags.
type Notification struct {
	ID uuid.UUID

	// Source optionally identifies the actor that caused the notification.
	// It is nil for system-generated notifications.
	Source *string

	// SourceDisplayName is the human-readable name of the actor, used when
	// constructing messages. Required whenever Source is set.
	SourceDisplayName string

	// Recipient is the stable identifier (e.g. username) of the addressed
	// actor. It also names the recipient's broker queue.
	Recipient string

	Category string // Free-form grouping string, not enumerated.
	Action   string // Free-form verb, e.g. "Sent", "Commented".

	// Obj is a loosely typed key of a related domain object. Not validated.
	Obj string

	ShortDescription string
	URL              string

	// Silent notifications are delivered to channels but never persisted.
	Silent bool

	// ExtraData carries arbitrary per-notification key/value pairs. The
	// dispatcher does not interpret them; channels may (e.g. the email
	// channel reads the recipient address from here).
	ExtraData map[string]string

	Read      bool
	CreatedAt time.Time
}

// Params bundles the caller-supplied fields for NewNotification.
type Params struct {
	Source            *string
	SourceDisplayName string
	Recipient         string
	Category          string
	Action            string
	Obj               string
	ShortDescription  string
	URL               string
	Silent            bool
	ExtraData         map[string]string
}

// NewNotification is a factory function to create a new unread notification.
func NewNotification(p Params) *Notification {
	extra := p.ExtraData
	if extra == nil {
		extra = map[string]string{}
	}
	return &Notification{
		ID:                uuid.New(),
		Source:            p.Source,
		SourceDisplayName: p.SourceDisplayName,
		Recipient:         p.Recipient,
		Category:          p.Category,
		Action:            p.Action,
		Obj:               p.Obj,
		ShortDescription:  p.ShortDescription,
		URL:               p.URL,
		Silent:            p.Silent,
		ExtraData:         extra,
		Read:              false,
		CreatedAt:         time.Now().UTC(),
	}
}

// ReadRequest is the payload of a read-acknowledgement event: a client
// claims that Recipient has read the notification identified by ID.
type ReadRequest struct {
	NotificationID uuid.UUID
	Recipient      string
}
