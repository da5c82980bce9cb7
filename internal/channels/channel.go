package channels

import (
	"context"
	"fmt"
	"strings"

	"github.com/osahon-dev/notistream/internal/domain/model"
)

// Channel is a pluggable delivery mechanism. The dispatcher only depends
// on this interface and never inspects the concrete variant, except
// through Name for error reporting.
type Channel interface {
	// Name identifies the channel in configuration and in error reports.
	Name() string

	// ConstructMessage renders the notification into the string this
	// channel delivers. It must be a pure function of the notification
	// fields and perform no I/O.
	ConstructMessage(n *model.Notification) (string, error)

	// Notify performs the side-effecting delivery of a previously
	// constructed message.
	Notify(ctx context.Context, n *model.Notification, message string) error
}

// DeliveryError wraps a single channel's failed delivery with the
// channel's identity. The dispatcher collects these instead of aborting
// sibling channels.
type DeliveryError struct {
	Channel string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("channel %s: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// DefaultMessage is the shared human-readable rendering: source display
// name, action and short description joined into one line. Channels that
// need another shape (e.g. the websocket channel's JSON body) override it.
func DefaultMessage(n *model.Notification) string {
	parts := make([]string, 0, 3)
	if n.SourceDisplayName != "" {
		parts = append(parts, n.SourceDisplayName)
	}
	if n.Action != "" {
		parts = append(parts, n.Action)
	}
	head := strings.Join(parts, " ")
	if head == "" {
		return n.ShortDescription
	}
	return head + ": " + n.ShortDescription
}
