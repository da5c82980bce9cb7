package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	source := "user-7"
	n := NewNotification(Params{
		Source:            &source,
		SourceDisplayName: "alice",
		Recipient:         "bob",
		Category:          "messages",
		Action:            "Sent",
		ShortDescription:  "You have a new message",
	})

	require.NotEqual(t, uuid.Nil, n.ID)
	assert.False(t, n.Read, "new notifications start unread")
	assert.False(t, n.CreatedAt.IsZero())
	assert.NotNil(t, n.ExtraData, "extra data map is always usable")
	assert.Equal(t, "bob", n.Recipient)
	require.NotNil(t, n.Source)
	assert.Equal(t, "user-7", *n.Source)
}

func TestNewNotification_KeepsProvidedExtraData(t *testing.T) {
	n := NewNotification(Params{
		Recipient:        "bob",
		ShortDescription: "hi",
		ExtraData:        map[string]string{"email": "bob@example.com"},
	})

	assert.Equal(t, "bob@example.com", n.ExtraData["email"])
}
