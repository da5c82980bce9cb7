// Package keybuilder centralizes construction of cache key names.
package keybuilder

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	Redis        string = "redis"
	Notification string = "notification"
)

// RedisNotificationKeyBuild returns the cache key for a notification record.
func RedisNotificationKeyBuild(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", Redis, Notification, id)
}
