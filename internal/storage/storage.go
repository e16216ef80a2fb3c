// Package storage persists the subsystem's local state as string values
// under fixed keys. Backends are interchangeable behind Store.
package storage

import "context"

// Keys of the persisted records. Values are JSON except BadgeCountKey, which
// holds a decimal integer, and PushTokenKey, which holds an opaque string.
const (
	PreferencesKey   = "@alonix/notification_preferences"
	NotificationsKey = "@alonix/notifications"
	BadgeCountKey    = "@alonix/badge_count"
	PushTokenKey     = "@alonix/push_token"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
