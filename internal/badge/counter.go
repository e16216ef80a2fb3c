// Package badge keeps the app-icon unread count.
package badge

import (
	"context"
	"strconv"
	"strings"

	"github.com/cristianoliveira/alonix-notify/internal/logging"
	"github.com/cristianoliveira/alonix-notify/internal/storage"
)

// Setter pushes the count to the device icon.
type Setter interface {
	SetBadge(ctx context.Context, count int) error
}

// Counter is a persisted non-negative integer. Every call reads the stored
// value, so several processes sharing one store see each other's writes.
// Write failures are logged.
type Counter struct {
	kv     storage.Store
	device Setter
	log    logging.Logger
}

// NewCounter returns a counter over kv. device may be nil.
func NewCounter(kv storage.Store, device Setter, log logging.Logger) *Counter {
	if log == nil {
		log = logging.Nop()
	}
	return &Counter{kv: kv, device: device, log: log.With("component", "badge")}
}

// Get returns the current count.
func (c *Counter) Get(ctx context.Context) int {
	return c.read(ctx)
}

// Increment adds one and returns the new count.
func (c *Counter) Increment(ctx context.Context) int {
	return c.Set(ctx, c.Get(ctx)+1)
}

// Decrement subtracts one, never going below zero.
func (c *Counter) Decrement(ctx context.Context) int {
	return c.Set(ctx, c.Get(ctx)-1)
}

// Set stores n, clamped at zero, and returns the stored value.
func (c *Counter) Set(ctx context.Context, n int) int {
	if n < 0 {
		n = 0
	}
	if err := c.kv.Set(ctx, storage.BadgeCountKey, strconv.Itoa(n)); err != nil {
		c.log.Error("persist badge count failed", "count", n, "error", err)
	}
	if c.device != nil {
		if err := c.device.SetBadge(ctx, n); err != nil {
			c.log.Warn("set device badge failed", "count", n, "error", err)
		}
	}
	return n
}

func (c *Counter) read(ctx context.Context) int {
	raw, found, err := c.kv.Get(ctx, storage.BadgeCountKey)
	if err != nil {
		c.log.Warn("read badge count failed", "error", err)
		return 0
	}
	if !found {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		c.log.Warn("stored badge count invalid", "value", raw)
		return 0
	}
	return n
}
