// Package platform abstracts the device notification subsystem: permissions,
// push token, channels, presentation, scheduling, badge and vibration.
package platform

import (
	"context"
	"errors"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
)

var (
	// ErrNoDevice is returned when push notifications need a physical device.
	ErrNoDevice = errors.New("push notifications require a physical device")

	// ErrPermissionDenied is returned when the user declined notifications.
	ErrPermissionDenied = errors.New("notification permission denied")

	// ErrUnknownNotification is returned when cancelling an id that is not pending.
	ErrUnknownNotification = errors.New("no pending notification with that id")
)

// Content is what a notification shows.
type Content struct {
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]any    `json:"data,omitempty"`
	ChannelID string            `json:"channelId,omitempty"`
	Sound     bool              `json:"sound"`
	Priority  domain.Importance `json:"priority"`
}

// ContentFor builds the content of a notification of the given category.
func ContentFor(c domain.Category, title, body string, data map[string]any) Content {
	ch := c.Channel()
	return Content{
		Title:     title,
		Body:      body,
		Data:      data,
		ChannelID: ch.ID,
		Sound:     ch.Sound != "",
		Priority:  ch.Importance,
	}
}

// Trigger delays a scheduled notification. The zero Trigger fires immediately.
type Trigger struct {
	Seconds int `json:"seconds"`
}

// Immediate reports whether the trigger fires right away.
func (t Trigger) Immediate() bool { return t.Seconds <= 0 }

// Presentation controls how a received notification is shown.
type Presentation struct {
	Alert bool
	Sound bool
	Badge bool
}

// Platform is the device notification subsystem.
type Platform interface {
	IsPhysicalDevice() bool
	RequestPermissions(ctx context.Context) (bool, error)
	GetToken(ctx context.Context) (string, error)
	CreateChannel(ctx context.Context, ch domain.Channel) error

	// Present shows a received notification.
	Present(ctx context.Context, content Content, how Presentation) error

	// Schedule queues a local notification and returns its id.
	Schedule(ctx context.Context, content Content, trigger Trigger) (string, error)
	Cancel(ctx context.Context, id string) error
	CancelAll(ctx context.Context) error
	DismissAll(ctx context.Context) error

	SetBadge(ctx context.Context, count int) error
	Vibrate(ctx context.Context, pattern []int) error
}
