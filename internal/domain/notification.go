package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidNotification is returned when a record fails validation.
var ErrInvalidNotification = errors.New("invalid notification")

// Record is a received notification as kept in the local feed.
type Record struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Type      Category       `json:"type"`
	Timestamp string         `json:"timestamp"`
	Read      bool           `json:"read"`
	Data      map[string]any `json:"data,omitempty"`
}

// Time parses the record timestamp. A zero time is returned on bad input.
func (r Record) Time() time.Time {
	t, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Navigation returns the deep-link target of the record.
func (r Record) Navigation() NavigationTarget {
	return r.Type.Navigation(r.Data)
}

// Validate checks the fields the feed relies on.
func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidNotification)
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidNotification, r.Type)
	}
	if _, err := time.Parse(time.RFC3339, r.Timestamp); err != nil {
		return fmt.Errorf("%w: bad timestamp: %v", ErrInvalidNotification, err)
	}
	return nil
}

// Incoming is the payload handed over by the platform delivery system.
type Incoming struct {
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

// Category returns the category named by Data["category"], defaulting to system.
func (in Incoming) Category() Category {
	if in.Data == nil {
		return CategorySystem
	}
	s, _ := in.Data["category"].(string)
	return CategoryOrSystem(s)
}

// ToRecord builds the feed record for an incoming notification.
func (in Incoming) ToRecord(id string, now time.Time) Record {
	return Record{
		ID:        id,
		Title:     in.Title,
		Message:   in.Body,
		Type:      in.Category(),
		Timestamp: now.UTC().Format(time.RFC3339),
		Data:      in.Data,
	}
}
