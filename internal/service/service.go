// Package service wires preferences, the delivery gate, the feed and the
// badge counter to a device platform. A Service is built once at startup and
// passed to whatever drives it: the CLI, the HTTP receiver or the TUI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cristianoliveira/alonix-notify/internal/badge"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/feed"
	"github.com/cristianoliveira/alonix-notify/internal/gate"
	"github.com/cristianoliveira/alonix-notify/internal/logging"
	"github.com/cristianoliveira/alonix-notify/internal/metrics"
	"github.com/cristianoliveira/alonix-notify/internal/platform"
	"github.com/cristianoliveira/alonix-notify/internal/preferences"
	"github.com/cristianoliveira/alonix-notify/internal/storage"
	"github.com/google/uuid"
)

// Options configures a Service. Store and Platform are required.
type Options struct {
	Store     storage.Store
	Platform  platform.Platform
	Logger    logging.Logger
	Metrics   *metrics.Delivery
	FeedLimit int

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// Service is the notification subsystem.
type Service struct {
	kv       storage.Store
	platform platform.Platform
	prefs    *preferences.Store
	feed     *feed.Store
	badge    *badge.Counter
	log      logging.Logger
	metrics  *metrics.Delivery
	now      func() time.Time
	newID    func() string

	// mu serializes operations touching persisted state.
	mu        sync.Mutex
	listeners *listeners
}

// Receipt is the outcome of handling one incoming notification. The record
// is stored even when a platform step failed.
type Receipt struct {
	Result
	Record   domain.Record `json:"record"`
	Decision gate.Decision `json:"decision"`
}

// New builds a Service.
func New(opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, errors.New("service: store is required")
	}
	if opts.Platform == nil {
		return nil, errors.New("service: platform is required")
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	counter := badge.NewCounter(opts.Store, opts.Platform, log)
	return &Service{
		kv:        opts.Store,
		platform:  opts.Platform,
		prefs:     preferences.NewStore(opts.Store, log),
		feed:      feed.NewStore(opts.Store, counter, opts.FeedLimit, log),
		badge:     counter,
		log:       log.With("component", "service"),
		metrics:   opts.Metrics,
		now:       now,
		newID:     newID,
		listeners: newListeners(),
	}, nil
}

// Init checks the device, asks for permission, creates every channel and
// stores the push token.
func (s *Service) Init(ctx context.Context) Result {
	if !s.platform.IsPhysicalDevice() {
		s.log.Warn("not a physical device, notifications disabled")
		return fail(ErrNoDevice)
	}

	granted, err := s.platform.RequestPermissions(ctx)
	if err != nil {
		return s.platformFailure("request_permissions", err)
	}
	if !granted {
		s.log.Warn("notification permission denied")
		return fail(ErrPermissionDenied)
	}

	var channelErr error
	for _, ch := range domain.Channels() {
		if err := s.platform.CreateChannel(ctx, ch); err != nil {
			s.metrics.IncPlatformFailure("create_channel")
			s.log.Error("create channel failed", "channel", ch.ID, "error", err)
			if channelErr == nil {
				channelErr = fmt.Errorf("create channel %s: %w", ch.ID, err)
			}
		}
	}
	if channelErr != nil {
		return fail(channelErr)
	}

	token, err := s.platform.GetToken(ctx)
	if err != nil {
		return s.platformFailure("get_token", err)
	}
	if err := s.kv.Set(ctx, storage.PushTokenKey, token); err != nil {
		s.log.Error("persist push token failed", "error", err)
	}
	s.log.Info("notifications initialized", "token", token)
	return succeed("")
}

// PushToken returns the token stored by the last successful Init.
func (s *Service) PushToken(ctx context.Context) (string, bool) {
	token, found, err := s.kv.Get(ctx, storage.PushTokenKey)
	if err != nil {
		s.log.Warn("read push token failed", "error", err)
		return "", false
	}
	return token, found && token != ""
}

// Receive handles a notification delivered by the platform: it presents it
// as the gate decides, vibrates, bumps the badge and records it in the feed.
// A failing step does not undo the previous ones.
func (s *Service) Receive(ctx context.Context, in domain.Incoming) Receipt {
	start := time.Now()
	defer func() { s.metrics.ObserveReceive(time.Since(start)) }()

	s.mu.Lock()
	receipt := s.receive(ctx, in)
	s.mu.Unlock()

	s.listeners.emitReceived(receipt)
	return receipt
}

func (s *Service) receive(ctx context.Context, in domain.Incoming) Receipt {
	category := in.Category()
	now := s.now()
	decision := gate.DecideAt(category, s.prefs.Get(ctx), now)
	s.metrics.IncReceived(category.String())
	s.metrics.IncDecision(string(decision.Reason))

	var firstErr error
	note := func(op string, err error) {
		s.metrics.IncPlatformFailure(op)
		s.log.Error("platform call failed", "op", op, "error", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", op, err)
		}
	}

	content := platform.ContentFor(category, in.Title, in.Body, in.Data)
	content.Sound = decision.ShouldPlaySound
	content.Priority = decision.Priority
	how := platform.Presentation{
		Alert: decision.ShouldAlert,
		Sound: decision.ShouldPlaySound,
		Badge: decision.ShouldSetBadge,
	}
	if err := s.platform.Present(ctx, content, how); err != nil {
		note("present", err)
	}

	if decision.ShouldAlert {
		if err := s.platform.Vibrate(ctx, category.Channel().Vibration); err != nil {
			note("vibrate", err)
		}
	}

	if decision.ShouldSetBadge {
		s.metrics.SetBadge(s.badge.Increment(ctx))
	}

	rec := in.ToRecord(s.newID(), now)
	s.feed.Record(ctx, rec)
	s.log.Info("notification received",
		"id", rec.ID, "category", category.String(), "reason", string(decision.Reason))

	receipt := Receipt{Result: succeed(rec.ID), Record: rec, Decision: decision}
	if firstErr != nil {
		receipt.Result = fail(firstErr)
		receipt.ID = rec.ID
	}
	return receipt
}

// Open handles a tap on a notification: it marks the record read and
// returns where the app should navigate.
func (s *Service) Open(ctx context.Context, id string) (domain.NavigationTarget, Result) {
	s.mu.Lock()
	rec, ok := s.feed.Get(ctx, id)
	if !ok {
		s.mu.Unlock()
		return domain.NavigationTarget{}, fail(fmt.Errorf("open %s: %w", id, ErrNotFound))
	}
	s.markRead(ctx, rec)
	rec.Read = true
	s.mu.Unlock()

	target := rec.Navigation()
	s.log.Debug("notification opened", "id", id, "screen", target.Screen)
	s.listeners.emitOpened(rec, target)
	return target, succeed(id)
}

// MarkRead acknowledges a notification. The badge goes down only when the
// record was unread.
func (s *Service) MarkRead(ctx context.Context, id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.feed.Get(ctx, id)
	if !ok {
		return fail(fmt.Errorf("mark read %s: %w", id, ErrNotFound))
	}
	s.markRead(ctx, rec)
	return succeed(id)
}

func (s *Service) markRead(ctx context.Context, rec domain.Record) {
	if rec.Read {
		return
	}
	s.feed.MarkRead(ctx, rec.ID)
	s.metrics.SetBadge(s.badge.Decrement(ctx))
}

// MarkUnread flips a record back to unread. The badge is left alone.
func (s *Service) MarkUnread(ctx context.Context, id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.feed.Get(ctx, id); !ok {
		return fail(fmt.Errorf("mark unread %s: %w", id, ErrNotFound))
	}
	s.feed.MarkUnread(ctx, id)
	return succeed(id)
}

// Toggle flips the read flag of a record.
func (s *Service) Toggle(ctx context.Context, id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.feed.Get(ctx, id)
	if !ok {
		return fail(fmt.Errorf("toggle %s: %w", id, ErrNotFound))
	}
	if rec.Read {
		s.feed.MarkUnread(ctx, id)
	} else {
		s.markRead(ctx, rec)
	}
	return succeed(id)
}

// Delete removes a record. Deleting an unread record lowers the badge.
func (s *Service) Delete(ctx context.Context, id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.feed.Get(ctx, id)
	if !ok {
		return fail(fmt.Errorf("delete %s: %w", id, ErrNotFound))
	}
	s.feed.Delete(ctx, id)
	if !rec.Read {
		s.metrics.SetBadge(s.badge.Decrement(ctx))
	}
	return succeed(id)
}

// ClearAll empties the feed, resets the badge and dismisses every
// notification on screen.
func (s *Service) ClearAll(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed.ClearAll(ctx)
	s.metrics.SetBadge(0)
	if err := s.platform.DismissAll(ctx); err != nil {
		return s.platformFailure("dismiss_all", err)
	}
	return succeed("")
}

// List returns the feed, most recent first.
func (s *Service) List(ctx context.Context) []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed.List(ctx)
}

// Get returns one record.
func (s *Service) Get(ctx context.Context, id string) (domain.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed.Get(ctx, id)
}

// UnreadCount counts unread records in the feed.
func (s *Service) UnreadCount(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed.UnreadCount(ctx)
}

// Badge returns the badge count.
func (s *Service) Badge(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.badge.Get(ctx)
}

// SetBadge overwrites the badge count.
func (s *Service) SetBadge(ctx context.Context, n int) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.SetBadge(s.badge.Set(ctx, n))
	return succeed("")
}

// Preferences returns the stored preferences or the defaults.
func (s *Service) Preferences(ctx context.Context) domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Get(ctx)
}

// SetPreferences replaces the preferences record.
func (s *Service) SetPreferences(ctx context.Context, p domain.Preferences) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.prefs.Set(ctx, p); err != nil {
		return fail(err)
	}
	return succeed("")
}

// UpdatePreferences reads the record, applies fn and writes it back.
func (s *Service) UpdatePreferences(ctx context.Context, fn func(domain.Preferences) domain.Preferences) (domain.Preferences, Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := fn(s.prefs.Get(ctx))
	if err := s.prefs.Set(ctx, p); err != nil {
		return s.prefs.Get(ctx), fail(err)
	}
	return p.Normalize(), succeed("")
}

// Schedule queues a local notification of the given category.
func (s *Service) Schedule(ctx context.Context, category domain.Category, title, body string, data map[string]any, trigger platform.Trigger) Result {
	if data == nil {
		data = map[string]any{}
	}
	data["category"] = category.String()
	content := platform.ContentFor(category, title, body, data)
	id, err := s.platform.Schedule(ctx, content, trigger)
	if err != nil {
		return s.platformFailure("schedule", err)
	}
	s.log.Info("local notification scheduled", "id", id, "category", category.String(), "seconds", trigger.Seconds)
	return succeed(id)
}

// Cancel drops a scheduled notification.
func (s *Service) Cancel(ctx context.Context, id string) Result {
	if err := s.platform.Cancel(ctx, id); err != nil {
		return s.platformFailure("cancel", err)
	}
	return succeed(id)
}

// CancelAll drops every scheduled notification.
func (s *Service) CancelAll(ctx context.Context) Result {
	if err := s.platform.CancelAll(ctx); err != nil {
		return s.platformFailure("cancel_all", err)
	}
	return succeed("")
}

// OnReceived registers fn for every handled notification.
func (s *Service) OnReceived(fn ReceivedFunc) Subscription {
	return s.listeners.addReceived(fn)
}

// OnOpened registers fn for every opened notification.
func (s *Service) OnOpened(fn OpenedFunc) Subscription {
	return s.listeners.addOpened(fn)
}

func (s *Service) platformFailure(op string, err error) Result {
	s.metrics.IncPlatformFailure(op)
	s.log.Error("platform call failed", "op", op, "error", err)
	return fail(fmt.Errorf("%s: %w", op, err))
}
