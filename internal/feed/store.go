// Package feed keeps the locally cached list of received notifications,
// most recent first and capped in length.
package feed

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/cristianoliveira/alonix-notify/internal/badge"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/logging"
	"github.com/cristianoliveira/alonix-notify/internal/storage"
)

// DefaultLimit is the maximum number of records kept.
const DefaultLimit = 100

// Store persists the feed as one JSON array. Mutations never fail from the
// caller's point of view: write errors are logged and the feed is treated as
// a best-effort cache.
type Store struct {
	kv    storage.Store
	badge *badge.Counter
	limit int
	log   logging.Logger
}

// NewStore returns a feed over kv. A limit <= 0 means DefaultLimit.
func NewStore(kv storage.Store, counter *badge.Counter, limit int, log logging.Logger) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Store{kv: kv, badge: counter, limit: limit, log: log.With("component", "feed")}
}

// Record prepends rec and drops the oldest entries beyond the limit.
func (s *Store) Record(ctx context.Context, rec domain.Record) {
	records := s.load(ctx)
	records = append([]domain.Record{rec}, records...)
	if len(records) > s.limit {
		dropped := len(records) - s.limit
		records = records[:s.limit]
		s.log.Debug("feed truncated", "dropped", dropped)
	}
	s.save(ctx, records)
}

// MarkRead sets the read flag on id.
func (s *Store) MarkRead(ctx context.Context, id string) {
	s.setRead(ctx, id, true)
}

// MarkUnread clears the read flag on id.
func (s *Store) MarkUnread(ctx context.Context, id string) {
	s.setRead(ctx, id, false)
}

func (s *Store) setRead(ctx context.Context, id string, read bool) {
	records := s.load(ctx)
	i := index(records, id)
	if i < 0 {
		s.log.Debug("mark on unknown id ignored", "id", id)
		return
	}
	if records[i].Read == read {
		return
	}
	records[i].Read = read
	s.save(ctx, records)
}

// Delete removes id from the feed.
func (s *Store) Delete(ctx context.Context, id string) {
	records := s.load(ctx)
	i := index(records, id)
	if i < 0 {
		s.log.Debug("delete on unknown id ignored", "id", id)
		return
	}
	s.save(ctx, slices.Delete(records, i, i+1))
}

// ClearAll empties the feed and resets the badge.
func (s *Store) ClearAll(ctx context.Context) {
	s.save(ctx, []domain.Record{})
	if s.badge != nil {
		s.badge.Set(ctx, 0)
	}
}

// List returns the feed, most recent first. The slice is owned by the caller.
func (s *Store) List(ctx context.Context) []domain.Record {
	return s.load(ctx)
}

// Get looks up a single record.
func (s *Store) Get(ctx context.Context, id string) (domain.Record, bool) {
	records := s.load(ctx)
	i := index(records, id)
	if i < 0 {
		return domain.Record{}, false
	}
	return records[i], true
}

// UnreadCount counts records not yet read.
func (s *Store) UnreadCount(ctx context.Context) int {
	n := 0
	for _, r := range s.load(ctx) {
		if !r.Read {
			n++
		}
	}
	return n
}

func index(records []domain.Record, id string) int {
	return slices.IndexFunc(records, func(r domain.Record) bool { return r.ID == id })
}

func (s *Store) load(ctx context.Context) []domain.Record {
	raw, found, err := s.kv.Get(ctx, storage.NotificationsKey)
	if err != nil {
		s.log.Warn("read feed failed", "error", err)
		return []domain.Record{}
	}
	if !found || raw == "" {
		return []domain.Record{}
	}
	var records []domain.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.log.Warn("decode feed failed", "error", err)
		return []domain.Record{}
	}
	valid := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			s.log.Warn("dropping invalid feed record", "id", r.ID, "error", err)
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

func (s *Store) save(ctx context.Context, records []domain.Record) {
	data, err := json.Marshal(records)
	if err != nil {
		s.log.Error("encode feed failed", "error", err)
		return
	}
	if err := s.kv.Set(ctx, storage.NotificationsKey, string(data)); err != nil {
		s.log.Error("write feed failed", "records", len(records), "error", err)
	}
}
