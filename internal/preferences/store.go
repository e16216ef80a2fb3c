// Package preferences persists the user's notification delivery settings as
// a single record.
package preferences

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/logging"
	"github.com/cristianoliveira/alonix-notify/internal/storage"
)

// Store reads and writes the whole preferences record. There is no partial
// update; callers read, modify and write back.
type Store struct {
	kv  storage.Store
	log logging.Logger
}

// NewStore returns a preferences store over kv.
func NewStore(kv storage.Store, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{kv: kv, log: log.With("component", "preferences")}
}

// Get returns the persisted record, or the defaults when nothing usable is
// stored. It never fails.
func (s *Store) Get(ctx context.Context) domain.Preferences {
	raw, found, err := s.kv.Get(ctx, storage.PreferencesKey)
	if err != nil {
		s.log.Warn("read preferences failed, using defaults", "error", err)
		return domain.DefaultPreferences()
	}
	if !found {
		return domain.DefaultPreferences()
	}

	prefs := domain.DefaultPreferences()
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.log.Warn("decode preferences failed, using defaults", "error", err)
		return domain.DefaultPreferences()
	}
	if err := prefs.Validate(); err != nil {
		s.log.Warn("stored preferences invalid, using defaults", "error", err)
		return domain.DefaultPreferences()
	}
	if prefs.MutedCategories == nil {
		prefs.MutedCategories = []domain.Category{}
	}
	return prefs.Normalize()
}

// Set validates and overwrites the whole record.
func (s *Store) Set(ctx context.Context, prefs domain.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	prefs = prefs.Normalize()
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.kv.Set(ctx, storage.PreferencesKey, string(data)); err != nil {
		s.log.Error("write preferences failed", "error", err)
		return fmt.Errorf("write preferences: %w", err)
	}
	s.log.Debug("preferences saved", "mute_all", prefs.MuteAll, "dnd", prefs.DoNotDisturb, "muted", len(prefs.MutedCategories))
	return nil
}
