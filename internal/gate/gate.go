// Package gate decides how a received notification is delivered given the
// user's preferences and the current hour. It has no side effects.
package gate

import (
	"time"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
)

// Reason names the rule that produced a Decision.
type Reason string

const (
	ReasonDoNotDisturb  Reason = "do_not_disturb"
	ReasonCategoryMuted Reason = "category_muted"
	ReasonMuteAll       Reason = "mute_all"
	ReasonDefault       Reason = "default"
)

// Decision is the delivery outcome for one notification.
type Decision struct {
	ShouldAlert     bool              `json:"shouldAlert"`
	ShouldPlaySound bool              `json:"shouldPlaySound"`
	ShouldSetBadge  bool              `json:"shouldSetBadge"`
	Priority        domain.Importance `json:"priority"`
	Reason          Reason            `json:"reason"`
}

// Decide evaluates the rules in order; the first match wins. Do-not-disturb
// overrides everything else but never suppresses the badge.
func Decide(category domain.Category, prefs domain.Preferences, hour int) Decision {
	if prefs.DoNotDisturb && prefs.DoNotDisturbHours.Contains(hour) {
		return Decision{
			ShouldSetBadge: true,
			Priority:       domain.ImportanceLow,
			Reason:         ReasonDoNotDisturb,
		}
	}

	if prefs.IsMuted(category) {
		return Decision{
			ShouldAlert:    true,
			ShouldSetBadge: true,
			Priority:       domain.ImportanceDefault,
			Reason:         ReasonCategoryMuted,
		}
	}

	d := Decision{
		ShouldAlert:     true,
		ShouldPlaySound: !prefs.MuteAll,
		ShouldSetBadge:  true,
		Priority:        domain.ImportanceMax,
		Reason:          ReasonDefault,
	}
	if prefs.MuteAll {
		d.Reason = ReasonMuteAll
	}
	return d
}

// DecideAt is Decide using the local hour of now.
func DecideAt(category domain.Category, prefs domain.Preferences, now time.Time) Decision {
	return Decide(category, prefs, now.Hour())
}
