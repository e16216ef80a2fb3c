// Package domain holds the notification model: categories and their delivery
// tables, feed records and user preferences.
package domain

import "fmt"

// Category is one of the fixed notification kinds.
type Category string

const (
	CategoryChallengeInvite     Category = "challenge_invite"
	CategoryBookingConfirmed    Category = "booking_confirmed"
	CategoryRideMatched         Category = "ride_matched"
	CategoryAchievementUnlocked Category = "achievement_unlocked"
	CategoryMessageReceived     Category = "message_received"
	CategoryFriendRequest       Category = "friend_request"
	CategoryClubInvite          Category = "club_invite"
	CategorySystem              Category = "system"
	CategoryReminder            Category = "reminder"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryChallengeInvite,
	CategoryBookingConfirmed,
	CategoryRideMatched,
	CategoryAchievementUnlocked,
	CategoryMessageReceived,
	CategoryFriendRequest,
	CategoryClubInvite,
	CategorySystem,
	CategoryReminder,
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryChallengeInvite, CategoryBookingConfirmed, CategoryRideMatched,
		CategoryAchievementUnlocked, CategoryMessageReceived, CategoryFriendRequest,
		CategoryClubInvite, CategorySystem, CategoryReminder:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid notification category: %s", s)
	}
	return c, nil
}

// CategoryOrSystem maps unknown platform categories to CategorySystem.
func CategoryOrSystem(s string) Category {
	if c, err := ParseCategory(s); err == nil {
		return c
	}
	return CategorySystem
}

// Importance mirrors the platform channel importance levels.
type Importance int

const (
	ImportanceLow Importance = iota + 1
	ImportanceDefault
	ImportanceHigh
	ImportanceMax
)

func (i Importance) String() string {
	switch i {
	case ImportanceLow:
		return "low"
	case ImportanceDefault:
		return "default"
	case ImportanceHigh:
		return "high"
	case ImportanceMax:
		return "max"
	default:
		return "unknown"
	}
}

// Channel describes a platform notification channel.
type Channel struct {
	ID         string
	Name       string
	Importance Importance
	Vibration  []int
	Color      string
	Sound      string
}

const brandColor = "#FF6B35"

// Channel returns the channel a category is delivered on.
func (c Category) Channel() Channel {
	switch c {
	case CategoryChallengeInvite:
		return Channel{ID: "challenges", Name: "Challenges", Importance: ImportanceHigh, Vibration: []int{0, 250, 250, 250}, Color: brandColor, Sound: "default"}
	case CategoryBookingConfirmed:
		return Channel{ID: "bookings", Name: "Bookings", Importance: ImportanceHigh, Vibration: []int{0, 500}, Color: brandColor, Sound: "default"}
	case CategoryRideMatched:
		return Channel{ID: "rides", Name: "Rides", Importance: ImportanceHigh, Vibration: []int{0, 250, 100, 250}, Color: brandColor, Sound: "default"}
	case CategoryAchievementUnlocked:
		return Channel{ID: "achievements", Name: "Achievements", Importance: ImportanceDefault, Vibration: []int{0, 100, 100, 100, 100, 100}, Color: "#FFD700", Sound: "default"}
	case CategoryMessageReceived:
		return Channel{ID: "messages", Name: "Messages", Importance: ImportanceHigh, Vibration: []int{0, 200}, Color: brandColor, Sound: "default"}
	case CategoryFriendRequest, CategoryClubInvite:
		return Channel{ID: "social", Name: "Social", Importance: ImportanceDefault, Vibration: []int{0, 150, 150, 150}, Color: brandColor, Sound: "default"}
	case CategorySystem:
		return Channel{ID: "system", Name: "System", Importance: ImportanceLow, Vibration: []int{0, 300}, Color: "#888888", Sound: ""}
	case CategoryReminder:
		return Channel{ID: "reminders", Name: "Reminders", Importance: ImportanceDefault, Vibration: []int{0, 400, 200, 400}, Color: brandColor, Sound: "default"}
	default:
		return Channel{}
	}
}

// Channels returns the distinct channels across all categories, in category order.
func Channels() []Channel {
	seen := make(map[string]bool)
	var out []Channel
	for _, c := range Categories {
		ch := c.Channel()
		if seen[ch.ID] {
			continue
		}
		seen[ch.ID] = true
		out = append(out, ch)
	}
	return out
}

// NavigationTarget is the in-app screen a tapped notification deep-links to.
type NavigationTarget struct {
	Screen string            `json:"screen"`
	Params map[string]string `json:"params,omitempty"`
}

// Navigation resolves the deep-link target for a notification of this
// category, lifting the relevant id out of the payload when present.
func (c Category) Navigation(data map[string]any) NavigationTarget {
	switch c {
	case CategoryChallengeInvite:
		return target("ChallengeDetail", data, "challengeId")
	case CategoryBookingConfirmed:
		return target("BookingDetail", data, "bookingId")
	case CategoryRideMatched:
		return target("RideDetail", data, "rideId")
	case CategoryAchievementUnlocked:
		return target("Achievements", data, "")
	case CategoryMessageReceived:
		return target("Chat", data, "conversationId")
	case CategoryFriendRequest:
		return target("FriendRequests", data, "")
	case CategoryClubInvite:
		return target("ClubDetail", data, "clubId")
	case CategorySystem, CategoryReminder:
		return target("Notifications", data, "")
	default:
		return NavigationTarget{}
	}
}

func target(screen string, data map[string]any, param string) NavigationTarget {
	t := NavigationTarget{Screen: screen}
	if param == "" {
		return t
	}
	if v, ok := data[param]; ok && v != nil {
		t.Params = map[string]string{param: fmt.Sprint(v)}
	}
	return t
}
