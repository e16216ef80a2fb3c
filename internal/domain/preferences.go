package domain

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidPreferences is returned when a preferences record fails validation.
var ErrInvalidPreferences = errors.New("invalid notification preferences")

// QuietHours is the do-not-disturb window, [StartHour, EndHour) in local
// hours. StartHour > EndHour wraps past midnight; equal hours are empty.
type QuietHours struct {
	StartHour int `json:"startHour" validate:"min=0,max=23"`
	EndHour   int `json:"endHour" validate:"min=0,max=23"`
}

// Contains reports whether hour falls inside the window.
func (q QuietHours) Contains(hour int) bool {
	if q.StartHour <= q.EndHour {
		return hour >= q.StartHour && hour < q.EndHour
	}
	return hour >= q.StartHour || hour < q.EndHour
}

// Preferences controls how received notifications are delivered.
type Preferences struct {
	MuteAll           bool       `json:"muteAll"`
	DoNotDisturb      bool       `json:"doNotDisturb"`
	DoNotDisturbHours QuietHours `json:"doNotDisturbHours"`
	MutedCategories   []Category `json:"mutedCategories" validate:"dive,category"`
}

// DefaultPreferences returns the record used when nothing is persisted.
func DefaultPreferences() Preferences {
	return Preferences{
		DoNotDisturbHours: QuietHours{StartHour: 22, EndHour: 7},
		MutedCategories:   []Category{},
	}
}

// IsMuted reports whether sound is muted for c.
func (p Preferences) IsMuted(c Category) bool {
	return slices.Contains(p.MutedCategories, c)
}

// WithMuted returns a copy with c added to or removed from the muted set.
func (p Preferences) WithMuted(c Category, muted bool) Preferences {
	out := p
	out.MutedCategories = make([]Category, 0, len(p.MutedCategories)+1)
	for _, m := range p.MutedCategories {
		if m != c {
			out.MutedCategories = append(out.MutedCategories, m)
		}
	}
	if muted {
		out.MutedCategories = append(out.MutedCategories, c)
	}
	return out
}

// Normalize drops duplicate muted categories, keeping first occurrence order.
func (p Preferences) Normalize() Preferences {
	out := p
	out.MutedCategories = make([]Category, 0, len(p.MutedCategories))
	for _, c := range p.MutedCategories {
		if !slices.Contains(out.MutedCategories, c) {
			out.MutedCategories = append(out.MutedCategories, c)
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).IsValid()
	})
	return v
}

// Validate checks hour ranges and category names.
func (p Preferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %s", ErrInvalidPreferences, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}
	return nil
}

// Validator exposes the shared validator so other packages validate with the
// same tag names and custom rules.
func Validator() *validator.Validate {
	return validate
}
