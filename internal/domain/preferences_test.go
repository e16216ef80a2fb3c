package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuietHoursNonWrapping(t *testing.T) {
	q := QuietHours{StartHour: 9, EndHour: 17}
	for h := 0; h < 24; h++ {
		require.Equal(t, h >= 9 && h < 17, q.Contains(h), "hour %d", h)
	}
}

func TestQuietHoursWrapping(t *testing.T) {
	q := QuietHours{StartHour: 22, EndHour: 7}
	for h := 0; h < 24; h++ {
		require.Equal(t, h >= 22 || h < 7, q.Contains(h), "hour %d", h)
	}
}

func TestQuietHoursEmptyWindow(t *testing.T) {
	q := QuietHours{StartHour: 5, EndHour: 5}
	for h := 0; h < 24; h++ {
		require.False(t, q.Contains(h))
	}
}

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences()
	require.False(t, p.MuteAll)
	require.False(t, p.DoNotDisturb)
	require.Equal(t, QuietHours{StartHour: 22, EndHour: 7}, p.DoNotDisturbHours)
	require.Empty(t, p.MutedCategories)
	require.NoError(t, p.Validate())
}

func TestWithMuted(t *testing.T) {
	p := DefaultPreferences().WithMuted(CategoryReminder, true).WithMuted(CategorySystem, true)
	require.True(t, p.IsMuted(CategoryReminder))
	require.True(t, p.IsMuted(CategorySystem))

	p = p.WithMuted(CategoryReminder, false)
	require.False(t, p.IsMuted(CategoryReminder))
	require.Equal(t, []Category{CategorySystem}, p.MutedCategories)

	p = p.WithMuted(CategorySystem, true)
	require.Equal(t, []Category{CategorySystem}, p.MutedCategories)
}

func TestNormalizeDropsDuplicates(t *testing.T) {
	p := Preferences{MutedCategories: []Category{CategorySystem, CategoryReminder, CategorySystem}}
	require.Equal(t, []Category{CategorySystem, CategoryReminder}, p.Normalize().MutedCategories)
}

func TestValidateRejectsBadHoursAndCategories(t *testing.T) {
	p := DefaultPreferences()
	p.DoNotDisturbHours.StartHour = 24
	err := p.Validate()
	require.ErrorIs(t, err, ErrInvalidPreferences)
	require.Contains(t, err.Error(), "startHour")

	p = DefaultPreferences()
	p.DoNotDisturbHours.EndHour = -1
	require.ErrorIs(t, p.Validate(), ErrInvalidPreferences)

	p = DefaultPreferences()
	p.MutedCategories = []Category{"spam"}
	err = p.Validate()
	require.ErrorIs(t, err, ErrInvalidPreferences)
	require.Contains(t, err.Error(), "category")
}
