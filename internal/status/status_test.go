package status

import (
	"testing"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/stretchr/testify/require"
)

func records() []domain.Record {
	return []domain.Record{
		{ID: "1", Type: domain.CategoryMessageReceived},
		{ID: "2", Type: domain.CategoryFriendRequest},
		{ID: "3", Type: domain.CategoryClubInvite},
		{ID: "4", Type: domain.CategoryMessageReceived},
		{ID: "5", Type: domain.CategorySystem, Read: true},
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		expected string
	}{
		{name: "default is compact", opts: Options{}, expected: "🔔 4"},
		{name: "compact", opts: Options{Format: FormatCompact}, expected: "🔔 4"},
		{name: "compact with colors", opts: Options{Format: FormatCompact, Colors: true}, expected: "#[fg=#FF6B35]🔔 4#[default]"},
		{name: "detailed", opts: Options{Format: FormatDetailed}, expected: "messages:2 social:2"},
		{name: "count only", opts: Options{Format: FormatCountOnly}, expected: "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(records(), tt.opts)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestRenderNothingUnread(t *testing.T) {
	for _, format := range []string{FormatCompact, FormatDetailed, FormatCountOnly} {
		got, err := Render([]domain.Record{{ID: "1", Read: true}}, Options{Format: format})
		require.NoError(t, err)
		require.Empty(t, got)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(records(), Options{Format: "verbose"})
	require.ErrorContains(t, err, "unknown format")

	_, err = Render(nil, Options{Format: "verbose"})
	require.Error(t, err)
}
