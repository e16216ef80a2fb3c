package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func sampleRecords() []domain.Record {
	return []domain.Record{
		{
			ID:        "b",
			Title:     "Booking confirmed for tomorrow's court session at the downtown club",
			Type:      domain.CategoryBookingConfirmed,
			Timestamp: now.Add(-3 * time.Minute).Format(time.RFC3339),
		},
		{
			ID:        "a",
			Title:     "Welcome",
			Type:      domain.CategorySystem,
			Timestamp: now.Add(-2 * time.Hour).Format(time.RFC3339),
			Read:      true,
		},
	}
}

func TestFormatterFactory(t *testing.T) {
	tests := []struct {
		name     string
		ftype    FormatterType
		expected interface{}
	}{
		{"Simple", FormatterTypeSimple, &SimpleFormatter{}},
		{"Table", FormatterTypeTable, &TableFormatter{}},
		{"Compact", FormatterTypeCompact, &CompactFormatter{}},
		{"JSON", FormatterTypeJSON, &JSONFormatter{}},
		{"Unknown", FormatterType("fancy"), &SimpleFormatter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.expected, NewFormatter(tt.ftype))
		})
	}
}

func TestSimpleFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatterAt(FormatterTypeSimple, clock).FormatNotifications(sampleRecords(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], unreadMark))
	assert.Contains(t, lines[0], "3 minutes ago")
	assert.Contains(t, lines[0], "Booking confirmed for tomorrow's court session ...")
	assert.Contains(t, lines[1], "2 hours ago")
	assert.Contains(t, lines[1], "Welcome")
}

func TestCompactFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatterTypeCompact).FormatNotifications(sampleRecords(), &buf))
	assert.Equal(t, "Booking confirmed for tomorrow's court session at the downtown club\nWelcome\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatterTypeJSON).FormatNotifications(sampleRecords(), &buf))

	var got []domain.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleRecords(), got)

	buf.Reset()
	require.NoError(t, NewFormatter(FormatterTypeJSON).FormatNotifications(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatterAt(FormatterTypeTable, clock).FormatNotifications(sampleRecords(), &buf))

	out := buf.String()
	assert.Contains(t, out, "Category")
	assert.Contains(t, out, "booking_confirmed")
	assert.Contains(t, out, "3 minutes ago")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)

	buf.Reset()
	require.NoError(t, NewFormatter(FormatterTypeTable).FormatNotifications(nil, &buf))
	assert.Empty(t, buf.String())
}

func TestRelativeTimeAndTruncate(t *testing.T) {
	assert.Equal(t, "unknown", RelativeTime(domain.Record{Timestamp: "yesterday"}, now))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab", Truncate("abcd", 2))
	assert.Equal(t, "héllo...", Truncate("héllo wörld", 8))
}
