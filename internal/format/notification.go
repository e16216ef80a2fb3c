package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/dustin/go-humanize"
)

const (
	unreadMark = "●"
	readMark   = " "
)

// SimpleFormatter prints one line per record.
type SimpleFormatter struct {
	now func() time.Time
}

func (f *SimpleFormatter) FormatNotifications(records []domain.Record, w io.Writer) error {
	for _, r := range records {
		_, err := fmt.Fprintf(w, "%s %-36s  %-14s  %s\n",
			mark(r), r.ID, RelativeTime(r, f.now()), Truncate(r.Title, 50))
		if err != nil {
			return err
		}
	}
	return nil
}

// CompactFormatter prints titles only.
type CompactFormatter struct{}

func (f *CompactFormatter) FormatNotifications(records []domain.Record, w io.Writer) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.Title); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter prints the records as an indented JSON array.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatNotifications(records []domain.Record, w io.Writer) error {
	if records == nil {
		records = []domain.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// RelativeTime renders the record age, e.g. "3 minutes ago".
func RelativeTime(r domain.Record, now time.Time) string {
	t := r.Time()
	if t.IsZero() {
		return "unknown"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func mark(r domain.Record) string {
	if r.Read {
		return readMark
	}
	return unreadMark
}
