// Package format renders the notification feed for the CLI.
package format

import (
	"io"
	"time"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
)

// Formatter writes a list of feed records.
type Formatter interface {
	FormatNotifications(records []domain.Record, w io.Writer) error
}

// FormatterType names an output style.
type FormatterType string

const (
	// FormatterTypeSimple prints one line per record with id, age and title.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable prints an aligned table with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeCompact prints titles only.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeJSON prints the records as a JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// FormatterTypes lists the supported styles.
var FormatterTypes = []FormatterType{FormatterTypeSimple, FormatterTypeTable, FormatterTypeCompact, FormatterTypeJSON}

// NewFormatter returns the formatter for t, falling back to simple.
func NewFormatter(t FormatterType) Formatter {
	return NewFormatterAt(t, time.Now)
}

// NewFormatterAt is NewFormatter with a clock for relative times.
func NewFormatterAt(t FormatterType, now func() time.Time) Formatter {
	switch t {
	case FormatterTypeTable:
		return &TableFormatter{now: now}
	case FormatterTypeCompact:
		return &CompactFormatter{}
	case FormatterTypeJSON:
		return &JSONFormatter{}
	default:
		return &SimpleFormatter{now: now}
	}
}
