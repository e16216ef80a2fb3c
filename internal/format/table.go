package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
)

type column struct {
	name    string
	width   int
	extract func(r domain.Record, now time.Time) string
}

var tableColumns = []column{
	{"", 1, func(r domain.Record, _ time.Time) string { return mark(r) }},
	{"ID", 36, func(r domain.Record, _ time.Time) string { return r.ID }},
	{"Category", 20, func(r domain.Record, _ time.Time) string { return r.Type.String() }},
	{"Received", 16, func(r domain.Record, now time.Time) string { return RelativeTime(r, now) }},
	{"Title", 40, func(r domain.Record, _ time.Time) string { return r.Title }},
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	unreadStyle = lipgloss.NewStyle().Bold(true)
	readStyle   = lipgloss.NewStyle().Faint(true)
)

// TableFormatter prints an aligned table. Unread rows are bold.
type TableFormatter struct {
	now func() time.Time
}

func (f *TableFormatter) FormatNotifications(records []domain.Record, w io.Writer) error {
	if len(records) == 0 {
		return nil
	}
	header := make([]string, len(tableColumns))
	rule := make([]string, len(tableColumns))
	for i, c := range tableColumns {
		header[i] = pad(c.name, c.width)
		rule[i] = strings.Repeat("-", c.width)
	}
	if _, err := fmt.Fprintln(w, headerStyle.Render(strings.Join(header, "  "))); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Join(rule, "  ")); err != nil {
		return err
	}

	now := f.now()
	for _, r := range records {
		cells := make([]string, len(tableColumns))
		for i, c := range tableColumns {
			cells[i] = pad(Truncate(c.extract(r, now), c.width), c.width)
		}
		style := unreadStyle
		if r.Read {
			style = readStyle
		}
		if _, err := fmt.Fprintln(w, style.Render(strings.Join(cells, "  "))); err != nil {
			return err
		}
	}
	return nil
}

func pad(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
