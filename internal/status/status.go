// Package status renders a one-line unread summary for terminal status bars.
package status

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
)

// Formats accepted by Render.
const (
	FormatCompact   = "compact"
	FormatDetailed  = "detailed"
	FormatCountOnly = "count-only"
)

// Options controls Render.
type Options struct {
	Format string
	// Colors wraps counts in tmux style sequences using the channel color.
	Colors bool
}

type channelCount struct {
	channel domain.Channel
	count   int
}

// Render summarizes the unread records. It returns an empty string when
// nothing is unread.
func Render(records []domain.Record, opts Options) (string, error) {
	counts := countByChannel(records)
	total := 0
	for _, c := range counts {
		total += c.count
	}
	if total == 0 {
		switch opts.Format {
		case FormatCompact, FormatDetailed, FormatCountOnly, "":
			return "", nil
		}
	}

	switch opts.Format {
	case FormatCompact, "":
		return colorize(fmt.Sprintf("🔔 %d", total), counts[0].channel.Color, opts.Colors), nil
	case FormatDetailed:
		parts := make([]string, len(counts))
		for i, c := range counts {
			parts[i] = colorize(fmt.Sprintf("%s:%d", c.channel.ID, c.count), c.channel.Color, opts.Colors)
		}
		return strings.Join(parts, " "), nil
	case FormatCountOnly:
		return fmt.Sprintf("%d", total), nil
	default:
		return "", fmt.Errorf("unknown format: %s", opts.Format)
	}
}

// countByChannel groups unread records by channel, most important first.
func countByChannel(records []domain.Record) []channelCount {
	byID := make(map[string]*channelCount)
	for _, r := range records {
		if r.Read {
			continue
		}
		ch := r.Type.Channel()
		c, ok := byID[ch.ID]
		if !ok {
			c = &channelCount{channel: ch}
			byID[ch.ID] = c
		}
		c.count++
	}
	out := make([]channelCount, 0, len(byID))
	for _, c := range byID {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].channel.Importance != out[j].channel.Importance {
			return out[i].channel.Importance > out[j].channel.Importance
		}
		return out[i].channel.ID < out[j].channel.ID
	})
	return out
}

func colorize(s, color string, enabled bool) string {
	if !enabled || color == "" {
		return s
	}
	return fmt.Sprintf("#[fg=%s]%s#[default]", color, s)
}
