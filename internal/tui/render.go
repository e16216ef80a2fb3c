package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/alonix-notify/internal/card"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/format"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B35"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	unreadStyle   = lipgloss.NewStyle().Bold(true)
	fadedStyle    = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (m *Model) View() string {
	var b strings.Builder
	unread := 0
	for _, r := range m.records {
		if !r.Read {
			unread++
		}
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Notifications  %d unread  badge %d", unread, m.badge)))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) syncViewport() {
	m.viewport.SetContent(m.renderRows(time.Now()))
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) renderRows(now time.Time) string {
	if len(m.records) == 0 {
		return fadedStyle.Render("No notifications")
	}
	rows := make([]string, 0, len(m.records))
	for i, r := range m.records {
		c := m.cards[r.ID]
		if c == nil {
			continue
		}
		rows = append(rows, renderRow(r, c.View(), i == m.cursor, now))
	}
	return strings.Join(rows, "\n")
}

// renderRow draws one card. A swiped card is shifted left and a fading card
// is dimmed.
func renderRow(r domain.Record, v card.View, selected bool, now time.Time) string {
	mark := " "
	if !r.Read {
		mark = "●"
	}
	line := fmt.Sprintf("%s %-20s %-16s %s",
		mark, r.Type.String(), format.RelativeTime(r, now), format.Truncate(r.Title, 40))

	shift := int(math.Round(-v.Offset / 8))
	runes := []rune(line)
	if shift >= len(runes) {
		line = ""
	} else if shift > 0 {
		line = string(runes[shift:])
	}

	style := lipgloss.NewStyle()
	switch {
	case v.Opacity < 1:
		style = fadedStyle
	case selected:
		style = selectedStyle
	case !r.Read:
		style = unreadStyle
	}
	return style.Render(line)
}
