// Package tui is an interactive feed browser. Each row is driven by a
// card.Card, so swiping a row past the threshold deletes it.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/alonix-notify/internal/card"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/service"
)

const (
	// dragStep is the distance one swipe key press moves the drag.
	dragStep      = 25.0
	frameInterval = 50 * time.Millisecond

	headerFooterLines     = 4
	defaultViewportWidth  = 80
	defaultViewportHeight = 20
)

// Feed is what the browser needs from the notification service.
type Feed interface {
	List(ctx context.Context) []domain.Record
	MarkRead(ctx context.Context, id string) service.Result
	MarkUnread(ctx context.Context, id string) service.Result
	Delete(ctx context.Context, id string) service.Result
	Open(ctx context.Context, id string) (domain.NavigationTarget, service.Result)
	Badge(ctx context.Context) int
}

type frameMsg time.Time

// Model is the bubbletea model of the feed browser.
type Model struct {
	ctx  context.Context
	feed Feed

	records []domain.Record
	cards   map[string]*card.Card
	cursor  int
	drag    float64
	badge   int

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	status   string
	width    int
}

// New loads the feed and returns a browser over it.
func New(ctx context.Context, feed Feed) *Model {
	m := &Model{
		ctx:      ctx,
		feed:     feed,
		cards:    make(map[string]*card.Card),
		keys:     defaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
		width:    defaultViewportWidth,
	}
	m.reload()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case frameMsg:
		return m, m.advance()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerFooterLines, 1)
		m.syncViewport()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.DragLeft):
		m.dragBy(-dragStep)
	case key.Matches(msg, m.keys.DragRight):
		m.dragBy(dragStep)
	case key.Matches(msg, m.keys.Release):
		return m, m.release()
	case key.Matches(msg, m.keys.Cancel):
		if c := m.selected(); c != nil {
			c.Cancel()
		}
		m.drag = 0
	case key.Matches(msg, m.keys.Open):
		if c := m.selected(); c != nil {
			c.Tap()
		}
	case key.Matches(msg, m.keys.Toggle):
		if c := m.selected(); c != nil {
			c.ToggleRead()
		}
	case key.Matches(msg, m.keys.Reload):
		m.reload()
		m.status = "reloaded"
	}
	m.syncViewport()
	return m, nil
}

func (m *Model) selected() *card.Card {
	if m.cursor < 0 || m.cursor >= len(m.records) {
		return nil
	}
	return m.cards[m.records[m.cursor].ID]
}

func (m *Model) move(delta int) {
	if c := m.selected(); c != nil {
		c.Cancel()
	}
	m.drag = 0
	m.cursor = clamp(m.cursor+delta, 0, len(m.records)-1)
}

func (m *Model) dragBy(dx float64) {
	c := m.selected()
	if c == nil || c.State() == card.Deleting || c.State() == card.Deleted {
		return
	}
	m.drag += dx
	c.DragMove(m.drag)
}

func (m *Model) release() tea.Cmd {
	c := m.selected()
	m.drag = 0
	if c == nil {
		return nil
	}
	c.Release()
	m.syncViewport()
	if c.State() == card.Deleting {
		return nextFrame()
	}
	return nil
}

// advance steps every deleting card by one frame.
func (m *Model) advance() tea.Cmd {
	animating := false
	for _, c := range m.cards {
		if c.State() != card.Deleting {
			continue
		}
		if !c.Step(frameInterval) {
			animating = true
		}
	}
	m.syncViewport()
	if animating {
		return nextFrame()
	}
	return nil
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) callbacks() card.Callbacks {
	return card.Callbacks{
		OnMarkAsRead: func(id string) {
			m.report(m.feed.MarkRead(m.ctx, id))
			m.refreshRecord(id, true)
		},
		OnMarkAsUnread: func(id string) {
			m.report(m.feed.MarkUnread(m.ctx, id))
			m.refreshRecord(id, false)
		},
		OnOpen: func(id string) {
			target, res := m.feed.Open(m.ctx, id)
			if !res.Success {
				m.report(res)
				return
			}
			m.status = "open " + describeTarget(target)
			m.badge = m.feed.Badge(m.ctx)
		},
		OnDelete: func(id string) {
			m.report(m.feed.Delete(m.ctx, id))
			m.reload()
			m.status = "deleted " + id
		},
	}
}

func (m *Model) report(res service.Result) {
	if !res.Success {
		m.status = "error: " + res.Error
	}
}

func (m *Model) refreshRecord(id string, read bool) {
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].Read = read
		}
	}
	m.badge = m.feed.Badge(m.ctx)
}

// reload re-reads the feed, keeping the card of every record still present.
func (m *Model) reload() {
	m.records = m.feed.List(m.ctx)
	cards := make(map[string]*card.Card, len(m.records))
	for _, r := range m.records {
		c, ok := m.cards[r.ID]
		if !ok || c.State() == card.Deleted {
			c = card.New(r.ID, r.Read, float64(m.width), m.callbacks())
		}
		c.SetRead(r.Read)
		cards[r.ID] = c
	}
	m.cards = cards
	m.cursor = clamp(m.cursor, 0, len(m.records)-1)
	m.badge = m.feed.Badge(m.ctx)
}

func describeTarget(t domain.NavigationTarget) string {
	if len(t.Params) == 0 {
		return t.Screen
	}
	return fmt.Sprintf("%s %v", t.Screen, t.Params)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
