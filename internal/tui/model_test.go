package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/alonix-notify/internal/card"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/platform"
	"github.com/cristianoliveira/alonix-notify/internal/service"
	"github.com/cristianoliveira/alonix-notify/internal/storage"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, n int) (*Model, *service.Service) {
	t.Helper()
	ctx := context.Background()
	next := 0
	svc, err := service.New(service.Options{
		Store:    storage.NewMemoryStorage(),
		Platform: platform.NewRecorder(),
		Now:      func() time.Time { return time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local) },
		NewID: func() string {
			next++
			return fmt.Sprintf("n%d", next)
		},
	})
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		svc.Receive(ctx, domain.Incoming{
			Title: fmt.Sprintf("Message %d", i+1),
			Data:  map[string]any{"category": "message_received", "conversationId": "c1"},
		})
	}
	return New(ctx, svc), svc
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func settle(m *Model) {
	for i := 0; i < 100; i++ {
		if _, cmd := m.Update(frameMsg(time.Now())); cmd == nil {
			return
		}
	}
}

func TestLoadsFeedMostRecentFirst(t *testing.T) {
	m, _ := newTestModel(t, 3)
	require.Len(t, m.records, 3)
	require.Equal(t, "n3", m.records[0].ID)
	require.Equal(t, 3, m.badge)
	require.Contains(t, m.View(), "3 unread")
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t, 3)
	press(m, "j", "j", "j")
	require.Equal(t, 2, m.cursor)
	press(m, "k")
	require.Equal(t, 1, m.cursor)
	press(m, "k", "k")
	require.Equal(t, 0, m.cursor)
}

func TestSwipePastThresholdDeletes(t *testing.T) {
	m, svc := newTestModel(t, 2)

	press(m, "h", "h", "h", "h", "h")
	require.Equal(t, card.Dragging, m.selected().State())
	cmd := press(m, "space")
	require.NotNil(t, cmd)
	require.Equal(t, card.Deleting, m.cards["n2"].State())

	settle(m)
	require.Len(t, m.records, 1)
	require.Equal(t, "n1", m.records[0].ID)
	require.Len(t, svc.List(context.Background()), 1)
	require.Equal(t, 1, m.badge)
	require.Contains(t, m.status, "deleted n2")
}

func TestShortSwipeSnapsBack(t *testing.T) {
	m, svc := newTestModel(t, 1)

	press(m, "h", "h", "h", "h")
	require.Equal(t, -100.0, m.selected().View().Offset)
	cmd := press(m, "space")
	require.Nil(t, cmd)
	require.Equal(t, card.Idle, m.selected().State())
	require.Len(t, svc.List(context.Background()), 1)
}

func TestRightSwipeIsClampedAndCancel(t *testing.T) {
	m, _ := newTestModel(t, 1)
	press(m, "l", "l")
	require.Equal(t, 0.0, m.selected().View().Offset)

	press(m, "h", "h", "h", "h", "h", "h", "esc")
	require.Equal(t, card.Idle, m.selected().State())
	require.Nil(t, press(m, "space"))
}

func TestMovingCancelsDrag(t *testing.T) {
	m, svc := newTestModel(t, 2)
	press(m, "h", "h", "h", "h", "h", "h", "j", "space")
	require.Len(t, svc.List(context.Background()), 2)
	require.Equal(t, card.Idle, m.cards["n2"].State())
}

func TestEnterMarksReadAndOpens(t *testing.T) {
	m, svc := newTestModel(t, 1)
	press(m, "enter")

	rec, ok := svc.Get(context.Background(), "n1")
	require.True(t, ok)
	require.True(t, rec.Read)
	require.Equal(t, 0, m.badge)
	require.Contains(t, m.status, "open Chat")
	require.Contains(t, m.status, "c1")
}

func TestToggleRead(t *testing.T) {
	m, svc := newTestModel(t, 1)
	ctx := context.Background()

	press(m, "r")
	rec, _ := svc.Get(ctx, "n1")
	require.True(t, rec.Read)
	require.True(t, m.records[0].Read)

	press(m, "r")
	rec, _ = svc.Get(ctx, "n1")
	require.False(t, rec.Read)
	require.False(t, m.records[0].Read)
}

func TestEmptyFeed(t *testing.T) {
	m, _ := newTestModel(t, 0)
	press(m, "j", "h", "space", "enter", "r")
	require.Contains(t, m.View(), "No notifications")
}

func TestWindowResizeAndQuit(t *testing.T) {
	m, _ := newTestModel(t, 2)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 10})
	require.Equal(t, 6, m.viewport.Height)

	press(m, "?")
	require.True(t, m.help.ShowAll)

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestRenderRowShiftsAndFades(t *testing.T) {
	r := domain.Record{ID: "x", Title: "Hello", Type: domain.CategorySystem, Timestamp: "bad"}
	full := renderRow(r, card.View{Offset: 0, Opacity: 1, Scale: 1}, false, time.Now())
	shifted := renderRow(r, card.View{Offset: -16, Opacity: 1, Scale: 1}, false, time.Now())
	require.True(t, strings.HasSuffix(strings.TrimSpace(full), "Hello"))
	require.Less(t, len(shifted), len(full))
	require.Empty(t, strings.TrimSpace(renderRow(r, card.View{Offset: -10000, Opacity: 0}, false, time.Now())))
}
