package platform

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/alonix-notify/internal/config"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/logging"
	"github.com/google/uuid"
)

// Console is a terminal device. Alerts are rendered as boxes on the output
// writer and delayed notifications fire from timers.
type Console struct {
	out        io.Writer
	permission bool
	physical   bool
	log        logging.Logger
	newID      func() string

	mu       sync.Mutex
	channels map[string]domain.Channel
	pending  map[string]*scheduled
	shown    int
	badge    int
}

type scheduled struct {
	content Content
	fireAt  time.Time
	timer   *time.Timer
}

// Pending describes a scheduled notification that has not fired yet.
type Pending struct {
	ID      string
	Content Content
	FireAt  time.Time
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithOutput sets where alerts are rendered.
func WithOutput(w io.Writer) ConsoleOption {
	return func(c *Console) { c.out = w }
}

// WithPermission sets whether the user granted notification permission.
func WithPermission(granted bool) ConsoleOption {
	return func(c *Console) { c.permission = granted }
}

// WithPhysicalDevice sets whether the console counts as a physical device.
func WithPhysicalDevice(physical bool) ConsoleOption {
	return func(c *Console) { c.physical = physical }
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) ConsoleOption {
	return func(c *Console) { c.log = l }
}

// NewConsole returns a console device that has permission on a physical
// device unless told otherwise.
func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{
		out:        os.Stdout,
		permission: true,
		physical:   true,
		log:        logging.Nop(),
		newID:      uuid.NewString,
		channels:   make(map[string]domain.Channel),
		pending:    make(map[string]*scheduled),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "platform")
	return c
}

// NewConsoleFromConfig builds a console from the loaded configuration.
func NewConsoleFromConfig(out io.Writer, log logging.Logger) *Console {
	return NewConsole(
		WithOutput(out),
		WithPermission(config.GetBool("permission_granted", true)),
		WithPhysicalDevice(config.GetBool("physical_device", true)),
		WithLogger(log),
	)
}

func (c *Console) IsPhysicalDevice() bool { return c.physical }

func (c *Console) RequestPermissions(context.Context) (bool, error) {
	c.log.Debug("permission requested", "granted", c.permission)
	return c.permission, nil
}

// GetToken returns a token stable for this host.
func (c *Console) GetToken(context.Context) (string, error) {
	if !c.physical {
		return "", ErrNoDevice
	}
	if !c.permission {
		return "", ErrPermissionDenied
	}
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	id := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(host+".alonix"))
	return fmt.Sprintf("AlonixPushToken[%s]", id), nil
}

func (c *Console) CreateChannel(_ context.Context, ch domain.Channel) error {
	if ch.ID == "" {
		return fmt.Errorf("create channel: empty id")
	}
	c.mu.Lock()
	c.channels[ch.ID] = ch
	c.mu.Unlock()
	c.log.Debug("channel created", "id", ch.ID, "importance", ch.Importance.String())
	return nil
}

// Channels returns the created channels sorted by id.
func (c *Console) Channels() []domain.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Console) Present(_ context.Context, content Content, how Presentation) error {
	if !how.Alert {
		c.log.Debug("notification delivered silently", "title", content.Title)
		return nil
	}
	c.render(content, how.Sound)
	return nil
}

func (c *Console) Schedule(_ context.Context, content Content, trigger Trigger) (string, error) {
	if !c.permission {
		return "", ErrPermissionDenied
	}
	id := c.newID()
	if trigger.Immediate() {
		c.render(content, content.Sound)
		return id, nil
	}

	delay := time.Duration(trigger.Seconds) * time.Second
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[id] = &scheduled{
		content: content,
		fireAt:  time.Now().Add(delay),
		timer:   time.AfterFunc(delay, func() { c.fire(id) }),
	}
	c.log.Info("notification scheduled", "id", id, "seconds", trigger.Seconds)
	return id, nil
}

func (c *Console) fire(id string) {
	c.mu.Lock()
	s, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if ok {
		c.render(s.content, s.content.Sound)
	}
}

// PendingNotifications lists scheduled notifications ordered by fire time.
func (c *Console) PendingNotifications() []Pending {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Pending, 0, len(c.pending))
	for id, s := range c.pending {
		out = append(out, Pending{ID: id, Content: s.content, FireAt: s.fireAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out
}

func (c *Console) Cancel(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.pending[id]
	if !ok {
		return fmt.Errorf("cancel %s: %w", id, ErrUnknownNotification)
	}
	s.timer.Stop()
	delete(c.pending, id)
	return nil
}

func (c *Console) CancelAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, s := range c.pending {
		s.timer.Stop()
		delete(c.pending, id)
	}
	return nil
}

func (c *Console) DismissAll(context.Context) error {
	c.mu.Lock()
	c.shown = 0
	c.mu.Unlock()
	return nil
}

func (c *Console) SetBadge(_ context.Context, count int) error {
	c.mu.Lock()
	c.badge = count
	c.mu.Unlock()
	c.log.Debug("badge set", "count", count)
	return nil
}

// Badge returns the last badge count set.
func (c *Console) Badge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.badge
}

// Shown returns how many alerts are on screen since the last DismissAll.
func (c *Console) Shown() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shown
}

func (c *Console) Vibrate(_ context.Context, pattern []int) error {
	c.log.Debug("vibrate", "pattern", formatPattern(pattern))
	return nil
}

func formatPattern(pattern []int) string {
	parts := make([]string, len(pattern))
	for i, p := range pattern {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "-")
}

var (
	alertBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	alertTitle  = lipgloss.NewStyle().Bold(true)
	alertMeta   = lipgloss.NewStyle().Faint(true)
)

func (c *Console) render(content Content, sound bool) {
	style := alertBorder
	c.mu.Lock()
	c.shown++
	if ch, ok := c.channels[content.ChannelID]; ok && ch.Color != "" {
		style = style.BorderForeground(lipgloss.Color(ch.Color))
	}
	c.mu.Unlock()

	meta := content.ChannelID
	if sound {
		meta += " ♪"
	}
	body := alertTitle.Render(content.Title)
	if content.Body != "" {
		body += "\n" + content.Body
	}
	if meta != "" {
		body += "\n" + alertMeta.Render(meta)
	}
	if _, err := fmt.Fprintln(c.out, style.Render(body)); err != nil {
		c.log.Warn("render alert failed", "error", err)
	}
}
