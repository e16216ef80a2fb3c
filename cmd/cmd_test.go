package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/alonix-notify/internal/colors"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/logging"
	"github.com/cristianoliveira/alonix-notify/internal/metrics"
	"github.com/cristianoliveira/alonix-notify/internal/platform"
	"github.com/cristianoliveira/alonix-notify/internal/receiver"
	"github.com/cristianoliveira/alonix-notify/internal/service"
	"github.com/cristianoliveira/alonix-notify/internal/storage"
	"github.com/cristianoliveira/alonix-notify/internal/tui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store  *storage.MemoryStorage
	device *platform.Recorder
	msgs   *bytes.Buffer
	errs   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("ALONIX_CONFIG_DIR", t.TempDir())
	t.Setenv("ALONIX_STATE_DIR", t.TempDir())
	t.Setenv("ALONIX_STORAGE_BACKEND", storage.BackendMemory)

	h := &harness{
		store:  storage.NewMemoryStorage(),
		device: platform.NewRecorder(),
		msgs:   &bytes.Buffer{},
		errs:   &bytes.Buffer{},
	}
	colors.SetOutput(h.msgs, h.errs)

	n := 0
	clock := time.Date(2026, 5, 2, 12, 30, 0, 0, time.Local)
	orig := newApp
	newApp = func(cmd *cobra.Command) (*app, error) {
		reg := prometheus.NewRegistry()
		svc, err := service.New(service.Options{
			Store:    h.store,
			Platform: h.device,
			Logger:   logging.Nop(),
			Metrics:  metrics.NewDelivery(reg),
			Now:      func() time.Time { return clock },
			NewID: func() string {
				n++
				return fmt.Sprintf("n%d", n)
			},
		})
		if err != nil {
			return nil, err
		}
		return &app{svc: svc, store: h.store, device: h.device, registry: reg, log: logging.Nop()}, nil
	}
	t.Cleanup(func() {
		newApp = orig
		colors.SetOutput(os.Stdout, os.Stderr)
		colors.SetQuiet(false)
		colors.SetDebug(false)
	})
	return h
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return h.runWithInput(t, "", args...)
}

func (h *harness) runWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	h.msgs.Reset()
	h.errs.Reset()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func (h *harness) list(t *testing.T) []domain.Record {
	t.Helper()
	out, err := h.run(t, "list", "--format=json")
	require.NoError(t, err)
	var records []domain.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	return records
}

func TestReceiveAndList(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "receive", "--category", "message_received", "--data", "conversationId=c1", "Ana", "are", "you", "in?")
	require.NoError(t, err)
	require.Contains(t, h.msgs.String(), "Notification received (ID: n1")

	records := h.list(t)
	require.Len(t, records, 1)
	require.Equal(t, "Ana", records[0].Title)
	require.Equal(t, "are you in?", records[0].Message)
	require.Equal(t, domain.CategoryMessageReceived, records[0].Type)
	require.False(t, records[0].Read)

	out, err := h.run(t, "badge")
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
	require.Len(t, h.device.CallsTo("Present"), 1)
}

func TestReceiveRequiresTitle(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "receive")
	require.Error(t, err)

	_, err = h.run(t, "receive", "--category", "workout", "hi")
	require.Error(t, err)
	require.Empty(t, h.list(t))
}

func TestReceiveFromStdin(t *testing.T) {
	h := newHarness(t)

	payload := `{"title":"Ride booked","body":"Pickup at 9","data":{"category":"ride_matched","rideId":"r7"}}`
	_, err := h.runWithInput(t, payload, "receive", "--stdin")
	require.NoError(t, err)

	records := h.list(t)
	require.Len(t, records, 1)
	require.Equal(t, domain.CategoryRideMatched, records[0].Type)

	_, err = h.runWithInput(t, `{"title":"x","extra":1}`, "receive", "--stdin")
	require.Error(t, err)
}

func TestListFilters(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "receive", "--category", "message_received", "one")
	require.NoError(t, err)
	_, err = h.run(t, "receive", "--category", "reminder", "two")
	require.NoError(t, err)
	_, err = h.run(t, "mark-read", "n1")
	require.NoError(t, err)

	out, err := h.run(t, "list", "--filter", "unread", "--format", "compact")
	require.NoError(t, err)
	require.Contains(t, out, "two")
	require.NotContains(t, out, "one")

	out, err = h.run(t, "list", "--category", "message_received", "--format", "compact")
	require.NoError(t, err)
	require.Contains(t, out, "one")
	require.NotContains(t, out, "two")

	_, err = h.run(t, "list", "--filter", "starred")
	require.Error(t, err)
	_, err = h.run(t, "list", "--format", "xml")
	require.Error(t, err)
}

func TestListEmpty(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "list")
	require.NoError(t, err)
	require.Empty(t, out)
	require.Contains(t, h.msgs.String(), "No notifications")

	out, err = h.run(t, "list", "--format=json")
	require.NoError(t, err)
	require.Equal(t, "[]\n", out)
}

func TestOpenPrintsTarget(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "receive", "--category", "challenge_invite", "--data", "challengeId=c9", "Duel")
	require.NoError(t, err)

	out, err := h.run(t, "open", "n1")
	require.NoError(t, err)
	require.Equal(t, "ChallengeDetail challengeId=c9\n", out)

	records := h.list(t)
	require.True(t, records[0].Read)

	out, err = h.run(t, "badge")
	require.NoError(t, err)
	require.Equal(t, "0\n", out)
}

func TestFeedCommandsOnUnknownID(t *testing.T) {
	h := newHarness(t)

	for _, name := range []string{"open", "mark-read", "mark-unread", "toggle", "delete"} {
		t.Run(name, func(t *testing.T) {
			_, err := h.run(t, name, "missing")
			require.ErrorIs(t, err, service.ErrNotFound)
		})
	}
}

func TestToggleAndDelete(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "receive", "hello")
	require.NoError(t, err)

	_, err = h.run(t, "toggle", "n1")
	require.NoError(t, err)
	require.True(t, h.list(t)[0].Read)

	_, err = h.run(t, "toggle", "n1")
	require.NoError(t, err)
	require.False(t, h.list(t)[0].Read)

	_, err = h.run(t, "delete", "n1")
	require.NoError(t, err)
	require.Contains(t, h.msgs.String(), "Deleted (ID: n1)")
	require.Empty(t, h.list(t))
}

func TestClear(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 3; i++ {
		_, err := h.run(t, "receive", fmt.Sprintf("n%d", i))
		require.NoError(t, err)
	}

	_, err := h.run(t, "clear")
	require.NoError(t, err)
	require.Contains(t, h.msgs.String(), "All notifications cleared")
	require.Empty(t, h.list(t))
	require.Equal(t, 0, h.device.Badge())
	require.Len(t, h.device.CallsTo("DismissAll"), 1)
}

func TestBadgeSet(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "badge", "set", "3")
	require.NoError(t, err)
	require.Equal(t, 3, h.device.Badge())

	out, err := h.run(t, "badge")
	require.NoError(t, err)
	require.Equal(t, "3\n", out)

	_, err = h.run(t, "badge", "set", "three")
	require.Error(t, err)
}

func TestPrefs(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "prefs", "mute-category", "message_received")
	require.NoError(t, err)
	_, err = h.run(t, "prefs", "mute-all", "on")
	require.NoError(t, err)
	_, err = h.run(t, "prefs", "dnd", "on", "--start", "23", "--end", "6")
	require.NoError(t, err)

	out, err := h.run(t, "prefs", "show", "--json")
	require.NoError(t, err)
	var p domain.Preferences
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	require.True(t, p.MuteAll)
	require.True(t, p.DoNotDisturb)
	require.Equal(t, 23, p.DoNotDisturbHours.StartHour)
	require.Equal(t, 6, p.DoNotDisturbHours.EndHour)
	require.Equal(t, []domain.Category{domain.CategoryMessageReceived}, p.MutedCategories)

	_, err = h.run(t, "prefs", "unmute-category", "message_received")
	require.NoError(t, err)
	out, err = h.run(t, "prefs", "show")
	require.NoError(t, err)
	require.Contains(t, out, "mute all:         on")
	require.Contains(t, out, "(23:00-06:00)")
}

func TestPrefsRejectsBadInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "prefs", "mute-all", "maybe")
	require.Error(t, err)
	_, err = h.run(t, "prefs", "mute-category", "workout")
	require.Error(t, err)
	_, err = h.run(t, "prefs", "dnd", "on", "--start", "24")
	require.Error(t, err)

	out, err := h.run(t, "prefs", "show", "--json")
	require.NoError(t, err)
	var p domain.Preferences
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	require.Equal(t, domain.DefaultPreferences(), p)
}

func TestToken(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "token")
	require.NoError(t, err)
	require.Equal(t, "AlonixPushToken[test]\n", out)

	_, err = h.run(t, "token")
	require.NoError(t, err)
	require.Len(t, h.device.CallsTo("RequestPermissions"), 1)

	_, err = h.run(t, "token", "--refresh")
	require.NoError(t, err)
	require.Len(t, h.device.CallsTo("RequestPermissions"), 2)
}

func TestTokenWithoutPermission(t *testing.T) {
	h := newHarness(t)
	h.device.Permission = false

	_, err := h.run(t, "token")
	require.ErrorIs(t, err, service.ErrPermissionDenied)
}

// startReceiver serves the harness state over HTTP the way `serve` does.
func (h *harness) startReceiver(t *testing.T, device platform.Platform) string {
	t.Helper()
	svc, err := service.New(service.Options{Store: h.store, Platform: device, Logger: logging.Nop()})
	require.NoError(t, err)
	srv := httptest.NewServer(receiver.New(svc, nil, nil).Routes())
	t.Cleanup(srv.Close)
	return srv.URL
}

func scheduledID(t *testing.T, msgs string) string {
	t.Helper()
	const prefix = "Scheduled (ID: "
	i := strings.Index(msgs, prefix)
	require.GreaterOrEqual(t, i, 0, msgs)
	rest := msgs[i+len(prefix):]
	return rest[:strings.Index(rest, ")")]
}

func TestScheduleAndCancelThroughReceiver(t *testing.T) {
	h := newHarness(t)
	addr := h.startReceiver(t, h.device)

	_, err := h.run(t, "schedule", "--addr", addr, "--in", "60", "--category", "booking_confirmed", "--data", "bookingId=b1", "Court at 7")
	require.NoError(t, err)
	require.Equal(t, "local-1", scheduledID(t, h.msgs.String()))

	pending := h.device.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, "b1", pending["local-1"].Data["bookingId"])
	require.Equal(t, "booking_confirmed", pending["local-1"].Data["category"])

	_, err = h.run(t, "cancel", "--addr", addr, "local-1")
	require.NoError(t, err)
	require.Empty(t, h.device.Pending())

	_, err = h.run(t, "cancel", "--addr", addr, "local-1")
	require.ErrorIs(t, err, platform.ErrUnknownNotification)

	_, err = h.run(t, "cancel")
	require.Error(t, err)

	_, err = h.run(t, "schedule", "--in", "-1", "x")
	require.Error(t, err)
}

func TestCancelReachesConsoleTimers(t *testing.T) {
	h := newHarness(t)
	console := platform.NewConsole(platform.WithOutput(io.Discard))
	addr := h.startReceiver(t, console)

	for i := 0; i < 2; i++ {
		_, err := h.run(t, "schedule", "--addr", addr, "--in", "60", "later")
		require.NoError(t, err)
	}
	last := scheduledID(t, h.msgs.String())
	require.Len(t, console.PendingNotifications(), 2)

	_, err := h.run(t, "cancel", "--addr", addr, last)
	require.NoError(t, err)
	require.Len(t, console.PendingNotifications(), 1)

	_, err = h.run(t, "cancel", "--addr", addr, "--all")
	require.NoError(t, err)
	require.Empty(t, console.PendingNotifications())
}

func TestScheduleImmediateRunsLocally(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "schedule", "Stretch", "now")
	require.NoError(t, err)
	require.Len(t, h.device.CallsTo("Schedule"), 1)
	require.Empty(t, h.device.Pending())
}

func TestScheduleWithoutReceiver(t *testing.T) {
	h := newHarness(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := h.run(t, "schedule", "--addr", addr, "--in", "30", "later")
	require.ErrorIs(t, err, receiver.ErrUnreachable)
	require.ErrorContains(t, err, "alonix-notify serve")

	_, err = h.run(t, "cancel", "--addr", addr, "--all")
	require.ErrorIs(t, err, receiver.ErrUnreachable)
}

func TestServe(t *testing.T) {
	h := newHarness(t)

	var gotAddr string
	var gotServer *receiver.Server
	orig := listenAndServe
	listenAndServe = func(cmd *cobra.Command, srv *receiver.Server, addr string) error {
		gotServer, gotAddr = srv, addr
		return nil
	}
	t.Cleanup(func() { listenAndServe = orig })

	_, err := h.run(t, "serve", "--addr", "127.0.0.1:0")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:0", gotAddr)
	require.NotNil(t, gotServer)
	require.Len(t, h.device.CallsTo("GetToken"), 1)

	_, err = h.run(t, "serve")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8787", gotAddr)
}

func TestTUI(t *testing.T) {
	h := newHarness(t)

	var got tea.Model
	orig := runProgram
	runProgram = func(cmd *cobra.Command, m tea.Model) error {
		got = m
		return nil
	}
	t.Cleanup(func() { runProgram = orig })

	_, err := h.run(t, "tui")
	require.NoError(t, err)
	require.IsType(t, &tui.Model{}, got)
}

func TestUnknownBackend(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "--backend", "etcd", "list")
	require.ErrorContains(t, err, "unknown backend")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "alonix-notify v"))

	out, err = h.run(t, "version", "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"goVersion"`)
}

func TestStatus(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "status")
	require.NoError(t, err)
	require.Empty(t, out)

	_, err = h.run(t, "receive", "--category", "message_received", "hi")
	require.NoError(t, err)
	_, err = h.run(t, "receive", "--category", "friend_request", "hey")
	require.NoError(t, err)

	out, err = h.run(t, "status")
	require.NoError(t, err)
	require.Equal(t, "🔔 2\n", out)

	out, err = h.run(t, "status", "--format", "detailed")
	require.NoError(t, err)
	require.Equal(t, "messages:1 social:1\n", out)

	_, err = h.run(t, "status", "--format", "loud")
	require.Error(t, err)
}
