package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/alonix-notify/internal/config"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	config.Load()
	return tmp
}

func TestConfigFromGlobal(t *testing.T) {
	tmp := setupTest(t)
	t.Setenv("ALONIX_LOGGING_ENABLED", "true")
	t.Setenv("ALONIX_LOGGING_LEVEL", "warn")
	t.Setenv("ALONIX_LOGGING_MAX_FILES", "5")
	t.Setenv("ALONIX_LOGGING_MAX_AGE_DAYS", "3")
	t.Setenv("ALONIX_LOGGING_DIR", filepath.Join(tmp, "custom"))
	config.Load()

	cfg := FromGlobalConfig("serve")
	require.True(t, cfg.Enabled)
	require.Equal(t, "warn", cfg.Level)
	require.Equal(t, Retention{MaxFiles: 5, MaxAge: 72 * time.Hour}, cfg.Retention)
	require.Equal(t, filepath.Join(tmp, "custom"), cfg.Dir)
	require.Equal(t, "serve", cfg.Command)
	require.Equal(t, os.Getpid(), cfg.PID)
}

func TestDebugAndQuietOverrideLevel(t *testing.T) {
	setupTest(t)
	t.Setenv("ALONIX_QUIET", "true")
	config.Load()
	require.Equal(t, "error", FromGlobalConfig("").Level)

	t.Setenv("ALONIX_DEBUG", "true")
	config.Load()
	require.Equal(t, "debug", FromGlobalConfig("").Level)
}

func TestDisabledLoggerIsNoop(t *testing.T) {
	l, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.Equal(t, Nop(), l)
	require.NoError(t, l.Shutdown())
}

func TestJSONOutputAndRedaction(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{Level: "debug", Command: "test", PID: 42})

	l.With("component", "service").Info("token stored", "push_token", "ExponentPushToken[abc]", "category", "reminder")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "token stored", entry["msg"])
	require.Equal(t, "service", entry["component"])
	require.Equal(t, "[REDACTED]", entry["push_token"])
	require.Equal(t, "reminder", entry["category"])
	require.EqualValues(t, 42, entry["pid"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{Level: "error"})

	l.Info("ignored")
	l.Error("kept")

	require.NotContains(t, buf.String(), "ignored")
	require.Contains(t, buf.String(), "kept")
}

func TestInitCreatesFileUnderStateDir(t *testing.T) {
	tmp := setupTest(t)

	l, err := Init(Config{Enabled: true, Level: "info", Retention: Retention{MaxFiles: 3}, Command: "receive", PID: 7})
	require.NoError(t, err)
	l.Info("hello")
	require.NoError(t, l.Shutdown())

	impl := l.(*loggerImpl)
	require.Equal(t, filepath.Join(tmp, "state", "alonix-notify", "logs"), filepath.Dir(impl.path))
	require.True(t, strings.HasSuffix(impl.path, "_PID7_receive.log"))
	data, err := os.ReadFile(impl.path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello")
}

func TestInitPrefersLoggingDir(t *testing.T) {
	tmp := setupTest(t)
	dir := filepath.Join(tmp, "custom", "logs")

	l, err := Init(Config{Enabled: true, Dir: dir, Command: "serve", PID: 1})
	require.NoError(t, err)
	require.NoError(t, l.Shutdown())
	require.Equal(t, dir, filepath.Dir(l.(*loggerImpl).path))
}

func TestLogFileStart(t *testing.T) {
	started := time.Date(2026, 5, 2, 9, 15, 30, 0, time.Local)
	name := logFileName(started, 12, "prefs mute-all")
	require.Equal(t, "alonix-notify_20260502_091530_PID12_prefs_mute-all.log", name)

	got, ok := logFileStart(name)
	require.True(t, ok)
	require.True(t, started.Equal(got))

	_, ok = logFileStart("alonix-notify_garbage.log")
	require.False(t, ok)
	_, ok = logFileStart("other.log")
	require.False(t, ok)
}

func writeLogs(t *testing.T, dir string, starts ...time.Time) []string {
	t.Helper()
	names := make([]string, len(starts))
	for i, started := range starts {
		names[i] = logFileName(started, i, "receive")
		require.NoError(t, os.WriteFile(filepath.Join(dir, names[i]), []byte("x"), 0o600))
	}
	return names
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestPruneKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.Local)
	var starts []time.Time
	for i := 0; i < 5; i++ {
		starts = append(starts, now.Add(-time.Duration(5-i)*time.Minute))
	}
	names := writeLogs(t, dir, starts...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.log"), []byte("x"), 0o600))

	removed, err := Retention{MaxFiles: 2}.prune(dir, now)
	require.NoError(t, err)
	require.Equal(t, 3, removed)
	require.ElementsMatch(t, []string{names[3], names[4], "other.log"}, dirNames(t, dir))
}

func TestPruneDropsExpired(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.Local)
	day := 24 * time.Hour
	names := writeLogs(t, dir, now.Add(-10*day), now.Add(-3*day), now.Add(-time.Hour))

	removed, err := Retention{MaxFiles: 10, MaxAge: 7 * day}.prune(dir, now)
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.ElementsMatch(t, names[1:], dirNames(t, dir))

	removed, err = Retention{}.prune(dir, now)
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestRedactorSegments(t *testing.T) {
	r := newRedactor()
	require.True(t, r.isSensitive("push_token"))
	require.True(t, r.isSensitive("API-Key"))
	require.True(t, r.isSensitive("Authorization"))
	require.False(t, r.isSensitive("tokenizer"))
	require.False(t, r.isSensitive("category"))
}

func TestRedactorScrubsPushTokensInValues(t *testing.T) {
	r := newRedactor()
	err := errors.New("register AlonixPushToken[dev-123] failed")
	data := map[string]any{
		"category": "ride_matched",
		"auth":     "bearer x",
		"nested":   []any{"ExponentPushToken[abc]", 3},
	}

	got := r.redact([]any{"error", err, "data", data, "count", 2, "dangling"})

	require.Equal(t, "register AlonixPushToken[[REDACTED]] failed", got[1])
	require.Equal(t, map[string]any{
		"category": "ride_matched",
		"auth":     "[REDACTED]",
		"nested":   []any{"ExponentPushToken[[REDACTED]]", 3},
	}, got[3])
	require.Equal(t, 2, got[5])
	require.Equal(t, "dangling", got[6])
	require.Equal(t, "bearer x", data["auth"])
}
