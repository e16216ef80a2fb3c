// Package logging writes one JSON log file per alonix-notify invocation.
package logging

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristianoliveira/alonix-notify/internal/config"
)

// Config describes the log file of a single command run.
type Config struct {
	Enabled bool
	Level   string
	// Dir overrides the log directory. Empty means {state_dir}/logs.
	Dir       string
	Retention Retention
	// Command is the subcommand being run. It is part of the file name.
	Command string
	PID     int
}

// Retention bounds the log files kept in the log directory.
type Retention struct {
	MaxFiles int
	// MaxAge removes files started longer ago. Zero keeps files of any age.
	MaxAge time.Duration
}

// DefaultConfig returns logging disabled at info level, keeping ten files
// for at most two weeks.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Retention: Retention{MaxFiles: 10, MaxAge: 14 * 24 * time.Hour},
		Command:   filepath.Base(os.Args[0]),
		PID:       os.Getpid(),
	}
}

// FromGlobalConfig reads the logging_* keys for command. debug forces the
// debug level; quiet raises it to error unless debug is set.
func FromGlobalConfig(command string) Config {
	cfg := DefaultConfig()
	if command != "" {
		cfg.Command = command
	}
	cfg.Enabled = config.GetBool("logging_enabled", false)
	cfg.Level = config.Get("logging_level", "info")
	cfg.Dir = config.Get("logging_dir", "")
	cfg.Retention.MaxFiles = config.GetInt("logging_max_files", 10)
	cfg.Retention.MaxAge = time.Duration(config.GetInt("logging_max_age_days", 14)) * 24 * time.Hour
	switch {
	case config.GetBool("debug", false):
		cfg.Level = "debug"
	case config.GetBool("quiet", false):
		cfg.Level = "error"
	}
	return cfg
}

// LogDir picks the first writable directory among cfg.Dir, {state_dir}/logs
// and a directory under the system temp dir.
func LogDir(cfg Config) (string, error) {
	var candidates []string
	if cfg.Dir != "" {
		candidates = append(candidates, cfg.Dir)
	}
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		candidates = append(candidates, filepath.Join(stateDir, "logs"))
	}
	for _, dir := range candidates {
		if writable(dir) {
			return dir, nil
		}
	}
	tempBase := filepath.Join(os.TempDir(), "alonix-notify", "logs")
	if err := os.MkdirAll(tempBase, 0700); err != nil {
		return "", err
	}
	return tempBase, nil
}

func writable(dir string) bool {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".write-check-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
