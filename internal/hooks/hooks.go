// Package hooks runs user scripts when notifications are received or opened.
//
// Scripts live in {hooks_dir}/<point>/ and run in name order. Every script
// gets the notification fields as ALONIX_* environment variables.
package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/alonix-notify/internal/config"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/logging"
	"github.com/cristianoliveira/alonix-notify/internal/service"
)

// Point names a hook directory.
type Point string

const (
	PointReceived Point = "received"
	PointOpened   Point = "opened"
)

// waitDelay bounds how long a timed out script may hold its output open.
const waitDelay = 500 * time.Millisecond

// Failure modes.
const (
	FailureWarn   = "warn"
	FailureIgnore = "ignore"
)

// Options configures a Runner.
type Options struct {
	Dir         string
	Async       bool
	Timeout     time.Duration
	MaxAsync    int
	FailureMode string
	// Output receives script output. Defaults to os.Stderr.
	Output io.Writer
	Logger logging.Logger
}

// Runner executes hook scripts.
type Runner struct {
	opts Options
	log  logging.Logger

	mu      sync.Mutex
	pending int
	wg      sync.WaitGroup
}

// New returns a Runner. Zero values fall back to a 30s timeout, 10 async
// slots and the warn failure mode.
func New(opts Options) *Runner {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxAsync <= 0 {
		opts.MaxAsync = 10
	}
	if opts.FailureMode == "" {
		opts.FailureMode = FailureWarn
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Runner{opts: opts, log: log.With("component", "hooks")}
}

// FromConfig builds a Runner from the hooks_* configuration keys.
func FromConfig(log logging.Logger) *Runner {
	return New(Options{
		Dir:         Dir(),
		Async:       config.GetBool("hooks_async", false),
		Timeout:     time.Duration(config.GetInt("hooks_timeout", 30)) * time.Second,
		MaxAsync:    config.GetInt("hooks_max_async", 10),
		FailureMode: config.Get("hooks_failure_mode", FailureWarn),
		Logger:      log,
	})
}

// Dir returns hooks_dir, or {config_dir}/hooks when unset.
func Dir() string {
	if dir := config.Get("hooks_dir", ""); dir != "" {
		return dir
	}
	return filepath.Join(config.Get("config_dir", ""), "hooks")
}

// Scripts returns the executable files for point, sorted by name.
func (r *Runner) Scripts(point Point) []string {
	dir := filepath.Join(r.opts.Dir, string(point))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var scripts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}
		scripts = append(scripts, path)
	}
	sort.Strings(scripts)
	return scripts
}

// Run executes every script for point. Synchronous failures are returned
// joined in warn mode and dropped in ignore mode.
func (r *Runner) Run(ctx context.Context, point Point, env map[string]string) error {
	scripts := r.Scripts(point)
	if len(scripts) == 0 {
		return nil
	}
	vars := r.environ(point, env)
	r.log.Debug("running hooks", "point", string(point), "scripts", len(scripts))

	var errs []string
	for _, script := range scripts {
		name := filepath.Base(script)
		if r.opts.Async {
			if !r.acquire() {
				r.log.Warn("too many pending hooks, skipping", "script", name, "max", r.opts.MaxAsync)
				continue
			}
			go r.runAsync(script, name, vars)
			continue
		}
		if err := r.exec(ctx, script, vars); err != nil {
			r.log.Warn("hook failed", "script", name, "error", err)
			if r.opts.FailureMode != FailureIgnore {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("hooks %s failed: %s", point, strings.Join(errs, "; "))
	}
	return nil
}

// Wait blocks until every async hook has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) acquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending >= r.opts.MaxAsync {
		return false
	}
	r.pending++
	r.wg.Add(1)
	return true
}

func (r *Runner) release() {
	r.mu.Lock()
	r.pending--
	r.mu.Unlock()
	r.wg.Done()
}

func (r *Runner) runAsync(script, name string, vars []string) {
	defer r.release()
	start := time.Now()
	if err := r.exec(context.Background(), script, vars); err != nil && r.opts.FailureMode != FailureIgnore {
		r.log.Warn("async hook failed", "script", name, "error", err, "duration", time.Since(start))
	}
}

func (r *Runner) exec(ctx context.Context, script string, vars []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = vars
	cmd.Stdout = r.opts.Output
	cmd.Stderr = r.opts.Output
	// Children of the script inherit the output pipes; kill the whole group
	// on timeout and stop waiting for the pipes shortly after.
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay
	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("timed out after %s", r.opts.Timeout)
	}
	return err
}

func (r *Runner) environ(point Point, env map[string]string) []string {
	vars := append(os.Environ(),
		"HOOK_POINT="+string(point),
		"HOOK_TIMESTAMP="+time.Now().Format(time.RFC3339),
	)
	if exe, err := os.Executable(); err == nil {
		vars = append(vars, "ALONIX_BINARY="+exe)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		vars = append(vars, k+"="+env[k])
	}
	return vars
}

// RecordEnv returns the hook variables describing rec.
func RecordEnv(rec domain.Record) map[string]string {
	return map[string]string{
		"ALONIX_NOTIFICATION_ID":        rec.ID,
		"ALONIX_NOTIFICATION_TITLE":     rec.Title,
		"ALONIX_NOTIFICATION_MESSAGE":   rec.Message,
		"ALONIX_NOTIFICATION_TYPE":      rec.Type.String(),
		"ALONIX_NOTIFICATION_TIMESTAMP": rec.Timestamp,
		"ALONIX_NOTIFICATION_READ":      strconv.FormatBool(rec.Read),
	}
}

// Attach runs the received and opened hooks for svc's events until the
// returned subscriptions are closed.
func (r *Runner) Attach(ctx context.Context, svc *service.Service) []service.Subscription {
	received := svc.OnReceived(func(rc service.Receipt) {
		env := RecordEnv(rc.Record)
		env["ALONIX_DECISION"] = string(rc.Decision.Reason)
		env["ALONIX_ALERTED"] = strconv.FormatBool(rc.Decision.ShouldAlert)
		if err := r.Run(ctx, PointReceived, env); err != nil {
			r.log.Warn("received hooks failed", "error", err)
		}
	})
	opened := svc.OnOpened(func(rec domain.Record, target domain.NavigationTarget) {
		env := RecordEnv(rec)
		env["ALONIX_SCREEN"] = target.Screen
		if err := r.Run(ctx, PointOpened, env); err != nil {
			r.log.Warn("opened hooks failed", "error", err)
		}
	})
	return []service.Subscription{received, opened}
}
