package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
)

// Call is one recorded platform invocation.
type Call struct {
	Op   string
	Args []any
}

// Recorder is an in-memory Platform that records every call. Setting an
// entry in Errors makes the matching operation fail.
type Recorder struct {
	Physical   bool
	Permission bool
	Token      string
	Errors     map[string]error

	mu      sync.Mutex
	calls   []Call
	nextID  int
	pending map[string]Content
	badge   int
}

// NewRecorder returns a recorder on a physical device with permission.
func NewRecorder() *Recorder {
	return &Recorder{
		Physical:   true,
		Permission: true,
		Token:      "AlonixPushToken[test]",
		Errors:     make(map[string]error),
		pending:    make(map[string]Content),
	}
}

func (r *Recorder) record(op string, args ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: op, Args: args})
	return r.Errors[op]
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Ops returns the names of the recorded calls in order.
func (r *Recorder) Ops() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Op
	}
	return out
}

// CallsTo returns the recorded calls of one operation.
func (r *Recorder) CallsTo(op string) []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Pending returns the ids still scheduled.
func (r *Recorder) Pending() map[string]Content {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Content, len(r.pending))
	for k, v := range r.pending {
		out[k] = v
	}
	return out
}

// Badge returns the last count set.
func (r *Recorder) Badge() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.badge
}

func (r *Recorder) IsPhysicalDevice() bool {
	_ = r.record("IsPhysicalDevice")
	return r.Physical
}

func (r *Recorder) RequestPermissions(context.Context) (bool, error) {
	if err := r.record("RequestPermissions"); err != nil {
		return false, err
	}
	return r.Permission, nil
}

func (r *Recorder) GetToken(context.Context) (string, error) {
	if err := r.record("GetToken"); err != nil {
		return "", err
	}
	return r.Token, nil
}

func (r *Recorder) CreateChannel(_ context.Context, ch domain.Channel) error {
	return r.record("CreateChannel", ch)
}

func (r *Recorder) Present(_ context.Context, content Content, how Presentation) error {
	return r.record("Present", content, how)
}

func (r *Recorder) Schedule(_ context.Context, content Content, trigger Trigger) (string, error) {
	if err := r.record("Schedule", content, trigger); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := fmt.Sprintf("local-%d", r.nextID)
	if !trigger.Immediate() {
		r.pending[id] = content
	}
	return id, nil
}

func (r *Recorder) Cancel(_ context.Context, id string) error {
	if err := r.record("Cancel", id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[id]; !ok {
		return fmt.Errorf("cancel %s: %w", id, ErrUnknownNotification)
	}
	delete(r.pending, id)
	return nil
}

func (r *Recorder) CancelAll(context.Context) error {
	if err := r.record("CancelAll"); err != nil {
		return err
	}
	r.mu.Lock()
	r.pending = make(map[string]Content)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) DismissAll(context.Context) error {
	return r.record("DismissAll")
}

func (r *Recorder) SetBadge(_ context.Context, count int) error {
	if err := r.record("SetBadge", count); err != nil {
		return err
	}
	r.mu.Lock()
	r.badge = count
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Vibrate(_ context.Context, pattern []int) error {
	return r.record("Vibrate", pattern)
}
