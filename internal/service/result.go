package service

import "errors"

var (
	// ErrNoDevice is returned by Init on emulators and simulators.
	ErrNoDevice = errors.New("must use a physical device for push notifications")

	// ErrPermissionDenied is returned by Init when the user declined.
	ErrPermissionDenied = errors.New("notification permission not granted")

	// ErrNotFound is returned for ids that are not in the feed.
	ErrNotFound = errors.New("notification not found")
)

// Result is the outcome of a public operation. Failures are reported here
// instead of being returned as errors so callers can degrade quietly.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	ID      string `json:"id,omitempty"`

	err error
}

// Err returns the underlying error of a failed result, for errors.Is checks.
func (r Result) Err() error {
	return r.err
}

func succeed(id string) Result {
	return Result{Success: true, ID: id}
}

func fail(err error) Result {
	return Result{Success: false, Error: err.Error(), err: err}
}
