package receiver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cristianoliveira/alonix-notify/internal/platform"
	"github.com/cristianoliveira/alonix-notify/internal/service"
)

// ErrUnreachable means no receiver answered at the address.
var ErrUnreachable = errors.New("receiver not reachable")

// Client talks to a running receiver. The CLI uses it for operations that
// need the long-lived process, like cancelling a pending timer.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client for addr, either host:port or a full URL.
func NewClient(addr string) *Client {
	base := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Client{base: base, http: &http.Client{Timeout: 10 * time.Second}}
}

// Schedule queues a notification in the receiver and returns its id.
func (c *Client) Schedule(ctx context.Context, req ScheduleRequest) (string, error) {
	var res service.Result
	if err := c.do(ctx, http.MethodPost, "/v1/schedule", req, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

// Cancel drops one scheduled notification.
func (c *Client) Cancel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/schedule/"+id, nil, nil)
}

// CancelAll drops every scheduled notification.
func (c *Client) CancelAll(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/schedule", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w at %s: %v", ErrUnreachable, c.base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var env errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Error.Message == "" {
			return fmt.Errorf("receiver returned %s", resp.Status)
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", env.Error.Message, platform.ErrUnknownNotification)
		}
		if len(env.Error.Details) > 0 {
			return fmt.Errorf("%s: %v", env.Error.Message, env.Error.Details)
		}
		return errors.New(env.Error.Message)
	}
	if dest == nil {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return json.Unmarshal(env.Data, dest)
}
