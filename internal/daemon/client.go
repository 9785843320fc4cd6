package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StatusSource defines the daemon calls the sync engine consumes.
// This interface is implemented by *Client and can be used for testing.
type StatusSource interface {
	Handshake(ctx context.Context) error
	FetchDevices(ctx context.Context) ([]DeviceRecord, error)
	FetchAllStatuses(ctx context.Context) ([]DeviceStatus, error)
	FetchRecentStatuses(ctx context.Context) ([]DeviceStatus, error)
}

// Ensure Client implements StatusSource at compile time.
var _ StatusSource = (*Client)(nil)

// Client talks to the cooling daemon's HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultDaemonAddr = "127.0.0.1:11987"
	defaultUserAgent  = "coolview/0.1"
	requestTimeout    = 2 * time.Second

	// Steady-state calls retry a couple of times with exponential backoff
	// before the poll is counted as failed. The handshake gets a larger
	// budget because the daemon may still be starting up.
	statusAttempts    = 3
	handshakeAttempts = 6
	retryBaseDelay    = 250 * time.Millisecond
)

// NewClient builds a Client using the provided host:port address.
func NewClient(addr string) (*Client, error) {
	base, err := parseBaseURL(addr)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Handshake probes daemon liveness. It retries longer than the status calls
// and returns nil only once the daemon has confirmed the shake.
func (c *Client) Handshake(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var payload HandshakeResponse
	if err := c.do(ctx, http.MethodGet, "/handshake", nil, &payload, handshakeAttempts); err != nil {
		return err
	}
	if !payload.Shake {
		return fmt.Errorf("daemon refused handshake")
	}
	return nil
}

// FetchDevices retrieves the daemon's device catalog. Called once per session.
func (c *Client) FetchDevices(ctx context.Context) ([]DeviceRecord, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload DevicesResponse
	if err := c.do(ctx, http.MethodGet, "/devices", nil, &payload, statusAttempts); err != nil {
		return nil, err
	}
	return payload.Devices, nil
}

// FetchAllStatuses retrieves the complete per-device status history, bounded
// to the daemon's retention window.
func (c *Client) FetchAllStatuses(ctx context.Context) ([]DeviceStatus, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload StatusResponse
	if err := c.do(ctx, http.MethodPost, "/status", statusRequest{All: true}, &payload, statusAttempts); err != nil {
		return nil, err
	}
	return payload.Devices, nil
}

// FetchRecentStatuses retrieves only the newest snapshot(s) per device.
// An empty result is a valid "no data yet" response, not an error.
func (c *Client) FetchRecentStatuses(ctx context.Context) ([]DeviceStatus, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload StatusResponse
	if err := c.do(ctx, http.MethodPost, "/status", statusRequest{}, &payload, statusAttempts); err != nil {
		return nil, err
	}
	return payload.Devices, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any, attempts int) error {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		lastErr = c.doOnce(ctx, method, path, body, dest)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("daemon %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(addr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		trimmed = defaultDaemonAddr
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse daemon address %q: %w", addr, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
