package device

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"terrarium_dashboard/internal/models"
)

// ErrRequestFailed is the single failure outcome of a device call: transport
// errors, non-2xx responses and undecodable status bodies all wrap it.
var ErrRequestFailed = errors.New("device request failed")

var errEmptyAddress = errors.New("device address is empty")

// StatusError reports a non-success HTTP status from the device.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.Code)
}

// Unwrap lets errors.Is(err, ErrRequestFailed) match status failures.
func (e *StatusError) Unwrap() error { return ErrRequestFailed }

// Controller sends actuator commands.
type Controller interface {
	SendAction(ctx context.Context, actuatorID, action string) error
}

// StatusSource reads the device status snapshot.
type StatusSource interface {
	FetchStatus(ctx context.Context) (models.DeviceStatus, error)
}

// controlRequest is the POST /<actuator-id> body.
type controlRequest struct {
	Action   string `json:"action"`
	Actuator string `json:"actuator,omitempty"`
}

// Client talks to the terrarium controller over plain HTTP.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	echoActuator bool
}

// Ensure implementation of both device interfaces at compile time.
var (
	_ Controller   = (*Client)(nil)
	_ StatusSource = (*Client)(nil)
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request; zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithEchoActuator adds the actuator id to control request bodies.
func WithEchoActuator(echo bool) Option {
	return func(c *Client) {
		c.echoActuator = echo
	}
}

// NewClient builds a client for the device at address ("192.168.1.5",
// "http://192.168.1.5" and "http://host:8081/" are all accepted).
func NewClient(address string, opts ...Option) (*Client, error) {
	base, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized device address.
func (c *Client) BaseURL() string { return c.baseURL }

func normalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", errEmptyAddress
	}
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	u, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("parse device address %q: %w", address, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("device address %q has no host", address)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// SendAction posts {"action": action} to /<actuatorID>. Any 2xx is success.
func (c *Client) SendAction(ctx context.Context, actuatorID, action string) error {
	body := controlRequest{Action: action}
	if c.echoActuator {
		body.Actuator = actuatorID
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encode body: %w", ErrRequestFailed, err)
	}

	target := c.baseURL + "/" + url.PathEscape(actuatorID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post %s: %w", ErrRequestFailed, target, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !isSuccess(resp.StatusCode) {
		return &StatusError{Method: http.MethodPost, URL: target, Code: resp.StatusCode}
	}
	return nil
}

// FetchStatus GETs / and decodes the device status object.
func (c *Client) FetchStatus(ctx context.Context) (models.DeviceStatus, error) {
	target := c.baseURL + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return models.DeviceStatus{}, fmt.Errorf("%w: build request: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.DeviceStatus{}, fmt.Errorf("%w: get %s: %w", ErrRequestFailed, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.DeviceStatus{}, &StatusError{Method: http.MethodGet, URL: target, Code: resp.StatusCode}
	}

	var st models.DeviceStatus
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return models.DeviceStatus{}, fmt.Errorf("%w: decode status: %w", ErrRequestFailed, err)
	}
	return st, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
