package passwordreset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	defaultTimeout  = 8 * time.Second
	requestIDHeader = "X-Request-ID"
)

// Client calls the backend password-reset endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// Result is the backend's opaque success payload.
type Result map[string]any

// ConfirmRequest sets a new password using the token from the reset e-mail.
type ConfirmRequest struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

// NewClient constructs an API client. When baseURL is empty the client
// answers from an in-process fake backend.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Fake reports whether the client serves the built-in fake backend.
func (c *Client) Fake() bool {
	return c == nil || c.baseURL == ""
}

// RequestReset asks the backend to e-mail a reset link to email.
func (c *Client) RequestReset(ctx context.Context, email string) (Result, error) {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if c.Fake() {
		return fakeRequestResult(email), nil
	}
	return c.post(ctx, []string{"auth", "password-reset"}, map[string]string{"email": email})
}

// ConfirmReset submits the new password.
func (c *Client) ConfirmReset(ctx context.Context, req ConfirmRequest) (Result, error) {
	req.Token = strings.TrimSpace(req.Token)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if c.Fake() {
		return fakeConfirmResult(req)
	}
	return c.post(ctx, []string{"auth", "password-reset", "confirm"}, map[string]string{
		"token":            req.Token,
		"new_password":     req.NewPassword,
		"confirm_password": req.ConfirmPassword,
	})
}

func (c *Client) post(ctx context.Context, segments []string, body map[string]string) (Result, error) {
	endpoint, err := url.JoinPath(c.baseURL, segments...)
	if err != nil {
		return nil, fmt.Errorf("passwordreset: endpoint: %w", err)
	}
	// The backend routes require the trailing slash.
	endpoint += "/"

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDHeader, requestID(ctx))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("passwordreset: %s: %w", strings.Join(segments, "/"), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("passwordreset: read body: %w", err)
	}
	if resp.StatusCode == http.StatusBadRequest {
		if fe := decodeFieldErrors(raw); fe != nil {
			return nil, fe
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Body: drain(raw)}
	}

	out := Result{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("passwordreset: decode response: %w", err)
	}
	return out, nil
}

type requestIDKey struct{}

// WithRequestID overrides the X-Request-ID sent with calls made under ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// requestID prefers an explicit override, then the id chi's RequestID
// middleware assigned to the inbound request, then a fresh uuid.
func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && strings.TrimSpace(id) != "" {
		return id
	}
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func drain(raw []byte) string {
	if len(raw) > 256 {
		raw = raw[:256]
	}
	return strings.TrimSpace(string(raw))
}
