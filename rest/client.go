// Package rest is the low-level HTTP client for the hosted chat
// platform's API.
//
// A Client knows the base URL, the bot token, and how to shuttle
// JSON in and out.  The per-resource services (ChannelService,
// WebhookService, ...) hang off the Client and map one method to one
// endpoint.  Request payloads are maps rather than structs so that a
// field can be absent, null, or set -- three different things to the
// API (see the request package, which builds these maps).
//
// The client does not rate-limit.  Respecting the platform's limits
// is the caller's (or a fronting proxy's) job.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

// DefaultBaseURL is the platform API root used when no other base is
// configured.
const DefaultBaseURL = "https://chat.tandem.example/api/v1"

// Client talks to the platform API.
type Client struct {
	Debug bool

	baseURL string
	token   string
	httpc   *http.Client

	Channels *ChannelService
	Guilds   *GuildService
	Emojis   *EmojiService
	Webhooks *WebhookService
	Users    *UserService
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client somewhere other than DefaultBaseURL
// (a test server, usually).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithHTTPClient substitutes the underlying http.Client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// NewClient creates a Client authenticating with the given bot
// token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		// One http.Client for the Client's whole life: it caches
		// TCP connections, so we shouldn't create one per request.
		httpc: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Channels = &ChannelService{c}
	c.Guilds = &GuildService{c}
	c.Emojis = &EmojiService{c}
	c.Webhooks = &WebhookService{c}
	c.Users = &UserService{c}
	return c
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.Debug {
		log.Printf("rest.Client."+format, args...)
	}
}

// Error is a non-2xx answer from the API.
type Error struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// do makes one request.  body (if non-nil) is marshaled as JSON; out
// (if non-nil) receives the unmarshaled response.  reason, when
// given, rides along as the audit log reason header.
func (c *Client) do(ctx context.Context, method, path, reason string, body, out interface{}) error {
	c.logf("do %s %s", method, path)

	var rd io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return err
		}
		c.logf("do body %s", js)
		rd = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reason != "" {
		req.Header.Set("X-Audit-Log-Reason", url.PathEscape(reason))
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	c.logf("do %s %s -> %d", method, path, resp.StatusCode)

	if resp.StatusCode < 200 || 300 <= resp.StatusCode {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var payload struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(bs, &payload) == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil || len(bs) == 0 {
		return nil
	}
	return json.Unmarshal(bs, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) post(ctx context.Context, path, reason string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, reason, body, out)
}

func (c *Client) patch(ctx context.Context, path, reason string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, reason, body, out)
}

func (c *Client) delete(ctx context.Context, path, reason string) error {
	return c.do(ctx, http.MethodDelete, path, reason, nil, nil)
}
