// Package client implements query.Repository against a remote Folio JSON API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/auth"
)

const (
	// DefaultBaseURL is used when neither config nor FOLIO_API_URL set one.
	DefaultBaseURL = "http://localhost:8080/api"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second
	// LoginPath is handed to the unauthorized hook after a 401.
	LoginPath = "/login"

	fallbackMessage = "something went wrong"
)

// Error is the normalized form of every failed request.
type Error struct {
	Status  int // 0 for network failures
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return "client: " + e.Message
	}
	return fmt.Sprintf("client: %d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// Client talks to a Folio API.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         *auth.Service
	onUnauthorized func(path string)
	logger         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUnauthorizedHook sets the function called with LoginPath after the
// server rejects the token.
func WithUnauthorizedHook(fn func(path string)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a Client for baseURL. tokens may be nil for anonymous access.
func New(baseURL string, tokens *auth.Service, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		tokens:  tokens,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// get performs a GET against path and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			c.logger.Warn("client: read token failed", slog.String("error", err.Error()))
		} else if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &Error{Message: fallbackMessage, err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failure(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: fallbackMessage, err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// failure turns a non-2xx response into *Error and runs the 401 handling.
func (c *Client) failure(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = fallbackMessage
	}
	e := &Error{Status: resp.StatusCode, Message: msg}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		e.err = apperr.ErrUnauthorized
		if c.tokens != nil {
			if err := c.tokens.Clear(); err != nil {
				c.logger.Warn("client: clear token failed", slog.String("error", err.Error()))
			}
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized(LoginPath)
		}
	case http.StatusNotFound:
		e.err = apperr.ErrNotFound
	}
	return e
}

// IsStatus reports whether err is an *Error with the given status.
func IsStatus(err error, status int) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == status
}
