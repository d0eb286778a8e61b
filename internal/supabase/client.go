// Package supabase is a thin client for the Supabase Auth and PostgREST APIs.
//
// All calls go through Request, which attaches the project headers, encodes an
// optional JSON body and decodes the response into the caller's result type.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/rs/zerolog"
)

// Unit is the result type for calls whose response body is ignored.
type Unit = struct{}

// ErrNoRow is returned when a mutation or lookup yields an empty row list.
var ErrNoRow = errors.New("no row returned")

// APIError is a non-2xx response. Error returns the extracted message only.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorEnvelope is the GoTrue error body.
type errorEnvelope struct {
	Error            *string `json:"error"`
	ErrorDescription *string `json:"error_description"`
}

// Client talks to one Supabase project.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	logger  zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the shared transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger.With().Str("service", "SupabaseClient").Logger() }
}

// New creates a client for the project at baseURL authenticated with the anon key.
func New(baseURL, anonKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		// No timeout: callers rely on context cancellation.
		http:   &http.Client{},
		logger: zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the project URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request performs one round trip and decodes the response into T.
//
// path is relative to the project URL and carries its own query string. When body is
// non-nil it is sent as JSON together with "Prefer: return=representation".
func Request[T any](ctx context.Context, c *Client, method, path, token string, body any) (T, error) {
	var zero T

	raw, status, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return zero, err
	}

	if status < 200 || status >= 300 {
		return zero, &APIError{Status: status, Message: errorMessage(raw, status)}
	}

	if isUnit[T]() {
		return zero, nil
	}

	if status == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		if acceptsNoValue[T]() {
			return zero, nil
		}
		return zero, fmt.Errorf("Failed to parse empty response: expected %s, got no content", typeName[T]())
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("Failed to parse response: %v", err)
	}
	return out, nil
}

// Rest is Request against /rest/v1/<endpoint>.
func Rest[T any](ctx context.Context, c *Client, method, endpoint, token string, body any) (T, error) {
	return Request[T](ctx, c, method, "/rest/v1/"+strings.TrimLeft(endpoint, "/"), token, body)
}

// First unwraps the first row of a PostgREST list response.
func First[T any](rows []T, msg string) (T, error) {
	if len(rows) == 0 {
		var zero T
		return zero, fmt.Errorf("%s: %w", msg, ErrNoRow)
	}
	return rows[0], nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("Network error: %v", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", stripQuery(path)).Msg("Supabase request failed")
		return nil, 0, fmt.Errorf("Network error: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn().Err(closeErr).Msg("Failed to close response body")
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("Network error: failed to read response: %v", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", stripQuery(path)).
		Int("status_code", resp.StatusCode).
		Msg("Supabase request")

	return raw, resp.StatusCode, nil
}

// errorMessage extracts error_description (or error) from a GoTrue envelope and
// otherwise returns the body verbatim. An empty body yields the HTTP status.
func errorMessage(raw []byte, status int) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Sprintf("HTTP %d %s", status, http.StatusText(status))
	}
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil {
		if env.ErrorDescription != nil {
			return *env.ErrorDescription
		}
		return *env.Error
	}
	return string(raw)
}

func acceptsNoValue[T any]() bool {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map:
		return true
	case reflect.Struct:
		return t.NumField() == 0
	}
	return false
}

// isUnit reports whether T has no fields, in which case the body is never decoded.
func isUnit[T any]() bool {
	t := reflect.TypeFor[T]()
	return t.Kind() == reflect.Struct && t.NumField() == 0
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func stripQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
