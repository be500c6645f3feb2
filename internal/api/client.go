// Package api implements the HTTP client for the remote finance API.
//
// Every operation maps to one endpoint of the external service that
// owns all business logic; this client only serializes payloads,
// attaches the bearer credential and translates failures into the
// RequestError / ConnectionError taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the bearer credential for authenticated calls.
// An empty token is sent as-is; the API rejects it with 401.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed-token source, handy in tests and one-shot CLIs.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

// Credentials is the result of a successful login.
type Credentials struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New builds a client for the API at baseURL. The timeout applies to
// every request so a dead upstream cannot hang a form forever.
func New(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// Login authenticates against POST /auth/login and returns the token
// and user identity to persist in the session store.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	var creds Credentials
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &creds, false); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// do runs one API call. A nil out discards the response body; authed
// controls the Authorization header.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("read credential: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.requestError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// requestError extracts the server message from an error body when one
// is present. Bodies that are not the usual {"message": "..."} shape
// fall back to a status-only error.
func (c *Client) requestError(resp *http.Response) error {
	re := &RequestError{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var parsed struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(body, &parsed); jsonErr == nil {
			re.Message = parsed.Message
		}
	}
	slog.Debug("API request failed", "status", re.Status, "message", re.Message)
	return re
}
