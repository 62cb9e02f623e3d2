package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"
)

// StatusError is returned when the API responds with a non-2xx status.
// It carries the status code and the response body for diagnostics.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Session holds shared state for clients of a browser-facing web API. Embed
// it in concrete client structs to get HTTP helpers, fingerprint headers, and
// cookie persistence across the requests of one logical operation.
type Session struct {
	BaseURL string            // API base URL (no trailing slash).
	Client  *http.Client      // HTTP client; falls back to a cookie-jar client.
	Headers map[string]string // Headers applied to every request.

	clientOnce    sync.Once
	defaultClient *http.Client
}

// NewSession creates a Session with the given settings. A nil client falls
// back to a shared cookie-jar client at call time.
func NewSession(baseURL string, client *http.Client) Session {
	return Session{
		BaseURL: baseURL,
		Client:  client,
	}
}

// httpClient returns the configured client or a cached default with a cookie
// jar. The jar matters: anti-bot layers hand out challenge cookies on the
// first response and expect them back on every request that follows.
func (s *Session) httpClient() *http.Client {
	if s.Client != nil {
		return s.Client
	}

	s.clientOnce.Do(func() {
		s.defaultClient = &http.Client{Timeout: 10 * time.Minute}
		if jar, err := cookiejar.New(nil); err == nil {
			s.defaultClient.Jar = jar
		}
	})

	return s.defaultClient
}

// NewRequest builds an *http.Request with the base URL and the session
// headers already applied.
func (s *Session) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := s.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client.
func (s *Session) Do(req *http.Request) (*http.Response, error) {
	return s.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
}

// PostJSON marshals payload as JSON, sends a POST to the given path, checks
// for a 2xx status, and unmarshals the response body into dest. A non-2xx
// reply is returned as a *StatusError. If dest is nil the response body is
// discarded after the status check.
func (s *Session) PostJSON(ctx context.Context, path string, payload any, dest any) error {
	resp, err := s.postJSON(ctx, path, payload)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// PostStream marshals payload as JSON, sends a POST to the given path, checks
// for a 2xx status, and returns the open response body for incremental
// consumption. The caller owns the returned body and must close it. A non-2xx
// reply is drained, closed, and returned as a *StatusError.
func (s *Session) PostStream(ctx context.Context, path string, payload any) (io.ReadCloser, error) {
	resp, err := s.postJSON(ctx, path, payload)
	if err != nil {
		return nil, err
	}

	if err := checkStatus(resp); err != nil {
		_ = resp.Body.Close()
		return nil, err
	}

	return resp.Body, nil
}

// postJSON builds and sends a JSON POST, returning the raw response.
func (s *Session) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := s.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	return resp, nil
}

// checkStatus reads and wraps a non-2xx response into a *StatusError. The
// body is consumed only on the error path.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	respBody, _ := io.ReadAll(resp.Body)

	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(respBody),
	}
}
