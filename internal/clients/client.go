package clients

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
)

// DefaultTimeout bounds every outbound call when no client is supplied
const DefaultTimeout = 10 * time.Second

// ErrNotFound is returned when a sibling service answers 404
var ErrNotFound = errors.New("resource not found")

// StatusError is a non-2xx answer from a sibling service
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// envelope is the success body every service of the platform answers with
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewHTTPClient returns the client shared by all collaborator clients
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

type baseClient struct {
	http    *http.Client
	baseURL string
}

func newBaseClient(httpClient *http.Client, baseURL string) baseClient {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	return baseClient{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// do sends one request carrying the caller's session token and decodes the
// data field of the answer into out, when out is not nil
func (c baseClient) do(ctx context.Context, op, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if resp.StatusCode/100 != 2 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Operation: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%s: response has no data", op)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s: failed to decode data: %w", op, err)
	}
	return nil
}
