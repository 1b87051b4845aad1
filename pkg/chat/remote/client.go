package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"erp-agent-nexus/internal/dto"
	"erp-agent-nexus/pkg/chat/resolver"
)

// Client posts queries to the remote chat backend.
type Client struct {
	URL    string
	Client *http.Client
}

// Ensure Client implements resolver.Source
var _ resolver.Source = &Client{}

// NewClient leaves timeouts to the caller's context.
func NewClient(url string) *Client {
	return &Client{
		URL: url,
		Client: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func (c *Client) Name() string {
	return "remote"
}

const (
	maxResponseBytes  = 1 << 20 // 1 MiB
	maxErrorBodyBytes = 512
)

var ErrResponseTooLarge = errors.New("response body exceeds 1 MiB")

// StatusError is a non-2xx answer from the backend. Body is truncated.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Server Error (%d)", e.StatusCode)
}

// Only server-side and throttling failures are worth another attempt.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// DecodeError is a 2xx answer whose body is not JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "unmarshal response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Retryable() bool { return false }

func (c *Client) Respond(ctx context.Context, q resolver.Query) (*dto.ChatBackendResponse, error) {
	payload := dto.ChatBackendRequest{
		Query:    q.Text,
		RoleId:   q.RoleId,
		MockMode: q.SimulationMode,
		Context:  dto.ChatBackendContext{History: q.History},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat backend request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := bodyBytes
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if len(bodyBytes) > maxResponseBytes {
		return nil, &DecodeError{Err: ErrResponseTooLarge}
	}

	var out dto.ChatBackendResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &out, nil
}
