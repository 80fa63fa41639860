package dhan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIError represents an error response from the Dhan API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dhan api error %d: %s", e.StatusCode, e.Message)
}

// envelope is the common Dhan v2 response wrapper.
type envelope struct {
	Status string              `json:"status"`
	Data   jsoniter.RawMessage `json:"data"`
}

// doRequest performs a POST with a JSON payload and returns the data field.
func (c *Client) doRequest(ctx context.Context, path string, payload any) (jsoniter.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("access-token", c.accessToken)
	req.Header.Set("client-id", c.clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       respBody,
		}
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Status != "" && env.Status != "success" {
		return nil, fmt.Errorf("dhan api status %q: %s", env.Status, respBody)
	}

	return env.Data, nil
}

// post performs a request and unmarshals the data field into result.
func (c *Client) post(ctx context.Context, path string, payload, result any) error {
	data, err := c.doRequest(ctx, path, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
