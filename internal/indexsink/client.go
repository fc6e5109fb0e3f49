package indexsink

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
)

// RetryableError marks a delivery failure worth retrying (429 and 5xx).
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, e.Message)
}

// Client delivers records to the index HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type putChunksRequest struct {
	Chunks []Record `json:"chunks"`
}

// PutChunks upserts records with PUT /documents/{docID}/chunks.
func (c *Client) PutChunks(ctx context.Context, docID string, records []Record) error {
	body, err := json.Marshal(putChunksRequest{Chunks: records})
	if err != nil {
		return fmt.Errorf("marshal chunks: %w", err)
	}
	u := c.baseURL + "/documents/" + url.PathEscape(docID) + "/chunks"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("put chunks: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusCreated, resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("put chunks %s: status %d: %s", docID, resp.StatusCode, string(respBody))
	}
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// NoopSink discards records. Used when no index is configured.
type NoopSink struct{}

func (NoopSink) PutChunks(context.Context, string, []Record) error { return nil }
