// Package fetch moves document bytes between the service and external URLs:
// GET for source documents, PUT for rendered page uploads.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tgn-press/pipeline/internal/observability"
)

const defaultTimeout = 20 * time.Second

// Client performs outbound transfers with a bounded timeout per request.
type Client struct {
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a transfer client. A non-positive timeout falls back to
// the default.
func NewClient(timeout time.Duration, logger *observability.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.WithComponent("fetch"),
	}
}

// Download retrieves the document at url. Any status of 400 or above is an
// error.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("download document: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read document body: %w", err)
	}

	c.logger.Debug().Int("bytes", len(data)).Msg("document downloaded")
	return data, nil
}

// Upload PUTs data to url with the given content type. Any status of 400 or
// above is an error.
func (c *Client) Upload(ctx context.Context, url string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload page: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("upload page: unexpected status %d", resp.StatusCode)
	}

	c.logger.Debug().Int("bytes", len(data)).Msg("page uploaded")
	return nil
}
