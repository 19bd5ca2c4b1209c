package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/samandr77/microservices/reports/pkg/config"
	"github.com/samandr77/microservices/reports/pkg/transport"
)

// Client downloads attachment payloads kept outside the database, such as
// files on S3 referenced by URL.
type Client struct {
	httpClient *http.Client
}

func NewClient(cfg config.Storage) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryAttempts
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.HTTPClient.Transport = transport.NewLoggingRoundTripper(retryClient.HTTPClient.Transport)
	retryClient.Logger = nil

	return &Client{
		httpClient: retryClient.StandardClient(),
	}
}

func (c *Client) DownloadDocument(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return body, nil
}
