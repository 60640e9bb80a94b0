package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pders01/vidsrch/internal/config"
)

const (
	VideosPath   = "/api/videos"
	DownloadPath = "/api/download-video"

	defaultTimeout = 30 * time.Second
)

// Client talks to the listing and download endpoints of the video service.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Server.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.Server.BaseURL, "/"),
		userAgent: cfg.Server.UserAgent,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the service root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListVideos issues GET /api/videos?<rawQuery>. The response array order is preserved.
func (c *Client) ListVideos(ctx context.Context, rawQuery string) ([]Video, error) {
	endpoint := c.baseURL + VideosPath
	if rawQuery != "" {
		endpoint += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.setUserAgent(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var videos []Video
	if err := json.NewDecoder(resp.Body).Decode(&videos); err != nil {
		return nil, fmt.Errorf("decoding videos: %w", err)
	}
	if videos == nil {
		videos = []Video{}
	}
	return videos, nil
}

// DownloadVideo asks the service to download an external video by URL.
// The response body is ignored.
func (c *Client) DownloadVideo(ctx context.Context, id string) error {
	body, err := json.Marshal(DownloadRequest{ID: id, External: true})
	if err != nil {
		return fmt.Errorf("encoding download request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+DownloadPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setUserAgent(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("starting download: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return checkStatus(resp)
}

func (c *Client) setUserAgent(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}
	return nil
}
