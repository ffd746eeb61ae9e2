package asset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"job-board/internal/config"
)

// Client is the HTTP implementation of Store.
type Client struct {
	cfg    config.AssetConfig
	client *http.Client
	closed int32
}

type uploadResponse struct {
	PublicID string `json:"public_id"`
}

func NewClient(cfg config.AssetConfig, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if _, err := url.ParseRequestURI(cfg.APIURL); err != nil {
		return nil, fmt.Errorf("invalid asset api url: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.DeliveryURL); err != nil {
		return nil, fmt.Errorf("invalid asset delivery url: %w", err)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.DeliveryURL = strings.TrimRight(cfg.DeliveryURL, "/")
	return &Client{cfg: cfg, client: httpClient}, nil
}

func (c *Client) Upload(ctx context.Context, publicID, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("public_id", publicID); err != nil {
		return "", err
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL+"/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("asset upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("asset upload returned status %d", resp.StatusCode)
	}
	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.PublicID == "" {
		return "", fmt.Errorf("asset upload returned no public_id")
	}
	return out.PublicID, nil
}

func (c *Client) Exists(ctx context.Context, handle string) (bool, error) {
	if handle == "" {
		return false, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIURL+"/resources/"+url.PathEscape(handle), nil)
	if err != nil {
		return false, err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("asset lookup: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	default:
		return false, fmt.Errorf("asset lookup returned status %d", resp.StatusCode)
	}
}

// URL returns the delivery URL of handle. Handles that are already absolute URLs pass through.
func (c *Client) URL(handle string) string {
	if handle == "" || isAbsolute(handle) {
		return handle
	}
	return c.cfg.DeliveryURL + "/" + strings.TrimLeft(handle, "/")
}

// Close releases idle connections of the underlying transport. It is idempotent.
func (c *Client) Close() error {
	if c == nil || !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	c.client.CloseIdleConnections()
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
}

func isAbsolute(handle string) bool {
	return strings.HasPrefix(handle, "http://") || strings.HasPrefix(handle, "https://")
}
