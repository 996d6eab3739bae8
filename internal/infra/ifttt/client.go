package ifttt

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"patriot-buddy/internal/infra"
)

const (
	DefaultURL      = "https://maker.ifttt.com"
	DefaultOnEvent  = "PLUGON"
	DefaultOffEvent = "PLUGOFF"
)

// Client fires Maker webhook events. Only a 200 counts as success.
type Client struct {
	key        string
	onEvent    string
	offEvent   string
	baseURL    string
	httpClient *http.Client
}

func NewClient(key, onEvent, offEvent string) *Client {
	return NewClientWithURL(key, onEvent, offEvent, DefaultURL, &http.Client{Timeout: 10 * time.Second})
}

func NewClientWithURL(key, onEvent, offEvent, baseURL string, httpClient *http.Client) *Client {
	if onEvent == "" {
		onEvent = DefaultOnEvent
	}
	if offEvent == "" {
		offEvent = DefaultOffEvent
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		key:        key,
		onEvent:    onEvent,
		offEvent:   offEvent,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) SetLights(ctx context.Context, on bool) error {
	event := c.offEvent
	if on {
		event = c.onEvent
	}
	return c.Trigger(ctx, event)
}

// Trigger fires a single named event.
func (c *Client) Trigger(ctx context.Context, event string) error {
	if c.key == "" {
		return fmt.Errorf("webhook key not configured")
	}

	endpoint := fmt.Sprintf("%s/trigger/%s/with/key/%s", c.baseURL, url.PathEscape(event), url.PathEscape(c.key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := infra.CheckStatus(resp, "ifttt"); err != nil {
		return fmt.Errorf("triggering %s: %w", event, err)
	}
	return nil
}
