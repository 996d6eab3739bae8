package pushover

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"patriot-buddy/internal/domain"
	"patriot-buddy/internal/infra"
)

const DefaultURL = "https://api.pushover.net/1/messages.json"

// Client pushes each answered exchange to a phone. Delivery is retried on
// transient failures.
type Client struct {
	token      string
	userKey    string
	endpoint   string
	httpClient *http.Client
	retry      infra.RetryConfig
}

func NewClient(token, userKey string) *Client {
	return NewClientWithURL(token, userKey, DefaultURL, &http.Client{Timeout: 10 * time.Second})
}

func NewClientWithURL(token, userKey, endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		token:      token,
		userKey:    userKey,
		endpoint:   endpoint,
		httpClient: httpClient,
		retry:      infra.DefaultRetryConfig(),
	}
}

// WithRetry replaces the delivery retry policy.
func (c *Client) WithRetry(cfg infra.RetryConfig) *Client {
	c.retry = cfg
	return c
}

func (c *Client) Notify(ctx context.Context, ev domain.Event) error {
	if c.token == "" || c.userKey == "" || ev.Kind != domain.EventResponse {
		return nil
	}

	message := ev.Text
	if ev.Exchange != nil {
		message = fmt.Sprintf("%q\n%s", ev.Exchange.Utterance, ev.Text)
	}

	return infra.WithRetry(ctx, c.retry, func() error {
		return c.send(ctx, message)
	})
}

func (c *Client) send(ctx context.Context, message string) error {
	data := url.Values{}
	data.Set("token", c.token)
	data.Set("user", c.userKey)
	data.Set("message", message)
	data.Set("title", "Patriot Buddy")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	defer resp.Body.Close()

	return infra.CheckStatus(resp, "pushover")
}
