package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"patriot-buddy/internal/domain"
	"patriot-buddy/internal/infra"
)

const DefaultURL = "https://api.openweathermap.org/data/2.5/weather"

// Client reads current conditions in imperial units.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return NewClientWithURL(DefaultURL, httpClient)
}

func NewClientWithURL(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

type response struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// Current returns a *infra.StatusError (matching domain.ErrUpstreamStatus)
// when the service answers with anything but 200.
func (c *Client) Current(ctx context.Context, location, apiKey string) (*domain.Weather, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", apiKey)
	q.Set("units", "imperial")

	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+sep+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := infra.CheckStatus(resp, "openweather"); err != nil {
		return nil, err
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Weather) == 0 {
		return nil, fmt.Errorf("no conditions for %q", location)
	}

	return &domain.Weather{
		Temp:      result.Main.Temp,
		Condition: result.Weather[0].Description,
		City:      result.Name,
		Country:   result.Sys.Country,
	}, nil
}
