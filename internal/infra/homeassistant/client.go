package homeassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"patriot-buddy/internal/infra"
)

// Client switches one light entity through the Home Assistant REST API.
type Client struct {
	baseURL    string
	token      string
	entityID   string
	httpClient *http.Client
}

func NewClient(baseURL, token, entityID string) *Client {
	return NewClientWithHTTP(baseURL, token, entityID, &http.Client{Timeout: 10 * time.Second})
}

func NewClientWithHTTP(baseURL, token, entityID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		entityID:   entityID,
		httpClient: httpClient,
	}
}

// Entity is the subset of a state object the client reads back.
type Entity struct {
	EntityID string `json:"entity_id"`
	State    string `json:"state"`
}

func (c *Client) SetLights(ctx context.Context, on bool) error {
	service := "turn_off"
	if on {
		service = "turn_on"
	}

	body, err := json.Marshal(map[string]string{"entity_id": c.entityID})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	path := fmt.Sprintf("/api/services/%s/%s", entityDomain(c.entityID), service)
	if err := c.doRequest(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("calling %s: %w", service, err)
	}
	return nil
}

// State reads the current state of the configured entity.
func (c *Client) State(ctx context.Context) (Entity, error) {
	var e Entity
	if err := c.doRequest(ctx, http.MethodGet, "/api/states/"+c.entityID, nil, &e); err != nil {
		return Entity{}, fmt.Errorf("fetching state: %w", err)
	}
	return e, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := infra.CheckStatus(resp, "home assistant"); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// entityDomain maps "switch.porch" to "switch"; bare ids are lights.
func entityDomain(entityID string) string {
	if parts := strings.SplitN(entityID, ".", 2); len(parts) == 2 && parts[0] != "" {
		return parts[0]
	}
	return "light"
}
