package tuya

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"patriot-buddy/internal/infra"
)

// Client drives a single light device through the Tuya cloud API.
type Client struct {
	clientID   string
	secret     string
	deviceID   string
	switchCode string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time

	mu       sync.RWMutex
	token    string
	expireAt time.Time
}

const DefaultSwitchCode = "switch_led"

func NewClient(clientID, secret, region, deviceID string) *Client {
	return NewClientWithURL(clientID, secret, deviceID, RegionURL(region), &http.Client{Timeout: 10 * time.Second})
}

// RegionURL maps a Tuya data center to its OpenAPI host; unknown regions use us.
func RegionURL(region string) string {
	switch strings.ToLower(region) {
	case "eu":
		return "https://openapi.tuyaeu.com"
	case "cn":
		return "https://openapi.tuyacn.com"
	case "in":
		return "https://openapi.tuyain.com"
	default:
		return "https://openapi.tuyaus.com"
	}
}

func NewClientWithURL(clientID, secret, deviceID, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		clientID:   clientID,
		secret:     secret,
		deviceID:   deviceID,
		switchCode: DefaultSwitchCode,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		now:        time.Now,
	}
}

// WithSwitchCode overrides the data point used for on/off, e.g. "switch_1"
// for plugs.
func (c *Client) WithSwitchCode(code string) *Client {
	if code != "" {
		c.switchCode = code
	}
	return c
}

// SetLights switches the configured device with its switch code.
func (c *Client) SetLights(ctx context.Context, on bool) error {
	body, err := json.Marshal(map[string]any{
		"commands": []map[string]any{{"code": c.switchCode, "value": on}},
	})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	path := fmt.Sprintf("/v1.0/iot-03/devices/%s/commands", c.deviceID)
	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return fmt.Errorf("sending command: %w", err)
	}

	var result struct {
		Success bool   `json:"success"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("tuya error: %s", result.Msg)
	}

	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	timestamp := fmt.Sprintf("%d", c.now().UnixMilli())

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	req.Header.Set("client_id", c.clientID)
	req.Header.Set("access_token", token)
	req.Header.Set("sign", c.calcSign(timestamp, token, method, path, body))
	req.Header.Set("t", timestamp)
	req.Header.Set("sign_method", "HMAC-SHA256")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := infra.CheckStatus(resp, "tuya"); err != nil {
		return nil, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return respBody, nil
}

func (c *Client) ensureToken(ctx context.Context) error {
	c.mu.RLock()
	if c.token != "" && c.now().Add(5*time.Minute).Before(c.expireAt) {
		c.mu.RUnlock()
		return nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Add(5*time.Minute).Before(c.expireAt) {
		return nil
	}

	timestamp := fmt.Sprintf("%d", c.now().UnixMilli())
	path := "/v1.0/token?grant_type=1"
	sign := c.calcSign(timestamp, "", http.MethodGet, path, nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("client_id", c.clientID)
	req.Header.Set("sign", sign)
	req.Header.Set("t", timestamp)
	req.Header.Set("sign_method", "HMAC-SHA256")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading token response: %w", err)
	}

	var tokenResp struct {
		Success bool   `json:"success"`
		Msg     string `json:"msg"`
		Result  struct {
			AccessToken string `json:"access_token"`
			ExpireTime  int64  `json:"expire_time"`
		} `json:"result"`
	}

	if err = json.Unmarshal(body, &tokenResp); err != nil {
		return fmt.Errorf("parsing token response: %w", err)
	}

	if !tokenResp.Success {
		return fmt.Errorf("token error: %s", tokenResp.Msg)
	}

	c.token = tokenResp.Result.AccessToken
	c.expireAt = c.now().Add(time.Duration(tokenResp.Result.ExpireTime) * time.Second)

	return nil
}

func (c *Client) calcSign(timestamp, token, method, path string, body []byte) string {
	str := c.clientID + token + timestamp + c.stringToSign(method, path, body)
	h := hmac.New(sha256.New, []byte(c.secret))
	h.Write([]byte(str))
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil)))
}

func (c *Client) stringToSign(method, path string, body []byte) string {
	bodyHash := sha256.Sum256(body)
	return method + "\n" + hex.EncodeToString(bodyHash[:]) + "\n\n" + path
}
