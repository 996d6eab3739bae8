package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"patriot-buddy/internal/infra"
)

const (
	DefaultURL   = "http://localhost:11434"
	DefaultModel = "mistral"
)

// Client streams completions from a local Ollama server. Each Generate is
// a single attempt; a breaker short-circuits calls while the server is down.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(model string, logger *slog.Logger) *Client {
	return NewClientWithURL(DefaultURL, model, &http.Client{Timeout: 60 * time.Second}, logger)
}

func NewClientWithURL(baseURL, model string, httpClient *http.Client, logger *slog.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "ollama",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     15 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				if logger != nil {
					logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
				}
			},
		}),
	}
}

type request struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type chunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}

// Generate returns the concatenated response fragments of one streamed
// completion.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.generate(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(request{Model: c.model, Prompt: prompt, Stream: true})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := infra.CheckStatus(resp, "ollama"); err != nil {
		return "", err
	}

	var sb strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var ch chunk
		if err := json.Unmarshal(line, &ch); err != nil {
			return "", fmt.Errorf("decoding stream chunk: %w", err)
		}
		if ch.Error != "" {
			return "", fmt.Errorf("ollama: %s", ch.Error)
		}
		sb.WriteString(ch.Response)
		if ch.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading stream: %w", err)
	}

	return sb.String(), nil
}
