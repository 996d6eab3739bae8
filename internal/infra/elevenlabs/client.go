package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"patriot-buddy/internal/infra"
)

const (
	DefaultURL          = "https://api.elevenlabs.io/v1"
	DefaultModel        = "eleven_multilingual_v2"
	DefaultOutputFormat = "mp3_44100_128"
)

type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{Stability: 0.5, SimilarityBoost: 0.75}
}

// Client converts text to MP3 audio with one voice.
type Client struct {
	apiKey     string
	voiceID    string
	model      string
	format     string
	settings   VoiceSettings
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, voiceID string) *Client {
	return NewClientWithURL(apiKey, voiceID, DefaultURL, &http.Client{Timeout: 10 * time.Second})
}

func NewClientWithURL(apiKey, voiceID, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		apiKey:     apiKey,
		voiceID:    voiceID,
		model:      DefaultModel,
		format:     DefaultOutputFormat,
		settings:   DefaultVoiceSettings(),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type request struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(request{Text: text, ModelID: c.model, VoiceSettings: c.settings})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s?output_format=%s",
		c.baseURL, url.PathEscape(c.voiceID), url.QueryEscape(c.format))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := infra.CheckStatus(resp, "elevenlabs"); err != nil {
		return nil, err
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio from elevenlabs")
	}
	return audio, nil
}
