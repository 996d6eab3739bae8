package openai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultURL       = "https://api.openai.com/v1"
	DefaultChatModel = "gpt-4o-mini"
)

// ChatClient generates text with a single chat completion.
type ChatClient struct {
	client openai.Client
	model  string
}

func NewChatClient(apiKey, model string, httpClient *http.Client) *ChatClient {
	return NewChatClientWithURL(apiKey, model, "", httpClient)
}

// NewChatClientWithURL points the client at an OpenAI-compatible endpoint.
// The SDK's own retries are disabled.
func NewChatClientWithURL(apiKey, model, baseURL string, httpClient *http.Client) *ChatClient {
	if model == "" {
		model = DefaultChatModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &ChatClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (c *ChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(c.model),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty message content")
	}
	return content, nil
}
