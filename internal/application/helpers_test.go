package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"patriot-buddy/internal/application"
	"patriot-buddy/internal/domain"
)

var errUnreachable = errors.New("dial tcp 127.0.0.1:11434: connect: connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions() application.Options {
	return application.Options{Logger: discardLogger()}
}

// scriptedGenerator answers each call with the next scripted reply.
type scriptedGenerator struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	out := g.replies[0]
	g.replies = g.replies[1:]
	return out, nil
}

func (g *scriptedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type staticAPIs map[string]domain.APISettings

func (s staticAPIs) API(id string) (domain.APISettings, bool) {
	a, ok := s[id]
	return a, ok
}

func enabledAPIs() staticAPIs {
	return staticAPIs{
		domain.APIWeather: {Enabled: true, Key: "weather-key", DefaultLocation: "Manassas,VA,US"},
		domain.APIStocks:  {Enabled: true, DefaultSymbol: "AAPL"},
	}
}

type countingHandler struct {
	name  string
	mu    sync.Mutex
	calls int
}

func (h *countingHandler) Handle(_ context.Context, text string) string {
	h.mu.Lock()
	h.calls++
	h.mu.Unlock()
	return h.name + ": " + text
}

func (h *countingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

type fixedClassifier struct {
	intent domain.Intent
	mu     sync.Mutex
	calls  int
}

func (c *fixedClassifier) Classify(_ context.Context, _ string) domain.Intent {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.intent
}

func (c *fixedClassifier) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
