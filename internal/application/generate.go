package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// DefaultGenerationTimeout bounds a single generation call when no timeout
// is configured.
const DefaultGenerationTimeout = 30 * time.Second

// caller is shared by the classifier and every handler: one generation
// request under a deadline, plus fallback bookkeeping.
type caller struct {
	gen     Generator
	timeout time.Duration
	logger  *slog.Logger
	metrics Metrics
}

func newCaller(gen Generator, timeout time.Duration, logger *slog.Logger, metrics Metrics) caller {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return caller{gen: gen, timeout: timeout, logger: logger, metrics: metrics}
}

func (c caller) ask(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (c caller) fallback(site string, err error) {
	c.metrics.ObserveFallback(site)
	if err != nil {
		c.logger.Warn("falling back", "site", site, "error", err)
		return
	}
	c.logger.Info("falling back", "site", site)
}

// Options carries the dependencies shared by every generation-backed
// component.
type Options struct {
	Timeout time.Duration
	Logger  *slog.Logger
	Metrics Metrics
}

func (o Options) caller(gen Generator) caller {
	return newCaller(gen, o.Timeout, o.Logger, o.Metrics)
}
