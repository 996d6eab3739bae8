package application

import (
	"context"
	"time"

	"patriot-buddy/internal/domain"
)

type History interface {
	Record(ctx context.Context, ex domain.Exchange) error
}

type NoopHistory struct{}

func (NoopHistory) Record(_ context.Context, _ domain.Exchange) error { return nil }

type Metrics interface {
	ObserveRoute(intent domain.Intent, overridden bool, elapsed time.Duration)
	ObserveFallback(site string)
}

type NoopMetrics struct{}

func (NoopMetrics) ObserveRoute(_ domain.Intent, _ bool, _ time.Duration) {}
func (NoopMetrics) ObserveFallback(_ string)                            {}
