// Package market provides stock quote sources.
package market

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"

	"patriot-buddy/internal/domain"
)

// Simulated invents quotes: price in [50, 500], change in [-3, 5], both
// rounded to cents. It is not a production data source.
type Simulated struct {
	rnd func() float64
}

func NewSimulated() *Simulated {
	return &Simulated{rnd: rand.Float64}
}

// NewSimulatedWithSource uses r for every draw; r must return values in [0, 1).
func NewSimulatedWithSource(r *rand.Rand) *Simulated {
	return &Simulated{rnd: r.Float64}
}

func (s *Simulated) Quote(_ context.Context, symbol string) (domain.Quote, error) {
	return domain.Quote{
		Symbol: strings.TrimSpace(symbol),
		Price:  round2(uniform(s.rnd(), 50, 500)),
		Change: round2(uniform(s.rnd(), -3, 5)),
	}, nil
}

func uniform(r, lo, hi float64) float64 {
	return lo + r*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
