package market_test

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"patriot-buddy/internal/infra/market"
)

func TestSimulated_Ranges(t *testing.T) {
	src := market.NewSimulatedWithSource(rand.New(rand.NewPCG(1, 2)))

	for i := 0; i < 500; i++ {
		q, err := src.Quote(context.Background(), " TSLA ")
		if err != nil {
			t.Fatalf("Quote error: %v", err)
		}
		if q.Symbol != "TSLA" {
			t.Fatalf("symbol: got %q", q.Symbol)
		}
		if q.Price < 50 || q.Price > 500 {
			t.Fatalf("price out of range: %v", q.Price)
		}
		if q.Change < -3 || q.Change > 5 {
			t.Fatalf("change out of range: %v", q.Change)
		}
		if math.Abs(q.Price*100-math.Round(q.Price*100)) > 1e-6 {
			t.Fatalf("price not rounded to cents: %v", q.Price)
		}
	}
}
