package application

import (
	"context"
	"fmt"
	"math"

	"patriot-buddy/internal/domain"
)

const (
	msgStocksDisabled = "Stock information is currently disabled. You can enable it in settings."
	msgStocksFailed   = "I had trouble getting the stock information."
)

type StocksHandler struct {
	caller
	apis   APIConfig
	quotes QuoteSource
}

func NewStocksHandler(gen Generator, apis APIConfig, quotes QuoteSource, opts Options) *StocksHandler {
	return &StocksHandler{caller: opts.caller(gen), apis: apis, quotes: quotes}
}

func (h *StocksHandler) Handle(ctx context.Context, text string) string {
	settings, ok := h.apis.API(domain.APIStocks)
	if !ok || !settings.Enabled {
		return msgStocksDisabled
	}

	stock, err := h.ask(ctx, symbolPrompt(text))
	if err != nil {
		h.fallback("stocks_symbol", err)
		return msgStocksFailed
	}
	if stock == "" {
		stock = settings.DefaultSymbol
	}

	q, err := h.quotes.Quote(ctx, stock)
	if err == nil && q.Price <= 0 {
		err = fmt.Errorf("invalid price %v for %s", q.Price, stock)
	}
	if err != nil {
		h.fallback("stocks_quote", err)
		return msgStocksFailed
	}

	return formatQuote(stock, q)
}

func formatQuote(stock string, q domain.Quote) string {
	percent := round2(q.Change / q.Price * 100)
	direction := "down"
	if q.Change > 0 {
		direction = "up"
	}
	return fmt.Sprintf("%s is trading at $%s, %s %s%%. Trading volume is moderate today.",
		stock, formatNumber(q.Price), direction, formatNumber(math.Abs(percent)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
