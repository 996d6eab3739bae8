package application

import (
	"context"

	"patriot-buddy/internal/domain"
)

const (
	msgNoDataAccess   = "I don't have access to that type of external data yet."
	msgExternalFailed = "I had trouble connecting to external data sources."
)

// ExternalDataHandler picks a data category and delegates to the matching
// sub-handler.
type ExternalDataHandler struct {
	caller
	weather Handler
	stocks  Handler
}

func NewExternalDataHandler(gen Generator, weather, stocks Handler, opts Options) *ExternalDataHandler {
	return &ExternalDataHandler{caller: opts.caller(gen), weather: weather, stocks: stocks}
}

func (h *ExternalDataHandler) Handle(ctx context.Context, text string) string {
	out, err := h.ask(ctx, categoryPrompt(text))
	if err != nil {
		h.fallback("external_data", err)
		return msgExternalFailed
	}

	switch domain.ParseCategory(out) {
	case domain.CategoryWeather:
		return h.weather.Handle(ctx, text)
	case domain.CategoryStocks:
		return h.stocks.Handle(ctx, text)
	default:
		return msgNoDataAccess
	}
}
