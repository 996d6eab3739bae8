package application

import (
	"context"

	"patriot-buddy/internal/domain"
)

type WeatherProvider interface {
	// Current returns an error wrapping domain.ErrUpstreamStatus when the
	// provider answered with a non-OK status.
	Current(ctx context.Context, location, apiKey string) (*domain.Weather, error)
}

// QuoteSource supplies stock quotes. The bundled implementation is simulated.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (domain.Quote, error)
}

// APIConfig is the read side of the API configuration store.
type APIConfig interface {
	API(id string) (domain.APISettings, bool)
}
