package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"patriot-buddy/internal/domain"
)

const (
	msgWeatherDisabled = "Weather information is currently disabled. You can enable it in settings."
	msgWeatherFailed   = "I had trouble getting the weather information."

	// SimulatedWeatherPrefix opens every response built without live data.
	SimulatedWeatherPrefix = "Could not get real weather data."

	simulatedTempMin = 65
	simulatedTempMax = 85
)

var simulatedConditions = []string{"sunny", "partly cloudy", "overcast", "rainy", "clear"}

type WeatherHandler struct {
	caller
	apis     APIConfig
	provider WeatherProvider
	intn     func(n int) int
}

func NewWeatherHandler(gen Generator, apis APIConfig, provider WeatherProvider, opts Options) *WeatherHandler {
	return &WeatherHandler{
		caller:   opts.caller(gen),
		apis:     apis,
		provider: provider,
		intn:     rand.IntN,
	}
}

func (h *WeatherHandler) Handle(ctx context.Context, text string) string {
	settings, ok := h.apis.API(domain.APIWeather)
	if !ok || !settings.Enabled {
		return msgWeatherDisabled
	}

	location, err := h.ask(ctx, locationPrompt(text))
	if err != nil {
		h.fallback("weather_location", err)
		return msgWeatherFailed
	}
	if location == locationMarkerDefault || location == "" {
		location = settings.DefaultLocation
	}

	w, err := h.provider.Current(ctx, location, settings.Key)
	switch {
	case errors.Is(err, domain.ErrUpstreamStatus):
		h.fallback("weather_simulated", err)
		return h.simulated(location)
	case err != nil:
		h.fallback("weather_provider", err)
		return msgWeatherFailed
	}

	return fmt.Sprintf("It's currently %s and %s°F in %s, %s.", w.Condition, formatNumber(w.Temp), w.City, w.Country)
}

func (h *WeatherHandler) simulated(location string) string {
	condition := simulatedConditions[h.intn(len(simulatedConditions))]
	temp := simulatedTempMin + h.intn(simulatedTempMax-simulatedTempMin+1)
	return fmt.Sprintf("%s Simulated forecast: %s and %d°F in %s.", SimulatedWeatherPrefix, condition, temp, location)
}

// formatNumber prints the shortest decimal form: 72 -> "72", 72.5 -> "72.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
