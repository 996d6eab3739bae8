package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patriot-buddy/internal/application"
	"patriot-buddy/internal/domain"
	"patriot-buddy/internal/infra/ifttt"
	"patriot-buddy/internal/infra/openweather"
)

type fakeLights struct {
	err   error
	calls []bool
}

func (f *fakeLights) SetLights(_ context.Context, on bool) error {
	f.calls = append(f.calls, on)
	return f.err
}

func TestConversationHandler(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{"  Hello there, friend!  \n"}}
	h := application.NewConversationHandler(gen, testOptions())

	assert.Equal(t, "Hello there, friend!", h.Handle(context.Background(), "hi"))
	assert.Contains(t, gen.prompts[0], "User: hi")
	assert.Contains(t, gen.prompts[0], "50 words or less")
}

func TestConversationHandler_Failure(t *testing.T) {
	h := application.NewConversationHandler(&scriptedGenerator{err: errUnreachable}, testOptions())

	assert.Equal(t,
		"I'm having trouble connecting to my thinking module. Can you try again?",
		h.Handle(context.Background(), "hi"))
}

func TestHomeAutomationHandler(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		genErr    error
		lightsErr error
		want      string
		wantCalls []bool
	}{
		{"on", "LIGHTS:ON", nil, nil, "I've turned the lights on for you.", []bool{true}},
		{"off", " lights:off ", nil, nil, "I've turned the lights off for you.", []bool{false}},
		{"on fails", "LIGHTS:ON", nil, errors.New("boom"), "I tried to turn the lights on, but there was an error.", []bool{true}},
		{"off fails", "LIGHTS:OFF", nil, errors.New("boom"), "I tried to turn the lights off, but there was an error.", []bool{false}},
		{"unknown", "UNKNOWN", nil, nil, "I can only control lights right now. You can ask me to turn them on or off.", nil},
		{"thermostat", "THERMOSTAT:72", nil, nil, "I can only control lights right now. You can ask me to turn them on or off.", nil},
		{"generation error", "", errUnreachable, nil, "I can only control lights right now. You can ask me to turn them on or off.", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &scriptedGenerator{replies: []string{tt.reply}, err: tt.genErr}
			lights := &fakeLights{err: tt.lightsErr}
			h := application.NewHomeAutomationHandler(gen, lights, testOptions())

			assert.Equal(t, tt.want, h.Handle(context.Background(), "lights"))
			assert.Equal(t, tt.wantCalls, lights.calls)
		})
	}
}

func TestHomeAutomationHandler_Webhook(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusOK, "I've turned the lights on for you."},
		{http.StatusInternalServerError, "I tried to turn the lights on, but there was an error."},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			webhook := ifttt.NewClientWithURL("secret", "PLUGON", "PLUGOFF", server.URL, server.Client())
			gen := &scriptedGenerator{replies: []string{"LIGHTS:ON"}}
			h := application.NewHomeAutomationHandler(gen, webhook, testOptions())

			assert.Equal(t, tt.want, h.Handle(context.Background(), "turn on the lights"))
			assert.Equal(t, "/trigger/PLUGON/with/key/secret", gotPath)
		})
	}
}

func TestExternalDataHandler(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		genErr error
		want   string
	}{
		{"weather", "WEATHER", nil, "weather: forecast"},
		{"stocks", "stocks", nil, "stocks: forecast"},
		{"other", "NEWS", nil, "I don't have access to that type of external data yet."},
		{"error", "", errUnreachable, "I had trouble connecting to external data sources."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weather := &countingHandler{name: "weather"}
			stocks := &countingHandler{name: "stocks"}
			gen := &scriptedGenerator{replies: []string{tt.reply}, err: tt.genErr}
			h := application.NewExternalDataHandler(gen, weather, stocks, testOptions())

			assert.Equal(t, tt.want, h.Handle(context.Background(), "forecast"))
			assert.LessOrEqual(t, weather.count()+stocks.count(), 1)
		})
	}
}

func weatherServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, `{"cod":401,"message":"Invalid API key"}`, status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestWeatherHandler_Disabled(t *testing.T) {
	gen := &scriptedGenerator{}
	apis := staticAPIs{domain.APIWeather: {Enabled: false}}
	h := application.NewWeatherHandler(gen, apis, nil, testOptions())

	for _, text := range []string{"weather in Paris", "", "is it raining?"} {
		assert.Equal(t, "Weather information is currently disabled. You can enable it in settings.", h.Handle(context.Background(), text))
	}
	assert.Zero(t, gen.calls())
}

func TestWeatherHandler_LiveData(t *testing.T) {
	server := weatherServer(t, http.StatusOK, map[string]any{
		"main":    map[string]any{"temp": 72},
		"weather": []map[string]any{{"description": "clear sky"}},
		"name":    "Paris",
		"sys":     map[string]any{"country": "FR"},
	})

	gen := &scriptedGenerator{replies: []string{"Paris"}}
	provider := openweather.NewClientWithURL(server.URL, server.Client())
	h := application.NewWeatherHandler(gen, enabledAPIs(), provider, testOptions())

	assert.Equal(t, "It's currently clear sky and 72°F in Paris, FR.", h.Handle(context.Background(), "weather in Paris"))
}

func TestWeatherHandler_DefaultLocation(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `{"main":{"temp":60.5},"weather":[{"description":"mist"}],"name":"Manassas","sys":{"country":"US"}}`)
	}))
	defer server.Close()

	gen := &scriptedGenerator{replies: []string{"DEFAULT"}}
	provider := openweather.NewClientWithURL(server.URL, server.Client())
	h := application.NewWeatherHandler(gen, enabledAPIs(), provider, testOptions())

	assert.Equal(t, "It's currently mist and 60.5°F in Manassas, US.", h.Handle(context.Background(), "what's the weather"))
	assert.Equal(t, "Manassas,VA,US", gotQuery)
}

var simulatedTemp = regexp.MustCompile(`(\d+)°F`)

func TestWeatherHandler_SimulatedOnNonOK(t *testing.T) {
	server := weatherServer(t, http.StatusUnauthorized, nil)

	for i := 0; i < 20; i++ {
		gen := &scriptedGenerator{replies: []string{"Boston"}}
		provider := openweather.NewClientWithURL(server.URL, server.Client())
		h := application.NewWeatherHandler(gen, enabledAPIs(), provider, testOptions())

		got := h.Handle(context.Background(), "weather in Boston")

		require.True(t, strings.HasPrefix(got, "Could not get real weather data."), got)
		assert.Contains(t, got, "in Boston.")

		m := simulatedTemp.FindStringSubmatch(got)
		require.Len(t, m, 2, got)
		temp, _ := strconv.Atoi(m[1])
		assert.GreaterOrEqual(t, temp, 65)
		assert.LessOrEqual(t, temp, 85)
	}
}

func TestWeatherHandler_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	gen := &scriptedGenerator{replies: []string{"Boston"}}
	provider := openweather.NewClientWithURL(url, nil)
	h := application.NewWeatherHandler(gen, enabledAPIs(), provider, testOptions())

	assert.Equal(t, "I had trouble getting the weather information.", h.Handle(context.Background(), "weather in Boston"))
}

type fixedQuotes struct {
	quote domain.Quote
	err   error
	asked []string
}

func (f *fixedQuotes) Quote(_ context.Context, symbol string) (domain.Quote, error) {
	f.asked = append(f.asked, symbol)
	q := f.quote
	q.Symbol = symbol
	return q, f.err
}

func TestStocksHandler(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		quote domain.Quote
		err   error
		want  string
	}{
		{"up", "AAPL", domain.Quote{Price: 200, Change: 4}, nil, "AAPL is trading at $200, up 2%. Trading volume is moderate today."},
		{"down", "Tesla", domain.Quote{Price: 250.5, Change: -2.55}, nil, "Tesla is trading at $250.5, down 1.02%. Trading volume is moderate today."},
		{"flat", "MSFT", domain.Quote{Price: 100, Change: 0}, nil, "MSFT is trading at $100, down 0%. Trading volume is moderate today."},
		{"source error", "AAPL", domain.Quote{}, errors.New("no quote"), "I had trouble getting the stock information."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &scriptedGenerator{replies: []string{tt.reply}}
			quotes := &fixedQuotes{quote: tt.quote, err: tt.err}
			h := application.NewStocksHandler(gen, enabledAPIs(), quotes, testOptions())

			assert.Equal(t, tt.want, h.Handle(context.Background(), "how is "+tt.reply+" doing"))
		})
	}
}

func TestStocksHandler_Disabled(t *testing.T) {
	apis := staticAPIs{domain.APIStocks: {Enabled: false}}
	h := application.NewStocksHandler(&scriptedGenerator{}, apis, &fixedQuotes{}, testOptions())

	assert.Equal(t, "Stock information is currently disabled. You can enable it in settings.", h.Handle(context.Background(), "AAPL"))
}

func TestStocksHandler_EmptySymbolUsesDefault(t *testing.T) {
	quotes := &fixedQuotes{quote: domain.Quote{Price: 10, Change: 1}}
	h := application.NewStocksHandler(&scriptedGenerator{replies: []string{"  "}}, enabledAPIs(), quotes, testOptions())

	got := h.Handle(context.Background(), "how are stocks")

	assert.Equal(t, []string{"AAPL"}, quotes.asked)
	assert.True(t, strings.HasPrefix(got, "AAPL is trading at $10, up 10%"), got)
}

func TestStocksHandler_ExtractionFailure(t *testing.T) {
	h := application.NewStocksHandler(&scriptedGenerator{err: errUnreachable}, enabledAPIs(), &fixedQuotes{}, testOptions())

	assert.Equal(t, "I had trouble getting the stock information.", h.Handle(context.Background(), "AAPL"))
}
