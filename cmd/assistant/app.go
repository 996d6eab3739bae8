package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"patriot-buddy/config"
	"patriot-buddy/internal/application"
	"patriot-buddy/internal/infra"
	"patriot-buddy/internal/infra/anthropic"
	"patriot-buddy/internal/infra/audio"
	"patriot-buddy/internal/infra/elevenlabs"
	"patriot-buddy/internal/infra/gemini"
	"patriot-buddy/internal/infra/history"
	"patriot-buddy/internal/infra/homeassistant"
	"patriot-buddy/internal/infra/ifttt"
	"patriot-buddy/internal/infra/market"
	"patriot-buddy/internal/infra/metrics"
	"patriot-buddy/internal/infra/ollama"
	"patriot-buddy/internal/infra/openai"
	"patriot-buddy/internal/infra/openweather"
	"patriot-buddy/internal/infra/playback"
	"patriot-buddy/internal/infra/pushover"
	"patriot-buddy/internal/infra/tuya"
	"patriot-buddy/internal/infra/web"
)

const outboundTimeout = 10 * time.Second

var errLightsDisabled = errors.New("no lights backend configured")

// app holds the wired pipeline. Servers and loops start in Serve.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	mode    *application.ModeState
	apis    *config.APIStore
	history *history.Store
	worker  *application.Worker
	metrics *metrics.Recorder
	control *audio.HTTPSource
	hub     *web.Hub
	speaker *playback.Speaker
	notify  application.Notifiers
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	initial, err := cfg.InitialMode()
	if err != nil {
		return nil, err
	}

	apis, err := config.LoadAPIs(cfg.APIsFile, os.Getenv("OPENWEATHER_API_KEY"))
	if err != nil {
		return nil, fmt.Errorf("loading api config: %w", err)
	}

	store, err := history.Open(ctx, cfg.History.Path)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(reg)

	a := &app{
		cfg:     cfg,
		logger:  logger,
		mode:    application.NewModeState(initial),
		apis:    apis,
		history: store,
		metrics: recorder,
	}

	gen, err := a.newGenerator()
	if err != nil {
		store.Close()
		return nil, err
	}
	lights, err := a.newLights()
	if err != nil {
		store.Close()
		return nil, err
	}
	weatherHTTP, err := a.httpClient(cfg.WeatherTimeout())
	if err != nil {
		store.Close()
		return nil, err
	}

	opts := application.Options{
		Timeout: cfg.GenerationTimeout(),
		Logger:  logger,
		Metrics: recorder,
	}
	router := application.NewRouter(
		application.NewClassifier(gen, opts),
		application.NewConversationHandler(gen, opts),
		application.NewHomeAutomationHandler(gen, lights, opts),
		application.NewExternalDataHandler(gen,
			application.NewWeatherHandler(gen, apis, a.newWeather(weatherHTTP), opts),
			application.NewStocksHandler(gen, apis, market.NewSimulated(), opts),
			opts,
		),
		a.mode,
		logger,
	)
	a.worker = application.NewWorker(router, store, recorder, logger, cfg.QueueSize)

	if err := a.wireOutputs(); err != nil {
		store.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) httpClient(timeout time.Duration) (*http.Client, error) {
	return infra.NewHTTPClient(timeout, a.cfg.Proxy.SOCKS5)
}

func (a *app) newGenerator() (application.Generator, error) {
	g := a.cfg.Generation
	// The per-call deadline comes from the handlers; the client timeout only
	// guards against a stuck connection.
	hc, err := a.httpClient(a.cfg.GenerationTimeout() + outboundTimeout)
	if err != nil {
		return nil, err
	}

	switch g.Provider {
	case "openai":
		return openai.NewChatClientWithURL(g.APIKey, g.Model, g.URL, hc), nil
	case "anthropic":
		return anthropic.NewClaudeClientWithURL(g.APIKey, g.Model, orDefault(g.URL, anthropic.DefaultURL), hc), nil
	case "gemini":
		return gemini.NewClientWithURL(g.APIKey, g.Model, orDefault(g.URL, gemini.DefaultURL), hc), nil
	default:
		return ollama.NewClientWithURL(orDefault(g.URL, ollama.DefaultURL), g.Model, hc, a.logger), nil
	}
}

func (a *app) newLights() (application.LightSwitch, error) {
	l := a.cfg.Lights
	hc, err := a.httpClient(a.cfg.LightsTimeout())
	if err != nil {
		return nil, err
	}

	switch l.Backend {
	case "homeassistant":
		return homeassistant.NewClientWithHTTP(l.HomeAssistant.URL, l.HomeAssistant.Token, l.HomeAssistant.EntityID, hc), nil
	case "tuya":
		c := tuya.NewClientWithURL(l.Tuya.ClientID, l.Tuya.Secret, l.Tuya.DeviceID, tuya.RegionURL(l.Tuya.Region), hc)
		if l.Tuya.SwitchCode != "" {
			c = c.WithSwitchCode(l.Tuya.SwitchCode)
		}
		return c, nil
	case "none":
		return disabledLights{}, nil
	default:
		return ifttt.NewClientWithURL(l.IFTTT.Key, l.IFTTT.OnEvent, l.IFTTT.OffEvent, ifttt.DefaultURL, hc), nil
	}
}

func (a *app) newWeather(hc *http.Client) *openweather.Client {
	return openweather.NewClientWithURL(orDefault(a.cfg.Weather.URL, openweather.DefaultURL), hc)
}

// wireOutputs builds the control server and every event sink.
func (a *app) wireOutputs() error {
	cfg := a.cfg

	a.control = audio.NewHTTPSource(cfg.Audio.HTTPAddr, cfg.Audio.AuthToken, a.logger)
	a.hub = web.NewHub(a.logger)
	a.notify = append(a.notify, a.hub)

	if cfg.TTS.Enabled {
		if err := a.wireSpeech(); err != nil {
			a.logger.Warn("speech output disabled", "error", err)
		}
	}

	if cfg.Pushover.Enabled {
		hc, err := a.httpClient(outboundTimeout)
		if err != nil {
			return err
		}
		a.notify = append(a.notify, pushover.NewClientWithURL(cfg.Pushover.Token, cfg.Pushover.UserKey, pushover.DefaultURL, hc))
	}

	a.control.Mount("GET /events", a.hub)
	a.control.Mount("GET /metrics", a.metrics.Handler())
	web.NewHandler(a.worker, a.mode, a.apis, a.history, a.notify, a.logger).
		Register(a.control, a.control.RateLimiter().Middleware)
	return nil
}

func (a *app) wireSpeech() error {
	if a.cfg.TTS.APIKey == "" || a.cfg.TTS.VoiceID == "" {
		return errors.New("tts.api_key and tts.voice_id are required")
	}
	player, err := playback.NewDevicePlayer()
	if err != nil {
		return err
	}
	hc, err := a.httpClient(outboundTimeout)
	if err != nil {
		return err
	}
	tts := elevenlabs.NewClientWithURL(a.cfg.TTS.APIKey, a.cfg.TTS.VoiceID, elevenlabs.DefaultURL, hc)
	a.speaker = playback.NewSpeaker(tts, player, a.logger)
	a.notify = append(a.notify, a.speaker)
	return nil
}

func (a *app) newCapture() (application.AudioSource, application.SpeechToText, error) {
	cfg := a.cfg

	var stt application.SpeechToText = &application.NoopSTT{}
	if cfg.STT.APIKey != "" {
		hc, err := a.httpClient(30 * time.Second)
		if err != nil {
			return nil, nil, err
		}
		stt = openai.NewWhisperClientWithURL(cfg.STT.APIKey, cfg.STT.Language, openai.DefaultURL, hc)
	}

	switch cfg.Audio.Source {
	case "file":
		return audio.NewFileSource(cfg.Audio.FileDir), stt, nil
	case "microphone":
		return audio.NewMicrophoneSource(cfg.Audio.SampleRate, a.logger), stt, nil
	case "http":
		return a.control, stt, nil
	default:
		a.logger.Warn("unknown audio source, using http", "source", cfg.Audio.Source)
		return a.control, stt, nil
	}
}

// Serve runs the worker, the capture loop, speech output and the control
// server until ctx is canceled or one of them fails.
func (a *app) Serve(ctx context.Context) error {
	source, stt, err := a.newCapture()
	if err != nil {
		return err
	}
	assistant := application.NewAssistant(source, stt, a.worker, a.notify, a.logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.worker.Run(ctx) })
	g.Go(func() error { return assistant.Run(ctx) })

	if a.speaker != nil {
		g.Go(func() error { return a.speaker.Run(ctx) })
	}

	// The HTTP source starts itself when it is the capture source.
	if source != a.control {
		g.Go(func() error {
			if err := a.control.Start(ctx); err != nil {
				return fmt.Errorf("starting control server: %w", err)
			}
			<-ctx.Done()
			return a.control.Stop()
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		a.hub.Close()
		return nil
	})

	return g.Wait()
}

func (a *app) Close() {
	if err := a.history.Close(); err != nil {
		a.logger.Error("closing history", "error", err)
	}
}

type disabledLights struct{}

func (disabledLights) SetLights(context.Context, bool) error { return errLightsDisabled }

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
