package config

import (
	"strings"
	"testing"
	"time"

	"patriot-buddy/internal/domain"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Generation.Provider != "ollama" {
		t.Errorf("provider = %q, want ollama", cfg.Generation.Provider)
	}
	if cfg.GenerationTimeout() != 30*time.Second {
		t.Errorf("generation timeout = %v, want 30s", cfg.GenerationTimeout())
	}
	if cfg.WeatherTimeout() != 10*time.Second || cfg.LightsTimeout() != 10*time.Second {
		t.Errorf("weather/lights timeout = %v/%v, want 10s", cfg.WeatherTimeout(), cfg.LightsTimeout())
	}
	if cfg.Lights.Backend != "ifttt" {
		t.Errorf("lights backend = %q, want ifttt", cfg.Lights.Backend)
	}
	if cfg.Audio.HTTPAddr != ":8080" || cfg.Audio.SampleRate != 16000 {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.APIsFile != DefaultAPIsFile {
		t.Errorf("apis file = %q", cfg.APIsFile)
	}
	mode, err := cfg.InitialMode()
	if err != nil || mode != domain.ModeNormal {
		t.Errorf("mode = %q, %v", mode, err)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test")
	t.Setenv("TEST_IFTTT_KEY", "maker-key")

	cfg, err := Parse([]byte(`
generation:
  provider: openai
  api_key: ${TEST_OPENAI_KEY}
  timeout: 5s
lights:
  ifttt:
    key: ${TEST_IFTTT_KEY}
mode: HOME_AUTOMATION
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Generation.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.Generation.APIKey)
	}
	if cfg.Lights.IFTTT.Key != "maker-key" {
		t.Errorf("ifttt key = %q", cfg.Lights.IFTTT.Key)
	}
	if cfg.GenerationTimeout() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.GenerationTimeout())
	}
	mode, err := cfg.InitialMode()
	if err != nil || mode != domain.ModeHomeAutomation {
		t.Errorf("mode = %q, %v", mode, err)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"provider", "generation: {provider: llamafile}", "generation provider"},
		{"backend", "lights: {backend: zigbee}", "lights backend"},
		{"mode", "mode: SPORTS", "invalid mode"},
		{"timeout", "weather: {timeout: soon}", "weather.timeout"},
		{"yaml", "generation: [", "parsing config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(t.TempDir() + "/nope.yaml"); err == nil {
		t.Fatal("expected error")
	}
}
