package domain_test

import (
	"testing"

	"patriot-buddy/internal/domain"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in     string
		want   domain.Intent
		wantOK bool
	}{
		{"CONVERSATION", domain.IntentConversation, true},
		{"  home_automation\n", domain.IntentHomeAutomation, true},
		{"External_API", domain.IntentExternalData, true},
		{"EXTERNAL_API.", domain.IntentConversation, false},
		{"", domain.IntentConversation, false},
		{"The answer is HOME_AUTOMATION", domain.IntentConversation, false},
	}

	for _, tt := range tests {
		got, ok := domain.ParseIntent(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseIntent(%q): got (%s, %t), want (%s, %t)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := map[string]domain.Category{
		"weather":  domain.CategoryWeather,
		" STOCKS ": domain.CategoryStocks,
		"OTHER":    domain.CategoryOther,
		"news":     domain.CategoryOther,
		"":         domain.CategoryOther,
	}

	for in, want := range tests {
		if got := domain.ParseCategory(in); got != want {
			t.Errorf("ParseCategory(%q): got %s, want %s", in, got, want)
		}
	}
}

func TestParseLightCommand(t *testing.T) {
	tests := map[string]domain.LightCommand{
		"LIGHTS:ON":   domain.LightsOn,
		"lights:off ": domain.LightsOff,
		"UNKNOWN":     domain.LightsUnknown,
		"LIGHTS: ON":  domain.LightsUnknown,
	}

	for in, want := range tests {
		if got := domain.ParseLightCommand(in); got != want {
			t.Errorf("ParseLightCommand(%q): got %s, want %s", in, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Mode
		wantErr bool
	}{
		{"", domain.ModeNormal, false},
		{"none", domain.ModeNormal, false},
		{"CONVERSATION", domain.ModeConversation, false},
		{"home_automation", domain.ModeHomeAutomation, false},
		{"EXTERNAL_API", domain.ModeExternalData, false},
		{"LIGHTS", domain.ModeNormal, true},
	}

	for _, tt := range tests {
		got, err := domain.ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error: got %v, wantErr %t", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMode_Intent(t *testing.T) {
	if _, ok := domain.ModeNormal.Intent(); ok {
		t.Error("normal mode should not force an intent")
	}

	intent, ok := domain.ModeHomeAutomation.Intent()
	if !ok || intent != domain.IntentHomeAutomation {
		t.Errorf("Intent: got (%s, %t), want (HOME_AUTOMATION, true)", intent, ok)
	}

	if got := domain.ModeExternalData.Label(); got != "Weather/Stocks" {
		t.Errorf("Label: got %s, want Weather/Stocks", got)
	}
}
