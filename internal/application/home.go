package application

import (
	"context"

	"patriot-buddy/internal/domain"
)

const (
	msgLightsOn       = "I've turned the lights on for you."
	msgLightsOnError  = "I tried to turn the lights on, but there was an error."
	msgLightsOff      = "I've turned the lights off for you."
	msgLightsOffError = "I tried to turn the lights off, but there was an error."
	msgLightsOnly     = "I can only control lights right now. You can ask me to turn them on or off."
)

type HomeAutomationHandler struct {
	caller
	lights LightSwitch
}

func NewHomeAutomationHandler(gen Generator, lights LightSwitch, opts Options) *HomeAutomationHandler {
	return &HomeAutomationHandler{caller: opts.caller(gen), lights: lights}
}

func (h *HomeAutomationHandler) Handle(ctx context.Context, text string) string {
	out, err := h.ask(ctx, lightsPrompt(text))
	if err != nil {
		h.fallback("home_automation", err)
		return msgLightsOnly
	}

	switch domain.ParseLightCommand(out) {
	case domain.LightsOn:
		if err := h.lights.SetLights(ctx, true); err != nil {
			h.fallback("lights_on", err)
			return msgLightsOnError
		}
		return msgLightsOn
	case domain.LightsOff:
		if err := h.lights.SetLights(ctx, false); err != nil {
			h.fallback("lights_off", err)
			return msgLightsOffError
		}
		return msgLightsOff
	default:
		h.logger.Info("unsupported home automation request", "label", out)
		return msgLightsOnly
	}
}
