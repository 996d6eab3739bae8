package domain

import "strings"

type Intent string

const (
	IntentConversation   Intent = "CONVERSATION"
	IntentHomeAutomation Intent = "HOME_AUTOMATION"
	IntentExternalData   Intent = "EXTERNAL_API"
)

// TextCommandPrefix is the marker used to indicate text commands (vs audio)
const TextCommandPrefix = "__TEXT__:"

// ParseIntent maps a generation-service label to an Intent. Anything outside
// the vocabulary yields IntentConversation and false.
func ParseIntent(s string) (Intent, bool) {
	switch i := Intent(normalizeLabel(s)); i {
	case IntentConversation, IntentHomeAutomation, IntentExternalData:
		return i, true
	}
	return IntentConversation, false
}

func (i Intent) Valid() bool {
	switch i {
	case IntentConversation, IntentHomeAutomation, IntentExternalData:
		return true
	}
	return false
}

type Category string

const (
	CategoryWeather Category = "WEATHER"
	CategoryStocks  Category = "STOCKS"
	CategoryOther   Category = "OTHER"
)

// ParseCategory maps an external-data label to a Category, CategoryOther when
// unrecognized.
func ParseCategory(s string) Category {
	switch c := Category(normalizeLabel(s)); c {
	case CategoryWeather, CategoryStocks:
		return c
	}
	return CategoryOther
}

type LightCommand string

const (
	LightsOn      LightCommand = "LIGHTS:ON"
	LightsOff     LightCommand = "LIGHTS:OFF"
	LightsUnknown LightCommand = "UNKNOWN"
)

func ParseLightCommand(s string) LightCommand {
	switch c := LightCommand(normalizeLabel(s)); c {
	case LightsOn, LightsOff:
		return c
	}
	return LightsUnknown
}

func normalizeLabel(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
