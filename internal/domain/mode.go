package domain

import (
	"fmt"
	"strings"
)

// Mode is the user-selected override. ModeNormal means every utterance is
// classified; any other value forces its intent.
type Mode string

const (
	ModeNormal         Mode = ""
	ModeConversation   Mode = Mode(IntentConversation)
	ModeHomeAutomation Mode = Mode(IntentHomeAutomation)
	ModeExternalData   Mode = Mode(IntentExternalData)
)

func ModeFor(i Intent) Mode {
	return Mode(i)
}

func ParseMode(s string) (Mode, error) {
	switch v := strings.ToUpper(strings.TrimSpace(s)); v {
	case "", "NONE", "NORMAL", "AUTO":
		return ModeNormal, nil
	default:
		if i, ok := ParseIntent(v); ok {
			return ModeFor(i), nil
		}
		return ModeNormal, fmt.Errorf("unknown mode %q", s)
	}
}

// Intent returns the forced intent, false when the mode is normal.
func (m Mode) Intent() (Intent, bool) {
	if m == ModeNormal {
		return "", false
	}
	return ParseIntent(string(m))
}

func (m Mode) Label() string {
	switch m {
	case ModeConversation:
		return "Chat"
	case ModeHomeAutomation:
		return "Lights"
	case ModeExternalData:
		return "Weather/Stocks"
	default:
		return "Normal"
	}
}

func (m Mode) Status() string {
	return fmt.Sprintf("Mode set to %s. Click Patriot Buddy to speak.", m.Label())
}
