package domain

import "errors"

// ErrUpstreamStatus marks a provider answer with a non-OK HTTP status.
var ErrUpstreamStatus = errors.New("upstream returned non-OK status")

var ErrUnknownAPI = errors.New("unknown api")

type Weather struct {
	Temp      float64
	Condition string
	City      string
	Country   string
}

type Quote struct {
	Symbol string
	Price  float64
	Change float64
}

// APISettings is one provider entry of the API configuration document.
type APISettings struct {
	Enabled         bool   `json:"enabled"`
	Name            string `json:"name"`
	Provider        string `json:"provider"`
	Key             string `json:"key,omitempty"`
	DefaultLocation string `json:"default_location,omitempty"`
	DefaultSymbol   string `json:"default_symbol,omitempty"`
	Topics          string `json:"topics,omitempty"`
	Teams           string `json:"teams,omitempty"`
	DefaultCoin     string `json:"default_coin,omitempty"`
	Route           string `json:"route,omitempty"`
	CalendarID      string `json:"calendar_id,omitempty"`
	Storage         string `json:"storage,omitempty"`
}

const (
	APIWeather = "weather"
	APIStocks  = "stocks"
)

// APIPatch carries the editable fields of an APISettings entry; nil fields
// are left unchanged.
type APIPatch struct {
	Enabled         *bool   `json:"enabled,omitempty"`
	Key             *string `json:"key,omitempty"`
	DefaultLocation *string `json:"default_location,omitempty"`
	DefaultSymbol   *string `json:"default_symbol,omitempty"`
}

func (p APIPatch) Apply(s APISettings) APISettings {
	if p.Enabled != nil {
		s.Enabled = *p.Enabled
	}
	if p.Key != nil {
		s.Key = *p.Key
	}
	if p.DefaultLocation != nil {
		s.DefaultLocation = *p.DefaultLocation
	}
	if p.DefaultSymbol != nil {
		s.DefaultSymbol = *p.DefaultSymbol
	}
	return s
}
