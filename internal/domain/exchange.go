package domain

import (
	"errors"
	"time"
)

// ErrQueueFull is returned when the pipeline cannot accept more work.
var ErrQueueFull = errors.New("request queue full")

// Exchange is one utterance and the response produced for it.
type Exchange struct {
	ID         string        `json:"id"`
	Utterance  string        `json:"utterance"`
	Intent     Intent        `json:"intent"`
	Overridden bool          `json:"overridden"`
	Response   string        `json:"response"`
	Duration   time.Duration `json:"duration_ns"`
	CreatedAt  time.Time     `json:"created_at"`
}

type EventKind string

const (
	EventUserInput EventKind = "user_input"
	EventResponse  EventKind = "response"
	EventError     EventKind = "error"
	EventMode      EventKind = "mode"
)

// Event is what the pipeline hands to presentation and speech sinks.
type Event struct {
	Kind     EventKind `json:"kind"`
	Text     string    `json:"text"`
	Exchange *Exchange `json:"exchange,omitempty"`
}
