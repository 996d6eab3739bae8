package application

import (
	"sync/atomic"

	"patriot-buddy/internal/domain"
)

// ModeState holds the process-wide override. Writes come from the mode
// control; every route reads the latest value.
type ModeState struct {
	v atomic.Value
}

func NewModeState(initial domain.Mode) *ModeState {
	s := &ModeState{}
	s.v.Store(initial)
	return s
}

func (s *ModeState) Get() domain.Mode {
	m, _ := s.v.Load().(domain.Mode)
	return m
}

func (s *ModeState) Set(m domain.Mode) {
	s.v.Store(m)
}
