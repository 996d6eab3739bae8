// Package playback speaks responses aloud.
package playback

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"patriot-buddy/internal/domain"
)

// ErrUnavailable is returned by players compiled without audio output.
var ErrUnavailable = errors.New("audio output not available: rebuild with -tags speaker")

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type Player interface {
	Play(ctx context.Context, mp3 []byte) error
}

// Speaker is a notifier that voices response events on its own goroutine.
// Synthesis or playback failures are logged and never reach the user.
type Speaker struct {
	tts     Synthesizer
	player  Player
	logger  *slog.Logger
	timeout time.Duration
	queue   chan string
}

func NewSpeaker(tts Synthesizer, player Player, logger *slog.Logger) *Speaker {
	return &Speaker{
		tts:     tts,
		player:  player,
		logger:  logger,
		timeout: 10 * time.Second,
		queue:   make(chan string, 8),
	}
}

func (s *Speaker) Notify(_ context.Context, ev domain.Event) error {
	if ev.Kind != domain.EventResponse || ev.Text == "" {
		return nil
	}
	select {
	case s.queue <- ev.Text:
	default:
		s.logger.Warn("speech queue full, dropping response")
	}
	return nil
}

func (s *Speaker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case text := <-s.queue:
			s.speak(ctx, text)
		}
	}
}

func (s *Speaker) speak(ctx context.Context, text string) {
	synthCtx, cancel := context.WithTimeout(ctx, s.timeout)
	audio, err := s.tts.Synthesize(synthCtx, text)
	cancel()
	if err != nil {
		s.logger.Error("text-to-speech", "error", err)
		return
	}

	if err := s.player.Play(ctx, audio); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("playing speech", "error", err)
	}
}
