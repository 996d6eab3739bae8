package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"patriot-buddy/internal/domain"
)

const (
	msgNotUnderstood = "I couldn't understand that. Please try again."
	msgNoSpeech      = "No speech detected"
)

// Submitter hands an utterance to the routing pipeline.
type Submitter interface {
	Submit(ctx context.Context, text string) (*Task, error)
}

// Assistant is the capture side: it pulls utterances from the audio source,
// transcribes them, waits for the pipeline's answer and publishes events.
type Assistant struct {
	audio    AudioSource
	stt      SpeechToText
	pipeline Submitter
	notifier Notifier
	logger   *slog.Logger
}

func NewAssistant(
	audio AudioSource,
	stt SpeechToText,
	pipeline Submitter,
	notifier Notifier,
	logger *slog.Logger,
) *Assistant {
	return &Assistant{
		audio:    audio,
		stt:      stt,
		pipeline: pipeline,
		notifier: notifier,
		logger:   logger,
	}
}

func (a *Assistant) Run(ctx context.Context) error {
	a.logger.Info("starting audio source", "source", a.audio.Name())
	if err := a.audio.Start(ctx); err != nil {
		return fmt.Errorf("starting audio: %w", err)
	}
	defer a.audio.Stop()

	a.logger.Info("assistant ready, listening for commands")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := a.processOneCommand(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				a.logger.Error("processing command", "error", err)
			}
		}
	}
}

func (a *Assistant) processOneCommand(ctx context.Context) error {
	audioData, err := a.audio.NextCommand(ctx)
	if err != nil {
		return fmt.Errorf("getting audio: %w", err)
	}

	if len(audioData) == 0 {
		return nil
	}

	var text string

	if directText, isText := isTextCommand(audioData); isText {
		a.logger.Info("received text command directly", "text", directText)
		text = directText
	} else {
		a.logger.Info("received audio", "bytes", len(audioData))

		text, err = a.stt.Transcribe(ctx, audioData)
		if err != nil {
			a.publish(ctx, domain.Event{Kind: domain.EventError, Text: msgNotUnderstood})
			return fmt.Errorf("transcribing: %w", err)
		}

		a.logger.Info("transcribed", "text", text)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		a.publish(ctx, domain.Event{Kind: domain.EventError, Text: msgNoSpeech})
		return nil
	}

	a.publish(ctx, domain.Event{Kind: domain.EventUserInput, Text: text})

	task, err := a.pipeline.Submit(ctx, text)
	if err != nil {
		return fmt.Errorf("submitting: %w", err)
	}

	ex, err := task.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for response: %w", err)
	}

	a.logger.Info("responded",
		"intent", ex.Intent,
		"overridden", ex.Overridden,
		"duration", ex.Duration,
	)

	a.publish(ctx, domain.Event{Kind: domain.EventResponse, Text: ex.Response, Exchange: &ex})
	return nil
}

func (a *Assistant) publish(ctx context.Context, ev domain.Event) {
	if err := a.notifier.Notify(ctx, ev); err != nil {
		a.logger.Error("notifying", "kind", ev.Kind, "error", err)
	}
}

func isTextCommand(data []byte) (string, bool) {
	if len(data) > len(domain.TextCommandPrefix) && string(data[:len(domain.TextCommandPrefix)]) == domain.TextCommandPrefix {
		return string(data[len(domain.TextCommandPrefix):]), true
	}
	return "", false
}
