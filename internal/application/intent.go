package application

import (
	"context"

	"patriot-buddy/internal/domain"
)

// Generator is the text-generation service. Implementations send exactly one
// request and return the full accumulated output.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type IntentClassifier interface {
	Classify(ctx context.Context, text string) domain.Intent
}

// Handler turns an utterance into a response sentence. Handle never fails;
// errors become apology text.
type Handler interface {
	Handle(ctx context.Context, text string) string
}
