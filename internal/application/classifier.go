package application

import (
	"context"

	"patriot-buddy/internal/domain"
)

// Classifier asks the generation service for an intent label. It fails
// closed: anything other than a clean label means conversation.
type Classifier struct {
	caller
}

func NewClassifier(gen Generator, opts Options) *Classifier {
	return &Classifier{caller: opts.caller(gen)}
}

func (c *Classifier) Classify(ctx context.Context, text string) domain.Intent {
	out, err := c.ask(ctx, classifyPrompt(text))
	if err != nil {
		c.fallback("classifier", err)
		return domain.IntentConversation
	}

	intent, ok := domain.ParseIntent(out)
	if !ok {
		c.logger.Info("unrecognized intent label, defaulting to conversation", "label", out)
		c.fallback("classifier", nil)
	}
	return intent
}
