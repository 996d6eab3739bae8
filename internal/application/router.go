package application

import (
	"context"
	"log/slog"

	"patriot-buddy/internal/domain"
)

// Result is the outcome of one route: the handler's response verbatim and
// the text it answered.
type Result struct {
	Text       string
	Response   string
	Intent     domain.Intent
	Overridden bool
}

type Router struct {
	classifier     IntentClassifier
	conversation   Handler
	homeAutomation Handler
	externalData   Handler
	mode           *ModeState
	logger         *slog.Logger
}

func NewRouter(
	classifier IntentClassifier,
	conversation Handler,
	homeAutomation Handler,
	externalData Handler,
	mode *ModeState,
	logger *slog.Logger,
) *Router {
	if mode == nil {
		mode = NewModeState(domain.ModeNormal)
	}
	return &Router{
		classifier:     classifier,
		conversation:   conversation,
		homeAutomation: homeAutomation,
		externalData:   externalData,
		mode:           mode,
		logger:         logger,
	}
}

// Handle routes text under the current mode.
func (r *Router) Handle(ctx context.Context, text string) Result {
	return r.Route(ctx, text, r.mode.Get())
}

// Route runs exactly one handler for text. A forced mode skips the
// classifier entirely.
func (r *Router) Route(ctx context.Context, text string, override domain.Mode) Result {
	intent, overridden := override.Intent()
	if !overridden {
		intent = r.classifier.Classify(ctx, text)
	}

	r.logger.Info("routing", "intent", intent, "overridden", overridden)

	var h Handler
	switch intent {
	case domain.IntentHomeAutomation:
		h = r.homeAutomation
	case domain.IntentExternalData:
		h = r.externalData
	case domain.IntentConversation:
		h = r.conversation
	default:
		r.logger.Warn("unexpected intent, using conversation", "intent", intent)
		intent = domain.IntentConversation
		h = r.conversation
	}

	return Result{
		Text:       text,
		Response:   h.Handle(ctx, text),
		Intent:     intent,
		Overridden: overridden,
	}
}
