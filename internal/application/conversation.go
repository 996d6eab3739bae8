package application

import "context"

const msgConversationFailed = "I'm having trouble connecting to my thinking module. Can you try again?"

type ConversationHandler struct {
	caller
}

func NewConversationHandler(gen Generator, opts Options) *ConversationHandler {
	return &ConversationHandler{caller: opts.caller(gen)}
}

func (h *ConversationHandler) Handle(ctx context.Context, text string) string {
	out, err := h.ask(ctx, conversationPrompt(text))
	if err != nil || out == "" {
		h.fallback("conversation", err)
		return msgConversationFailed
	}
	return out
}
