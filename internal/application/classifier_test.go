package application_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patriot-buddy/internal/application"
	"patriot-buddy/internal/domain"
)

func TestClassifier_Labels(t *testing.T) {
	tests := []struct {
		reply string
		want  domain.Intent
	}{
		{"CONVERSATION", domain.IntentConversation},
		{" home_automation\n", domain.IntentHomeAutomation},
		{"EXTERNAL_API", domain.IntentExternalData},
		{"I think this is EXTERNAL_API", domain.IntentConversation},
		{"", domain.IntentConversation},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			gen := &scriptedGenerator{replies: []string{tt.reply}}
			c := application.NewClassifier(gen, testOptions())

			assert.Equal(t, tt.want, c.Classify(context.Background(), "turn on the lights"))
			assert.Equal(t, 1, gen.calls())
		})
	}
}

func TestClassifier_TransportFailureFailsClosed(t *testing.T) {
	gen := &scriptedGenerator{err: errUnreachable}
	c := application.NewClassifier(gen, testOptions())

	got := c.Classify(context.Background(), "turn on the lights")

	assert.Equal(t, domain.IntentConversation, got)
	assert.Equal(t, 1, gen.calls(), "classification is a single attempt")
}

func TestClassifier_PromptEmbedsText(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{"CONVERSATION"}}
	c := application.NewClassifier(gen, testOptions())

	c.Classify(context.Background(), "what's the weather in Paris")

	require.Len(t, gen.prompts, 1)
	assert.True(t, strings.Contains(gen.prompts[0], `"what's the weather in Paris"`))
	assert.Contains(t, gen.prompts[0], "HOME_AUTOMATION")
}

func TestClassifier_HonoursDeadline(t *testing.T) {
	gen := application.Generator(generatorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}))
	opts := testOptions()
	opts.Timeout = 10 * time.Millisecond

	c := application.NewClassifier(gen, opts)

	assert.Equal(t, domain.IntentConversation, c.Classify(context.Background(), "hello"))
}

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
