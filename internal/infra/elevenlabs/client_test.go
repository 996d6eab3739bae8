package elevenlabs_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patriot-buddy/internal/infra/elevenlabs"
)

func TestClient_Synthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/text-to-speech/voice-1", r.URL.Path)
		assert.Equal(t, "mp3_44100_128", r.URL.Query().Get("output_format"))
		assert.Equal(t, "xi-key", r.Header.Get("xi-api-key"))

		var body struct {
			Text          string `json:"text"`
			ModelID       string `json:"model_id"`
			VoiceSettings struct {
				Stability       float64 `json:"stability"`
				SimilarityBoost float64 `json:"similarity_boost"`
			} `json:"voice_settings"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hello!", body.Text)
		assert.Equal(t, "eleven_multilingual_v2", body.ModelID)
		assert.Equal(t, 0.5, body.VoiceSettings.Stability)
		assert.Equal(t, 0.75, body.VoiceSettings.SimilarityBoost)

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3-fake-mp3"))
	}))
	defer server.Close()

	client := elevenlabs.NewClientWithURL("xi-key", "voice-1", server.URL, server.Client())

	audio, err := client.Synthesize(context.Background(), "Hello!")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-fake-mp3"), audio)
}

func TestClient_SynthesizeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"quota_exceeded"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := elevenlabs.NewClientWithURL("xi-key", "voice-1", server.URL, server.Client())

	_, err := client.Synthesize(context.Background(), "Hello!")
	assert.Error(t, err)
}
