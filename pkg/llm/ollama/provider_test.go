package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-multichat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePostsNonStreamingChatRequest(t *testing.T) {
	var captured ollamaChatRequest
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   captured.Model,
			Message: ollamaMessage{Role: "assistant", Content: "local hello"},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "llama3.2")
	got, err := p.Generate(context.Background(), "say hello")

	require.NoError(t, err)
	assert.Equal(t, "local hello", got)
	assert.Empty(t, auth, "local inference needs no credential")
	assert.Equal(t, "llama3.2", captured.Model)
	assert.False(t, captured.Stream)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Equal(t, "say hello", captured.Messages[0].Content)
}

func TestGenerateStripsReasoningBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "<think>hmm</think>Done."},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "phi3")
	got, err := p.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "Done.", got)
}

func TestGenerateSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model 'phi3' not found"})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "phi3")
	_, err := p.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model 'phi3' not found")
}

func TestGenerateModelOverride(t *testing.T) {
	var captured ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "ok"},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "llama3.2")
	_, err := p.Generate(context.Background(), "prompt", llm.WithModel("mistral"))

	require.NoError(t, err)
	assert.Equal(t, "mistral", captured.Model)
}
