package hosted

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSendsOpenAICompatibleRequest(t *testing.T) {
	var captured map[string]any
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "hello from the router"}},
			},
		})
	}))
	defer srv.Close()

	p := NewProvider("test-key", srv.URL, "deepseek-ai/DeepSeek-R1-Distill-Llama-70B-free")
	got, err := p.Generate(context.Background(), "say hello")

	require.NoError(t, err)
	assert.Equal(t, "hello from the router", got)
	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "deepseek-ai/DeepSeek-R1-Distill-Llama-70B-free", captured["model"])
	assert.EqualValues(t, 2048, captured["max_tokens"])
	assert.EqualValues(t, 0.7, captured["temperature"])
	assert.EqualValues(t, 0.7, captured["top_p"])

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "say hello", msg["content"])
}

func TestGenerateStripsReasoningBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "<think>step by step…</think>The answer is 4."}},
			},
		})
	}))
	defer srv.Close()

	p := NewProvider("k", srv.URL, "m")
	got, err := p.Generate(context.Background(), "2+2?")

	require.NoError(t, err)
	assert.Equal(t, "The answer is 4.", got)
}

func TestGeneratePrefersStructuredErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limit exceeded"},
		})
	}))
	defer srv.Close()

	p := NewProvider("k", srv.URL, "m")
	_, err := p.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestGenerateFallsBackToRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	p := NewProvider("k", srv.URL, "m")
	_, err := p.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestGenerateFallsBackToStatusLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewProvider("k", srv.URL, "m")
	_, err := p.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGenerateRejectsMissingChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	p := NewProvider("k", srv.URL, "m")
	_, err := p.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response shape")
}
