package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T, handler http.HandlerFunc) *OllamaAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewOllamaAdapter(Config{ServerURL: srv.URL, Model: "llama3", SystemPrompt: "Be brief.", Timeout: 5 * time.Second})
	require.NoError(t, err)
	return a
}

func TestGenerate(t *testing.T) {
	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":      "llama3",
			"created_at": time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			"message":    map[string]any{"role": "assistant", "content": "Scan ports after WHOIS."},
			"done":       true,
		})
	})

	text, err := a.Generate(context.Background(), "Plan recon")
	require.NoError(t, err)
	assert.Equal(t, "Scan ports after WHOIS.", text)
	assert.Equal(t, "llama3", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "Plan recon", req.Messages[1].Content)
}

func TestGenerateServerError(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model not loaded"}`))
	})

	_, err := a.Generate(context.Background(), "Plan recon")
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	a, err := NewOllamaAdapter(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, a.Model())
}
