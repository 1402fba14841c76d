package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shahfarzane/CursorFocus/providers/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(url string) *GeminiConfig {
	return NewGeminiSummaryProvider(&GeminiConfig{
		BaseURL: url,
		Model:   "gemini-2.0-flash-exp",
		ApiKey:  "test-key",
	}).(*GeminiConfig)
}

func candidateResponse(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

// Test the generateContent request shape and response decoding
func TestGeminiProvider_Summarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash-exp:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "contents")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateResponse("  A small Python service.\n")))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	summary, err := provider.Summarize(context.Background(), models.SummaryRequest{ProjectName: "Demo"})
	require.NoError(t, err)
	assert.Equal(t, "A small Python service.", summary)
}

func TestGeminiProvider_GenerateRules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse("```json\n{\"code_generation\": {}}\n```")))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	rules, err := provider.GenerateRules(context.Background(), models.SummaryRequest{ProjectName: "Demo"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code_generation": {}}`, string(rules))
}

func TestGeminiProvider_GenerateRules_NoObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse("I cannot produce rules for this project.")))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	rules, err := provider.GenerateRules(context.Background(), models.SummaryRequest{})
	assert.Error(t, err)
	assert.Nil(t, rules)
}

// Upstream errors surface with the API message when one is present.
func TestGeminiProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	_, err := provider.Summarize(context.Background(), models.SummaryRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGeminiProvider_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	_, err := provider.Summarize(context.Background(), models.SummaryRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestGeminiProvider_Enabled(t *testing.T) {
	assert.True(t, newTestProvider("http://example.invalid").Enabled())
	disabled := NewGeminiSummaryProvider(&GeminiConfig{Model: "m"})
	assert.False(t, disabled.Enabled())
}
