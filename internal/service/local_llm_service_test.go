package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"abit-advisor/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestLocalLLM wires a LocalLLMService to a stub completion server that
// echoes the prompt followed by complete's output, the way a raw decode
// echoes its input.
func newTestLocalLLM(t *testing.T, complete func(prompt string) string) (*LocalLLMService, *atomic.Int32) {
	t.Helper()

	var warmups atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)

		if req.Prompt == "" {
			warmups.Add(1)
			json.NewEncoder(w).Encode(generateResponse{Response: ""})
			return
		}
		json.NewEncoder(w).Encode(generateResponse{Response: req.Prompt + "\n" + complete(req.Prompt)})
	}))
	t.Cleanup(server.Close)

	svc := NewLocalLLMService(&config.LocalLLMConfig{
		BaseURL: server.URL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	}, zap.NewNop())
	return svc, &warmups
}

func TestLocalLLMService_StripsEchoedPrompt(t *testing.T) {
	svc, _ := newTestLocalLLM(t, func(string) string {
		return "Ответ резервной модели."
	})

	response, err := svc.Generate(context.Background(), "Вопрос абитуриента")
	require.NoError(t, err)
	assert.Equal(t, "Ответ резервной модели.", response)
}

func TestLocalLLMService_TruncatesLongResponses(t *testing.T) {
	svc, _ := newTestLocalLLM(t, func(string) string {
		return strings.Repeat("щ", 3000)
	})

	response, err := svc.Generate(context.Background(), "вопрос")
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(response)), 1000)
	assert.NotEmpty(t, response)
}

func TestLocalLLMService_WarmsUpExactlyOnce(t *testing.T) {
	svc, warmups := newTestLocalLLM(t, func(string) string {
		return "ответ"
	})

	for i := 0; i < 3; i++ {
		_, err := svc.Generate(context.Background(), "вопрос")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), warmups.Load())
}

func TestLocalLLMService_ServerFailureSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "out of memory", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewLocalLLMService(&config.LocalLLMConfig{
		BaseURL: server.URL,
		Model:   "test-model",
		Timeout: time.Second,
	}, zap.NewNop())

	_, err := svc.Generate(context.Background(), "вопрос")
	require.Error(t, err)
}
