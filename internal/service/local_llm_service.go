package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"abit-advisor/pkg/config"

	"go.uber.org/zap"
)

// Decoding parameters for the fallback model. The raw decode has no
// stopping discipline comparable to the remote API, so the output is
// truncated to a fixed length.
const (
	fallbackTemperature  = 0.7
	fallbackTopP         = 0.9
	fallbackMaxNewTokens = 512
	fallbackMaxChars     = 1000
)

// LocalLLMService is the secondary generation strategy: a locally hosted
// completion server (Ollama-compatible /api/generate). Loading the weights
// takes noticeable time and memory, so the model is pulled into server
// memory once, on first use, and kept there for the process lifetime.
type LocalLLMService struct {
	baseURL    string
	model      string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger

	warmOnce sync.Once
	warmErr  error
}

func NewLocalLLMService(cfg *config.LocalLLMConfig, logger *zap.Logger) *LocalLLMService {
	return &LocalLLMService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{},
		timeout:    cfg.Timeout,
		logger:     logger,
	}
}

func (s *LocalLLMService) Name() string {
	return "local"
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate completes the prompt with the local model. The echoed prompt
// prefix is stripped and the rest is truncated to fallbackMaxChars.
func (s *LocalLLMService) Generate(ctx context.Context, prompt string) (string, error) {
	s.warmOnce.Do(func() {
		s.warmErr = s.loadModel()
	})
	if s.warmErr != nil {
		return "", fmt.Errorf("fallback model unavailable: %w", s.warmErr)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	response := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(response, prompt); ok {
		response = strings.TrimSpace(rest)
	}

	runes := []rune(response)
	if len(runes) > fallbackMaxChars {
		response = strings.TrimSpace(string(runes[:fallbackMaxChars]))
	}
	return response, nil
}

// loadModel issues an empty-prompt request, which makes the server pull the
// weights into memory without generating anything. Runs exactly once per
// process; concurrent first callers block on the same load. Deliberately
// not tied to the first caller's context: a cancelled request must not
// poison the load for everyone else.
func (s *LocalLLMService) loadModel() error {
	s.logger.Info("Loading fallback model", zap.String("model", s.model))

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.complete(ctx, ""); err != nil {
		return err
	}

	s.logger.Info("Fallback model loaded", zap.String("model", s.model))
	return nil
}

func (s *LocalLLMService) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  s.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: fallbackTemperature,
			TopP:        fallbackTopP,
			NumPredict:  fallbackMaxNewTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("local generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("local generation failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	return parsed.Response, nil
}
