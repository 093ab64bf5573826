package service

import (
	"context"
	"fmt"
	"time"

	"abit-advisor/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// Sampling parameters for the primary model. Fixed, not configurable: the
// advisor's answers should stay comparable across deployments.
const (
	primaryTemperature = 0.7
	primaryMaxTokens   = 1000
)

// LLMService is the primary generation strategy: remote GigaChat, gated by
// the monthly token quota. Every error, including quota exhaustion, is
// absorbed upstream by the tiered generator.
type LLMService struct {
	client  *gigago.Client
	model   *gigago.GenerativeModel
	quota   *QuotaTracker
	timeout time.Duration
	logger  *zap.Logger
}

func NewLLMService(cfg *config.GigaChatConfig, quota *QuotaTracker, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.Temperature = primaryTemperature
	model.MaxTokens = primaryMaxTokens

	return &LLMService{
		client:  client,
		model:   model,
		quota:   quota,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

func (s *LLMService) Name() string {
	return "gigachat"
}

// Generate sends the grounded prompt to GigaChat and charges the quota on
// success. The completion is returned verbatim.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	if !s.quota.Allow() {
		s.logger.Info("GigaChat skipped, token quota exhausted",
			zap.Int("used", s.quota.Used()),
			zap.Int("limit", s.quota.Limit()),
		)
		return "", ErrQuotaExhausted
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from GigaChat")
	}

	completion := resp.Choices[0].Message.Content
	charged := s.quota.Charge(prompt, completion)

	s.logger.Info("GigaChat response generated",
		zap.Int("tokens_charged", charged),
		zap.Int("tokens_used", s.quota.Used()),
	)
	return completion, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
