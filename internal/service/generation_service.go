package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"abit-advisor/internal/models"

	"go.uber.org/zap"
)

// ErrGenerationFailed means every generation strategy failed, including the
// local fallback. This is the only generation error callers ever see.
var ErrGenerationFailed = errors.New("generation failed")

// Strategy is one way to complete a prompt. Strategies are tried in order;
// the first success wins.
type Strategy interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationService turns a query plus retrieved context into a grounded
// answer through an ordered list of strategies: remote GigaChat first (when
// configured and under quota), then the local fallback model. A primary
// failure degrades service instead of failing the request; quota exhaustion
// and API errors are deliberately indistinguishable to callers.
type GenerationService struct {
	strategies []Strategy
	logger     *zap.Logger
}

func NewGenerationService(logger *zap.Logger, strategies ...Strategy) *GenerationService {
	return &GenerationService{
		strategies: strategies,
		logger:     logger,
	}
}

// Generate builds the grounding prompt and runs the strategy chain.
func (s *GenerationService) Generate(ctx context.Context, query string, entries []*models.KnowledgeEntry) (string, error) {
	prompt := buildPrompt(query, entries)

	var lastErr error
	for _, strategy := range s.strategies {
		response, err := strategy.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(response) == "" {
			err = errors.New("empty completion")
		}
		if err == nil {
			return sanitizeUTF8(response), nil
		}
		lastErr = err
		s.logger.Warn("Generation strategy failed",
			zap.String("strategy", strategy.Name()),
			zap.Error(err),
		)
	}

	if lastErr == nil {
		return "", fmt.Errorf("%w: no strategies configured", ErrGenerationFailed)
	}
	return "", fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
}

// buildPrompt embeds the role description, the retrieved context block and
// the raw question into the fixed grounding template.
func buildPrompt(query string, entries []*models.KnowledgeEntry) string {
	var contextBlock string
	for i, entry := range entries {
		if i > 0 {
			contextBlock += "\n\n"
		}
		contextBlock += "- " + entry.Text
	}

	return fmt.Sprintf(`Ты - помощник для абитуриентов ИТМО, помогающий выбрать между двумя магистерскими программами:
1. "Искусственный интеллект" - для технических специалистов в ML
2. "Управление ИИ-продуктами/AI Product" - для продакт-менеджеров в ИИ

Используй следующую информацию для ответа:
%s

Вопрос абитуриента: %s

Дай полезный и конкретный ответ на русском языке. Если нужно - порекомендуй программу исходя из интересов абитуриента.`, contextBlock, query)
}
