package service

import (
	"context"
	"strings"

	"abit-advisor/internal/models"

	"go.uber.org/zap"
)

// Retriever finds knowledge entries relevant to a query.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]*models.KnowledgeEntry, error)
}

// Generator produces a grounded answer from a query and retrieved context.
type Generator interface {
	Generate(ctx context.Context, query string, entries []*models.KnowledgeEntry) (string, error)
}

// Greeting words and the start command. Matched by substring containment on
// the lowercased query, so "привет!" and "Здравствуйте" both count.
var greetingTokens = []string{
	"привет",
	"здравствуй",
	"добрый день",
	"добрый вечер",
	"здравствуйте",
	"start",
	"/start",
}

const onboardingMessage = `Здравствуйте! Я помощник по выбору магистерской программы в ИТМО.

Могу рассказать о двух программах:
• "Искусственный интеллект" - для тех, кто хочет стать ML-инженером
• "Управление ИИ-продуктами" - для будущих AI продакт-менеджеров

О чем вы хотели бы узнать? Например:
- Различия между программами
- Стоимость и бюджетные места
- Способы поступления
- Карьерные перспективы
- Требования к поступающим
- Учебные дисциплины

Также могу дать персональную рекомендацию по выбору программы!`

const notFoundMessage = "Извините, я не нашел информации по вашему запросу. Попробуйте спросить о программах, поступлении, карьерных перспективах, дисциплинах или стоимости обучения."

// ChatService is the engine's top-level query entry point: greeting
// detection, retrieval, then tiered generation. It holds no per-request
// state and is safe for concurrent use.
type ChatService struct {
	retriever Retriever
	generator Generator
	topK      int
	logger    *zap.Logger
}

func NewChatService(retriever Retriever, generator Generator, topK int, logger *zap.Logger) *ChatService {
	return &ChatService{
		retriever: retriever,
		generator: generator,
		topK:      topK,
		logger:    logger,
	}
}

// isGreeting is the whole intent classifier for now. Kept as a named
// function so a real classifier can replace it without touching Answer.
func isGreeting(query string) bool {
	lowered := strings.ToLower(query)
	for _, token := range greetingTokens {
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}

// Answer handles one conversational turn. Greetings short-circuit to the
// onboarding text; an empty retrieval result yields the guidance message;
// otherwise the generated answer is returned unmodified.
func (s *ChatService) Answer(ctx context.Context, query string) (string, error) {
	if isGreeting(query) {
		return onboardingMessage, nil
	}

	results, err := s.retriever.Search(ctx, query, s.topK)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return notFoundMessage, nil
	}

	response, err := s.generator.Generate(ctx, query, results)
	if err != nil {
		return "", err
	}

	s.logger.Info("Query answered",
		zap.Int("context_entries", len(results)),
		zap.Int("response_length", len(response)),
	)
	return response, nil
}
