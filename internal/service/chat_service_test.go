package service

import (
	"context"
	"errors"
	"testing"

	"abit-advisor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRetriever struct {
	results []*models.KnowledgeEntry
	err     error
	calls   int
}

func (f *fakeRetriever) Search(_ context.Context, _ string, _ int) ([]*models.KnowledgeEntry, error) {
	f.calls++
	return f.results, f.err
}

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(_ context.Context, _ string, _ []*models.KnowledgeEntry) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newChatService(retriever *fakeRetriever, generator *fakeGenerator) *ChatService {
	return NewChatService(retriever, generator, 5, zap.NewNop())
}

func TestChatService_GreetingShortCircuits(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"plain greeting", "привет"},
		{"capitalized with punctuation", "Привет! Как дела?"},
		{"formal greeting", "Здравствуйте"},
		{"start command", "/start"},
		{"evening greeting", "добрый вечер"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retriever := &fakeRetriever{}
			generator := &fakeGenerator{}
			svc := newChatService(retriever, generator)

			answer, err := svc.Answer(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, onboardingMessage, answer)
			assert.Equal(t, 0, retriever.calls)
			assert.Equal(t, 0, generator.calls)
		})
	}
}

func TestChatService_EmptyRetrievalReturnsGuidance(t *testing.T) {
	retriever := &fakeRetriever{}
	generator := &fakeGenerator{}
	svc := newChatService(retriever, generator)

	answer, err := svc.Answer(context.Background(), "сколько стоит обучение?")
	require.NoError(t, err)
	assert.Equal(t, notFoundMessage, answer)
	assert.Equal(t, 1, retriever.calls)
	assert.Equal(t, 0, generator.calls)
}

func TestChatService_GeneratedAnswerReturnedUnmodified(t *testing.T) {
	retriever := &fakeRetriever{results: testEntries()}
	generator := &fakeGenerator{response: "  ответ с пробелами  "}
	svc := newChatService(retriever, generator)

	answer, err := svc.Answer(context.Background(), "чем отличаются программы?")
	require.NoError(t, err)
	assert.Equal(t, "  ответ с пробелами  ", answer)
	assert.Equal(t, 1, generator.calls)
}

func TestChatService_RetrieverErrorPropagates(t *testing.T) {
	retriever := &fakeRetriever{err: ErrRetrievalUnavailable}
	generator := &fakeGenerator{}
	svc := newChatService(retriever, generator)

	_, err := svc.Answer(context.Background(), "вопрос")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRetrievalUnavailable))
	assert.Equal(t, 0, generator.calls)
}

func TestChatService_GeneratorErrorPropagates(t *testing.T) {
	retriever := &fakeRetriever{results: testEntries()}
	generator := &fakeGenerator{err: ErrGenerationFailed}
	svc := newChatService(retriever, generator)

	_, err := svc.Answer(context.Background(), "вопрос")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
}

func TestChatService_AnswersAreNeverEmpty(t *testing.T) {
	retriever := &fakeRetriever{results: testEntries()}
	generator := &fakeGenerator{response: "осмысленный ответ"}
	svc := newChatService(retriever, generator)

	for _, query := range []string{"привет", "что-то про стипендии", "чем отличаются программы?"} {
		answer, err := svc.Answer(context.Background(), query)
		require.NoError(t, err)
		assert.NotEmpty(t, answer, "query %q", query)
	}
}

func TestIsGreeting(t *testing.T) {
	assert.True(t, isGreeting("привет"))
	assert.True(t, isGreeting("ПРИВЕТ"))
	assert.True(t, isGreeting("start"))
	assert.False(t, isGreeting("расскажи о программах"))
	assert.False(t, isGreeting(""))
}
