package service

import (
	"strings"
	"testing"

	"abit-advisor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecommendationService_Score(t *testing.T) {
	svc := NewRecommendationService(zap.NewNop())

	tests := []struct {
		name    string
		profile models.UserProfile
		want    models.Outcome
	}{
		{
			// scoreAI=4, scoreProduct=2
			name: "technical profile favors AI",
			profile: models.UserProfile{
				TechnicalSkills:       true,
				ProgrammingExperience: true,
			},
			want: models.OutcomeAI,
		},
		{
			// scoreAI=0, scoreProduct=4
			name: "management and product profile favors AI Product",
			profile: models.UserProfile{
				ManagementInterest: true,
				ProductExperience:  true,
			},
			want: models.OutcomeAIProduct,
		},
		{
			// all factors fire: scoreAI=5, scoreProduct=7
			name: "all-true profile favors AI Product",
			profile: models.UserProfile{
				TechnicalSkills:       true,
				ManagementInterest:    true,
				ProgrammingExperience: true,
				MLKnowledge:           true,
				ProductExperience:     true,
			},
			want: models.OutcomeAIProduct,
		},
		{
			// scoreAI=0, scoreProduct=0
			name:    "empty profile is a tie",
			profile: models.UserProfile{},
			want:    models.OutcomeTie,
		},
		{
			// ml_knowledge alone gives +1 to both sides
			name:    "ml knowledge only is a tie",
			profile: models.UserProfile{MLKnowledge: true},
			want:    models.OutcomeTie,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, text := svc.Score(&tt.profile)
			assert.Equal(t, tt.want, outcome)
			assert.NotEmpty(t, text)
		})
	}
}

func TestRecommendationService_ScoreIsDeterministic(t *testing.T) {
	svc := NewRecommendationService(zap.NewNop())
	profile := &models.UserProfile{TechnicalSkills: true, ProgrammingExperience: true}

	outcome1, text1 := svc.Score(profile)
	outcome2, text2 := svc.Score(profile)

	assert.Equal(t, outcome1, outcome2)
	assert.Equal(t, text1, text2)
}

func TestRecommendationService_TieTextIsAChecklistNotAChoice(t *testing.T) {
	svc := NewRecommendationService(zap.NewNop())

	_, text := svc.Score(&models.UserProfile{})
	assert.Contains(t, text, "Обе программы могут вам подойти")
	assert.Contains(t, text, "выбирайте, если")
}

func TestElectiveSuggestions_AIProgram(t *testing.T) {
	svc := NewRecommendationService(zap.NewNop())

	t.Run("programming experience adds MLOps block", func(t *testing.T) {
		text := svc.ElectiveSuggestions(models.ProgramAI, &models.UserProfile{ProgrammingExperience: true})
		assert.Contains(t, text, "MLOps")
		assert.Contains(t, text, "Распределенные вычисления")
	})

	t.Run("missing technical skills adds foundations block", func(t *testing.T) {
		text := svc.ElectiveSuggestions(models.ProgramAI, &models.UserProfile{TechnicalSkills: false})
		assert.Contains(t, text, "Математические основы ИИ")
		assert.Contains(t, text, "Python для Data Science")
	})

	t.Run("multiple blocks fire together", func(t *testing.T) {
		profile := &models.UserProfile{ProgrammingExperience: true, MLKnowledge: true}
		text := svc.ElectiveSuggestions(models.ProgramAI, profile)
		assert.Contains(t, text, "MLOps")
		assert.Contains(t, text, "Reinforcement Learning")
		assert.Contains(t, text, "Explainable AI")
	})

	t.Run("specialization tail always present", func(t *testing.T) {
		text := svc.ElectiveSuggestions(models.ProgramAI, &models.UserProfile{TechnicalSkills: true})
		assert.Contains(t, text, "Computer Vision")
		assert.Contains(t, text, "Робототехника")
	})
}

func TestElectiveSuggestions_AIProductProgram(t *testing.T) {
	svc := NewRecommendationService(zap.NewNop())

	t.Run("product experience adds growth and monetization block", func(t *testing.T) {
		text := svc.ElectiveSuggestions(models.ProgramAIProduct, &models.UserProfile{ProductExperience: true})
		assert.Contains(t, text, "Growth Hacking")
		assert.Contains(t, text, "Монетизация AI")
	})

	t.Run("missing ml knowledge adds foundations block", func(t *testing.T) {
		text := svc.ElectiveSuggestions(models.ProgramAIProduct, &models.UserProfile{MLKnowledge: false})
		assert.Contains(t, text, "Основы машинного обучения")
	})

	t.Run("having ml knowledge omits foundations block", func(t *testing.T) {
		text := svc.ElectiveSuggestions(models.ProgramAIProduct, &models.UserProfile{MLKnowledge: true})
		assert.NotContains(t, text, "Основы машинного обучения")
	})

	t.Run("extra skills tail always present", func(t *testing.T) {
		text := svc.ElectiveSuggestions(models.ProgramAIProduct, &models.UserProfile{})
		assert.Contains(t, text, "UX для AI")
		assert.Contains(t, text, "Поведенческая экономика")
	})
}

func TestElectiveSuggestions_BlocksAppearInFixedOrder(t *testing.T) {
	svc := NewRecommendationService(zap.NewNop())
	profile := &models.UserProfile{ProgrammingExperience: true, MLKnowledge: true}

	first := svc.ElectiveSuggestions(models.ProgramAI, profile)
	second := svc.ElectiveSuggestions(models.ProgramAI, profile)
	require.Equal(t, first, second)

	mlops := strings.Index(first, "MLOps")
	rl := strings.Index(first, "Reinforcement Learning")
	require.GreaterOrEqual(t, mlops, 0)
	require.GreaterOrEqual(t, rl, 0)
	assert.Less(t, mlops, rl)
}
