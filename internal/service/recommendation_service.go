package service

import (
	"strings"

	"abit-advisor/internal/models"

	"go.uber.org/zap"
)

const recommendAI = `На основе вашего профиля я рекомендую программу **"Искусственный интеллект"**.

Почему эта программа вам подходит:
• У вас есть технические навыки и опыт программирования - это отличная база для углубления в ML
• Программа позволит стать ML Engineer или Data Engineer уровня Middle за 2 года
• Вы будете работать над реальными проектами компаний (X5, Ozon, МТС, Sber AI)
• Возможность выбрать специализацию: ML Engineering, Data Engineering, AI Development
• Зарплатные ожидания: 170-300 тыс. руб. для Middle-специалиста

Программа включает глубокое изучение алгоритмов ML, работу с большими данными и развертывание моделей в продакшн.

Рекомендуемые дисциплины по выбору:
- MLOps и инфраструктура ML
- Компьютерное зрение или NLP (в зависимости от интересов)
- Reinforcement Learning
- Edge AI для работы с встраиваемыми системами`

const recommendAIProduct = `На основе вашего профиля я рекомендую программу **"Управление ИИ-продуктами/AI Product"**.

Почему эта программа вам подходит:
• Вас интересует продуктовый менеджмент и у вас есть опыт работы с продуктами
• Программа сочетает технические знания ИИ с навыками управления продуктами
• Партнерство с Альфа-Банком дает доступ к реальным кейсам финтеха
• Возможные роли: AI Product Manager, AI Project Manager, Product Data Analyst
• Зарплатные ожидания: 150-400+ тыс. руб. через 1-3 года

Вы научитесь создавать ИИ-решения и выводить их на рынок, понимая как техническую, так и бизнес-сторону.

Рекомендуемые дисциплины по выбору:
- Growth Hacking для AI-продуктов
- Монетизация AI-решений
- Agile и Scrum для AI-проектов
- Digital Marketing с использованием ML`

const recommendTie = `Обе программы могут вам подойти! Давайте определимся точнее:

**"Искусственный интеллект"** выбирайте, если:
• Хотите глубоко погрузиться в технические аспекты ML
• Готовы много программировать и работать с алгоритмами
• Интересуетесь исследованиями и научными публикациями
• Хотите стать ML Engineer или Data Engineer

**"Управление ИИ-продуктами"** выбирайте, если:
• Хотите управлять разработкой ИИ-продуктов
• Интересует работа на стыке технологий и бизнеса
• Важно понимать и техническую, и продуктовую стороны
• Хотите стать AI Product Manager

Рекомендую пройти пробные курсы обеих программ или поговорить с выпускниками для окончательного выбора!`

// RecommendationService scores a five-factor intake profile against the two
// programs and suggests elective courses. Pure functions over the profile,
// nothing generated: the explanatory texts are fixed.
type RecommendationService struct {
	logger *zap.Logger
}

func NewRecommendationService(logger *zap.Logger) *RecommendationService {
	return &RecommendationService{logger: logger}
}

// Score computes the weighted sum for each program and picks the strictly
// higher one. Equal scores, including the all-false profile, are a tie: the
// tie text presents a decision checklist instead of forcing a choice.
func (s *RecommendationService) Score(profile *models.UserProfile) (models.Outcome, string) {
	var aiScore, productScore int

	if profile.TechnicalSkills {
		aiScore += 2
		productScore += 1
	}
	if profile.ManagementInterest {
		productScore += 2
	}
	if profile.ProgrammingExperience {
		aiScore += 2
		productScore += 1
	}
	if profile.MLKnowledge {
		aiScore += 1
		productScore += 1
	}
	if profile.ProductExperience {
		productScore += 2
	}

	s.logger.Debug("Profile scored",
		zap.Int("ai_score", aiScore),
		zap.Int("ai_product_score", productScore),
	)

	switch {
	case aiScore > productScore:
		return models.OutcomeAI, recommendAI
	case productScore > aiScore:
		return models.OutcomeAIProduct, recommendAIProduct
	default:
		return models.OutcomeTie, recommendTie
	}
}

// ElectiveSuggestions builds the elective-course text for a chosen program.
// A flat rule list keyed on individual profile flags: every matching block
// is appended in fixed order, then the program's static tail.
func (s *RecommendationService) ElectiveSuggestions(program models.Program, profile *models.UserProfile) string {
	var b strings.Builder

	if program == models.ProgramAI {
		b.WriteString("**Рекомендуемые дисциплины по выбору для программы 'Искусственный интеллект':**\n\n")

		if profile.ProgrammingExperience {
			b.WriteString("• **MLOps** - для развертывания моделей в продакшн\n")
			b.WriteString("• **Распределенные вычисления** - для работы с большими данными\n")
		}
		if profile.MLKnowledge {
			b.WriteString("• **Reinforcement Learning** - передовое направление в ML\n")
			b.WriteString("• **Explainable AI** - для создания интерпретируемых моделей\n")
		}
		if !profile.TechnicalSkills {
			b.WriteString("• **Математические основы ИИ** - усиленный курс математики\n")
			b.WriteString("• **Python для Data Science** - углубленное программирование\n")
		}

		b.WriteString("\n**Специализации по интересам:**\n")
		b.WriteString("• Computer Vision - если интересует работа с изображениями\n")
		b.WriteString("• NLP - если интересует работа с текстом\n")
		b.WriteString("• Биоинформатика - если есть интерес к медицине\n")
		b.WriteString("• Робототехника - для работы с автономными системами\n")

		return b.String()
	}

	b.WriteString("**Рекомендуемые дисциплины по выбору для программы 'Управление ИИ-продуктами':**\n\n")

	if profile.ProductExperience {
		b.WriteString("• **Growth Hacking** - для масштабирования AI-продуктов\n")
		b.WriteString("• **Монетизация AI** - стратегии заработка на ML\n")
	}
	if !profile.MLKnowledge {
		b.WriteString("• **Основы машинного обучения** - базовый технический курс\n")
		b.WriteString("• **Анализ данных для PM** - работа с метриками\n")
	}
	if profile.ManagementInterest {
		b.WriteString("• **Agile для AI** - управление AI-проектами\n")
		b.WriteString("• **Венчурные инвестиции** - для запуска стартапов\n")
	}

	b.WriteString("\n**Дополнительные навыки:**\n")
	b.WriteString("• UX для AI - проектирование AI-интерфейсов\n")
	b.WriteString("• Digital Marketing - продвижение AI-решений\n")
	b.WriteString("• Legal Tech - правовые аспекты AI\n")
	b.WriteString("• Поведенческая экономика - понимание пользователей\n")

	return b.String()
}
