// Command seed builds the knowledge corpus: it scrapes the two program
// pages, merges the extracted passages with the curated baseline entries,
// writes the JSON corpus file and, when CORPUS_SOURCE=database, replaces
// the knowledge_base table. The advisor service never scrapes at runtime.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"abit-advisor/internal/models"
	"abit-advisor/internal/repository"
	"abit-advisor/pkg/config"
	"abit-advisor/pkg/logger"
	"abit-advisor/pkg/postgres"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	aiProgramURL        = "https://abit.itmo.ru/program/master/ai"
	aiProductProgramURL = "https://abit.itmo.ru/program/master/ai_product"

	fetchTimeout = 30 * time.Second
	userAgent    = "abit-advisor-seed/1.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	httpClient := &http.Client{Timeout: fetchTimeout}

	appLogger.Info("Building knowledge corpus")

	// Scrape both program pages concurrently. Scraping is best effort: a
	// page that fails to parse just contributes nothing beyond the
	// baseline entries.
	scraped := make([][]*models.KnowledgeEntry, 2)
	g, gctx := errgroup.WithContext(ctx)
	for i, target := range []struct {
		program models.Program
		url     string
	}{
		{models.ProgramAI, aiProgramURL},
		{models.ProgramAIProduct, aiProductProgramURL},
	} {
		g.Go(func() error {
			entries, err := scrapeProgramPage(gctx, httpClient, target.program, target.url)
			if err != nil {
				appLogger.Warn("Failed to scrape program page",
					zap.String("program", string(target.program)),
					zap.String("url", target.url),
					zap.Error(err),
				)
				return nil
			}
			scraped[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		appLogger.Fatal("Scraping failed", zap.Error(err))
	}

	entries := baselineEntries()
	for _, programEntries := range scraped {
		entries = append(entries, programEntries...)
	}

	if err := writeCorpusFile(cfg.Corpus.Path, entries); err != nil {
		appLogger.Fatal("Failed to write corpus file", zap.Error(err))
	}
	appLogger.Info("Corpus file written",
		zap.String("path", cfg.Corpus.Path),
		zap.Int("entries", len(entries)),
	)

	if cfg.Corpus.Source == config.CorpusSourceDatabase {
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
		if err := knowledgeRepo.EnsureSchema(ctx); err != nil {
			appLogger.Fatal("Failed to prepare schema", zap.Error(err))
		}
		if err := knowledgeRepo.Replace(ctx, entries); err != nil {
			appLogger.Fatal("Failed to seed knowledge base", zap.Error(err))
		}
		appLogger.Info("Database seeded", zap.Int("entries", len(entries)))
	}

	appLogger.Info("Corpus build completed")
}

// scrapeProgramPage extracts the program title, description and section
// texts from a program landing page.
func scrapeProgramPage(ctx context.Context, client *http.Client, program models.Program, url string) ([]*models.KnowledgeEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var entries []*models.KnowledgeEntry

	title := cleanText(doc.Find("h1").First().Text())
	description, _ := doc.Find(`meta[name="description"]`).Attr("content")
	description = cleanText(description)
	if title != "" {
		text := title
		if description != "" {
			text += ". " + description
		}
		entries = append(entries, &models.KnowledgeEntry{
			ID:       string(program) + "_page_about",
			Text:     text,
			Program:  program,
			Category: "программы",
		})
	}

	// Section headings plus the text that follows them. Headings are
	// classified by keyword; unknown sections are skipped rather than
	// polluting the corpus.
	doc.Find("h2, h3").Each(func(_ int, heading *goquery.Selection) {
		category := classifyHeading(heading.Text())
		if category == "" {
			return
		}

		var parts []string
		heading.NextUntil("h2, h3").Each(func(_ int, node *goquery.Selection) {
			if text := cleanText(node.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		body := strings.Join(parts, " ")
		if len([]rune(body)) < 40 {
			return
		}

		entries = append(entries, &models.KnowledgeEntry{
			ID:       fmt.Sprintf("%s_page_%s_%d", program, category, len(entries)),
			Text:     cleanText(heading.Text()) + ": " + body,
			Program:  program,
			Category: category,
		})
	})

	return entries, nil
}

func classifyHeading(heading string) string {
	lowered := strings.ToLower(heading)
	switch {
	case strings.Contains(lowered, "стоимост"), strings.Contains(lowered, "оплат"), strings.Contains(lowered, "бюджет"):
		return "стоимость"
	case strings.Contains(lowered, "поступ"), strings.Contains(lowered, "экзамен"), strings.Contains(lowered, "конкурс"):
		return "поступление"
	case strings.Contains(lowered, "карьер"), strings.Contains(lowered, "работ"), strings.Contains(lowered, "зарплат"):
		return "карьера"
	case strings.Contains(lowered, "дисциплин"), strings.Contains(lowered, "учеб"), strings.Contains(lowered, "курс"):
		return "дисциплины"
	case strings.Contains(lowered, "партнер"), strings.Contains(lowered, "компани"):
		return "партнеры"
	case strings.Contains(lowered, "программ"):
		return "программы"
	default:
		return ""
	}
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func writeCorpusFile(path string, entries []*models.KnowledgeEntry) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create corpus directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}
	return nil
}

// baselineEntries is the curated core of the knowledge base. The scraper
// only supplements it: the advisor must be able to answer the standard
// questions even when the program pages change their markup.
func baselineEntries() []*models.KnowledgeEntry {
	return []*models.KnowledgeEntry{
		{
			ID:       "ai_about",
			Text:     "Программа 'Искусственный интеллект' готовит ML-инженеров и Data Engineer уровня Middle за 2 года обучения. Студенты глубоко изучают алгоритмы машинного обучения, работу с большими данными и развертывание моделей в продакшн.",
			Program:  models.ProgramAI,
			Category: "программы",
		},
		{
			ID:       "ai_specializations",
			Text:     "На программе 'Искусственный интеллект' можно выбрать специализацию: ML Engineering, Data Engineering или AI Development. Дисциплины по выбору включают MLOps, компьютерное зрение, NLP, Reinforcement Learning и Edge AI.",
			Program:  models.ProgramAI,
			Category: "дисциплины",
		},
		{
			ID:       "ai_partners",
			Text:     "Студенты программы 'Искусственный интеллект' работают над реальными проектами компаний-партнеров: X5, Ozon, МТС и Sber AI.",
			Program:  models.ProgramAI,
			Category: "партнеры",
		},
		{
			ID:       "ai_career",
			Text:     "Выпускники программы 'Искусственный интеллект' работают ML Engineer, Data Engineer и AI Developer. Зарплатные ожидания Middle-специалиста: 170-300 тысяч рублей.",
			Program:  models.ProgramAI,
			Category: "карьера",
		},
		{
			ID:       "ai_admission",
			Text:     "Поступить на программу 'Искусственный интеллект' можно по конкурсу портфолио, через олимпиады или вступительный экзамен. Есть бюджетные и контрактные места.",
			Program:  models.ProgramAI,
			Category: "поступление",
		},
		{
			ID:       "ai_product_about",
			Text:     "Программа 'Управление ИИ-продуктами/AI Product' готовит продакт-менеджеров в сфере ИИ. Она сочетает технические знания искусственного интеллекта с навыками управления продуктами: студенты учатся создавать ИИ-решения и выводить их на рынок.",
			Program:  models.ProgramAIProduct,
			Category: "программы",
		},
		{
			ID:       "ai_product_partners",
			Text:     "Партнерство программы 'Управление ИИ-продуктами' с Альфа-Банком дает студентам доступ к реальным кейсам финтеха.",
			Program:  models.ProgramAIProduct,
			Category: "партнеры",
		},
		{
			ID:       "ai_product_career",
			Text:     "Выпускники программы 'Управление ИИ-продуктами' занимают роли AI Product Manager, AI Project Manager и Product Data Analyst. Зарплатные ожидания: 150-400+ тысяч рублей через 1-3 года после выпуска.",
			Program:  models.ProgramAIProduct,
			Category: "карьера",
		},
		{
			ID:       "ai_product_disciplines",
			Text:     "Дисциплины по выбору программы 'Управление ИИ-продуктами' включают Growth Hacking для AI-продуктов, монетизацию AI-решений, Agile и Scrum для AI-проектов и Digital Marketing с использованием ML.",
			Program:  models.ProgramAIProduct,
			Category: "дисциплины",
		},
		{
			ID:       "ai_product_admission",
			Text:     "На программу 'Управление ИИ-продуктами' поступают по конкурсу портфолио или вступительному экзамену. Программа подходит кандидатам с опытом работы с продуктами, глубокий технический бэкграунд не обязателен.",
			Program:  models.ProgramAIProduct,
			Category: "поступление",
		},
	}
}
