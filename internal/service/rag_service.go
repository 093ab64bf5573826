package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"abit-advisor/internal/models"
	"abit-advisor/pkg/config"

	"go.uber.org/zap"
)

// ErrRetrievalUnavailable means the embedding provider failed while
// answering a query, so the engine has nothing to ground a response on.
var ErrRetrievalUnavailable = errors.New("retrieval unavailable")

const (
	indexBuildAttempts = 3
	indexBuildBackoff  = 2 * time.Second
)

// RAGService composes the embedding provider, the vector index and the
// in-memory knowledge base into semantic retrieval. The index and the entry
// slice are rebuilt together in BuildIndex and never touched afterwards.
type RAGService struct {
	embedder Embedder
	index    *VectorIndex
	entries  []*models.KnowledgeEntry
	config   *config.RAGConfig
	logger   *zap.Logger
}

func NewRAGService(embedder Embedder, cfg *config.RAGConfig, logger *zap.Logger) *RAGService {
	return &RAGService{
		embedder: embedder,
		config:   cfg,
		logger:   logger,
	}
}

// BuildIndex embeds every entry text in one batch and builds the index.
// An embedding failure is retried a few times and then reported: serving a
// partial index would silently drop knowledge.
func (s *RAGService) BuildIndex(ctx context.Context, entries []*models.KnowledgeEntry) error {
	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.Text
	}

	var vectors [][]float32
	var err error
	for attempt := 1; attempt <= indexBuildAttempts; attempt++ {
		vectors, err = s.embedder.Embed(ctx, texts)
		if err == nil {
			break
		}
		s.logger.Warn("Failed to embed corpus",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < indexBuildAttempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("index build cancelled: %w", ctx.Err())
			case <-time.After(indexBuildBackoff):
			}
		}
	}
	if err != nil {
		return fmt.Errorf("failed to embed corpus after %d attempts: %w", indexBuildAttempts, err)
	}

	index, err := NewVectorIndex(vectors)
	if err != nil {
		return fmt.Errorf("failed to build vector index: %w", err)
	}

	s.index = index
	s.entries = entries

	s.logger.Info("Vector index built",
		zap.Int("entries", len(entries)),
		zap.Int("dimension", index.Dimension()),
	)
	return nil
}

// Search returns the k entries most similar to the query, ordered by
// descending cosine similarity with ties in corpus order. An empty corpus
// yields an empty result, which callers present as "nothing found".
func (s *RAGService) Search(ctx context.Context, query string, k int) ([]*models.KnowledgeEntry, error) {
	if len(s.entries) == 0 {
		return nil, nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalUnavailable, err)
	}

	hits, err := s.index.Search(vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalUnavailable, err)
	}

	results := make([]*models.KnowledgeEntry, 0, len(hits))
	for _, hit := range hits {
		results = append(results, s.entries[hit.Position])
	}

	s.logger.Debug("Knowledge search completed",
		zap.String("query", query),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// BuildContext renders retrieved entries as the bulleted block the
// grounding prompt embeds.
func (s *RAGService) BuildContext(entries []*models.KnowledgeEntry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, "- "+entry.Text)
	}
	return strings.Join(parts, "\n\n")
}
