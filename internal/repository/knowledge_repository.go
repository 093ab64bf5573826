package repository

import (
	"context"
	"fmt"
	"time"

	"abit-advisor/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// KnowledgeRepository stores the knowledge base in Postgres. The engine
// loads the whole corpus once at startup; the table is written only by
// cmd/seed. The position column preserves corpus order, which the vector
// index relies on.
type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the knowledge_base table when it does not exist yet.
// Called by cmd/seed so a fresh database needs no manual migration.
func (r *KnowledgeRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS knowledge_base (
			id UUID PRIMARY KEY,
			entry_id TEXT NOT NULL UNIQUE,
			position INT NOT NULL,
			text TEXT NOT NULL,
			program TEXT NOT NULL,
			category TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create knowledge_base table: %w", err)
	}
	return nil
}

// Replace wipes the table and inserts entries in order. Done in a single
// transaction so readers never observe a partially rebuilt corpus.
func (r *KnowledgeRepository) Replace(ctx context.Context, entries []*models.KnowledgeEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM knowledge_base"); err != nil {
		return fmt.Errorf("failed to clear knowledge base: %w", err)
	}

	now := time.Now()
	for position, entry := range entries {
		query := squirrel.Insert("knowledge_base").
			Columns("id", "entry_id", "position", "text", "program", "category", "created_at").
			Values(uuid.New(), entry.ID, position, entry.Text, entry.Program, entry.Category, now).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit knowledge base: %w", err)
	}

	r.logger.Info("Knowledge base replaced", zap.Int("entries", len(entries)))
	return nil
}

// ListAll returns every entry in corpus order.
func (r *KnowledgeRepository) ListAll(ctx context.Context) ([]*models.KnowledgeEntry, error) {
	query := squirrel.Select("entry_id", "text", "program", "category").
		From("knowledge_base").
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge base: %w", err)
	}
	defer rows.Close()

	var entries []*models.KnowledgeEntry
	for rows.Next() {
		var entry models.KnowledgeEntry
		if err := rows.Scan(&entry.ID, &entry.Text, &entry.Program, &entry.Category); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read knowledge base rows: %w", err)
	}

	return entries, nil
}
