package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"abit-advisor/internal/models"
)

// LoadCorpusFile reads the static JSON knowledge base produced by cmd/seed.
// The file holds an array of {id, text, program, type} objects; array order
// is the authoritative corpus order.
func LoadCorpusFile(path string) ([]*models.KnowledgeEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var entries []*models.KnowledgeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file %s: %w", path, err)
	}

	for i, entry := range entries {
		if entry.ID == "" || entry.Text == "" {
			return nil, fmt.Errorf("corpus entry %d is missing id or text", i)
		}
		if !entry.Program.Valid() {
			return nil, fmt.Errorf("corpus entry %s has unknown program %q", entry.ID, entry.Program)
		}
	}

	return entries, nil
}
