package models

// Program identifies one of the two master's programs the advisor covers.
type Program string

const (
	// ProgramAI is "Искусственный интеллект" (ML engineering track).
	ProgramAI Program = "ai"
	// ProgramAIProduct is "Управление ИИ-продуктами/AI Product".
	ProgramAIProduct Program = "ai_product"
)

// Valid reports whether p is one of the known programs.
func (p Program) Valid() bool {
	return p == ProgramAI || p == ProgramAIProduct
}

// KnowledgeEntry is one retrievable fact about a program. Entries are
// immutable once loaded; their position in the corpus is the address of the
// matching vector in the index, so corpus and index are always rebuilt
// together.
type KnowledgeEntry struct {
	ID       string  `json:"id" db:"id"`
	Text     string  `json:"text" db:"text"`
	Program  Program `json:"program" db:"program"`
	Category string  `json:"type" db:"category"`
}
