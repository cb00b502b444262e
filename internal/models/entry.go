// Package models defines core data structures for catalog entries, queries, and search results.
package models

// CatalogEntry is one coded HS classification record. Entries are created in
// bulk at import time and never mutated afterwards; the search engine treats
// the catalog as an immutable shared snapshot.
type CatalogEntry struct {
	Code          string `json:"hs_code" db:"hs_code"`
	DescriptionEN string `json:"description_en" db:"description_en"`
	DescriptionID string `json:"description_id,omitempty" db:"description_id"`

	// Hierarchy labels. Empty means absent; leaf entries may inherit ancestor
	// text for display, never for scoring.
	Section          string `json:"section,omitempty" db:"section"`
	SectionNameEN    string `json:"section_name,omitempty" db:"section_name"`
	SectionNameID    string `json:"section_name_id,omitempty" db:"section_name_id"`
	Chapter          string `json:"chapter,omitempty" db:"chapter"`
	ChapterDescEN    string `json:"chapter_desc,omitempty" db:"chapter_desc"`
	ChapterDescID    string `json:"chapter_desc_id,omitempty" db:"chapter_desc_id"`
	Heading          string `json:"heading,omitempty" db:"heading"`
	HeadingDescEN    string `json:"heading_desc,omitempty" db:"heading_desc"`
	HeadingDescID    string `json:"heading_desc_id,omitempty" db:"heading_desc_id"`
	Subheading       string `json:"subheading,omitempty" db:"subheading"`
	SubheadingDescEN string `json:"subheading_desc,omitempty" db:"subheading_desc"`
	SubheadingDescID string `json:"subheading_desc_id,omitempty" db:"subheading_desc_id"`

	Level    int    `json:"level,omitempty" db:"level"`
	Category string `json:"category,omitempty" db:"category"`

	// Derived at import time.
	KeywordsEN []string `json:"-" db:"keywords_en"`
	KeywordsID []string `json:"-" db:"keywords_id"`

	// Fixed-length embeddings; nil when the semantic subsystem was not
	// available at import time.
	EmbeddingEN       []float32 `json:"-" db:"embedding_en"`
	EmbeddingID       []float32 `json:"-" db:"embedding_id"`
	EmbeddingCombined []float32 `json:"-" db:"embedding_combined"`
}

// CategoryInfo describes one catalog category for the categories endpoint.
type CategoryInfo struct {
	Key string `json:"key"`
	// Name is the Indonesian display name, matching the upstream dataset UI.
	Name string `json:"name"`
	// SemanticEnabled reports whether semantic enhancement is meaningful for
	// the category (entries carry embeddings).
	SemanticEnabled bool `json:"semantic_enabled"`
}
