package keyword

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

// BleveIndex implements CatalogIndex using Bleve.
type BleveIndex struct {
	index bleve.Index
}

// catalogDoc is the shape Bleve indexes per entry. Keywords from both
// languages share one field so a query in either language hits it.
type catalogDoc struct {
	Code          string `json:"code"`
	DescriptionEN string `json:"description_en"`
	DescriptionID string `json:"description_id"`
	Keywords      string `json:"keywords"`
	Category      string `json:"category"`
}

// NewBleveIndex creates or opens a Bleve index at path. An existing index is
// reused; remove the directory to force a rebuild after a mapping change.
// The standard analyzer is used deliberately: no stemming, so bilingual
// catalog terms match exactly as written.
func NewBleveIndex(path string) (*BleveIndex, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, newIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// NewMemoryBleveIndex creates an in-memory index for tests and demo mode.
func NewMemoryBleveIndex() (*BleveIndex, error) {
	index, err := bleve.NewMemOnly(newIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

func newIndexMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	textMapping := bleve.NewTextFieldMapping()
	textMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("description_en", textMapping)
	docMapping.AddFieldMappingsAt("description_id", textMapping)
	docMapping.AddFieldMappingsAt("keywords", textMapping)

	kwMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("code", kwMapping)
	docMapping.AddFieldMappingsAt("category", kwMapping)

	im.DefaultMapping = docMapping
	return im
}

func toDoc(e *models.CatalogEntry) catalogDoc {
	keywords := make([]string, 0, len(e.KeywordsEN)+len(e.KeywordsID))
	keywords = append(keywords, e.KeywordsEN...)
	keywords = append(keywords, e.KeywordsID...)
	return catalogDoc{
		Code:          e.Code,
		DescriptionEN: e.DescriptionEN,
		DescriptionID: e.DescriptionID,
		Keywords:      strings.Join(keywords, " "),
		Category:      e.Category,
	}
}

// Index adds or replaces one entry keyed by its code.
func (b *BleveIndex) Index(ctx context.Context, e *models.CatalogEntry) error {
	return b.index.Index(e.Code, toDoc(e))
}

// IndexAll adds or replaces entries in one batch.
func (b *BleveIndex) IndexAll(ctx context.Context, entries []*models.CatalogEntry) error {
	batch := b.index.NewBatch()
	for _, e := range entries {
		if err := batch.Index(e.Code, toDoc(e)); err != nil {
			return fmt.Errorf("failed to batch entry %s: %w", e.Code, err)
		}
	}
	return b.index.Batch(batch)
}

// Search runs a disjunction of per-term match queries over descriptions and
// keywords. A non-empty category becomes a conjunction with a term query so
// filtering happens inside the index, before scoring.
func (b *BleveIndex) Search(ctx context.Context, terms []string, category string, limit int) ([]Hit, error) {
	if len(terms) == 0 || limit <= 0 {
		return nil, nil
	}

	perTerm := make([]blevequery.Query, 0, len(terms))
	for _, term := range terms {
		mq := bleve.NewMatchQuery(term)
		perTerm = append(perTerm, mq)
	}
	var q blevequery.Query = bleve.NewDisjunctionQuery(perTerm...)

	if category != "" {
		tq := bleve.NewTermQuery(category)
		tq.SetField("category")
		q = bleve.NewConjunctionQuery(q, tq)
	}

	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	hits := make([]Hit, len(results.Hits))
	for i, hit := range results.Hits {
		hits[i] = Hit{Code: hit.ID, Score: hit.Score}
	}
	return hits, nil
}

// Delete removes one entry by code.
func (b *BleveIndex) Delete(ctx context.Context, code string) error {
	return b.index.Delete(code)
}

// DocCount returns the number of indexed entries.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the underlying index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
