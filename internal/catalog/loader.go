package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/muarrikhyazka/hsearch/internal/embedding"
	"github.com/muarrikhyazka/hsearch/internal/models"
	"github.com/muarrikhyazka/hsearch/pkg/utils"

	"github.com/xuri/excelize/v2"
)

// Loader reads a prepared dataset file (.xlsx or .csv) and writes catalog
// entries to a Store, deriving categories, keyword sets, and embeddings.
type Loader struct {
	store    Store
	embedder embedding.Embedder
	workers  int
}

// NewLoader creates a loader. embedder may be nil; entries then carry no
// embeddings and semantic search degrades gracefully. workers bounds the
// embedding pool size; values below 1 mean 4.
func NewLoader(store Store, embedder embedding.Embedder, workers int) *Loader {
	if workers < 1 {
		workers = 4
	}
	return &Loader{store: store, embedder: embedder, workers: workers}
}

// Import reads the dataset at path and bulk-writes the derived entries.
// Returns the number of entries imported.
func (l *Loader) Import(ctx context.Context, path string) (int, error) {
	rows, err := readDataset(path)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("dataset %s has no data rows", path)
	}

	entries := make([]*models.CatalogEntry, 0, len(rows))
	for _, row := range rows {
		e, ok := entryFromRow(row)
		if !ok {
			continue
		}
		entries = append(entries, e)
	}

	if l.embedder != nil {
		if err := l.embedAll(ctx, entries); err != nil {
			return 0, fmt.Errorf("failed to embed catalog: %w", err)
		}
	}

	if err := l.store.BulkInsert(ctx, entries); err != nil {
		return 0, fmt.Errorf("failed to write catalog: %w", err)
	}
	return len(entries), nil
}

// entryFromRow builds one entry from a header-keyed row, deriving category,
// level, and keyword sets. Rows without a code or English description are
// skipped.
func entryFromRow(row map[string]string) (*models.CatalogEntry, bool) {
	code := strings.TrimSpace(row["hs_code"])
	descEN := strings.TrimSpace(row["description"])
	if descEN == "" {
		descEN = strings.TrimSpace(row["description_en"])
	}
	if code == "" || descEN == "" {
		return nil, false
	}

	e := &models.CatalogEntry{
		Code:             code,
		DescriptionEN:    descEN,
		DescriptionID:    strings.TrimSpace(row["description_id"]),
		Section:          strings.TrimSpace(row["section"]),
		SectionNameEN:    strings.TrimSpace(row["section_name"]),
		SectionNameID:    strings.TrimSpace(row["section_name_id"]),
		Chapter:          strings.TrimSpace(row["chapter"]),
		ChapterDescEN:    strings.TrimSpace(row["chapter_desc"]),
		ChapterDescID:    strings.TrimSpace(row["chapter_desc_id"]),
		Heading:          strings.TrimSpace(row["heading"]),
		HeadingDescEN:    strings.TrimSpace(row["heading_desc"]),
		HeadingDescID:    strings.TrimSpace(row["heading_desc_id"]),
		Subheading:       strings.TrimSpace(row["subheading"]),
		SubheadingDescEN: strings.TrimSpace(row["subheading_desc"]),
		SubheadingDescID: strings.TrimSpace(row["subheading_desc_id"]),
	}
	e.Category = Categorize(e.DescriptionEN)
	e.Level = deriveLevel(e)
	e.KeywordsEN = DeriveKeywords(e.DescriptionEN, "en")
	if e.DescriptionID != "" {
		e.KeywordsID = DeriveKeywords(e.DescriptionID, "id")
	}
	return e, true
}

// deriveLevel infers the hierarchy level from which identifiers are present:
// 6 for subheadings, then 4, 2, or 1 walking up.
func deriveLevel(e *models.CatalogEntry) int {
	switch {
	case e.Subheading != "":
		return 6
	case e.Heading != "":
		return 4
	case e.Chapter != "":
		return 2
	default:
		return 1
	}
}

// embedAll computes per-language and combined embeddings for all entries
// using a bounded worker pool. The first error wins; remaining tasks still
// drain before return.
func (l *Loader) embedAll(ctx context.Context, entries []*models.CatalogEntry) error {
	pool, err := ants.NewPool(l.workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, e := range entries {
		e := e
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := l.embedEntry(ctx, e); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
	}
	wg.Wait()
	return firstErr
}

func (l *Loader) embedEntry(ctx context.Context, e *models.CatalogEntry) error {
	embEN, err := l.embedder.Embed(ctx, e.DescriptionEN)
	if err != nil {
		return err
	}
	e.EmbeddingEN = embEN

	if e.DescriptionID != "" {
		embID, err := l.embedder.Embed(ctx, e.DescriptionID)
		if err != nil {
			return err
		}
		e.EmbeddingID = embID
		e.EmbeddingCombined = averageVectors(embEN, embID)
	} else {
		e.EmbeddingCombined = append([]float32(nil), embEN...)
	}
	utils.NormalizeL2(e.EmbeddingCombined)
	return nil
}

// averageVectors returns the element-wise mean of two equal-length vectors.
// Mismatched lengths fall back to the first vector.
func averageVectors(a, b []float32) []float32 {
	if len(a) != len(b) {
		return append([]float32(nil), a...)
	}
	out := make([]float32, len(a))
	for i := range a {
		out[i] = (a[i] + b[i]) / 2
	}
	return out
}

// readDataset reads the rows of a .csv or .xlsx dataset keyed by the header row.
func readDataset(path string) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", path)
	}
}

func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset row: %w", err)
		}
		rows = append(rows, rowMap(header, record))
	}
	return rows, nil
}

func readXLSX(path string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("dataset %s has no sheets", path)
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(raw) < 1 {
		return nil, nil
	}
	header := raw[0]
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	rows := make([]map[string]string, 0, len(raw)-1)
	for _, record := range raw[1:] {
		rows = append(rows, rowMap(header, record))
	}
	return rows, nil
}

func rowMap(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, key := range header {
		if i < len(record) {
			row[key] = record[i]
		}
	}
	return row
}
