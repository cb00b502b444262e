package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

// PostgresStore implements Store over the production hs_codes schema, where
// embeddings live in pgvector columns. The engine only reads from it; the
// upstream import pipeline owns the schema.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database at dsn and verifies the connection.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

const pgEntryColumns = `hs_code, description_en, COALESCE(description_id, ''),
	COALESCE(section, ''), COALESCE(section_name, ''), COALESCE(section_name_id, ''),
	COALESCE(chapter, ''), COALESCE(chapter_desc, ''), COALESCE(chapter_desc_id, ''),
	COALESCE(heading, ''), COALESCE(heading_desc, ''), COALESCE(heading_desc_id, ''),
	COALESCE(subheading, ''), COALESCE(subheading_desc, ''), COALESCE(subheading_desc_id, ''),
	COALESCE(level, 0), COALESCE(category, ''),
	COALESCE(keywords_en, '{}'), COALESCE(keywords_id, '{}'),
	embedding_en::text, embedding_id::text, embedding_combined::text`

func scanPgEntry(row pgx.Row) (*models.CatalogEntry, error) {
	var e models.CatalogEntry
	var embEN, embID, embCombined *string
	err := row.Scan(
		&e.Code, &e.DescriptionEN, &e.DescriptionID,
		&e.Section, &e.SectionNameEN, &e.SectionNameID,
		&e.Chapter, &e.ChapterDescEN, &e.ChapterDescID,
		&e.Heading, &e.HeadingDescEN, &e.HeadingDescID,
		&e.Subheading, &e.SubheadingDescEN, &e.SubheadingDescID,
		&e.Level, &e.Category, &e.KeywordsEN, &e.KeywordsID,
		&embEN, &embID, &embCombined,
	)
	if err != nil {
		return nil, err
	}
	if e.EmbeddingEN, err = parseVectorText(embEN); err != nil {
		return nil, fmt.Errorf("bad embedding_en for %s: %w", e.Code, err)
	}
	if e.EmbeddingID, err = parseVectorText(embID); err != nil {
		return nil, fmt.Errorf("bad embedding_id for %s: %w", e.Code, err)
	}
	if e.EmbeddingCombined, err = parseVectorText(embCombined); err != nil {
		return nil, fmt.Errorf("bad embedding_combined for %s: %w", e.Code, err)
	}
	return &e, nil
}

// parseVectorText decodes pgvector's text representation "[0.1,0.2,...]".
// Nil input (NULL column) yields a nil vector.
func parseVectorText(s *string) ([]float32, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	text := strings.TrimSpace(*s)
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, fmt.Errorf("not a vector literal: %q", text)
	}
	parts := strings.Split(text[1:len(text)-1], ",")
	vec := make([]float32, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, err
		}
		vec = append(vec, float32(f))
	}
	return vec, nil
}

// All returns the full catalog ordered by code.
func (s *PostgresStore) All(ctx context.Context) ([]*models.CatalogEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgEntryColumns+` FROM hs_codes ORDER BY hs_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.CatalogEntry
	for rows.Next() {
		e, err := scanPgEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one entry by code.
func (s *PostgresStore) Get(ctx context.Context, code string) (*models.CatalogEntry, error) {
	e, err := scanPgEntry(s.pool.QueryRow(ctx,
		`SELECT `+pgEntryColumns+` FROM hs_codes WHERE hs_code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return e, err
}

// Categories reports the known categories with display names and whether any
// entry in the category carries a combined embedding.
func (s *PostgresStore) Categories(ctx context.Context) ([]models.CategoryInfo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT COALESCE(category, ''), COUNT(embedding_combined) > 0
		 FROM hs_codes GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	semantic := make(map[string]bool)
	for rows.Next() {
		var key string
		var hasEmbeddings bool
		if err := rows.Scan(&key, &hasEmbeddings); err != nil {
			return nil, err
		}
		semantic[key] = hasEmbeddings
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	infos := make([]models.CategoryInfo, 0, len(semantic))
	for _, key := range CategoryKeys() {
		if _, present := semantic[key]; !present {
			continue
		}
		infos = append(infos, models.CategoryInfo{
			Key:             key,
			Name:            CategoryName(key),
			SemanticEnabled: semantic[key],
		})
	}
	return infos, nil
}

// Count returns the number of catalog entries.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM hs_codes`).Scan(&count)
	return count, err
}

// BulkInsert writes entries, replacing rows with the same code. Embeddings
// are written as pgvector literals.
func (s *PostgresStore) BulkInsert(ctx context.Context, entries []*models.CatalogEntry) error {
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(
			`INSERT INTO hs_codes (
				hs_code, description_en, description_id,
				section, section_name, section_name_id,
				chapter, chapter_desc, chapter_desc_id,
				heading, heading_desc, heading_desc_id,
				subheading, subheading_desc, subheading_desc_id,
				level, category, keywords_en, keywords_id,
				embedding_en, embedding_id, embedding_combined)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
				 $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
			 ON CONFLICT (hs_code) DO UPDATE SET
				description_en = EXCLUDED.description_en,
				description_id = EXCLUDED.description_id,
				category = EXCLUDED.category,
				keywords_en = EXCLUDED.keywords_en,
				keywords_id = EXCLUDED.keywords_id,
				embedding_en = EXCLUDED.embedding_en,
				embedding_id = EXCLUDED.embedding_id,
				embedding_combined = EXCLUDED.embedding_combined`,
			e.Code, e.DescriptionEN, nullable(e.DescriptionID),
			nullable(e.Section), nullable(e.SectionNameEN), nullable(e.SectionNameID),
			nullable(e.Chapter), nullable(e.ChapterDescEN), nullable(e.ChapterDescID),
			nullable(e.Heading), nullable(e.HeadingDescEN), nullable(e.HeadingDescID),
			nullable(e.Subheading), nullable(e.SubheadingDescEN), nullable(e.SubheadingDescID),
			e.Level, e.Category, e.KeywordsEN, e.KeywordsID,
			vectorLiteral(e.EmbeddingEN), vectorLiteral(e.EmbeddingID), vectorLiteral(e.EmbeddingCombined),
		)
	}
	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// vectorLiteral renders a vector in pgvector text form, or nil for NULL.
func vectorLiteral(v []float32) *string {
	if len(v) == 0 {
		return nil
	}
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(float64(f), 'f', -1, 32)
	}
	lit := "[" + strings.Join(parts, ",") + "]"
	return &lit
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
