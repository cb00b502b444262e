package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/muarrikhyazka/hsearch/internal/models"
)

// SQLiteStore implements Store using a local SQLite file. It is the default
// backend for single-node deployments and tests against a real database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS hs_codes (
		hs_code TEXT PRIMARY KEY,
		description_en TEXT NOT NULL,
		description_id TEXT,
		section TEXT,
		section_name TEXT,
		section_name_id TEXT,
		chapter TEXT,
		chapter_desc TEXT,
		chapter_desc_id TEXT,
		heading TEXT,
		heading_desc TEXT,
		heading_desc_id TEXT,
		subheading TEXT,
		subheading_desc TEXT,
		subheading_desc_id TEXT,
		level INTEGER,
		category TEXT,
		keywords_en TEXT,
		keywords_id TEXT,
		embedding_en BLOB,
		embedding_id BLOB,
		embedding_combined BLOB
	);

	CREATE INDEX IF NOT EXISTS idx_hs_codes_category ON hs_codes(category);
	`
	_, err := db.Exec(schema)
	return err
}

const entryColumns = `hs_code, description_en, description_id,
	section, section_name, section_name_id,
	chapter, chapter_desc, chapter_desc_id,
	heading, heading_desc, heading_desc_id,
	subheading, subheading_desc, subheading_desc_id,
	level, category, keywords_en, keywords_id,
	embedding_en, embedding_id, embedding_combined`

func scanEntry(row interface{ Scan(...any) error }) (*models.CatalogEntry, error) {
	var e models.CatalogEntry
	var kwEN, kwID sql.NullString
	var embEN, embID, embCombined []byte
	err := row.Scan(
		&e.Code, &e.DescriptionEN, &e.DescriptionID,
		&e.Section, &e.SectionNameEN, &e.SectionNameID,
		&e.Chapter, &e.ChapterDescEN, &e.ChapterDescID,
		&e.Heading, &e.HeadingDescEN, &e.HeadingDescID,
		&e.Subheading, &e.SubheadingDescEN, &e.SubheadingDescID,
		&e.Level, &e.Category, &kwEN, &kwID,
		&embEN, &embID, &embCombined,
	)
	if err != nil {
		return nil, err
	}
	if kwEN.Valid && kwEN.String != "" {
		if err := json.Unmarshal([]byte(kwEN.String), &e.KeywordsEN); err != nil {
			return nil, fmt.Errorf("failed to unmarshal keywords_en for %s: %w", e.Code, err)
		}
	}
	if kwID.Valid && kwID.String != "" {
		if err := json.Unmarshal([]byte(kwID.String), &e.KeywordsID); err != nil {
			return nil, fmt.Errorf("failed to unmarshal keywords_id for %s: %w", e.Code, err)
		}
	}
	e.EmbeddingEN = bytesToEmbedding(embEN)
	e.EmbeddingID = bytesToEmbedding(embID)
	e.EmbeddingCombined = bytesToEmbedding(embCombined)
	return &e, nil
}

// All returns the full catalog ordered by code.
func (s *SQLiteStore) All(ctx context.Context) ([]*models.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM hs_codes ORDER BY hs_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.CatalogEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one entry by code.
func (s *SQLiteStore) Get(ctx context.Context, code string) (*models.CatalogEntry, error) {
	e, err := scanEntry(s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM hs_codes WHERE hs_code = ?`, code))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return e, err
}

// Categories reports the known categories with display names and whether any
// entry in the category carries a combined embedding.
func (s *SQLiteStore) Categories(ctx context.Context) ([]models.CategoryInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(embedding_combined) > 0
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
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hs_codes`).Scan(&count)
	return count, err
}

// BulkInsert writes entries in one transaction, replacing rows with the same code.
func (s *SQLiteStore) BulkInsert(ctx context.Context, entries []*models.CatalogEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO hs_codes (`+entryColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		kwEN, err := json.Marshal(e.KeywordsEN)
		if err != nil {
			return fmt.Errorf("failed to marshal keywords_en for %s: %w", e.Code, err)
		}
		kwID, err := json.Marshal(e.KeywordsID)
		if err != nil {
			return fmt.Errorf("failed to marshal keywords_id for %s: %w", e.Code, err)
		}
		if _, err := stmt.ExecContext(ctx,
			e.Code, e.DescriptionEN, e.DescriptionID,
			e.Section, e.SectionNameEN, e.SectionNameID,
			e.Chapter, e.ChapterDescEN, e.ChapterDescID,
			e.Heading, e.HeadingDescEN, e.HeadingDescID,
			e.Subheading, e.SubheadingDescEN, e.SubheadingDescID,
			e.Level, e.Category, string(kwEN), string(kwID),
			embeddingToBytes(e.EmbeddingEN), embeddingToBytes(e.EmbeddingID), embeddingToBytes(e.EmbeddingCombined),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
