// Package config provides configuration loading and structs for the hsearch server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Cache     CacheConfig     `yaml:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// RequestTimeoutSeconds bounds each request; partial work past the
	// deadline is abandoned.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

// CatalogConfig holds catalog store and index settings.
type CatalogConfig struct {
	// Driver selects the store backend: "sqlite", "postgres", or "memory".
	Driver string `yaml:"driver"`
	// DSN is the Postgres connection string when Driver is "postgres".
	DSN string `yaml:"dsn"`
	// DatabasePath is the SQLite file when Driver is "sqlite".
	DatabasePath    string `yaml:"database_path"`
	BleveIndexPath  string `yaml:"bleve_index_path"`
	VectorIndexPath string `yaml:"vector_index_path"`
	// SynonymTablePath is an optional YAML file merged over the built-in
	// bilingual synonym table and hot-reloaded on change.
	SynonymTablePath string `yaml:"synonym_table_path"`
}

// EmbeddingConfig holds ONNX embedder settings.
type EmbeddingConfig struct {
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
}

// FusionWeights are the per-signal weights of the fused ranking score.
// They are expected to sum to 1; Normalize rescales when they do not.
type FusionWeights struct {
	Exact    float64 `yaml:"exact"`
	Fuzzy    float64 `yaml:"fuzzy"`
	Semantic float64 `yaml:"semantic"`
	Lexical  float64 `yaml:"lexical"`
}

// Normalize rescales the weights to sum to 1. Zero-sum weights are left
// unchanged (the defaults apply instead).
func (w *FusionWeights) Normalize() {
	sum := w.Exact + w.Fuzzy + w.Semantic + w.Lexical
	if sum <= 0 {
		return
	}
	w.Exact /= sum
	w.Fuzzy /= sum
	w.Semantic /= sum
	w.Lexical /= sum
}

// SearchConfig holds ranking and retrieval tunables.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
	// TopKCandidates caps how many candidates each retrieval path contributes.
	TopKCandidates int           `yaml:"top_k_candidates"`
	Weights        FusionWeights `yaml:"weights"`
	// TypoMaxDistanceShort applies to tokens of at most TypoShortTokenLen
	// runes; TypoMaxDistanceLong to the rest.
	TypoMaxDistanceShort int `yaml:"typo_max_distance_short"`
	TypoMaxDistanceLong  int `yaml:"typo_max_distance_long"`
	TypoShortTokenLen    int `yaml:"typo_short_token_len"`
	// DefaultEnhanced controls whether fuzzy/semantic/typo features are on
	// when the request does not say.
	DefaultEnhanced  *bool `yaml:"default_enhanced"`
	SuggestionLimit  int   `yaml:"suggestion_limit"`
	MinSuggestionLen int   `yaml:"min_suggestion_len"`
}

// EnhancedOrDefault returns the enhancement default; true when unset.
func (s *SearchConfig) EnhancedOrDefault() bool {
	if s.DefaultEnhanced != nil {
		return *s.DefaultEnhanced
	}
	return true
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Enabled *bool `yaml:"enabled"`
	// Dir is the badger directory; empty means in-memory.
	Dir        string `yaml:"dir"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// EnabledOrDefault returns whether the cache is on; true when unset.
func (c *CacheConfig) EnabledOrDefault() bool {
	if c.Enabled != nil {
		return *c.Enabled
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Catalog.DatabasePath = expandPath(cfg.Catalog.DatabasePath, configDir)
	cfg.Catalog.BleveIndexPath = expandPath(cfg.Catalog.BleveIndexPath, configDir)
	cfg.Catalog.VectorIndexPath = expandPath(cfg.Catalog.VectorIndexPath, configDir)
	if cfg.Catalog.SynonymTablePath != "" {
		cfg.Catalog.SynonymTablePath = expandPath(cfg.Catalog.SynonymTablePath, configDir)
	}
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	if cfg.Cache.Dir != "" {
		cfg.Cache.Dir = expandPath(cfg.Cache.Dir, configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
