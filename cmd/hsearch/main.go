// Package main is the hsearch CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/muarrikhyazka/hsearch/internal/cache"
	"github.com/muarrikhyazka/hsearch/internal/catalog"
	"github.com/muarrikhyazka/hsearch/internal/config"
	"github.com/muarrikhyazka/hsearch/internal/embedding"
	"github.com/muarrikhyazka/hsearch/internal/keyword"
	"github.com/muarrikhyazka/hsearch/internal/models"
	"github.com/muarrikhyazka/hsearch/internal/search"
	"github.com/muarrikhyazka/hsearch/internal/server"
	"github.com/muarrikhyazka/hsearch/internal/synonym"
	"github.com/muarrikhyazka/hsearch/internal/vector"
	"github.com/muarrikhyazka/hsearch/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/hsearch/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used instead. Returns the config and the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "suggest":
		runSuggest()
	case "import":
		runImport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("hsearch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Catalog.SynonymTablePath != "" {
		go func() {
			if err := synonym.Watch(watchCtx, cfg.Catalog.SynonymTablePath, components.Expander, logger); err != nil {
				logger.Warn("synonym table watch unavailable", zap.Error(err))
			}
		}()
	}

	srv := server.NewServer(components.Engine, components.Store, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if cfg.Catalog.VectorIndexPath != "" && components.Vectors != nil {
		if err := components.Vectors.Save(cfg.Catalog.VectorIndexPath); err != nil {
			logger.Warn("vector index save failed",
				zap.String("path", cfg.Catalog.VectorIndexPath), zap.Error(err))
		}
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildQuery joins all positional args with spaces so multi-word queries work
// the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// reorderArgs moves flags that appear after the query to the front so that
// flag.Parse() sees them. Go's flag package stops at the first non-flag
// argument.
func reorderArgs(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = direct catalog access)")
	category := fs.String("category", "", "filter by category")
	language := fs.String("language", "auto", "query language hint: en, id, or auto")
	limit := fs.Int("limit", 0, "number of results (0 = configured default)")
	enhanced := fs.Bool("enhanced", true, "enable typo correction, fuzzy and semantic ranking")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(reorderArgs(os.Args[2:]))

	queryStr := buildQuery(fs.Args())
	if queryStr == "" {
		fmt.Println("Usage: hsearch search [flags] <query>")
		os.Exit(1)
	}

	query := models.SearchQuery{
		Query:    queryStr,
		Category: *category,
		Language: *language,
		Enhanced: *enhanced,
		Limit:    *limit,
	}

	var response *models.SearchResponse
	if *serverURL != "" {
		resp, err := searchViaHTTP(*serverURL, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		response = resp
	} else {
		components := directComponents(*configPath)
		defer components.Close()
		resp, err := components.Engine.Search(context.Background(), query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		response = resp
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		printSearchResults(response)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func printSearchResults(resp *models.SearchResponse) {
	if resp.CorrectedQuery != "" {
		fmt.Printf("Showing results for %q\n", resp.CorrectedQuery)
	}
	if len(resp.Results) == 0 {
		fmt.Println("No results.")
		return
	}
	for _, r := range resp.Results {
		desc := r.Entry.DescriptionEN
		if desc == "" {
			desc = r.Entry.DescriptionID
		}
		fmt.Printf("%2d. %-10s %.3f  %s\n", r.Rank, r.Entry.Code, r.Scores.Fused, desc)
	}
	fmt.Printf("\n%d result(s) in %dms [%s]\n",
		resp.TotalCount, resp.ElapsedMS, strings.Join(resp.FeaturesUsed, ", "))
}

func searchViaHTTP(serverURL string, query models.SearchQuery) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runSuggest() {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = direct catalog access)")
	category := fs.String("category", "", "filter by category")
	limit := fs.Int("limit", 0, "number of suggestions (0 = configured default)")
	_ = fs.Parse(reorderArgs(os.Args[2:]))

	fragment := buildQuery(fs.Args())
	if fragment == "" {
		fmt.Println("Usage: hsearch suggest [flags] <fragment>")
		os.Exit(1)
	}

	var suggestions []string
	if *serverURL != "" {
		body, _ := json.Marshal(models.SuggestRequest{Query: fragment, Category: *category, Limit: *limit})
		resp, err := http.Post(*serverURL+"/api/suggestions", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out models.SuggestResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
			os.Exit(1)
		}
		suggestions = out.Suggestions
	} else {
		components := directComponents(*configPath)
		defer components.Close()
		got, err := components.Engine.Suggest(context.Background(), fragment, *category, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Suggest failed: %v\n", err)
			os.Exit(1)
		}
		suggestions = got
	}

	for _, s := range suggestions {
		fmt.Println(s)
	}
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	workers := fs.Int("workers", 4, "parallel embedding workers")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: hsearch import [flags] <dataset.csv|dataset.xlsx>")
		os.Exit(1)
	}
	datasetPath := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Printf("Failed to open catalog store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	embedder := openEmbedder(cfg, logger)
	if embedder != nil {
		defer embedder.Close()
	}

	loader := catalog.NewLoader(store, embedder, *workers)
	n, err := loader.Import(ctx, datasetPath)
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d entries from %s\n", n, datasetPath)

	// Rebuild the retrieval indexes so the next server start serves the new
	// snapshot instead of a stale one.
	entries, err := store.All(ctx)
	if err != nil {
		fmt.Printf("Failed to reload catalog: %v\n", err)
		os.Exit(1)
	}

	index, err := keyword.NewBleveIndex(cfg.Catalog.BleveIndexPath)
	if err != nil {
		fmt.Printf("Failed to open keyword index: %v\n", err)
		os.Exit(1)
	}
	defer index.Close()
	if err := index.IndexAll(ctx, entries); err != nil {
		fmt.Printf("Failed to rebuild keyword index: %v\n", err)
		os.Exit(1)
	}

	vectors, err := vector.NewMemoryIndex(cfg.Embedding.Dimensions)
	if err != nil {
		fmt.Printf("Failed to create vector index: %v\n", err)
		os.Exit(1)
	}
	var codes []string
	var vecs [][]float32
	for _, e := range entries {
		if len(e.EmbeddingCombined) > 0 {
			codes = append(codes, e.Code)
			vecs = append(vecs, e.EmbeddingCombined)
		}
	}
	if len(codes) > 0 {
		if err := vectors.Add(ctx, codes, vecs); err != nil {
			fmt.Printf("Failed to fill vector index: %v\n", err)
			os.Exit(1)
		}
	}
	if cfg.Catalog.VectorIndexPath != "" {
		if err := vectors.Save(cfg.Catalog.VectorIndexPath); err != nil {
			fmt.Printf("Failed to save vector index: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Indexes rebuilt (%d keyword docs, %d vectors)\n", len(entries), len(codes))
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = direct catalog access)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status map[string]any
	if *serverURL != "" {
		resp, err := http.Get(*serverURL + "/api/status")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		components := directComponents(*configPath)
		defer components.Close()
		s := components.Engine.Status()
		status = map[string]any{
			"catalog_count":   s.CatalogCount,
			"vocabulary_size": s.VocabularySize,
			"semantic_ready":  s.SemanticReady,
			"cache_enabled":   s.CacheEnabled,
			"features":        s.Features,
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("catalog_count:    %v\n", status["catalog_count"])
		fmt.Printf("vocabulary_size:  %v\n", status["vocabulary_size"])
		fmt.Printf("semantic_ready:   %v\n", status["semantic_ready"])
		fmt.Printf("cache_enabled:    %v\n", status["cache_enabled"])
		fmt.Printf("features:         %v\n", status["features"])
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Store    catalog.Store
	Embedder embedding.Embedder
	Vectors  *vector.MemoryIndex
	Index    keyword.CatalogIndex
	Cache    *cache.ResultCache
	Expander *synonym.Expander
	Engine   *search.Engine
}

func (c *Components) Close() {
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.Index != nil {
		_ = c.Index.Close()
	}
	if c.Vectors != nil {
		_ = c.Vectors.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func openStore(ctx context.Context, cfg *config.Config) (catalog.Store, error) {
	switch cfg.Catalog.Driver {
	case "postgres":
		return catalog.NewPostgresStore(ctx, cfg.Catalog.DSN)
	case "memory":
		return catalog.NewMemoryStore(), nil
	default:
		return catalog.NewSQLiteStore(cfg.Catalog.DatabasePath)
	}
}

// openEmbedder returns the ONNX embedder, or nil when the model cannot be
// loaded. A nil embedder disables semantic ranking; every other signal keeps
// working.
func openEmbedder(cfg *config.Config, logger *zap.Logger) embedding.Embedder {
	embedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		logger.Warn("semantic ranking disabled",
			zap.String("model_path", cfg.Embedding.ModelPath), zap.Error(err))
		return nil
	}
	return embedder
}

func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog store: %w", err)
	}

	embedder := openEmbedder(cfg, logger)

	vectors, err := vector.NewMemoryIndex(cfg.Embedding.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector index: %w", err)
	}
	if cfg.Catalog.VectorIndexPath != "" {
		if loadErr := vectors.Load(cfg.Catalog.VectorIndexPath); loadErr != nil {
			logger.Warn("vector index load skipped",
				zap.String("path", cfg.Catalog.VectorIndexPath), zap.Error(loadErr))
		}
	}

	index, err := keyword.NewBleveIndex(cfg.Catalog.BleveIndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyword index: %w", err)
	}

	table, err := synonym.LoadTable(cfg.Catalog.SynonymTablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load synonym table: %w", err)
	}
	expander := synonym.NewExpander(table)

	var resultCache *cache.ResultCache
	if cfg.Cache.EnabledOrDefault() {
		resultCache, err = cache.New(cfg.Cache.Dir, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("failed to open result cache: %w", err)
		}
	}

	engine, err := search.NewEngine(ctx, store, index, vectors, embedder, expander, resultCache, cfg.Search, logger)
	if err != nil {
		return nil, err
	}

	return &Components{
		Store:    store,
		Embedder: embedder,
		Vectors:  vectors,
		Index:    index,
		Cache:    resultCache,
		Expander: expander,
		Engine:   engine,
	}, nil
}

// directComponents builds components for one-shot CLI commands that bypass
// the HTTP server.
func directComponents(configPath string) *Components {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return components
}

func printUsage() {
	fmt.Println(`hsearch - bilingual HS code search engine

Usage:
  hsearch server [flags]              Start the HTTP server
  hsearch search [flags] <query>      Search HS codes
  hsearch suggest [flags] <fragment>  Autocomplete suggestions
  hsearch import [flags] <dataset>    Import a catalog dataset (.csv or .xlsx)
  hsearch status [flags]              Show engine status
  hsearch version                     Show version
  hsearch help                        Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/hsearch/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string     Config file path (direct mode)
  --server string     Server URL (default: http://localhost:8080). Use --server "" for direct catalog access.
  --category string   Filter by category
  --language string   Query language hint: en, id, or auto (default: auto)
  --limit int         Number of results
  --enhanced          Enable typo correction, fuzzy and semantic ranking (default: true)
  --output string     Output format: text or json (default: text)

Import Flags:
  --config string    Config file path
  --workers int      Parallel embedding workers (default: 4)

Examples:
  hsearch server
  hsearch search laptop komputer
  hsearch search --category electronics --enhanced=false "portable computer"
  hsearch suggest comp
  hsearch import hs_codes.xlsx
  hsearch status --output json`)
}
