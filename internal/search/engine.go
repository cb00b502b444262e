// Package search implements the multi-signal ranking pipeline: normalize,
// correct, expand, retrieve, score, fuse, assemble.
package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/muarrikhyazka/hsearch/internal/cache"
	"github.com/muarrikhyazka/hsearch/internal/catalog"
	"github.com/muarrikhyazka/hsearch/internal/config"
	"github.com/muarrikhyazka/hsearch/internal/embedding"
	"github.com/muarrikhyazka/hsearch/internal/keyword"
	"github.com/muarrikhyazka/hsearch/internal/models"
	"github.com/muarrikhyazka/hsearch/internal/synonym"
	"github.com/muarrikhyazka/hsearch/internal/vector"
	"github.com/muarrikhyazka/hsearch/pkg/utils"
)

// Feature names reported in responses and status payloads.
const (
	FeatureLexical  = "lexical_search"
	FeatureFuzzy    = "fuzzy_matching"
	FeatureTypo     = "typo_correction"
	FeatureSynonym  = "synonym_expansion"
	FeatureSemantic = "semantic_search"
)

// Engine runs search requests against an immutable catalog snapshot. All
// tunables arrive through config at construction; the engine holds no
// mutable global state.
type Engine struct {
	entries   map[string]*models.CatalogEntry
	index     keyword.CatalogIndex
	vectors   vector.Index
	embedder  embedding.Embedder
	vocab     *keyword.Vocabulary
	corrector *keyword.TypoCorrector
	expander  *synonym.Expander
	cache     *cache.ResultCache
	cfg       config.SearchConfig
	logger    *zap.Logger
}

// NewEngine loads the catalog snapshot from store and prepares the
// vocabulary, corrector, and retrieval indexes. embedder, vectors, cache,
// and expander may be nil; the affected features degrade.
func NewEngine(
	ctx context.Context,
	store catalog.Store,
	index keyword.CatalogIndex,
	vectors vector.Index,
	embedder embedding.Embedder,
	expander *synonym.Expander,
	resultCache *cache.ResultCache,
	cfg config.SearchConfig,
	logger *zap.Logger,
) (*Engine, error) {
	all, err := store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	entries := make(map[string]*models.CatalogEntry, len(all))
	for _, e := range all {
		entries[e.Code] = e
	}

	vocab := keyword.BuildVocabulary(all)
	corrector := keyword.NewTypoCorrector(vocab,
		cfg.TypoMaxDistanceShort, cfg.TypoMaxDistanceLong, cfg.TypoShortTokenLen)

	count, err := index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect keyword index: %w", err)
	}
	if count == 0 {
		if err := index.IndexAll(ctx, all); err != nil {
			return nil, fmt.Errorf("failed to build keyword index: %w", err)
		}
	}

	if vectors != nil && vectors.Size() == 0 {
		codes := make([]string, 0, len(all))
		vecs := make([][]float32, 0, len(all))
		for _, e := range all {
			if len(e.EmbeddingCombined) > 0 {
				codes = append(codes, e.Code)
				vecs = append(vecs, e.EmbeddingCombined)
			}
		}
		if len(codes) > 0 {
			if err := vectors.Add(ctx, codes, vecs); err != nil {
				return nil, fmt.Errorf("failed to build vector index: %w", err)
			}
		}
	}

	logger.Info("search engine ready",
		zap.Int("entries", len(entries)),
		zap.Int("vocabulary", vocab.Len()),
		zap.Bool("semantic", embedder != nil && vectors != nil && vectors.Size() > 0),
	)

	return &Engine{
		entries:   entries,
		index:     index,
		vectors:   vectors,
		embedder:  embedder,
		vocab:     vocab,
		corrector: corrector,
		expander:  expander,
		cache:     resultCache,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// Search runs the full pipeline for one request.
func (e *Engine) Search(ctx context.Context, q models.SearchQuery) (*models.SearchResponse, error) {
	start := time.Now()

	if err := q.Validate(e.cfg.DefaultLimit, e.cfg.MaxLimit); err != nil {
		return nil, err
	}
	normalized := utils.Normalize(q.Query)
	tokens := utils.Tokenize(q.Query)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no tokens after normalization", models.ErrInvalidQuery)
	}

	cacheKey := cache.Key(normalized, q.Category, q.Limit, q.Enhanced)
	if e.cache != nil {
		if cached, ok := e.cache.Get(cacheKey); ok {
			return cached, nil
		}
	}

	features := []string{FeatureLexical}

	// Typo correction, only under the enhancement flag and only when the
	// vocabulary exists to correct against.
	correctedQuery := normalized
	var typoSuggestions []string
	if q.Enhanced && e.vocab.Len() > 0 {
		corrected, applied := e.corrector.Correct(tokens)
		tokens = corrected
		typoSuggestions = applied
		correctedQuery = keyword.JoinTokens(corrected)
		features = append(features, FeatureTypo)
	}

	expanded := tokens
	if e.expander != nil {
		expanded = e.expander.Expand(tokens)
		features = append(features, FeatureSynonym)
	}

	lexical, err := e.index.Search(ctx, expanded, q.Category, e.cfg.TopKCandidates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	lexScores := make(map[string]float64, len(lexical))
	maxLexical := 0.0
	for _, hit := range lexical {
		if _, known := e.entries[hit.Code]; !known {
			continue
		}
		lexScores[hit.Code] = hit.Score
		if hit.Score > maxLexical {
			maxLexical = hit.Score
		}
	}

	candidates := make(map[string]struct{}, len(lexScores))
	for code := range lexScores {
		candidates[code] = struct{}{}
	}

	// Semantic path: embed the corrected query and union in the nearest
	// entries. Failures degrade to lexical-only rather than failing the
	// request.
	queryEmbedding := e.embedQuery(ctx, correctedQuery, q.Enhanced)
	if queryEmbedding != nil {
		neighbors, err := e.vectors.Search(ctx, queryEmbedding, e.cfg.TopKCandidates)
		if err != nil {
			e.logger.Warn("vector search failed, degrading to lexical", zap.Error(err))
			queryEmbedding = nil
		} else {
			for _, n := range neighbors {
				entry, known := e.entries[n.Code]
				if !known {
					continue
				}
				if q.Category != "" && entry.Category != q.Category {
					continue
				}
				candidates[n.Code] = struct{}{}
			}
			features = append(features, FeatureSemantic)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	features = append(features, FeatureFuzzy)
	sc := newScorer(normalized, correctedQuery, queryEmbedding, maxLexical)

	results := make([]*models.SearchResult, 0, len(candidates))
	for code := range candidates {
		entry := e.entries[code]
		comps := sc.score(entry, lexScores[code])
		comps.Fused = fuse(&comps, e.cfg.Weights)
		results = append(results, &models.SearchResult{Entry: entry, Scores: comps})
	}
	sortResults(results)
	if len(results) > q.Limit {
		results = results[:q.Limit]
	}
	for i, r := range results {
		r.Rank = i + 1
	}

	resp := &models.SearchResponse{
		Results:         results,
		TotalCount:      len(results),
		Query:           q.Query,
		ExpandedTerms:   expanded,
		TypoSuggestions: typoSuggestions,
		Category:        q.Category,
		ElapsedMS:       time.Since(start).Milliseconds(),
		FeaturesUsed:    features,
	}
	if correctedQuery != normalized {
		resp.CorrectedQuery = correctedQuery
	}

	if e.cache != nil {
		if err := e.cache.Set(cacheKey, resp); err != nil {
			e.logger.Debug("result cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}

// embedQuery returns the query embedding, or nil when semantic search is off,
// unavailable, or failing for this request.
func (e *Engine) embedQuery(ctx context.Context, query string, enhanced bool) []float32 {
	if !enhanced || e.embedder == nil || e.vectors == nil || e.vectors.Size() == 0 {
		return nil
	}
	emb, err := e.embedder.Embed(ctx, query)
	if err != nil {
		e.logger.Warn("query embedding failed, degrading to lexical", zap.Error(err))
		return nil
	}
	return emb
}

// sortResults orders by fused score descending with deterministic
// tie-breaks: exact score descending, then shorter code, then code order.
func sortResults(results []*models.SearchResult) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Scores.Fused != b.Scores.Fused {
			return a.Scores.Fused > b.Scores.Fused
		}
		if a.Scores.Exact != b.Scores.Exact {
			return a.Scores.Exact > b.Scores.Exact
		}
		if len(a.Entry.Code) != len(b.Entry.Code) {
			return len(a.Entry.Code) < len(b.Entry.Code)
		}
		return a.Entry.Code < b.Entry.Code
	})
}

// EntryCount reports the size of the catalog snapshot, for status payloads.
func (e *Engine) EntryCount() int {
	return len(e.entries)
}
