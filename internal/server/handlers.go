package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/muarrikhyazka/hsearch/internal/models"
	"github.com/muarrikhyazka/hsearch/internal/search"
)

// searchRequest is the wire form of a search. Enhanced is a pointer so an
// omitted field falls back to the configured default instead of false.
type searchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Language string `json:"language"`
	Enhanced *bool  `json:"enhanced"`
	Limit    int    `json:"limit"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": "hsearch",
		"message": "HS code search API",
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	enhanced := s.config.Search.EnhancedOrDefault()
	if req.Enhanced != nil {
		enhanced = *req.Enhanced
	}
	query := models.SearchQuery{
		Query:    req.Query,
		Category: req.Category,
		Language: req.Language,
		Enhanced: enhanced,
		Limit:    req.Limit,
	}

	resp, err := s.engine.Search(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidQuery):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, search.ErrCatalogUnavailable):
			s.logger.Error("catalog unavailable", zap.Error(err))
			respondError(w, http.StatusServiceUnavailable, "search backend unavailable")
		default:
			s.logger.Error("search failed", zap.String("query", req.Query), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	s.logger.Debug("search served",
		zap.String("query", req.Query),
		zap.Int("results", resp.TotalCount),
		zap.Int64("elapsed_ms", resp.ElapsedMS))
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req models.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	suggestions, err := s.engine.Suggest(r.Context(), req.Query, req.Category, req.Limit)
	if err != nil {
		s.logger.Error("suggestions failed", zap.String("query", req.Query), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "suggestions failed")
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	respondJSON(w, http.StatusOK, models.SuggestResponse{Suggestions: suggestions})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.Categories(r.Context())
	if err != nil {
		s.logger.Error("categories failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"features": s.engine.Features(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := s.engine.Status()
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"catalog_count":   status.CatalogCount,
		"vocabulary_size": status.VocabularySize,
		"semantic_ready":  status.SemanticReady,
		"cache_enabled":   status.CacheEnabled,
		"features":        status.Features,
		"uptime_seconds":  int64(time.Since(s.started).Seconds()),
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
