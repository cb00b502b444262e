package search

// Status describes which features the engine can currently serve.
type Status struct {
	CatalogCount   int      `json:"catalog_count"`
	VocabularySize int      `json:"vocabulary_size"`
	SemanticReady  bool     `json:"semantic_ready"`
	CacheEnabled   bool     `json:"cache_enabled"`
	Features       []string `json:"features"`
}

// Features lists the feature names the engine can exercise. Per-request
// responses carry the subset that actually ran.
func (e *Engine) Features() []string {
	features := []string{FeatureLexical, FeatureFuzzy}
	if e.expander != nil {
		features = append(features, FeatureSynonym)
	}
	if e.vocab.Len() > 0 {
		features = append(features, FeatureTypo)
	}
	if e.semanticReady() {
		features = append(features, FeatureSemantic)
	}
	return features
}

// Status reports the engine's current capabilities and catalog size.
func (e *Engine) Status() Status {
	return Status{
		CatalogCount:   len(e.entries),
		VocabularySize: e.vocab.Len(),
		SemanticReady:  e.semanticReady(),
		CacheEnabled:   e.cache != nil,
		Features:       e.Features(),
	}
}

func (e *Engine) semanticReady() bool {
	return e.embedder != nil && e.vectors != nil && e.vectors.Size() > 0
}
