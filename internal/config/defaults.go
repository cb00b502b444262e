package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeoutSeconds == 0 {
		cfg.Server.RequestTimeoutSeconds = 10
	}
	if cfg.Catalog.Driver == "" {
		cfg.Catalog.Driver = "sqlite"
	}
	if cfg.Catalog.DatabasePath == "" {
		cfg.Catalog.DatabasePath = "/usr/local/var/hsearch/data/db/catalog.db"
	}
	if cfg.Catalog.BleveIndexPath == "" {
		cfg.Catalog.BleveIndexPath = "/usr/local/var/hsearch/data/indices/bleve"
	}
	if cfg.Catalog.VectorIndexPath == "" {
		cfg.Catalog.VectorIndexPath = "/usr/local/var/hsearch/data/indices/vectors"
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/hsearch/data/models/paraphrase-multilingual-MiniLM-L12-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 20
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.TopKCandidates == 0 {
		cfg.Search.TopKCandidates = 300
	}
	w := &cfg.Search.Weights
	if w.Exact == 0 && w.Fuzzy == 0 && w.Semantic == 0 && w.Lexical == 0 {
		*w = FusionWeights{Exact: 0.35, Fuzzy: 0.20, Semantic: 0.30, Lexical: 0.15}
	}
	w.Normalize()
	if cfg.Search.TypoMaxDistanceShort == 0 {
		cfg.Search.TypoMaxDistanceShort = 2
	}
	if cfg.Search.TypoMaxDistanceLong == 0 {
		cfg.Search.TypoMaxDistanceLong = 3
	}
	if cfg.Search.TypoShortTokenLen == 0 {
		cfg.Search.TypoShortTokenLen = 6
	}
	if cfg.Search.SuggestionLimit == 0 {
		cfg.Search.SuggestionLimit = 5
	}
	if cfg.Search.MinSuggestionLen == 0 {
		cfg.Search.MinSuggestionLen = 2
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 300
	}
}
