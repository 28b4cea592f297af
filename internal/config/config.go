package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port   int
	APIKey string

	// Collaborator endpoints
	MemoryServiceURL string
	WebSearchURL     string
	QdrantURL        string
	QdrantCollection string
	OllamaBaseURL    string

	// Models
	EmbeddingModel  string
	EmbeddingDim    int
	CompletionModel string

	// Caching
	RemoteCacheURL       string
	CacheDBPath          string
	EmbeddingCacheTTLHrs int
	QueryCacheTTLSecs    int
	CacheMaxEntries      int

	// Retrieval tuning
	MemoryDeadlineMs    int
	WebTimeoutSecs      int
	VectorTopK          int
	VectorMinSimilarity float64
	MaxResults          int

	// Web authority table override
	AuthorityConfigPath string

	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                 envInt("PORT", 8080),
		APIKey:               envStr("API_KEY", ""),
		MemoryServiceURL:     envStr("MEMORY_SERVICE_URL", "http://localhost:8741"),
		WebSearchURL:         envStr("WEB_SEARCH_URL", "http://localhost:8090"),
		QdrantURL:            envStr("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:     envStr("QDRANT_COLLECTION", "knowledge"),
		OllamaBaseURL:        envStr("OLLAMA_BASE_URL", "http://localhost:11434"),
		EmbeddingModel:       envStr("EMBEDDING_MODEL", "nomic-embed-text"),
		EmbeddingDim:         envInt("EMBEDDING_DIM", 768),
		CompletionModel:      envStr("COMPLETION_MODEL", "qwen2.5:1.5b"),
		RemoteCacheURL:       envStr("REMOTE_CACHE_URL", ""),
		CacheDBPath:          envStr("CACHE_DB_PATH", ""),
		EmbeddingCacheTTLHrs: envInt("EMBEDDING_CACHE_TTL_HOURS", 24),
		QueryCacheTTLSecs:    envInt("QUERY_CACHE_TTL_SECONDS", 300),
		CacheMaxEntries:      envInt("CACHE_MAX_ENTRIES", 1000),
		MemoryDeadlineMs:     envInt("MEMORY_DEADLINE_MS", 200),
		WebTimeoutSecs:       envInt("WEB_TIMEOUT_SECONDS", 5),
		VectorTopK:           envInt("VECTOR_TOP_K", 10),
		VectorMinSimilarity:  envFloat("VECTOR_MIN_SIMILARITY", 0.6),
		MaxResults:           envInt("MAX_RESULTS", 10),
		AuthorityConfigPath:  envStr("AUTHORITY_CONFIG_PATH", ""),
		LogLevel:             envStr("LOG_LEVEL", "info"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MemoryServiceURL == "" {
		return fmt.Errorf("MEMORY_SERVICE_URL must not be empty")
	}
	if c.WebSearchURL == "" {
		return fmt.Errorf("WEB_SEARCH_URL must not be empty")
	}
	if c.QdrantURL == "" {
		return fmt.Errorf("QDRANT_URL must not be empty")
	}
	if c.OllamaBaseURL == "" {
		return fmt.Errorf("OLLAMA_BASE_URL must not be empty")
	}
	if c.EmbeddingDim < 1 {
		return fmt.Errorf("EMBEDDING_DIM must be positive, got %d", c.EmbeddingDim)
	}
	if c.VectorMinSimilarity < 0 || c.VectorMinSimilarity > 1 {
		return fmt.Errorf("VECTOR_MIN_SIMILARITY must be in [0,1], got %f", c.VectorMinSimilarity)
	}
	if c.CacheMaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be positive, got %d", c.CacheMaxEntries)
	}
	if c.MemoryDeadlineMs < 1 {
		return fmt.Errorf("MEMORY_DEADLINE_MS must be positive, got %d", c.MemoryDeadlineMs)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
