package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/strata-rag/strata/internal/analyzer"
	"github.com/strata-rag/strata/internal/api"
	"github.com/strata-rag/strata/internal/cache"
	"github.com/strata-rag/strata/internal/config"
	"github.com/strata-rag/strata/internal/embedding"
	"github.com/strata-rag/strata/internal/expander"
	"github.com/strata-rag/strata/internal/layers"
	"github.com/strata-rag/strata/internal/llm"
	"github.com/strata-rag/strata/internal/memoryclient"
	"github.com/strata-rag/strata/internal/metrics"
	"github.com/strata-rag/strata/internal/orchestrator"
	"github.com/strata-rag/strata/internal/vectorstore"
	"github.com/strata-rag/strata/internal/websearch"
)

func main() {
	// Logger
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Caches. Embeddings are expensive and stable, so their cache gets the
	// persistent/shared secondary tier; query results are short-lived and
	// only share through the remote tier when one is configured.
	var remote cache.Cache
	if cfg.RemoteCacheURL != "" {
		remote = cache.NewRemote(cfg.RemoteCacheURL, logger)
	}

	embedSecondary := remote
	if embedSecondary == nil && cfg.CacheDBPath != "" {
		sqliteCache, err := cache.OpenSQLite(cfg.CacheDBPath, time.Duration(cfg.EmbeddingCacheTTLHrs)*time.Hour, logger)
		if err != nil {
			logger.Error("failed to open cache database", "error", err)
			os.Exit(1)
		}
		embedSecondary = sqliteCache
	}

	embedCache := cache.NewTiered(
		cache.NewLocal(time.Duration(cfg.EmbeddingCacheTTLHrs)*time.Hour, cfg.CacheMaxEntries),
		embedSecondary,
	)
	queryCache := cache.NewTiered(
		cache.NewLocal(time.Duration(cfg.QueryCacheTTLSecs)*time.Second, cfg.CacheMaxEntries),
		remote,
	)
	defer embedCache.Close()

	// External clients
	completions := llm.NewClient(cfg.OllamaBaseURL, cfg.CompletionModel)
	ollama := embedding.NewOllamaClient(cfg.OllamaBaseURL, cfg.EmbeddingModel)
	qdrant := vectorstore.NewQdrantClient(cfg.QdrantURL, cfg.QdrantCollection, cfg.EmbeddingDim)
	memories := memoryclient.NewClient(cfg.MemoryServiceURL)
	webProxy := websearch.NewClient(cfg.WebSearchURL, time.Duration(cfg.WebTimeoutSecs)*time.Second)

	embedder := embedding.NewCached(ollama, embedCache)

	// Authority table for web scoring
	authority, err := layers.LoadAuthorityTable(cfg.AuthorityConfigPath)
	if err != nil {
		logger.Error("failed to load authority config", "error", err)
		os.Exit(1)
	}

	// Retrieval layers
	memoryLayer := layers.NewMemoryLayer(memories, time.Duration(cfg.MemoryDeadlineMs)*time.Millisecond, logger)
	webLayer := layers.NewWebLayer(webProxy, authority, logger)
	vectorLayer := layers.NewVectorLayer(embedder, qdrant, cfg.VectorTopK, cfg.VectorMinSimilarity, logger)
	graphLayer := layers.NewGraphLayer(logger)

	// Pipeline
	recorder := metrics.NewRecorder()
	queryAnalyzer := analyzer.New(completions, logger)
	queryExpander := expander.New(completions, logger)
	orch := orchestrator.New(
		queryAnalyzer, queryExpander,
		memoryLayer, webLayer, vectorLayer, graphLayer,
		queryCache, recorder, cfg.MaxResults, logger,
	)

	// Ensure the knowledge collection exists in Qdrant
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := qdrant.HealthCheck(startupCtx); err != nil {
		logger.Warn("qdrant not available at startup, will retry on first use", "error", err)
	} else if err := qdrant.EnsureCollection(startupCtx); err != nil {
		logger.Warn("failed to ensure vector collection", "error", err)
	}
	startupCancel()

	// Router
	router := api.NewRouter(orch, qdrant, recorder, cfg.APIKey, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("hybrid retrieval server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
