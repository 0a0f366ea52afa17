package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/HeckerOO1/Search-engine/internal/config"
	"github.com/HeckerOO1/Search-engine/internal/db"
	"github.com/HeckerOO1/Search-engine/internal/db/memory"
	dbRedis "github.com/HeckerOO1/Search-engine/internal/db/redis"
	"github.com/HeckerOO1/Search-engine/internal/domain/trust"
	logpkg "github.com/HeckerOO1/Search-engine/internal/logger"
	"github.com/HeckerOO1/Search-engine/internal/metrics"
	"github.com/HeckerOO1/Search-engine/internal/provider/duckduckgo"
	"github.com/HeckerOO1/Search-engine/internal/provider/gnews"
	"github.com/HeckerOO1/Search-engine/internal/provider/local"
	"github.com/HeckerOO1/Search-engine/internal/provider/rss"
	"github.com/HeckerOO1/Search-engine/internal/provider/scrape"
	"github.com/HeckerOO1/Search-engine/internal/repository/counters"
	"github.com/HeckerOO1/Search-engine/internal/repository/embcache"
	"github.com/HeckerOO1/Search-engine/internal/repository/rankcache"
	"github.com/HeckerOO1/Search-engine/internal/spell"
	chiTransport "github.com/HeckerOO1/Search-engine/internal/transport/chi"
	openaiOracle "github.com/HeckerOO1/Search-engine/internal/transport/openai"
	classifyuc "github.com/HeckerOO1/Search-engine/internal/usecase/classify"
	discoveryuc "github.com/HeckerOO1/Search-engine/internal/usecase/discovery"
	feedbackuc "github.com/HeckerOO1/Search-engine/internal/usecase/feedback"
	healthuc "github.com/HeckerOO1/Search-engine/internal/usecase/health"
	scoringuc "github.com/HeckerOO1/Search-engine/internal/usecase/scoring"
	searchuc "github.com/HeckerOO1/Search-engine/internal/usecase/search"
	statsuc "github.com/HeckerOO1/Search-engine/internal/usecase/stats"
	"github.com/HeckerOO1/Search-engine/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting satyadrishti API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store := buildStore(cfg, logger)
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Emergency classifier: keyword matcher always on, trained model optional.
	keywords := loadKeywords(cfg, logger)
	matcher := classifyuc.NewKeywordMatcher(keywords)
	model := loadModel(cfg, logger)
	classifySvc := classifyuc.New(matcher, model, cfg.Classifier.Threshold)

	// Tier registry: curated local corpus first, then external engines.
	corpus := loadCorpus(cfg, logger)
	tiers := buildTiers(cfg, corpus, logger)
	discoverySvc := discoveryuc.New(
		tiers,
		time.Duration(cfg.Search.TierTimeoutSec)*time.Second,
		time.Duration(cfg.Search.EmergencyFreshnessHours)*time.Hour,
		cfg.Search.MinCorroboratingTiers,
	)

	// Feedback: in-memory session tracker with periodic sweep, plus the
	// rank cache it invalidates on pogo-sticking.
	tracker := feedbackuc.NewTracker(
		time.Duration(cfg.Feedback.PogoWindowSec)*time.Second,
		time.Duration(cfg.Feedback.SessionTTLMin)*time.Minute,
		time.Duration(cfg.Feedback.SweepIntervalMin)*time.Minute,
		logger,
	)
	tracker.Start()
	defer tracker.Stop()

	rankCache := rankcache.New(
		store,
		cfg.Database.KeyPrefix,
		time.Duration(cfg.Search.CacheTTLSec)*time.Second,
		metrics.RankCacheTotal,
		logger,
	)
	feedbackSvc := feedbackuc.New(tracker, rankCache, cfg.Feedback.DemoteThreshold)

	// Scoring: trust table + weight profiles + optional semantic oracle.
	table := loadTrustTable(cfg, logger)
	profiles := make(map[string]scoringuc.Weights, len(cfg.Scoring.Profiles))
	for name, w := range cfg.Scoring.Profiles {
		profiles[name] = scoringuc.Weights{
			Relevance:      w.Relevance,
			Freshness:      w.Freshness,
			Trust:          w.Trust,
			Sensationalism: w.Sensationalism,
		}
	}

	// Pass nil interface (not typed nil pointer!) when no oracle is configured.
	var semantic scoringuc.SemanticScorer
	if scorer := buildOracle(cfg, store, logger); scorer != nil {
		semantic = scorer
	}
	scoringSvc := scoringuc.New(table, profiles, semantic, feedbackSvc, cfg.Scoring.SemanticBlend)

	// Spell correction vocabulary: corpus terms plus the keyword list.
	vocab := local.NewIndex("vocab", corpus).Vocabulary()
	for _, cat := range keywords.Categories {
		vocab = append(vocab, cat.Terms...)
	}
	checker := spell.NewChecker(vocab)

	// Stats counters survive restarts via the persisted store.
	counterStore := counters.New(store, cfg.Database.KeyPrefix, 0)
	statsTracker := statsuc.NewTracker(logger).WithStore(ctx, counterStore)
	feedbackSvc.WithUsage(statsTracker)
	statsSvc := statsuc.New(statsTracker, feedbackSvc, classifySvc)

	searchSvc := searchuc.New(classifySvc, discoverySvc, scoringSvc, checker, rankCache, statsTracker)

	healthSvc := healthuc.New(store, classifySvc)

	server := chiTransport.NewServer(searchSvc, feedbackSvc, statsSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiMiddleware.Timeout(time.Duration(cfg.Search.RequestTimeoutSec) * time.Second))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildStore creates the key-value store for the configured driver.
func buildStore(cfg config.Config, logger *zap.Logger) db.Store {
	switch cfg.Database.Driver {
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		return store
	case "memory":
		return memory.NewStore(0)
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
		return nil
	}
}

// loadKeywords reads the keyword file when configured, otherwise the
// compiled-in list. A configured but unreadable file is a config error.
func loadKeywords(cfg config.Config, logger *zap.Logger) classifyuc.Keywords {
	if cfg.Classifier.KeywordsFile == "" {
		return classifyuc.DefaultKeywords()
	}
	kw, err := classifyuc.LoadKeywords(cfg.Classifier.KeywordsFile)
	if err != nil {
		logger.Fatal("Failed to load keywords", zap.String("path", cfg.Classifier.KeywordsFile), zap.Error(err))
	}
	return kw
}

// loadModel trains the naive Bayes model. Model problems are never
// fatal: the keyword matcher governs mode on its own.
func loadModel(cfg config.Config, logger *zap.Logger) *classifyuc.Model {
	samples := classifyuc.DefaultTraining()
	if cfg.Classifier.TrainingFile != "" {
		loaded, err := classifyuc.LoadTraining(cfg.Classifier.TrainingFile)
		if err != nil {
			logger.Warn("Failed to load training data, using built-in corpus",
				zap.String("path", cfg.Classifier.TrainingFile), zap.Error(err))
		} else {
			samples = loaded
		}
	}

	model, err := classifyuc.Train(samples)
	if err != nil {
		logger.Warn("Classifier model unavailable, heuristic matcher governs alone", zap.Error(err))
		return nil
	}
	return model
}

// loadCorpus reads the curated local tier data.
func loadCorpus(cfg config.Config, logger *zap.Logger) []local.Document {
	if cfg.Search.CorpusFile == "" {
		return local.DefaultCorpus()
	}
	docs, err := local.LoadCorpus(cfg.Search.CorpusFile)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.String("path", cfg.Search.CorpusFile), zap.Error(err))
	}
	return docs
}

// loadTrustTable reads the domain trust mapping.
func loadTrustTable(cfg config.Config, logger *zap.Logger) trust.Table {
	if cfg.Scoring.TrustFile == "" {
		return trust.DefaultTable()
	}
	table, err := scoringuc.LoadTrustTable(cfg.Scoring.TrustFile)
	if err != nil {
		logger.Fatal("Failed to load trust table", zap.String("path", cfg.Scoring.TrustFile), zap.Error(err))
	}
	return table
}

// buildTiers assembles the adapter chain from the tier config.
func buildTiers(cfg config.Config, corpus []local.Document, logger *zap.Logger) []discoveryuc.Tier {
	client := &http.Client{}

	tiers := make([]discoveryuc.Tier, 0, len(cfg.Tiers))
	for _, tc := range cfg.Tiers {
		var adapter discoveryuc.Adapter
		switch tc.Type {
		case "local":
			adapter = local.NewIndex(tc.Name, corpus)
		case "duckduckgo":
			adapter = duckduckgo.New(tc.Name, tc.URL, client)
		case "gnews":
			adapter = gnews.New(tc.Name, tc.URL, client)
		case "rss":
			adapter = rss.New(tc.Name, tc.Feeds, client)
		case "scrape":
			urlFormat := tc.URL
			sel := scrape.Selectors{
				Result:  tc.Selectors.Result,
				Title:   tc.Selectors.Title,
				Link:    tc.Selectors.Link,
				Snippet: tc.Selectors.Snippet,
			}
			if urlFormat == "" {
				preset, preSel, ok := scrape.Preset(tc.Name)
				if !ok {
					logger.Fatal("No scrape preset for tier", zap.String("tier", tc.Name))
				}
				urlFormat, sel = preset, preSel
			}
			engine, err := scrape.New(tc.Name, urlFormat, sel, client)
			if err != nil {
				logger.Fatal("Failed to build scrape tier", zap.String("tier", tc.Name), zap.Error(err))
			}
			adapter = engine
		default:
			logger.Fatal("Unknown tier type", zap.String("tier", tc.Name), zap.String("type", tc.Type))
		}

		tiers = append(tiers, discoveryuc.Tier{
			Adapter: adapter,
			Timeout: time.Duration(tc.TimeoutSec) * time.Second,
		})
		logger.Info("Tier registered", zap.String("tier", tc.Name), zap.String("type", tc.Type))
	}
	return tiers
}

// buildOracle assembles the semantic scorer chain: openai embedder ->
// cached -> cosine scorer. Returns nil when no api key is configured.
func buildOracle(cfg config.Config, store db.Store, logger *zap.Logger) *openaiOracle.Scorer {
	if cfg.Oracle.APIKey == "" {
		return nil
	}

	metrics.RegisterOracleMetrics()

	base := openaiOracle.NewEmbedder(&openaiOracle.Config{
		APIKey:  cfg.Oracle.APIKey,
		BaseURL: cfg.Oracle.BaseURL,
		Model:   cfg.Oracle.Model,
		Logger:  logger,
	})
	cached := embcache.New(base, store, cfg.Database.KeyPrefix, metrics.OracleCacheTotal, logger)

	logger.Info("Semantic oracle enabled", zap.String("model", cfg.Oracle.Model))
	return openaiOracle.NewScorer(cached, logger)
}
