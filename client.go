// Package satyadrishti embeds the emergency-aware search engine in a
// Go process: classification, tiered discovery, mode-weighted scoring,
// and pogo-stick feedback without the HTTP layer. The pkg/sdk package
// is the client for a remote server; this package is the engine
// itself.
package satyadrishti

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/HeckerOO1/Search-engine/internal/db"
	"github.com/HeckerOO1/Search-engine/internal/db/memory"
	dbRedis "github.com/HeckerOO1/Search-engine/internal/db/redis"
	domfb "github.com/HeckerOO1/Search-engine/internal/domain/feedback"
	"github.com/HeckerOO1/Search-engine/internal/domain/query"
	"github.com/HeckerOO1/Search-engine/internal/provider/duckduckgo"
	"github.com/HeckerOO1/Search-engine/internal/provider/gnews"
	"github.com/HeckerOO1/Search-engine/internal/provider/local"
	"github.com/HeckerOO1/Search-engine/internal/provider/scrape"
	"github.com/HeckerOO1/Search-engine/internal/repository/counters"
	"github.com/HeckerOO1/Search-engine/internal/repository/embcache"
	"github.com/HeckerOO1/Search-engine/internal/repository/rankcache"
	"github.com/HeckerOO1/Search-engine/internal/spell"
	oracletransport "github.com/HeckerOO1/Search-engine/internal/transport/openai"
	classifyuc "github.com/HeckerOO1/Search-engine/internal/usecase/classify"
	discoveryuc "github.com/HeckerOO1/Search-engine/internal/usecase/discovery"
	feedbackuc "github.com/HeckerOO1/Search-engine/internal/usecase/feedback"
	healthuc "github.com/HeckerOO1/Search-engine/internal/usecase/health"
	scoringuc "github.com/HeckerOO1/Search-engine/internal/usecase/scoring"
	searchuc "github.com/HeckerOO1/Search-engine/internal/usecase/search"
	statsuc "github.com/HeckerOO1/Search-engine/internal/usecase/stats"
)

const defaultReadinessTimeout = 10 * time.Second

// Внутренние интерфейсы для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, q query.Query) (searchuc.Response, error)
}

type feedbackUseCase interface {
	Record(ctx context.Context, ev domfb.Event) (feedbackuc.Outcome, error)
}

type statsUseCase interface {
	Report(ctx context.Context) statsuc.Report
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the embedded engine entry point.
type Client struct {
	store       db.Store
	tracker     *feedbackuc.Tracker
	searchSvc   searchUseCase
	feedbackSvc feedbackUseCase
	statsSvc    statsUseCase
	healthSvc   healthUseCase
	obs         *observer
}

// New creates an embedded engine. Without options it runs fully
// offline: in-memory store, curated local corpus as the only tier,
// built-in keywords, training data, and trust table. The provided
// context covers the initial store readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("satyadrishti: store not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	return wireClient(ctx, store, cfg, obs)
}

func createStore(cfg *clientConfig) (db.Store, error) {
	if len(cfg.redisAddrs) == 0 {
		return memory.NewStore(cfg.memoryCapacity), nil
	}
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.redisAddrs,
		Password: cfg.redisPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("satyadrishti: create redis store: %w", err)
	}
	return s, nil
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	matcher := classifyuc.NewKeywordMatcher(cfg.keywords)
	model, _ := classifyuc.Train(cfg.training) // nil model degrades to heuristic-only
	classifySvc := classifyuc.New(matcher, model, cfg.threshold)

	tiers, err := buildTiers(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	discoverySvc := discoveryuc.New(tiers, cfg.tierTimeout, cfg.emergencyWindow, cfg.corroboration)

	tracker := feedbackuc.NewTracker(cfg.pogoWindow, cfg.sessionTTL, cfg.sweepInterval, cfg.logger)
	tracker.Start()

	rankCache := rankcache.New(store, cfg.keyPrefix, cfg.cacheTTL, nil, cfg.logger)
	feedbackSvc := feedbackuc.New(tracker, rankCache, cfg.demoteThreshold)

	var semantic scoringuc.SemanticScorer
	if cfg.oracle.apiKey != "" {
		model := cfg.oracle.model
		if model == "" {
			model = string(openai.SmallEmbedding3)
		}
		embedder := oracletransport.NewEmbedder(&oracletransport.Config{
			APIKey:  cfg.oracle.apiKey,
			BaseURL: cfg.oracle.baseURL,
			Model:   model,
			Logger:  cfg.logger,
		})
		cached := embcache.New(embedder, store, cfg.keyPrefix, nil, cfg.logger)
		semantic = oracletransport.NewScorer(cached, cfg.logger)
	}
	scoringSvc := scoringuc.New(cfg.trust, cfg.profiles, semantic, feedbackSvc, cfg.semanticBlend)

	vocab := local.NewIndex("vocab", cfg.corpus).Vocabulary()
	for _, cat := range cfg.keywords.Categories {
		vocab = append(vocab, cat.Terms...)
	}
	checker := spell.NewChecker(vocab)

	counterStore := counters.New(store, cfg.keyPrefix, 0)
	statsTracker := statsuc.NewTracker(cfg.logger).WithStore(ctx, counterStore)
	feedbackSvc.WithUsage(statsTracker)
	statsSvc := statsuc.New(statsTracker, feedbackSvc, classifySvc)

	searchSvc := searchuc.New(classifySvc, discoverySvc, scoringSvc, checker, rankCache, statsTracker)
	healthSvc := healthuc.New(store, classifySvc)

	return &Client{
		store:       store,
		tracker:     tracker,
		searchSvc:   searchSvc,
		feedbackSvc: feedbackSvc,
		statsSvc:    statsSvc,
		healthSvc:   healthSvc,
		obs:         obs,
	}, nil
}

// buildTiers assembles the tier chain: local corpus first, then any
// enabled external engines in resilience order.
func buildTiers(cfg *clientConfig) ([]discoveryuc.Tier, error) {
	tiers := []discoveryuc.Tier{
		{Adapter: local.NewIndex("local", cfg.corpus), Timeout: cfg.tierTimeout},
	}
	if !cfg.externalEngines {
		return tiers, nil
	}

	client := cfg.httpClient
	tiers = append(tiers,
		discoveryuc.Tier{Adapter: duckduckgo.New("duckduckgo", "", client), Timeout: cfg.tierTimeout},
		discoveryuc.Tier{Adapter: gnews.New("gnews", "", client), Timeout: cfg.tierTimeout},
	)
	for _, name := range []string{"brave", "bing", "yahoo", "ecosia"} {
		urlFormat, sel, _ := scrape.Preset(name)
		engine, err := scrape.New(name, urlFormat, sel, client)
		if err != nil {
			return nil, fmt.Errorf("satyadrishti: build %s tier: %w", name, err)
		}
		tiers = append(tiers, discoveryuc.Tier{Adapter: engine, Timeout: cfg.tierTimeout})
	}
	return tiers, nil
}

// Close stops the session sweeper and releases the store.
func (c *Client) Close() {
	if c.tracker != nil {
		c.tracker.Stop()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
