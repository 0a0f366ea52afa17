package satyadrishti

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/HeckerOO1/Search-engine/internal/domain/trust"
	"github.com/HeckerOO1/Search-engine/internal/provider/local"
	classifyuc "github.com/HeckerOO1/Search-engine/internal/usecase/classify"
	scoringuc "github.com/HeckerOO1/Search-engine/internal/usecase/scoring"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type oracleConfig struct {
	apiKey  string
	baseURL string
	model   string
}

type clientConfig struct {
	redisAddrs     []string
	redisPassword  string
	memoryCapacity int
	keyPrefix      string

	keywords  classifyuc.Keywords
	training  []classifyuc.Sample
	threshold float64

	corpus          []local.Document
	externalEngines bool
	httpClient      *http.Client
	tierTimeout     time.Duration
	emergencyWindow time.Duration
	corroboration   int

	trust         trust.Table
	profiles      map[string]scoringuc.Weights
	oracle        oracleConfig
	semanticBlend float64

	pogoWindow      time.Duration
	sessionTTL      time.Duration
	sweepInterval   time.Duration
	demoteThreshold int
	cacheTTL        time.Duration

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		keyPrefix:       "satya:",
		keywords:        classifyuc.DefaultKeywords(),
		training:        classifyuc.DefaultTraining(),
		threshold:       0.65,
		corpus:          local.DefaultCorpus(),
		trust:           trust.DefaultTable(),
		profiles:        scoringuc.DefaultProfiles(),
		semanticBlend:   0.25,
		tierTimeout:     10 * time.Second,
		emergencyWindow: 168 * time.Hour,
		corroboration:   2,
		pogoWindow:      10 * time.Second,
		sessionTTL:      30 * time.Minute,
		sweepInterval:   5 * time.Minute,
		demoteThreshold: 3,
		cacheTTL:        5 * time.Minute,
		logger:          zap.NewNop(),
	}
}

// WithRedis backs caches and counters with a Redis instance instead of
// the in-process store.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
	})
}

// WithMemoryCapacity bounds the in-process store entry count.
// Ignored when Redis is configured.
func WithMemoryCapacity(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.memoryCapacity = n
	})
}

// WithKeyPrefix namespaces all store keys. Default: "satya:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// Document is one curated corpus entry for the local tier.
type Document struct {
	Title   string
	Link    string
	Snippet string
}

// WithCorpus replaces the compiled-in local corpus.
func WithCorpus(docs []Document) Option {
	return optionFunc(func(c *clientConfig) {
		if len(docs) == 0 {
			return
		}
		converted := make([]local.Document, 0, len(docs))
		for _, d := range docs {
			converted = append(converted, local.Document{
				Title:   d.Title,
				Link:    d.Link,
				Snippet: d.Snippet,
			})
		}
		c.corpus = converted
	})
}

// WithExternalEngines enables the external provider tiers (DuckDuckGo,
// Google News, and the scraping engines) behind the local corpus.
// Without it the engine answers from the curated corpus only.
func WithExternalEngines() Option {
	return optionFunc(func(c *clientConfig) {
		c.externalEngines = true
	})
}

// WithHTTPClient sets the HTTP client the external tiers fetch with.
func WithHTTPClient(client *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = client
	})
}

// WithTierTimeout bounds each provider tier call. Default: 10s.
func WithTierTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.tierTimeout = d
	})
}

// WithClassifierThreshold sets the probabilistic emergency cutoff.
// Default: 0.65.
func WithClassifierThreshold(threshold float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.threshold = threshold
	})
}

// WithOracle enables the semantic scoring oracle against an
// OpenAI-compatible embeddings endpoint. Empty baseURL selects the
// public API; empty model selects text-embedding-3-small.
func WithOracle(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.oracle = oracleConfig{apiKey: apiKey, baseURL: baseURL, model: model}
	})
}

// WithPogoWindow sets how quickly a return after a click counts as
// pogo-sticking. Default: 10s.
func WithPogoWindow(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.pogoWindow = d
	})
}

// WithSessionTTL sets how long idle sessions keep their feedback
// state. Default: 30m.
func WithSessionTTL(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.sessionTTL = d
	})
}

// WithLogger enables structured logging for engine internals.
// Default: no logging.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client operation metrics (counts and
// durations) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
