package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the satyadrishti API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Search     SearchConfig     `yaml:"search"`
	Tiers      []TierConfig     `yaml:"tiers"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Feedback   FeedbackConfig   `yaml:"feedback"`
	Oracle     OracleConfig     `yaml:"oracle"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds key-value store settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
}

// SearchConfig holds discovery pipeline settings.
type SearchConfig struct {
	RequestTimeoutSec       int    `yaml:"request_timeout_sec"`
	TierTimeoutSec          int    `yaml:"tier_timeout_sec"` // default per-tier budget
	EmergencyFreshnessHours int    `yaml:"emergency_freshness_hours"`
	MinCorroboratingTiers   int    `yaml:"min_corroborating_tiers"` // emergency mode keeps probing until this many tiers delivered
	CacheTTLSec             int    `yaml:"cache_ttl_sec"`           // ranked response cache
	CorpusFile              string `yaml:"corpus_file"`             // curated local tier data
}

// TierConfig describes one provider tier. Tiers run in list order;
// listing a tier enables it.
type TierConfig struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"` // local, duckduckgo, gnews, rss, scrape
	TimeoutSec int            `yaml:"timeout_sec"` // 0 = search.tier_timeout_sec
	URL        string         `yaml:"url"`         // scrape: query template with %s
	Feeds      []string       `yaml:"feeds"`       // gnews: RSS feed urls
	Selectors  SelectorConfig `yaml:"selectors"`   // scrape: CSS selectors
}

// SelectorConfig holds the CSS selectors a scrape tier parses with.
type SelectorConfig struct {
	Result  string `yaml:"result"`
	Title   string `yaml:"title"`
	Link    string `yaml:"link"`
	Snippet string `yaml:"snippet"`
}

// ClassifierConfig holds emergency classifier settings.
type ClassifierConfig struct {
	Threshold    float64 `yaml:"threshold"` // probabilistic emergency cutoff
	KeywordsFile string  `yaml:"keywords_file"`
	TrainingFile string  `yaml:"training_file"`
}

// ScoringConfig holds ranking settings.
type ScoringConfig struct {
	Profiles      map[string]WeightsConfig `yaml:"profiles"`
	TrustFile     string                   `yaml:"trust_file"`
	SemanticBlend float64                  `yaml:"semantic_blend"` // oracle share of relevance, 0..1
}

// WeightsConfig is one named weight profile.
type WeightsConfig struct {
	Relevance      float64 `yaml:"relevance"`
	Freshness      float64 `yaml:"freshness"`
	Trust          float64 `yaml:"trust"`
	Sensationalism float64 `yaml:"sensationalism"` // subtracted
}

// FeedbackConfig holds pogo detection and session lifecycle settings.
type FeedbackConfig struct {
	PogoWindowSec    int `yaml:"pogo_window_sec"`
	DemoteThreshold  int `yaml:"demote_threshold"`
	SessionTTLMin    int `yaml:"session_ttl_min"`
	SweepIntervalMin int `yaml:"sweep_interval_min"`
}

// OracleConfig holds the optional semantic scoring oracle settings.
// The oracle is enabled when an API key is present. Its embedding
// cache is content-addressed, so there is no TTL to tune.
type OracleConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// DefaultTiers is the stock provider chain used when no tiers are
// configured: curated local corpus first, then external engines in
// decreasing resilience order.
func DefaultTiers() []TierConfig {
	return []TierConfig{
		{Name: "local", Type: "local"},
		{Name: "duckduckgo", Type: "duckduckgo"},
		{Name: "gnews", Type: "gnews"},
		{Name: "brave", Type: "scrape"},
		{Name: "bing", Type: "scrape"},
		{Name: "yahoo", Type: "scrape"},
		{Name: "ecosia", Type: "scrape"},
	}
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "memory"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "satya:"
	}
	if c.Search.RequestTimeoutSec <= 0 {
		c.Search.RequestTimeoutSec = 30
	}
	if c.Search.TierTimeoutSec <= 0 {
		c.Search.TierTimeoutSec = 10
	}
	if c.Search.EmergencyFreshnessHours <= 0 {
		c.Search.EmergencyFreshnessHours = 168
	}
	if c.Search.MinCorroboratingTiers <= 0 {
		c.Search.MinCorroboratingTiers = 2
	}
	if c.Search.CacheTTLSec <= 0 {
		c.Search.CacheTTLSec = 300
	}
	if len(c.Tiers) == 0 {
		c.Tiers = DefaultTiers()
	}
	if c.Classifier.Threshold <= 0 {
		c.Classifier.Threshold = 0.65
	}
	if c.Scoring.Profiles == nil {
		c.Scoring.Profiles = map[string]WeightsConfig{}
	}
	if _, ok := c.Scoring.Profiles["standard"]; !ok {
		c.Scoring.Profiles["standard"] = WeightsConfig{Relevance: 0.85, Trust: 0.15}
	}
	if _, ok := c.Scoring.Profiles["emergency"]; !ok {
		c.Scoring.Profiles["emergency"] = WeightsConfig{
			Relevance: 0.35, Freshness: 0.30, Trust: 0.35, Sensationalism: 0.40,
		}
	}
	if c.Scoring.SemanticBlend <= 0 {
		c.Scoring.SemanticBlend = 0.25
	}
	if c.Feedback.PogoWindowSec <= 0 {
		c.Feedback.PogoWindowSec = 10
	}
	if c.Feedback.DemoteThreshold <= 0 {
		c.Feedback.DemoteThreshold = 3
	}
	if c.Feedback.SessionTTLMin <= 0 {
		c.Feedback.SessionTTLMin = 30
	}
	if c.Feedback.SweepIntervalMin <= 0 {
		c.Feedback.SweepIntervalMin = 5
	}
	if c.Oracle.Model == "" {
		c.Oracle.Model = "text-embedding-3-small"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "memory":
	case "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("database.driver must be \"memory\" or \"redis\", got %q", c.Database.Driver)
	}
	if c.Classifier.Threshold >= 1 {
		return fmt.Errorf("classifier.threshold must be below 1, got %v", c.Classifier.Threshold)
	}
	if c.Scoring.SemanticBlend > 1 {
		return fmt.Errorf("scoring.semantic_blend must be at most 1, got %v", c.Scoring.SemanticBlend)
	}
	seen := make(map[string]bool, len(c.Tiers))
	for i, tier := range c.Tiers {
		if tier.Name == "" {
			return fmt.Errorf("tiers[%d].name is required", i)
		}
		if seen[tier.Name] {
			return fmt.Errorf("duplicate tier name %q", tier.Name)
		}
		seen[tier.Name] = true
		switch tier.Type {
		case "local", "duckduckgo", "gnews", "rss", "scrape":
			// ok
		case "":
			return fmt.Errorf("tiers[%d].type is required", i)
		default:
			return fmt.Errorf("tiers[%d].type must be local, duckduckgo, gnews, rss, or scrape, got %q", i, tier.Type)
		}
		if tier.Type == "rss" && len(tier.Feeds) == 0 {
			return fmt.Errorf("tiers[%d] (%s): rss tiers need at least one feed", i, tier.Name)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
