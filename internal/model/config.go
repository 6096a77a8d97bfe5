package model

import "time"

// Config is the complete signalmesh configuration.
//
// Hierarchy (highest to lowest priority): CLI flags, environment variables
// (SIGNALMESH_*), config file (~/.signalmesh/config.yaml), defaults.
type Config struct {
	HTTP        HTTPConfig              `yaml:"http"`
	Sources     map[string]SourceConfig `yaml:"sources"`
	Markets     MarketsConfig           `yaml:"markets"`
	Research    ResearchConfig          `yaml:"research"`
	Concurrency ConcurrencyConfig       `yaml:"concurrency"`
	Brief       BriefConfig             `yaml:"brief"`
	Output      OutputConfig            `yaml:"output"`
}

// HTTPConfig controls the shared polite fetch client used by all adapters.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RatePerHost   float64       `yaml:"rate_per_host"` // Requests per second per host
	RateBurst     int           `yaml:"rate_burst"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// SourceConfig describes one evidence source adapter. The scraping services
// are external collaborators; the core only knows their HTTP boundary.
type SourceConfig struct {
	BaseURL string `yaml:"base_url"`
	Enabled bool   `yaml:"enabled"`
}

// MarketsConfig controls the prediction-market clients.
type MarketsConfig struct {
	ManifoldBaseURL   string  `yaml:"manifold_base_url"`
	PolymarketBaseURL string  `yaml:"polymarket_base_url"`
	PerSourceLimit    int     `yaml:"per_source_limit"` // Max markets requested per platform
	MinLiquidity      float64 `yaml:"min_liquidity"`    // Markets below this are dropped; 0 disables
	TopN              int     `yaml:"top_n"`            // Post-sort cut; 0 disables
}

// ResearchConfig holds aggregation defaults.
type ResearchConfig struct {
	PerSourceTimeout time.Duration `yaml:"per_source_timeout"`
	Days             int           `yaml:"days"`
	Region           string        `yaml:"region"`
}

// ConcurrencyConfig sizes the batch research worker pool.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// BriefConfig configures the optional LLM research brief. An empty provider
// disables it entirely.
type BriefConfig struct {
	Provider  string `yaml:"provider"` // "openai" or empty
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // From environment only, never written to disk
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	Pretty  bool `yaml:"pretty"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       20 * time.Second,
			UserAgent:     "signalmesh/0.1 (+https://github.com/pmorozov/signalmesh)",
			MaxBodyBytes:  2_000_000,
			RatePerHost:   2,
			RateBurst:     5,
			RespectRobots: true,
		},
		Sources: map[string]SourceConfig{
			"reddit":  {BaseURL: "http://127.0.0.1:8031", Enabled: true},
			"youtube": {BaseURL: "http://127.0.0.1:8032", Enabled: true},
			"twitter": {BaseURL: "http://127.0.0.1:8033", Enabled: true},
			"web":     {BaseURL: "http://127.0.0.1:8034", Enabled: true},
		},
		Markets: MarketsConfig{
			ManifoldBaseURL:   "https://api.manifold.markets",
			PolymarketBaseURL: "https://gamma-api.polymarket.com",
			PerSourceLimit:    200,
			MinLiquidity:      0,
			TopN:              100,
		},
		Research: ResearchConfig{
			PerSourceTimeout: 20 * time.Second,
			Days:             7,
			Region:           "US",
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Brief: BriefConfig{
			Provider:  "",
			Model:     "gpt-4o-mini",
			MaxTokens: 1200,
		},
		Output: OutputConfig{
			Verbose: false,
			Pretty:  true,
		},
	}
}
