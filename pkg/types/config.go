package types

import "time"

// HTTPConfig holds shared HTTP settings for components that call external
// catalog APIs.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with outbound requests
	// (e.g. "unihub/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the discovery engine.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxExternalResults caps each provider's candidate list (default 10).
	MaxExternalResults int `json:"max_external_results" yaml:"max_external_results"`

	// DefaultLimit is the local page size when the request omits one (default 10).
	DefaultLimit int `json:"default_limit" yaml:"default_limit"`

	// ProviderTimeout bounds each provider call (default 8s). A provider
	// that exceeds it contributes an empty list, same as any failure.
	ProviderTimeout time.Duration `json:"provider_timeout" yaml:"provider_timeout"`

	// EnableGoogleBooks controls whether the Google Books provider is used.
	EnableGoogleBooks bool `json:"enable_google_books" yaml:"enable_google_books"`

	// EnableOpenAlex controls whether the OpenAlex provider is used.
	EnableOpenAlex bool `json:"enable_open_alex" yaml:"enable_open_alex"`

	// EnableArxiv controls whether the arXiv provider is used.
	EnableArxiv bool `json:"enable_arxiv" yaml:"enable_arxiv"`

	// GoogleBooksAPIKey authenticates Google Books calls. Empty means the
	// provider is disabled regardless of EnableGoogleBooks.
	GoogleBooksAPIKey string `json:"google_books_api_key,omitempty" yaml:"google_books_api_key,omitempty"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"open_alex_email,omitempty" yaml:"open_alex_email,omitempty"`
}

// StoreConfig holds settings for the local resource store.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowOrigins is the CORS origin allowlist (default "*").
	AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
}

// PortalConfig groups all component configurations.
type PortalConfig struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Server ServerConfig `json:"server" yaml:"server"`
}
