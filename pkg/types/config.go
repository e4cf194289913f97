package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	// arXiv asks clients to identify themselves (e.g. "arxivist/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the API client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the query endpoint. Empty means the public arXiv API.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// RateInterval is the minimum interval between outbound requests.
	// arXiv's terms of use ask for no more than one request every 3 s.
	RateInterval time.Duration `json:"rate_interval" yaml:"rate_interval"`

	// MaxRetries is the number of retry attempts for transient failures.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// HubConfig holds settings for the document fetcher.
type HubConfig struct {
	HTTPConfig `yaml:",inline"`

	// Root is the hub directory PDFs are saved under. It must already
	// exist; the fetcher only creates category subdirectories inside it.
	Root string `json:"root" yaml:"root"`

	// Overwrite re-downloads papers whose PDF already exists on disk.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}
