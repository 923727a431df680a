package client

import "time"

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com"
	defaultAPIVersion = "v1beta"
	defaultTimeout    = 120
)

// Config holds initialization parameters for the generation client.
// Timeout is in seconds so config files stay human-editable.
type Config struct {
	APIKey     string `json:"api_key,omitempty"`
	BaseURL    string `json:"base_url,omitempty"`
	APIVersion string `json:"api_version,omitempty"`
	Timeout    int    `json:"timeout,omitempty"`
}

// DefaultConfig returns a Config pointed at the public generative language
// endpoint.
func DefaultConfig() Config {
	return Config{
		BaseURL:    defaultBaseURL,
		APIVersion: defaultAPIVersion,
		Timeout:    defaultTimeout,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source == nil {
		return
	}
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.APIVersion != "" {
		c.APIVersion = source.APIVersion
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
}

// timeout returns the configured timeout as a duration.
func (c *Config) timeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
