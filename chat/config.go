package chat

import (
	"github.com/strandworks/genchat/core/content"
	"github.com/strandworks/genchat/core/generate"
)

// Config holds the session-scoped generation parameters. Everything here is
// fixed at construction and reused for every send: the starting history, the
// system instruction, safety settings, decoding config, declared tools and
// the base request options.
type Config struct {
	History           []*content.Content         `json:"history,omitempty"`
	SystemInstruction *content.Content           `json:"system_instruction,omitempty"`
	SafetySettings    []*generate.SafetySetting  `json:"safety_settings,omitempty"`
	GenerationConfig  *generate.GenerationConfig `json:"generation_config,omitempty"`
	Tools             []*generate.Tool           `json:"tools,omitempty"`
	ToolConfig        *generate.ToolConfig       `json:"tool_config,omitempty"`
	CachedContent     string                     `json:"cached_content,omitempty"`
	RequestOptions    *generate.RequestOptions   `json:"request_options,omitempty"`
}

// DefaultConfig returns an empty session configuration: no prior history and
// service-side defaults for everything else.
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c. Slices and structured
// fields replace wholesale; request options merge field by field.
func (c *Config) Merge(source *Config) {
	if source == nil {
		return
	}
	if len(source.History) > 0 {
		c.History = source.History
	}
	if source.SystemInstruction != nil {
		c.SystemInstruction = source.SystemInstruction
	}
	if len(source.SafetySettings) > 0 {
		c.SafetySettings = source.SafetySettings
	}
	if source.GenerationConfig != nil {
		c.GenerationConfig = source.GenerationConfig
	}
	if len(source.Tools) > 0 {
		c.Tools = source.Tools
	}
	if source.ToolConfig != nil {
		c.ToolConfig = source.ToolConfig
	}
	if source.CachedContent != "" {
		c.CachedContent = source.CachedContent
	}
	if source.RequestOptions != nil {
		if c.RequestOptions == nil {
			c.RequestOptions = &generate.RequestOptions{}
		}
		c.RequestOptions.Merge(source.RequestOptions)
	}
}
