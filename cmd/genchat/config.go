package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/strandworks/genchat/chat"
	"github.com/strandworks/genchat/client"
	"github.com/strandworks/genchat/store"
)

const defaultModel = "gemini-1.5-flash"

// Config holds initialization parameters for all subsystems the CLI wires
// together. Each subsystem section delegates to that subsystem's
// config-driven constructor.
type Config struct {
	Client       client.Config `json:"client"`
	Chat         chat.Config   `json:"chat"`
	Store        store.Config  `json:"store"`
	Model        string        `json:"model,omitempty"`
	SystemPrompt string        `json:"system_prompt,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Client: client.DefaultConfig(),
		Chat:   chat.DefaultConfig(),
		Store:  store.DefaultConfig(),
		Model:  defaultModel,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Client.Merge(&source.Client)
	c.Chat.Merge(&source.Chat)
	c.Store.Merge(&source.Store)

	if source.Model != "" {
		c.Model = source.Model
	}
	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
