package chat_test

import (
	"testing"

	"github.com/strandworks/genchat/chat"
	"github.com/strandworks/genchat/core/content"
	"github.com/strandworks/genchat/core/generate"
)

func TestConfigMerge(t *testing.T) {
	base := chat.DefaultConfig()
	base.RequestOptions = &generate.RequestOptions{APIVersion: "v1beta"}

	source := &chat.Config{
		History:           []*content.Content{content.NewUserContent(content.Text("hi"))},
		SystemInstruction: content.NewUserContent(content.Text("be brief")),
		GenerationConfig:  &generate.GenerationConfig{MaxOutputTokens: 64},
		CachedContent:     "cachedContents/xyz",
		RequestOptions:    &generate.RequestOptions{BaseURL: "https://proxy.internal"},
	}
	base.Merge(source)

	if len(base.History) != 1 {
		t.Errorf("got %d history turns, want 1", len(base.History))
	}
	if base.SystemInstruction == nil || base.SystemInstruction.Joined() != "be brief" {
		t.Errorf("got system instruction %+v, want the merged one", base.SystemInstruction)
	}
	if base.GenerationConfig == nil || base.GenerationConfig.MaxOutputTokens != 64 {
		t.Errorf("got generation config %+v, want max tokens 64", base.GenerationConfig)
	}
	if base.CachedContent != "cachedContents/xyz" {
		t.Errorf("got cached content %q", base.CachedContent)
	}
	if base.RequestOptions.BaseURL != "https://proxy.internal" {
		t.Errorf("got base URL %q, want the merged one", base.RequestOptions.BaseURL)
	}
	if base.RequestOptions.APIVersion != "v1beta" {
		t.Errorf("merge dropped the existing API version: %q", base.RequestOptions.APIVersion)
	}
}

func TestConfigMergeNil(t *testing.T) {
	cfg := chat.DefaultConfig()
	cfg.CachedContent = "cachedContents/keep"
	cfg.Merge(nil)

	if cfg.CachedContent != "cachedContents/keep" {
		t.Errorf("merging nil changed the config: %q", cfg.CachedContent)
	}
}
