package content_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/strandworks/genchat/core/content"
)

func TestConstructors(t *testing.T) {
	text := content.Text("hello")
	if text.Text != "hello" {
		t.Errorf("got %q, want %q", text.Text, "hello")
	}

	data := content.Data("application/pdf", []byte{0x25, 0x50})
	if data.InlineData == nil {
		t.Fatal("expected inline data to be set")
	}
	if data.InlineData.MIMEType != "application/pdf" {
		t.Errorf("got %q, want %q", data.InlineData.MIMEType, "application/pdf")
	}

	result := content.FunctionResult("lookup", map[string]any{"ok": true})
	if result.FunctionResponse == nil {
		t.Fatal("expected function response to be set")
	}
	if result.FunctionResponse.Name != "lookup" {
		t.Errorf("got %q, want %q", result.FunctionResponse.Name, "lookup")
	}
}

func TestNewUserContent(t *testing.T) {
	c := content.NewUserContent(content.Text("a"), content.Text("b"))
	if c.Role != content.RoleUser {
		t.Errorf("got role %q, want %q", c.Role, content.RoleUser)
	}
	if len(c.Parts) != 2 {
		t.Errorf("got %d parts, want 2", len(c.Parts))
	}
}

func TestJoined(t *testing.T) {
	c := &content.Content{
		Role: content.RoleModel,
		Parts: []content.Part{
			content.Text("Hello, "),
			{FunctionCall: &content.FunctionCall{Name: "noop"}},
			content.Text("world"),
		},
	}
	if got := c.Joined(); got != "Hello, world" {
		t.Errorf("got %q, want %q", got, "Hello, world")
	}

	var nilContent *content.Content
	if got := nilContent.Joined(); got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestPart_WireFormat(t *testing.T) {
	c := content.NewUserContent(
		content.Text("describe this"),
		content.Data("image/png", []byte{0x89}),
	)

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	encoded := string(raw)
	for _, key := range []string{`"role":"user"`, `"parts"`, `"inlineData"`, `"mimeType":"image/png"`} {
		if !strings.Contains(encoded, key) {
			t.Errorf("encoded content missing %s: %s", key, encoded)
		}
	}
	if strings.Contains(encoded, `"functionCall"`) {
		t.Errorf("empty part fields should be omitted: %s", encoded)
	}
}
