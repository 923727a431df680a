// Package content defines the conversation turn model shared by every layer
// of the module: the chat session, the generation client, the agent runner
// and the transcript stores all exchange []*Content values.
//
// The JSON field names follow the generative language API wire format
// (camelCase), so a Content can be marshalled straight into a request body.
// The BSON tags exist for transcript persistence and use snake_case.
package content

import "strings"

// Role identifies the author of a conversation turn.
type Role = string

const (
	RoleUser     Role = "user"
	RoleModel    Role = "model"
	RoleFunction Role = "function"
	RoleSystem   Role = "system"
)

// Content is a single conversation turn: an author role plus an ordered list
// of parts. A turn with an empty role is treated as authored by the user.
type Content struct {
	Role  Role   `json:"role,omitempty" bson:"role,omitempty"`
	Parts []Part `json:"parts" bson:"parts"`
}

// Part is one fragment of a turn. Exactly one field should be set; the
// zero-valued fields are omitted from the wire format.
type Part struct {
	Text             string            `json:"text,omitempty" bson:"text,omitempty"`
	InlineData       *Blob             `json:"inlineData,omitempty" bson:"inline_data,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty" bson:"function_call,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty" bson:"function_response,omitempty"`
}

// Blob carries raw media bytes inline in a request. Data is base64-encoded
// on the wire, which encoding/json handles transparently for []byte.
type Blob struct {
	MIMEType string `json:"mimeType" bson:"mime_type"`
	Data     []byte `json:"data" bson:"data"`
}

// FunctionCall is a request from the model to invoke a declared function.
type FunctionCall struct {
	Name string         `json:"name" bson:"name"`
	Args map[string]any `json:"args,omitempty" bson:"args,omitempty"`
}

// FunctionResponse carries the result of a function invocation back to the
// model. Response is an arbitrary JSON object.
type FunctionResponse struct {
	Name     string         `json:"name" bson:"name"`
	Response map[string]any `json:"response,omitempty" bson:"response,omitempty"`
}

// Text creates a text part.
func Text(s string) Part {
	return Part{Text: s}
}

// Data creates an inline media part from raw bytes.
func Data(mimeType string, data []byte) Part {
	return Part{InlineData: &Blob{MIMEType: mimeType, Data: data}}
}

// FunctionResult creates a function response part for the named function.
func FunctionResult(name string, response map[string]any) Part {
	return Part{FunctionResponse: &FunctionResponse{Name: name, Response: response}}
}

// NewUserContent creates a user-authored turn from the given parts.
func NewUserContent(parts ...Part) *Content {
	return &Content{Role: RoleUser, Parts: parts}
}

// NewModelContent creates a model-authored turn from the given parts.
func NewModelContent(parts ...Part) *Content {
	return &Content{Role: RoleModel, Parts: parts}
}

// Joined returns the concatenated text of all text parts in the turn.
// Non-text parts are skipped.
func (c *Content) Joined() string {
	if c == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range c.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}
