// Package generate defines the request model for content generation: the
// request body sent to the generative language API plus the session and
// per-call knobs that shape it. The chat session assembles a Request for
// every send; the client marshals it verbatim.
package generate

import "github.com/strandworks/genchat/core/content"

// Request is a generateContent request body. Field names follow the v1beta
// wire format.
type Request struct {
	Contents          []*content.Content `json:"contents"`
	SystemInstruction *content.Content   `json:"systemInstruction,omitempty"`
	SafetySettings    []*SafetySetting   `json:"safetySettings,omitempty"`
	GenerationConfig  *GenerationConfig  `json:"generationConfig,omitempty"`
	Tools             []*Tool            `json:"tools,omitempty"`
	ToolConfig        *ToolConfig        `json:"toolConfig,omitempty"`
	CachedContent     string             `json:"cachedContent,omitempty"`
}

// GenerationConfig tunes decoding for a request. Pointer fields distinguish
// "unset" from an explicit zero, which the service treats differently for
// temperature and sampling parameters.
type GenerationConfig struct {
	CandidateCount   int            `json:"candidateCount,omitempty"`
	StopSequences    []string       `json:"stopSequences,omitempty"`
	MaxOutputTokens  int            `json:"maxOutputTokens,omitempty"`
	Temperature      *float32       `json:"temperature,omitempty"`
	TopP             *float32       `json:"topP,omitempty"`
	TopK             *int32         `json:"topK,omitempty"`
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

// HarmCategory identifies a class of content the service screens for.
type HarmCategory string

const (
	HarmCategoryHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmCategoryHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmCategorySexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// HarmBlockThreshold sets how aggressively a harm category is blocked.
type HarmBlockThreshold string

const (
	BlockNone           HarmBlockThreshold = "BLOCK_NONE"
	BlockOnlyHigh       HarmBlockThreshold = "BLOCK_ONLY_HIGH"
	BlockMediumAndAbove HarmBlockThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	BlockLowAndAbove    HarmBlockThreshold = "BLOCK_LOW_AND_ABOVE"
)

// SafetySetting overrides the blocking threshold for one harm category.
type SafetySetting struct {
	Category  HarmCategory       `json:"category"`
	Threshold HarmBlockThreshold `json:"threshold"`
}

// Tool groups function declarations exposed to the model for one request.
type Tool struct {
	FunctionDeclarations []*FunctionDeclaration `json:"functionDeclarations,omitempty"`
}

// FunctionDeclaration describes a callable function to the model.
// Parameters uses JSON Schema format to describe the function's input.
type FunctionDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// FunctionCallingMode controls whether the model may, must, or must not
// call declared functions.
type FunctionCallingMode string

const (
	FunctionCallingAuto FunctionCallingMode = "AUTO"
	FunctionCallingAny  FunctionCallingMode = "ANY"
	FunctionCallingNone FunctionCallingMode = "NONE"
)

// ToolConfig constrains how declared tools are used for a request.
type ToolConfig struct {
	FunctionCallingConfig *FunctionCallingConfig `json:"functionCallingConfig,omitempty"`
}

// FunctionCallingConfig narrows function calling to a mode and, under mode
// ANY, to an allowed subset of function names.
type FunctionCallingConfig struct {
	Mode                 FunctionCallingMode `json:"mode,omitempty"`
	AllowedFunctionNames []string            `json:"allowedFunctionNames,omitempty"`
}
