package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction over a text-generation endpoint.
type Provider interface {
	// Generate sends one prompt and returns the model's reply. When the
	// request carries a Schema, the reply is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is a single-turn generation request. voltscope never sends
// conversation history.
type Request struct {
	// System sets the model's role and constraints. Optional.
	System string

	// Prompt is the user prompt.
	Prompt string

	// Schema, when set, asks for JSON output conforming to it.
	Schema *Schema

	// MaxTokens caps the reply length. Zero leaves it to the provider.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0. Zero means the
	// provider default.
	Temperature float64
}

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema, kebab-case, e.g. "chart-insight".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the raw reply. For schema requests it is validated JSON;
	// otherwise it is plain text.
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Text returns the reply as a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
