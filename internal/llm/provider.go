package llm

import "context"

// Provider defines the interface for LLM providers
// All providers MUST support structured output (JSON Schema) for reliable response parsing
type Provider interface {
	// Complete runs a single completion with structured output
	// The provider MUST enforce the OutputSchema to ensure valid JSON responses
	Complete(ctx context.Context, request *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// CompletionRequest contains all parameters needed for a completion
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	// Structured output schema - REQUIRED for reliable JSON parsing
	OutputSchema *OutputSchema
}

// OutputSchema defines the expected JSON output structure
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any // JSON Schema object
}

// TokenUsage is the provider-agnostic token accounting for one completion
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// CompletionResponse contains the result from the LLM
type CompletionResponse struct {
	RawOutput string     `json:"-"` // Raw JSON text output, schema-conforming
	Usage     TokenUsage `json:"usage"`
}
