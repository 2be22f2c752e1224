package interfaces

import "context"

// CompletionService defines the interface for single-turn LLM
// completions. Implementations may use any cloud provider (Qwen,
// Claude, Gemini); the analyzer only depends on this interface.
type CompletionService interface {
	// Complete generates a completion for the given system and user
	// prompts and returns the raw response text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// ModelVersion returns the provider model identifier, recorded on
	// each analysis for traceability.
	ModelVersion() string

	// Close releases provider resources.
	Close() error
}
