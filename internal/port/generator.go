package port

import "context"

// GenerationRequest is one call to a text-generation service.
type GenerationRequest struct {
	System string
	Prompt string
}

// Generator abstracts an external text-generation service. Implementations
// return the raw model text, which callers expect to be JSON.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	// Name identifies the provider in call metadata, e.g. "openai".
	Name() string
}
