package llm

import "context"

// Provider is a single LLM backend able to turn a prompt into text.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
