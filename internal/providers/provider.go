package providers

import (
	"context"
	"fmt"
)

// ChatRequest contains the prompts sent to an LLM backend.
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// Invoker is the provider abstraction. Invoke returns the raw text of the
// model's reply. The caller bounds the call with a context deadline; expiry
// surfaces as ErrTimeout, any other transport, auth, or API failure as
// ErrProvider.
type Invoker interface {
	Invoke(ctx context.Context, req ChatRequest) (string, error)
	Name() string
}

// New creates a provider by name, bound to the given model. A missing
// credential is a configuration failure reported as ErrProvider, not a panic.
func New(provider, model string) (Invoker, error) {
	switch provider {
	case "openai":
		return NewOpenAI(model)
	case "anthropic":
		return NewAnthropic(model)
	case "gemini", "google":
		return NewGemini(model)
	case "local":
		return NewLocal(model)
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", ErrProvider, provider)
	}
}
