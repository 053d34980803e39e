package providers

import (
	"context"
	"fmt"
)

// Request is a single planning prompt sent to a model.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Response is the raw model reply.
type Response struct {
	Content    string
	TokensUsed int
}

// Completer is the provider abstraction: one prompt in, one text reply out.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
	Name() string
}

// New creates a provider by name. The API key comes from the caller so that
// a missing credential is caught at startup, before any git or network
// operation runs.
func New(provider, model, apiKey string) (Completer, error) {
	switch provider {
	case "openai":
		return NewOpenAI(model, apiKey)
	case "anthropic":
		return NewAnthropic(model, apiKey)
	case "ollama", "lmstudio":
		return NewOllama(model, apiKey)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
