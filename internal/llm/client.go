package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/juparave/baseline/internal/config"
)

// Message roles
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one chat message sent to the model
type Message struct {
	Role    string
	Content string
}

// Request is a single non-streaming completion request
type Request struct {
	Model           string
	Messages        []Message
	ReasoningEffort string // passed through untouched where the provider supports it
}

// Response is the model's reply. Token counts are zero when the service
// does not report usage.
type Response struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Client sends completion requests to an LLM service
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// New creates the Client for the configured provider
func New(ctx context.Context, cfg config.LLMConfig, logger *log.Logger) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL), nil
	case config.ProviderOpenAICompat:
		return NewCompatClient(ctx, cfg.APIKey, cfg.BaseURL, cfg.Model, logger), nil
	case config.ProviderGoogleAI:
		return NewGoogleAIClient(ctx, cfg.APIKey, cfg.Model, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Provider)
	}
}
