package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	oai "github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/openai/openai-go/option"
)

// GenkitClient sends requests through a Genkit model plugin
type GenkitClient struct {
	logger  *log.Logger
	genkit  *genkit.Genkit
	modelID string
}

// NewCompatClient creates a client for an OpenAI-compatible endpoint (Zhipu AI, etc.)
func NewCompatClient(ctx context.Context, apiKey, baseURL, model string, logger *log.Logger) *GenkitClient {
	var opts []option.RequestOption
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	opts = append(opts, option.WithMaxRetries(0))

	modelID := qualifyModel("openai", model)
	g := genkit.Init(ctx,
		genkit.WithDefaultModel(modelID),
		genkit.WithPlugins(&oai.OpenAI{
			APIKey: apiKey,
			Opts:   opts,
		}),
	)

	return &GenkitClient{logger: logger, genkit: g, modelID: modelID}
}

// NewGoogleAIClient creates a client for Gemini models
func NewGoogleAIClient(ctx context.Context, apiKey, model string, logger *log.Logger) *GenkitClient {
	modelID := qualifyModel("googleai", model)
	g := genkit.Init(ctx,
		genkit.WithDefaultModel(modelID),
		genkit.WithPlugins(&googlegenai.GoogleAI{
			APIKey: apiKey,
		}),
	)

	return &GenkitClient{logger: logger, genkit: g, modelID: modelID}
}

// Complete sends one generate request. Reasoning effort has no Genkit
// equivalent and is dropped.
func (c *GenkitClient) Complete(ctx context.Context, req Request) (*Response, error) {
	if req.ReasoningEffort != "" {
		c.logger.Printf("Reasoning effort %q is not supported by %s, ignoring", req.ReasoningEffort, c.modelID)
	}

	resp, err := genkit.Generate(ctx, c.genkit,
		ai.WithModelName(c.modelID),
		ai.WithMessages(toGenkitMessages(req.Messages)...),
	)
	if err != nil {
		return nil, fmt.Errorf("generating: %w", err)
	}

	out := &Response{Content: resp.Text()}
	if resp.Usage != nil {
		out.InputTokens = resp.Usage.InputTokens
		out.OutputTokens = resp.Usage.OutputTokens
	}
	return out, nil
}

func toGenkitMessages(messages []Message) []*ai.Message {
	out := make([]*ai.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, ai.NewSystemTextMessage(m.Content))
		default:
			out = append(out, ai.NewUserTextMessage(m.Content))
		}
	}
	return out
}

// qualifyModel prefixes a bare model name with the Genkit provider namespace
func qualifyModel(provider, model string) string {
	if strings.Contains(model, "/") {
		return model
	}
	return provider + "/" + model
}
