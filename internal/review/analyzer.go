package review

import (
	"context"
	"log"
	"path/filepath"

	"github.com/juparave/baseline/internal/config"
	"github.com/juparave/baseline/internal/domain"
	"github.com/juparave/baseline/internal/llm"
)

// Outcome is the result of analyzing one file. A failed outcome carries
// no findings and zero token counts.
type Outcome struct {
	Findings     []domain.Finding
	InputTokens  int
	OutputTokens int
	Err          error
}

// Failed reports whether the request or response handling failed
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Analyzer sends individual files to the LLM and normalizes the answers
type Analyzer struct {
	client          llm.Client
	model           string
	reasoningEffort string
	logger          *log.Logger
	verbose         bool
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer(client llm.Client, cfg config.LLMConfig, logger *log.Logger, verbose bool) *Analyzer {
	return &Analyzer{
		client:          client,
		model:           cfg.Model,
		reasoningEffort: cfg.ReasoningEffort,
		logger:          logger,
		verbose:         verbose,
	}
}

// AnalyzeFile issues exactly one completion request for the file. Request
// and parse errors are logged and reported through Outcome.Err only.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path, content string) Outcome {
	name := filepath.Base(path)
	a.log("  → Analyzing %s (%d bytes)", name, len(content))

	resp, err := a.client.Complete(ctx, llm.Request{
		Model:           a.model,
		Messages:        BuildMessages(path, content),
		ReasoningEffort: a.reasoningEffort,
	})
	if err != nil {
		a.logger.Printf("Error analyzing %s: %v", name, err)
		return Outcome{Err: err}
	}

	parsed, err := ParseResponse(resp.Content)
	if err != nil {
		a.logger.Printf("Error analyzing %s: %v", name, err)
		return Outcome{Err: err}
	}

	findings := Normalize(parsed, name, a.model)
	if len(findings) > 0 {
		a.log("  → Found %d vulnerabilities", len(findings))
	} else {
		a.log("  → No vulnerabilities found")
	}

	return Outcome{
		Findings:     findings,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
	}
}

func (a *Analyzer) log(format string, args ...interface{}) {
	if a.verbose {
		a.logger.Printf(format, args...)
	}
}
