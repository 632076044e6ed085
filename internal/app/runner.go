package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/juparave/baseline/internal/config"
	"github.com/juparave/baseline/internal/domain"
	"github.com/juparave/baseline/internal/llm"
	"github.com/juparave/baseline/internal/notify"
	"github.com/juparave/baseline/internal/report"
	"github.com/juparave/baseline/internal/review"
	"github.com/juparave/baseline/internal/scanner"
	"github.com/juparave/baseline/internal/util"
)

var (
	ErrSourceNotFound = errors.New("source directory not found")
	ErrNoClient       = errors.New("no LLM client configured")
)

// Runner orchestrates the baseline analysis of one project
type Runner struct {
	config  *config.Config
	logger  *log.Logger
	out     io.Writer
	now     func() time.Time
	scanner *scanner.Selector
	review  *review.Analyzer
	report  *report.Writer
	notify  *notify.Service
}

// NewRunner creates a new Runner instance
func NewRunner(cfg *config.Config) *Runner {
	logger := log.New(os.Stdout, "[BASELINE] ", log.LstdFlags)

	return &Runner{
		config:  cfg,
		logger:  logger,
		out:     os.Stdout,
		now:     time.Now,
		scanner: scanner.New(logger),
		report:  report.NewWriter(cfg.Reports.OutputDir),
		// review and notify initialized in Run() after validation
	}
}

// UseClient sets the LLM client files are analyzed with
func (r *Runner) UseClient(client llm.Client) {
	r.review = review.NewAnalyzer(client, r.config.LLM, r.logger, r.config.Verbose)
}

// Run validates the configuration, analyzes the project and saves the result
func (r *Runner) Run(ctx context.Context) error {
	if err := r.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !util.DirExists(r.config.SourceDir) {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, r.config.SourceDir)
	}

	fmt.Fprintln(r.out, report.Header(r.config.LLM.Model, r.config.LLM.ReasoningEffort))

	if r.review == nil {
		r.log("Initializing %s client...", r.config.LLM.Provider)
		client, err := llm.New(ctx, r.config.LLM, r.logger)
		if err != nil {
			return fmt.Errorf("initializing LLM client: %w", err)
		}
		r.UseClient(client)
	}

	result, err := r.AnalyzeProject(ctx, r.config.Project, r.config.SourceDir, r.config.Patterns)
	if err != nil {
		return fmt.Errorf("analyzing project: %w", err)
	}

	resultPath, err := r.report.Write(result)
	if err != nil {
		return fmt.Errorf("saving result: %w", err)
	}
	r.logger.Printf("Results saved to: %s", resultPath)

	if r.config.Email.Enabled {
		r.sendNotification(ctx, result, resultPath)
	}

	fmt.Fprintln(r.out, report.Completion(result, resultPath))

	return nil
}

// AnalyzeProject selects the project's files, analyzes them one at a time
// and returns the deduplicated result. Unreadable and blank files are
// counted as skipped; failed analyses still count as analyzed.
func (r *Runner) AnalyzeProject(ctx context.Context, project, sourceDir string, patterns []string) (*domain.AnalysisResult, error) {
	r.log("Analyzing project: %s", project)

	files, err := r.scanner.Select(sourceDir, patterns)
	if err != nil {
		return nil, fmt.Errorf("selecting files: %w", err)
	}

	if len(files) == 0 {
		r.logger.Printf("No files found to analyze")
		return domain.EmptyResult(project, r.now()), nil
	}

	if r.review == nil {
		return nil, ErrNoClient
	}

	r.logger.Printf("Found %d files to analyze", len(files))

	var (
		allFindings []domain.Finding
		usage       domain.TokenUsage
		analyzed    int
		skipped     int
		failed      int
	)

	for i, path := range files {
		r.logger.Printf("[%d/%d] Analyzing %s...", i+1, len(files), filepath.Base(path))

		content, err := readSource(path)
		if err != nil {
			r.logger.Printf("Error processing %s: %v", filepath.Base(path), err)
			skipped++
			continue
		}

		if strings.TrimSpace(content) == "" {
			r.log("Skipping empty file %s", filepath.Base(path))
			skipped++
			continue
		}

		outcome := r.review.AnalyzeFile(ctx, path, content)
		allFindings = append(allFindings, outcome.Findings...)
		analyzed++
		if outcome.Failed() {
			failed++
		}
		usage.Add(outcome.InputTokens, outcome.OutputTokens)
	}

	result := domain.NewAnalysisResult(project, r.now(), allFindings)
	result.FilesAnalyzed = analyzed
	result.FilesSkipped = skipped
	result.FilesFailed = failed
	result.TokenUsage = usage

	report.WriteSummary(r.out, result)

	return result, nil
}

// readSource reads a file as UTF-8 text
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8")
	}
	return string(data), nil
}

func (r *Runner) sendNotification(ctx context.Context, result *domain.AnalysisResult, resultPath string) {
	r.log("Sending email notification...")
	notifier, err := notify.NewService(r.config.Email, r.logger)
	if err != nil {
		r.logger.Printf("Warning: initializing email service: %v", err)
		return
	}
	r.notify = notifier

	if err := r.notify.SendResult(ctx, result, resultPath); err != nil {
		r.logger.Printf("Warning: sending email: %v", err)
		return
	}
	r.log("Email sent successfully")
}

func (r *Runner) log(format string, args ...interface{}) {
	if r.config.Verbose {
		r.logger.Printf(format, args...)
	}
}
