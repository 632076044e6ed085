package main

import (
	"fmt"
	"os"

	"github.com/juparave/baseline/internal/app"
	"github.com/juparave/baseline/internal/config"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// options holds the command line flags
type options struct {
	cfgFile         string
	project         string
	sourceDir       string
	outputDir       string
	model           string
	reasoningEffort string
	provider        string
	baseURL         string
	apiKey          string
	patterns        []string
	verbose         bool
}

func main() {
	if err := newRootCmd(run).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runFunc executes the command with the parsed flags
type runFunc func(cmd *cobra.Command, opts *options, args []string) error

func newRootCmd(runE runFunc) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "baseline",
		Short:   "Baseline security analyzer for smart contract audit benchmarks",
		Long:    `Sends every smart contract source file of a project to an LLM, collects the reported vulnerabilities and writes baseline_<project>.json.`,
		Version: version,
		Example: `  baseline --project my_project --source /path/to/source
  baseline -p my_project -s /path/to/source --patterns "src/*.sol" "contracts/*.sol"
  baseline -p my_project -s /path/to/source --model gpt-4o --reasoning-effort "" --output results/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runE(cmd, opts, args)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.project, "project", "p", "", "Project name to analyze")
	flags.StringVarP(&opts.sourceDir, "source", "s", "", "Source directory containing project files")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "Output directory for results (default: baseline_results)")
	flags.StringVarP(&opts.model, "model", "m", "", "LLM model to use (default: gpt-5-mini)")
	flags.StringVar(&opts.reasoningEffort, "reasoning-effort", "", `Reasoning effort for supported models: low, medium, high, or "" to omit it (default: high)`)
	flags.StringVar(&opts.provider, "provider", "", "LLM provider: openai, openai-compat, googleai (default: openai)")
	flags.StringVar(&opts.baseURL, "base-url", "", "Custom API endpoint")
	flags.StringVar(&opts.apiKey, "api-key", "", "API key (or set OPENAI_API_KEY / GEMINI_API_KEY)")
	flags.StringArrayVar(&opts.patterns, "patterns", nil, `File patterns to analyze (e.g. "*.sol" "contracts/*.vy")`)
	flags.StringVarP(&opts.cfgFile, "config", "c", "", "Path to config file (default: ~/.config/baseline/config.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	return rootCmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyFlags(cmd, opts, args, cfg)

	cmd.SilenceUsage = true

	runner := app.NewRunner(cfg)
	return runner.Run(cmd.Context())
}

// applyFlags overrides config values with the flags given on the command line
func applyFlags(cmd *cobra.Command, opts *options, args []string, cfg *config.Config) {
	if opts.project != "" {
		cfg.Project = opts.project
	}
	if opts.sourceDir != "" {
		cfg.SourceDir = opts.sourceDir
	}
	if opts.outputDir != "" {
		cfg.Reports.OutputDir = opts.outputDir
	}
	if opts.model != "" {
		cfg.LLM.Model = opts.model
	}
	// An explicit empty value disables the field for non-reasoning models
	if cmd.Flags().Changed("reasoning-effort") {
		cfg.LLM.ReasoningEffort = opts.reasoningEffort
	}
	if opts.provider != "" {
		cfg.LLM.Provider = opts.provider
	}
	if opts.baseURL != "" {
		cfg.LLM.BaseURL = opts.baseURL
	}
	if opts.apiKey != "" {
		cfg.LLM.APIKey = opts.apiKey
	}
	// Positional arguments are treated as extra patterns
	patterns := append(append([]string{}, opts.patterns...), args...)
	if len(patterns) > 0 {
		cfg.Patterns = patterns
	}
	cfg.Verbose = opts.verbose
}
