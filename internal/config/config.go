package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/juparave/baseline/internal/util"
	"gopkg.in/yaml.v3"
)

// Supported LLM providers
const (
	ProviderOpenAI       = "openai"        // direct OpenAI Chat Completions
	ProviderOpenAICompat = "openai-compat" // OpenAI-compatible endpoint (Zhipu AI, etc.) via Genkit
	ProviderGoogleAI     = "googleai"      // Gemini via Genkit
)

var (
	ErrMissingAPIKey          = errors.New("api key is required")
	ErrUnknownProvider        = errors.New("unknown provider")
	ErrInvalidReasoningEffort = errors.New("reasoning_effort must be one of low, medium, high")
)

// Config holds all application configuration
type Config struct {
	Project   string        `yaml:"project"`
	SourceDir string        `yaml:"source_dir"`
	Patterns  []string      `yaml:"patterns"`
	LLM       LLMConfig     `yaml:"llm"`
	Reports   ReportsConfig `yaml:"reports"`
	Email     EmailConfig   `yaml:"email"`
	Verbose   bool          `yaml:"-"` // Set via CLI only
}

// LLMConfig holds LLM completion service settings
type LLMConfig struct {
	Provider        string `yaml:"provider"` // openai, openai-compat, googleai
	Model           string `yaml:"model"`
	ReasoningEffort string `yaml:"reasoning_effort"` // low, medium, high
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"` // Custom API endpoint
}

// ReportsConfig holds result storage settings
type ReportsConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// EmailConfig holds optional summary notification settings
type EmailConfig struct {
	Enabled      bool   `yaml:"enabled"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromAddress  string `yaml:"from_address"`
	FromName     string `yaml:"from_name"`
	ToAddress    string `yaml:"to_address"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:        ProviderOpenAI,
			Model:           "gpt-5-mini",
			ReasoningEffort: "high",
		},
		Reports: ReportsConfig{
			OutputDir: "baseline_results",
		},
		Email: EmailConfig{
			SMTPPort: 587,
			FromName: "Baseline Runner",
		},
	}
}

// DefaultPath returns the config file location used when none is given
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "baseline", "config.yaml")
}

// Load reads configuration from file and merges with defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	path = util.ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.SourceDir = util.ExpandPath(cfg.SourceDir)
	cfg.Reports.OutputDir = util.ExpandPath(cfg.Reports.OutputDir)

	return cfg, nil
}

// Validate checks the configuration and resolves the API key from the environment
func (c *Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("project is required")
	}
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}

	switch c.LLM.ReasoningEffort {
	case "", "low", "medium", "high":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidReasoningEffort, c.LLM.ReasoningEffort)
	}

	var envKeys []string
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderOpenAICompat:
		envKeys = []string{"OPENAI_API_KEY"}
	case ProviderGoogleAI:
		envKeys = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.LLM.Provider)
	}

	if c.LLM.Provider == ProviderOpenAICompat && c.LLM.BaseURL == "" {
		return fmt.Errorf("base_url is required for provider %s", ProviderOpenAICompat)
	}

	if c.LLM.APIKey == "" {
		for _, name := range envKeys {
			if key := os.Getenv(name); key != "" {
				c.LLM.APIKey = key
				break
			}
		}
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w: set api_key or %s", ErrMissingAPIKey, envKeys[0])
	}

	if c.Email.Enabled {
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("smtp_host is required when email is enabled")
		}
		if c.Email.ToAddress == "" {
			return fmt.Errorf("to_address is required when email is enabled")
		}
	}

	return nil
}
