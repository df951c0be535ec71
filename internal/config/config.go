// Package config defines the evaluator configuration surface and its
// environment-based loading. All settings are immutable once an evaluator
// is constructed from them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Defaults for the configuration surface.
const (
	DefaultModelName   = "gpt-4-turbo-preview"
	DefaultTemperature = 0.3
	DefaultMaxRetries  = 3
	DefaultTimeout     = 60 * time.Second

	// Advisory minimum component scores. Documented thresholds only;
	// the aggregation rules do not consult them.
	DefaultMinReasoningDepthScore = 0.6
	DefaultMinStructureScore      = 0.6
	DefaultMinConsistencyScore    = 0.7
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the settings for one evaluator instance.
type Config struct {
	// OpenAIAPIKey is the provider credential. Optional here; the client
	// fails with an authentication error if it is needed and absent.
	OpenAIAPIKey string `json:"-"`

	// ModelName selects the judge model.
	ModelName string `json:"model_name" validate:"required"`

	// Temperature is the sampling temperature for analysis calls.
	Temperature float64 `json:"temperature" validate:"min=0,max=2"`

	// MinReasoningDepthScore is the advisory minimum reasoning depth score.
	MinReasoningDepthScore float64 `json:"min_reasoning_depth_score" validate:"min=0,max=1"`

	// MinStructureScore is the advisory minimum argument structure score.
	MinStructureScore float64 `json:"min_structure_score" validate:"min=0,max=1"`

	// MinConsistencyScore is the advisory minimum consistency score.
	MinConsistencyScore float64 `json:"min_consistency_score" validate:"min=0,max=1"`

	// MaxRetries is the number of retries for transient invocation
	// failures, after the initial attempt.
	MaxRetries int `json:"max_retries" validate:"min=0"`

	// Timeout bounds each LLM invocation.
	Timeout time.Duration `json:"timeout" validate:"min=0"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ModelName:              DefaultModelName,
		Temperature:            DefaultTemperature,
		MinReasoningDepthScore: DefaultMinReasoningDepthScore,
		MinStructureScore:      DefaultMinStructureScore,
		MinConsistencyScore:    DefaultMinConsistencyScore,
		MaxRetries:             DefaultMaxRetries,
		Timeout:                DefaultTimeout,
	}
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error { return validate.Struct(c) }

// Load builds a configuration from the environment, starting from
// defaults. A .env file in the working directory is honored when present.
// Recognized variables: OPENAI_API_KEY, REASONEVAL_MODEL,
// REASONEVAL_TEMPERATURE, REASONEVAL_MAX_RETRIES,
// REASONEVAL_TIMEOUT_SECONDS.
func Load() (Config, error) {
	// Missing .env files are fine; explicit environment still applies.
	_ = godotenv.Load()

	cfg := Default()
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if v := os.Getenv("REASONEVAL_MODEL"); v != "" {
		cfg.ModelName = v
	}
	if v := os.Getenv("REASONEVAL_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REASONEVAL_TEMPERATURE %q: %w", v, err)
		}
		cfg.Temperature = f
	}
	if v := os.Getenv("REASONEVAL_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REASONEVAL_MAX_RETRIES %q: %w", v, err)
		}
		cfg.MaxRetries = n
	}
	if v := os.Getenv("REASONEVAL_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REASONEVAL_TIMEOUT_SECONDS %q: %w", v, err)
		}
		cfg.Timeout = time.Duration(n) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
