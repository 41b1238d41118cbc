// Package config loads and validates the builder's configuration from a
// YAML file with environment-variable overrides, following the platform's
// config-loading convention (gopkg.in/yaml.v3 plus an applyEnvOverrides
// pass).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	appErrors "github.com/irtools/forward-index-builder/pkg/errors"
)

// Config is the top-level builder configuration.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// InputConfig names the record source to read and its format.
type InputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // "plaintext" or "html"
}

// OutputConfig names the scratch/output path prefix and batching parameters.
type OutputConfig struct {
	Prefix    string `yaml:"prefix"`
	BatchSize int64  `yaml:"batchSize"`
	Threads   int    `yaml:"threads"`
}

// TokenizerConfig selects the process_content and process_term strategies.
type TokenizerConfig struct {
	Content string `yaml:"content"` // "whitespace" or "html"
	Term    string `yaml:"term"`    // "identity", "lowercase", or "stem"
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the optional local Prometheus scrape listener.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads a YAML config file (if path is non-empty) and applies
// FWDIDX_* environment-variable overrides, returning defaults layered
// under whatever the file and environment supply.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, appErrors.IOf(err, "reading config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, appErrors.Configf("parsing config file %s: %s", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Validate checks the invariants the dispatcher relies on (spec §9a):
// threads must be at least 2 (one producer, one consumer), and batch size
// must be positive.
func (c *Config) Validate() error {
	if c.Output.Threads < 2 {
		return appErrors.Configf("output.threads must be >= 2, got %d", c.Output.Threads)
	}
	if c.Output.BatchSize < 1 {
		return appErrors.Configf("output.batchSize must be >= 1, got %d", c.Output.BatchSize)
	}
	if c.Output.Prefix == "" {
		return appErrors.Configf("output.prefix must not be empty")
	}
	switch c.Tokenizer.Content {
	case "whitespace", "html":
	default:
		return appErrors.Configf("tokenizer.content must be \"whitespace\" or \"html\", got %q", c.Tokenizer.Content)
	}
	switch c.Tokenizer.Term {
	case "identity", "lowercase", "stem":
	default:
		return appErrors.Configf("tokenizer.term must be \"identity\", \"lowercase\", or \"stem\", got %q", c.Tokenizer.Term)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Format: "plaintext",
		},
		Output: OutputConfig{
			Prefix:    "fwd",
			BatchSize: 100000,
			Threads:   4,
		},
		Tokenizer: TokenizerConfig{
			Content: "whitespace",
			Term:    "lowercase",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}

// applyEnvOverrides reads FWDIDX_* environment variables and overrides the
// corresponding config fields, following the platform's SP_*-prefixed
// override convention.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FWDIDX_INPUT_PATH"); v != "" {
		cfg.Input.Path = v
	}
	if v := os.Getenv("FWDIDX_INPUT_FORMAT"); v != "" {
		cfg.Input.Format = v
	}
	if v := os.Getenv("FWDIDX_OUTPUT_PREFIX"); v != "" {
		cfg.Output.Prefix = v
	}
	if v := os.Getenv("FWDIDX_OUTPUT_BATCH_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Output.BatchSize = n
		}
	}
	if v := os.Getenv("FWDIDX_OUTPUT_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Output.Threads = n
		}
	}
	if v := os.Getenv("FWDIDX_TOKENIZER_CONTENT"); v != "" {
		cfg.Tokenizer.Content = strings.ToLower(v)
	}
	if v := os.Getenv("FWDIDX_TOKENIZER_TERM"); v != "" {
		cfg.Tokenizer.Term = strings.ToLower(v)
	}
	if v := os.Getenv("FWDIDX_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FWDIDX_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("FWDIDX_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("FWDIDX_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
}

// String renders the config for startup logs, matching fmt.Stringer so
// slog can log the whole struct as one field.
func (c *Config) String() string {
	return fmt.Sprintf("input=%s(%s) output=%s batch=%d threads=%d content=%s term=%s",
		c.Input.Path, c.Input.Format, c.Output.Prefix, c.Output.BatchSize,
		c.Output.Threads, c.Tokenizer.Content, c.Tokenizer.Term)
}
