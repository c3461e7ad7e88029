// Package config loads the settings of the email-index command from a YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/zostay/go-email-index/message"
)

// OutputFormat names a format for command output.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// IsValid returns true for a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputText, OutputJSON, OutputYAML:
		return true
	}
	return false
}

// Default configuration values.
const (
	DefaultLogLevel   = "info"
	DefaultOutput     = OutputText
	DefaultConfigDir  = "email-index"
	DefaultConfigFile = "config.yaml"
)

// Environment variables that override the configuration file.
const (
	EnvLogLevel = "EMAIL_INDEX_LOG_LEVEL"
	EnvJSONLogs = "EMAIL_INDEX_JSON_LOGS"
	EnvOutput   = "EMAIL_INDEX_OUTPUT"
	EnvPgDSN    = "EMAIL_INDEX_PG_DSN"
	EnvMaxDepth = "EMAIL_INDEX_MAX_DEPTH"
)

// Errors returned by Validate.
var (
	ErrInvalidOutput   = errors.New("invalid output format")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidMaxDepth = errors.New("invalid max depth")
)

// PostgresConfig holds the term store connection settings.
type PostgresConfig struct {
	// DSN is a PostgreSQL connection string. The store commands are
	// unavailable when it is empty.
	DSN string `yaml:"dsn,omitempty"`
}

// ParseConfig holds the message parser settings.
type ParseConfig struct {
	// MaxDepth limits how deeply nested parts are broken up. -1 means no
	// limit.
	MaxDepth int `yaml:"max_depth"`
}

// Config is the complete configuration.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	JSONLogs bool           `yaml:"json_logs"`
	Output   OutputFormat   `yaml:"output"`
	Postgres PostgresConfig `yaml:"postgres"`
	Parse    ParseConfig    `yaml:"parse"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Output:   DefaultOutput,
		Parse: ParseConfig{
			MaxDepth: message.DefaultMaxDepth,
		},
	}
}

// DefaultPath returns the configuration file path used when none is given,
// which is email-index/config.yaml in the user configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting config directory: %w", err)
	}
	return filepath.Join(dir, DefaultConfigDir, DefaultConfigFile), nil
}

// Load reads the configuration. Values are taken from, in increasing order of
// priority:
//
// 1. Default values
// 2. The YAML file at path, or at DefaultPath() if path is empty
// 3. Environment variables
//
// A missing file is an error only when path is given explicitly.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if err := loadFromFile(cfg, path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv(EnvJSONLogs); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvJSONLogs, err)
		}
		cfg.JSONLogs = b
	}

	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output = OutputFormat(v)
	}

	if v := os.Getenv(EnvPgDSN); v != "" {
		cfg.Postgres.DSN = v
	}

	if v := os.Getenv(EnvMaxDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvMaxDepth, err)
		}
		cfg.Parse.MaxDepth = n
	}

	return nil
}

// Validate checks that every setting holds a usable value.
func (c *Config) Validate() error {
	if !c.Output.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Parse.MaxDepth < -1 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxDepth, c.Parse.MaxDepth)
	}

	return nil
}

// Logger builds the logger described by the configuration. Logs are
// human-readable unless JSONLogs is set.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	if !c.JSONLogs {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseOptions returns the message parser options for the configuration.
func (c *Config) ParseOptions() []message.ParseOption {
	return []message.ParseOption{message.WithMaxDepth(c.Parse.MaxDepth)}
}
