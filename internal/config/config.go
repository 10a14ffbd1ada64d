// Package config loads hillclimb settings from a YAML file, an optional
// .env file and the environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hillclimb/bfs"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete hillclimb configuration.
type Config struct {
	// Input is the path of the grid text file; "-" reads stdin.
	Input string `yaml:"input"`

	// Mode is the search mode name accepted by bfs.ParseMode.
	Mode string `yaml:"mode"`

	// Delay is the pause between frames when animating.
	Delay time.Duration `yaml:"delay"`

	// MaxSteps caps layer expansions; 0 means no cap.
	MaxSteps int `yaml:"max_steps"`

	// Color enables lipgloss styling of rendered frames.
	Color bool `yaml:"color"`

	Log   LogConfig   `yaml:"log"`
	Serve ServeConfig `yaml:"serve"`
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServeConfig configures the websocket frame server.
type ServeConfig struct {
	// Addr is the listen address, host:port.
	Addr string `yaml:"addr"`
	// MetricsPath serves Prometheus metrics; empty disables it.
	MetricsPath string `yaml:"metrics_path"`
	// TickInterval is the pause between layers while a session is playing.
	TickInterval time.Duration `yaml:"tick_interval"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input:    "input.txt",
		Mode:     "forward",
		Delay:    50 * time.Millisecond,
		MaxSteps: 0,
		Color:    true,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Serve: ServeConfig{
			Addr:         "localhost:8080",
			MetricsPath:  "/metrics",
			TickInterval: 100 * time.Millisecond,
		},
	}
}

// Load builds a Config from defaults, then the YAML file at path (if path
// is non-empty), then a .env file in the working directory (if present),
// then HILLCLIMB_* environment variables, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadFromEnv() error {
	if val := os.Getenv("HILLCLIMB_INPUT"); val != "" {
		c.Input = val
	}
	if val := os.Getenv("HILLCLIMB_MODE"); val != "" {
		c.Mode = val
	}
	if val := os.Getenv("HILLCLIMB_DELAY"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("%w: HILLCLIMB_DELAY: %v", ErrInvalid, err)
		}
		c.Delay = d
	}
	if val := os.Getenv("HILLCLIMB_MAX_STEPS"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%w: HILLCLIMB_MAX_STEPS: %v", ErrInvalid, err)
		}
		c.MaxSteps = n
	}
	if val := os.Getenv("HILLCLIMB_COLOR"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%w: HILLCLIMB_COLOR: %v", ErrInvalid, err)
		}
		c.Color = b
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Color = false
	}
	if val := os.Getenv("HILLCLIMB_ADDR"); val != "" {
		c.Serve.Addr = val
	}
	if val := os.Getenv("HILLCLIMB_LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	return nil
}

// Validate rejects unknown modes, negative delays and caps, a non-positive
// tick and unknown log levels and formats.
func (c *Config) Validate() error {
	if _, err := bfs.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: mode: %v", ErrInvalid, err)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative (%s)", ErrInvalid, c.Delay)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps must not be negative (%d)", ErrInvalid, c.MaxSteps)
	}
	if c.Serve.TickInterval <= 0 {
		return fmt.Errorf("%w: serve.tick_interval must be positive (%s)", ErrInvalid, c.Serve.TickInterval)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q (want debug, info, warn or error)", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalid, c.Log.Format)
	}
	return nil
}

// SearchMode returns Mode parsed; Validate guarantees it succeeds.
func (c *Config) SearchMode() bfs.Mode {
	m, _ := bfs.ParseMode(c.Mode)
	return m
}
