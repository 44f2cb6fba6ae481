package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/djdv/go-pagesim"
	"github.com/djdv/go-pagesim/internal/tracefile"
)

// Config holds the command's settings.
// Zero values for Frames, Workers and Policy mean
// "read it from standard input" in the console's order.
type Config struct {
	Frames     int    `json:"frames"`     // Size of the frame pool
	Workers    int    `json:"workers"`    // Number of concurrent workers
	Policy     string `json:"policy"`     // FIFO, LRU or Optimal
	Sequential bool   `json:"sequential"` // Force a single worker for deterministic results
	Quiet      bool   `json:"quiet"`      // Suppress trace lines on stdout

	TraceOut         string `json:"trace_out"`         // Optional file receiving every trace line
	TraceCompression string `json:"trace_compression"` // none, snappy or lz4

	LogLevel string `json:"log_level"` // debug, info, warn or error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TraceCompression: "none",
		LogLevel:         "warn",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
// on top of the defaults.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// ApplyEnv overrides fields with PAGESIM_* environment variables.
// Unparsable numbers and booleans are reported.
func (c *Config) ApplyEnv() error {
	if val := os.Getenv("PAGESIM_FRAMES"); val != "" {
		frames, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("PAGESIM_FRAMES: %w", err)
		}
		c.Frames = frames
	}
	if val := os.Getenv("PAGESIM_WORKERS"); val != "" {
		workers, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("PAGESIM_WORKERS: %w", err)
		}
		c.Workers = workers
	}
	if val := os.Getenv("PAGESIM_POLICY"); val != "" {
		c.Policy = val
	}
	if val := os.Getenv("PAGESIM_SEQUENTIAL"); val != "" {
		sequential, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("PAGESIM_SEQUENTIAL: %w", err)
		}
		c.Sequential = sequential
	}
	if val := os.Getenv("PAGESIM_TRACE_OUT"); val != "" {
		c.TraceOut = val
	}
	if val := os.Getenv("PAGESIM_TRACE_COMPRESSION"); val != "" {
		c.TraceCompression = val
	}
	if val := os.Getenv("PAGESIM_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	return nil
}

// Validate validates the configuration.
// Frames and Workers may still be zero, to be read later.
func (c *Config) Validate() error {
	if c.Frames < 0 {
		return fmt.Errorf("frames must not be negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if c.Policy != "" {
		if _, err := pagesim.ParsePolicy(c.Policy); err != nil {
			return err
		}
	}
	if _, err := tracefile.ParseCompression(c.TraceCompression); err != nil {
		return err
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return level, nil
}
