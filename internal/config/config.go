// Package config loads the pipeline configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of both binaries.
type Config struct {
	Feed struct {
		// Input is the path of the newline-delimited JSON feed.
		Input string `yaml:"input"`
	} `yaml:"feed"`
	Collection struct {
		// Output is the path the XML collection is written to (and the
		// path the word counter reads by default).
		Output string `yaml:"output"`
		// MaxQuoteDepth bounds nested retweet/quote resolution.
		MaxQuoteDepth int `yaml:"max_quote_depth"`
	} `yaml:"collection"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file and no environment
// overrides are present. The paths mirror the original reference driver.
func Default() Config {
	var cfg Config
	cfg.Feed.Input = "tweets-larger.json"
	cfg.Collection.Output = "tweets.xml"
	cfg.Collection.MaxQuoteDepth = 16
	cfg.Log.Level = "info"
	return cfg
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment overrides (FEED_INPUT,
// COLLECTION_OUTPUT, MAX_QUOTE_DEPTH, LOG_LEVEL).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("FEED_INPUT"); v != "" {
		cfg.Feed.Input = v
	}
	if v := os.Getenv("COLLECTION_OUTPUT"); v != "" {
		cfg.Collection.Output = v
	}
	if v := os.Getenv("MAX_QUOTE_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parse MAX_QUOTE_DEPTH: %w", err)
		}
		cfg.Collection.MaxQuoteDepth = depth
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if cfg.Collection.MaxQuoteDepth < 1 {
		return cfg, fmt.Errorf("max_quote_depth must be positive, got %d", cfg.Collection.MaxQuoteDepth)
	}
	return cfg, nil
}
