// Package config loads process-level settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/voltscope/internal/store"
)

// Config holds the settings that are not specific to a text-generation
// provider. Provider settings live in llm.Config.
type Config struct {
	// DBPath is the sqlite audit database. Empty resolves to
	// store.DefaultDBPath.
	DBPath string `env:"VOLTSCOPE_DB"`

	// LogFile receives the stdlib log output while the TUI owns the
	// terminal. Empty discards it.
	LogFile string `env:"VOLTSCOPE_LOG_FILE"`

	// Seed fixes the fixture's noise source. Zero seeds from the clock.
	Seed uint64 `env:"VOLTSCOPE_SEED" envDefault:"0"`

	Narrative NarrativeConfig
}

// NarrativeConfig tunes narrative generation.
type NarrativeConfig struct {
	MaxTokens      int     `env:"VOLTSCOPE_NARRATIVE_MAX_TOKENS" envDefault:"0"`
	StoryMaxTokens int     `env:"VOLTSCOPE_STORY_MAX_TOKENS" envDefault:"0"`
	Temperature    float64 `env:"VOLTSCOPE_NARRATIVE_TEMPERATURE" envDefault:"0"`
}

// Load parses Config from the process environment.
func Load() (Config, error) {
	return parse(nil)
}

// parse reads from environ, or from the process environment when environ
// is nil.
func parse(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ResolveDBPath returns DBPath, or the default location when unset. The
// parent directory is created either way.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath == "" {
		return store.DefaultDBPath()
	}
	if err := store.EnsureDir(c.DBPath); err != nil {
		return "", fmt.Errorf("create db dir: %w", err)
	}
	return c.DBPath, nil
}
