// Package config loads the optional valenz YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/valenz/internal/quiz"
)

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	Quiz struct {
		Distractors int    `yaml:"distractors"`
		RetryTally  string `yaml:"retry_tally"`
	} `yaml:"quiz"`
	LLM struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		Timeout  string `yaml:"timeout"`
	} `yaml:"llm"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.Quiz.Distractors = quiz.DefaultDistractors
	cfg.Quiz.RetryTally = quiz.KeepRight.String()
	return cfg
}

// DefaultPath returns $XDG_CONFIG_HOME/valenz/config.yaml, falling back to
// ~/.config/valenz/config.yaml.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "valenz", "config.yaml"), nil
}

// Resolve picks the config path: the flag value, then VALENZ_CONFIG, then
// DefaultPath. explicit reports whether the user named the file, in which
// case it must exist.
func Resolve(flagPath string) (path string, explicit bool, err error) {
	if flagPath != "" {
		return flagPath, true, nil
	}
	if p := os.Getenv("VALENZ_CONFIG"); p != "" {
		return p, true, nil
	}
	p, err := DefaultPath()
	return p, false, err
}

// Load reads YAML config from path on top of Default. A missing file is only
// an error when required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// LoadFlag resolves the path from a --config flag value, loads it and
// overlays environment variables.
func LoadFlag(flagPath string) (Config, error) {
	path, explicit, err := Resolve(flagPath)
	if err != nil {
		return Default(), err
	}
	cfg, err := Load(path, explicit)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// applyEnv overlays environment variables, which win over the file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("VALENZ_RETRY_TALLY"); v != "" {
		cfg.Quiz.RetryTally = v
	}
	if v := os.Getenv("VALENZ_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate rejects values the quiz cannot use.
func (c Config) Validate() error {
	if c.Quiz.Distractors < 0 {
		return fmt.Errorf("quiz.distractors must not be negative, got %d", c.Quiz.Distractors)
	}
	if _, err := quiz.ParseRetryTally(c.Quiz.RetryTally); err != nil {
		return fmt.Errorf("quiz.retry_tally: %w", err)
	}
	if c.LLM.Timeout != "" {
		if _, err := time.ParseDuration(c.LLM.Timeout); err != nil {
			return fmt.Errorf("llm.timeout: %w", err)
		}
	}
	return nil
}

// QuizOptions converts the quiz section into controller options.
func (c Config) QuizOptions() []quiz.Option {
	tally, _ := quiz.ParseRetryTally(c.Quiz.RetryTally)
	return []quiz.Option{
		quiz.WithDistractors(c.Quiz.Distractors),
		quiz.WithRetryTally(tally),
	}
}

// LLMTimeout parses llm.timeout or returns the fallback if empty or invalid.
func (c Config) LLMTimeout(fallback time.Duration) time.Duration {
	return Duration(c.LLM.Timeout, fallback)
}

// Duration parses a duration string or returns the fallback if empty.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
