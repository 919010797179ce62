package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/vocablink/internal/vocab"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the in-memory representation of ~/.vocablink/vocablink.yaml.
type Config struct {
	NotesRoot   string   `yaml:"notes_root"`
	Extensions  []string `yaml:"extensions,omitempty"`
	Excludes    []string `yaml:"excludes,omitempty"`
	MatchPolicy string   `yaml:"match_policy,omitempty"`
	Debounce    string   `yaml:"debounce,omitempty"`
	Workers     int      `yaml:"workers,omitempty"`
	LogLevel    string   `yaml:"log_level,omitempty"`
}

// Dir returns the absolute path to ~/.vocablink/.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".vocablink"), nil
}

// ConfigPath returns the absolute path to ~/.vocablink/vocablink.yaml.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vocablink.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the Config written on first vocablink init.
func DefaultConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		NotesRoot:  filepath.Join(home, "notes"),
		Extensions: []string{".md", ".txt"},
		Excludes: []string{
			".DS_Store",
			".git/",
			".obsidian/",
			".trash/",
			"*.tmp",
			"*~",
		},
		MatchPolicy: vocab.PolicyPrefix.String(),
		Debounce:    "500ms",
		Workers:     4,
		LogLevel:    "warn",
	}, nil
}

// Load reads ~/.vocablink/vocablink.yaml. A missing file yields the
// defaults. Environment variables (or ~/.vocablink/.env) override
// notes_root, match_policy and log_level.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}

	overrides := []struct {
		key string
		dst *string
	}{
		{"VOCABLINK_NOTES_ROOT", &cfg.NotesRoot},
		{"VOCABLINK_MATCH_POLICY", &cfg.MatchPolicy},
		{"VOCABLINK_LOG_LEVEL", &cfg.LogLevel},
	}
	for _, o := range overrides {
		v, err := GetConfigValue(o.key)
		if err != nil {
			return nil, err
		}
		if v != "" {
			*o.dst = v
		}
	}

	// Expand ~ in NotesRoot at load time.
	cfg.NotesRoot, err = ExpandPath(cfg.NotesRoot)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save marshals cfg and writes it to ~/.vocablink/vocablink.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// Policy returns the configured match policy.
func (c *Config) Policy() (vocab.MatchPolicy, error) {
	p, err := vocab.ParsePolicy(c.MatchPolicy)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return p, nil
}

// DebounceWindow returns the parsed debounce duration, or zero when unset.
func (c *Config) DebounceWindow() (time.Duration, error) {
	if c.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 0, fmt.Errorf("%w: debounce %q: %v", ErrInvalid, c.Debounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: debounce %q is negative", ErrInvalid, c.Debounce)
	}
	return d, nil
}

// Validate checks every field that has a fixed set of legal values.
func (c *Config) Validate() error {
	if c.NotesRoot == "" {
		return fmt.Errorf("%w: notes_root is empty", ErrInvalid)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: extensions is empty", ErrInvalid)
	}
	for _, e := range c.Extensions {
		if !strings.HasPrefix(e, ".") {
			return fmt.Errorf("%w: extension %q must start with '.'", ErrInvalid, e)
		}
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.DebounceWindow(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1 (got %d)", ErrInvalid, c.Workers)
	}
	return nil
}
