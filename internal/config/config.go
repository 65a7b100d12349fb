package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/dracula/internal/storage"
)

// EnvGitHubToken is read for the API token when none is configured.
const EnvGitHubToken = "GITHUB_TOKEN"

// Defaults for tunables.
const (
	DefaultAPIURL        = "https://api.github.com"
	DefaultCacheTTL      = 6 * time.Hour
	DefaultTimeout       = 10 * time.Second
	DefaultConcurrency   = 8
	DefaultThreshold     = 80
	DefaultMargin        = 10
	DefaultMaxCandidates = 5
	DefaultSort          = "stars"
)

// Duration is a time.Duration read from a TOML string such as "6h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ResolveConfig tunes app name resolution.
type ResolveConfig struct {
	Threshold     int `toml:"threshold" json:"threshold"`           // minimum fuzzy score to auto-accept (0-100)
	Margin        int `toml:"margin" json:"margin"`                 // required lead over the runner-up
	MaxCandidates int `toml:"max_candidates" json:"max_candidates"` // candidates offered when ambiguous
}

// ListConfig holds defaults for "dracula all".
type ListConfig struct {
	DefaultSort string `toml:"default_sort" json:"default_sort"`
}

// Config holds the dracula configuration
type Config struct {
	APIURL      string        `toml:"api_url" json:"api_url"`
	CacheDir    string        `toml:"cache_dir" json:"cache_dir"`
	CacheTTL    Duration      `toml:"cache_ttl" json:"cache_ttl"`
	Timeout     Duration      `toml:"timeout" json:"timeout"`
	Concurrency int           `toml:"concurrency" json:"concurrency"`
	Token       string        `toml:"token" json:"token,omitempty"`
	Resolve     ResolveConfig `toml:"resolve" json:"resolve"`
	List        ListConfig    `toml:"list" json:"list"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		APIURL:      DefaultAPIURL,
		CacheTTL:    Duration{DefaultCacheTTL},
		Timeout:     Duration{DefaultTimeout},
		Concurrency: DefaultConcurrency,
		Resolve: ResolveConfig{
			Threshold:     DefaultThreshold,
			Margin:        DefaultMargin,
			MaxCandidates: DefaultMaxCandidates,
		},
		List: ListConfig{
			DefaultSort: DefaultSort,
		},
	}
}

// Path returns the path to the config file
func Path() (string, error) {
	dir, err := storage.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config from the default path.
// Returns Default() if file doesn't exist (no error).
// Returns error only if file exists but is invalid; the defaults are still
// returned alongside so the caller can warn and continue.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return withEnv(Default()), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path with env overrides applied.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return withEnv(Default()), nil
		}
		return withEnv(Default()), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return withEnv(Default()), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return withEnv(Default()), err
	}

	if cfg.CacheDir != "" {
		expanded, err := expandPath(cfg.CacheDir)
		if err != nil {
			return withEnv(Default()), fmt.Errorf("expand cache_dir: %w", err)
		}
		cfg.CacheDir = expanded
	}

	return withEnv(cfg), nil
}

// withEnv applies environment overrides.
func withEnv(cfg Config) Config {
	if dir := os.Getenv(storage.EnvCacheDir); dir != "" {
		cfg.CacheDir = dir
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv(EnvGitHubToken)
	}
	return cfg
}

// ResolveCacheDir returns the configured cache directory, falling back to
// the platform default. The directory is created.
func (c *Config) ResolveCacheDir() (string, error) {
	if c.CacheDir == "" {
		return storage.CacheDir()
	}
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		return "", err
	}
	return c.CacheDir, nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

const defaultConfig = `# dracula configuration

# Where fetched repository metadata is cached.
# Must be an absolute path or start with ~. Defaults to the platform cache dir.
# cache_dir = "~/.cache/dracula"

# How long cached metadata is served without asking GitHub.
cache_ttl = "6h"

# Per-request timeout for GitHub API calls.
timeout = "10s"

# Parallel requests when listing all apps.
concurrency = 8

# GitHub token for a higher rate limit. GITHUB_TOKEN is used when unset.
# token = ""

# GitHub API root, for GitHub Enterprise.
# api_url = "https://api.github.com"

[resolve]
# Minimum fuzzy score (0-100) for a misspelled name to be accepted.
threshold = 80
# How far the best match must lead the runner-up to be accepted.
margin = 10
# How many candidates to offer when the name is ambiguous.
max_candidates = 5

[list]
# name, stars, forks, size, watchers, language, issues,
# created_at, updated_at or pushed_at
default_sort = "stars"
`

// DefaultConfig returns the commented default config file.
func DefaultConfig() string {
	return defaultConfig
}

// Init writes the default config file and returns its path.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, InitFile(path, force)
}

// InitFile writes the default config to path.
func InitFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}
