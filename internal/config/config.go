// Package config handles XDG configuration directory, file paths, and
// environment settings.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskdeck"

	// SessionFile is the persisted session filename.
	SessionFile = "session.json"

	// EnvAPIURL is the environment variable overriding the backend base URL.
	EnvAPIURL = "TASKDECK_API_URL"

	// EnvOpenAIKey enables the direct assistant responder when set.
	EnvOpenAIKey = "OPENAI_API_KEY"

	// DefaultBaseURL is the backend base URL used when TASKDECK_API_URL is unset.
	DefaultBaseURL = "http://localhost:8000/api"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the backend API base URL, trailing slash stripped.
	BaseURL string

	// OpenAIKey is the optional API key for the direct assistant responder.
	OpenAIKey string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskdeck or $HOME/.config/taskdeck.
// A .env file in the config directory is loaded if present; variables already
// set in the environment win over .env values.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	// A missing .env is not an error.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	base := os.Getenv(EnvAPIURL)
	if base == "" {
		base = DefaultBaseURL
	}

	return &Config{
		Dir:       dir,
		BaseURL:   strings.TrimSuffix(base, "/"),
		OpenAIKey: os.Getenv(EnvOpenAIKey),
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SessionPath returns the path to the persisted session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasSession checks if a persisted session file exists.
func (c *Config) HasSession() bool {
	_, err := os.Stat(c.SessionPath())
	return err == nil
}
