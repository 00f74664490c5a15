// Package settings loads the formdialog CLI configuration from
// ~/.config/formdialog/config.yaml.
package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdialog/pkg/output"
)

// Presenter names accepted by the CLI.
const (
	PresenterAuto   = "auto"
	PresenterPrompt = "prompt"
	PresenterScreen = "screen"
)

// Config holds the persisted CLI settings. Flags override every field.
type Config struct {
	// Presenter is "auto", "prompt" or "screen".
	Presenter string `yaml:"presenter"`
	// Format is the result encoding: "json", "form" or "pretty".
	Format string `yaml:"format"`
	// LogLevel is a charmbracelet/log level name.
	LogLevel string `yaml:"log_level"`
	// Keyring enables recalling remembered passwords from the system keyring.
	Keyring bool `yaml:"keyring"`
	// KeyringService namespaces keyring entries.
	KeyringService string `yaml:"keyring_service"`
	// AltScreen draws the screen presenter on the alternate buffer.
	AltScreen bool `yaml:"alt_screen"`
	// DialogFiles are loaded in addition to -file.
	DialogFiles []string `yaml:"dialog_files,omitempty"`
	// HTTPTimeout caps remote OpenAPI fetches.
	HTTPTimeout time.Duration `yaml:"http_timeout"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Presenter:      PresenterAuto,
		Format:         string(output.FormatJSON),
		LogLevel:       "warn",
		Keyring:        true,
		KeyringService: "formdialog",
		AltScreen:      true,
		HTTPTimeout:    10 * time.Second,
	}
}

// DefaultPath returns ~/.config/formdialog/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("settings: home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "formdialog", "config.yaml"), nil
}

// Load reads path over the defaults. An empty path selects DefaultPath; a
// missing file yields the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("settings: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("settings: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.Presenter {
	case PresenterAuto, PresenterPrompt, PresenterScreen:
	default:
		return fmt.Errorf("unknown presenter %q", c.Presenter)
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative")
	}
	return nil
}

// Save writes the settings to path, creating its directory.
func (c Config) Save(path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("settings: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("settings: write %s: %w", path, err)
	}
	return nil
}
