// Package config handles loading and parsing of LazyVault configuration.
// Configuration is loaded from ~/.lazyvault/config.yaml or ./config.yaml
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/marjoballabani/lazyvault/pkg/vault"
)

// Config is the root configuration structure for LazyVault.
type Config struct {
	UI    UIConfig    `mapstructure:"ui"`
	Vault VaultConfig `mapstructure:"vault"`
	Log   LogConfig   `mapstructure:"log"`
}

// UIConfig contains user interface configuration options.
type UIConfig struct {
	Theme ThemeConfig `mapstructure:"theme"`
	// ShowIcons toggles file-type icons in the filter panels
	ShowIcons bool `mapstructure:"showIcons"`
	// NerdFontsVersion selects the icon set: "2", "3", or "" for none
	NerdFontsVersion string `mapstructure:"nerdFontsVersion"`
	// Language is a BCP 47 tag such as "en" or "es"
	Language string `mapstructure:"language"`
}

// ThemeConfig defines the color scheme for the terminal UI.
// Colors can be specified as:
//   - Named colors: "cyan", "blue", "red", "green", "yellow", "magenta", "white", "black", "default"
//   - Hex colors: "#ed8796"
//   - 256-color numbers: "0" to "255"
//   - Attributes: "bold", "underline", "reverse"
type ThemeConfig struct {
	ActiveBorderColor   []string `mapstructure:"activeBorderColor"`
	InactiveBorderColor []string `mapstructure:"inactiveBorderColor"`
	OptionsTextColor    []string `mapstructure:"optionsTextColor"`
	SelectedLineBgColor []string `mapstructure:"selectedLineBgColor"`
	// FilterBorderColor is used for the search input border
	FilterBorderColor []string `mapstructure:"filterBorderColor"`
	// DisabledTextColor dims facet rows that cannot be selected
	DisabledTextColor []string `mapstructure:"disabledTextColor"`
}

// VaultConfig locates the export and the browsing state.
type VaultConfig struct {
	ExportPath string        `mapstructure:"exportPath"`
	StatePath  string        `mapstructure:"statePath"`
	Watch      bool          `mapstructure:"watch"`
	Queries    vault.Queries `mapstructure:"queries"`
}

// LogConfig controls the log file. The terminal is owned by the UI, so logs
// never go to stdout.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Dir returns ~/.lazyvault, or "." when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".lazyvault")
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := Dir()
	return &Config{
		UI: UIConfig{
			Theme: ThemeConfig{
				ActiveBorderColor:   []string{"cyan"},
				InactiveBorderColor: []string{"default"},
				OptionsTextColor:    []string{"cyan"},
				SelectedLineBgColor: []string{"blue"},
				FilterBorderColor:   []string{"yellow"},
				DisabledTextColor:   []string{"8"},
			},
			ShowIcons:        true,
			NerdFontsVersion: "3",
			Language:         "en",
		},
		Vault: VaultConfig{
			ExportPath: filepath.Join(dir, "vault.json"),
			StatePath:  filepath.Join(dir, "state.db"),
			Watch:      true,
			Queries:    vault.DefaultQueries(),
		},
		Log: LogConfig{
			Level: "warn",
			File:  filepath.Join(dir, "lazyvault.log"),
		},
	}
}

// LoadConfig loads configuration from file or returns defaults.
// An explicit path must exist; otherwise config.yaml is searched for in
// ~/.lazyvault/ and the current directory.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if err := os.MkdirAll(Dir(), 0o755); err == nil {
			v.AddConfigPath(Dir())
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config")
		}
		return config, nil
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	config.Vault.ExportPath = expandHome(config.Vault.ExportPath)
	config.Vault.StatePath = expandHome(config.Vault.StatePath)
	config.Log.File = expandHome(config.Log.File)
	return config, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
