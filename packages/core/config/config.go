package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/dotenv/packages/core/env"
	"github.com/abdul-hamid-achik/dotenv/packages/output"
)

// Config represents the dotenv settings file
type Config struct {
	File     string `json:"file,omitempty"`     // .env path used when --file is not given
	Quote    string `json:"quote,omitempty"`    // always, never or auto
	Export   *bool  `json:"export,omitempty"`   // prefix new keys with "export "
	Format   string `json:"format,omitempty"`   // default list format
	Override *bool  `json:"override,omitempty"` // run: file values replace existing variables
	Verbose  *bool  `json:"verbose,omitempty"`
	NoColor  *bool  `json:"noColor,omitempty"`
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetExport returns the export setting, defaulting to false
func (c *Config) GetExport() bool {
	return getBool(c.Export, false)
}

// GetOverride returns the override setting, defaulting to true
func (c *Config) GetOverride() bool {
	return getBool(c.Override, true)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".dotenvrc.json",
	".dotenvrc",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := fileConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return DefaultConfig().Merge(&fileConfig), nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if c.Quote != "" {
		if _, err := env.ParseQuoteMode(c.Quote); err != nil {
			return err
		}
	}
	if c.Format != "" {
		if _, err := output.ParseFormat(c.Format); err != nil {
			return err
		}
	}
	return nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.File != "" {
		result.File = other.File
	}
	if other.Quote != "" {
		result.Quote = other.Quote
	}
	if other.Format != "" {
		result.Format = other.Format
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Export != nil {
		result.Export = other.Export
	}
	if other.Override != nil {
		result.Override = other.Override
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
