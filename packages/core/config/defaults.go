package config

import (
	"github.com/abdul-hamid-achik/dotenv/packages/core/env"
	"github.com/abdul-hamid-achik/dotenv/packages/output"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		File:     "",
		Quote:    string(env.QuoteAlways),
		Export:   BoolPtr(false),
		Format:   string(output.FormatSimple),
		Override: BoolPtr(true),
		Verbose:  BoolPtr(false),
		NoColor:  BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.File == defaults.File &&
		c.Quote == defaults.Quote &&
		c.GetExport() == defaults.GetExport() &&
		c.Format == defaults.Format &&
		c.GetOverride() == defaults.GetOverride() &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor()
}
