// Package config handles the optional .dotenvrc.json settings file.
//
// It provides functionality for:
//   - Loading settings from .dotenvrc.json or .dotenvrc in the working directory
//   - Default values for every setting
//   - Merging settings so explicit values take precedence
package config
