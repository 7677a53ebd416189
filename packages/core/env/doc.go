// Package env reads, rewrites and loads .env files.
//
// It provides functionality for:
//   - Parsing .env content into a Document that round-trips byte for byte
//   - Getting, setting and unsetting a single key without touching other lines
//   - Locating the nearest .env file by walking up parent directories
//   - Loading entries into an environment, with ${VAR} interpolation
//
// Parsing is lenient: lines that are not comments, blanks or assignments are
// kept verbatim as opaque lines and never cause an error.
package env
