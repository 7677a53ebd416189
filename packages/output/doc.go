// Package output renders dotenv results for the terminal.
//
// Supported list formats:
//   - simple: KEY=VALUE, one line per assignment
//   - json: a sorted JSON object, later assignments win
//   - shell: KEY='value' lines quoted for POSIX shells
//   - export: like shell, prefixed with "export "
//   - yaml: a sorted YAML mapping, later assignments win
//
// ConsoleFormatter writes colored warnings and errors.
package output
