// Package cmd implements the dotenv CLI commands using Cobra.
//
// Available commands:
//   - get: Print the value of a key
//   - set: Write a key, replacing its last assignment
//   - unset: Remove every assignment to a key
//   - list: Print all assignments in several formats, optionally watching the file
//   - run: Run a command with the file loaded into its environment
//   - init: Create an empty .env file and optional settings file
//   - completion: Generate shell completion scripts
//   - version: Show dotenv version information
//
// Every command operates on the file named by --file, or the nearest .env
// found by walking up from the current directory.
package cmd
