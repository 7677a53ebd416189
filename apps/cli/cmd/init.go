package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/dotenv/packages/core/config"
	"github.com/abdul-hamid-achik/dotenv/packages/core/env"
	"github.com/spf13/cobra"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var (
		forceInit  bool
		withConfig bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty .env file",
		Long: `Create an empty .env file so that "dotenv set" has something to edit.

This creates:
  - .env             - at --file, or in the current directory
  - .dotenvrc.json   - default settings (with --with-config)

Examples:
  dotenv init
  dotenv -f config/.env init --force
  dotenv init --with-config`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommand(cmd, opts, forceInit, withConfig)
		},
	}

	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite existing files")
	initCmd.Flags().BoolVar(&withConfig, "with-config", false, "Also write a .dotenvrc.json with the default settings")

	return initCmd
}

func initCommand(cmd *cobra.Command, opts *rootOptions, force, withConfig bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	envFile := opts.file
	if envFile == "" {
		envFile = filepath.Join(cwd, env.DefaultFilename)
	}
	configFile := filepath.Join(filepath.Dir(envFile), config.ConfigFilenames[0])

	targets := []string{envFile}
	if withConfig {
		targets = append(targets, configFile)
	}
	if !force {
		for _, f := range targets {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}

	if err := os.WriteFile(envFile, nil, 0600); err != nil {
		return fmt.Errorf("failed to create env file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", envFile)

	if withConfig {
		cfg := config.DefaultConfig()
		if opts.file != "" {
			cfg.File = filepath.Base(envFile)
		}
		if err := cfg.SaveConfig(configFile); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)
	}

	return nil
}
