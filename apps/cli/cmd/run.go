package cmd

import (
	"errors"
	"os"
	"os/exec"

	"github.com/abdul-hamid-achik/dotenv/packages/core/env"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		overrideFlag   bool
		noOverrideFlag bool
	)

	runCmd := &cobra.Command{
		Use:   "run [flags] COMMAND [ARG...]",
		Short: "Run a command with the .env values in its environment",
		Long: `Run COMMAND with the variables of the .env file added to its environment.

Values may reference other variables as ${VAR} or ${VAR:-default}.
By default file values replace variables already set in the environment;
pass --no-override to keep the existing ones.

The exit status of COMMAND is passed through.

Examples:
  dotenv run -- printenv DATABASE_URL
  dotenv -f .env.test run --no-override go test ./...`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			override := opts.cfg.GetOverride()
			if cmd.Flags().Changed("override") {
				override = overrideFlag
			}
			if noOverrideFlag {
				override = false
			}
			return runCommand(cmd, opts, override, args)
		},
	}

	runCmd.Flags().SetInterspersed(false)
	runCmd.Flags().BoolVar(&overrideFlag, "override", true, "Replace variables already set in the environment")
	runCmd.Flags().BoolVar(&noOverrideFlag, "no-override", false, "Keep variables already set in the environment")
	runCmd.MarkFlagsMutuallyExclusive("override", "no-override")

	return runCmd
}

func runCommand(cmd *cobra.Command, opts *rootOptions, override bool, args []string) error {
	path, err := opts.resolvePath()
	if err != nil {
		return err
	}

	environ := env.NewMapEnviron(os.Environ())
	if _, err := env.Load(path,
		env.WithEnviron(environ),
		env.WithOverride(override),
		env.WithWarnFunc(opts.console.Warn),
	); err != nil {
		return err
	}

	child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
	child.Env = environ.List()
	child.Stdin = cmd.InOrStdin()
	child.Stdout = cmd.OutOrStdout()
	child.Stderr = cmd.ErrOrStderr()

	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				code = ExitFailure
			}
			return &exitError{code: code, err: err, silent: true}
		}
		return err
	}
	return nil
}
