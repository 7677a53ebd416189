package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/abdul-hamid-achik/dotenv/packages/core/config"
	"github.com/abdul-hamid-achik/dotenv/packages/core/env"
	"github.com/abdul-hamid-achik/dotenv/packages/output"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// rootOptions holds the global flags and the state derived from them.
type rootOptions struct {
	file       string
	quote      string
	export     bool
	configPath string
	noColor    bool
	verbose    bool

	cfg     *config.Config
	console *output.ConsoleFormatter
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dotenv",
		Short: "Get, set and unset keys in .env files.",
		Long: `dotenv reads and edits .env files without disturbing comments,
blank lines or any key you did not ask to change.

When --file is omitted the nearest .env file is used, searching from the
current directory up to the filesystem root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", getEnvString("DOTENV_FILE", ""), "Location of the .env file (env: DOTENV_FILE)")
	flags.StringVarP(&opts.quote, "quote", "q", getEnvString("DOTENV_QUOTE", ""), "Quote values when writing: always, never, auto (env: DOTENV_QUOTE)")
	flags.BoolVarP(&opts.export, "export", "e", getEnvBool("DOTENV_EXPORT", false), "Prefix written keys with \"export \" (env: DOTENV_EXPORT)")
	flags.StringVar(&opts.configPath, "config", getEnvString("DOTENV_CONFIG", ""), "Path to config file (env: DOTENV_CONFIG)")
	flags.BoolVar(&opts.noColor, "no-color", getEnvBool("DOTENV_NO_COLOR", false), "Disable colored output (env: DOTENV_NO_COLOR)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print the .env file being used")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newGetCmd(opts))
	rootCmd.AddCommand(newSetCmd(opts))
	rootCmd.AddCommand(newUnsetCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd(opts))

	return rootCmd
}

// setup applies the settings file under flags and DOTENV_* variables.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return &exitError{code: ExitConfigError, err: fmt.Errorf("loading config: %w", err)}
	}
	o.cfg = cfg

	flags := cmd.Flags()
	if !flags.Changed("no-color") && !envSet("DOTENV_NO_COLOR") {
		o.noColor = cfg.GetNoColor()
	}
	if !flags.Changed("export") && !envSet("DOTENV_EXPORT") {
		o.export = cfg.GetExport()
	}
	if !flags.Changed("verbose") {
		o.verbose = cfg.GetVerbose()
	}
	if o.quote == "" {
		o.quote = cfg.Quote
	}
	if _, err := env.ParseQuoteMode(o.quote); err != nil {
		return usageError(err)
	}

	o.console = output.NewConsoleFormatter(
		output.WithWriter(cmd.ErrOrStderr()),
		output.WithVerbose(o.verbose),
		output.WithNoColor(o.noColor),
	)
	if !cfg.IsDefault() {
		o.console.Verbose("Settings: quote=%s export=%t format=%s override=%t",
			cfg.Quote, cfg.GetExport(), cfg.Format, cfg.GetOverride())
	}
	return nil
}

// resolvePath picks the .env file: --file, then the settings file, then the
// nearest .env above the working directory, then ./.env.
func (o *rootOptions) resolvePath() (string, error) {
	explicit := o.file
	if explicit == "" {
		explicit = o.cfg.File
	}

	path, err := env.FindDotenv(explicit, "")
	if errors.Is(err, env.ErrNotFound) {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return "", fmt.Errorf("cannot determine working directory: %w", wdErr)
		}
		path = filepath.Join(wd, env.DefaultFilename)
	} else if err != nil {
		return "", err
	}

	o.console.Verbose("Using %s", path)
	return path, nil
}

func (o *rootOptions) editor() (*env.Editor, error) {
	path, err := o.resolvePath()
	if err != nil {
		return nil, err
	}

	mode, err := env.ParseQuoteMode(o.quote)
	if err != nil {
		return nil, usageError(err)
	}

	return env.NewEditor(path,
		env.WithQuoteMode(mode),
		env.WithExport(o.export),
		env.WithWarnFunc(o.console.Warn),
	), nil
}

func (o *rootOptions) handleError(err error, stderr io.Writer) int {
	code := exitCode(err)

	var ee *exitError
	if errors.As(err, &ee) && ee.silent {
		return code
	}

	console := o.console
	if console == nil {
		console = output.NewConsoleFormatter(output.WithWriter(stderr), output.WithNoColor(o.noColor))
	}
	console.FormatError(err)
	return code
}

// execute runs one CLI invocation and returns its exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return opts.handleError(err, stderr)
	}
	return ExitSuccess
}

func Execute(v, bt string) {
	version = v
	buildTime = bt

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
