package cmd

import (
	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dotenv.

To load completions:

Bash:
  $ source <(dotenv completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ dotenv completion bash > /etc/bash_completion.d/dotenv
  # macOS:
  $ dotenv completion bash > $(brew --prefix)/etc/bash_completion.d/dotenv

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ dotenv completion zsh > "${fpath[1]}/_dotenv"

Fish:
  $ dotenv completion fish | source

  # To load completions for each session, execute once:
  $ dotenv completion fish > ~/.config/fish/completions/dotenv.fish

PowerShell:
  PS> dotenv completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
