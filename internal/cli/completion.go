package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for brainwave.

Bash:
  $ source <(brainwave completion bash)

Zsh:
  $ brainwave completion zsh > "${fpath[1]}/_brainwave"

Fish:
  $ brainwave completion fish > ~/.config/fish/completions/brainwave.fish

PowerShell:
  PS> brainwave completion powershell | Out-String | Invoke-Expression

Map file arguments complete to *.json files.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// completeMapFile completes the first positional argument to JSON files.
func completeMapFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

// withMapFileCompletion sets map file completion on every command that takes
// a map as its first argument.
func withMapFileCompletion(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		if cmd.ValidArgsFunction == nil {
			cmd.ValidArgsFunction = completeMapFile
		}
	}
}
