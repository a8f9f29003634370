package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autoclaude-gate",
	Short: "Command execution security gate for auto-claude agents",
	Long:  "Decides, before execution, whether a compound shell command is allowed under a project's evolving allowlist policy. Fail-closed: parse ambiguity and internal failures block.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
