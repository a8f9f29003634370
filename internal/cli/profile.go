package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/profile"
)

var profileProjectDir string

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.PersistentFlags().StringVarP(&profileProjectDir, "project", "p", ".", "Project directory")
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileInitCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect or regenerate a project's security profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the project's security profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := profile.GetOrCreateProfile(profileProjectDir)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

var profileInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Re-analyze the project and rewrite its policy file",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := profile.Analyze(profileProjectDir)
		if err := profile.Save(p, profileProjectDir); err != nil {
			return fmt.Errorf("failed to write policy file: %w", err)
		}
		fmt.Printf("wrote %s (%d allowed commands)\n",
			profile.PolicyFilePath(profileProjectDir), len(p.AllAllowedCommands()))
		return nil
	},
}
