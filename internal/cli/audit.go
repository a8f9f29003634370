package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/audit"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/config"
)

var auditPath string

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.PersistentFlags().StringVar(&auditPath, "log", "", "Audit log path (default: configured gate audit log)")
	auditCmd.AddCommand(auditVerifyCmd)
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Work with the hash-chained decision log",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the decision log's hash chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := auditPath
		if path == "" {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			path = cfg.AuditLogPath
		}

		result := audit.Verify(path)
		if !result.Valid {
			fmt.Fprintf(os.Stderr, "chain broken at line %d: %s\n", result.ErrorLine, result.Error)
			os.Exit(1)
		}
		fmt.Printf("chain intact: %d entries\n", result.Lines)
		return nil
	},
}
