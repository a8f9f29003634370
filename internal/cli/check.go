package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/config"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/gate"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/hook"
)

var (
	checkProjectDir string
	checkJSON       bool
	checkNoSinks    bool
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkProjectDir, "project", "p", ".", "Project directory the command would run in")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the decision as JSON")
	checkCmd.Flags().BoolVar(&checkNoSinks, "no-record", false, "Do not write audit log or history")
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] -- <command string>",
	Short: "Check whether a command would be allowed",
	Long:  "Evaluates the command against the project's security profile and prints the decision.\nExit code 0 means allowed, 77 means blocked.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	gateCfg := gate.Config{StrictDefault: cfg.StrictDefault}
	if !checkNoSinks {
		gateCfg.AuditLogPath = cfg.AuditLogPath
		gateCfg.HistoryPath = cfg.HistoryPath
	}

	g, err := gate.New(gateCfg)
	if err != nil {
		return fmt.Errorf("failed to create gate: %w", err)
	}

	command := strings.Join(args, " ")
	d := g.Validate(command, checkProjectDir)

	if checkJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return err
		}
	} else if d.Allowed {
		fmt.Println("allowed")
	} else {
		fmt.Println(hook.BlockMessage(d))
	}

	g.Close()
	if !d.Allowed {
		os.Exit(hook.ExitBlocked)
	}
	return nil
}
