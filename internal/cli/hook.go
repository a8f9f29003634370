package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/config"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/gate"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/hook"
)

func init() {
	rootCmd.AddCommand(hookCmd)
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run as a PreToolUse hook (reads the tool-call payload from stdin)",
	Long: "Reads an agent tool-call payload from stdin, validates any shell command it carries,\n" +
		"and exits 0 (allow) or 77 (block) per the hook convention. Payloads that do not\n" +
		"decode block: this boundary is fail-closed, unlike allow-on-error hooks elsewhere.",
	Run: runHook,
}

func runHook(cmd *cobra.Command, args []string) {
	payload, err := hook.ReadPayload(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "autoclaude-gate: %v\n", err)
		os.Exit(hook.ExitBlocked)
	}

	if !payload.WantsValidation() {
		os.Exit(hook.ExitAllow)
	}

	projectDir := payload.Cwd
	if projectDir == "" {
		if wd, err := os.Getwd(); err == nil {
			projectDir = wd
		} else {
			projectDir = "."
		}
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "autoclaude-gate: %v\n", err)
		os.Exit(hook.ExitBlocked)
	}

	g, err := gate.New(gate.Config{
		AuditLogPath:  cfg.AuditLogPath,
		HistoryPath:   cfg.HistoryPath,
		StrictDefault: cfg.StrictDefault,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "autoclaude-gate: %v\n", err)
		os.Exit(hook.ExitBlocked)
	}
	d := g.Validate(payload.ToolInput.Command, projectDir)
	if !d.Allowed {
		fmt.Fprintln(os.Stderr, hook.BlockMessage(d))
	}
	// Record calls sync per line; Close before the explicit exit since
	// deferred calls would not run.
	g.Close()
	os.Exit(hook.ExitCode(d))
}
