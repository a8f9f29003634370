package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/config"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/mcp"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/watch"
)

var serveWatchDirs []string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringSliceVar(&serveWatchDirs, "watch", nil, "Project directories whose policy files invalidate the cache on change")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gate over MCP on stdio",
	Long:  "Exposes gate_check, gate_profile and gate_reset_cache as MCP tools so agent frontends\ncan pre-check commands without spawning the hook binary per call.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	server, err := mcp.New(mcp.Config{
		AuditLogPath:  cfg.AuditLogPath,
		HistoryPath:   cfg.HistoryPath,
		StrictDefault: cfg.StrictDefault,
		Version:       version,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(serveWatchDirs) > 0 {
		inv, err := watch.New(server.Gate().Profiles(), serveWatchDirs)
		if err != nil {
			// Stat-based freshness still holds without the watcher.
			fmt.Fprintf(os.Stderr, "autoclaude-gate: watcher disabled: %v\n", err)
		} else {
			go func() {
				if err := inv.Run(ctx); err != nil {
					fmt.Fprintf(os.Stderr, "autoclaude-gate: watcher: %v\n", err)
				}
			}()
		}
	}

	return server.Run(ctx)
}
