// Package mcp exposes the security gate over the Model Context
// Protocol so agent frontends can pre-check commands without spawning
// the hook binary per call.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/gate"
)

// Config holds MCP server configuration.
type Config struct {
	AuditLogPath  string
	HistoryPath   string
	StrictDefault bool
	Version       string
}

// Server wraps the MCP SDK server around one shared Gate.
type Server struct {
	mcpServer *mcpsdk.Server
	gate      *gate.Gate
}

// New creates an MCP server with a gate wired to the configured sinks.
func New(cfg Config) (*Server, error) {
	g, err := gate.New(gate.Config{
		AuditLogPath:  cfg.AuditLogPath,
		HistoryPath:   cfg.HistoryPath,
		StrictDefault: cfg.StrictDefault,
	})
	if err != nil {
		return nil, fmt.Errorf("mcp: %w", err)
	}

	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	s := &Server{
		gate: g,
		mcpServer: mcpsdk.NewServer(
			&mcpsdk.Implementation{
				Name:    "auto-claude-gate",
				Version: version,
			},
			nil,
		),
	}
	s.registerTools()
	return s, nil
}

// Run serves on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Gate exposes the underlying gate (serve command wires the watcher to
// its profile cache).
func (s *Server) Gate() *gate.Gate {
	return s.gate
}

// Close closes the gate's sinks.
func (s *Server) Close() error {
	return s.gate.Close()
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "gate_check",
		Description: "Check whether a shell command is permitted in a project before running it. Returns the decision with rule class and reason.",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "gate_profile",
		Description: "Show the project's security profile: allowed command categories and detected stack.",
	}, s.handleProfile)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "gate_reset_cache",
		Description: "Discard all cached security profiles so the next check re-reads policy files from disk.",
	}, s.handleResetCache)
}
