// Package gate is the boundary the hook process calls: one Validate
// per candidate command, always terminating in a Decision. No error
// kind escapes — unexpected internal failures become fail-closed
// blocks.
package gate

import (
	"fmt"
	"os"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/audit"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/cache"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/history"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/netguard"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/policy"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/shell"
)

// Config holds gate construction options. Empty paths disable the
// corresponding sink; the decision path itself has no required
// dependencies beyond the filesystem.
type Config struct {
	AuditLogPath string
	HistoryPath  string

	// StrictDefault turns strict mode on when the env toggle is unset.
	// An explicit env value, truthy or not, always wins.
	StrictDefault bool

	// Profiles overrides the process-wide profile cache (tests).
	Profiles *cache.Cache
	// Network overrides the default network validator (tests).
	Network policy.NetworkValidator
}

// Gate evaluates candidate commands against a project's security
// profile. Safe for concurrent use.
type Gate struct {
	engine   *policy.Engine
	profiles *cache.Cache
	modes    func() policy.Modes
	auditLog *audit.Log
	hist     *history.Store
}

// New creates a Gate. Sink failures (unwritable audit or history path)
// are surfaced here, at construction, not on the decision path.
func New(cfg Config) (*Gate, error) {
	profiles := cfg.Profiles
	if profiles == nil {
		profiles = cache.Default()
	}
	network := cfg.Network
	if network == nil {
		network = netguard.New()
	}

	modes := func() policy.Modes {
		m := policy.ModesFromEnv()
		if cfg.StrictDefault {
			if _, set := os.LookupEnv(policy.EnvStrictMode); !set {
				m.Strict = true
			}
		}
		return m
	}

	g := &Gate{
		engine:   policy.NewEngine(profiles, network, modes),
		profiles: profiles,
		modes:    modes,
	}

	if cfg.AuditLogPath != "" {
		log, err := audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("gate: %w", err)
		}
		g.auditLog = log
	}
	if cfg.HistoryPath != "" {
		st, err := history.Open(cfg.HistoryPath)
		if err != nil {
			if g.auditLog != nil {
				g.auditLog.Close()
			}
			return nil, fmt.Errorf("gate: %w", err)
		}
		g.hist = st
	}
	return g, nil
}

// Validate decides whether command may run in projectDir. Every call
// terminates with a Decision: panics anywhere below are recovered into
// a block with rule class "internal".
func (g *Gate) Validate(command, projectDir string) (d policy.Decision) {
	defer func() {
		if r := recover(); r != nil {
			d = policy.Block(policy.RuleInternal,
				fmt.Sprintf("internal validation failure: %v", r), command)
			g.record(command, projectDir, d)
		}
	}()

	d = g.engine.Evaluate(command, projectDir)
	g.record(command, projectDir, d)
	return d
}

// record writes the decision to the configured sinks. Sink errors are
// reported to stderr but never change the decision.
func (g *Gate) record(command, projectDir string, d policy.Decision) {
	if g.auditLog != nil {
		err := g.auditLog.Record(audit.Entry{
			ProjectDir:       projectDir,
			Command:          command,
			Commands:         shell.ExtractCommands(command),
			Allowed:          d.Allowed,
			Rule:             d.Rule,
			Reason:           d.Reason,
			OffendingSegment: d.OffendingSegment,
			StrictMode:       g.modes().Strict,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "auto-claude-gate: audit: %v\n", err)
		}
	}
	if g.hist != nil {
		if err := g.hist.Record(projectDir, command, d.Allowed, d.Rule, d.Reason); err != nil {
			fmt.Fprintf(os.Stderr, "auto-claude-gate: history: %v\n", err)
		}
	}
}

// Profiles exposes the profile cache for serve-mode invalidation.
func (g *Gate) Profiles() *cache.Cache {
	return g.profiles
}

// ResetProfileCache discards all cached profiles.
func (g *Gate) ResetProfileCache() {
	g.profiles.Reset()
}

// Close closes the audit and history sinks.
func (g *Gate) Close() error {
	var first error
	if g.auditLog != nil {
		if err := g.auditLog.Close(); err != nil {
			first = err
		}
	}
	if g.hist != nil {
		if err := g.hist.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
