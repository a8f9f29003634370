package policy

import (
	"fmt"
	"strings"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/cache"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/shell"
)

// shellSpawners hand control to an interpreter, defeating static
// inspection of what actually runs. Denied in strict mode regardless of
// allowlist membership.
var shellSpawners = map[string]bool{
	"eval": true,
	"exec": true,
	"sh":   true,
	"bash": true,
	"zsh":  true,
}

// textProcessors can execute code through their expression languages
// (GNU sed's e flag, awk's system()). Strict mode denies them unless
// the caller opted in.
var textProcessors = map[string]bool{
	"sed":  true,
	"awk":  true,
	"gawk": true,
}

// NetworkValidator vets invocations of network-capable tools. A
// returned error is a rejection; the engine fails closed on it.
type NetworkValidator interface {
	ValidateNetworkCommand(name, segment string) error
}

// Engine composes the lexer, a project's security profile, and the
// mode flags into one allow/block decision per command string.
//
// Evaluation order (must not be changed):
//  1. Lexability — malformed quoting blocks everything downstream
//  2. Command extraction — empty names on non-trivial input blocks
//  3. Dangerous patterns on the raw string — never overridable
//  4. Privilege-escalation prefixes — same precedence
//  5. Per-name rules: allowlist, strict-mode, network validation
//
// Evaluation short-circuits on the first violating name; the decision
// carries that name's segment for diagnostics.
type Engine struct {
	profiles *cache.Cache
	network  NetworkValidator
	modes    func() Modes
}

// NewEngine creates an engine. A nil cache selects the process-wide
// default; a nil modes func reads the environment per call.
func NewEngine(profiles *cache.Cache, network NetworkValidator, modes func() Modes) *Engine {
	if profiles == nil {
		profiles = cache.Default()
	}
	if modes == nil {
		modes = ModesFromEnv
	}
	return &Engine{profiles: profiles, network: network, modes: modes}
}

// Evaluate decides whether a command string may run in a project.
func (e *Engine) Evaluate(command, projectDir string) Decision {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return Allow()
	}

	if !shell.Parsable(command) {
		return Block(RuleParse, "unparsable command: unbalanced quoting", command)
	}

	segments := shell.SplitSegments(command)
	names := shell.ExtractCommands(command)
	if len(names) == 0 {
		return Block(RuleParse, "nothing could be verified safe", command)
	}

	prof := e.profiles.GetSecurityProfile(projectDir)
	modes := e.modes()

	if reason := checkDangerous(command); reason != "" {
		return Block(RuleDangerousPattern, "dangerous pattern: "+reason, command)
	}
	if prefix := checkDangerousPrefix(command); prefix != "" {
		return Block(RuleDangerousPattern, "privilege escalation via "+prefix+" is not permitted", command)
	}

	for _, name := range names {
		if d := e.evaluateName(name, segments, prof, modes); !d.Allowed {
			return d
		}
	}

	if modes.Strict {
		if d := e.evaluateSubstitutions(command, segments, prof, modes); !d.Allowed {
			return d
		}
	}

	return Allow()
}

// evaluateName applies the per-name rules in order: allowlist miss,
// strict-mode spawner, strict-mode text processor, network validation.
func (e *Engine) evaluateName(name string, segments []shell.Segment, prof profileView, modes Modes) Decision {
	segment := func() string { return shell.CommandForValidation(name, segments) }

	if !prof.IsCommandAllowed(name) {
		return Block(RuleAllowlist, fmt.Sprintf("command not in allowlist: %s", name), segment())
	}
	if modes.Strict && shellSpawners[name] {
		return Block(RuleStrictMode, fmt.Sprintf("shell spawner %s is denied in strict mode", name), segment())
	}
	if modes.Strict && textProcessors[name] && !modes.AllowTextProcessors {
		return Block(RuleStrictMode,
			fmt.Sprintf("text processor %s can execute code; set %s to permit it", name, EnvAllowTextProcessors),
			segment())
	}
	if prof.NeedsExtraValidation(name) && e.network != nil {
		if err := e.network.ValidateNetworkCommand(name, segment()); err != nil {
			return Block(RuleNetwork, fmt.Sprintf("network validation failed for %s: %v", name, err), segment())
		}
	}
	return Allow()
}

// evaluateSubstitutions vets program names hidden inside command and
// process substitutions. Strict mode only: the base extractor stays
// faithful to the documented token walk, and normal mode does not
// second-guess it.
func (e *Engine) evaluateSubstitutions(command string, segments []shell.Segment, prof profileView, modes Modes) Decision {
	names, ok := shell.ScanSubstitutions(command)
	if !ok {
		return Block(RuleParse, "command does not parse as shell in strict mode", command)
	}
	for _, name := range names {
		if !prof.IsCommandAllowed(name) {
			return Block(RuleAllowlist,
				fmt.Sprintf("substituted command not in allowlist: %s", name), command)
		}
		if shellSpawners[name] {
			return Block(RuleStrictMode,
				fmt.Sprintf("shell spawner %s inside substitution is denied in strict mode", name), command)
		}
	}
	return Allow()
}

// profileView is the slice of the security profile the engine consumes.
type profileView interface {
	IsCommandAllowed(name string) bool
	NeedsExtraValidation(name string) bool
}
