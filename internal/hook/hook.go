// Package hook adapts agent tool-call payloads to the gate boundary.
// The surrounding hook convention maps an allowed decision to exit 0
// and a block to a non-zero status; unlike other hooks in the system
// there is no allow-on-error here — this boundary is fail-closed.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/policy"
)

// Exit codes returned by the hook subcommand.
const (
	ExitAllow   = 0
	ExitBlocked = 77 // policy block, distinct from runtime failure
)

// Payload is the PreToolUse hook payload the agent runtime pipes to
// stdin. Unknown fields are ignored; only the command and working
// directory matter to the gate.
type Payload struct {
	SessionID string    `json:"session_id"`
	ToolName  string    `json:"tool_name"`
	ToolInput ToolInput `json:"tool_input"`
	Cwd       string    `json:"cwd"`
}

// ToolInput carries the fields of a Bash tool call.
type ToolInput struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// commandTools are tool names whose input carries a shell command. Any
// other tool passes through the hook untouched.
var commandTools = map[string]bool{
	"Bash":        true,
	"bash":        true,
	"shell":       true,
	"run_command": true,
}

// ReadPayload decodes a hook payload from r. A payload that does not
// decode is an error: the caller must fail closed, not fall through.
func ReadPayload(r io.Reader) (*Payload, error) {
	var p Payload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("hook: decode payload: %w", err)
	}
	return &p, nil
}

// WantsValidation reports whether this payload carries a command the
// gate should inspect.
func (p *Payload) WantsValidation() bool {
	return commandTools[p.ToolName] && strings.TrimSpace(p.ToolInput.Command) != ""
}

// ExitCode maps a gate decision to the hook exit status.
func ExitCode(d policy.Decision) int {
	if d.Allowed {
		return ExitAllow
	}
	return ExitBlocked
}

// BlockMessage formats the reason line printed to stderr on a block, so
// the agent can self-correct instead of retrying blindly.
func BlockMessage(d policy.Decision) string {
	var b strings.Builder
	b.WriteString("command blocked")
	if d.Rule != "" {
		fmt.Fprintf(&b, " (%s)", d.Rule)
	}
	if d.Reason != "" {
		b.WriteString(": ")
		b.WriteString(d.Reason)
	}
	if d.OffendingSegment != "" {
		fmt.Fprintf(&b, " [segment: %s]", d.OffendingSegment)
	}
	return b.String()
}
