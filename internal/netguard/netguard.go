// Package netguard vets invocations of network-capable tools for
// exfiltration risk. Heuristic and synchronous: the policy engine
// treats any rejection or failure as a block.
package netguard

import (
	"fmt"
	"strings"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/shell"
)

// uploadFlags are curl/wget options that push local data to a remote.
var uploadFlags = map[string]string{
	"-d":               "request body upload",
	"--data":           "request body upload",
	"--data-raw":       "request body upload",
	"--data-binary":    "request body upload",
	"--data-ascii":     "request body upload",
	"--data-urlencode": "request body upload",
	"-F":               "form upload",
	"--form":           "form upload",
	"-T":               "file upload",
	"--upload-file":    "file upload",
	"--post-file":      "file upload",
	"--post-data":      "request body upload",
	"-e":               "remote execution",
	"--execute":        "remote execution",
}

// sensitivePathFragments flag arguments that read credential material.
var sensitivePathFragments = []string{
	".ssh/", ".aws/credentials", ".env", ".netrc", ".npmrc",
	"id_rsa", "id_ed25519", "/etc/passwd", "/etc/shadow",
}

// Validator is the default network-command validator.
type Validator struct{}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// ValidateNetworkCommand inspects one network tool invocation. segment
// is the chaining segment the tool appears in; name is the tool's base
// name as extracted by the lexer.
func (v *Validator) ValidateNetworkCommand(name, segment string) error {
	if segment == "" {
		// Nothing to inspect: fail closed rather than guess.
		return fmt.Errorf("no segment available for %s", name)
	}

	if pipesToShell(segment) {
		return fmt.Errorf("%s output is piped to a shell", name)
	}

	for _, tok := range strings.Fields(segment) {
		flag := tok
		if j := strings.IndexByte(tok, '='); j > 0 && strings.HasPrefix(tok, "--") {
			flag = tok[:j]
		}
		if what, risky := uploadFlags[flag]; risky {
			// nc -e spawns a shell; for curl/wget the flag ships data.
			return fmt.Errorf("%s with %s (%s)", name, flag, what)
		}
		for _, frag := range sensitivePathFragments {
			if strings.Contains(tok, frag) {
				return fmt.Errorf("%s references sensitive path %q", name, frag)
			}
		}
	}
	return nil
}

// pipesToShell reports whether any pipe target in the segment's parent
// command is a shell. Segments are pipe-split already, so this guards
// the degenerate case of a pipe inside the provided text.
func pipesToShell(segment string) bool {
	if !strings.Contains(segment, "|") {
		return false
	}
	for _, seg := range shell.SplitSegments(segment) {
		fields := strings.Fields(seg.Text)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "sh", "bash", "zsh", "fish", "dash":
			return true
		}
	}
	return false
}
