package policy

import (
	"regexp"
	"strings"
)

// dangerousPatterns match destructive commands on the raw string before
// any other rule. A match is never overridable by allowlist or mode.
var dangerousPatterns = []struct {
	re     *regexp.Regexp
	reason string
}{
	{regexp.MustCompile(`rm\s+(?:--?[a-zA-Z-]+\s+)*(?:-[a-zA-Z]*[rR][a-zA-Z]*|--recursive)\s+(?:--?[a-zA-Z-]+\s+)*(?:/|~/?)(?:\s|$|[;&|*])`), "recursive deletion of root or home"},
	{regexp.MustCompile(`rm\s+(?:--?[a-zA-Z-]+\s+)*(?:-[a-zA-Z]*[rR][a-zA-Z]*|--recursive)\s+(?:--?[a-zA-Z-]+\s+)*/\*`), "recursive deletion of root contents"},
	{regexp.MustCompile(`dd\s+[^;|&]*of=/dev/(?:sd|hd|vd|nvme|mmcblk)`), "raw write to block device"},
	{regexp.MustCompile(`>\s*/dev/(?:sd|hd|vd|nvme)[a-z0-9]*`), "redirect onto block device"},
	{regexp.MustCompile(`\bmkfs(?:\.\w+)?\b`), "filesystem format"},
	{regexp.MustCompile(`\b(?:wipefs|blkdiscard)\b`), "disk wipe"},
	{regexp.MustCompile(`\bshred\s+[^;|&]*/dev/`), "device shred"},
	{regexp.MustCompile(`chmod\s+(?:-[a-zA-Z]+\s+)*-R\s+(?:a\+rwx|0?777)\s+/(?:\s|$)`), "recursive world-writable chmod of root"},
	{regexp.MustCompile(`chmod\s+(?:-[a-zA-Z]+\s+)*(?:a\+rwx|0?777)\s+(?:-R\s+)?/(?:\s|$)`), "world-writable chmod of root"},
}

// dangerousPrefixes block privilege escalation wrappers outright. The
// gate reasons about the wrapped command's privileges, not its name, so
// these never pass regardless of allowlist contents.
var dangerousPrefixes = []string{"sudo", "su", "doas"}

// checkDangerous scans the raw command for hard-blocked patterns.
// Returns a non-empty reason on a match.
func checkDangerous(command string) string {
	for _, p := range dangerousPatterns {
		if p.re.MatchString(command) {
			return p.reason
		}
	}
	// Fork bomb: compare with whitespace squeezed out so spacing
	// variants of :(){ :|:& };: all match.
	squeezed := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, command)
	if strings.Contains(squeezed, ":(){:|:&};:") || strings.Contains(squeezed, ":(){:|:};:") {
		return "fork bomb"
	}
	return ""
}

// checkDangerousPrefix reports a privilege-escalation wrapper at the
// start of the trimmed raw command. The wrapper counts only as a whole
// word: any whitespace after it qualifies, sudoku does not.
func checkDangerousPrefix(command string) string {
	trimmed := strings.TrimSpace(command)
	for _, prefix := range dangerousPrefixes {
		rest, found := strings.CutPrefix(trimmed, prefix)
		if !found || rest == "" {
			continue
		}
		if rest[0] == ' ' || rest[0] == '\t' {
			return prefix
		}
	}
	return ""
}
