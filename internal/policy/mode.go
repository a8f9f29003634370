package policy

import (
	"os"
	"strings"
)

// Environment toggles, read per call so a session can flip modes
// without restarting the shared gate process.
const (
	EnvStrictMode          = "AUTO_CLAUDE_SECURITY_STRICT_MODE"
	EnvAllowTextProcessors = "AUTO_CLAUDE_ALLOW_TEXT_PROCESSORS"
)

// Modes holds the per-call operating flags.
type Modes struct {
	Strict              bool
	AllowTextProcessors bool
}

// ModesFromEnv reads the toggles from the environment.
func ModesFromEnv() Modes {
	return Modes{
		Strict:              truthy(os.Getenv(EnvStrictMode)),
		AllowTextProcessors: truthy(os.Getenv(EnvAllowTextProcessors)),
	}
}

// truthy accepts case-insensitive "true"/"1"/"yes"; anything else,
// including unset, is false.
func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
