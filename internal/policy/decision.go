package policy

// Rule classes named in block reasons so callers can self-correct
// instead of blindly retrying.
const (
	RuleParse            = "parse"
	RuleDangerousPattern = "dangerous-pattern"
	RuleAllowlist        = "allowlist"
	RuleStrictMode       = "strict-mode"
	RuleNetwork          = "network"
	RuleInternal         = "internal"
)

// Decision is the two-outcome result of evaluating one command string.
type Decision struct {
	Allowed          bool   `json:"allowed"`
	Reason           string `json:"reason,omitempty"`
	OffendingSegment string `json:"offending_segment,omitempty"`
	Rule             string `json:"rule,omitempty"`
}

// Allow is the single allowed decision value.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Block builds a fail-closed decision for the given rule class.
func Block(rule, reason, segment string) Decision {
	return Decision{Allowed: false, Reason: reason, OffendingSegment: segment, Rule: rule}
}
