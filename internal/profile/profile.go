package profile

// SecurityProfile is the declarative snapshot of which commands a
// project may run, partitioned by origin. Immutable once constructed: a
// new policy file version yields a new instance, never an in-place
// mutation.
type SecurityProfile struct {
	BaseCommands   []string            `json:"base_commands"`
	StackCommands  []string            `json:"stack_commands"`
	ScriptCommands []string            `json:"script_commands"`
	CustomCommands []string            `json:"custom_commands"`
	DetectedStack  map[string][]string `json:"detected_stack"`
	CustomScripts  map[string][]string `json:"custom_scripts"`
	ProjectDir     string              `json:"project_dir"`
	CreatedAt      string              `json:"created_at"`
	ProjectHash    string              `json:"project_hash"`

	allowed map[string]bool
}

// AllAllowedCommands returns the union of the four command categories.
// Loaders call finalize() once at construction so the memo is read-only
// afterwards; an unfinalized profile (hand-built in tests) gets a fresh
// union per call rather than a racy lazy write.
func (p *SecurityProfile) AllAllowedCommands() map[string]bool {
	if p.allowed != nil {
		return p.allowed
	}
	return p.union()
}

func (p *SecurityProfile) union() map[string]bool {
	m := make(map[string]bool,
		len(p.BaseCommands)+len(p.StackCommands)+len(p.ScriptCommands)+len(p.CustomCommands))
	for _, set := range [][]string{p.BaseCommands, p.StackCommands, p.ScriptCommands, p.CustomCommands} {
		for _, c := range set {
			m[c] = true
		}
	}
	return m
}

// finalize precomputes the allowlist union. Called by loaders before
// the profile escapes to concurrent callers.
func (p *SecurityProfile) finalize() {
	p.allowed = p.union()
}

// IsCommandAllowed reports whether a program base name is in the
// allowlist. Exact string match — no globbing, no case folding.
func (p *SecurityProfile) IsCommandAllowed(name string) bool {
	return p.AllAllowedCommands()[name]
}

// networkTools are commands that can move data off the machine. Their
// invocations pass the allowlist check and then the network validator.
var networkTools = map[string]bool{
	"curl":   true,
	"wget":   true,
	"nc":     true,
	"ncat":   true,
	"netcat": true,
	"ssh":    true,
	"scp":    true,
	"rsync":  true,
	"ftp":    true,
	"sftp":   true,
	"telnet": true,
}

// NeedsExtraValidation reports whether a command requires the network
// validator's approval regardless of allowlist membership.
func (p *SecurityProfile) NeedsExtraValidation(name string) bool {
	return networkTools[name]
}
