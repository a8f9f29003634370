package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PolicyFileName is the on-disk policy file inside a project directory.
const PolicyFileName = ".auto-claude-security.json"

// migratedPolicyPath is the newer location used by projects that moved
// their auto-claude state under a dot directory.
var migratedPolicyPath = filepath.Join(".auto-claude", "security.json")

// PolicyFilePath returns the canonical policy file path for a project.
// The cache stats this path for freshness.
func PolicyFilePath(projectDir string) string {
	return filepath.Join(projectDir, PolicyFileName)
}

// resolvePolicyFile returns the first policy file path that exists:
// the canonical location, then the migrated one. ok is false when
// neither exists.
func resolvePolicyFile(projectDir string) (string, bool) {
	primary := PolicyFilePath(projectDir)
	if _, err := os.Stat(primary); err == nil {
		return primary, true
	}
	migrated := filepath.Join(projectDir, migratedPolicyPath)
	if _, err := os.Stat(migrated); err == nil {
		return migrated, true
	}
	return "", false
}

// LoadFromFile deserializes a security profile from a policy file.
func LoadFromFile(path string) (*SecurityProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	var p SecurityProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	p.finalize()
	return &p, nil
}

// Save writes a profile to the canonical policy file path, atomically
// (tmp + rename) so a concurrent reader never sees a partial file.
func Save(p *SecurityProfile, projectDir string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	path := PolicyFilePath(projectDir)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return os.Rename(tmp, path)
}

// GetOrCreateProfile returns the project's security profile: the policy
// file if present and parseable, else a fresh stack analysis. Corrupt
// files never raise to the caller — they are treated as absent.
func GetOrCreateProfile(projectDir string) *SecurityProfile {
	if path, ok := resolvePolicyFile(projectDir); ok {
		if p, err := LoadFromFile(path); err == nil {
			return p
		}
		fmt.Fprintf(os.Stderr, "auto-claude-gate: unreadable policy file in %s, re-analyzing\n", projectDir)
	}

	p := Analyze(projectDir)
	// Best effort: the gate still works from the in-memory profile if
	// the directory is read-only.
	_ = Save(p, projectDir)
	return p
}
