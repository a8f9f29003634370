package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/shell"
)

// stackMarkers maps a marker file in the project root to a stack
// category from stackCommandSets.
var stackMarkers = map[string]string{
	"package.json":       "node",
	"go.mod":             "go",
	"pyproject.toml":     "python",
	"requirements.txt":   "python",
	"setup.py":           "python",
	"Cargo.toml":         "rust",
	"Gemfile":            "ruby",
	"pom.xml":            "java",
	"build.gradle":       "java",
	"Makefile":           "make",
	"Dockerfile":         "docker",
	"docker-compose.yml": "docker",
}

// Analyze builds a fresh security profile by inspecting a project's
// tech stack and scripts. It never fails: an unreadable directory just
// yields the baseline profile.
func Analyze(projectDir string) *SecurityProfile {
	p := &SecurityProfile{
		BaseCommands:   append([]string(nil), baseCommands...),
		StackCommands:  []string{},
		ScriptCommands: []string{},
		CustomCommands: []string{},
		DetectedStack:  map[string][]string{},
		CustomScripts:  map[string][]string{},
		ProjectDir:     projectDir,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		ProjectHash:    hashProjectDir(projectDir),
	}

	stackSeen := map[string]bool{}
	for marker, category := range stackMarkers {
		if _, err := os.Stat(filepath.Join(projectDir, marker)); err != nil {
			continue
		}
		p.DetectedStack[category] = append(p.DetectedStack[category], marker)
		if !stackSeen[category] {
			stackSeen[category] = true
			p.StackCommands = append(p.StackCommands, stackCommandSets[category]...)
		}
	}
	for _, markers := range p.DetectedStack {
		sort.Strings(markers)
	}
	sort.Strings(p.StackCommands)

	if scripts := readPackageScripts(projectDir); len(scripts) > 0 {
		names := make([]string, 0, len(scripts))
		for name := range scripts {
			names = append(names, name)
		}
		sort.Strings(names)
		p.CustomScripts["package.json"] = names
		p.ScriptCommands = scriptCommandNames(scripts, projectDir)
	}

	p.finalize()
	return p
}

// readPackageScripts returns the scripts map from package.json, or nil
// when there is no readable manifest.
func readPackageScripts(projectDir string) map[string]string {
	data, err := os.ReadFile(filepath.Join(projectDir, "package.json"))
	if err != nil {
		return nil
	}
	var manifest struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}
	return manifest.Scripts
}

// scriptCommandNames derives extra allowed commands from project
// scripts: the programs the script bodies invoke, plus local
// executables under node_modules/.bin.
func scriptCommandNames(scripts map[string]string, projectDir string) []string {
	seen := map[string]bool{}
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, body := range scripts {
		for _, cmd := range shell.ExtractCommands(body) {
			add(cmd)
		}
	}

	binDir := filepath.Join(projectDir, "node_modules", ".bin")
	if entries, err := os.ReadDir(binDir); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if strings.HasSuffix(name, ".cmd") || strings.HasSuffix(name, ".ps1") {
				continue
			}
			add(name)
		}
	}

	sort.Strings(names)
	return names
}

// hashProjectDir identifies a project by the SHA-256 of its absolute
// path, matching the hash recorded in existing policy files.
func hashProjectDir(projectDir string) string {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		abs = projectDir
	}
	sum := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(sum[:8])
}
