package gate

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/audit"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/cache"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/policy"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/profile"
)

func cannedCache(allow ...string) *cache.Cache {
	loader := func(projectDir string) *profile.SecurityProfile {
		return &profile.SecurityProfile{BaseCommands: allow, ProjectDir: projectDir}
	}
	stat := func(string) (bool, time.Time) { return true, time.Unix(1, 0) }
	return cache.New(loader, stat)
}

type panicValidator struct{}

func (panicValidator) ValidateNetworkCommand(name, segment string) error {
	panic("validator blew up")
}

func TestValidateAllowAndBlock(t *testing.T) {
	g, err := New(Config{Profiles: cannedCache("git", "echo")})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	if d := g.Validate("git status && echo ok", "/proj"); !d.Allowed {
		t.Fatalf("blocked: %s", d.Reason)
	}
	d := g.Validate("terraform apply", "/proj")
	if d.Allowed || d.Rule != policy.RuleAllowlist {
		t.Fatalf("allowed=%v rule=%q", d.Allowed, d.Rule)
	}
}

func TestValidateRecoversPanicAsInternalBlock(t *testing.T) {
	g, err := New(Config{
		Profiles: cannedCache("curl"),
		Network:  panicValidator{},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	d := g.Validate("curl https://example.com", "/proj")
	if d.Allowed {
		t.Fatal("a panicking collaborator must fail closed")
	}
	if d.Rule != policy.RuleInternal {
		t.Errorf("rule = %q, want %q", d.Rule, policy.RuleInternal)
	}
}

func TestValidateWritesSinks(t *testing.T) {
	dir := t.TempDir()
	auditPath := filepath.Join(dir, "audit.jsonl")
	histPath := filepath.Join(dir, "history.db")

	g, err := New(Config{
		AuditLogPath: auditPath,
		HistoryPath:  histPath,
		Profiles:     cannedCache("git"),
	})
	if err != nil {
		t.Fatal(err)
	}

	g.Validate("git status", "/proj")
	g.Validate("terraform apply", "/proj")
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries := readAuditEntries(t, auditPath)
	if len(entries) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(entries))
	}
	if !entries[0].Allowed || entries[1].Allowed {
		t.Errorf("allowed flags = %v, %v", entries[0].Allowed, entries[1].Allowed)
	}
	if entries[1].Rule != policy.RuleAllowlist {
		t.Errorf("rule = %q", entries[1].Rule)
	}
	if len(entries[0].Commands) != 1 || entries[0].Commands[0] != "git" {
		t.Errorf("commands = %v", entries[0].Commands)
	}

	res := audit.Verify(auditPath)
	if !res.Valid || res.Lines != 2 {
		t.Errorf("verify: valid=%v lines=%d err=%v", res.Valid, res.Lines, res.Error)
	}
}

func TestValidateHistoryQueries(t *testing.T) {
	dir := t.TempDir()
	g, err := New(Config{
		HistoryPath: filepath.Join(dir, "history.db"),
		Profiles:    cannedCache("ls"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	g.Validate("ls -la", "/proj")
	g.Validate("nmap 10.0.0.0/24", "/proj")
	g.Validate(`echo "oops`, "/proj")

	total, err := g.hist.Total()
	if err != nil || total != 3 {
		t.Fatalf("total = %d err=%v", total, err)
	}
	counts, err := g.hist.RuleCounts()
	if err != nil {
		t.Fatal(err)
	}
	if counts[policy.RuleAllowlist] != 1 || counts[policy.RuleParse] != 1 {
		t.Errorf("counts = %v", counts)
	}
	blocks, err := g.hist.RecentBlocks(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Errorf("recent blocks = %d, want 2", len(blocks))
	}
}

func TestStrictDefaultAppliesWhenEnvUnset(t *testing.T) {
	t.Setenv(policy.EnvStrictMode, "placeholder")
	os.Unsetenv(policy.EnvStrictMode)

	g, err := New(Config{Profiles: cannedCache("bash"), StrictDefault: true})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	d := g.Validate("bash run.sh", "/proj")
	if d.Allowed || d.Rule != policy.RuleStrictMode {
		t.Fatalf("allowed=%v rule=%q", d.Allowed, d.Rule)
	}
}

func TestAuditRecordsEffectiveStrictMode(t *testing.T) {
	t.Setenv(policy.EnvStrictMode, "placeholder")
	os.Unsetenv(policy.EnvStrictMode)

	auditPath := filepath.Join(t.TempDir(), "audit.jsonl")
	g, err := New(Config{
		AuditLogPath:  auditPath,
		Profiles:      cannedCache("bash", "ls"),
		StrictDefault: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	g.Validate("ls", "/proj")
	g.Validate("bash run.sh", "/proj")
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	entries := readAuditEntries(t, auditPath)
	if len(entries) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if !e.StrictMode {
			t.Errorf("entry for %q logged strict_mode=false under a strict default", e.Command)
		}
	}
}

func TestExplicitEnvOverridesStrictDefault(t *testing.T) {
	t.Setenv(policy.EnvStrictMode, "false")

	g, err := New(Config{Profiles: cannedCache("bash"), StrictDefault: true})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	if d := g.Validate("bash run.sh", "/proj"); !d.Allowed {
		t.Fatalf("explicit env false should win: %s", d.Reason)
	}
}

func TestResetProfileCache(t *testing.T) {
	c := cannedCache("ls")
	g, err := New(Config{Profiles: c})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	g.Validate("ls", "/proj")
	if c.Len() != 1 {
		t.Fatalf("cache len = %d", c.Len())
	}
	g.ResetProfileCache()
	if c.Len() != 0 {
		t.Fatalf("cache len after reset = %d", c.Len())
	}
}

func readAuditEntries(t *testing.T, path string) []audit.Entry {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var entries []audit.Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e audit.Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("bad audit line: %v", err)
		}
		entries = append(entries, e)
	}
	return entries
}
