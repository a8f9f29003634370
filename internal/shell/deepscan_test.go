package shell

import (
	"reflect"
	"sort"
	"testing"
)

func scanNames(t *testing.T, command string) []string {
	t.Helper()
	names, ok := ScanSubstitutions(command)
	if !ok {
		t.Fatalf("ScanSubstitutions(%q) did not parse", command)
	}
	sort.Strings(names)
	return names
}

func TestScanSubstitutionsDollar(t *testing.T) {
	got := scanNames(t, "echo $(whoami)")
	want := []string{"whoami"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanSubstitutionsBackticks(t *testing.T) {
	got := scanNames(t, "echo `id -u`")
	want := []string{"id"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanSubstitutionsProcess(t *testing.T) {
	got := scanNames(t, "diff <(sort a.txt) <(sort b.txt)")
	want := []string{"sort"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanSubstitutionsNested(t *testing.T) {
	got := scanNames(t, "echo $(dirname $(readlink -f script.sh))")
	want := []string{"dirname", "readlink"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanSubstitutionsPathStripped(t *testing.T) {
	got := scanNames(t, "echo $(/usr/bin/curl example.com)")
	want := []string{"curl"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanSubstitutionsNone(t *testing.T) {
	names, ok := ScanSubstitutions("git status && echo done")
	if !ok {
		t.Fatal("plain command should parse")
	}
	if len(names) != 0 {
		t.Fatalf("expected no substituted names, got %v", names)
	}
}

func TestScanSubstitutionsQuotedIsStillSeen(t *testing.T) {
	// Double quotes do not suppress command substitution.
	got := scanNames(t, `echo "today is $(date)"`)
	want := []string{"date"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanSubstitutionsSingleQuoted(t *testing.T) {
	// Single quotes do suppress substitution entirely.
	names, ok := ScanSubstitutions(`echo '$(whoami)'`)
	if !ok {
		t.Fatal("command should parse")
	}
	if len(names) != 0 {
		t.Fatalf("expected no names inside single quotes, got %v", names)
	}
}

func TestScanSubstitutionsMalformed(t *testing.T) {
	for _, command := range []string{
		"echo $(whoami",
		"echo 'unterminated",
		"if true; then echo",
	} {
		if _, ok := ScanSubstitutions(command); ok {
			t.Errorf("ScanSubstitutions(%q): expected parse failure", command)
		}
	}
}

func TestScanSubstitutionsDedup(t *testing.T) {
	got := scanNames(t, "echo $(date) $(date) `date`")
	want := []string{"date"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
