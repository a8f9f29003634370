package shell

import (
	"reflect"
	"testing"
)

func TestExtractSingleCommand(t *testing.T) {
	got := ExtractCommands("ls -la /tmp")
	if !reflect.DeepEqual(got, []string{"ls"}) {
		t.Errorf("got %v, want [ls]", got)
	}
}

func TestExtractChainedCommands(t *testing.T) {
	got := ExtractCommands("git status && echo done")
	if !reflect.DeepEqual(got, []string{"git", "echo"}) {
		t.Errorf("got %v, want [git echo]", got)
	}
}

func TestExtractAssignmentsSkipped(t *testing.T) {
	got := ExtractCommands("FOO=bar BAZ=1 npm run build")
	if !reflect.DeepEqual(got, []string{"npm"}) {
		t.Errorf("got %v, want [npm]", got)
	}
}

func TestExtractFlagsSkipped(t *testing.T) {
	got := ExtractCommands("ls -la --color=auto /tmp")
	if !reflect.DeepEqual(got, []string{"ls"}) {
		t.Errorf("got %v, want [ls]", got)
	}
}

func TestExtractPipeline(t *testing.T) {
	got := ExtractCommands("cat file | grep x | wc -l")
	if !reflect.DeepEqual(got, []string{"cat", "grep", "wc"}) {
		t.Errorf("got %v, want [cat grep wc]", got)
	}
}

func TestExtractPathBasename(t *testing.T) {
	got := ExtractCommands("/usr/bin/git log; ./scripts/build.sh")
	if !reflect.DeepEqual(got, []string{"git", "build.sh"}) {
		t.Errorf("got %v, want [git build.sh]", got)
	}
}

func TestExtractCasePreserved(t *testing.T) {
	got := ExtractCommands("Git status")
	if !reflect.DeepEqual(got, []string{"Git"}) {
		t.Errorf("got %v, want [Git] (no case folding)", got)
	}
}

func TestExtractRedirectsSkipped(t *testing.T) {
	cases := map[string][]string{
		"echo hi > out.txt":      {"echo"},
		"cat < in.txt":           {"cat"},
		"make >> build.log 2>&1": {"make"},
		"cmd &> all.log":         {"cmd"},
		"sort <<< 'b a'":         {"sort"},
		"cat << EOF":             {"cat"},
	}
	for input, want := range cases {
		got := ExtractCommands(input)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%q: got %v, want %v", input, got, want)
		}
	}
}

func TestExtractKeywordsSkipped(t *testing.T) {
	got := ExtractCommands("if true; then echo yes; fi")
	if !reflect.DeepEqual(got, []string{"true", "echo"}) {
		t.Errorf("got %v, want [true echo]", got)
	}

	got = ExtractCommands("while read line; do wc -c; done")
	if !reflect.DeepEqual(got, []string{"read", "wc"}) {
		t.Errorf("got %v, want [read wc]", got)
	}
}

func TestExtractNegatedCommand(t *testing.T) {
	got := ExtractCommands("! grep -q x file")
	if !reflect.DeepEqual(got, []string{"grep"}) {
		t.Errorf("got %v, want [grep]", got)
	}
}

func TestExtractSubshellCommand(t *testing.T) {
	got := ExtractCommands("( cd /tmp && ls )")
	if !reflect.DeepEqual(got, []string{"cd", "ls"}) {
		t.Errorf("got %v, want [cd ls]", got)
	}
}

func TestExtractQuotedOperatorIsArgument(t *testing.T) {
	got := ExtractCommands(`echo ";" rm`)
	if !reflect.DeepEqual(got, []string{"echo"}) {
		t.Errorf("got %v, want [echo] (quoted separator must not reset state)", got)
	}
}

func TestExtractUnbalancedQuoteFailsClosed(t *testing.T) {
	if got := ExtractCommands(`echo "unterminated`); got != nil {
		t.Errorf("expected nil for unbalanced double quote, got %v", got)
	}
	if got := ExtractCommands("echo 'unterminated"); got != nil {
		t.Errorf("expected nil for unbalanced single quote, got %v", got)
	}
	if got := ExtractCommands(`echo trailing\`); got != nil {
		t.Errorf("expected nil for dangling escape, got %v", got)
	}
}

func TestParsable(t *testing.T) {
	if !Parsable("echo ok && ls") {
		t.Error("well-formed command reported unparsable")
	}
	if Parsable(`echo "unterminated`) {
		t.Error("unbalanced quote reported parsable")
	}
}

func TestExtractOrderMatchesSegmentOrder(t *testing.T) {
	input := "npm install; go build && cargo test | tee log"
	got := ExtractCommands(input)
	want := []string{"npm", "go", "cargo", "tee"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCommandForValidation(t *testing.T) {
	segments := SplitSegments("git status && rm -rf build | echo done")
	if got := CommandForValidation("rm", segments); got != "rm -rf build" {
		t.Errorf("got %q, want segment containing rm", got)
	}
	if got := CommandForValidation("git", segments); got != "git status" {
		t.Errorf("got %q, want first segment", got)
	}
	if got := CommandForValidation("curl", segments); got != "" {
		t.Errorf("got %q, want empty for absent command", got)
	}
}

func TestClassifyTokenTable(t *testing.T) {
	cases := []struct {
		tok  token
		want TokenClass
	}{
		{token{text: ";"}, ClassSeparator},
		{token{text: "&&"}, ClassSeparator},
		{token{text: "|&"}, ClassSeparator},
		{token{text: "if"}, ClassKeyword},
		{token{text: "("}, ClassKeyword},
		{token{text: "!"}, ClassKeyword},
		{token{text: "-rf"}, ClassFlag},
		{token{text: "--color=auto"}, ClassFlag},
		{token{text: "FOO=bar"}, ClassAssignment},
		{token{text: "=x"}, ClassWord},
		{token{text: ">>"}, ClassRedirect},
		{token{text: "2>&1"}, ClassRedirect},
		{token{text: "<<<"}, ClassRedirect},
		{token{text: "npm"}, ClassWord},
		{token{text: ";", quoted: true}, ClassWord},
	}
	for _, c := range cases {
		if got := classifyToken(c.tok); got != c.want {
			t.Errorf("classifyToken(%q quoted=%t) = %v, want %v", c.tok.text, c.tok.quoted, got, c.want)
		}
	}
}
