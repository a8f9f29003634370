package shell

import (
	"strings"
)

// TokenClass is the classification of a single shell token. One table
// drives both the segmenter and the command extractor.
type TokenClass int

const (
	ClassSeparator TokenClass = iota
	ClassKeyword
	ClassFlag
	ClassAssignment
	ClassRedirect
	ClassWord
)

func (c TokenClass) String() string {
	switch c {
	case ClassSeparator:
		return "separator"
	case ClassKeyword:
		return "keyword"
	case ClassFlag:
		return "flag"
	case ClassAssignment:
		return "assignment"
	case ClassRedirect:
		return "redirect"
	default:
		return "word"
	}
}

// separators are the chaining operators that end one command and start
// the next.
var separators = map[string]bool{
	";":  true,
	"|":  true,
	"||": true,
	"&&": true,
	"&":  true,
	"|&": true,
}

// shellKeywords are control-flow words that never name a program.
var shellKeywords = map[string]bool{
	"if":       true,
	"then":     true,
	"else":     true,
	"elif":     true,
	"fi":       true,
	"do":       true,
	"done":     true,
	"while":    true,
	"until":    true,
	"for":      true,
	"case":     true,
	"esac":     true,
	"in":       true,
	"function": true,
	"select":   true,
	"time":     true,
	"{":        true,
	"}":        true,
	"(":        true,
	")":        true,
	"!":        true,
}

// token is a lexed shell token. quoted marks tokens that carried any
// quoting; a quoted token is always literal text, never an operator.
type token struct {
	text   string
	quoted bool
}

// classifyToken maps a token to its class. Order matters: separators
// and redirects are recognized before word-shape checks, and quoted
// tokens are plain words regardless of their text.
func classifyToken(tok token) TokenClass {
	if tok.quoted {
		return ClassWord
	}
	if separators[tok.text] {
		return ClassSeparator
	}
	if isRedirectToken(tok.text) {
		return ClassRedirect
	}
	if shellKeywords[tok.text] {
		return ClassKeyword
	}
	if strings.HasPrefix(tok.text, "-") {
		return ClassFlag
	}
	if strings.Contains(tok.text, "=") && !strings.HasPrefix(tok.text, "=") {
		return ClassAssignment
	}
	return ClassWord
}

// isRedirectToken reports whether an operator token is a redirection:
// an optional fd number followed by < or > and any operator tail
// (>>, <<, <<<, 2>&1, &>, >&, ...).
func isRedirectToken(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == len(s) {
		return false
	}
	if s[i] != '<' && s[i] != '>' && s[i] != '&' {
		return false
	}
	return strings.ContainsAny(s, "<>")
}

// isOperatorChar reports whether c can start an operator token when
// unquoted.
func isOperatorChar(c byte) bool {
	return c == ';' || c == '|' || c == '&' || c == '<' || c == '>'
}
