package shell

import (
	"strings"
)

// ExtractCommands returns the base names of every program a command
// string would invoke, in left-to-right order. The walk is a
// quote-aware tokenizer feeding the classifyToken table: the first Word
// after start-of-string or any separator is a command, everything else
// (flags, env assignments, redirects, keywords, arguments) is not.
//
// A parse failure (unbalanced quote, dangling escape) returns nil.
// Callers must treat an empty result as "nothing could be verified
// safe", never as "nothing to check".
func ExtractCommands(command string) []string {
	tokens, ok := tokenize(command)
	if !ok {
		return nil
	}

	var names []string
	expectCommand := true
	for _, tok := range tokens {
		switch classifyToken(tok) {
		case ClassSeparator:
			expectCommand = true
		case ClassKeyword, ClassFlag, ClassAssignment, ClassRedirect:
			// No state change: `FOO=bar npm run build` still
			// records npm.
		case ClassWord:
			if expectCommand {
				if name := baseName(tok.text); name != "" {
					names = append(names, name)
				}
				expectCommand = false
			}
		}
	}
	return names
}

// Parsable reports whether a command lexes cleanly: balanced quotes,
// no dangling escape. Unparsable commands must be blocked, never
// treated as empty.
func Parsable(command string) bool {
	_, ok := tokenize(command)
	return ok
}

// CommandForValidation returns the text of the first segment whose own
// extraction contains name. Diagnostics only: the allow/block decision
// never depends on it.
func CommandForValidation(name string, segments []Segment) string {
	for _, seg := range segments {
		for _, n := range ExtractCommands(seg.Text) {
			if n == name {
				return seg.Text
			}
		}
	}
	return ""
}

// tokenize splits a command into shell tokens: whitespace-separated
// words with quote and escape handling, and standalone operator tokens
// for runs of ; | & < > (with an fd-number prefix kept attached, so
// 2>&1 is one token). Returns ok=false on unbalanced quoting.
func tokenize(command string) ([]token, bool) {
	var tokens []token
	var cur strings.Builder
	curQuoted := false
	var quote byte
	escaped := false

	flush := func() {
		if cur.Len() > 0 || curQuoted {
			tokens = append(tokens, token{text: cur.String(), quoted: curQuoted})
			cur.Reset()
			curQuoted = false
		}
	}

	for i := 0; i < len(command); i++ {
		c := command[i]

		if escaped {
			cur.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' && quote != '\'' {
			escaped = true
			continue
		}
		if quote != 0 {
			if c == quote {
				quote = 0
			} else {
				cur.WriteByte(c)
			}
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			curQuoted = true
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			flush()
			continue
		}
		if c == '(' || c == ')' || c == '{' || c == '}' {
			flush()
			tokens = append(tokens, token{text: string(c)})
			continue
		}
		if isOperatorChar(c) {
			// An fd number directly before < or > belongs to the
			// operator: 2> and 2>&1 are single redirect tokens.
			var prefix string
			if (c == '<' || c == '>') && cur.Len() > 0 && !curQuoted && allDigits(cur.String()) {
				prefix = cur.String()
				cur.Reset()
			}
			flush()
			j := i
			for j < len(command) {
				cj := command[j]
				if isOperatorChar(cj) {
					j++
					continue
				}
				// Target fd after &: the 1 in 2>&1.
				if cj >= '0' && cj <= '9' && j > i && command[j-1] == '&' {
					j++
					continue
				}
				break
			}
			tokens = append(tokens, token{text: prefix + command[i:j]})
			i = j - 1
			continue
		}
		cur.WriteByte(c)
	}

	if quote != 0 || escaped {
		return nil, false
	}
	flush()
	return tokens, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// baseName strips any path prefix, keeping original case:
// /usr/bin/Git -> Git.
func baseName(s string) string {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}
