package shell

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ScanSubstitutions parses a command with a real bash grammar and
// returns the base names of programs invoked inside command and process
// substitutions ($(...), backticks, <(...)) — names the token walk in
// ExtractCommands deliberately does not see. Contents are never
// evaluated; only the invoked program names are collected.
//
// ok is false when the command does not parse as bash. Callers decide
// what that means: the gate only consults this scan in strict mode, and
// the plain lexer's fail-closed rules already cover malformed input.
func ScanSubstitutions(command string) (names []string, ok bool) {
	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return nil, false
	}

	seen := make(map[string]bool)
	syntax.Walk(file, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.CmdSubst:
			collectCallNames(n.Stmts, seen, &names)
		case *syntax.ProcSubst:
			collectCallNames(n.Stmts, seen, &names)
		}
		return true
	})
	return names, true
}

// collectCallNames walks statements and records the first literal word
// of every call expression.
func collectCallNames(stmts []*syntax.Stmt, seen map[string]bool, names *[]string) {
	for _, st := range stmts {
		syntax.Walk(st, func(node syntax.Node) bool {
			call, isCall := node.(*syntax.CallExpr)
			if !isCall || len(call.Args) == 0 {
				return true
			}
			lit := call.Args[0].Lit()
			if lit == "" {
				return true
			}
			name := baseName(lit)
			if name != "" && !seen[name] {
				seen[name] = true
				*names = append(*names, name)
			}
			return true
		})
	}
}
