package shell

import (
	"strings"
)

// Segment is one command-invocation unit of a compound command: the text
// between two chaining operators, plus the operator that terminated it
// ("" at end of string). Text keeps the original spelling for
// diagnostics.
type Segment struct {
	Text string
	Op   string
}

// SplitSegments splits a compound command on ; | || && & |& while
// respecting single/double quotes and backslash escapes. A & directly
// preceded by > or < (>&, <&) or directly followed by > (&>, &>>) is
// part of a redirect and does not split.
//
// Joining every segment's Text with its Op, in order, reconstructs the
// input modulo whitespace trimmed at span boundaries.
func SplitSegments(command string) []Segment {
	var segments []Segment
	var quote byte
	escaped := false
	start := 0

	appendSpan := func(end int, op string) {
		span := strings.TrimSpace(command[start:end])
		if span != "" {
			segments = append(segments, Segment{Text: span, Op: op})
		} else if n := len(segments); n > 0 && op != "" {
			// Doubled separator with nothing between: fold the
			// operator into the previous segment so it is not lost.
			segments[n-1].Op += op
		}
	}

	for i := 0; i < len(command); i++ {
		c := command[i]

		if escaped {
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
			}
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			continue
		}

		switch c {
		case ';':
			appendSpan(i, ";")
			start = i + 1
		case '|':
			if i+1 < len(command) && (command[i+1] == '|' || command[i+1] == '&') {
				appendSpan(i, command[i:i+2])
				start = i + 2
				i++
			} else {
				appendSpan(i, "|")
				start = i + 1
			}
		case '&':
			if i > 0 && (command[i-1] == '>' || command[i-1] == '<') {
				continue // redirect: >& or <&
			}
			if i+1 < len(command) && command[i+1] == '>' {
				continue // redirect: &> or &>>
			}
			if i+1 < len(command) && command[i+1] == '&' {
				appendSpan(i, "&&")
				start = i + 2
				i++
			} else {
				appendSpan(i, "&")
				start = i + 1
			}
		}
	}

	appendSpan(len(command), "")
	return segments
}

// Reconstruct joins segments back into a single command string. Used by
// tests to assert the reconstruction contract.
func Reconstruct(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
		b.WriteString(s.Op)
	}
	return b.String()
}
