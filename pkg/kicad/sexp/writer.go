package sexp

import (
	"io"
	"strconv"
	"strings"
)

// Style holds the formatting knobs that changed between format eras.
// KiCad 7 and newer indent with a single tab; KiCad 6 wrote two spaces.
// The break rule itself (atom-only lists inline, anything containing a
// sublist split across lines) has been stable and is not configurable.
type Style struct {
	Indent string
}

// DefaultStyle matches the newest supported KiCad output.
var DefaultStyle = Style{Indent: "\t"}

// LegacyStyle matches KiCad 6 era output.
var LegacyStyle = Style{Indent: "  "}

func (s Style) indent() string {
	if s.Indent == "" {
		return DefaultStyle.Indent
	}
	return s.Indent
}

// Write serializes a tree to w in the host tool's canonical layout and
// terminates the output with exactly one newline. These files live under
// version control, so formatting differences are defects: an unmodified
// parse of canonical KiCad output must write back byte-identically.
func Write(w io.Writer, n *Node, style Style) error {
	_, err := io.WriteString(w, Format(n, style))
	return err
}

// Format serializes a tree to a string, including the trailing newline.
func Format(n *Node, style Style) string {
	var sb strings.Builder
	writeNode(&sb, n, 0, style)
	sb.WriteByte('\n')
	return sb.String()
}

// writeNode emits n starting at the current output position; depth is
// the indent level its closing paren belongs to.
func writeNode(sb *strings.Builder, n *Node, depth int, style Style) {
	if n.kind != KindList {
		sb.WriteString(renderAtom(n))
		return
	}

	sb.WriteByte('(')

	// A list of nothing but atoms stays on one line.
	split := -1
	for i, c := range n.children {
		if c.kind == KindList {
			split = i
			break
		}
	}

	if split < 0 {
		for i, c := range n.children {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(renderAtom(c))
		}
		sb.WriteByte(')')
		return
	}

	// Atoms before the first sublist share the tag line; every later
	// child gets its own indented line, with the closing paren back at
	// the list's own level.
	for i := 0; i < split; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(renderAtom(n.children[i]))
	}
	for _, c := range n.children[split:] {
		sb.WriteByte('\n')
		for i := 0; i <= depth; i++ {
			sb.WriteString(style.indent())
		}
		writeNode(sb, c, depth+1, style)
	}
	sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		sb.WriteString(style.indent())
	}
	sb.WriteByte(')')
}

func renderAtom(n *Node) string {
	switch n.kind {
	case KindString:
		return `"` + encodeString(n.text) + `"`
	default:
		// Symbols render bare; numbers keep their lexeme, which is the
		// canonical rendering for values built in memory.
		return n.text
	}
}

// encodeString escapes quote, backslash, and the whitespace controls
// inside quotes, the set KiCad itself writes; the lexer decodes exactly
// this set.
func encodeString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// FormatNumber renders a real value the way KiCad writes numbers: plain
// decimal, at most six fractional digits, trailing zeros and a bare
// trailing point trimmed, never scientific notation, and negative zero
// normalized to 0.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if fractionalDigits(s) > 6 {
		s = strconv.FormatFloat(v, 'f', 6, 64)
	}
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func fractionalDigits(s string) int {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
