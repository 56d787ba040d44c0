package sexp

import (
	"io"
	"strconv"
	"strings"
)

// Parse reads one S-expression document from r and returns the root list
// together with every diagnostic collected along the way. Malformed
// input never produces a Go error: a truncated or damaged file yields an
// Error diagnostic and the best-effort tree built up to that point. The
// root is nil only when the input contains no list at all.
func Parse(r io.Reader) (*Node, Diagnostics) {
	var diags Diagnostics
	p := &parser{lex: NewLexer(r, &diags), diags: &diags}

	root := p.parseRoot()
	return root, diags
}

// ParseString parses a document held in memory.
func ParseString(s string) (*Node, Diagnostics) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	lex   *Lexer
	diags *Diagnostics
}

func (p *parser) parseRoot() *Node {
	var root *Node

	for {
		tok := p.lex.Next()
		switch tok.Type {
		case TokenEOF:
			if root == nil {
				p.diags.add(SeverityError, tok.Line, tok.Col, "no document found")
			}
			return root

		case TokenOpenParen:
			list := p.parseList(tok)
			if root == nil {
				root = list
			} else {
				p.diags.add(SeverityWarning, tok.Line, tok.Col, "extra content after document root ignored")
			}

		case TokenCloseParen:
			p.diags.add(SeverityError, tok.Line, tok.Col, "unexpected ')'")

		default:
			p.diags.add(SeverityWarning, tok.Line, tok.Col, "stray atom %q outside any list", tok.Text)
		}
	}
}

// parseList consumes tokens up to the close paren matching open. On a
// premature end of file it reports an Error diagnostic and returns the
// partially built list, so everything before a truncation survives.
func (p *parser) parseList(open Token) *Node {
	var children []*Node

	for {
		tok := p.lex.Next()
		switch tok.Type {
		case TokenCloseParen:
			return &Node{kind: KindList, children: children}

		case TokenEOF:
			p.diags.add(SeverityError, open.Line, open.Col, "unterminated list: missing ')'")
			return &Node{kind: KindList, children: children}

		case TokenOpenParen:
			children = append(children, p.parseList(tok))

		case TokenString:
			children = append(children, &Node{kind: KindString, text: tok.Text})

		case TokenSymbol:
			children = append(children, classifySymbol(tok.Text))
		}
	}
}

// classifySymbol decides whether a bare token is a number. The tokenizer
// leaves that choice to the parser; the original lexeme is retained so
// that re-serializing an unmodified atom reproduces its exact spelling.
func classifySymbol(text string) *Node {
	if !looksNumeric(text) {
		return &Node{kind: KindSymbol, text: text}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return &Node{kind: KindSymbol, text: text}
	}
	return numberLexeme(text, v)
}

// looksNumeric matches the decimal grammar KiCad writes: an optional
// sign, digits, and an optional fraction. Exponents never appear in
// these files, so anything with one stays a symbol.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	return i == len(s)
}
