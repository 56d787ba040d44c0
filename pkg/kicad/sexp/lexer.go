package sexp

import (
	"bufio"
	"io"
	"strings"
)

// TokenType identifies a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenOpenParen
	TokenCloseParen
	TokenSymbol
	TokenString
)

// Token is one lexical token with its source position.
type Token struct {
	Type TokenType
	Text string // symbol text or decoded string content
	Line int
	Col  int
}

// Lexer turns a character stream into a lazy token stream. It never
// fails on malformed input: problems become Error diagnostics and the
// remainder of the input is tokenized best-effort.
type Lexer struct {
	reader *bufio.Reader
	diags  *Diagnostics
	peeked *rune
	line   int
	col    int // column of the next rune, 1-based
}

// NewLexer creates a lexer that appends problems to diags.
func NewLexer(r io.Reader, diags *Diagnostics) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		diags:  diags,
		line:   1,
		col:    1,
	}
}

// Next returns the next token. After the input is exhausted it keeps
// returning TokenEOF.
func (l *Lexer) Next() Token {
	for {
		ch, ok := l.peek()
		if !ok {
			return Token{Type: TokenEOF, Line: l.line, Col: l.col}
		}
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.read()
			continue
		}
		break
	}

	line, col := l.line, l.col
	ch, _ := l.peek()

	switch ch {
	case '(':
		l.read()
		return Token{Type: TokenOpenParen, Text: "(", Line: line, Col: col}
	case ')':
		l.read()
		return Token{Type: TokenCloseParen, Text: ")", Line: line, Col: col}
	case '"':
		return l.readString(line, col)
	default:
		return l.readSymbol(line, col)
	}
}

func (l *Lexer) peek() (rune, bool) {
	if l.peeked != nil {
		return *l.peeked, true
	}
	ch, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, false
	}
	l.peeked = &ch
	return ch, true
}

func (l *Lexer) read() (rune, bool) {
	var ch rune
	if l.peeked != nil {
		ch = *l.peeked
		l.peeked = nil
	} else {
		var err error
		ch, _, err = l.reader.ReadRune()
		if err != nil {
			return 0, false
		}
	}
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch, true
}

// readString consumes a quoted string. The escape sequences are \",
// \\, \n, \t, and \r; every other backslash pair is kept verbatim.
// Literal newlines are also legal inside the quotes, though the writer
// spells them \n on output as current KiCad releases do.
func (l *Lexer) readString(line, col int) Token {
	l.read() // opening quote

	var sb strings.Builder
	for {
		ch, ok := l.read()
		if !ok {
			l.diags.add(SeverityError, line, col, "unterminated string")
			break
		}
		if ch == '"' {
			break
		}
		if ch == '\\' {
			next, ok := l.read()
			if !ok {
				l.diags.add(SeverityError, line, col, "unterminated string after backslash")
				sb.WriteByte('\\')
				break
			}
			switch next {
			case '"', '\\':
				sb.WriteRune(next)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte('\\')
				sb.WriteRune(next)
			}
			continue
		}
		sb.WriteRune(ch)
	}

	return Token{Type: TokenString, Text: sb.String(), Line: line, Col: col}
}

// readSymbol consumes a maximal run of non-delimiter characters. The
// lexer does no semantic classification: numeric or boolean-looking
// text is still a plain symbol token here.
func (l *Lexer) readSymbol(line, col int) Token {
	var sb strings.Builder
	for {
		ch, ok := l.peek()
		if !ok {
			break
		}
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' ||
			ch == '(' || ch == ')' || ch == '"' {
			break
		}
		l.read()
		sb.WriteRune(ch)
	}
	return Token{Type: TokenSymbol, Text: sb.String(), Line: line, Col: col}
}
