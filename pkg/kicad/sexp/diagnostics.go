package sexp

import "fmt"

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic describes a problem found while reading a document.
// Problems are collected rather than thrown: parsing always returns a
// best-effort tree, and the caller decides what an Error means for it.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int // 1-based, 0 when unknown
	Col      int // 1-based rune column, 0 when unknown
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Col, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Diagnostics is an ordered collection of problems from one parse.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic has Error severity.
// Documents with only Info and Warning diagnostics are fully usable.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Add appends a diagnostic with no source position, for problems found
// by domain mappers walking an already-parsed tree.
func (ds *Diagnostics) Add(sev Severity, format string, args ...any) {
	ds.add(sev, 0, 0, format, args...)
}

func (ds *Diagnostics) add(sev Severity, line, col int, format string, args ...any) {
	*ds = append(*ds, Diagnostic{
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Col:      col,
	})
}
