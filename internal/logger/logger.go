// Package logger carries diagnostics between every pipeline stage.
// Parsing and semantic analysis never abort on error: a bad byte
// or an unexpected token is recorded here and scanning continues. The
// shape mirrors the line/column rendering used by clang-style
// compilers: a Msg carries a Kind, the offending text, and an
// optional source Location computed from a byte offset when the
// message is recorded.
package logger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Kind classifies a diagnostic. These correspond to the five error
// kinds enumerated in the error-handling design: lexical and parse
// errors are always recoverable, semantic errors describe a
// statically detectable misuse, lint diagnostics are advisory, and
// internal invariant violations should never surface outside a debug
// build.
type Kind uint8

const (
	LexicalError Kind = iota
	ParseError
	SemanticError
	LintDiagnostic
	InternalInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case ParseError:
		return "parse error"
	case SemanticError:
		return "semantic error"
	case LintDiagnostic:
		return "lint"
	case InternalInvariantViolation:
		return "internal error"
	default:
		return "error"
	}
}

// Severity distinguishes a hard error from an advisory warning. Lint
// diagnostics are always warnings, and they never abort the pipeline.
type Severity uint8

const (
	SevError Severity = iota
	SevWarning
	SevNote
)

// Loc is a 0-based byte offset into a Source's contents.
type Loc struct {
	Start int32
}

// Range is a Loc plus a byte length, the span logger records to
// underline the offending text.
type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 { return r.Loc.Start + r.Len }

// Source is the text being diagnosed plus the file name used to
// render the diagnostic. One Source exists per parse.
type Source struct {
	Index      uint32
	PrettyPath string
	Contents   string
}

// MsgLocation is the resolved line/column rendering of a Range against
// its Source, computed once when the message is built.
type MsgLocation struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int
	LineText string
}

// Msg is one diagnostic: a kind, a severity, the message text, and an
// optional location. Notes carry supplementary context, such as
// "first declared here" on a DuplicateBinding error.
type Msg struct {
	Kind     Kind
	Severity Severity
	Text     string
	Location *MsgLocation
	Notes    []Msg
}

func (m Msg) String() string {
	var b strings.Builder
	if m.Location != nil {
		fmt.Fprintf(&b, "%s:%d:%d: ", m.Location.File, m.Location.Line, m.Location.Column+1)
	}
	fmt.Fprintf(&b, "%s: %s", severityWord(m.Severity), m.Text)
	for _, note := range m.Notes {
		b.WriteString("\n    note: ")
		b.WriteString(note.Text)
	}
	return b.String()
}

func severityWord(s Severity) string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// Log collects diagnostics produced while processing one file. It is
// safe for concurrent use so a single Log can be shared by a
// cross-file worker pool behind nothing more than its own mutex —
// callers never need a separate lock.
type Log struct {
	mu      sync.Mutex
	msgs    []Msg
	errored bool
}

// NewLog returns an empty diagnostic sink.
func NewLog() *Log {
	return &Log{}
}

func (log *Log) add(source *Source, kind Kind, sev Severity, r Range, text string, notes []Msg) {
	msg := Msg{
		Kind:     kind,
		Severity: sev,
		Text:     text,
		Location: locationOrNil(source, r),
		Notes:    notes,
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	if sev == SevError {
		log.errored = true
	}
	log.msgs = append(log.msgs, msg)
}

// AddError records an error-severity diagnostic of the given kind at
// a point location.
func (log *Log) AddError(source *Source, kind Kind, loc Loc, text string) {
	log.add(source, kind, SevError, Range{Loc: loc}, text, nil)
}

// AddRangeError records an error-severity diagnostic covering a byte range.
func (log *Log) AddRangeError(source *Source, kind Kind, r Range, text string) {
	log.add(source, kind, SevError, r, text, nil)
}

// AddRangeErrorWithNotes is AddRangeError plus supplementary notes,
// used for diagnostics like DuplicateBinding that point back at the
// first declaration.
func (log *Log) AddRangeErrorWithNotes(source *Source, kind Kind, r Range, text string, notes []Msg) {
	log.add(source, kind, SevError, r, text, notes)
}

// AddWarning records a warning-severity diagnostic, the severity used
// for every LintDiagnostic: advisories are never fatal.
func (log *Log) AddWarning(source *Source, kind Kind, loc Loc, text string) {
	log.add(source, kind, SevWarning, Range{Loc: loc}, text, nil)
}

// AddRangeWarning is AddWarning over a byte range.
func (log *Log) AddRangeWarning(source *Source, kind Kind, r Range, text string) {
	log.add(source, kind, SevWarning, r, text, nil)
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (log *Log) HasErrors() bool {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.errored
}

// Msgs returns every diagnostic recorded so far, sorted by source
// location for stable, deterministic output.
func (log *Log) Msgs() []Msg {
	log.mu.Lock()
	defer log.mu.Unlock()
	out := make([]Msg, len(log.msgs))
	copy(out, log.msgs)
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := out[i].Location, out[j].Location
		if li == nil || lj == nil {
			return lj != nil
		}
		if li.Line != lj.Line {
			return li.Line < lj.Line
		}
		return li.Column < lj.Column
	})
	return out
}

func locationOrNil(source *Source, r Range) *MsgLocation {
	if source == nil {
		return nil
	}
	line, col, lineStart, lineEnd := computeLineAndColumn(source.Contents, int(r.Loc.Start))
	return &MsgLocation{
		File:     source.PrettyPath,
		Line:     line + 1,
		Column:   col,
		Length:   int(r.Len),
		LineText: source.Contents[lineStart:lineEnd],
	}
}

// computeLineAndColumn walks the source once up to the given byte
// offset. It runs once for each message that carries a location, at
// the moment add records it.
func computeLineAndColumn(contents string, offset int) (line int, column int, lineStart int, lineEnd int) {
	if offset > len(contents) {
		offset = len(contents)
	}
	lastNewline := -1
	for i := 0; i < offset; i++ {
		if contents[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	lineStart = lastNewline + 1
	column = offset - lineStart
	lineEnd = len(contents)
	if idx := strings.IndexByte(contents[offset:], '\n'); idx >= 0 {
		lineEnd = offset + idx
	}
	return
}
