// Package span holds the byte-offset and interned-string primitives
// shared by every later stage: the lexer stamps a Span on every
// token, the parser stamps one on every AST node, and Atom carries
// identifier text without copying the source buffer.
package span

import "github.com/astforge/astforge/internal/arena"

// Span is an inclusive-exclusive byte range into the source buffer.
// Start <= End <= len(source) always holds; a zero-length span (Start
// == End) marks a synthesized node with no corresponding source text,
// such as the recovery node the parser inserts for a missing token.
type Span struct {
	Start uint32
	End   uint32
}

// Len returns the number of bytes the span covers.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Contains reports whether s fully contains other, the invariant every
// parent/child span pair must satisfy.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Merge returns the smallest span covering both s and other. Used
// when a parent node's span is reconstructed from its first and last
// child after error recovery inserts or removes children.
func (s Span) Merge(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Text slices the given source buffer by the span.
func (s Span) Text(source string) string {
	return source[s.Start:s.End]
}

// Atom is an interned identifier or literal string. It either holds a
// copy of a slice of the original source text (the common case: every
// identifier and unescaped string literal) or points at a fresh slice
// in the owning Arena (synthesized names, decoded escape sequences).
// Equality is by content, never by pointer.
type Atom struct {
	bytes []byte
}

// AtomFromSource builds an Atom from a copy of the bytes s covers in
// src; it does not alias src.
func AtomFromSource(src string, s Span) Atom {
	return Atom{bytes: []byte(src[s.Start:s.End])}
}

// AtomFromString builds an Atom from arbitrary text, arena-allocating
// storage for it. Use this for decoded string-literal content and
// compiler-synthesized identifiers (e.g. unique names from the
// traversal framework).
func AtomFromString(a *arena.Arena, s string) Atom {
	return Atom{bytes: a.NewString(s)}
}

// String returns the atom's text as a newly allocated string; it does
// not alias the underlying bytes.
func (a Atom) String() string {
	return string(a.bytes)
}

// Equal compares two atoms by content.
func (a Atom) Equal(other Atom) bool {
	if len(a.bytes) != len(other.bytes) {
		return false
	}
	for i := range a.bytes {
		if a.bytes[i] != other.bytes[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the atom holds no characters, the
// representation used for an absent optional name.
func (a Atom) IsEmpty() bool {
	return len(a.bytes) == 0
}

// AstNodeId is a distinct numeric identity for a node, assigned by the
// semantic builder (the parser leaves every slot at InvalidNodeId).
// It's used instead of a pointer so that the scope tree,
// symbol table and CFG can refer to nodes via small value types that
// are safe to copy, hash and compare across passes.
type AstNodeId uint32

// InvalidNodeId marks the absence of a node reference.
const InvalidNodeId AstNodeId = ^AstNodeId(0)
