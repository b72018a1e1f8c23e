package js_ast

import "github.com/astforge/astforge/internal/span"

// Comment is a source comment retained for pragma scanning (e.g.
// JSX factory pragmas) and for lint rules like no_empty_static_block
// that need to know a block wasn't really empty.
type Comment struct {
	Span      span.Span
	IsMultiLine bool
}

// Program is the root of one parse: the module body plus the
// comments collected alongside it. SourceLen records the byte length
// of the whole input so downstream passes can assert span coverage
// without holding onto the source string themselves.
type Program struct {
	Body       []Stmt
	Comments   []Comment
	SourceLen  uint32
	HasUseStrictDirective bool
}
