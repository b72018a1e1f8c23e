// Package config holds the small set of flags that select a parse's
// grammar subset and feature surface: no bundler- or minifier-level
// options live here.
package config

// SourceType selects which grammar productions the parser accepts.
// A file is exactly one of these; the parser never mixes value-level
// TypeScript syntax into a plain .js file or vice versa.
type SourceType uint8

const (
	SourceJS SourceType = iota
	SourceJSX
	SourceTS
	SourceTSX
	SourceCJS
	SourceMJS
)

func (s SourceType) IsTypeScript() bool { return s == SourceTS || s == SourceTSX }
func (s SourceType) IsJSX() bool        { return s == SourceJSX || s == SourceTSX }
func (s SourceType) IsModule() bool     { return s == SourceMJS }

// ParseOptions governs the parser's optional behaviors.
type ParseOptions struct {
	SourceType SourceType

	// ParseRegularExpression selects whether a regex literal is parsed
	// into a full RegexpPattern AST or kept as an opaque raw string.
	ParseRegularExpression bool

	// PreserveParens is carried in the options but read by nothing: the
	// AST has no parenthesized-expression node, and grouping is
	// discarded once precedence is resolved whatever its value.
	PreserveParens bool

	// AllowReturnOutsideFunction is carried in the options but read by
	// nothing: the parser accepts "return" at any nesting level, so
	// there is no top-level check for it to relax.
	AllowReturnOutsideFunction bool
}
