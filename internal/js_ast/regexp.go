// Regex AST: a closed set of node types covering the ECMAScript regex
// grammar including Unicode-mode escapes; v-mode set operations are not
// represented (see RegexpCharacterClass). Produced by the parser's
// parseRegExpLiteral only when ParseOptions.ParseRegularExpression
// is set; otherwise a regex literal stays an opaque ERegExp.Value
// string. ContentEq gives lint rules a structural equivalence check
// without caring about superficial span differences.
package js_ast

import "github.com/astforge/astforge/internal/span"

type RegexpFlags struct {
	Global     bool
	IgnoreCase bool
	Multiline  bool
	DotAll     bool
	Unicode    bool
	UnicodeSets bool // v-mode
	Sticky     bool
	HasIndices bool
}

type RegexpPattern struct {
	Span         span.Span
	Alternatives []RegexpAlternative
	Flags        RegexpFlags
}

type RegexpAlternative struct {
	Span  span.Span
	Terms []RegexpTerm
}

// RegexpTerm is the tagged-variant root of one atom in an alternative,
// optionally followed by a quantifier.
type RegexpTerm struct {
	Span       span.Span
	Data       RegexpTermData
	Quantifier *RegexpQuantifier // absent if the term is not quantified
}

type RegexpTermData interface{ isRegexpTerm() }

func (*RegexpBoundaryAssertion) isRegexpTerm()    {}
func (*RegexpLookaround) isRegexpTerm()           {}
func (*RegexpCharacter) isRegexpTerm()            {}
func (*RegexpCharacterClassEscape) isRegexpTerm() {}
func (*RegexpUnicodePropertyEscape) isRegexpTerm() {}
func (*RegexpCharacterClass) isRegexpTerm()       {}
func (*RegexpGroup) isRegexpTerm()                {}
func (*RegexpBackreference) isRegexpTerm()        {}
func (*RegexpAnyCharacter) isRegexpTerm()         {}

type RegexpBoundaryKind uint8

const (
	RegexpBoundaryStart RegexpBoundaryKind = iota
	RegexpBoundaryEnd
	RegexpBoundaryWord
	RegexpBoundaryNotWord
)

type RegexpBoundaryAssertion struct{ Kind RegexpBoundaryKind }

type RegexpLookaround struct {
	IsAhead    bool
	IsNegative bool
	Body       []RegexpAlternative // a group body is itself a disjunction
}

type RegexpAnyCharacter struct{}

// RegexpCharacter is a single literal code point, decoded from any of
// the literal, hex-escape, or unicode-escape source forms.
type RegexpCharacter struct{ Value rune }

type RegexpCharacterClassEscapeKind uint8

const (
	RegexpClassDigit RegexpCharacterClassEscapeKind = iota
	RegexpClassNotDigit
	RegexpClassWord
	RegexpClassNotWord
	RegexpClassSpace
	RegexpClassNotSpace
)

type RegexpCharacterClassEscape struct{ Kind RegexpCharacterClassEscapeKind }

// RegexpUnicodePropertyEscape is "\p{Name=Value}" / "\P{Name}".
type RegexpUnicodePropertyEscape struct {
	IsNegative bool
	Name       span.Atom
	Value      span.Atom // absent if the property has no value part
	IsStrings  bool      // true for a \q{...} string-disjunction escape (v-mode)
}

type RegexpClassRange struct {
	From rune
	To   rune
}

// RegexpCharacterClass is "[...]" / "[^...]". The parser never fills
// Nested or Operation, so v-mode set operations (intersection/
// subtraction) and nested v-mode classes are not represented here.
type RegexpCharacterClass struct {
	IsNegative bool
	Ranges     []RegexpClassRange
	Escapes    []RegexpCharacterClassEscape
	Properties []RegexpUnicodePropertyEscape
	Nested     []RegexpCharacterClass // v-mode nested class set operands
	Operation  RegexpSetOperation
}

type RegexpSetOperation uint8

const (
	RegexpSetNone RegexpSetOperation = iota
	RegexpSetIntersection
	RegexpSetSubtraction
	RegexpSetUnion
)

type RegexpGroupKind uint8

const (
	RegexpGroupCapturing RegexpGroupKind = iota
	RegexpGroupNonCapturing
	RegexpGroupNamedCapturing
)

type RegexpGroup struct {
	Kind         RegexpGroupKind
	Name         span.Atom // set for RegexpGroupNamedCapturing
	CaptureIndex int       // 1-based, set for capturing groups
	Body         []RegexpAlternative // a group body is itself a disjunction
}

type RegexpBackreferenceKind uint8

const (
	RegexpBackreferenceNumbered RegexpBackreferenceKind = iota
	RegexpBackreferenceNamed
)

type RegexpBackreference struct {
	Kind  RegexpBackreferenceKind
	Index int
	Name  span.Atom
}

type RegexpQuantifier struct {
	Min      int
	Max      int // -1 for unbounded ("{2,}" or "*"/"+")
	IsGreedy bool
}

// ContentEq reports structural equality between two patterns,
// ignoring spans, the comparison lint rules use to detect equivalent
// regular expressions written with different source text.
func (p *RegexpPattern) ContentEq(other *RegexpPattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Flags != other.Flags {
		return false
	}
	return alternativesContentEq(p.Alternatives, other.Alternatives)
}

// alternativesContentEq compares a disjunction (a pattern body, or a
// group/lookaround body, which are both just nested disjunctions).
func alternativesContentEq(a, b []RegexpAlternative) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].contentEq(&b[i]) {
			return false
		}
	}
	return true
}

func (a *RegexpAlternative) contentEq(other *RegexpAlternative) bool {
	if len(a.Terms) != len(other.Terms) {
		return false
	}
	for i := range a.Terms {
		if !a.Terms[i].contentEq(&other.Terms[i]) {
			return false
		}
	}
	return true
}

func (t *RegexpTerm) contentEq(other *RegexpTerm) bool {
	if (t.Quantifier == nil) != (other.Quantifier == nil) {
		return false
	}
	if t.Quantifier != nil && *t.Quantifier != *other.Quantifier {
		return false
	}
	switch a := t.Data.(type) {
	case *RegexpCharacter:
		b, ok := other.Data.(*RegexpCharacter)
		return ok && a.Value == b.Value
	case *RegexpBoundaryAssertion:
		b, ok := other.Data.(*RegexpBoundaryAssertion)
		return ok && a.Kind == b.Kind
	case *RegexpCharacterClassEscape:
		b, ok := other.Data.(*RegexpCharacterClassEscape)
		return ok && a.Kind == b.Kind
	case *RegexpAnyCharacter:
		_, ok := other.Data.(*RegexpAnyCharacter)
		return ok
	case *RegexpGroup:
		b, ok := other.Data.(*RegexpGroup)
		return ok && a.Kind == b.Kind && a.Name.Equal(b.Name) && alternativesContentEq(a.Body, b.Body)
	case *RegexpBackreference:
		b, ok := other.Data.(*RegexpBackreference)
		return ok && a.Kind == b.Kind && a.Index == b.Index && a.Name.Equal(b.Name)
	case *RegexpLookaround:
		b, ok := other.Data.(*RegexpLookaround)
		return ok && a.IsAhead == b.IsAhead && a.IsNegative == b.IsNegative && alternativesContentEq(a.Body, b.Body)
	case *RegexpCharacterClass:
		b, ok := other.Data.(*RegexpCharacterClass)
		return ok && a.contentEq(b)
	case *RegexpUnicodePropertyEscape:
		b, ok := other.Data.(*RegexpUnicodePropertyEscape)
		return ok && a.contentEq(b)
	default:
		return false
	}
}

func (c *RegexpCharacterClass) contentEq(other *RegexpCharacterClass) bool {
	if c.IsNegative != other.IsNegative || c.Operation != other.Operation {
		return false
	}
	if len(c.Ranges) != len(other.Ranges) || len(c.Escapes) != len(other.Escapes) ||
		len(c.Properties) != len(other.Properties) || len(c.Nested) != len(other.Nested) {
		return false
	}
	for i := range c.Ranges {
		if c.Ranges[i] != other.Ranges[i] {
			return false
		}
	}
	for i := range c.Escapes {
		if c.Escapes[i] != other.Escapes[i] {
			return false
		}
	}
	for i := range c.Properties {
		if !c.Properties[i].contentEq(&other.Properties[i]) {
			return false
		}
	}
	for i := range c.Nested {
		if !c.Nested[i].contentEq(&other.Nested[i]) {
			return false
		}
	}
	return true
}

func (p *RegexpUnicodePropertyEscape) contentEq(other *RegexpUnicodePropertyEscape) bool {
	return p.IsNegative == other.IsNegative && p.IsStrings == other.IsStrings &&
		p.Name.Equal(other.Name) && p.Value.Equal(other.Value)
}
