package js_ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/span"
)

func charClassPattern(cls *js_ast.RegexpCharacterClass) *js_ast.RegexpPattern {
	return &js_ast.RegexpPattern{
		Alternatives: []js_ast.RegexpAlternative{{
			Terms: []js_ast.RegexpTerm{{Data: cls}},
		}},
	}
}

func TestRegexpPatternContentEqCharacterClass(t *testing.T) {
	a := charClassPattern(&js_ast.RegexpCharacterClass{
		Ranges: []js_ast.RegexpClassRange{{From: 'a', To: 'z'}},
	})
	b := charClassPattern(&js_ast.RegexpCharacterClass{
		Ranges: []js_ast.RegexpClassRange{{From: 'a', To: 'z'}},
	})
	assert.True(t, a.ContentEq(b), "two [a-z] classes built independently must compare equal")
}

func TestRegexpPatternContentEqCharacterClassDiffersOnNegation(t *testing.T) {
	a := charClassPattern(&js_ast.RegexpCharacterClass{IsNegative: true, Ranges: []js_ast.RegexpClassRange{{From: 'a', To: 'z'}}})
	b := charClassPattern(&js_ast.RegexpCharacterClass{Ranges: []js_ast.RegexpClassRange{{From: 'a', To: 'z'}}})
	assert.False(t, a.ContentEq(b))
}

func TestRegexpPatternContentEqCharacterClassDiffersOnRange(t *testing.T) {
	a := charClassPattern(&js_ast.RegexpCharacterClass{Ranges: []js_ast.RegexpClassRange{{From: 'a', To: 'z'}}})
	b := charClassPattern(&js_ast.RegexpCharacterClass{Ranges: []js_ast.RegexpClassRange{{From: 'a', To: 'y'}}})
	assert.False(t, a.ContentEq(b))
}

func TestRegexpPatternContentEqUnicodePropertyEscape(t *testing.T) {
	mk := func() *js_ast.RegexpPattern {
		return &js_ast.RegexpPattern{
			Alternatives: []js_ast.RegexpAlternative{{
				Terms: []js_ast.RegexpTerm{{Data: &js_ast.RegexpUnicodePropertyEscape{
					Name:  span.AtomFromSource("Script", span.Span{Start: 0, End: 6}),
					Value: span.AtomFromSource("Greek=Greek", span.Span{Start: 0, End: 5}),
				}}},
			}},
		}
	}
	assert.True(t, mk().ContentEq(mk()), "two \\p{Script=Greek} escapes built independently must compare equal")
}

func TestRegexpPatternContentEqUnicodePropertyEscapeDiffersOnNegation(t *testing.T) {
	base := span.AtomFromSource("Letter", span.Span{Start: 0, End: 6})
	a := &js_ast.RegexpPattern{Alternatives: []js_ast.RegexpAlternative{{
		Terms: []js_ast.RegexpTerm{{Data: &js_ast.RegexpUnicodePropertyEscape{Name: base, IsNegative: true}}},
	}}}
	b := &js_ast.RegexpPattern{Alternatives: []js_ast.RegexpAlternative{{
		Terms: []js_ast.RegexpTerm{{Data: &js_ast.RegexpUnicodePropertyEscape{Name: base}}},
	}}}
	assert.False(t, a.ContentEq(b))
}

func TestRegexpPatternContentEqGroupDisjunctionBody(t *testing.T) {
	mk := func() *js_ast.RegexpPattern {
		return &js_ast.RegexpPattern{Alternatives: []js_ast.RegexpAlternative{{
			Terms: []js_ast.RegexpTerm{{Data: &js_ast.RegexpGroup{
				Kind: js_ast.RegexpGroupNonCapturing,
				Body: []js_ast.RegexpAlternative{
					{Terms: []js_ast.RegexpTerm{{Data: &js_ast.RegexpCharacter{Value: 'a'}}}},
					{Terms: []js_ast.RegexpTerm{{Data: &js_ast.RegexpCharacter{Value: 'b'}}}},
				},
			}}},
		}}}
	}
	assert.True(t, mk().ContentEq(mk()), "a group's body is itself a disjunction and must compare alternative-by-alternative")
}

func TestRegexpPatternContentEqNilPatterns(t *testing.T) {
	var a, b *js_ast.RegexpPattern
	assert.True(t, a.ContentEq(b), "two opaque (unparsed) regex literals carry nil patterns and compare equal")
	assert.False(t, a.ContentEq(charClassPattern(&js_ast.RegexpCharacterClass{})))
}
