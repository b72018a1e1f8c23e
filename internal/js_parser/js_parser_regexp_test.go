package js_parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/config"
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/js_parser"
	"github.com/astforge/astforge/internal/logger"
)

func parseRegExp(t *testing.T, src string) *js_ast.RegexpPattern {
	t.Helper()
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.ts", Contents: src}
	program, panicked := js_parser.Parse(log, source, arena.New(), config.ParseOptions{ParseRegularExpression: true})
	require.False(t, panicked)
	require.Len(t, program.Body, 1)
	expr, ok := program.Body[0].Data.(*js_ast.SExpr)
	require.True(t, ok)
	re, ok := expr.Value.Data.(*js_ast.ERegExp)
	require.True(t, ok)
	return re.Pattern
}

func TestRegExpLiteralLeftUnparsedByDefault(t *testing.T) {
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.ts", Contents: "/a/;"}
	program, panicked := js_parser.Parse(log, source, arena.New(), config.ParseOptions{})
	require.False(t, panicked)
	re := program.Body[0].Data.(*js_ast.SExpr).Value.Data.(*js_ast.ERegExp)
	assert.Nil(t, re.Pattern)
	assert.Equal(t, "/a/", re.Value.String())
}

func TestRegExpLiteralSimpleSequence(t *testing.T) {
	pattern := parseRegExp(t, "/abc/gi;")
	require.NotNil(t, pattern)
	assert.True(t, pattern.Flags.Global)
	assert.True(t, pattern.Flags.IgnoreCase)
	require.Len(t, pattern.Alternatives, 1)
	require.Len(t, pattern.Alternatives[0].Terms, 3)
	for i, want := range []rune{'a', 'b', 'c'} {
		c, ok := pattern.Alternatives[0].Terms[i].Data.(*js_ast.RegexpCharacter)
		require.True(t, ok)
		assert.Equal(t, want, c.Value)
	}
}

func TestRegExpLiteralDisjunctionAndGroup(t *testing.T) {
	pattern := parseRegExp(t, "/(a|bb)+/;")
	require.NotNil(t, pattern)
	require.Len(t, pattern.Alternatives[0].Terms, 1)
	term := pattern.Alternatives[0].Terms[0]
	require.NotNil(t, term.Quantifier)
	assert.Equal(t, 1, term.Quantifier.Min)
	assert.Equal(t, -1, term.Quantifier.Max)
	assert.True(t, term.Quantifier.IsGreedy)

	group, ok := term.Data.(*js_ast.RegexpGroup)
	require.True(t, ok)
	assert.Equal(t, js_ast.RegexpGroupCapturing, group.Kind)
	assert.Equal(t, 1, group.CaptureIndex)
	require.Len(t, group.Body, 2, "a|bb is a two-alternative disjunction inside the group")
}

func TestRegExpLiteralNamedCapturingGroupAndBackreference(t *testing.T) {
	pattern := parseRegExp(t, `/(?<year>\d{4})-\k<year>/;`)
	require.NotNil(t, pattern)
	terms := pattern.Alternatives[0].Terms
	require.Len(t, terms, 3)

	group, ok := terms[0].Data.(*js_ast.RegexpGroup)
	require.True(t, ok)
	assert.Equal(t, js_ast.RegexpGroupNamedCapturing, group.Kind)
	assert.Equal(t, "year", group.Name.String())

	dash, ok := terms[1].Data.(*js_ast.RegexpCharacter)
	require.True(t, ok)
	assert.Equal(t, '-', dash.Value)

	backref, ok := terms[2].Data.(*js_ast.RegexpBackreference)
	require.True(t, ok)
	assert.Equal(t, js_ast.RegexpBackreferenceNamed, backref.Kind)
	assert.Equal(t, "year", backref.Name.String())
}

func TestRegExpLiteralLookaround(t *testing.T) {
	pattern := parseRegExp(t, "/foo(?=bar)(?<!baz)/;")
	terms := pattern.Alternatives[0].Terms
	require.Len(t, terms, 5) // f, o, o, lookahead, lookbehind

	ahead, ok := terms[3].Data.(*js_ast.RegexpLookaround)
	require.True(t, ok)
	assert.True(t, ahead.IsAhead)
	assert.False(t, ahead.IsNegative)

	behind, ok := terms[4].Data.(*js_ast.RegexpLookaround)
	require.True(t, ok)
	assert.False(t, behind.IsAhead)
	assert.True(t, behind.IsNegative)
}

func TestRegExpLiteralCharacterClass(t *testing.T) {
	pattern := parseRegExp(t, `/[a-z0-9_\d]/;`)
	require.Len(t, pattern.Alternatives[0].Terms, 1)
	cls, ok := pattern.Alternatives[0].Terms[0].Data.(*js_ast.RegexpCharacterClass)
	require.True(t, ok)
	assert.False(t, cls.IsNegative)
	require.Len(t, cls.Ranges, 3)
	assert.Equal(t, js_ast.RegexpClassRange{From: 'a', To: 'z'}, cls.Ranges[0])
	assert.Equal(t, js_ast.RegexpClassRange{From: '0', To: '9'}, cls.Ranges[1])
	assert.Equal(t, js_ast.RegexpClassRange{From: '_', To: '_'}, cls.Ranges[2])
	require.Len(t, cls.Escapes, 1)
	assert.Equal(t, js_ast.RegexpClassDigit, cls.Escapes[0].Kind)
}

func TestRegExpLiteralNegatedClassAndUnicodeProperty(t *testing.T) {
	pattern := parseRegExp(t, `/[^\p{Script=Greek}]/u;`)
	require.True(t, pattern.Flags.Unicode)
	cls, ok := pattern.Alternatives[0].Terms[0].Data.(*js_ast.RegexpCharacterClass)
	require.True(t, ok)
	assert.True(t, cls.IsNegative)
	require.Len(t, cls.Properties, 1)
	assert.False(t, cls.Properties[0].IsNegative)
	assert.Equal(t, "Script", cls.Properties[0].Name.String())
	assert.Equal(t, "Greek", cls.Properties[0].Value.String())
}

func TestRegExpLiteralUnicodePropertyEscapeAsTerm(t *testing.T) {
	pattern := parseRegExp(t, `/\P{Letter}/u;`)
	prop, ok := pattern.Alternatives[0].Terms[0].Data.(*js_ast.RegexpUnicodePropertyEscape)
	require.True(t, ok)
	assert.True(t, prop.IsNegative)
	assert.Equal(t, "Letter", prop.Name.String())
	assert.True(t, prop.Value.IsEmpty())
}

func TestRegExpLiteralQuantifierVariants(t *testing.T) {
	pattern := parseRegExp(t, "/a*b+c?d{2}e{2,}f{2,4}g{2,4}?/;")
	terms := pattern.Alternatives[0].Terms
	require.Len(t, terms, 7)
	wantMin := []int{0, 1, 0, 2, 2, 2, 2}
	wantMax := []int{-1, -1, 1, 2, -1, 4, 4}
	for i, term := range terms {
		require.NotNil(t, term.Quantifier, "term %d", i)
		assert.Equal(t, wantMin[i], term.Quantifier.Min, "term %d min", i)
		assert.Equal(t, wantMax[i], term.Quantifier.Max, "term %d max", i)
	}
	assert.False(t, terms[6].Quantifier.IsGreedy, "trailing ? makes g{2,4} lazy")
}

func TestRegExpLiteralBoundaryAndDot(t *testing.T) {
	pattern := parseRegExp(t, `/^\bfoo.\B$/m;`)
	require.True(t, pattern.Flags.Multiline)
	terms := pattern.Alternatives[0].Terms
	require.Len(t, terms, 8)
	start, ok := terms[0].Data.(*js_ast.RegexpBoundaryAssertion)
	require.True(t, ok)
	assert.Equal(t, js_ast.RegexpBoundaryStart, start.Kind)

	word, ok := terms[1].Data.(*js_ast.RegexpBoundaryAssertion)
	require.True(t, ok)
	assert.Equal(t, js_ast.RegexpBoundaryWord, word.Kind)

	_, ok = terms[5].Data.(*js_ast.RegexpAnyCharacter)
	assert.True(t, ok)

	notWord, ok := terms[6].Data.(*js_ast.RegexpBoundaryAssertion)
	require.True(t, ok)
	assert.Equal(t, js_ast.RegexpBoundaryNotWord, notWord.Kind)

	end, ok := terms[7].Data.(*js_ast.RegexpBoundaryAssertion)
	require.True(t, ok)
	assert.Equal(t, js_ast.RegexpBoundaryEnd, end.Kind)
}

func TestRegExpLiteralEscapedCodePoints(t *testing.T) {
	pattern := parseRegExp(t, `/\x41B\u{1F600}/u;`)
	terms := pattern.Alternatives[0].Terms
	require.Len(t, terms, 3)
	want := []rune{'A', 'B', 0x1F600}
	for i, w := range want {
		c, ok := terms[i].Data.(*js_ast.RegexpCharacter)
		require.True(t, ok)
		assert.Equal(t, w, c.Value)
	}
}

func TestRegExpLiteralSurrogatePairCombinesOutsideUnicodeMode(t *testing.T) {
	pattern := parseRegExp(t, `/\uD83D\uDE00/;`)
	terms := pattern.Alternatives[0].Terms
	require.Len(t, terms, 1)
	c, ok := terms[0].Data.(*js_ast.RegexpCharacter)
	require.True(t, ok)
	assert.Equal(t, rune(0x1F600), c.Value, "a lead/trail surrogate escape pair combines into one code point")
}

func TestRegExpLiteralMalformedFallsBackToOpaqueValue(t *testing.T) {
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.ts", Contents: "/(unterminated/;"}
	program, panicked := js_parser.Parse(log, source, arena.New(), config.ParseOptions{ParseRegularExpression: true})
	require.False(t, panicked, "a malformed regex body degrades to the opaque form instead of aborting the whole parse")
	re := program.Body[0].Data.(*js_ast.SExpr).Value.Data.(*js_ast.ERegExp)
	assert.Nil(t, re.Pattern)
	assert.NotEmpty(t, re.Value.String())
}

func TestRegExpLiteralDuplicateFlagFallsBackToOpaqueValue(t *testing.T) {
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.ts", Contents: "/a/gg;"}
	program, panicked := js_parser.Parse(log, source, arena.New(), config.ParseOptions{ParseRegularExpression: true})
	require.False(t, panicked)
	re := program.Body[0].Data.(*js_ast.SExpr).Value.Data.(*js_ast.ERegExp)
	assert.Nil(t, re.Pattern)
}
