package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/config"
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/js_parser"
	"github.com/astforge/astforge/internal/logger"
	"github.com/astforge/astforge/internal/rules"
)

func parseTS(t *testing.T, src string) (js_ast.Program, *logger.Source, *logger.Log) {
	t.Helper()
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.ts", Contents: src}
	program, panicked := js_parser.Parse(log, source, arena.New(), config.ParseOptions{SourceType: config.SourceTS})
	require.False(t, panicked)
	return program, source, log
}

func TestNoLoneBlocksFlagsPurposelessBlock(t *testing.T) {
	program, source, log := parseTS(t, "{ var x = 1; x; }")
	rules.CheckNoLoneBlocks(program.Body, source, log)
	require.Len(t, log.Msgs(), 1)
	assert.Contains(t, log.Msgs()[0].Text, "no_lone_blocks")
}

func TestNoLoneBlocksIgnoresBlockNeedingScope(t *testing.T) {
	program, source, log := parseTS(t, "{ let x = 1; x; }")
	rules.CheckNoLoneBlocks(program.Body, source, log)
	assert.Empty(t, log.Msgs(), "a block holding a let/const binding needs its own scope")
}

func TestNoLoneBlocksIgnoresRequiredIfBody(t *testing.T) {
	program, source, log := parseTS(t, "if (true) { var x = 1; }")
	rules.CheckNoLoneBlocks(program.Body, source, log)
	assert.Empty(t, log.Msgs(), "a block in a required body position is never lone")
}

func TestPreferSpreadFlagsNullishThisArg(t *testing.T) {
	program, source, log := parseTS(t, "fn.apply(null, args);")
	rules.CheckPreferSpread(&program, source, log)
	require.Len(t, log.Msgs(), 1)
	assert.Contains(t, log.Msgs()[0].Text, "prefer_spread")
}

func TestPreferSpreadIgnoresNonNullishThisArg(t *testing.T) {
	program, source, log := parseTS(t, "fn.apply(obj, args);")
	rules.CheckPreferSpread(&program, source, log)
	assert.Empty(t, log.Msgs(), "a non-nullish thisArg changes binding and must never be flagged")
}

func TestNoEmptyStaticBlockFlagsEmptyBlock(t *testing.T) {
	program, source, log := parseTS(t, "class C { static {} }")
	rules.CheckNoEmptyStaticBlock(&program, source, log)
	require.Len(t, log.Msgs(), 1)
	assert.Contains(t, log.Msgs()[0].Text, "no_empty_static_block")
}

func TestNoEmptyStaticBlockIgnoresCommentedBlock(t *testing.T) {
	program, source, log := parseTS(t, "class C { static {\n  // intentional\n} }")
	rules.CheckNoEmptyStaticBlock(&program, source, log)
	assert.Empty(t, log.Msgs(), "a comment inside the block is evidence the emptiness is intentional")
}
