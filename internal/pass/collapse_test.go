package pass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/config"
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/js_parser"
	"github.com/astforge/astforge/internal/logger"
	"github.com/astforge/astforge/internal/pass"
	"github.com/astforge/astforge/internal/semantic"
)

func parseJS(t *testing.T, src string) js_ast.Program {
	t.Helper()
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.js", Contents: src}
	program, panicked := js_parser.Parse(log, source, arena.New(), config.ParseOptions{})
	require.False(t, panicked)
	return program
}

func TestCollapseMergesAdjacentSameKindDeclarations(t *testing.T) {
	list := parseJS(t, "var a = 1; var b = 2; let c = 3;").Body
	changed := pass.CollapseStatements(&list)
	require.True(t, changed)
	require.Len(t, list, 2, "the two vars merge, the let stays separate")

	sv, ok := list[0].Data.(*js_ast.SVar)
	require.True(t, ok)
	assert.Len(t, sv.Declarators, 2)
}

func TestCollapseStopsAtRequireGuard(t *testing.T) {
	list := parseJS(t, `var x=require("p"); var y=1;`).Body
	changed := pass.CollapseStatements(&list)
	assert.False(t, changed, `a run starting with a require() declarator must never merge`)
	assert.Len(t, list, 2)
}

func TestCollapseIsIdempotent(t *testing.T) {
	list := parseJS(t, "var a = 1; var b = 2;").Body
	pass.CollapseStatements(&list)
	changedAgain := pass.CollapseStatements(&list)
	assert.False(t, changedAgain, "running collapse on an already-collapsed list must report no change")
}

func TestRunCompressorPipelineFoldsConstantIf(t *testing.T) {
	program := parseJS(t, "if (true) { x = 1; } else { x = 2; }")
	pass.RunCompressorPipeline(&program, arena.New(), &semantic.Model{})

	require.Len(t, program.Body, 1)
	_, stillIf := program.Body[0].Data.(*js_ast.SIf)
	assert.False(t, stillIf, "a constant-true if must collapse to its consequent")
}
