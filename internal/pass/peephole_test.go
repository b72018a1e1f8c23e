package pass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/pass"
	"github.com/astforge/astforge/internal/semantic"
	"github.com/astforge/astforge/internal/traverse"
)

func runStage(t *testing.T, program *js_ast.Program, stage *traverse.Hooks) {
	t.Helper()
	pass.RunOnce(program, arena.New(), &semantic.Model{}, stage)
}

func TestRemoveSyntaxDropsEmptyAndDebugger(t *testing.T) {
	program := parseJS(t, "; debugger; let x = 1;")
	runStage(t, &program, pass.RemoveSyntax())
	require.Len(t, program.Body, 1)
	_, ok := program.Body[0].Data.(*js_ast.SVar)
	assert.True(t, ok)
}

func TestPeepholeFoldsConstantConditional(t *testing.T) {
	program := parseJS(t, "let x = true ? 1 : 2;")
	runStage(t, &program, pass.PeepholeOptimizations())

	sv := program.Body[0].Data.(*js_ast.SVar)
	num, ok := sv.Declarators[0].Value.Data.(*js_ast.ENumber)
	require.True(t, ok, "the ternary must fold to its consequent")
	assert.Equal(t, float64(1), num.Value)
}

func TestPeepholeFoldsConstantLogicalAnd(t *testing.T) {
	program := parseJS(t, "let x = false && sideEffect();")
	runStage(t, &program, pass.PeepholeOptimizations())

	sv := program.Body[0].Data.(*js_ast.SVar)
	_, ok := sv.Declarators[0].Value.Data.(*js_ast.EBoolean)
	assert.True(t, ok, "`false && ...` must fold to its left operand without evaluating the right")
}
