package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/config"
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/js_parser"
	"github.com/astforge/astforge/internal/logger"
	"github.com/astforge/astforge/internal/semantic"
	"github.com/astforge/astforge/internal/transform"
)

func parse(t *testing.T, src string) js_ast.Program {
	t.Helper()
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.js", Contents: src}
	program, panicked := js_parser.Parse(log, source, arena.New(), config.ParseOptions{})
	require.False(t, panicked)
	return program
}

func TestOptionalChainLoweredBelowES2020(t *testing.T) {
	program := parse(t, "a?.b;")
	transform.RunPipeline(&program, arena.New(), &semantic.Model{}, transform.ES2015, transform.DefaultPlugins())

	expr, ok := program.Body[0].Data.(*js_ast.SExpr)
	require.True(t, ok)
	_, stillDot := expr.Value.Data.(*js_ast.EDot)
	assert.False(t, stillDot, "the optional link must lower to a ternary below its plugin's MinTarget")
	_, isConditional := expr.Value.Data.(*js_ast.EConditional)
	assert.True(t, isConditional)
}

func TestOptionalChainUntouchedAtOrAboveTarget(t *testing.T) {
	program := parse(t, "a?.b;")
	transform.RunPipeline(&program, arena.New(), &semantic.Model{}, transform.ES2020, transform.DefaultPlugins())

	expr := program.Body[0].Data.(*js_ast.SExpr)
	_, stillDot := expr.Value.Data.(*js_ast.EDot)
	assert.True(t, stillDot, "a plugin must skip lowering once the target already supports the feature")
}

func TestESNextRunsNoLowering(t *testing.T) {
	program := parse(t, "a?.b;")
	transform.RunPipeline(&program, arena.New(), &semantic.Model{}, transform.ESNext, transform.DefaultPlugins())

	expr := program.Body[0].Data.(*js_ast.SExpr)
	_, stillDot := expr.Value.Data.(*js_ast.EDot)
	assert.True(t, stillDot)
}
