package traverse_test

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
	"github.com/astforge/astforge/internal/traverse"
)

func parse(t *testing.T, src string) js_ast.Program {
	t.Helper()
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.js", Contents: src}
	program, panicked := js_parser.Parse(log, source, arena.New(), config.ParseOptions{})
	require.False(t, panicked)
	return program
}

// TestMutationObservedBySubsequentSiblings exercises the re-entrancy
// contract: a hook that drops a statement from a list must not be
// re-visited once removed, but the shortened list must still be
// walked to its new end.
func TestMutationObservedBySubsequentSiblings(t *testing.T) {
	program := parse(t, "var a; var b; var c;")
	a := arena.New()
	ctx := traverse.NewCtx(a, nil, semantic.InvalidScopeId)

	var seen int
	hooks := &traverse.Hooks{
		EnterStatements: func(list *[]js_ast.Stmt, _ *traverse.Ctx) {
			*list = (*list)[:1] // drop everything after the first statement
		},
		EnterStmt: func(s *js_ast.Stmt, _ *traverse.Ctx) { seen++ },
	}
	traverse.Traverse(&program, hooks, ctx)
	assert.Equal(t, 1, seen, "statements spliced out of the list must not be visited")
}

func TestGenerateUniqueNameMintsDistinctNames(t *testing.T) {
	ctx := traverse.NewCtx(arena.New(), nil, semantic.InvalidScopeId)
	first := ctx.GenerateUniqueName("tmp")
	second := ctx.GenerateUniqueName("tmp")
	assert.NotEqual(t, first.String(), second.String(), "successive calls must mint distinct names")
}

func TestScopeEnterExitRestoresPrevious(t *testing.T) {
	model := &semantic.Model{}
	top := model.CreateScope(semantic.InvalidScopeId, semantic.ScopeTop)
	ctx := traverse.NewCtx(arena.New(), model, top)

	child, prev := ctx.EnterScope(semantic.ScopeBlock)
	assert.NotEqual(t, top, child)
	assert.Equal(t, child, ctx.CurrentScope())
	ctx.ExitScope(prev)
	assert.Equal(t, top, ctx.CurrentScope())
}
