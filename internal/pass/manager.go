package pass

import (
	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/semantic"
	"github.com/astforge/astforge/internal/traverse"
)

// maxFixpointIterations bounds LatePeepholeOptimizations' loop so a
// pass bug (a rewrite that keeps reporting "changed") can't hang the
// pipeline; real fixpoints converge in a handful of iterations.
const maxFixpointIterations = 64

// changeTracker wraps a stage's hooks so the manager can tell whether
// any EnterStatements/EnterExpr/EnterStmt call actually mutated the
// tree, the signal the fixpoint loop needs.
type changeTracker struct {
	inner   *traverse.Hooks
	changed bool
}

func (c *changeTracker) hooks() *traverse.Hooks {
	h := &traverse.Hooks{}
	if f := c.inner.EnterStatements; f != nil {
		h.EnterStatements = func(list *[]js_ast.Stmt, ctx *traverse.Ctx) {
			before := len(*list)
			f(list, ctx)
			if len(*list) != before {
				c.changed = true
			}
		}
	}
	if f := c.inner.EnterStmt; f != nil {
		h.EnterStmt = func(s *js_ast.Stmt, ctx *traverse.Ctx) {
			before := s.Data
			f(s, ctx)
			if s.Data != before {
				c.changed = true
			}
		}
	}
	if f := c.inner.EnterExpr; f != nil {
		h.EnterExpr = func(e *js_ast.Expr, ctx *traverse.Ctx) {
			before := e.Data
			f(e, ctx)
			if e.Data != before {
				c.changed = true
			}
		}
	}
	return h
}

// RunOnce runs one stage over program to completion and reports
// whether it changed anything.
func RunOnce(program *js_ast.Program, a *arena.Arena, m *semantic.Model, stage *traverse.Hooks) bool {
	tracker := &changeTracker{inner: stage}
	scope := semantic.InvalidScopeId
	if m != nil {
		scope = semantic.ScopeId(0)
	}
	ctx := traverse.NewCtx(a, m, scope)
	traverse.Traverse(program, tracker.hooks(), ctx)
	return tracker.changed
}

// RunCompressorPipeline runs the full pipeline order: RemoveSyntax →
// PeepholeOptimizations → Collapse → LatePeepholeOptimizations (looped
// to a fixpoint) → PeepholeOptimizations.
func RunCompressorPipeline(program *js_ast.Program, a *arena.Arena, m *semantic.Model) {
	RunOnce(program, a, m, RemoveSyntax())
	RunOnce(program, a, m, PeepholeOptimizations())
	RunOnce(program, a, m, Collapse())

	for i := 0; i < maxFixpointIterations; i++ {
		if !RunOnce(program, a, m, LatePeepholeOptimizations()) {
			break
		}
	}
	RunOnce(program, a, m, PeepholeOptimizations())
}

// LatePeepholeOptimizations re-applies the var-collapse and
// constant-folding rewrites together, since each can expose new
// opportunities for the other (folding `if (true)` can leave two
// adjacent var declarations that Collapse now sees as adjacent). The
// manager loops this stage until a pass makes no further change.
func LatePeepholeOptimizations() *traverse.Hooks {
	return &traverse.Hooks{
		EnterStatements: func(list *[]js_ast.Stmt, ctx *traverse.Ctx) {
			CollapseStatements(list)
		},
		EnterStmt: func(s *js_ast.Stmt, ctx *traverse.Ctx) {
			foldConstantIf(s)
		},
		EnterExpr: func(e *js_ast.Expr, ctx *traverse.Ctx) {
			foldConstantConditional(e)
			foldConstantLogical(e)
		},
	}
}
