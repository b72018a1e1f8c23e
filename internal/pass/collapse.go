// Package pass implements the compressor pipeline: RemoveSyntax,
// PeepholeOptimizations, Collapse, and a LatePeepholeOptimizations
// stage run to a fixpoint. Every stage plugs into the traversal
// framework in package traverse via its EnterStatements/EnterExpr
// hooks, so a stage that only needs to rewrite statement lists
// (Collapse, RemoveSyntax) never has to walk the tree itself.
package pass

import (
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/span"
	"github.com/astforge/astforge/internal/traverse"
)

// CollapseStatements merges adjacent variable declarations of the
// same kind into the first
// declaration of the run, provided neither statement's first
// declarator is a `require(...)` call. It reports whether it changed
// anything; LatePeepholeOptimizations does not read this result, since
// the pipeline's change tracker already sees a merge as a shorter list.
func CollapseStatements(list *[]js_ast.Stmt) bool {
	changed := false
	out := make([]js_ast.Stmt, 0, len(*list))
	i := 0
	for i < len(*list) {
		cur := (*list)[i]
		sv, ok := cur.Data.(*js_ast.SVar)
		if !ok || isRequireDeclaration(sv) {
			out = append(out, cur)
			i++
			continue
		}

		declarators := append([]js_ast.Declarator(nil), sv.Declarators...)
		runEnd := cur.Span.End
		j := i + 1
		for j < len(*list) {
			next, ok := (*list)[j].Data.(*js_ast.SVar)
			if !ok || next.Kind != sv.Kind || isRequireDeclaration(next) {
				break
			}
			declarators = append(declarators, next.Declarators...)
			runEnd = (*list)[j].Span.End
			j++
		}

		if j == i+1 {
			out = append(out, cur)
			i++
			continue
		}
		changed = true
		merged := &js_ast.SVar{Kind: sv.Kind, Declarators: declarators, IsExported: sv.IsExported}
		out = append(out, js_ast.Stmt{Span: span.Span{Start: cur.Span.Start, End: runEnd}, Data: merged})
		i = j
	}
	*list = out
	return changed
}

// isRequireDeclaration reports whether a var declaration's first
// declarator initializes from a bare `require(...)` call, the guard
// that keeps `var x=require("p"); var y=1;` from merging across the
// require call.
func isRequireDeclaration(sv *js_ast.SVar) bool {
	if len(sv.Declarators) == 0 {
		return false
	}
	call, ok := sv.Declarators[0].Value.Data.(*js_ast.ECall)
	if !ok {
		return false
	}
	id, ok := call.Target.Data.(*js_ast.EIdentifier)
	return ok && id.Name.String() == "require"
}

// Collapse is the Collapse stage as a traverse.Hooks value: it runs
// CollapseStatements at every statement list the traversal framework
// visits, not just the program's top level.
func Collapse() *traverse.Hooks {
	return &traverse.Hooks{
		EnterStatements: func(list *[]js_ast.Stmt, _ *traverse.Ctx) {
			CollapseStatements(list)
		},
	}
}
