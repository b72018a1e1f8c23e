package pass

import (
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/traverse"
)

// RemoveSyntax drops statements that carry no semantics: empty
// statements (";") and debugger statements. It's the first stage of
// the compressor pipeline.
func RemoveSyntax() *traverse.Hooks {
	return &traverse.Hooks{
		EnterStatements: func(list *[]js_ast.Stmt, _ *traverse.Ctx) {
			out := (*list)[:0]
			for _, s := range *list {
				switch s.Data.(type) {
				case *js_ast.SEmpty, *js_ast.SDebugger:
					continue
				}
				out = append(out, s)
			}
			*list = out
		},
	}
}

// PeepholeOptimizations folds constant control flow that the parser or
// an earlier pass can leave behind: an `if`/ternary whose test is a
// boolean literal collapses to the taken branch, and a logical
// expression short-circuits when its left operand is a boolean
// literal. It runs right after RemoveSyntax and again after
// LatePeepholeOptimizations reaches a fixpoint.
func PeepholeOptimizations() *traverse.Hooks {
	return &traverse.Hooks{
		EnterStmt: func(s *js_ast.Stmt, _ *traverse.Ctx) { foldConstantIf(s) },
		EnterExpr: func(e *js_ast.Expr, _ *traverse.Ctx) {
			foldConstantConditional(e)
			foldConstantLogical(e)
		},
	}
}

func foldConstantIf(s *js_ast.Stmt) bool {
	ifStmt, ok := s.Data.(*js_ast.SIf)
	if !ok {
		return false
	}
	lit, ok := ifStmt.Test.Data.(*js_ast.EBoolean)
	if !ok {
		return false
	}
	if lit.Value {
		*s = ifStmt.Yes
	} else if !ifStmt.No.IsAbsent() {
		*s = ifStmt.No
	} else {
		s.Data = &js_ast.SEmpty{}
	}
	return true
}

func foldConstantConditional(e *js_ast.Expr) bool {
	cond, ok := e.Data.(*js_ast.EConditional)
	if !ok {
		return false
	}
	lit, ok := cond.Test.Data.(*js_ast.EBoolean)
	if !ok {
		return false
	}
	if lit.Value {
		*e = cond.Yes
	} else {
		*e = cond.No
	}
	return true
}

func foldConstantLogical(e *js_ast.Expr) bool {
	logical, ok := e.Data.(*js_ast.ELogical)
	if !ok {
		return false
	}
	lit, ok := logical.Left.Data.(*js_ast.EBoolean)
	if !ok {
		return false
	}
	switch logical.Op {
	case js_ast.BinOpLogicalAnd:
		if lit.Value {
			*e = logical.Right
		} else {
			*e = logical.Left
		}
		return true
	case js_ast.BinOpLogicalOr:
		if lit.Value {
			*e = logical.Left
		} else {
			*e = logical.Right
		}
		return true
	}
	return false
}
