// Package rules hosts a handful of lint rules built directly on the
// immutable Visitor and the same statement-list/body-slot distinction
// the traversal framework threads through every pass. These three are
// worked examples of the rule framework a full catalog would plug
// into, not an attempt at that catalog.
package rules

import (
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/logger"
)

// CheckNoLoneBlocks reports every standalone "{ ... }" block statement
// whose direct children need no block scope of their own: a block
// holding only `var`/expression statements (no `let`, `const`, class,
// or function declaration) could be removed without changing
// behavior. A block that IS the required body of an if/for/while/do/
// label/with is never "lone" — see bodySlot below.
func CheckNoLoneBlocks(body []js_ast.Stmt, source *logger.Source, log *logger.Log) {
	for i := range body {
		listMember(body[i], source, log)
	}
}

func listMember(s js_ast.Stmt, source *logger.Source, log *logger.Log) {
	if blk, ok := s.Data.(*js_ast.SBlock); ok {
		if !needsBlockScope(blk.Body) {
			log.AddRangeWarning(source, logger.LintDiagnostic,
				logger.Range{Loc: logger.Loc{Start: int32(s.Span.Start)}, Len: int32(s.Span.Len())},
				"no_lone_blocks: this block has no purpose")
		}
		CheckNoLoneBlocks(blk.Body, source, log)
		return
	}
	dispatchNested(s, source, log)
}

func needsBlockScope(body []js_ast.Stmt) bool {
	for _, s := range body {
		switch d := s.Data.(type) {
		case *js_ast.SClass, *js_ast.SFunction:
			return true
		case *js_ast.SVar:
			if d.Kind != js_ast.VarVar {
				return true
			}
		}
	}
	return false
}

// bodySlot visits a statement occupying a required body position
// (the Yes/No of an if, the Body of a loop, ...): if it's itself a
// block, its own span is never flagged, but its children are still
// list members of that block.
func bodySlot(s js_ast.Stmt, source *logger.Source, log *logger.Log) {
	if s.IsAbsent() {
		return
	}
	if blk, ok := s.Data.(*js_ast.SBlock); ok {
		CheckNoLoneBlocks(blk.Body, source, log)
		return
	}
	dispatchNested(s, source, log)
}

func dispatchNested(s js_ast.Stmt, source *logger.Source, log *logger.Log) {
	switch d := s.Data.(type) {
	case *js_ast.SIf:
		bodySlot(d.Yes, source, log)
		bodySlot(d.No, source, log)
	case *js_ast.SFor:
		bodySlot(d.Body, source, log)
	case *js_ast.SForIn:
		bodySlot(d.Body, source, log)
	case *js_ast.SForOf:
		bodySlot(d.Body, source, log)
	case *js_ast.SWhile:
		bodySlot(d.Body, source, log)
	case *js_ast.SDoWhile:
		bodySlot(d.Body, source, log)
	case *js_ast.SWith:
		bodySlot(d.Body, source, log)
	case *js_ast.SLabel:
		bodySlot(d.Stmt, source, log)
	case *js_ast.SFunction:
		CheckNoLoneBlocks(d.Fn.Body, source, log)
	case *js_ast.SClass:
		for _, m := range d.Class.Members {
			if m.Fn != nil {
				CheckNoLoneBlocks(m.Fn.Body, source, log)
			}
			if m.IsStaticBlock {
				CheckNoLoneBlocks(m.StaticBlock, source, log)
			}
		}
	case *js_ast.STry:
		CheckNoLoneBlocks(d.Body, source, log)
		if d.Catch != nil {
			CheckNoLoneBlocks(d.Catch.Body, source, log)
		}
		CheckNoLoneBlocks(d.Finally, source, log)
	case *js_ast.SSwitch:
		for _, c := range d.Cases {
			CheckNoLoneBlocks(c.Body, source, log)
		}
	}
}

// CheckPreferSpread reports `fn.apply(null, args)` and
// `fn.apply(undefined, args)` calls, which `fn(...args)` expresses
// without the indirection of the Function.prototype.apply thisArg.
// A non-nullish thisArg changes the callee's `this` binding, so it is
// never flagged.
func CheckPreferSpread(program *js_ast.Program, source *logger.Source, log *logger.Log) {
	js_ast.Walk(program, &js_ast.Visitor{Expr: func(e js_ast.Expr) {
		call, ok := e.Data.(*js_ast.ECall)
		if !ok || len(call.Args) != 2 {
			return
		}
		dot, ok := call.Target.Data.(*js_ast.EDot)
		if !ok || dot.Name.String() != "apply" {
			return
		}
		switch this := call.Args[0].Data.(type) {
		case *js_ast.ENull, *js_ast.EUndefined:
		case *js_ast.EIdentifier:
			if this.Name.String() != "undefined" {
				return
			}
		default:
			return
		}
		log.AddRangeWarning(source, logger.LintDiagnostic,
			logger.Range{Loc: logger.Loc{Start: int32(e.Span.Start)}, Len: int32(e.Span.Len())},
			"prefer_spread: use the spread operator instead of .apply()")
	}})
}

// CheckNoEmptyStaticBlock reports a `static {}` class element with no
// statements and no comment between its braces; a comment there is
// evidence the emptiness is intentional documentation, not leftover
// scaffolding.
func CheckNoEmptyStaticBlock(program *js_ast.Program, source *logger.Source, log *logger.Log) {
	js_ast.Walk(program, &js_ast.Visitor{ClassMember: func(m js_ast.ClassMember) {
		if !m.IsStaticBlock || len(m.StaticBlock) != 0 {
			return
		}
		for _, c := range program.Comments {
			if m.Span.Contains(c.Span) {
				return
			}
		}
		log.AddRangeWarning(source, logger.LintDiagnostic,
			logger.Range{Loc: logger.Loc{Start: int32(m.Span.Start)}, Len: int32(m.Span.Len())},
			"no_empty_static_block: empty static initialization block")
	}})
}
