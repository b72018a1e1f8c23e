// Package transform implements a plugin pipeline keyed by a target
// ECMAScript year, exposing the same hook set the compressor stages in
// package pass expose. Unlike the compressor, a transform's job is
// semantics-preserving syntax *lowering* for an older runtime, not
// size reduction.
package transform

import (
	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/pass"
	"github.com/astforge/astforge/internal/semantic"
	"github.com/astforge/astforge/internal/span"
	"github.com/astforge/astforge/internal/traverse"
)

// Target is the ECMAScript edition a transform pipeline lowers syntax
// to run on.
type Target uint16

const (
	ES2015 Target = 2015
	ES2017 Target = 2017
	ES2019 Target = 2019
	ES2020 Target = 2020
	ESNext Target = 0 // no lowering: every feature passes through untouched
)

// Plugin is one transform keyed to the earliest target that no longer
// needs it; RunPipeline skips a plugin whose MinTarget is at or below
// the requested target.
type Plugin struct {
	Name      string
	MinTarget Target // the first target year that supports the feature natively
	Hooks     func() *traverse.Hooks
}

// RunPipeline runs every registered plugin whose lowering is still
// needed for target, in registration order.
func RunPipeline(program *js_ast.Program, a *arena.Arena, m *semantic.Model, target Target, plugins []Plugin) {
	for _, p := range plugins {
		if target == ESNext || target >= p.MinTarget {
			continue
		}
		pass.RunOnce(program, a, m, p.Hooks())
	}
}

// DefaultPlugins is the built-in transform catalog; callers append
// their own plugins to extend it. The framework, not one fixed list
// of lowerings, is the point: new plugins slot in without touching
// RunPipeline.
func DefaultPlugins() []Plugin {
	return []Plugin{
		{Name: "optional-chain-lowering", MinTarget: ES2020, Hooks: OptionalChainLowering},
	}
}

// OptionalChainLowering rewrites an optional-chain member/call
// expression's outermost link into an equivalent ternary guard, e.g.
// "a?.b" becomes "a == null ? undefined : a.b". It only rewrites the
// chain's start link; a longer chain ("a?.b.c") is left for repeated
// application as the traversal revisits the rewritten subtree's
// surviving EDot/EIndex/ECall, matching how a real lowering pass
// bottoms out one link at a time rather than building the whole
// ternary in one shot.
func OptionalChainLowering() *traverse.Hooks {
	return &traverse.Hooks{
		EnterExpr: func(e *js_ast.Expr, ctx *traverse.Ctx) {
			switch d := e.Data.(type) {
			case *js_ast.EDot:
				if d.OptionalChain == js_ast.OptionalChainStart {
					*e = lowerOptionalLink(e.Span, d.Target, func(target js_ast.Expr) js_ast.E {
						return &js_ast.EDot{Target: target, Name: d.Name, NameSpan: d.NameSpan}
					})
				}
			case *js_ast.EIndex:
				if d.OptionalChain == js_ast.OptionalChainStart {
					*e = lowerOptionalLink(e.Span, d.Target, func(target js_ast.Expr) js_ast.E {
						return &js_ast.EIndex{Target: target, Index: d.Index}
					})
				}
			case *js_ast.ECall:
				if d.OptionalChain == js_ast.OptionalChainStart {
					*e = lowerOptionalLink(e.Span, d.Target, func(target js_ast.Expr) js_ast.E {
						return &js_ast.ECall{Target: target, Args: d.Args, TypeArgs: d.TypeArgs}
					})
				}
			}
		},
	}
}

// lowerOptionalLink builds "target == null ? undefined : rebuild(target)".
func lowerOptionalLink(sp span.Span, target js_ast.Expr, rebuild func(js_ast.Expr) js_ast.E) js_ast.Expr {
	guard := js_ast.Expr{Span: target.Span, Data: &js_ast.EBinary{
		Op:    js_ast.BinOpLooseEq,
		Left:  target,
		Right: js_ast.Expr{Span: target.Span, Data: &js_ast.ENull{}},
	}}
	consequent := js_ast.Expr{Span: target.Span, Data: &js_ast.EUndefined{}}
	alternate := js_ast.Expr{Span: sp, Data: rebuild(target)}
	return js_ast.Expr{Span: sp, Data: &js_ast.EConditional{Test: guard, Yes: consequent, No: alternate}}
}
