// Package traverse implements a mutable, re-entrant traversal
// framework: a single walk shape reused by every minifier pass and
// transformer plug-in. Unlike js_ast.Visitor — which is
// read-only and exists for analysis passes like the semantic builder
// and the module lexer — every callback here receives a pointer, so a
// pass can replace, remove, or splice nodes in place as it visits
// them.
package traverse

import (
	"fmt"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/semantic"
	"github.com/astforge/astforge/internal/span"
)

// Hooks is the capability set a pass implements. Every field is
// optional; a nil hook costs one nil check per node, matching the
// no-virtual-call discipline js_ast.Visitor already follows. Passes
// needing finer granularity than Stmt/Expr (e.g. only caring about
// SIf) type-switch on the pointed-to Data inside their hook, the same
// way a consumer of js_ast.Visitor does.
type Hooks struct {
	EnterProgram    func(*js_ast.Program, *Ctx)
	ExitProgram     func(*js_ast.Program, *Ctx)
	EnterStatements func(*[]js_ast.Stmt, *Ctx)
	ExitStatements  func(*[]js_ast.Stmt, *Ctx)
	EnterStmt       func(*js_ast.Stmt, *Ctx)
	ExitStmt        func(*js_ast.Stmt, *Ctx)
	EnterExpr       func(*js_ast.Expr, *Ctx)
	ExitExpr        func(*js_ast.Expr, *Ctx)
}

// ancestor is one entry of the ancestor stack: exactly one of Stmt or
// Expr is non-nil, matching whichever kind of node occupies that
// level of the tree.
type ancestor struct {
	Stmt *js_ast.Stmt
	Expr *js_ast.Expr
}

// Ctx is threaded through every hook invocation: the ancestor stack,
// the scope the walk currently sits inside, and the mutation helpers a
// pass uses to introduce new symbols, scopes, or uniquely named
// bindings. Traversal is strictly single-threaded; a Ctx is never
// shared across goroutines.
type Ctx struct {
	Arena *arena.Arena
	Model *semantic.Model

	ancestors []ancestor
	scope     semantic.ScopeId
	uid       uint32
}

// NewCtx builds a traversal context bound to arena a and the semantic
// model m (may be nil for passes that never touch scope/symbol data,
// e.g. a pure syntax-removal compressor stage). scope is the starting
// current scope, typically the model's top/program scope.
func NewCtx(a *arena.Arena, m *semantic.Model, scope semantic.ScopeId) *Ctx {
	return &Ctx{Arena: a, Model: m, scope: scope}
}

// CurrentScope returns the scope id the walk is lexically inside.
func (c *Ctx) CurrentScope() semantic.ScopeId { return c.scope }

// EnterScope pushes a new current scope, returning the previous one so
// the caller can restore it on the matching exit.
func (c *Ctx) EnterScope(flags semantic.ScopeFlags) (semantic.ScopeId, semantic.ScopeId) {
	id := c.Model.CreateScope(c.scope, flags)
	prev := c.scope
	c.scope = id
	return id, prev
}

// ExitScope restores the scope captured by EnterScope's second return.
func (c *Ctx) ExitScope(prev semantic.ScopeId) { c.scope = prev }

// AddSymbol declares a new binding in the current scope, the mutation
// helper a pass uses when it synthesizes a variable (e.g. a temporary
// introduced by a lowering transform).
func (c *Ctx) AddSymbol(name span.Atom, decl span.AstNodeId, flags semantic.SymbolFlags) semantic.SymbolId {
	return c.Model.AddSymbol(name, decl, c.scope, flags)
}

// GenerateUniqueName synthesizes a fresh, arena-owned identifier that
// cannot collide with any name already minted by this Ctx, built from
// hint plus a monotonically increasing counter.
func (c *Ctx) GenerateUniqueName(hint string) span.Atom {
	c.uid++
	return span.AtomFromString(c.Arena, fmt.Sprintf("_%s_%d", hint, c.uid))
}

// Ancestors returns the current ancestor stack, innermost enclosing
// node last. Passes needing deep-ancestor context (e.g. "am I inside a
// loop") walk it from the tail.
func (c *Ctx) Ancestors() []ancestor { return c.ancestors }

func (c *Ctx) pushStmt(s *js_ast.Stmt) { c.ancestors = append(c.ancestors, ancestor{Stmt: s}) }
func (c *Ctx) pushExpr(e *js_ast.Expr) { c.ancestors = append(c.ancestors, ancestor{Expr: e}) }
func (c *Ctx) pop()                    { c.ancestors = c.ancestors[:len(c.ancestors)-1] }

// traverser holds the hooks for one walk; it's a thin wrapper so the
// recursive descent methods don't have to thread hooks and ctx as two
// separate parameters through every call.
type traverser struct {
	hooks *Hooks
	ctx   *Ctx
}

// Traverse performs one mutable top-down-then-bottom-up walk of
// program, invoking hooks' enter callback on the way down and exit
// callback on the way back up for every node encountered. Multiple
// passes may call Traverse over the same tree in sequence; each call
// is independent re-entrancy, not concurrent re-entrancy — see the
// package doc.
func Traverse(program *js_ast.Program, hooks *Hooks, ctx *Ctx) {
	t := &traverser{hooks: hooks, ctx: ctx}
	if hooks.EnterProgram != nil {
		hooks.EnterProgram(program, ctx)
	}
	t.stmts(&program.Body)
	if hooks.ExitProgram != nil {
		hooks.ExitProgram(program, ctx)
	}
}

// stmts walks a statement list in place. The enter hook receives a
// pointer to the slice itself, not a copy, so in-place splices
// (insert/remove/replace) are visible to every statement visited
// after the mutation — including ones the mutation itself inserted —
// while statements already visited before the mutation are never
// revisited: mutations are observed by subsequent children but never
// re-entered on the same mutation.
func (t *traverser) stmts(list *[]js_ast.Stmt) {
	if t.hooks.EnterStatements != nil {
		t.hooks.EnterStatements(list, t.ctx)
	}
	for i := 0; i < len(*list); i++ {
		t.stmt(&(*list)[i])
	}
	if t.hooks.ExitStatements != nil {
		t.hooks.ExitStatements(list, t.ctx)
	}
}

func (t *traverser) stmt(s *js_ast.Stmt) {
	if s.IsAbsent() {
		return
	}
	t.ctx.pushStmt(s)
	if t.hooks.EnterStmt != nil {
		t.hooks.EnterStmt(s, t.ctx)
	}
	switch d := s.Data.(type) {
	case *js_ast.SBlock:
		t.stmts(&d.Body)
	case *js_ast.SExpr:
		t.expr(&d.Value)
	case *js_ast.SVar:
		for i := range d.Declarators {
			t.expr(&d.Declarators[i].Value)
		}
	case *js_ast.SFunction:
		t.stmts(&d.Fn.Body)
	case *js_ast.SClass:
		t.class(&d.Class)
	case *js_ast.SLabel:
		t.stmt(&d.Stmt)
	case *js_ast.SIf:
		t.expr(&d.Test)
		t.stmt(&d.Yes)
		t.stmt(&d.No)
	case *js_ast.SFor:
		t.stmt(&d.Init)
		t.expr(&d.Test)
		t.expr(&d.Update)
		t.stmt(&d.Body)
	case *js_ast.SForIn:
		t.expr(&d.Target)
		t.expr(&d.Value)
		t.stmt(&d.Body)
	case *js_ast.SForOf:
		t.expr(&d.Target)
		t.expr(&d.Value)
		t.stmt(&d.Body)
	case *js_ast.SWhile:
		t.expr(&d.Test)
		t.stmt(&d.Body)
	case *js_ast.SDoWhile:
		t.stmt(&d.Body)
		t.expr(&d.Test)
	case *js_ast.SReturn:
		t.expr(&d.Value)
	case *js_ast.SThrow:
		t.expr(&d.Value)
	case *js_ast.STry:
		t.stmts(&d.Body)
		if d.Catch != nil {
			t.stmts(&d.Catch.Body)
		}
		t.stmts(&d.Finally)
	case *js_ast.SSwitch:
		t.expr(&d.Value)
		for i := range d.Cases {
			t.expr(&d.Cases[i].Test)
			t.stmts(&d.Cases[i].Body)
		}
	case *js_ast.SWith:
		t.expr(&d.Value)
		t.stmt(&d.Body)
	case *js_ast.SExportDefault:
		t.expr(&d.Value)
		if d.Fn != nil {
			t.stmts(&d.Fn.Fn.Body)
		}
		if d.Class != nil {
			t.class(&d.Class.Class)
		}
	case *js_ast.SExportEquals:
		t.expr(&d.Value)
	case *js_ast.STSModule:
		t.stmts(&d.Body)
	}
	if t.hooks.ExitStmt != nil {
		t.hooks.ExitStmt(s, t.ctx)
	}
	t.ctx.pop()
}

func (t *traverser) class(c *js_ast.Class) {
	t.expr(&c.Extends)
	for i := range c.Members {
		m := &c.Members[i]
		t.expr(&m.Key)
		t.expr(&m.Value)
		if m.Fn != nil {
			t.stmts(&m.Fn.Body)
		}
		if m.IsStaticBlock {
			t.stmts(&m.StaticBlock)
		}
	}
}

func (t *traverser) expr(e *js_ast.Expr) {
	if e.IsAbsent() {
		return
	}
	t.ctx.pushExpr(e)
	if t.hooks.EnterExpr != nil {
		t.hooks.EnterExpr(e, t.ctx)
	}
	switch d := e.Data.(type) {
	case *js_ast.EArray:
		for i := range d.Items {
			t.expr(&d.Items[i])
		}
	case *js_ast.EUnary:
		t.expr(&d.Value)
	case *js_ast.EUpdate:
		t.expr(&d.Value)
	case *js_ast.EBinary:
		t.expr(&d.Left)
		t.expr(&d.Right)
	case *js_ast.ELogical:
		t.expr(&d.Left)
		t.expr(&d.Right)
	case *js_ast.EAssign:
		t.expr(&d.Target)
		t.expr(&d.Value)
	case *js_ast.EConditional:
		t.expr(&d.Test)
		t.expr(&d.Yes)
		t.expr(&d.No)
	case *js_ast.ENew:
		t.expr(&d.Target)
		for i := range d.Args {
			t.expr(&d.Args[i])
		}
	case *js_ast.ECall:
		t.expr(&d.Target)
		for i := range d.Args {
			t.expr(&d.Args[i])
		}
	case *js_ast.EDot:
		t.expr(&d.Target)
	case *js_ast.EIndex:
		t.expr(&d.Target)
		t.expr(&d.Index)
	case *js_ast.EArrow:
		t.stmts(&d.Fn.Body)
	case *js_ast.EFunction:
		t.stmts(&d.Fn.Body)
	case *js_ast.EClass:
		t.class(&d.Class)
	case *js_ast.EObject:
		for i := range d.Properties {
			t.expr(&d.Properties[i].Key)
			t.expr(&d.Properties[i].Value)
			t.expr(&d.Properties[i].Initializer)
		}
	case *js_ast.ESpread:
		t.expr(&d.Value)
	case *js_ast.ETemplate:
		t.expr(&d.Tag)
		for i := range d.Parts {
			t.expr(&d.Parts[i].Value)
		}
	case *js_ast.EYield:
		t.expr(&d.Value)
	case *js_ast.EAwait:
		t.expr(&d.Value)
	case *js_ast.ESequence:
		for i := range d.Exprs {
			t.expr(&d.Exprs[i])
		}
	case *js_ast.EImportCall:
		t.expr(&d.Arg)
		t.expr(&d.Options)
	case *js_ast.EJSXElement:
		for i := range d.Opening.Attributes {
			a := &d.Opening.Attributes[i]
			if a.Attr != nil {
				t.expr(&a.Attr.Value)
			}
			if a.Spread != nil {
				t.expr(&a.Spread.Value)
			}
		}
		for i := range d.Children {
			t.expr(&d.Children[i])
		}
	case *js_ast.EJSXFragment:
		for i := range d.Children {
			t.expr(&d.Children[i])
		}
	case *js_ast.EJSXExpressionContainer:
		t.expr(&d.Value)
	case *js_ast.JSXSpreadChild:
		t.expr(&d.Value)
	case *js_ast.ETSAs:
		t.expr(&d.Value)
	case *js_ast.ETSSatisfies:
		t.expr(&d.Value)
	case *js_ast.ETSNonNull:
		t.expr(&d.Value)
	case *js_ast.ETSTypeAssertion:
		t.expr(&d.Value)
	}
	if t.hooks.ExitExpr != nil {
		t.hooks.ExitExpr(e, t.ctx)
	}
	t.ctx.pop()
}
