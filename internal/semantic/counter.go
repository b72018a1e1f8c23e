package semantic

import "github.com/astforge/astforge/internal/js_ast"

// Count performs a pre-pass: a single walk that increments four
// counters without allocating a single Scope or
// Symbol. It mirrors the scope/symbol pass's own notion of what opens
// a scope and what declares a binding, but it does none of the real
// pass's bookkeeping work itself, so its symbol count can exceed what
// the real pass creates: a repeated var binding (merged into one
// symbol by the real pass) and a TS enum member or module name (for
// which the real pass declares no symbol) are each still counted.
func Count(program *js_ast.Program) Counts {
	c := counter{}
	c.scopes++ // the program scope itself
	c.stmts(program.Body)
	return c.Counts
}

type counter struct{ Counts }

func (c *counter) stmts(list []js_ast.Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

func (c *counter) stmt(s js_ast.Stmt) {
	if s.IsAbsent() {
		return
	}
	c.nodes++
	switch d := s.Data.(type) {
	case *js_ast.SBlock:
		c.scopes++
		c.stmts(d.Body)
	case *js_ast.SExpr:
		c.expr(d.Value)
	case *js_ast.SVar:
		for _, decl := range d.Declarators {
			c.binding(decl.Binding)
			c.expr(decl.Value)
		}
	case *js_ast.SFunction:
		c.symbols++ // the function's own name
		c.fn(&d.Fn)
	case *js_ast.SClass:
		c.symbols++
		c.class(&d.Class)
	case *js_ast.SLabel:
		c.stmt(d.Stmt)
	case *js_ast.SIf:
		c.expr(d.Test)
		c.stmt(d.Yes)
		c.stmt(d.No)
	case *js_ast.SFor:
		c.scopes++ // header scope for a "for (let ...)" binding
		c.stmt(d.Init)
		c.expr(d.Test)
		c.expr(d.Update)
		c.stmt(d.Body)
	case *js_ast.SForIn:
		c.scopes++
		c.binding(d.Binding)
		c.expr(d.Target)
		c.expr(d.Value)
		c.stmt(d.Body)
	case *js_ast.SForOf:
		c.scopes++
		c.binding(d.Binding)
		c.expr(d.Target)
		c.expr(d.Value)
		c.stmt(d.Body)
	case *js_ast.SWhile:
		c.expr(d.Test)
		c.stmt(d.Body)
	case *js_ast.SDoWhile:
		c.stmt(d.Body)
		c.expr(d.Test)
	case *js_ast.SReturn:
		c.expr(d.Value)
	case *js_ast.SThrow:
		c.expr(d.Value)
	case *js_ast.STry:
		c.scopes++
		c.stmts(d.Body)
		if d.Catch != nil {
			c.scopes++
			c.binding(d.Catch.Binding)
			c.stmts(d.Catch.Body)
		}
		if d.Finally != nil {
			c.scopes++
			c.stmts(d.Finally)
		}
	case *js_ast.SSwitch:
		c.scopes++ // switch body shares one lexical scope across cases
		c.expr(d.Value)
		for _, cc := range d.Cases {
			c.expr(cc.Test)
			c.stmts(cc.Body)
		}
	case *js_ast.SWith:
		c.expr(d.Value)
		c.stmt(d.Body)
	case *js_ast.SImport:
		if d.Clause.Default != nil {
			c.symbols++
		}
		if d.Clause.Namespace != nil {
			c.symbols++
		}
		c.symbols += len(d.Clause.Named)
	case *js_ast.SExportDefault:
		c.expr(d.Value)
		if d.Fn != nil {
			c.symbols++
			c.fn(&d.Fn.Fn)
		}
		if d.Class != nil {
			c.symbols++
			c.class(&d.Class.Class)
		}
	case *js_ast.SExportEquals:
		c.expr(d.Value)
	case *js_ast.STSEnum:
		c.symbols++
		for _, m := range d.Members {
			c.symbols++
			c.expr(m.Value)
		}
	case *js_ast.STSModule:
		c.scopes++
		c.symbols++
		c.stmts(d.Body)
	case *js_ast.STSInterface, *js_ast.STSTypeAlias:
		c.symbols++
	}
}

func (c *counter) binding(b js_ast.Binding) {
	if b.IsAbsent() {
		return
	}
	c.nodes++
	switch d := b.Data.(type) {
	case *js_ast.BIdentifier:
		c.symbols++
	case *js_ast.BArray:
		for _, item := range d.Items {
			c.binding(item.Binding)
			c.expr(item.DefaultValue)
		}
	case *js_ast.BObject:
		for _, prop := range d.Properties {
			c.expr(prop.Key)
			c.binding(prop.Value)
			c.expr(prop.DefaultValue)
		}
	}
}

func (c *counter) fn(fn *js_ast.Fn) {
	c.scopes++
	for _, arg := range fn.Args {
		c.binding(arg.Binding)
		c.expr(arg.DefaultValue)
	}
	c.stmts(fn.Body)
}

func (c *counter) class(cls *js_ast.Class) {
	c.scopes++ // class body scope, for private names and "this"
	c.expr(cls.Extends)
	for _, m := range cls.Members {
		c.nodes++
		c.expr(m.Key)
		c.expr(m.Value)
		if m.Fn != nil {
			c.fn(m.Fn)
		}
		if m.IsStaticBlock {
			c.scopes++
			c.stmts(m.StaticBlock)
		}
	}
}

func (c *counter) expr(e js_ast.Expr) {
	if e.IsAbsent() {
		return
	}
	c.nodes++
	switch d := e.Data.(type) {
	case *js_ast.EIdentifier:
		c.references++
	case *js_ast.EArray:
		for _, item := range d.Items {
			c.expr(item)
		}
	case *js_ast.EUnary:
		c.expr(d.Value)
	case *js_ast.EUpdate:
		c.expr(d.Value)
	case *js_ast.EBinary:
		c.expr(d.Left)
		c.expr(d.Right)
	case *js_ast.ELogical:
		c.expr(d.Left)
		c.expr(d.Right)
	case *js_ast.EAssign:
		c.expr(d.Target)
		c.expr(d.Value)
	case *js_ast.EConditional:
		c.expr(d.Test)
		c.expr(d.Yes)
		c.expr(d.No)
	case *js_ast.ENew:
		c.expr(d.Target)
		for _, a := range d.Args {
			c.expr(a)
		}
	case *js_ast.ECall:
		c.expr(d.Target)
		for _, a := range d.Args {
			c.expr(a)
		}
	case *js_ast.EDot:
		c.expr(d.Target)
	case *js_ast.EIndex:
		c.expr(d.Target)
		c.expr(d.Index)
	case *js_ast.EArrow:
		c.fn(&d.Fn)
	case *js_ast.EFunction:
		c.fn(&d.Fn)
	case *js_ast.EClass:
		c.class(&d.Class)
	case *js_ast.EObject:
		for _, p := range d.Properties {
			c.expr(p.Key)
			c.expr(p.Value)
			c.expr(p.Initializer)
		}
	case *js_ast.ESpread:
		c.expr(d.Value)
	case *js_ast.ETemplate:
		c.expr(d.Tag)
		for _, part := range d.Parts {
			c.expr(part.Value)
		}
	case *js_ast.EYield:
		c.expr(d.Value)
	case *js_ast.EAwait:
		c.expr(d.Value)
	case *js_ast.ESequence:
		for _, sub := range d.Exprs {
			c.expr(sub)
		}
	case *js_ast.EImportCall:
		c.expr(d.Arg)
		c.expr(d.Options)
	case *js_ast.EJSXElement:
		for _, a := range d.Opening.Attributes {
			if a.Attr != nil {
				c.expr(a.Attr.Value)
			}
			if a.Spread != nil {
				c.expr(a.Spread.Value)
			}
		}
		for _, ch := range d.Children {
			c.expr(ch)
		}
	case *js_ast.EJSXFragment:
		for _, ch := range d.Children {
			c.expr(ch)
		}
	case *js_ast.EJSXExpressionContainer:
		c.expr(d.Value)
	case *js_ast.JSXSpreadChild:
		c.expr(d.Value)
	case *js_ast.ETSAs:
		c.expr(d.Value)
	case *js_ast.ETSSatisfies:
		c.expr(d.Value)
	case *js_ast.ETSNonNull:
		c.expr(d.Value)
	case *js_ast.ETSTypeAssertion:
		c.expr(d.Value)
	}
}
