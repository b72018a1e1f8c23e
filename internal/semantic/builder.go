package semantic

import (
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/logger"
	"github.com/astforge/astforge/internal/span"
)

// Build runs the scope/symbol pass: a single visit that produces a
// scope tree rooted at the program scope, a symbol per binding, and a
// resolved-or-global verdict per identifier reference. log receives
// SemanticError diagnostics for tie-breaks (duplicate let/const,
// undefined labels); it never aborts the walk, matching the rest of
// this package's error-tolerant diagnostics.
func Build(program *js_ast.Program, source *logger.Source, log *logger.Log) *Model {
	b := &builder{
		model:  &Model{Counts: Count(program)},
		log:    log,
		source: source,
	}
	b.model.Scopes = make([]Scope, 0, b.model.Counts.Scopes)
	b.model.Symbols = make([]Symbol, 0, b.model.Counts.Symbols)
	b.model.References = make([]Reference, 0, b.model.Counts.References)

	top := b.model.newScope(InvalidScopeId, ScopeTop|ScopeFunction)
	if program.HasUseStrictDirective {
		b.model.Scopes[top].Flags |= ScopeStrict
	}
	b.scope = top
	b.hoistFunctionsAndVars(program.Body, top)
	b.stmts(program.Body)
	b.model.Graphs = BuildModuleGraph(program)
	return b.model
}

type builder struct {
	model  *Model
	log    *logger.Log
	source *logger.Source
	ids    nodeIds
	scope  ScopeId
	labels []span.Atom
}

func (b *builder) pushScope(flags ScopeFlags) ScopeId {
	id := b.model.newScope(b.scope, flags)
	b.scope = id
	return id
}

func (b *builder) popScope(prev ScopeId) { b.scope = prev }

// declare binds name in scope with flags, applying the tie-break: when
// both the new and the existing binding carry SymbolVar (a var, or a
// function declaration hoisted as a var) they merge into the existing,
// first symbol. Any other duplicate (let, const, class, import, or a
// block-level function declared with SymbolFunction only) is a
// SemanticError, and the existing symbol is kept.
func (b *builder) declare(scope ScopeId, name span.Atom, declNode span.AstNodeId, flags SymbolFlags, at span.Span) SymbolId {
	s := b.model.Scope(scope)
	if existing, ok := s.Bindings[name]; ok {
		existingSym := b.model.Symbol(existing)
		bothVar := flags.Has(SymbolVar) && existingSym.Flags.Has(SymbolVar)
		if bothVar {
			return existing
		}
		b.log.AddRangeError(b.source, logger.SemanticError, logger.Range{Loc: logger.Loc{Start: int32(at.Start)}, Len: int32(at.End - at.Start)},
			"DuplicateBinding: \""+name.String()+"\" is already declared in this scope")
		return existing
	}
	return b.model.newSymbol(name, declNode, scope, flags)
}

// hoistFunctionsAndVars walks list (the body of the program or of a
// function), recursing into nested blocks and statement bodies, and
// collects every var-flavored binding and every function declaration
// into scope before the ordinary statement visit runs, so a reference
// that textually precedes its declaration still resolves. A function
// declared directly in a plain block is not hoisted here; the block's
// own statement visit declares it in the block scope.
func (b *builder) hoistFunctionsAndVars(list []js_ast.Stmt, scope ScopeId) {
	for _, s := range list {
		b.hoistStmt(s, scope)
	}
}

func (b *builder) hoistStmt(s js_ast.Stmt, scope ScopeId) {
	if s.IsAbsent() {
		return
	}
	switch d := s.Data.(type) {
	case *js_ast.SVar:
		if d.Kind == js_ast.VarVar {
			for _, decl := range d.Declarators {
				b.hoistBinding(decl.Binding, scope)
			}
		}
	case *js_ast.SFunction:
		if d.Fn.Name != nil {
			id := b.ids.alloc()
			d.Fn.Name.Id = id
			b.declare(scope, b.atom(d.Fn.Name.Loc), id, SymbolVar|SymbolFunction, d.Fn.Name.Loc)
		}
	case *js_ast.SBlock:
		// The block's own function declarations stay in the block scope,
		// where hoistFunctionsAndVarsSkipFns declares them.
		for _, inner := range d.Body {
			if _, isFn := inner.Data.(*js_ast.SFunction); !isFn {
				b.hoistStmt(inner, scope)
			}
		}
	case *js_ast.SIf:
		b.hoistStmt(d.Yes, scope)
		b.hoistStmt(d.No, scope)
	case *js_ast.SFor:
		b.hoistStmt(d.Init, scope)
		b.hoistStmt(d.Body, scope)
	case *js_ast.SForIn:
		if d.BindingKind == js_ast.ForBindingVar && d.Kind == js_ast.VarVar {
			b.hoistBinding(d.Binding, scope)
		}
		b.hoistStmt(d.Body, scope)
	case *js_ast.SForOf:
		if d.BindingKind == js_ast.ForBindingVar && d.Kind == js_ast.VarVar {
			b.hoistBinding(d.Binding, scope)
		}
		b.hoistStmt(d.Body, scope)
	case *js_ast.SWhile:
		b.hoistStmt(d.Body, scope)
	case *js_ast.SDoWhile:
		b.hoistStmt(d.Body, scope)
	case *js_ast.SLabel:
		b.hoistStmt(d.Stmt, scope)
	case *js_ast.STry:
		b.hoistFunctionsAndVars(d.Body, scope)
		if d.Catch != nil {
			b.hoistFunctionsAndVars(d.Catch.Body, scope)
		}
		b.hoistFunctionsAndVars(d.Finally, scope)
	case *js_ast.SSwitch:
		for _, c := range d.Cases {
			b.hoistFunctionsAndVars(c.Body, scope)
		}
	case *js_ast.SWith:
		b.hoistStmt(d.Body, scope)
	case *js_ast.SExportDefault:
		if d.Fn != nil && d.Fn.Fn.Name != nil {
			id := b.ids.alloc()
			d.Fn.Fn.Name.Id = id
			b.declare(scope, b.atom(d.Fn.Fn.Name.Loc), id, SymbolVar|SymbolFunction, d.Fn.Fn.Name.Loc)
		}
	}
}

func (b *builder) hoistBinding(bind js_ast.Binding, scope ScopeId) {
	if bind.IsAbsent() {
		return
	}
	switch d := bind.Data.(type) {
	case *js_ast.BIdentifier:
		id := b.ids.alloc()
		d.Id = id
		b.declare(scope, d.Name, id, SymbolVar, bind.Span)
	case *js_ast.BArray:
		for _, item := range d.Items {
			b.hoistBinding(item.Binding, scope)
		}
	case *js_ast.BObject:
		for _, prop := range d.Properties {
			b.hoistBinding(prop.Value, scope)
		}
	}
}

// atom is a stand-in until the parser starts passing atoms alongside
// LocRef name slots: every hoisted function/class name is re-read from
// source via its span, which is exactly what the parser itself does
// for identifiers.
func (b *builder) atom(sp span.Span) span.Atom { return span.AtomFromSource(b.source.Contents, sp) }

func (b *builder) stmts(list []js_ast.Stmt) {
	for _, s := range list {
		b.stmt(s)
	}
}

func (b *builder) stmt(s js_ast.Stmt) {
	if s.IsAbsent() {
		return
	}
	switch d := s.Data.(type) {
	case *js_ast.SBlock:
		prev := b.scope
		b.pushScope(ScopeBlock)
		b.hoistFunctionsAndVarsSkipFns(d.Body)
		b.stmts(d.Body)
		b.popScope(prev)
	case *js_ast.SExpr:
		b.expr(d.Value)
	case *js_ast.SVar:
		flags := varFlags(d.Kind)
		for i := range d.Declarators {
			decl := &d.Declarators[i]
			b.expr(decl.Value)
			if d.Kind == js_ast.VarVar {
				b.bindingRefs(decl.Binding) // already declared by hoisting; just assign remaining ids
			} else {
				b.declareBinding(decl.Binding, flags)
			}
		}
	case *js_ast.SFunction:
		b.fn(&d.Fn, ScopeFunction)
	case *js_ast.SClass:
		b.classDecl(&d.Class)
	case *js_ast.SLabel:
		b.labels = append(b.labels, d.Name)
		b.stmt(d.Stmt)
		b.labels = b.labels[:len(b.labels)-1]
	case *js_ast.SIf:
		b.expr(d.Test)
		b.stmt(d.Yes)
		b.stmt(d.No)
	case *js_ast.SFor:
		prev := b.scope
		b.pushScope(ScopeBlock)
		b.stmt(d.Init)
		b.expr(d.Test)
		b.expr(d.Update)
		b.stmt(d.Body)
		b.popScope(prev)
	case *js_ast.SForIn:
		b.forInOf(d.BindingKind, d.Kind, d.Binding, d.Target, d.Value, d.Body)
	case *js_ast.SForOf:
		b.forInOf(d.BindingKind, d.Kind, d.Binding, d.Target, d.Value, d.Body)
	case *js_ast.SWhile:
		b.expr(d.Test)
		b.stmt(d.Body)
	case *js_ast.SDoWhile:
		b.stmt(d.Body)
		b.expr(d.Test)
	case *js_ast.SReturn:
		b.expr(d.Value)
	case *js_ast.SThrow:
		b.expr(d.Value)
	case *js_ast.STry:
		prev := b.scope
		b.pushScope(ScopeBlock)
		b.stmts(d.Body)
		b.popScope(prev)
		if d.Catch != nil {
			prev := b.scope
			b.pushScope(ScopeBlock)
			b.declareBinding(d.Catch.Binding, SymbolLet)
			b.stmts(d.Catch.Body)
			b.popScope(prev)
		}
		if d.Finally != nil {
			prev := b.scope
			b.pushScope(ScopeBlock)
			b.stmts(d.Finally)
			b.popScope(prev)
		}
	case *js_ast.SSwitch:
		b.expr(d.Value)
		prev := b.scope
		b.pushScope(ScopeBlock)
		for _, c := range d.Cases {
			b.expr(c.Test)
			b.stmts(c.Body)
		}
		b.popScope(prev)
	case *js_ast.SWith:
		b.expr(d.Value)
		b.stmt(d.Body)
	case *js_ast.SBreak:
		b.checkLabel(d.Label, s.Span)
	case *js_ast.SContinue:
		b.checkLabel(d.Label, s.Span)
	case *js_ast.SImport:
		b.importClause(&d.Clause, d.IsTypeOnly)
	case *js_ast.SExportDefault:
		b.expr(d.Value)
		if d.Fn != nil {
			b.fn(&d.Fn.Fn, ScopeFunction)
		}
		if d.Class != nil {
			b.classDecl(&d.Class.Class)
		}
	case *js_ast.SExportNamed, *js_ast.SExportAll:
		// Specifiers reference already-declared local bindings;
		// resolved by name lookup in the ESM module lexer instead,
		// since export specifiers are not themselves expressions.
	case *js_ast.SExportEquals:
		b.expr(d.Value)
	case *js_ast.STSEnum:
		id := b.ids.alloc()
		d.Name.Id = id
		b.declare(b.scope, b.atom(d.Name.Loc), id, SymbolVar, d.Name.Loc)
		for i := range d.Members {
			b.expr(d.Members[i].Value)
		}
	case *js_ast.STSModule:
		id := b.ids.alloc()
		d.Name[0] = d.Name[0] // the dotted name carries no LocRef, so no symbol is declared for it
		prev := b.scope
		b.pushScope(ScopeBlock)
		b.hoistFunctionsAndVars(d.Body, b.scope)
		b.stmts(d.Body)
		b.popScope(prev)
		_ = id
	case *js_ast.STSInterface:
		id := b.ids.alloc()
		d.Name.Id = id
		b.model.newSymbol(b.atom(d.Name.Loc), id, b.scope, SymbolTypeOnly)
	case *js_ast.STSTypeAlias:
		id := b.ids.alloc()
		d.Name.Id = id
		b.declare(b.scope, b.atom(d.Name.Loc), id, SymbolTypeOnly, d.Name.Loc)
	}
}

// hoistFunctionsAndVarsSkipFns declares a nested block's own function
// declarations, as SymbolFunction, in the block's scope. It does not
// touch vars, which the enclosing hoist pass has already placed.
func (b *builder) hoistFunctionsAndVarsSkipFns(list []js_ast.Stmt) {
	for _, s := range list {
		if fn, ok := s.Data.(*js_ast.SFunction); ok {
			if fn.Fn.Name != nil {
				id := b.ids.alloc()
				fn.Fn.Name.Id = id
				b.declare(b.scope, b.atom(fn.Fn.Name.Loc), id, SymbolFunction, fn.Fn.Name.Loc)
			}
		}
	}
}

func (b *builder) checkLabel(label span.Atom, at span.Span) {
	if label.String() == "" {
		return
	}
	for _, l := range b.labels {
		if l.Equal(label) {
			return
		}
	}
	b.log.AddRangeError(b.source, logger.SemanticError, logger.Range{Loc: logger.Loc{Start: int32(at.Start)}, Len: int32(at.End - at.Start)},
		"undefined label \""+label.String()+"\"")
}

func (b *builder) forInOf(kind js_ast.ForBindingKind, varKind js_ast.VarKind, bind js_ast.Binding, target, value js_ast.Expr, body js_ast.Stmt) {
	prev := b.scope
	b.pushScope(ScopeBlock)
	if kind == js_ast.ForBindingVar {
		if varKind == js_ast.VarVar {
			b.bindingRefs(bind)
		} else {
			b.declareBinding(bind, varFlags(varKind))
		}
	} else {
		b.expr(target)
	}
	b.expr(value)
	b.stmt(body)
	b.popScope(prev)
}

func varFlags(k js_ast.VarKind) SymbolFlags {
	switch k {
	case js_ast.VarLet:
		return SymbolLet
	case js_ast.VarConst:
		return SymbolConst
	default:
		return SymbolVar
	}
}

// declareBinding assigns a fresh node id to every identifier in bind
// and declares it in the current scope. Used for let/const/catch/
// destructured-parameter positions, i.e. anywhere hoisting does not
// already own the declaration.
func (b *builder) declareBinding(bind js_ast.Binding, flags SymbolFlags) {
	if bind.IsAbsent() {
		return
	}
	switch d := bind.Data.(type) {
	case *js_ast.BIdentifier:
		id := b.ids.alloc()
		d.Id = id
		b.declare(b.scope, d.Name, id, flags, bind.Span)
	case *js_ast.BArray:
		for _, item := range d.Items {
			b.declareBinding(item.Binding, flags)
			b.expr(item.DefaultValue)
		}
	case *js_ast.BObject:
		for _, prop := range d.Properties {
			b.expr(prop.Key)
			b.declareBinding(prop.Value, flags)
			b.expr(prop.DefaultValue)
		}
	}
}

// bindingRefs assigns node ids to an already-hoisted var binding's
// identifiers without re-declaring them, and walks any default-value
// expressions nested inside a destructuring pattern.
func (b *builder) bindingRefs(bind js_ast.Binding) {
	if bind.IsAbsent() {
		return
	}
	switch d := bind.Data.(type) {
	case *js_ast.BIdentifier:
		if d.Id == span.InvalidNodeId {
			d.Id = b.ids.alloc()
		}
	case *js_ast.BArray:
		for _, item := range d.Items {
			b.bindingRefs(item.Binding)
			b.expr(item.DefaultValue)
		}
	case *js_ast.BObject:
		for _, prop := range d.Properties {
			b.expr(prop.Key)
			b.bindingRefs(prop.Value)
			b.expr(prop.DefaultValue)
		}
	}
}

func (b *builder) importClause(clause *js_ast.ImportClause, typeOnly bool) {
	flags := SymbolImport
	if typeOnly {
		flags |= SymbolTypeOnly
	}
	if clause.Default != nil {
		id := b.ids.alloc()
		clause.Default.Id = id
		b.declare(b.scope, b.atom(clause.Default.Loc), id, flags, clause.Default.Loc)
	}
	if clause.Namespace != nil {
		id := b.ids.alloc()
		clause.Namespace.Id = id
		b.declare(b.scope, b.atom(clause.Namespace.Loc), id, flags, clause.Namespace.Loc)
	}
	for i := range clause.Named {
		spec := &clause.Named[i]
		id := b.ids.alloc()
		spec.Local.Id = id
		specFlags := flags
		if spec.IsTypeOnly {
			specFlags |= SymbolTypeOnly
		}
		b.declare(b.scope, b.atom(spec.Local.Loc), id, specFlags, spec.Local.Loc)
	}
}

// fn opens a new function scope, declares every parameter, and
// recurses. extra carries ScopeArrow for arrow functions so the scope
// tree preserves the "arrows don't bind their own this/arguments"
// distinction callers care about later.
func (b *builder) fn(f *js_ast.Fn, extra ScopeFlags) {
	prev := b.scope
	b.pushScope(ScopeFunction | extra)
	for i := range f.Args {
		arg := &f.Args[i]
		b.declareBinding(arg.Binding, SymbolLet)
		b.expr(arg.DefaultValue)
	}
	b.hoistFunctionsAndVars(f.Body, b.scope)
	b.stmts(f.Body)
	b.popScope(prev)
}

func (b *builder) classDecl(c *js_ast.Class) {
	if c.Name != nil {
		id := b.ids.alloc()
		c.Name.Id = id
		b.declare(b.scope, b.atom(c.Name.Loc), id, SymbolClass, c.Name.Loc)
	}
	b.class(c)
}

func (b *builder) class(c *js_ast.Class) {
	prev := b.scope
	b.pushScope(ScopeBlock) // class body scope; classDecl declares the class name in the enclosing scope
	b.expr(c.Extends)
	for i := range c.Members {
		m := &c.Members[i]
		b.expr(m.Key)
		if m.IsStaticBlock {
			blockPrev := b.scope
			b.pushScope(ScopeClassStaticBlock | ScopeBlock)
			b.stmts(m.StaticBlock)
			b.popScope(blockPrev)
			continue
		}
		if m.Fn != nil {
			b.fn(m.Fn, 0)
		} else {
			b.expr(m.Value)
		}
	}
	b.popScope(prev)
}

func (b *builder) expr(e js_ast.Expr) {
	if e.IsAbsent() {
		return
	}
	switch d := e.Data.(type) {
	case *js_ast.EIdentifier:
		b.reference(d)
	case *js_ast.EArray:
		for _, item := range d.Items {
			b.expr(item)
		}
	case *js_ast.EUnary:
		b.expr(d.Value)
	case *js_ast.EUpdate:
		b.expr(d.Value)
	case *js_ast.EBinary:
		b.expr(d.Left)
		b.expr(d.Right)
	case *js_ast.ELogical:
		b.expr(d.Left)
		b.expr(d.Right)
	case *js_ast.EAssign:
		b.expr(d.Target)
		b.expr(d.Value)
	case *js_ast.EConditional:
		b.expr(d.Test)
		b.expr(d.Yes)
		b.expr(d.No)
	case *js_ast.ENew:
		b.expr(d.Target)
		for _, a := range d.Args {
			b.expr(a)
		}
	case *js_ast.ECall:
		b.expr(d.Target)
		for _, a := range d.Args {
			b.expr(a)
		}
	case *js_ast.EDot:
		b.expr(d.Target)
	case *js_ast.EIndex:
		b.expr(d.Target)
		b.expr(d.Index)
	case *js_ast.EArrow:
		b.fn(&d.Fn, ScopeArrow)
	case *js_ast.EFunction:
		b.fn(&d.Fn, 0)
	case *js_ast.EClass:
		b.class(&d.Class)
	case *js_ast.EObject:
		for _, p := range d.Properties {
			b.expr(p.Key)
			b.expr(p.Value)
			b.expr(p.Initializer)
		}
	case *js_ast.ESpread:
		b.expr(d.Value)
	case *js_ast.ETemplate:
		b.expr(d.Tag)
		for _, part := range d.Parts {
			b.expr(part.Value)
		}
	case *js_ast.EYield:
		b.expr(d.Value)
	case *js_ast.EAwait:
		b.expr(d.Value)
	case *js_ast.ESequence:
		for _, sub := range d.Exprs {
			b.expr(sub)
		}
	case *js_ast.EImportCall:
		b.expr(d.Arg)
		b.expr(d.Options)
	case *js_ast.EJSXElement:
		for _, a := range d.Opening.Attributes {
			if a.Attr != nil {
				b.expr(a.Attr.Value)
			}
			if a.Spread != nil {
				b.expr(a.Spread.Value)
			}
		}
		for _, ch := range d.Children {
			b.expr(ch)
		}
	case *js_ast.EJSXFragment:
		for _, ch := range d.Children {
			b.expr(ch)
		}
	case *js_ast.EJSXExpressionContainer:
		b.expr(d.Value)
	case *js_ast.JSXSpreadChild:
		b.expr(d.Value)
	case *js_ast.ETSAs:
		b.expr(d.Value)
	case *js_ast.ETSSatisfies:
		b.expr(d.Value)
	case *js_ast.ETSNonNull:
		b.expr(d.Value)
	case *js_ast.ETSTypeAssertion:
		b.expr(d.Value)
	}
}

// reference resolves id by walking the scope chain outward from the
// current scope, honoring strict-mode and TDZ rules but not evaluating
// them -- TDZ itself is a runtime concern this static pass does not
// simulate. An identifier that escapes the top scope is recorded with
// InvalidSymbolId, marking it global.
func (b *builder) reference(d *js_ast.EIdentifier) {
	id := b.ids.alloc()
	d.Id = id
	sym := b.resolve(d.Name, b.scope)
	ref := Reference{Id: id, Name: d.Name, Scope: b.scope, Symbol: InvalidSymbolId}
	if sym != InvalidSymbolId {
		ref.Symbol = sym
		s := b.model.Symbol(sym)
		s.References = append(s.References, id)
	}
	b.model.References = append(b.model.References, ref)
}

func (b *builder) resolve(name span.Atom, from ScopeId) SymbolId {
	for scope := from; scope != InvalidScopeId; scope = b.model.Scope(scope).Parent {
		if sym, ok := b.model.Scope(scope).Bindings[name]; ok {
			return sym
		}
	}
	return InvalidSymbolId
}
