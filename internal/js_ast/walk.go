package js_ast

// Visitor is the immutable analysis visitor: a struct of
// optional observer callbacks invoked as Walk performs a full
// top-down descent of the tree. Unlike the mutable traversal
// framework in package traverse, this walk never mutates the tree.
// It descends into every statement, expression, binding and class
// member, but not into every type position: decorators, type
// parameters, function return types, class heritage type arguments
// and implements clauses, member type annotations, JSX attribute and
// closing-element names, and the children of type nodes that tstype
// has no case for are not visited. It exists for passes that only
// need to read, such as the lint rules in package rules, the ESM
// module lexer and the control-flow graph builder. Per-kind dispatch is
// a hand-written type switch rather than reflection so a no-op
// observer costs a nil check, not a virtual call.
type Visitor struct {
	Stmt        func(Stmt)
	Expr        func(Expr)
	Binding     func(Binding)
	TSType      func(TSType)
	ClassMember func(ClassMember)
	JSXName     func(JSXName)
}

func (v *Visitor) stmt(s Stmt) {
	if s.IsAbsent() {
		return
	}
	if v.Stmt != nil {
		v.Stmt(s)
	}
	switch d := s.Data.(type) {
	case *SBlock:
		v.stmts(d.Body)
	case *SExpr:
		v.expr(d.Value)
	case *SVar:
		v.declarators(d.Declarators)
	case *SFunction:
		v.fn(&d.Fn)
	case *SClass:
		v.class(&d.Class)
	case *SLabel:
		v.stmt(d.Stmt)
	case *SIf:
		v.expr(d.Test)
		v.stmt(d.Yes)
		v.stmt(d.No)
	case *SFor:
		v.stmt(d.Init)
		v.expr(d.Test)
		v.expr(d.Update)
		v.stmt(d.Body)
	case *SForIn:
		v.binding(d.Binding)
		v.expr(d.Target)
		v.expr(d.Value)
		v.stmt(d.Body)
	case *SForOf:
		v.binding(d.Binding)
		v.expr(d.Target)
		v.expr(d.Value)
		v.stmt(d.Body)
	case *SWhile:
		v.expr(d.Test)
		v.stmt(d.Body)
	case *SDoWhile:
		v.stmt(d.Body)
		v.expr(d.Test)
	case *SReturn:
		v.expr(d.Value)
	case *SThrow:
		v.expr(d.Value)
	case *STry:
		v.stmts(d.Body)
		if d.Catch != nil {
			v.binding(d.Catch.Binding)
			v.stmts(d.Catch.Body)
		}
		v.stmts(d.Finally)
	case *SSwitch:
		v.expr(d.Value)
		for _, c := range d.Cases {
			v.expr(c.Test)
			v.stmts(c.Body)
		}
	case *SWith:
		v.expr(d.Value)
		v.stmt(d.Body)
	case *SExportDefault:
		v.expr(d.Value)
		if d.Fn != nil {
			v.fn(&d.Fn.Fn)
		}
		if d.Class != nil {
			v.class(&d.Class.Class)
		}
	case *SExportEquals:
		v.expr(d.Value)
	case *STSInterface:
		v.tsObjectType(&d.Body)
	case *STSTypeAlias:
		v.tstype(d.Type)
	case *STSEnum:
		for _, m := range d.Members {
			v.expr(m.Name)
			v.expr(m.Value)
		}
	case *STSModule:
		v.stmts(d.Body)
	}
}

func (v *Visitor) stmts(list []Stmt) {
	for _, s := range list {
		v.stmt(s)
	}
}

func (v *Visitor) declarators(list []Declarator) {
	for _, decl := range list {
		v.binding(decl.Binding)
		if decl.TypeAnnotation != nil {
			v.tstype(decl.TypeAnnotation.Type)
		}
		v.expr(decl.Value)
	}
}

func (v *Visitor) fn(fn *Fn) {
	for _, arg := range fn.Args {
		v.binding(arg.Binding)
		v.expr(arg.DefaultValue)
		if arg.TypeAnnotation != nil {
			v.tstype(arg.TypeAnnotation.Type)
		}
	}
	v.stmts(fn.Body)
}

func (v *Visitor) class(c *Class) {
	v.expr(c.Extends)
	for _, m := range c.Members {
		if v.ClassMember != nil {
			v.ClassMember(m)
		}
		v.expr(m.Key)
		v.expr(m.Value)
		if m.Fn != nil {
			v.fn(m.Fn)
		}
		v.stmts(m.StaticBlock)
	}
}

func (v *Visitor) binding(b Binding) {
	if b.IsAbsent() {
		return
	}
	if v.Binding != nil {
		v.Binding(b)
	}
	switch d := b.Data.(type) {
	case *BArray:
		for _, item := range d.Items {
			v.binding(item.Binding)
			v.expr(item.DefaultValue)
		}
	case *BObject:
		for _, prop := range d.Properties {
			v.expr(prop.Key)
			v.binding(prop.Value)
			v.expr(prop.DefaultValue)
		}
	}
}

func (v *Visitor) tstype(t TSType) {
	if t.IsAbsent() {
		return
	}
	if v.TSType != nil {
		v.TSType(t)
	}
	switch d := t.Data.(type) {
	case *TSUnionType:
		for _, sub := range d.Types {
			v.tstype(sub)
		}
	case *TSIntersectionType:
		for _, sub := range d.Types {
			v.tstype(sub)
		}
	case *TSArrayType:
		v.tstype(d.ElementType)
	case *TSTupleType:
		for _, sub := range d.Types {
			v.tstype(sub)
		}
	case *TSFunctionType:
		for _, p := range d.Parameters {
			v.tstype(p.TypeAnnotation)
		}
		v.tstype(d.ReturnType)
	case *TSTypeOperator:
		v.tstype(d.Type)
	case *TSConditionalType:
		v.tstype(d.CheckType)
		v.tstype(d.ExtendsType)
		v.tstype(d.TrueType)
		v.tstype(d.FalseType)
	case *TSIndexedAccessType:
		v.tstype(d.ObjectType)
		v.tstype(d.IndexType)
	case *TSParenthesizedType:
		v.tstype(d.Type)
	case *TSObjectType:
		v.tsObjectType(d)
	}
}

func (v *Visitor) tsObjectType(o *TSObjectType) {
	for _, m := range o.Members {
		v.expr(m.Key)
		v.tstype(m.Type)
	}
}

func (v *Visitor) expr(e Expr) {
	if e.IsAbsent() {
		return
	}
	if v.Expr != nil {
		v.Expr(e)
	}
	switch d := e.Data.(type) {
	case *EArray:
		for _, item := range d.Items {
			v.expr(item)
		}
	case *EUnary:
		v.expr(d.Value)
	case *EUpdate:
		v.expr(d.Value)
	case *EBinary:
		v.expr(d.Left)
		v.expr(d.Right)
	case *ELogical:
		v.expr(d.Left)
		v.expr(d.Right)
	case *EAssign:
		v.expr(d.Target)
		v.expr(d.Value)
	case *EConditional:
		v.expr(d.Test)
		v.expr(d.Yes)
		v.expr(d.No)
	case *ENew:
		v.expr(d.Target)
		for _, a := range d.Args {
			v.expr(a)
		}
	case *ECall:
		v.expr(d.Target)
		for _, a := range d.Args {
			v.expr(a)
		}
	case *EDot:
		v.expr(d.Target)
	case *EIndex:
		v.expr(d.Target)
		v.expr(d.Index)
	case *EArrow:
		v.fn(&d.Fn)
	case *EFunction:
		v.fn(&d.Fn)
	case *EClass:
		v.class(&d.Class)
	case *EObject:
		for _, p := range d.Properties {
			v.expr(p.Key)
			v.expr(p.Value)
			v.expr(p.Initializer)
		}
	case *ESpread:
		v.expr(d.Value)
	case *ETemplate:
		v.expr(d.Tag)
		for _, part := range d.Parts {
			v.expr(part.Value)
		}
	case *EYield:
		v.expr(d.Value)
	case *EAwait:
		v.expr(d.Value)
	case *ESequence:
		for _, sub := range d.Exprs {
			v.expr(sub)
		}
	case *EImportCall:
		v.expr(d.Arg)
		v.expr(d.Options)
	case *EJSXElement:
		if v.JSXName != nil {
			v.JSXName(d.Opening.Name)
		}
		for _, a := range d.Opening.Attributes {
			if a.Attr != nil {
				v.expr(a.Attr.Value)
			}
			if a.Spread != nil {
				v.expr(a.Spread.Value)
			}
		}
		for _, c := range d.Children {
			v.expr(c)
		}
	case *EJSXFragment:
		for _, c := range d.Children {
			v.expr(c)
		}
	case *EJSXExpressionContainer:
		v.expr(d.Value)
	case *JSXSpreadChild:
		v.expr(d.Value)
	case *ETSAs:
		v.expr(d.Value)
		v.tstype(d.Type)
	case *ETSSatisfies:
		v.expr(d.Value)
		v.tstype(d.Type)
	case *ETSNonNull:
		v.expr(d.Value)
	case *ETSTypeAssertion:
		v.expr(d.Value)
		v.tstype(d.Type)
	}
}

// Walk performs a full top-down descent of program, invoking the
// observer callbacks set on v for every node encountered.
func Walk(program *Program, v *Visitor) {
	v.stmts(program.Body)
}

// WalkExpr descends into a single expression, the entry point used by
// passes that only need to inspect one subtree (e.g. the CFG builder
// hunting a statement's nested function literals) rather than a whole
// program.
func WalkExpr(e Expr, v *Visitor) { v.expr(e) }

// WalkStmt descends into a single statement.
func WalkStmt(s Stmt, v *Visitor) { v.stmt(s) }
