// ESTree-compatible JSON serialization. The program and every object
// returned by SerializeStmt, SerializeExpr and SerializeBinding carry
// "type", "start" and "end" plus kind-specific fields. Objects built
// inline inside one of those cases (declarators, specifiers,
// properties, switch cases, catch clauses, block and class bodies,
// class members, an export default's function or class) carry "type"
// and their fields only, with no "start"/"end". This
// only needs to be detailed enough to round-trip through a downstream
// parser; it does not attempt to match any one upstream tool
// byte-for-byte.
package js_ast

import "github.com/astforge/astforge/internal/span"

// Node is the generic JSON shape every serialized AST node produces.
// Using map[string]any instead of per-kind struct tags keeps one
// function doing the "type" tagging instead of duplicating it across
// forty Go struct definitions with json tags.
type Node = map[string]any

func loc(s Stmt) (int, int) { return int(s.Span.Start), int(s.Span.End) }
func eloc(e Expr) (int, int) { return int(e.Span.Start), int(e.Span.End) }

func withLoc(n Node, start, end int) Node {
	n["start"] = start
	n["end"] = end
	return n
}

// SerializeProgram converts the whole tree into the generic JSON
// shape described above.
func SerializeProgram(p *Program) Node {
	body := make([]Node, 0, len(p.Body))
	for _, s := range p.Body {
		body = append(body, SerializeStmt(s))
	}
	return Node{
		"type": "Program",
		"start": 0,
		"end":   int(p.SourceLen),
		"body":  body,
	}
}

// SerializeStmt converts one statement node. Node kinds without a
// bespoke case fall through to a minimal {type,start,end} object,
// which keeps the function total over every S variant without one
// branch per rarely-exercised TypeScript construct.
func SerializeStmt(s Stmt) Node {
	start, end := loc(s)
	switch d := s.Data.(type) {
	case *SBlock:
		return withLoc(Node{"type": "BlockStatement", "body": serializeStmts(d.Body)}, start, end)
	case *SEmpty:
		return withLoc(Node{"type": "EmptyStatement"}, start, end)
	case *SDebugger:
		return withLoc(Node{"type": "DebuggerStatement"}, start, end)
	case *SDirective:
		return withLoc(Node{"type": "ExpressionStatement", "directive": d.Value.String()}, start, end)
	case *SExpr:
		return withLoc(Node{"type": "ExpressionStatement", "expression": SerializeExpr(d.Value)}, start, end)
	case *SVar:
		decls := make([]Node, 0, len(d.Declarators))
		for _, decl := range d.Declarators {
			decls = append(decls, Node{
				"type": "VariableDeclarator",
				"id":   SerializeBinding(decl.Binding),
				"init": serializeExprOrNil(decl.Value),
			})
		}
		return withLoc(Node{"type": "VariableDeclaration", "kind": d.Kind.String(), "declarations": decls}, start, end)
	case *SFunction:
		return withLoc(serializeFn("FunctionDeclaration", &d.Fn), start, end)
	case *SClass:
		return withLoc(serializeClass("ClassDeclaration", &d.Class), start, end)
	case *SLabel:
		return withLoc(Node{"type": "LabeledStatement", "label": d.Name.String(), "body": SerializeStmt(d.Stmt)}, start, end)
	case *SIf:
		return withLoc(Node{
			"type": "IfStatement", "test": SerializeExpr(d.Test),
			"consequent": SerializeStmt(d.Yes), "alternate": serializeStmtOrNil(d.No),
		}, start, end)
	case *SFor:
		return withLoc(Node{
			"type": "ForStatement", "init": serializeStmtOrNil(d.Init),
			"test": serializeExprOrNil(d.Test), "update": serializeExprOrNil(d.Update),
			"body": SerializeStmt(d.Body),
		}, start, end)
	case *SForIn:
		return withLoc(Node{
			"type": "ForInStatement", "left": SerializeBinding(d.Binding),
			"right": SerializeExpr(d.Target), "body": SerializeStmt(d.Body),
		}, start, end)
	case *SForOf:
		return withLoc(Node{
			"type": "ForOfStatement", "left": SerializeBinding(d.Binding),
			"right": SerializeExpr(d.Target), "body": SerializeStmt(d.Body), "await": d.IsAwait,
		}, start, end)
	case *SWhile:
		return withLoc(Node{"type": "WhileStatement", "test": SerializeExpr(d.Test), "body": SerializeStmt(d.Body)}, start, end)
	case *SDoWhile:
		return withLoc(Node{"type": "DoWhileStatement", "test": SerializeExpr(d.Test), "body": SerializeStmt(d.Body)}, start, end)
	case *SReturn:
		return withLoc(Node{"type": "ReturnStatement", "argument": serializeExprOrNil(d.Value)}, start, end)
	case *SBreak:
		return withLoc(Node{"type": "BreakStatement", "label": serializeLabel(d.Label)}, start, end)
	case *SContinue:
		return withLoc(Node{"type": "ContinueStatement", "label": serializeLabel(d.Label)}, start, end)
	case *SThrow:
		return withLoc(Node{"type": "ThrowStatement", "argument": SerializeExpr(d.Value)}, start, end)
	case *STry:
		var handler Node
		if d.Catch != nil {
			handler = Node{"type": "CatchClause", "param": serializeBindingOrNil(d.Catch.Binding), "body": Node{"type": "BlockStatement", "body": serializeStmts(d.Catch.Body)}}
		}
		var finalizer Node
		if d.Finally != nil {
			finalizer = Node{"type": "BlockStatement", "body": serializeStmts(d.Finally)}
		}
		return withLoc(Node{"type": "TryStatement", "block": Node{"type": "BlockStatement", "body": serializeStmts(d.Body)}, "handler": handler, "finalizer": finalizer}, start, end)
	case *SSwitch:
		cases := make([]Node, 0, len(d.Cases))
		for _, c := range d.Cases {
			cases = append(cases, Node{"type": "SwitchCase", "test": serializeExprOrNil(c.Test), "consequent": serializeStmts(c.Body)})
		}
		return withLoc(Node{"type": "SwitchStatement", "discriminant": SerializeExpr(d.Value), "cases": cases}, start, end)
	case *SWith:
		return withLoc(Node{"type": "WithStatement", "object": SerializeExpr(d.Value), "body": SerializeStmt(d.Body)}, start, end)
	case *SImport:
		specs := make([]Node, 0, 1+len(d.Clause.Named))
		if d.Clause.Default != nil {
			specs = append(specs, Node{"type": "ImportDefaultSpecifier"})
		}
		if d.Clause.Namespace != nil {
			specs = append(specs, Node{"type": "ImportNamespaceSpecifier"})
		}
		for _, named := range d.Clause.Named {
			specs = append(specs, Node{"type": "ImportSpecifier", "imported": named.ImportedName.String(), "local": named.Local.Id})
		}
		return withLoc(Node{"type": "ImportDeclaration", "specifiers": specs, "source": d.Path.String(), "importKind": importKindString(d.IsTypeOnly)}, start, end)
	case *SExportNamed:
		specs := make([]Node, 0, len(d.Specifiers))
		for _, spec := range d.Specifiers {
			specs = append(specs, Node{"type": "ExportSpecifier", "local": spec.Local.String(), "exported": spec.ExportedName.String()})
		}
		n := Node{"type": "ExportNamedDeclaration", "specifiers": specs, "exportKind": importKindString(d.IsTypeOnly)}
		if !d.Path.IsEmpty() {
			n["source"] = d.Path.String()
		}
		return withLoc(n, start, end)
	case *SExportDefault:
		var decl Node
		switch {
		case d.Fn != nil:
			decl = serializeFn("FunctionDeclaration", &d.Fn.Fn)
		case d.Class != nil:
			decl = serializeClass("ClassDeclaration", &d.Class.Class)
		default:
			decl = SerializeExpr(d.Value)
		}
		return withLoc(Node{"type": "ExportDefaultDeclaration", "declaration": decl}, start, end)
	case *SExportAll:
		n := Node{"type": "ExportAllDeclaration", "source": d.Path.String(), "exportKind": importKindString(d.IsTypeOnly)}
		if !d.Alias.IsEmpty() {
			n["exported"] = d.Alias.String()
		}
		return withLoc(n, start, end)
	case *SExportEquals:
		return withLoc(Node{"type": "TSExportAssignment", "expression": SerializeExpr(d.Value)}, start, end)
	case *STSInterface:
		return withLoc(Node{"type": "TSInterfaceDeclaration", "id": d.Name.Id}, start, end)
	case *STSTypeAlias:
		return withLoc(Node{"type": "TSTypeAliasDeclaration", "id": d.Name.Id}, start, end)
	case *STSEnum:
		return withLoc(Node{"type": "TSEnumDeclaration", "id": d.Name.Id, "const": d.IsConst}, start, end)
	case *STSModule:
		return withLoc(Node{"type": "TSModuleDeclaration"}, start, end)
	case *STSImportEquals:
		return withLoc(Node{"type": "TSImportEqualsDeclaration", "id": d.Name.Id}, start, end)
	default:
		return withLoc(Node{"type": "UnknownStatement"}, start, end)
	}
}

func importKindString(typeOnly bool) string {
	if typeOnly {
		return "type"
	}
	return "value"
}

func serializeLabel(name span.Atom) any {
	if name.IsEmpty() {
		return nil
	}
	return Node{"type": "Identifier", "name": name.String()}
}

func serializeStmts(list []Stmt) []Node {
	out := make([]Node, 0, len(list))
	for _, s := range list {
		out = append(out, SerializeStmt(s))
	}
	return out
}

func serializeStmtOrNil(s Stmt) any {
	if s.IsAbsent() {
		return nil
	}
	return SerializeStmt(s)
}

func serializeExprOrNil(e Expr) any {
	if e.IsAbsent() {
		return nil
	}
	return SerializeExpr(e)
}

func serializeBindingOrNil(b Binding) any {
	if b.IsAbsent() {
		return nil
	}
	return SerializeBinding(b)
}

func serializeFn(typ string, fn *Fn) Node {
	params := make([]Node, 0, len(fn.Args))
	for _, a := range fn.Args {
		params = append(params, SerializeBinding(a.Binding))
	}
	return Node{
		"type": typ, "params": params, "body": Node{"type": "BlockStatement", "body": serializeStmts(fn.Body)},
		"async": fn.IsAsync, "generator": fn.IsGenerator,
	}
}

func serializeClass(typ string, c *Class) Node {
	members := make([]Node, 0, len(c.Members))
	for _, m := range c.Members {
		members = append(members, Node{"type": "ClassMember", "static": m.IsStatic, "key": serializeExprOrNil(m.Key)})
	}
	return Node{"type": typ, "superClass": serializeExprOrNil(c.Extends), "body": Node{"type": "ClassBody", "body": members}}
}

// SerializeBinding converts one destructuring target node.
func SerializeBinding(b Binding) Node {
	start, end := int(b.Span.Start), int(b.Span.End)
	switch d := b.Data.(type) {
	case *BMissing:
		return withLoc(Node{"type": "Identifier", "name": nil}, start, end)
	case *BIdentifier:
		return withLoc(Node{"type": "Identifier", "name": d.Name.String()}, start, end)
	case *BArray:
		items := make([]any, 0, len(d.Items))
		for _, item := range d.Items {
			items = append(items, serializeBindingOrNil(item.Binding))
		}
		return withLoc(Node{"type": "ArrayPattern", "elements": items}, start, end)
	case *BObject:
		props := make([]Node, 0, len(d.Properties))
		for _, p := range d.Properties {
			props = append(props, Node{"type": "Property", "key": serializeExprOrNil(p.Key), "value": SerializeBinding(p.Value)})
		}
		return withLoc(Node{"type": "ObjectPattern", "properties": props}, start, end)
	default:
		return withLoc(Node{"type": "UnknownPattern"}, start, end)
	}
}

// SerializeExpr converts one expression node.
func SerializeExpr(e Expr) Node {
	start, end := eloc(e)
	switch d := e.Data.(type) {
	case *EMissing:
		return withLoc(Node{"type": "Identifier", "name": nil}, start, end)
	case *EBoolean:
		return withLoc(Node{"type": "Literal", "value": d.Value}, start, end)
	case *ENull:
		return withLoc(Node{"type": "Literal", "value": nil}, start, end)
	case *EUndefined:
		return withLoc(Node{"type": "Identifier", "name": "undefined"}, start, end)
	case *EThis:
		return withLoc(Node{"type": "ThisExpression"}, start, end)
	case *ESuper:
		return withLoc(Node{"type": "Super"}, start, end)
	case *ENewTarget:
		return withLoc(Node{"type": "MetaProperty", "meta": "new", "property": "target"}, start, end)
	case *EImportMeta:
		return withLoc(Node{"type": "MetaProperty", "meta": "import", "property": "meta"}, start, end)
	case *ENumber:
		return withLoc(Node{"type": "Literal", "value": d.Value}, start, end)
	case *EBigInt:
		return withLoc(Node{"type": "Literal", "bigint": d.Value}, start, end)
	case *EString:
		return withLoc(Node{"type": "Literal", "value": d.Value.String()}, start, end)
	case *ERegExp:
		return withLoc(Node{"type": "Literal", "regex": d.Value.String()}, start, end)
	case *EIdentifier:
		return withLoc(Node{"type": "Identifier", "name": d.Name.String()}, start, end)
	case *EPrivateIdentifier:
		return withLoc(Node{"type": "PrivateIdentifier", "name": d.Name.String()}, start, end)
	case *EArray:
		items := make([]any, 0, len(d.Items))
		for _, item := range d.Items {
			items = append(items, serializeExprOrNil(item))
		}
		return withLoc(Node{"type": "ArrayExpression", "elements": items}, start, end)
	case *EObject:
		props := make([]Node, 0, len(d.Properties))
		for _, p := range d.Properties {
			props = append(props, Node{"type": "Property", "key": serializeExprOrNil(p.Key), "value": serializeExprOrNil(p.Value), "shorthand": p.IsShorthand, "computed": p.IsComputed})
		}
		return withLoc(Node{"type": "ObjectExpression", "properties": props}, start, end)
	case *ESpread:
		return withLoc(Node{"type": "SpreadElement", "argument": SerializeExpr(d.Value)}, start, end)
	case *ETemplate:
		parts := make([]Node, 0, len(d.Parts))
		for _, p := range d.Parts {
			parts = append(parts, SerializeExpr(p.Value))
		}
		n := Node{"type": "TemplateLiteral", "expressions": parts}
		if !d.Tag.IsAbsent() {
			return withLoc(Node{"type": "TaggedTemplateExpression", "tag": SerializeExpr(d.Tag), "quasi": n}, start, end)
		}
		return withLoc(n, start, end)
	case *EUnary:
		return withLoc(Node{"type": "UnaryExpression", "operator": int(d.Op), "argument": SerializeExpr(d.Value), "prefix": d.Op.IsPrefix()}, start, end)
	case *EUpdate:
		return withLoc(Node{"type": "UpdateExpression", "operator": int(d.Op), "argument": SerializeExpr(d.Value), "prefix": d.IsPrefix}, start, end)
	case *EBinary:
		return withLoc(Node{"type": "BinaryExpression", "operator": int(d.Op), "left": SerializeExpr(d.Left), "right": SerializeExpr(d.Right)}, start, end)
	case *ELogical:
		return withLoc(Node{"type": "LogicalExpression", "operator": int(d.Op), "left": SerializeExpr(d.Left), "right": SerializeExpr(d.Right)}, start, end)
	case *EAssign:
		return withLoc(Node{"type": "AssignmentExpression", "operator": int(d.Op), "left": SerializeExpr(d.Target), "right": SerializeExpr(d.Value)}, start, end)
	case *EConditional:
		return withLoc(Node{"type": "ConditionalExpression", "test": SerializeExpr(d.Test), "consequent": SerializeExpr(d.Yes), "alternate": SerializeExpr(d.No)}, start, end)
	case *ENew:
		args := make([]Node, 0, len(d.Args))
		for _, a := range d.Args {
			args = append(args, SerializeExpr(a))
		}
		return withLoc(Node{"type": "NewExpression", "callee": SerializeExpr(d.Target), "arguments": args}, start, end)
	case *ECall:
		args := make([]Node, 0, len(d.Args))
		for _, a := range d.Args {
			args = append(args, SerializeExpr(a))
		}
		return withLoc(Node{"type": "CallExpression", "callee": SerializeExpr(d.Target), "arguments": args, "optional": d.OptionalChain != OptionalChainNone}, start, end)
	case *EDot:
		return withLoc(Node{"type": "MemberExpression", "object": SerializeExpr(d.Target), "property": Node{"type": "Identifier", "name": d.Name.String()}, "computed": false, "optional": d.OptionalChain != OptionalChainNone}, start, end)
	case *EIndex:
		return withLoc(Node{"type": "MemberExpression", "object": SerializeExpr(d.Target), "property": SerializeExpr(d.Index), "computed": true, "optional": d.OptionalChain != OptionalChainNone}, start, end)
	case *EArrow:
		n := serializeFn("ArrowFunctionExpression", &d.Fn)
		n["expression"] = d.PreferExpr
		return withLoc(n, start, end)
	case *EFunction:
		return withLoc(serializeFn("FunctionExpression", &d.Fn), start, end)
	case *EClass:
		return withLoc(serializeClass("ClassExpression", &d.Class), start, end)
	case *ESequence:
		exprs := make([]Node, 0, len(d.Exprs))
		for _, sub := range d.Exprs {
			exprs = append(exprs, SerializeExpr(sub))
		}
		return withLoc(Node{"type": "SequenceExpression", "expressions": exprs}, start, end)
	case *EYield:
		return withLoc(Node{"type": "YieldExpression", "argument": serializeExprOrNil(d.Value), "delegate": d.IsDelegate}, start, end)
	case *EAwait:
		return withLoc(Node{"type": "AwaitExpression", "argument": SerializeExpr(d.Value)}, start, end)
	case *EImportCall:
		return withLoc(Node{"type": "ImportExpression", "source": SerializeExpr(d.Arg)}, start, end)
	case *EJSXElement:
		children := make([]Node, 0, len(d.Children))
		for _, c := range d.Children {
			children = append(children, SerializeExpr(c))
		}
		return withLoc(Node{"type": "JSXElement", "children": children}, start, end)
	case *EJSXFragment:
		children := make([]Node, 0, len(d.Children))
		for _, c := range d.Children {
			children = append(children, SerializeExpr(c))
		}
		return withLoc(Node{"type": "JSXFragment", "children": children}, start, end)
	case *JSXText:
		return withLoc(Node{"type": "JSXText", "value": d.Value.String()}, start, end)
	case *EJSXExpressionContainer:
		return withLoc(Node{"type": "JSXExpressionContainer", "expression": serializeExprOrNil(d.Value)}, start, end)
	case *JSXSpreadChild:
		return withLoc(Node{"type": "JSXSpreadChild", "expression": SerializeExpr(d.Value)}, start, end)
	case *ETSAs:
		return withLoc(Node{"type": "TSAsExpression", "expression": SerializeExpr(d.Value)}, start, end)
	case *ETSSatisfies:
		return withLoc(Node{"type": "TSSatisfiesExpression", "expression": SerializeExpr(d.Value)}, start, end)
	case *ETSNonNull:
		return withLoc(Node{"type": "TSNonNullExpression", "expression": SerializeExpr(d.Value)}, start, end)
	case *ETSTypeAssertion:
		return withLoc(Node{"type": "TSTypeAssertion", "expression": SerializeExpr(d.Value)}, start, end)
	default:
		return withLoc(Node{"type": "UnknownExpression"}, start, end)
	}
}
