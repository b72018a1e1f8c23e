// Package tsdecl renders a parsed program's exported TypeScript
// surface back out as a .d.ts-shaped string, using its own per-kind
// type switch over the top-level statements and type nodes. Only the
// `build --emit-types` subcommand calls this package; it is not part
// of the parse/analyze/lint hot path.
package tsdecl

import (
	"fmt"
	"strings"

	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/semantic"
	"github.com/astforge/astforge/internal/span"
)

// Emit renders every exported top-level declaration in program as a
// .d.ts-shaped string. Declarations without an exported counterpart
// (a private `const`, an unexported function) are skipped, matching
// how a real declaration-file emitter only surfaces a module's public
// API.
func Emit(program *js_ast.Program, model *semantic.Model) string {
	var b strings.Builder
	for _, s := range program.Body {
		if txt, ok := emitStmt(s, model); ok {
			b.WriteString(txt)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func emitStmt(s js_ast.Stmt, model *semantic.Model) (string, bool) {
	switch d := s.Data.(type) {
	case *js_ast.SFunction:
		if !d.IsExported {
			return "", false
		}
		return fmt.Sprintf("export declare function %s(%s): %s;", fnName(d, model), paramList(d), returnType(d)), true
	case *js_ast.SClass:
		if !d.IsExported {
			return "", false
		}
		return fmt.Sprintf("export declare class %s %s", className(d, model), classBody(&d.Class)), true
	case *js_ast.SVar:
		if !d.IsExported {
			return "", false
		}
		return varDecl(d), true
	case *js_ast.STSInterface:
		if !d.IsExported {
			return "", false
		}
		name, _ := model.SymbolByDeclaration(d.Name.Id)
		return fmt.Sprintf("export interface %s %s", symbolName(name), objectType(&d.Body)), true
	case *js_ast.STSTypeAlias:
		if !d.IsExported {
			return "", false
		}
		name, _ := model.SymbolByDeclaration(d.Name.Id)
		return fmt.Sprintf("export type %s = %s;", symbolName(name), typeRef(d.Type)), true
	case *js_ast.STSEnum:
		if !d.IsExported {
			return "", false
		}
		name, _ := model.SymbolByDeclaration(d.Name.Id)
		return fmt.Sprintf("export declare %senum %s %s", constPrefix(d.IsConst), symbolName(name), enumBody(d.Members)), true
	case *js_ast.SExportDefault:
		return "export default " + defaultTarget(d) + ";", true
	}
	return "", false
}

func symbolName(sym *semantic.Symbol) string {
	if sym == nil {
		return "_"
	}
	return sym.Name.String()
}

func constPrefix(isConst bool) string {
	if isConst {
		return "const "
	}
	return ""
}

func fnName(d *js_ast.SFunction, model *semantic.Model) string {
	if d.Fn.Name == nil {
		return "_"
	}
	if sym, ok := model.SymbolByDeclaration(d.Fn.Name.Id); ok {
		return sym.Name.String()
	}
	return "_"
}

func className(d *js_ast.SClass, model *semantic.Model) string {
	if d.Class.Name == nil {
		return "_"
	}
	if sym, ok := model.SymbolByDeclaration(d.Class.Name.Id); ok {
		return sym.Name.String()
	}
	return "_"
}

func paramList(d *js_ast.SFunction) string {
	parts := make([]string, 0, len(d.Fn.Args))
	for _, arg := range d.Fn.Args {
		t := "any"
		if !arg.TypeAnnotation.IsAbsent() {
			t = typeRef(arg.TypeAnnotation)
		}
		opt := ""
		if arg.IsOptional {
			opt = "?"
		}
		prefix := ""
		if arg.IsRest {
			prefix = "..."
		}
		parts = append(parts, fmt.Sprintf("%s%s%s: %s", prefix, bindingName(arg.Binding), opt, t))
	}
	return strings.Join(parts, ", ")
}

func bindingName(b js_ast.Binding) string {
	if id, ok := b.Data.(*js_ast.BIdentifier); ok {
		return id.Name.String()
	}
	return "_"
}

func returnType(d *js_ast.SFunction) string {
	if d.Fn.ReturnType.IsAbsent() {
		return "void"
	}
	return typeRef(d.Fn.ReturnType)
}

func varDecl(d *js_ast.SVar) string {
	parts := make([]string, 0, len(d.Declarators))
	for _, decl := range d.Declarators {
		t := "any"
		if !decl.TypeAnnotation.IsAbsent() {
			t = typeRef(decl.TypeAnnotation)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", bindingName(decl.Binding), t))
	}
	return fmt.Sprintf("export declare %s %s;", d.Kind.String(), strings.Join(parts, ", "))
}

func classBody(c *js_ast.Class) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, m := range c.Members {
		if m.Fn == nil || m.IsStaticBlock {
			continue
		}
		static := ""
		if m.IsStatic {
			static = "static "
		}
		b.WriteString(fmt.Sprintf("  %s%s(%s): %s;\n", static, memberKeyName(m.Key), paramList(&js_ast.SFunction{Fn: *m.Fn}), returnType(&js_ast.SFunction{Fn: *m.Fn})))
	}
	b.WriteString("}")
	return b.String()
}

func memberKeyName(key js_ast.Expr) string {
	switch d := key.Data.(type) {
	case *js_ast.EIdentifier:
		return d.Name.String()
	case *js_ast.EString:
		return d.Value.String()
	default:
		return "_"
	}
}

func objectType(o *js_ast.TSObjectType) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, m := range o.Members {
		opt := ""
		if m.IsOptional {
			opt = "?"
		}
		ro := ""
		if m.IsReadonly {
			ro = "readonly "
		}
		b.WriteString(fmt.Sprintf("  %s%s%s: %s;\n", ro, memberKeyName(m.Key), opt, typeRef(m.Type)))
	}
	b.WriteString("}")
	return b.String()
}

func enumBody(members []js_ast.TSEnumMember) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, m := range members {
		b.WriteString(fmt.Sprintf("  %s,\n", memberKeyName(m.Name)))
	}
	b.WriteString("}")
	return b.String()
}

func defaultTarget(d *js_ast.SExportDefault) string {
	switch {
	case d.Fn != nil:
		return "function()"
	case d.Class != nil:
		return "class {}"
	default:
		return "unknown"
	}
}

// typeRef renders a TSType back to source-shaped text. It covers the
// type-node kinds actually reachable from an export's annotation;
// anything more exotic (a conditional or mapped type, say) falls back
// to "any" rather than growing this into a full pretty-printer.
func typeRef(t js_ast.TSType) string {
	if t.IsAbsent() {
		return "any"
	}
	switch d := t.Data.(type) {
	case *js_ast.TSKeyword:
		return keywordName(d.Kind)
	case *js_ast.TSThisType:
		return "this"
	case *js_ast.TSTypeReference:
		name := joinAtoms(d.Name)
		if len(d.TypeArguments) == 0 {
			return name
		}
		args := make([]string, len(d.TypeArguments))
		for i, a := range d.TypeArguments {
			args[i] = typeRef(a)
		}
		return fmt.Sprintf("%s<%s>", name, strings.Join(args, ", "))
	case *js_ast.TSUnionType:
		return joinTypes(d.Types, " | ")
	case *js_ast.TSIntersectionType:
		return joinTypes(d.Types, " & ")
	case *js_ast.TSArrayType:
		return typeRef(d.ElementType) + "[]"
	case *js_ast.TSTupleType:
		parts := make([]string, len(d.Types))
		for i, elem := range d.Types {
			parts[i] = typeRef(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *js_ast.TSLiteralType:
		if d.Kind == js_ast.TSLiteralString {
			return fmt.Sprintf("%q", d.Text.String())
		}
		return d.Text.String()
	case *js_ast.TSParenthesizedType:
		return "(" + typeRef(d.Type) + ")"
	case *js_ast.TSFunctionType:
		return fmt.Sprintf("(%s) => %s", funcTypeParams(d.Parameters), typeRef(d.ReturnType))
	default:
		return "any"
	}
}

func funcTypeParams(ps []js_ast.TSParameter) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		opt := ""
		if p.IsOptional {
			opt = "?"
		}
		parts[i] = fmt.Sprintf("%s%s: %s", p.Name.String(), opt, typeRef(p.TypeAnnotation))
	}
	return strings.Join(parts, ", ")
}

func joinTypes(ts []js_ast.TSType, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = typeRef(t)
	}
	return strings.Join(parts, sep)
}

func joinAtoms(atoms []span.Atom) string {
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		parts[i] = a.String()
	}
	return strings.Join(parts, ".")
}

func keywordName(k js_ast.TSKeywordKind) string {
	switch k {
	case js_ast.TSKeywordAny:
		return "any"
	case js_ast.TSKeywordUnknown:
		return "unknown"
	case js_ast.TSKeywordNever:
		return "never"
	case js_ast.TSKeywordVoid:
		return "void"
	case js_ast.TSKeywordUndefined:
		return "undefined"
	case js_ast.TSKeywordNull:
		return "null"
	case js_ast.TSKeywordObject:
		return "object"
	case js_ast.TSKeywordString:
		return "string"
	case js_ast.TSKeywordNumber:
		return "number"
	case js_ast.TSKeywordBoolean:
		return "boolean"
	case js_ast.TSKeywordSymbol:
		return "symbol"
	case js_ast.TSKeywordBigInt:
		return "bigint"
	default:
		return "any"
	}
}
