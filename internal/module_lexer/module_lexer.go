// Package module_lexer implements an ESM module lexer: a pass over an
// already-parsed Program that records every import/export surface
// with byte-exact spans. It never re-lexes the source and never
// mutates the tree: top-level import/export statements are read
// directly from Program.Body, and dynamic import(...) and import.meta,
// which can appear anywhere, are found with the immutable
// js_ast.Visitor.
package module_lexer

import (
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/span"
)

// Kind tags one recorded entry.
type Kind uint8

const (
	StaticImport Kind = iota
	DynamicImport
	ExportStar
	ImportMeta
)

// Entry is one import-shaped record: a static import, a re-export
// (plain or "export *"), a dynamic import(...) call, or an
// import.meta reference.
type Entry struct {
	// Specifier is absent when a dynamic import's source argument
	// isn't a string literal (e.g. `import(pathVar)`).
	Specifier span.Atom
	// SpecifierRange excludes the surrounding quotes for a literal
	// specifier; it is the zero span for ImportMeta entries and for a
	// non-literal dynamic import source.
	SpecifierRange span.Span
	StatementRange span.Span
	Kind           Kind
	// DynamicImportOpenParenStart is the byte offset of the "(" in a
	// DynamicImport entry's `import(...)`; zero for every other kind.
	DynamicImportOpenParenStart uint32
	// HasImportAssertion and ImportAssertionStart describe an
	// "assert {...}"/"with {...}" clause, when present.
	HasImportAssertion  bool
	ImportAssertionStart uint32
	TypeOnly            bool
}

// ExportName is one locally-exported binding name: "export { a }",
// "export const x", "export function f() {}", "export default ...",
// or the alias half of "export * as ns from ...".
type ExportName struct {
	Name  span.Atom
	Range span.Span
}

// Result is the ESM module lexer's output.
type Result struct {
	Imports         []Entry
	Exports         []ExportName
	HasModuleSyntax bool
	Facade          bool
}

// Scan runs the module lexer over program. Specifier and name atoms
// come from the parsed tree; source is read only to locate the "(" of
// each dynamic import(...).
func Scan(program *js_ast.Program, source string) Result {
	var r Result
	allModuleOrDeclarative := true

	for _, s := range program.Body {
		if !isModuleOrDeclarativeTopLevel(s) {
			allModuleOrDeclarative = false
		}
		scanTopLevel(s, &r)
	}

	// Dynamic import(...) and import.meta can appear anywhere in the
	// tree, not just at the top level, so those two kinds are found by
	// a full recursive walk rather than the top-level scan above.
	v := &js_ast.Visitor{Expr: func(e js_ast.Expr) {
		switch d := e.Data.(type) {
		case *js_ast.EImportCall:
			r.HasModuleSyntax = true
			openParen := e.Span.Start + uint32(len("import"))
			for int(openParen) < len(source) && source[openParen] != '(' {
				openParen++
			}
			entry := Entry{Kind: DynamicImport, StatementRange: e.Span, DynamicImportOpenParenStart: openParen}
			if str, ok := d.Arg.Data.(*js_ast.EString); ok {
				entry.Specifier = str.Value
				entry.SpecifierRange = quoteTrimmed(d.Arg.Span)
			}
			r.Imports = append(r.Imports, entry)
		case *js_ast.EImportMeta:
			r.HasModuleSyntax = true
			r.Imports = append(r.Imports, Entry{Kind: ImportMeta, StatementRange: e.Span})
		}
	}}
	js_ast.Walk(program, v)

	if len(program.Body) == 0 {
		r.Facade = true
	} else {
		r.Facade = allModuleOrDeclarative
	}
	return r
}

// quoteTrimmed narrows a string-literal expression's span to exclude
// its surrounding quote characters.
func quoteTrimmed(s span.Span) span.Span {
	if s.Len() < 2 {
		return s
	}
	return span.Span{Start: s.Start + 1, End: s.End - 1}
}

func scanTopLevel(s js_ast.Stmt, r *Result) {
	switch d := s.Data.(type) {
	case *js_ast.SImport:
		r.HasModuleSyntax = true
		r.Imports = append(r.Imports, Entry{
			Specifier:          d.Path,
			SpecifierRange:     quoteTrimmed(d.PathSpan),
			StatementRange:     s.Span,
			Kind:               StaticImport,
			HasImportAssertion: d.Assertion != nil,
			ImportAssertionStart: assertionStart(d.Assertion),
			TypeOnly:           d.IsTypeOnly,
		})
	case *js_ast.SExportNamed:
		if !d.Path.IsEmpty() {
			r.HasModuleSyntax = true
			r.Imports = append(r.Imports, Entry{
				Specifier:      d.Path,
				SpecifierRange: quoteTrimmed(d.PathSpan),
				StatementRange: s.Span,
				Kind:           StaticImport,
				TypeOnly:       d.IsTypeOnly,
			})
			return
		}
		r.HasModuleSyntax = true
		for _, spec := range d.Specifiers {
			r.Exports = append(r.Exports, ExportName{Name: spec.ExportedName, Range: spec.ExportedSpan})
		}
	case *js_ast.SExportAll:
		r.HasModuleSyntax = true
		r.Imports = append(r.Imports, Entry{
			Specifier:      d.Path,
			SpecifierRange: quoteTrimmed(d.PathSpan),
			StatementRange: s.Span,
			Kind:           ExportStar,
			TypeOnly:       d.IsTypeOnly,
		})
		if !d.Alias.IsEmpty() {
			r.Exports = append(r.Exports, ExportName{Name: d.Alias, Range: s.Span})
		}
	case *js_ast.SExportDefault:
		r.HasModuleSyntax = true
		r.Exports = append(r.Exports, ExportName{Range: s.Span})
	case *js_ast.SExportEquals:
		r.HasModuleSyntax = true
		r.Exports = append(r.Exports, ExportName{Range: s.Span})
	case *js_ast.STSImportEquals:
		r.HasModuleSyntax = true
		if !d.RequirePath.IsEmpty() {
			r.Imports = append(r.Imports, Entry{
				Specifier:      d.RequirePath,
				StatementRange: s.Span,
				Kind:           StaticImport,
			})
		}
	case *js_ast.SVar:
		if d.IsExported {
			r.HasModuleSyntax = true
			for _, decl := range d.Declarators {
				if id, ok := decl.Binding.Data.(*js_ast.BIdentifier); ok {
					r.Exports = append(r.Exports, ExportName{Name: id.Name, Range: decl.Binding.Span})
				}
			}
		}
	case *js_ast.SFunction:
		if d.IsExported {
			r.HasModuleSyntax = true
			if d.Fn.Name != nil {
				r.Exports = append(r.Exports, ExportName{Range: d.Fn.Name.Loc})
			}
		}
	case *js_ast.SClass:
		if d.IsExported {
			r.HasModuleSyntax = true
			if d.Class.Name != nil {
				r.Exports = append(r.Exports, ExportName{Range: d.Class.Name.Loc})
			}
		}
	}
}

func assertionStart(a *js_ast.ImportAssertion) uint32 {
	if a == nil {
		return 0
	}
	return a.Span.Start
}

// isModuleOrDeclarativeTopLevel reports whether s contributes nothing
// to the facade check's executable-code side. A plain declaration is
// allowed too, as long as its initializer can't run arbitrary code at
// import time: plain var/function/class declarations count, but a
// bare expression statement doesn't.
func isModuleOrDeclarativeTopLevel(s js_ast.Stmt) bool {
	switch s.Data.(type) {
	case *js_ast.SImport, *js_ast.SExportNamed, *js_ast.SExportDefault,
		*js_ast.SExportAll, *js_ast.SExportEquals, *js_ast.STSImportEquals,
		*js_ast.SFunction, *js_ast.SClass, *js_ast.STSInterface,
		*js_ast.STSTypeAlias, *js_ast.SEmpty, *js_ast.SDirective:
		return true
	case *js_ast.SVar:
		v := s.Data.(*js_ast.SVar)
		for _, decl := range v.Declarators {
			if !isSideEffectFreeInit(decl.Value) {
				return false
			}
		}
		return true
	}
	return false
}

func isSideEffectFreeInit(e js_ast.Expr) bool {
	if e.IsAbsent() {
		return true
	}
	switch e.Data.(type) {
	case *js_ast.ECall, *js_ast.ENew, *js_ast.EAwait, *js_ast.EYield, *js_ast.EAssign:
		return false
	}
	return true
}
