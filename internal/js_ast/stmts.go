package js_ast

import "github.com/astforge/astforge/internal/span"

type SBlock struct{ Body []Stmt }

type SEmpty struct{}

type SDebugger struct{}

// SDirective is a "prologue" string statement such as "use strict",
// kept distinct from a plain string-expression statement so the
// semantic builder can apply strict-mode propagation without
// re-parsing the expression.
type SDirective struct{ Value span.Atom }

type SExpr struct{ Value Expr }

type SVar struct {
	Kind        VarKind
	Declarators []Declarator
	IsExported  bool
}

type SFunction struct {
	Fn         Fn
	IsExported bool
	IsDefault  bool
	IsDeclare  bool
}

type SClass struct {
	Class      Class
	IsExported bool
	IsDefault  bool
}

// SLabel wraps a labeled statement, "name: stmt". LabelId identifies
// the label's own binding for CFG break/continue edge resolution.
type SLabel struct {
	Name    span.Atom
	LabelId span.AstNodeId
	Stmt    Stmt
}

type SIf struct {
	Test Expr
	Yes  Stmt
	No   Stmt // absent if no else clause
}

// SFor is the C-style "for (init; test; update) body" loop. Init may
// hold an SVar or an SExpr; Test and Update are absent when omitted.
type SFor struct {
	Init   Stmt
	Test   Expr
	Update Expr
	Body   Stmt
}

type ForBindingKind uint8

const (
	ForBindingExpr ForBindingKind = iota // "for (x in y)"
	ForBindingVar                        // "for (var/let/const x in y)"
)

type SForIn struct {
	BindingKind ForBindingKind
	Kind        VarKind // meaningful only when BindingKind == ForBindingVar
	Binding     Binding
	Target      Expr
	Value       Expr
	Body        Stmt
}

type SForOf struct {
	BindingKind ForBindingKind
	Kind        VarKind
	Binding     Binding
	Target      Expr
	Value       Expr
	Body        Stmt
	IsAwait     bool
}

type SWhile struct {
	Test Expr
	Body Stmt
}

type SDoWhile struct {
	Body Stmt
	Test Expr
}

type SReturn struct{ Value Expr } // absent for bare "return"

type SBreak struct{ Label span.Atom }   // Label.IsEmpty() for unlabeled
type SContinue struct{ Label span.Atom }

type SThrow struct{ Value Expr }

type CatchClause struct {
	Binding Binding // absent for "catch {}" with no parameter
	Body    []Stmt
}

type STry struct {
	Body    []Stmt
	Catch   *CatchClause
	Finally []Stmt // nil if no finally block
}

type SwitchCase struct {
	Test Expr // absent for "default:"
	Body []Stmt
}

type SSwitch struct {
	Value Expr
	Cases []SwitchCase
}

// SWith models the legacy sloppy-mode "with" statement. It is parsed,
// and its body is resolved in the enclosing scope (no scope is pushed
// for it); no lowering is attempted.
type SWith struct {
	Value Expr
	Body  Stmt
}

// ImportClause enumerates the three independent binding forms an ES
// import statement may combine.
type ImportClause struct {
	Default   *LocRef // absent if no default import
	Namespace *LocRef // absent if no "* as ns" import
	Named     []ImportSpecifier
}

type ImportSpecifier struct {
	ImportedName span.Atom
	Local        LocRef
	IsTypeOnly   bool
}

type SImport struct {
	Clause     ImportClause
	Path       span.Atom
	PathSpan   span.Span
	IsTypeOnly bool
	Assertion  *ImportAssertion
}

type ImportAssertion struct {
	Span span.Span
}

type ExportSpecifier struct {
	Local        span.Atom
	LocalSpan    span.Span
	ExportedName span.Atom
	ExportedSpan span.Span
	IsTypeOnly   bool
}

// SExportNamed covers both "export { a, b as c }" (Path absent) and
// the re-export form "export { a } from 'mod'" (Path present).
type SExportNamed struct {
	Specifiers []ExportSpecifier
	Path       span.Atom // absent if not a re-export
	PathSpan   span.Span
	IsTypeOnly bool
}

// SExportDefault covers "export default <expr|function|class>".
type SExportDefault struct {
	Value Expr // set when the default is an expression
	Fn    *SFunction
	Class *SClass
}

type SExportAll struct {
	Alias      span.Atom // absent for "export * from 'mod'"
	Path       span.Atom
	PathSpan   span.Span
	IsTypeOnly bool
}

// SExportEquals is TypeScript's "export = expr".
type SExportEquals struct{ Value Expr }
