package js_ast

import "github.com/astforge/astforge/internal/span"

// Binding is a destructuring target: a function argument, a variable
// declarator's left-hand side, or a catch clause's parameter.
type Binding struct {
	Span span.Span
	Data B
}

type B interface{ isBinding() }

func (*BMissing) isBinding()    {}
func (*BIdentifier) isBinding() {}
func (*BArray) isBinding()      {}
func (*BObject) isBinding()     {}

func (b Binding) IsAbsent() bool { return b.Data == nil }

// BMissing represents an elided element in an array pattern, e.g. the
// gap in "let [, b] = x".
type BMissing struct{}

type BIdentifier struct {
	Name span.Atom
	Id   span.AstNodeId
}

type ArrayBindingItem struct {
	Binding      Binding
	DefaultValue Expr // absent if no default
	IsSpread     bool
}

type BArray struct {
	Items        []ArrayBindingItem
	HasSpread    bool
	IsSingleLine bool
}

type ObjectBindingProperty struct {
	Key          Expr
	Value        Binding
	DefaultValue Expr // absent if no default
	IsComputed   bool
	IsSpread     bool
}

type BObject struct {
	Properties   []ObjectBindingProperty
	IsSingleLine bool
}

// Declarator is one "name = init" pair within a var/let/const
// declaration. Init is absent for a bare "let x;".
type Declarator struct {
	Binding        Binding
	TypeAnnotation *TSTypeAnnotation
	Value          Expr
}
