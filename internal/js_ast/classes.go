package js_ast

import "github.com/astforge/astforge/internal/span"

// Decorator is a single "@expr" applied to a class, member or
// parameter in the TypeScript/decorators grammar.
type Decorator struct {
	Value Expr
}

// Accessibility is a TypeScript member modifier.
type Accessibility uint8

const (
	AccessibilityNone Accessibility = iota
	AccessibilityPublic
	AccessibilityPrivate
	AccessibilityProtected
)

// ClassMember is one member of a class body: a field, method,
// accessor, or static block.
type ClassMember struct {
	Span           span.Span
	Kind           PropertyKind
	Key            Expr // absent for a static block
	Value          Expr // EFunction for methods, arbitrary init expr for fields
	Fn             *Fn  // non-nil for methods/get/set/auto-accessors
	StaticBlock    []Stmt
	IsStaticBlock  bool
	IsStatic       bool
	IsComputed     bool
	IsAbstract     bool
	IsReadonly     bool
	IsOptional     bool
	IsDeclare      bool
	Accessibility  Accessibility
	Decorators     []Decorator
	TypeAnnotation *TSTypeAnnotation
}

// Class is the shared payload for class declarations and class
// expressions.
type Class struct {
	Name           *LocRef
	Extends        Expr // absent if no heritage clause
	ExtendsTypeArgs []TSType
	Implements     []TSType
	TypeParameters *TSTypeParameterDeclaration
	Decorators     []Decorator
	Members        []ClassMember
	IsAbstract     bool
}
