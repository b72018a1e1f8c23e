// TypeScript-specific AST: type nodes, interface/enum/namespace
// declarations, and the declaration/type-parameter machinery shared
// across them. Kept separate from stmts.go/exprs.go because a TS type
// node lives in a grammar position that never mixes with value
// expressions — the parser enforces that type and value positions
// never cross. No type checker lives here; this package only parses
// and represents the type grammar.
package js_ast

import "github.com/astforge/astforge/internal/span"

// TSType is the tagged-variant root of the type grammar.
type TSType struct {
	Span span.Span
	Data T
}

type T interface{ isType() }

func (*TSKeyword) isType()          {}
func (*TSTypeReference) isType()    {}
func (*TSUnionType) isType()        {}
func (*TSIntersectionType) isType() {}
func (*TSArrayType) isType()        {}
func (*TSTupleType) isType()        {}
func (*TSFunctionType) isType()     {}
func (*TSConstructorType) isType()  {}
func (*TSLiteralType) isType()      {}
func (*TSTypeOperator) isType()     {}
func (*TSConditionalType) isType()  {}
func (*TSMappedType) isType()       {}
func (*TSIndexedAccessType) isType() {}
func (*TSParenthesizedType) isType() {}
func (*TSImportType) isType()       {}
func (*TSTypeQuery) isType()        {}
func (*TSInferType) isType()        {}
func (*TSTemplateLiteralType) isType() {}
func (*TSObjectType) isType()       {}
func (*TSRestType) isType()         {}
func (*TSOptionalType) isType()     {}
func (*TSThisType) isType()         {}

func (t TSType) IsAbsent() bool { return t.Data == nil }

// TSKeywordKind enumerates the primitive type keywords.
type TSKeywordKind uint8

const (
	TSKeywordAny TSKeywordKind = iota
	TSKeywordUnknown
	TSKeywordNever
	TSKeywordVoid
	TSKeywordUndefined
	TSKeywordNull
	TSKeywordObject
	TSKeywordString
	TSKeywordNumber
	TSKeywordBoolean
	TSKeywordSymbol
	TSKeywordBigInt
)

type TSKeyword struct{ Kind TSKeywordKind }

type TSThisType struct{}

// TSTypeReference is a named type, optionally qualified
// ("A.B.C<T, U>").
type TSTypeReference struct {
	Name          []span.Atom // dotted-name segments
	Id            span.AstNodeId
	TypeArguments []TSType
}

type TSUnionType struct{ Types []TSType }

type TSIntersectionType struct{ Types []TSType }

type TSArrayType struct{ ElementType TSType }

type TSRestType struct{ Type TSType }

type TSOptionalType struct{ Type TSType }

// TSTupleType models fixed-length and labeled tuples; LabeledMembers
// parallels Types when the tuple uses named elements ("[x: number]").
type TSTupleType struct {
	Types          []TSType
	LabeledMembers []span.Atom // empty entry ("") when the element is unlabeled
}

type TSParameter struct {
	Name           span.Atom
	TypeAnnotation TSType
	IsOptional     bool
	IsRest         bool
}

type TSFunctionType struct {
	TypeParameters *TSTypeParameterDeclaration
	Parameters     []TSParameter
	ReturnType     TSType
}

type TSConstructorType struct {
	TypeParameters *TSTypeParameterDeclaration
	Parameters     []TSParameter
	ReturnType     TSType
	IsAbstract     bool
}

// TSLiteralKind enumerates the literal forms usable as a type.
type TSLiteralKind uint8

const (
	TSLiteralString TSLiteralKind = iota
	TSLiteralNumber
	TSLiteralBoolean
	TSLiteralBigInt
)

type TSLiteralType struct {
	Kind  TSLiteralKind
	Text  span.Atom
}

// TSOperatorKind enumerates the prefix type operators.
type TSOperatorKind uint8

const (
	TSOperatorKeyof TSOperatorKind = iota
	TSOperatorUnique
	TSOperatorReadonly
)

type TSTypeOperator struct {
	Operator TSOperatorKind
	Type     TSType
}

type TSTypeQuery struct {
	Name []span.Atom
	Id   span.AstNodeId
}

type TSInferType struct{ TypeParameter TSTypeParameter }

type TSConditionalType struct {
	CheckType   TSType
	ExtendsType TSType
	TrueType    TSType
	FalseType   TSType
}

// TSMappedType models "{ [K in T]?: U }" and its readonly/optional
// modifier variants.
type TSMappedType struct {
	TypeParameter  TSTypeParameter
	NameType       TSType // absent if no "as" clause
	ConstraintType TSType
	ValueType      TSType
	IsOptional     bool
	IsReadonly     bool
}

type TSIndexedAccessType struct {
	ObjectType TSType
	IndexType  TSType
}

type TSParenthesizedType struct{ Type TSType }

// TSImportType models "import('mod').Member<T>", which may appear in
// a pure type position without a corresponding ImportDeclaration.
type TSImportType struct {
	Path          span.Atom
	Qualifier     []span.Atom
	TypeArguments []TSType
}

type TSTemplateLiteralType struct {
	Head  span.Atom
	Types []TSType
	Tails []span.Atom
}

// TSPropertySignature is one member of an object-type literal or
// interface body.
type TSPropertySignature struct {
	Key            Expr
	Type           TSType
	IsOptional     bool
	IsReadonly     bool
	IsComputed     bool
	Fn             *TSFunctionType // non-nil for a method signature
	IsIndexSig     bool
	IndexKeyType   TSType
}

type TSObjectType struct {
	Members []TSPropertySignature
}

// TSTypeParameter is one entry of a <T extends X = Y> list.
type TSTypeParameter struct {
	Name        span.Atom
	Id          span.AstNodeId
	Constraint  TSType // absent if none
	Default     TSType // absent if none
	IsConst     bool
	IsIn        bool
	IsOut       bool
}

type TSTypeParameterDeclaration struct {
	Parameters []TSTypeParameter
}

type TSTypeAnnotation struct{ Type TSType }

// STSInterface is an interface declaration. Interfaces merge
// structurally with same-named interfaces in the same scope; the
// semantic builder does not attempt that merge but
// still records one symbol per declaration.
type STSInterface struct {
	Name           LocRef
	TypeParameters *TSTypeParameterDeclaration
	Extends        []TSType
	Body           TSObjectType
	IsExported     bool
}

type STSTypeAlias struct {
	Name           LocRef
	TypeParameters *TSTypeParameterDeclaration
	Type           TSType
	IsExported     bool
}

type TSEnumMember struct {
	Name  Expr // EString or EIdentifier
	Value Expr // absent for an auto-numbered member
}

type STSEnum struct {
	Name       LocRef
	Members    []TSEnumMember
	IsConst    bool
	IsExported bool
	IsDeclare  bool
}

// STSModule is a TypeScript "namespace Foo { ... }" or "module 'foo' { ... }".
type STSModule struct {
	Name       []span.Atom // dotted name, or single string-literal module name
	IsString   bool
	Body       []Stmt
	IsExported bool
	IsDeclare  bool
}

type STSImportEquals struct {
	Name       LocRef
	Target     []span.Atom // module-reference dotted name ("A.B")
	RequirePath span.Atom  // set instead of Target for "= require('x')"
	IsExported bool
}
