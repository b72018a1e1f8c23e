package js_ast

import "github.com/astforge/astforge/internal/span"

// LocRef pairs a source location with the node id it names, used for
// the optional name slot on a function or class declaration/expression.
type LocRef struct {
	Loc span.Span
	Id  span.AstNodeId
}

type EMissing struct{}

type EBoolean struct{ Value bool }

type ENull struct{}

type EUndefined struct{}

type EThis struct{}

type ESuper struct{}

type ENewTarget struct{}

type EImportMeta struct{}

type ENumber struct{ Value float64 }

// EBigInt carries the digits without the trailing "n" suffix, stored
// as text because a BigInt's precision exceeds float64.
type EBigInt struct{ Value string }

type EString struct{ Value span.Atom }

// ERegExp is the literal form. When ParseOptions.ParseRegularExpression
// is unset, Pattern is nil and only the raw text is kept; when
// set, Pattern holds the full regex AST.
type ERegExp struct {
	Value   span.Atom // full "/pattern/flags" source text
	Pattern *RegexpPattern
}

// EIdentifier is a value reference. Id is assigned by the semantic
// builder once the reference is resolved to a declaring symbol;
// parser-time occurrences carry span.InvalidNodeId until then.
type EIdentifier struct {
	Name span.Atom
	Id   span.AstNodeId
}

// EPrivateIdentifier is a class-private name reference ("#foo").
type EPrivateIdentifier struct {
	Name span.Atom
}

type EArray struct {
	Items          []Expr
	IsSingleLine   bool
	HasTrailingHole bool
}

type Property struct {
	Kind       PropertyKind
	Key        Expr
	Value      Expr // absent for shorthand getters/setters? always Data for method/field value
	Initializer Expr // shorthand "{a = 1}" default in destructuring context
	IsComputed bool
	IsStatic   bool
	IsShorthand bool
}

type EObject struct {
	Properties   []Property
	IsSingleLine bool
}

type ESpread struct{ Value Expr }

type TemplatePart struct {
	Value  Expr
	Tail   span.Atom
	TailSpan span.Span
}

type ETemplate struct {
	Tag        Expr // absent for untagged templates
	Head       span.Atom
	HeadSpan   span.Span
	Parts      []TemplatePart
}

type EUnary struct {
	Op    OpCode
	Value Expr
}

type EUpdate struct {
	Op       OpCode
	Value    Expr
	IsPrefix bool
}

type EBinary struct {
	Op    OpCode
	Left  Expr
	Right Expr
}

type ELogical struct {
	Op    OpCode
	Left  Expr
	Right Expr
}

type EAssign struct {
	Op     OpCode
	Target Expr
	Value  Expr
}

type EConditional struct {
	Test Expr
	Yes  Expr
	No   Expr
}

type Arg struct {
	Binding        Binding
	DefaultValue   Expr
	TypeAnnotation *TSTypeAnnotation
	IsOptional     bool
	IsRest         bool
	Decorators     []Decorator
}

// Fn is the shared payload for function declarations, function
// expressions, and (minus IsGenerator) arrow functions.
type Fn struct {
	Name           *LocRef
	Args           []Arg
	Body           []Stmt
	IsAsync        bool
	IsGenerator    bool
	HasRestArg     bool
	ReturnType     *TSTypeAnnotation
	TypeParameters *TSTypeParameterDeclaration
}

type EFunction struct{ Fn Fn }

// EArrow additionally distinguishes an expression body ("x => x + 1")
// from a block body; when PreferExpr is true, Body holds exactly one
// SReturn synthesized around the expression so downstream passes can
// treat every function uniformly as a statement list.
type EArrow struct {
	Fn         Fn
	PreferExpr bool
}

type EClass struct{ Class Class }

type ENew struct {
	Target    Expr
	Args      []Expr
	TypeArgs  []TSType
}

// EDot is static member access: "a.b" or optional-chained "a?.b".
type EDot struct {
	Target        Expr
	Name          span.Atom
	NameSpan      span.Span
	OptionalChain OptionalChain
}

// EIndex is computed member access: "a[b]" or optional-chained "a?.[b]".
type EIndex struct {
	Target        Expr
	Index         Expr
	OptionalChain OptionalChain
}

// OptionalChain marks a node's position within an optional-chain
// expression so the printer and transformer can tell "a?.b.c" (chain
// continues) from "a?.b" followed by unrelated access.
type OptionalChain uint8

const (
	OptionalChainNone OptionalChain = iota
	OptionalChainStart
	OptionalChainContinue
)

type ECall struct {
	Target        Expr
	Args          []Expr
	TypeArgs      []TSType
	OptionalChain OptionalChain
	IsDirectEval  bool
}

// EImportCall is a dynamic "import(...)" expression.
type EImportCall struct {
	Arg       Expr
	Options   Expr // import attributes argument, absent if none
}

type ESequence struct{ Exprs []Expr }

type EYield struct {
	Value      Expr // absent for bare "yield"
	IsDelegate bool
}

type EAwait struct{ Value Expr }

type ETSAs struct {
	Value Expr
	Type  TSType
}

type ETSSatisfies struct {
	Value Expr
	Type  TSType
}

type ETSNonNull struct{ Value Expr }

type ETSTypeAssertion struct {
	Type  TSType
	Value Expr
}
