// JSX AST. Opening/closing element names are carried as JSXName
// values rather than plain atoms because JSX permits three distinct
// name shapes: a plain identifier, a namespaced
// name ("svg:rect"), and a dotted member expression ("Foo.Bar"). The
// parser is responsible for checking that an opening and closing name
// content-equal when both are present; that invariant is not
// self-enforcing in the struct shape.
package js_ast

import "github.com/astforge/astforge/internal/span"

type JSXNameKind uint8

const (
	JSXNameIdentifier JSXNameKind = iota
	JSXNameNamespaced
	JSXNameMember
)

// JSXName is a tagged union over the three name shapes above.
// Identifier is set for JSXNameIdentifier. Namespace/NamePart are set
// for JSXNameNamespaced ("ns:name"). Segments holds the dotted parts
// for JSXNameMember ("Foo.Bar.Baz").
type JSXName struct {
	Span      span.Span
	Kind      JSXNameKind
	Identifier span.Atom
	Namespace  span.Atom
	NamePart   span.Atom
	Segments   []span.Atom
}

// Equal implements the content-equality check a JSX element's opening
// and closing names must satisfy.
func (n JSXName) Equal(other JSXName) bool {
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case JSXNameIdentifier:
		return n.Identifier.Equal(other.Identifier)
	case JSXNameNamespaced:
		return n.Namespace.Equal(other.Namespace) && n.NamePart.Equal(other.NamePart)
	default:
		if len(n.Segments) != len(other.Segments) {
			return false
		}
		for i := range n.Segments {
			if !n.Segments[i].Equal(other.Segments[i]) {
				return false
			}
		}
		return true
	}
}

type JSXAttribute struct {
	Name  JSXName
	Value Expr // absent for a bare boolean attribute; EJSXExpressionContainer or EString otherwise
}

// JSXSpreadAttribute is "{...expr}" within an opening element's
// attribute list.
type JSXSpreadAttribute struct{ Value Expr }

// JSXAttributeItem is a tagged choice between a named attribute and a
// spread attribute, preserving source order across both forms.
type JSXAttributeItem struct {
	Span   span.Span
	Attr   *JSXAttribute
	Spread *JSXSpreadAttribute
}

type JSXOpeningElement struct {
	Name          JSXName
	TypeArguments []TSType
	Attributes    []JSXAttributeItem
	SelfClosing   bool
}

type JSXClosingElement struct{ Name JSXName }

// JSXText is raw text content between JSX children, produced by the
// lexer's JSXChild mode greedily scanning up to the next "{" or "<".
type JSXText struct{ Value span.Atom }

// EJSXExpressionContainer is "{expr}" as a JSX child or attribute
// value. Value is absent for an empty container holding only a
// comment, "{/* comment */}".
type EJSXExpressionContainer struct{ Value Expr }

func (*EJSXExpressionContainer) isExpr() {}
func (*JSXText) isExpr()                 {}
func (*JSXSpreadChild) isExpr()           {}

// JSXSpreadChild is the rare "{...expr}" child form.
type JSXSpreadChild struct{ Value Expr }

type EJSXElement struct {
	Opening  JSXOpeningElement
	Children []Expr // JSXText, EJSXExpressionContainer, JSXSpreadChild, EJSXElement or EJSXFragment
	Closing  *JSXClosingElement // absent when SelfClosing
}

type EJSXFragment struct {
	Children []Expr
}
