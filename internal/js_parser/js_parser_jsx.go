package js_parser

import (
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/js_lexer"
	"github.com/astforge/astforge/internal/span"
)

// parseJSXElement is entered with the lexer sitting on "<" in regular
// mode. "<>" (a fragment) and "<Name ...>" both funnel through here;
// the element name is read in ModeJSXIdentifier so hyphenated names
// like "data-x" lex as one token instead of identifier-minus-identifier.
//
// afterMode is the mode the lexer should resume in once this element's
// closing ">" (or "/>") has been consumed: ModeRegular when the
// element sits in an ordinary expression position, ModeJSXChild when
// it is itself a child of an enclosing element.
func (p *parser) parseJSXElement(start uint32, afterMode js_lexer.Mode) js_ast.Expr {
	p.lexer.Next(js_lexer.ModeJSXIdentifier)

	if p.lexer.Token == js_lexer.TGreaterThan {
		p.lexer.Next(js_lexer.ModeJSXChild)
		children := p.parseJSXChildren()
		p.lexer.Next(js_lexer.ModeRegular) // consume "</"
		p.expectMode(js_lexer.TGreaterThan, "\">\" to close JSX fragment", afterMode)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EJSXFragment{Children: children}}
	}

	opening, selfClosing := p.parseJSXOpeningElement()
	if selfClosing {
		p.consumeJSXGreaterThan(afterMode)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EJSXElement{Opening: opening}}
	}

	p.consumeJSXGreaterThan(js_lexer.ModeJSXChild)
	children := p.parseJSXChildren()

	// parseJSXChildren left us on TLessThanSlash.
	p.lexer.Next(js_lexer.ModeJSXIdentifier)
	closingName := p.parseJSXName()
	if !closingName.Equal(opening.Name) {
		p.addErrorAt(closingName.Span, "Mismatched JSX closing tag")
	}
	p.consumeJSXGreaterThan(afterMode)

	closing := &js_ast.JSXClosingElement{Name: closingName}
	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EJSXElement{Opening: opening, Children: children, Closing: closing}}
}

func (p *parser) consumeJSXGreaterThan(mode js_lexer.Mode) {
	if p.lexer.Token != js_lexer.TGreaterThan {
		p.addErrorAt(p.lexer.Span(), "Expected \">\"")
		panic(parserPanic{})
	}
	p.lexer.Next(mode)
}

// expectMode checks the current token and advances in a caller-chosen
// mode, unlike expect which always resumes in ModeRegular. JSX needs
// this everywhere a "}" or "<" boundary is immediately followed by
// JSX-specific lexing (child text, an attribute name) rather than a
// plain expression token.
func (p *parser) expectMode(t js_lexer.T, what string, mode js_lexer.Mode) {
	if p.lexer.Token != t {
		p.addErrorAt(p.lexer.Span(), "Expected "+what)
		panic(parserPanic{})
	}
	p.lexer.Next(mode)
}

// parseJSXOpeningElement parses the name and attribute list of an
// opening tag and stops with the lexer sitting on the final ">" so the
// caller can decide which mode to resume in afterward.
func (p *parser) parseJSXOpeningElement() (js_ast.JSXOpeningElement, bool) {
	name := p.parseJSXName()
	var attrs []js_ast.JSXAttributeItem

	for p.lexer.Token != js_lexer.TSlash && p.lexer.Token != js_lexer.TGreaterThan && p.lexer.Token != js_lexer.TEndOfFile {
		attrStart := p.atSpanStart()
		if p.lexer.Token == js_lexer.TOpenBrace {
			p.lexer.Next(js_lexer.ModeRegular)
			p.expect(js_lexer.TDotDotDot, "\"...\"")
			value := p.parseExpr(js_ast.LComma)
			p.expectMode(js_lexer.TCloseBrace, "\"}\"", js_lexer.ModeJSXIdentifier)
			attrs = append(attrs, js_ast.JSXAttributeItem{Span: p.spanFrom(attrStart), Spread: &js_ast.JSXSpreadAttribute{Value: value}})
			continue
		}

		attrName := p.parseJSXName()
		var value js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next(js_lexer.ModeJSXStringLiteral)
			switch p.lexer.Token {
			case js_lexer.TJSXStringLiteral:
				value = js_ast.Expr{Span: p.lexer.Span(), Data: &js_ast.EString{Value: p.lexer.StringValue}}
				p.lexer.Next(js_lexer.ModeJSXIdentifier)
			case js_lexer.TOpenBrace:
				p.lexer.Next(js_lexer.ModeRegular)
				inner := p.parseExpr(js_ast.LComma)
				p.expectMode(js_lexer.TCloseBrace, "\"}\"", js_lexer.ModeJSXIdentifier)
				value = js_ast.Expr{Span: p.spanFrom(attrStart), Data: &js_ast.EJSXExpressionContainer{Value: inner}}
			default:
				p.unexpected()
			}
		}
		attrs = append(attrs, js_ast.JSXAttributeItem{
			Span: p.spanFrom(attrStart),
			Attr: &js_ast.JSXAttribute{Name: attrName, Value: value},
		})
	}

	selfClosing := false
	if p.lexer.Token == js_lexer.TSlash {
		selfClosing = true
		p.lexer.Next(js_lexer.ModeRegular)
	}

	return js_ast.JSXOpeningElement{Name: name, Attributes: attrs, SelfClosing: selfClosing}, selfClosing
}

// parseJSXName reads one of the three name shapes described in
// js_ast.JSXName: a plain identifier, "ns:name", or "Foo.Bar.Baz". The
// lexer must already be in ModeJSXIdentifier.
func (p *parser) parseJSXName() js_ast.JSXName {
	nameSpan := p.lexer.Span()
	first := identAtom(p.source, p.arena, p.lexer.Identifier, true, nameSpan)
	p.lexer.Next(js_lexer.ModeJSXIdentifier)

	if p.lexer.Token == js_lexer.TColon {
		p.lexer.Next(js_lexer.ModeJSXIdentifier)
		partSpan := p.lexer.Span()
		part := identAtom(p.source, p.arena, p.lexer.Identifier, true, partSpan)
		p.lexer.Next(js_lexer.ModeJSXIdentifier)
		return js_ast.JSXName{Span: span.Span{Start: nameSpan.Start, End: partSpan.End}, Kind: js_ast.JSXNameNamespaced, Namespace: first, NamePart: part}
	}

	if p.lexer.Token == js_lexer.TDot {
		segments := []span.Atom{first}
		end := nameSpan.End
		for p.lexer.Token == js_lexer.TDot {
			p.lexer.Next(js_lexer.ModeJSXIdentifier)
			segSpan := p.lexer.Span()
			segments = append(segments, identAtom(p.source, p.arena, p.lexer.Identifier, true, segSpan))
			end = segSpan.End
			p.lexer.Next(js_lexer.ModeJSXIdentifier)
		}
		return js_ast.JSXName{Span: span.Span{Start: nameSpan.Start, End: end}, Kind: js_ast.JSXNameMember, Segments: segments}
	}

	return js_ast.JSXName{Span: nameSpan, Kind: js_ast.JSXNameIdentifier, Identifier: first}
}

// parseJSXChildren consumes text/expression/nested-element children
// until it reaches "</" (left for the caller to consume the rest of
// the closing tag) or EOF.
func (p *parser) parseJSXChildren() []js_ast.Expr {
	var children []js_ast.Expr
	for {
		switch p.lexer.Token {
		case js_lexer.TJSXText:
			text := identAtom(p.source, p.arena, "", true, p.lexer.Span())
			children = append(children, js_ast.Expr{Span: p.lexer.Span(), Data: &js_ast.JSXText{Value: text}})
			p.lexer.Next(js_lexer.ModeJSXChild)

		case js_lexer.TOpenBrace:
			start := p.atSpanStart()
			p.lexer.Next(js_lexer.ModeRegular)
			if p.lexer.Token == js_lexer.TDotDotDot {
				p.lexer.Next(js_lexer.ModeRegular)
				value := p.parseExpr(js_ast.LComma)
				p.expectMode(js_lexer.TCloseBrace, "\"}\"", js_lexer.ModeJSXChild)
				children = append(children, js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.JSXSpreadChild{Value: value}})
			} else if p.lexer.Token == js_lexer.TCloseBrace {
				p.lexer.Next(js_lexer.ModeJSXChild)
				children = append(children, js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EJSXExpressionContainer{}})
			} else {
				value := p.parseExprOrCommaList()
				p.expectMode(js_lexer.TCloseBrace, "\"}\"", js_lexer.ModeJSXChild)
				children = append(children, js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EJSXExpressionContainer{Value: value}})
			}

		case js_lexer.TLessThan:
			childStart := p.atSpanStart()
			children = append(children, p.parseJSXElement(childStart, js_lexer.ModeJSXChild))

		case js_lexer.TLessThanSlash, js_lexer.TEndOfFile:
			return children

		default:
			p.unexpected()
		}
	}
}
