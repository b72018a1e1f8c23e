package js_parser

import (
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/js_lexer"
	"github.com/astforge/astforge/internal/span"
)

// parseImportStmt covers every ES import form: default, namespace,
// named, combinations of those, and the bare "import 'mod'" side
// effect form. A leading "import(" or "import.meta" is an expression,
// not a statement, and is never reached here since parseStmt only
// calls this when the next token can't start either of those.
func (p *parser) parseImportStmt(start uint32) js_ast.Stmt {
	p.lexer.Next(js_lexer.ModeRegular)

	isTypeOnly := false
	if p.lexer.Token == js_lexer.TIdentifier && p.lexer.Identifier == "type" {
		save := *p.lexer
		p.lexer.Next(js_lexer.ModeRegular)
		looksLikeTypeOnlyClause := p.lexer.Token == js_lexer.TOpenBrace || p.lexer.Token == js_lexer.TAsterisk ||
			(p.lexer.Token == js_lexer.TIdentifier && p.lexer.Identifier != "from")
		if looksLikeTypeOnlyClause {
			isTypeOnly = true
		} else {
			*p.lexer = save
		}
	}

	if p.lexer.Token == js_lexer.TStringLiteral {
		path := p.lexer.StringValue
		pathSpan := p.lexer.Span()
		p.lexer.Next(js_lexer.ModeRegular)
		p.expectOrInsertSemicolon()
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SImport{Path: path, PathSpan: pathSpan, IsTypeOnly: isTypeOnly}}
	}

	var clause js_ast.ImportClause

	if p.lexer.Token == js_lexer.TIdentifier {
		nameSpan := p.lexer.Span()
		clause.Default = &js_ast.LocRef{Loc: nameSpan, Id: span.InvalidNodeId}
		p.lexer.Next(js_lexer.ModeRegular)
		if p.lexer.Token == js_lexer.TComma {
			p.lexer.Next(js_lexer.ModeRegular)
		}
	}

	if p.lexer.Token == js_lexer.TAsterisk {
		p.lexer.Next(js_lexer.ModeRegular)
		if !p.lexer.IsContextualKeyword("as") {
			p.unexpected()
		}
		p.lexer.Next(js_lexer.ModeRegular)
		nsSpan := p.lexer.Span()
		clause.Namespace = &js_ast.LocRef{Loc: nsSpan, Id: span.InvalidNodeId}
		p.lexer.Next(js_lexer.ModeRegular)
	} else if p.lexer.Token == js_lexer.TOpenBrace {
		clause.Named = p.parseNamedImportSpecifiers()
	}

	if !p.lexer.IsContextualKeyword("from") {
		p.unexpected()
	}
	p.lexer.Next(js_lexer.ModeRegular)

	path := p.lexer.StringValue
	pathSpan := p.lexer.Span()
	p.expect(js_lexer.TStringLiteral, "a string literal")
	p.expectOrInsertSemicolon()

	return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SImport{Clause: clause, Path: path, PathSpan: pathSpan, IsTypeOnly: isTypeOnly}}
}

func (p *parser) parseNamedImportSpecifiers() []js_ast.ImportSpecifier {
	p.lexer.Next(js_lexer.ModeRegular) // "{"
	var specs []js_ast.ImportSpecifier
	for p.lexer.Token != js_lexer.TCloseBrace {
		isTypeOnly := false
		if p.lexer.Token == js_lexer.TIdentifier && p.lexer.Identifier == "type" {
			save := *p.lexer
			p.lexer.Next(js_lexer.ModeRegular)
			if p.lexer.Token == js_lexer.TComma || p.lexer.Token == js_lexer.TCloseBrace || (p.lexer.Token == js_lexer.TIdentifier && p.lexer.Identifier == "as") {
				*p.lexer = save
			} else {
				isTypeOnly = true
			}
		}
		importedName := identAtom(p.source, p.arena, p.lexer.Identifier, true, p.lexer.Span())
		localSpan := p.lexer.Span()
		p.lexer.Next(js_lexer.ModeRegular)
		if p.lexer.Token == js_lexer.TIdentifier && p.lexer.Identifier == "as" {
			p.lexer.Next(js_lexer.ModeRegular)
			localSpan = p.lexer.Span()
			p.lexer.Next(js_lexer.ModeRegular)
		}
		specs = append(specs, js_ast.ImportSpecifier{
			ImportedName: importedName,
			Local:        js_ast.LocRef{Loc: localSpan, Id: span.InvalidNodeId},
			IsTypeOnly:   isTypeOnly,
		})
		if p.lexer.Token != js_lexer.TCloseBrace {
			p.expect(js_lexer.TComma, "\",\"")
		}
	}
	p.lexer.Next(js_lexer.ModeRegular) // "}"
	return specs
}

// parseExportStmt covers named/default/star re-exports and the
// declaration-attached forms ("export function f(){}", "export class
// C{}", "export const x = 1").
func (p *parser) parseExportStmt(start uint32) js_ast.Stmt {
	p.lexer.Next(js_lexer.ModeRegular)

	switch p.lexer.Token {
	case js_lexer.TDefault:
		p.lexer.Next(js_lexer.ModeRegular)
		switch p.lexer.Token {
		case js_lexer.TFunction:
			fnStmt := p.parseFunctionStmt(start, false, true)
			return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SExportDefault{Fn: fnStmt.Data.(*js_ast.SFunction)}}
		case js_lexer.TClass:
			classStmt := p.parseClassStmt(start, true)
			return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SExportDefault{Class: classStmt.Data.(*js_ast.SClass)}}
		default:
			value := p.parseExpr(js_ast.LComma)
			p.expectOrInsertSemicolon()
			return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SExportDefault{Value: value}}
		}

	case js_lexer.TAsterisk:
		p.lexer.Next(js_lexer.ModeRegular)
		var alias span.Atom
		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next(js_lexer.ModeRegular)
			alias = identAtom(p.source, p.arena, p.lexer.Identifier, true, p.lexer.Span())
			p.lexer.Next(js_lexer.ModeRegular)
		}
		if !p.lexer.IsContextualKeyword("from") {
			p.unexpected()
		}
		p.lexer.Next(js_lexer.ModeRegular)
		path := p.lexer.StringValue
		pathSpan := p.lexer.Span()
		p.expect(js_lexer.TStringLiteral, "a string literal")
		p.expectOrInsertSemicolon()
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SExportAll{Alias: alias, Path: path, PathSpan: pathSpan}}

	case js_lexer.TOpenBrace:
		p.lexer.Next(js_lexer.ModeRegular)
		var specs []js_ast.ExportSpecifier
		for p.lexer.Token != js_lexer.TCloseBrace {
			localSpan := p.lexer.Span()
			local := identAtom(p.source, p.arena, p.lexer.Identifier, true, localSpan)
			p.lexer.Next(js_lexer.ModeRegular)
			exportedSpan := localSpan
			exported := local
			if p.lexer.Token == js_lexer.TIdentifier && p.lexer.Identifier == "as" {
				p.lexer.Next(js_lexer.ModeRegular)
				exportedSpan = p.lexer.Span()
				exported = identAtom(p.source, p.arena, p.lexer.Identifier, true, exportedSpan)
				p.lexer.Next(js_lexer.ModeRegular)
			}
			specs = append(specs, js_ast.ExportSpecifier{
				Local: local, LocalSpan: localSpan, ExportedName: exported, ExportedSpan: exportedSpan,
			})
			if p.lexer.Token != js_lexer.TCloseBrace {
				p.expect(js_lexer.TComma, "\",\"")
			}
		}
		p.lexer.Next(js_lexer.ModeRegular)
		var path span.Atom
		var pathSpan span.Span
		if p.lexer.IsContextualKeyword("from") {
			p.lexer.Next(js_lexer.ModeRegular)
			path = p.lexer.StringValue
			pathSpan = p.lexer.Span()
			p.expect(js_lexer.TStringLiteral, "a string literal")
		}
		p.expectOrInsertSemicolon()
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SExportNamed{Specifiers: specs, Path: path, PathSpan: pathSpan}}

	case js_lexer.TEquals:
		p.lexer.Next(js_lexer.ModeRegular)
		value := p.parseExpr(js_ast.LComma)
		p.expectOrInsertSemicolon()
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SExportEquals{Value: value}}

	default:
		decl := p.parseStmt()
		switch d := decl.Data.(type) {
		case *js_ast.SVar:
			d.IsExported = true
		case *js_ast.SFunction:
			d.IsExported = true
		case *js_ast.SClass:
			d.IsExported = true
		}
		return js_ast.Stmt{Span: p.spanFrom(start), Data: decl.Data}
	}
}
