package js_parser

import (
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/js_lexer"
	"github.com/astforge/astforge/internal/span"
)

// parseStmtsUpTo repeatedly parses statements until the closing token
// is seen (or EOF). A statement that panics is caught here so a
// single malformed construct can't take the rest of the file with it;
// recoverToStatementBoundary resynchronizes before the loop continues.
func (p *parser) parseStmtsUpTo(closing js_lexer.T) []js_ast.Stmt {
	var stmts []js_ast.Stmt
	for p.lexer.Token != closing && p.lexer.Token != js_lexer.TEndOfFile {
		stmt, ok := p.parseStmtRecovering()
		if ok {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (p *parser) parseStmtRecovering() (stmt js_ast.Stmt, ok bool) {
	before := p.lexer.Loc().Start
	defer func() {
		if r := recover(); r != nil {
			if _, isPanic := r.(parserPanic); isPanic {
				p.recoverToStatementBoundary()
				if p.lexer.Token == js_lexer.TSemicolon {
					p.lexer.Next(js_lexer.ModeRegular)
				}
				ok = false
				return
			}
			panic(r)
		}
	}()
	if p.lexer.Loc().Start == before && p.lexer.Token == js_lexer.TEndOfFile {
		return js_ast.Stmt{}, false
	}
	stmt = p.parseStmt()
	return stmt, true
}

func (p *parser) parseStmt() js_ast.Stmt {
	start := p.atSpanStart()

	switch p.lexer.Token {
	case js_lexer.TOpenBrace:
		p.lexer.Next(js_lexer.ModeRegular)
		body := p.parseStmtsUpTo(js_lexer.TCloseBrace)
		p.expect(js_lexer.TCloseBrace, "\"}\"")
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SBlock{Body: body}}

	case js_lexer.TSemicolon:
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SEmpty{}}

	case js_lexer.TDebugger:
		p.lexer.Next(js_lexer.ModeRegular)
		p.expectOrInsertSemicolon()
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SDebugger{}}

	case js_lexer.TVar, js_lexer.TConst:
		return p.parseVarStmt(start, false)

	case js_lexer.TIdentifier:
		if p.lexer.Identifier == "let" {
			return p.parseLetOrIdentStmt(start)
		}
		if p.lexer.Identifier == "async" {
			return p.parseAsyncStmtOrExpr(start)
		}
		return p.parseExprOrLabelStmt(start)

	case js_lexer.TFunction:
		return p.parseFunctionStmt(start, false, false)

	case js_lexer.TClass:
		return p.parseClassStmt(start, false)

	case js_lexer.TIf:
		return p.parseIfStmt(start)

	case js_lexer.TFor:
		return p.parseForStmt(start)

	case js_lexer.TWhile:
		p.lexer.Next(js_lexer.ModeRegular)
		p.expect(js_lexer.TOpenParen, "\"(\"")
		test := p.parseExprOrCommaList()
		p.expect(js_lexer.TCloseParen, "\")\"")
		body := p.parseStmt()
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SWhile{Test: test, Body: body}}

	case js_lexer.TDo:
		p.lexer.Next(js_lexer.ModeRegular)
		body := p.parseStmt()
		p.expect(js_lexer.TWhile, "\"while\"")
		p.expect(js_lexer.TOpenParen, "\"(\"")
		test := p.parseExprOrCommaList()
		p.expect(js_lexer.TCloseParen, "\")\"")
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next(js_lexer.ModeRegular)
		}
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SDoWhile{Body: body, Test: test}}

	case js_lexer.TReturn:
		p.lexer.Next(js_lexer.ModeRegular)
		var value js_ast.Expr
		if !p.lexer.HasNewlineBefore && canStartExpr(p.lexer.Token) {
			value = p.parseExprOrCommaList()
		}
		p.expectOrInsertSemicolon()
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SReturn{Value: value}}

	case js_lexer.TBreak:
		p.lexer.Next(js_lexer.ModeRegular)
		label := p.parseOptionalLabel()
		p.expectOrInsertSemicolon()
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SBreak{Label: label}}

	case js_lexer.TContinue:
		p.lexer.Next(js_lexer.ModeRegular)
		label := p.parseOptionalLabel()
		p.expectOrInsertSemicolon()
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SContinue{Label: label}}

	case js_lexer.TThrow:
		p.lexer.Next(js_lexer.ModeRegular)
		if p.lexer.HasNewlineBefore {
			p.addErrorAt(p.lexer.Span(), "Illegal newline after \"throw\"")
			panic(parserPanic{})
		}
		value := p.parseExprOrCommaList()
		p.expectOrInsertSemicolon()
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SThrow{Value: value}}

	case js_lexer.TTry:
		return p.parseTryStmt(start)

	case js_lexer.TSwitch:
		return p.parseSwitchStmt(start)

	case js_lexer.TWith:
		p.lexer.Next(js_lexer.ModeRegular)
		p.expect(js_lexer.TOpenParen, "\"(\"")
		value := p.parseExprOrCommaList()
		p.expect(js_lexer.TCloseParen, "\")\"")
		body := p.parseStmt()
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SWith{Value: value, Body: body}}

	case js_lexer.TImport:
		save := *p.lexer
		p.lexer.Next(js_lexer.ModeRegular)
		isExpr := p.lexer.Token == js_lexer.TOpenParen || p.lexer.Token == js_lexer.TDot
		*p.lexer = save
		if isExpr {
			return p.parseExprOrLabelStmt(start)
		}
		return p.parseImportStmt(start)

	case js_lexer.TExport:
		return p.parseExportStmt(start)

	default:
		return p.parseExprOrLabelStmt(start)
	}
}

func (p *parser) parseOptionalLabel() span.Atom {
	if p.lexer.HasNewlineBefore || p.lexer.Token != js_lexer.TIdentifier {
		return span.Atom{}
	}
	name := identAtom(p.source, p.arena, p.lexer.Identifier, true, p.lexer.Span())
	p.lexer.Next(js_lexer.ModeRegular)
	return name
}

func (p *parser) parseExprOrLabelStmt(start uint32) js_ast.Stmt {
	if p.lexer.Token == js_lexer.TIdentifier {
		name := p.lexer.Identifier
		nameSpan := p.lexer.Span()
		// Speculatively treat "name:" as a label; anything else falls
		// through to a plain expression statement rooted at the same
		// identifier via parseExprOrCommaList below.
		save := *p.lexer
		p.lexer.Next(js_lexer.ModeRegular)
		if p.lexer.Token == js_lexer.TColon {
			p.lexer.Next(js_lexer.ModeRegular)
			body := p.parseStmt()
			atom := identAtom(p.source, p.arena, name, true, nameSpan)
			return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SLabel{Name: atom, LabelId: span.InvalidNodeId, Stmt: body}}
		}
		*p.lexer = save
	}
	value := p.parseExprOrCommaList()
	p.expectOrInsertSemicolon()
	return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SExpr{Value: value}}
}

func (p *parser) parseLetOrIdentStmt(start uint32) js_ast.Stmt {
	save := *p.lexer
	p.lexer.Next(js_lexer.ModeRegular)
	if p.lexer.Token == js_lexer.TIdentifier || p.lexer.Token == js_lexer.TOpenBracket || p.lexer.Token == js_lexer.TOpenBrace {
		*p.lexer = save
		return p.parseVarStmt(start, true)
	}
	*p.lexer = save
	return p.parseExprOrLabelStmt(start)
}

func (p *parser) parseAsyncStmtOrExpr(start uint32) js_ast.Stmt {
	save := *p.lexer
	p.lexer.Next(js_lexer.ModeRegular)
	if p.lexer.Token == js_lexer.TFunction && !p.lexer.HasNewlineBefore {
		return p.parseFunctionStmt(start, true, false)
	}
	*p.lexer = save
	return p.parseExprOrLabelStmt(start)
}

func (p *parser) parseVarStmt(start uint32, isLet bool) js_ast.Stmt {
	kind := js_ast.VarVar
	if isLet {
		kind = js_ast.VarLet
		p.lexer.Next(js_lexer.ModeRegular)
	} else if p.lexer.Token == js_lexer.TConst {
		kind = js_ast.VarConst
		p.lexer.Next(js_lexer.ModeRegular)
	} else {
		p.lexer.Next(js_lexer.ModeRegular)
	}

	var decls []js_ast.Declarator
	for {
		binding := p.parseBindingTarget()
		var value js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next(js_lexer.ModeRegular)
			value = p.parseExpr(js_ast.LComma)
		}
		decls = append(decls, js_ast.Declarator{Binding: binding, Value: value})
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next(js_lexer.ModeRegular)
	}
	p.expectOrInsertSemicolon()
	return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SVar{Kind: kind, Declarators: decls}}
}

// parseBindingTarget parses an identifier, array, or object
// destructuring pattern used wherever the grammar expects an
// assignment target: var/let/const declarators, function parameters,
// catch clause parameters.
func (p *parser) parseBindingTarget() js_ast.Binding {
	start := p.atSpanStart()
	switch p.lexer.Token {
	case js_lexer.TOpenBracket:
		p.lexer.Next(js_lexer.ModeRegular)
		var items []js_ast.ArrayBindingItem
		for p.lexer.Token != js_lexer.TCloseBracket {
			if p.lexer.Token == js_lexer.TComma {
				items = append(items, js_ast.ArrayBindingItem{})
				p.lexer.Next(js_lexer.ModeRegular)
				continue
			}
			isRest := false
			if p.lexer.Token == js_lexer.TDotDotDot {
				isRest = true
				p.lexer.Next(js_lexer.ModeRegular)
			}
			binding := p.parseBindingTarget()
			var def js_ast.Expr
			if p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next(js_lexer.ModeRegular)
				def = p.parseExpr(js_ast.LComma)
			}
			items = append(items, js_ast.ArrayBindingItem{Binding: binding, DefaultValue: def, IsSpread: isRest})
			if p.lexer.Token != js_lexer.TCloseBracket {
				p.expect(js_lexer.TComma, "\",\"")
			}
		}
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Binding{Span: p.spanFrom(start), Data: &js_ast.BArray{Items: items}}

	case js_lexer.TOpenBrace:
		p.lexer.Next(js_lexer.ModeRegular)
		var props []js_ast.ObjectBindingProperty
		for p.lexer.Token != js_lexer.TCloseBrace {
			if p.lexer.Token == js_lexer.TDotDotDot {
				p.lexer.Next(js_lexer.ModeRegular)
				binding := p.parseBindingTarget()
				props = append(props, js_ast.ObjectBindingProperty{Value: binding, IsSpread: true})
				if p.lexer.Token != js_lexer.TCloseBrace {
					p.expect(js_lexer.TComma, "\",\"")
				}
				continue
			}
			keySpan := p.lexer.Span()
			keyName := identAtom(p.source, p.arena, p.lexer.Identifier, true, keySpan)
			p.lexer.Next(js_lexer.ModeRegular)
			var value js_ast.Binding
			if p.lexer.Token == js_lexer.TColon {
				p.lexer.Next(js_lexer.ModeRegular)
				value = p.parseBindingTarget()
			} else {
				value = js_ast.Binding{Span: keySpan, Data: &js_ast.BIdentifier{Name: keyName}}
			}
			var def js_ast.Expr
			if p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next(js_lexer.ModeRegular)
				def = p.parseExpr(js_ast.LComma)
			}
			keyExpr := js_ast.Expr{Span: keySpan, Data: &js_ast.EString{Value: keyName}}
			props = append(props, js_ast.ObjectBindingProperty{Key: keyExpr, Value: value, DefaultValue: def})
			if p.lexer.Token != js_lexer.TCloseBrace {
				p.expect(js_lexer.TComma, "\",\"")
			}
		}
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Binding{Span: p.spanFrom(start), Data: &js_ast.BObject{Properties: props}}

	default:
		name := identAtom(p.source, p.arena, p.lexer.Identifier, true, p.lexer.Span())
		if !p.lexer.IsIdentifierOrKeyword() {
			p.unexpected()
		}
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Binding{Span: p.spanFrom(start), Data: &js_ast.BIdentifier{Name: name}}
	}
}

func (p *parser) parseFunctionStmt(start uint32, isAsync, isDefault bool) js_ast.Stmt {
	p.lexer.Next(js_lexer.ModeRegular)
	isGenerator := false
	if p.lexer.Token == js_lexer.TAsterisk {
		isGenerator = true
		p.lexer.Next(js_lexer.ModeRegular)
	}
	var name *js_ast.LocRef
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.LocRef{Loc: p.lexer.Span(), Id: span.InvalidNodeId}
		p.lexer.Next(js_lexer.ModeRegular)
	}
	fn := p.parseFnBody()
	fn.Name = name
	fn.IsAsync = isAsync
	fn.IsGenerator = isGenerator
	return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SFunction{Fn: fn, IsDefault: isDefault}}
}

func (p *parser) parseIfStmt(start uint32) js_ast.Stmt {
	p.lexer.Next(js_lexer.ModeRegular)
	p.expect(js_lexer.TOpenParen, "\"(\"")
	test := p.parseExprOrCommaList()
	p.expect(js_lexer.TCloseParen, "\")\"")
	yes := p.parseStmt()
	var no js_ast.Stmt
	if p.lexer.Token == js_lexer.TElse {
		p.lexer.Next(js_lexer.ModeRegular)
		no = p.parseStmt()
	}
	return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SIf{Test: test, Yes: yes, No: no}}
}

func (p *parser) parseForStmt(start uint32) js_ast.Stmt {
	p.lexer.Next(js_lexer.ModeRegular)
	p.expect(js_lexer.TOpenParen, "\"(\"")

	if p.lexer.Token == js_lexer.TSemicolon {
		p.lexer.Next(js_lexer.ModeRegular)
		return p.finishCStyleFor(start, js_ast.Stmt{})
	}

	declKind, isDecl, _ := p.peekForDeclKind()
	if isDecl {
		declStart := p.atSpanStart()
		p.lexer.Next(js_lexer.ModeRegular) // consume var/const/let keyword token
		binding := p.parseBindingTarget()

		if p.lexer.Token == js_lexer.TIn || p.lexer.Token == js_lexer.TIdentifier && p.lexer.Identifier == "of" {
			isOf := p.lexer.Token != js_lexer.TIn
			p.lexer.Next(js_lexer.ModeRegular)
			value := p.parseExpr(js_ast.LComma)
			p.expect(js_lexer.TCloseParen, "\")\"")
			body := p.parseStmt()
			if isOf {
				return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SForOf{
					BindingKind: js_ast.ForBindingVar, Kind: declKind, Binding: binding, Value: value, Body: body,
				}}
			}
			return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SForIn{
				BindingKind: js_ast.ForBindingVar, Kind: declKind, Binding: binding, Value: value, Body: body,
			}}
		}

		var firstValue js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next(js_lexer.ModeRegular)
			firstValue = p.parseExpr(js_ast.LComma)
		}
		decls := []js_ast.Declarator{{Binding: binding, Value: firstValue}}
		for p.lexer.Token == js_lexer.TComma {
			p.lexer.Next(js_lexer.ModeRegular)
			b := p.parseBindingTarget()
			var v js_ast.Expr
			if p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next(js_lexer.ModeRegular)
				v = p.parseExpr(js_ast.LComma)
			}
			decls = append(decls, js_ast.Declarator{Binding: b, Value: v})
		}
		init := js_ast.Stmt{Span: p.spanFrom(declStart), Data: &js_ast.SVar{Kind: declKind, Declarators: decls}}
		p.expect(js_lexer.TSemicolon, "\";\"")
		return p.finishCStyleFor(start, init)
	}

	oldAllowIn := p.allowIn
	p.allowIn = false
	first := p.parseExprOrCommaList()
	p.allowIn = oldAllowIn

	if p.lexer.Token == js_lexer.TIn || (p.lexer.Token == js_lexer.TIdentifier && p.lexer.Identifier == "of") {
		isOf := p.lexer.Token != js_lexer.TIn
		p.lexer.Next(js_lexer.ModeRegular)
		value := p.parseExpr(js_ast.LComma)
		p.expect(js_lexer.TCloseParen, "\")\"")
		body := p.parseStmt()
		if isOf {
			return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SForOf{Target: first, Value: value, Body: body}}
		}
		return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SForIn{Target: first, Value: value, Body: body}}
	}

	p.expect(js_lexer.TSemicolon, "\";\"")
	init := js_ast.Stmt{Span: first.Span, Data: &js_ast.SExpr{Value: first}}
	return p.finishCStyleFor(start, init)
}

func (p *parser) peekForDeclKind() (kind js_ast.VarKind, isDecl bool, isLet bool) {
	switch p.lexer.Token {
	case js_lexer.TVar:
		return js_ast.VarVar, true, false
	case js_lexer.TConst:
		return js_ast.VarConst, true, false
	case js_lexer.TIdentifier:
		if p.lexer.Identifier == "let" {
			return js_ast.VarLet, true, true
		}
	}
	return js_ast.VarVar, false, false
}

func (p *parser) finishCStyleFor(start uint32, init js_ast.Stmt) js_ast.Stmt {
	var test js_ast.Expr
	if p.lexer.Token != js_lexer.TSemicolon {
		test = p.parseExprOrCommaList()
	}
	p.expect(js_lexer.TSemicolon, "\";\"")
	var update js_ast.Expr
	if p.lexer.Token != js_lexer.TCloseParen {
		update = p.parseExprOrCommaList()
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	body := p.parseStmt()
	return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SFor{Init: init, Test: test, Update: update, Body: body}}
}

func (p *parser) parseTryStmt(start uint32) js_ast.Stmt {
	p.lexer.Next(js_lexer.ModeRegular)
	p.expect(js_lexer.TOpenBrace, "\"{\"")
	body := p.parseStmtsUpTo(js_lexer.TCloseBrace)
	p.expect(js_lexer.TCloseBrace, "\"}\"")

	var catch *js_ast.CatchClause
	if p.lexer.Token == js_lexer.TCatch {
		p.lexer.Next(js_lexer.ModeRegular)
		var binding js_ast.Binding
		if p.lexer.Token == js_lexer.TOpenParen {
			p.lexer.Next(js_lexer.ModeRegular)
			binding = p.parseBindingTarget()
			p.expect(js_lexer.TCloseParen, "\")\"")
		}
		p.expect(js_lexer.TOpenBrace, "\"{\"")
		catchBody := p.parseStmtsUpTo(js_lexer.TCloseBrace)
		p.expect(js_lexer.TCloseBrace, "\"}\"")
		catch = &js_ast.CatchClause{Binding: binding, Body: catchBody}
	}

	var finally []js_ast.Stmt
	if p.lexer.Token == js_lexer.TFinally {
		p.lexer.Next(js_lexer.ModeRegular)
		p.expect(js_lexer.TOpenBrace, "\"{\"")
		finally = p.parseStmtsUpTo(js_lexer.TCloseBrace)
		p.expect(js_lexer.TCloseBrace, "\"}\"")
	}

	return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.STry{Body: body, Catch: catch, Finally: finally}}
}

func (p *parser) parseSwitchStmt(start uint32) js_ast.Stmt {
	p.lexer.Next(js_lexer.ModeRegular)
	p.expect(js_lexer.TOpenParen, "\"(\"")
	value := p.parseExprOrCommaList()
	p.expect(js_lexer.TCloseParen, "\")\"")
	p.expect(js_lexer.TOpenBrace, "\"{\"")

	var cases []js_ast.SwitchCase
	for p.lexer.Token != js_lexer.TCloseBrace {
		var test js_ast.Expr
		if p.lexer.Token == js_lexer.TCase {
			p.lexer.Next(js_lexer.ModeRegular)
			test = p.parseExpr(js_ast.LComma)
		} else {
			p.expect(js_lexer.TDefault, "\"case\" or \"default\"")
		}
		p.expect(js_lexer.TColon, "\":\"")
		var body []js_ast.Stmt
		for p.lexer.Token != js_lexer.TCase && p.lexer.Token != js_lexer.TDefault && p.lexer.Token != js_lexer.TCloseBrace {
			stmt, ok := p.parseStmtRecovering()
			if ok {
				body = append(body, stmt)
			}
		}
		cases = append(cases, js_ast.SwitchCase{Test: test, Body: body})
	}
	p.expect(js_lexer.TCloseBrace, "\"}\"")
	return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SSwitch{Value: value, Cases: cases}}
}

func (p *parser) parseClassStmt(start uint32, isDefault bool) js_ast.Stmt {
	class := p.parseClassBody(start)
	return js_ast.Stmt{Span: p.spanFrom(start), Data: &js_ast.SClass{Class: class, IsDefault: isDefault}}
}

func (p *parser) parseClassExpr(start uint32) js_ast.Expr {
	class := p.parseClassBody(start)
	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EClass{Class: class}}
}

// parseClassBody is deliberately narrow: it reads an optional name, an
// optional extends clause and the member list. Member modifiers
// (public/private/readonly/abstract), decorators and type parameters
// are not parsed here.
func (p *parser) parseClassBody(start uint32) js_ast.Class {
	p.lexer.Next(js_lexer.ModeRegular) // "class"
	var name *js_ast.LocRef
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.LocRef{Loc: p.lexer.Span(), Id: span.InvalidNodeId}
		p.lexer.Next(js_lexer.ModeRegular)
	}
	var extends js_ast.Expr
	if p.lexer.Token == js_lexer.TExtends {
		p.lexer.Next(js_lexer.ModeRegular)
		extends = p.parseExpr(js_ast.LCall)
	}
	p.expect(js_lexer.TOpenBrace, "\"{\"")
	var members []js_ast.ClassMember
	for p.lexer.Token != js_lexer.TCloseBrace {
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next(js_lexer.ModeRegular)
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.expect(js_lexer.TCloseBrace, "\"}\"")
	return js_ast.Class{Name: name, Extends: extends, Members: members}
}

func (p *parser) parseClassMember() js_ast.ClassMember {
	memberStart := p.atSpanStart()
	isStatic := false
	if p.lexer.Token == js_lexer.TIdentifier && p.lexer.Identifier == "static" {
		save := *p.lexer
		p.lexer.Next(js_lexer.ModeRegular)
		if p.lexer.Token != js_lexer.TOpenParen && p.lexer.Token != js_lexer.TEquals {
			isStatic = true
		} else {
			*p.lexer = save
		}
	}
	if isStatic && p.lexer.Token == js_lexer.TOpenBrace {
		p.lexer.Next(js_lexer.ModeRegular)
		body := p.parseStmtsUpTo(js_lexer.TCloseBrace)
		p.expect(js_lexer.TCloseBrace, "\"}\"")
		return js_ast.ClassMember{Span: p.spanFrom(memberStart), StaticBlock: body, IsStaticBlock: true}
	}
	isAsync := false
	if p.lexer.Token == js_lexer.TIdentifier && p.lexer.Identifier == "async" {
		save := *p.lexer
		p.lexer.Next(js_lexer.ModeRegular)
		if p.lexer.Token != js_lexer.TOpenParen && p.lexer.Token != js_lexer.TEquals {
			isAsync = true
		} else {
			*p.lexer = save
		}
	}
	kind := js_ast.PropertyField
	if (p.lexer.Token == js_lexer.TIdentifier) && (p.lexer.Identifier == "get" || p.lexer.Identifier == "set") {
		save := *p.lexer
		isGet := p.lexer.Identifier == "get"
		p.lexer.Next(js_lexer.ModeRegular)
		if p.lexer.Token != js_lexer.TOpenParen && p.lexer.Token != js_lexer.TEquals && p.lexer.Token != js_lexer.TSemicolon {
			if isGet {
				kind = js_ast.PropertyGet
			} else {
				kind = js_ast.PropertySet
			}
		} else {
			*p.lexer = save
		}
	}
	isGenerator := false
	if p.lexer.Token == js_lexer.TAsterisk {
		isGenerator = true
		p.lexer.Next(js_lexer.ModeRegular)
	}

	keySpan := p.lexer.Span()
	var key js_ast.Expr
	isComputed := false
	switch p.lexer.Token {
	case js_lexer.TOpenBracket:
		isComputed = true
		p.lexer.Next(js_lexer.ModeRegular)
		key = p.parseExpr(js_ast.LComma)
		p.expect(js_lexer.TCloseBracket, "\"]\"")
	case js_lexer.TPrivateIdentifier:
		name := identAtom(p.source, p.arena, p.lexer.Identifier, true, keySpan)
		key = js_ast.Expr{Span: keySpan, Data: &js_ast.EPrivateIdentifier{Name: name}}
		p.lexer.Next(js_lexer.ModeRegular)
	case js_lexer.TStringLiteral:
		key = js_ast.Expr{Span: keySpan, Data: &js_ast.EString{Value: p.lexer.StringValue}}
		p.lexer.Next(js_lexer.ModeRegular)
	default:
		name := identAtom(p.source, p.arena, p.lexer.Identifier, true, keySpan)
		key = js_ast.Expr{Span: keySpan, Data: &js_ast.EString{Value: name}}
		p.lexer.Next(js_lexer.ModeRegular)
	}

	if p.lexer.Token == js_lexer.TOpenParen {
		fn := p.parseFnBody()
		fn.IsAsync = isAsync
		fn.IsGenerator = isGenerator
		if kind == js_ast.PropertyField {
			kind = js_ast.PropertyMethod
		}
		return js_ast.ClassMember{Span: p.spanFrom(memberStart), Key: key, Fn: &fn, Kind: kind, IsStatic: isStatic, IsComputed: isComputed}
	}

	var value js_ast.Expr
	if p.lexer.Token == js_lexer.TEquals {
		p.lexer.Next(js_lexer.ModeRegular)
		value = p.parseExpr(js_ast.LComma)
	}
	p.expectOrInsertSemicolon()
	return js_ast.ClassMember{Span: p.spanFrom(memberStart), Key: key, Value: value, Kind: js_ast.PropertyField, IsStatic: isStatic, IsComputed: isComputed}
}
