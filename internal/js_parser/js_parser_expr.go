package js_parser

import (
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/js_lexer"
	"github.com/astforge/astforge/internal/span"
)

type binOpInfo struct {
	op    js_ast.OpCode
	level js_ast.L
}

// binOpTable maps a binary/assignment/logical operator token to its
// opcode and precedence level, the table the precedence-climbing loop
// in parseSuffix consults on every iteration.
var binOpTable = map[js_lexer.T]binOpInfo{
	js_lexer.TBarBar:                     {js_ast.BinOpLogicalOr, js_ast.LLogicalOr},
	js_lexer.TAmpersandAmpersand:         {js_ast.BinOpLogicalAnd, js_ast.LLogicalAnd},
	js_lexer.TQuestionQuestion:           {js_ast.BinOpNullishCoalescing, js_ast.LNullishCoalescing},
	js_lexer.TBar:                        {js_ast.BinOpBitwiseOr, js_ast.LBitwiseOr},
	js_lexer.TCaret:                      {js_ast.BinOpBitwiseXor, js_ast.LBitwiseXor},
	js_lexer.TAmpersand:                  {js_ast.BinOpBitwiseAnd, js_ast.LBitwiseAnd},
	js_lexer.TEqualsEquals:               {js_ast.BinOpLooseEq, js_ast.LEquals},
	js_lexer.TExclamationEquals:          {js_ast.BinOpLooseNe, js_ast.LEquals},
	js_lexer.TEqualsEqualsEquals:         {js_ast.BinOpStrictEq, js_ast.LEquals},
	js_lexer.TExclamationEqualsEquals:    {js_ast.BinOpStrictNe, js_ast.LEquals},
	js_lexer.TLessThan:                   {js_ast.BinOpLt, js_ast.LCompare},
	js_lexer.TLessThanEquals:             {js_ast.BinOpLe, js_ast.LCompare},
	js_lexer.TGreaterThan:                {js_ast.BinOpGt, js_ast.LCompare},
	js_lexer.TGreaterThanEquals:          {js_ast.BinOpGe, js_ast.LCompare},
	js_lexer.TIn:                         {js_ast.BinOpIn, js_ast.LCompare},
	js_lexer.TInstanceof:                 {js_ast.BinOpInstanceof, js_ast.LCompare},
	js_lexer.TLessThanLessThan:           {js_ast.BinOpShl, js_ast.LShift},
	js_lexer.TGreaterThanGreaterThan:     {js_ast.BinOpShr, js_ast.LShift},
	js_lexer.TGreaterThanGreaterThanGreaterThan: {js_ast.BinOpUShr, js_ast.LShift},
	js_lexer.TPlus:                       {js_ast.BinOpAdd, js_ast.LAdd},
	js_lexer.TMinus:                      {js_ast.BinOpSub, js_ast.LAdd},
	js_lexer.TAsterisk:                   {js_ast.BinOpMul, js_ast.LMultiply},
	js_lexer.TSlash:                      {js_ast.BinOpDiv, js_ast.LMultiply},
	js_lexer.TPercent:                    {js_ast.BinOpRem, js_ast.LMultiply},
	js_lexer.TAsteriskAsterisk:           {js_ast.BinOpPow, js_ast.LExponentiation},

	js_lexer.TEquals:                        {js_ast.BinOpAssign, js_ast.LAssign},
	js_lexer.TPlusEquals:                    {js_ast.BinOpAddAssign, js_ast.LAssign},
	js_lexer.TMinusEquals:                   {js_ast.BinOpSubAssign, js_ast.LAssign},
	js_lexer.TAsteriskEquals:                {js_ast.BinOpMulAssign, js_ast.LAssign},
	js_lexer.TSlashEquals:                   {js_ast.BinOpDivAssign, js_ast.LAssign},
	js_lexer.TPercentEquals:                 {js_ast.BinOpRemAssign, js_ast.LAssign},
	js_lexer.TAsteriskAsteriskEquals:        {js_ast.BinOpPowAssign, js_ast.LAssign},
	js_lexer.TLessThanLessThanEquals:        {js_ast.BinOpShlAssign, js_ast.LAssign},
	js_lexer.TGreaterThanGreaterThanEquals:  {js_ast.BinOpShrAssign, js_ast.LAssign},
	js_lexer.TGreaterThanGreaterThanGreaterThanEquals: {js_ast.BinOpUShrAssign, js_ast.LAssign},
	js_lexer.TAmpersandEquals:               {js_ast.BinOpBitwiseAndAssign, js_ast.LAssign},
	js_lexer.TBarEquals:                     {js_ast.BinOpBitwiseOrAssign, js_ast.LAssign},
	js_lexer.TCaretEquals:                   {js_ast.BinOpBitwiseXorAssign, js_ast.LAssign},
	js_lexer.TQuestionQuestionEquals:        {js_ast.BinOpNullishCoalescingAssign, js_ast.LAssign},
	js_lexer.TBarBarEquals:                  {js_ast.BinOpLogicalOrAssign, js_ast.LAssign},
	js_lexer.TAmpersandAmpersandEquals:      {js_ast.BinOpLogicalAndAssign, js_ast.LAssign},
}

func (p *parser) parseExpr(level js_ast.L) js_ast.Expr {
	start := p.atSpanStart()
	expr := p.parsePrefix(level)
	return p.parseSuffix(start, expr, level)
}

// parseExprOrCommaList wraps parseExpr(LComma) and folds any
// top-level comma sequence into an ESequence.
func (p *parser) parseExprOrCommaList() js_ast.Expr {
	start := p.atSpanStart()
	first := p.parseExpr(js_ast.LComma)
	if p.lexer.Token != js_lexer.TComma {
		return first
	}
	exprs := []js_ast.Expr{first}
	for p.lexer.Token == js_lexer.TComma {
		p.lexer.Next(js_lexer.ModeRegular)
		exprs = append(exprs, p.parseExpr(js_ast.LComma))
	}
	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ESequence{Exprs: exprs}}
}

func (p *parser) parsePrefix(level js_ast.L) js_ast.Expr {
	start := p.atSpanStart()
	tok := p.lexer.Token

	switch tok {
	case js_lexer.TNumericLiteral:
		v := p.lexer.Number
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ENumber{Value: v}}

	case js_lexer.TBigIntegerLiteral:
		v := p.lexer.Identifier
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EBigInt{Value: v}}

	case js_lexer.TStringLiteral:
		v := p.lexer.StringValue
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EString{Value: v}}

	case js_lexer.TNoSubstitutionTemplateLiteral:
		return p.parseTemplate(start, js_ast.Expr{})

	case js_lexer.TTemplateHead:
		return p.parseTemplate(start, js_ast.Expr{})

	case js_lexer.TTrue:
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EBoolean{Value: true}}

	case js_lexer.TFalse:
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EBoolean{Value: false}}

	case js_lexer.TNull:
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ENull{}}

	case js_lexer.TThis:
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EThis{}}

	case js_lexer.TSuper:
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ESuper{}}

	case js_lexer.TPrivateIdentifier:
		name := identAtom(p.source, p.arena, p.lexer.Identifier, true, p.lexer.Span())
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EPrivateIdentifier{Name: name}}

	case js_lexer.TSlash, js_lexer.TSlashEquals:
		p.lexer.ScanRegExp()
		regexSpan := p.lexer.Span()
		raw := identAtom(p.source, p.arena, "", true, regexSpan)
		var pattern *js_ast.RegexpPattern
		if p.opts.ParseRegularExpression {
			pattern = p.parseRegExpLiteral(raw.String(), regexSpan.Start)
		}
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ERegExp{Value: raw, Pattern: pattern}}

	case js_lexer.TIdentifier:
		return p.parseIdentifierExprOrArrow(start)

	case js_lexer.TFunction:
		return p.parseFunctionExpr(start, false)

	case js_lexer.TClass:
		return p.parseClassExpr(start)

	case js_lexer.TOpenParen:
		return p.parseParenExprOrArrow(start)

	case js_lexer.TOpenBracket:
		return p.parseArrayLiteral(start)

	case js_lexer.TOpenBrace:
		return p.parseObjectLiteral(start)

	case js_lexer.TImport:
		return p.parseImportExpr(start)

	case js_lexer.TNew:
		return p.parseNewExpr(start)

	case js_lexer.TExclamation, js_lexer.TTilde, js_lexer.TPlus, js_lexer.TMinus,
		js_lexer.TTypeof, js_lexer.TVoid, js_lexer.TDelete:
		op := unaryOpFor(tok)
		p.lexer.Next(js_lexer.ModeRegular)
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EUnary{Op: op, Value: value}}

	case js_lexer.TPlusPlus, js_lexer.TMinusMinus:
		op := js_ast.UnOpPreInc
		if tok == js_lexer.TMinusMinus {
			op = js_ast.UnOpPreDec
		}
		p.lexer.Next(js_lexer.ModeRegular)
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EUpdate{Op: op, Value: value, IsPrefix: true}}

	case js_lexer.TDotDotDot:
		p.lexer.Next(js_lexer.ModeRegular)
		value := p.parseExpr(js_ast.LComma)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ESpread{Value: value}}

	case js_lexer.TYield:
		p.lexer.Next(js_lexer.ModeRegular)
		isDelegate := false
		if p.lexer.Token == js_lexer.TAsterisk {
			isDelegate = true
			p.lexer.Next(js_lexer.ModeRegular)
		}
		var value js_ast.Expr
		if !p.lexer.HasNewlineBefore && canStartExpr(p.lexer.Token) {
			value = p.parseExpr(js_ast.LYield)
		}
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EYield{Value: value, IsDelegate: isDelegate}}

	case js_lexer.TAwait:
		p.lexer.Next(js_lexer.ModeRegular)
		value := p.parseExpr(js_ast.LPrefix)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EAwait{Value: value}}

	case js_lexer.TLessThan:
		if p.opts.SourceType.IsJSX() {
			return p.parseJSXElement(start, js_lexer.ModeRegular)
		}
		p.unexpected()

	default:
		if p.lexer.IsIdentifierOrKeyword() {
			return p.parseIdentifierExprOrArrow(start)
		}
	}

	p.unexpected()
	return js_ast.Expr{}
}

func canStartExpr(t js_lexer.T) bool {
	switch t {
	case js_lexer.TSemicolon, js_lexer.TCloseBrace, js_lexer.TCloseParen, js_lexer.TCloseBracket,
		js_lexer.TComma, js_lexer.TColon, js_lexer.TEndOfFile:
		return false
	}
	return true
}

func unaryOpFor(t js_lexer.T) js_ast.OpCode {
	switch t {
	case js_lexer.TPlus:
		return js_ast.UnOpPos
	case js_lexer.TMinus:
		return js_ast.UnOpNeg
	case js_lexer.TTilde:
		return js_ast.UnOpCpl
	case js_lexer.TExclamation:
		return js_ast.UnOpNot
	case js_lexer.TTypeof:
		return js_ast.UnOpTypeof
	case js_lexer.TVoid:
		return js_ast.UnOpVoid
	default:
		return js_ast.UnOpDelete
	}
}

func (p *parser) parseIdentifierExprOrArrow(start uint32) js_ast.Expr {
	name := identAtom(p.source, p.arena, p.lexer.Identifier, true, p.lexer.Span())
	p.lexer.Next(js_lexer.ModeRegular)

	if p.lexer.Token == js_lexer.TEqualsGreaterThan && !p.lexer.HasNewlineBefore {
		arg := js_ast.Arg{Binding: js_ast.Binding{
			Span: span.Span{Start: start, End: uint32(p.lexer.Loc().Start)},
			Data: &js_ast.BIdentifier{Name: name},
		}}
		return p.parseArrowBody(start, []js_ast.Arg{arg}, false)
	}

	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EIdentifier{Name: name, Id: span.InvalidNodeId}}
}

func (p *parser) parseTemplate(start uint32, tag js_ast.Expr) js_ast.Expr {
	head := identAtom(p.source, p.arena, "", true, span.Span{})
	headSpan := p.lexer.Span()
	if p.lexer.Token == js_lexer.TNoSubstitutionTemplateLiteral {
		head = p.lexer.StringValue
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ETemplate{Tag: tag, Head: head, HeadSpan: headSpan}}
	}

	head = p.lexer.StringValue
	p.lexer.Next(js_lexer.ModeRegular)
	var parts []js_ast.TemplatePart
	for {
		value := p.parseExprOrCommaList()
		if p.lexer.Token != js_lexer.TCloseBrace {
			p.addErrorAt(p.lexer.Span(), "Expected \"}\" in template literal")
			panic(parserPanic{})
		}
		p.lexer.ScanTemplateContinuation()
		tail := p.lexer.StringValue
		tailSpan := p.lexer.Span()
		isTail := p.lexer.Token == js_lexer.TTemplateTail
		p.lexer.Next(js_lexer.ModeRegular)
		parts = append(parts, js_ast.TemplatePart{Value: value, Tail: tail, TailSpan: tailSpan})
		if isTail {
			break
		}
	}
	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ETemplate{Tag: tag, Head: head, HeadSpan: headSpan, Parts: parts}}
}

func (p *parser) parseArrayLiteral(start uint32) js_ast.Expr {
	p.lexer.Next(js_lexer.ModeRegular)
	var items []js_ast.Expr
	hasTrailingHole := false
	for p.lexer.Token != js_lexer.TCloseBracket {
		if p.lexer.Token == js_lexer.TComma {
			items = append(items, js_ast.Expr{Data: &js_ast.EMissing{}})
			p.lexer.Next(js_lexer.ModeRegular)
			hasTrailingHole = true
			continue
		}
		hasTrailingHole = false
		items = append(items, p.parseExpr(js_ast.LComma))
		if p.lexer.Token != js_lexer.TCloseBracket {
			p.expect(js_lexer.TComma, "\",\"")
		}
	}
	p.lexer.Next(js_lexer.ModeRegular)
	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EArray{Items: items, HasTrailingHole: hasTrailingHole}}
}

func (p *parser) parseObjectLiteral(start uint32) js_ast.Expr {
	p.lexer.Next(js_lexer.ModeRegular)
	var props []js_ast.Property
	for p.lexer.Token != js_lexer.TCloseBrace {
		if p.lexer.Token == js_lexer.TDotDotDot {
			p.lexer.Next(js_lexer.ModeRegular)
			value := p.parseExpr(js_ast.LComma)
			props = append(props, js_ast.Property{Kind: js_ast.PropertySpread, Value: value})
		} else {
			props = append(props, p.parseObjectProperty())
		}
		if p.lexer.Token != js_lexer.TCloseBrace {
			p.expect(js_lexer.TComma, "\",\"")
		}
	}
	p.lexer.Next(js_lexer.ModeRegular)
	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EObject{Properties: props}}
}

func (p *parser) parseObjectProperty() js_ast.Property {
	keyStart := p.atSpanStart()
	isComputed := false
	var key js_ast.Expr
	if p.lexer.Token == js_lexer.TOpenBracket {
		isComputed = true
		p.lexer.Next(js_lexer.ModeRegular)
		key = p.parseExpr(js_ast.LComma)
		p.expect(js_lexer.TCloseBracket, "\"]\"")
	} else if p.lexer.Token == js_lexer.TStringLiteral {
		key = js_ast.Expr{Span: p.lexer.Span(), Data: &js_ast.EString{Value: p.lexer.StringValue}}
		p.lexer.Next(js_lexer.ModeRegular)
	} else if p.lexer.Token == js_lexer.TNumericLiteral {
		key = js_ast.Expr{Span: p.lexer.Span(), Data: &js_ast.ENumber{Value: p.lexer.Number}}
		p.lexer.Next(js_lexer.ModeRegular)
	} else {
		name := identAtom(p.source, p.arena, p.lexer.Identifier, true, p.lexer.Span())
		key = js_ast.Expr{Span: p.lexer.Span(), Data: &js_ast.EString{Value: name}}
		p.lexer.Next(js_lexer.ModeRegular)
	}

	if p.lexer.Token == js_lexer.TOpenParen {
		fn := p.parseFnBody()
		value := js_ast.Expr{Span: p.spanFrom(keyStart), Data: &js_ast.EFunction{Fn: fn}}
		return js_ast.Property{Kind: js_ast.PropertyMethod, Key: key, Value: value, IsComputed: isComputed}
	}

	if p.lexer.Token == js_lexer.TColon {
		p.lexer.Next(js_lexer.ModeRegular)
		value := p.parseExpr(js_ast.LComma)
		return js_ast.Property{Kind: js_ast.PropertyField, Key: key, Value: value, IsComputed: isComputed}
	}

	// Shorthand "{a}" or "{a = 1}" in a destructuring-looking position.
	var init js_ast.Expr
	if p.lexer.Token == js_lexer.TEquals {
		p.lexer.Next(js_lexer.ModeRegular)
		init = p.parseExpr(js_ast.LComma)
	}
	return js_ast.Property{Kind: js_ast.PropertyField, Key: key, Value: key, Initializer: init, IsComputed: isComputed, IsShorthand: true}
}

// parseParenExprOrArrow parses a "(...)" group, then checks for a
// trailing "=>" to decide retroactively whether it was an arrow
// function's parameter list. Only identifier, rest and default-valued
// identifier parameters are supported as arrow params; any other item
// in a group followed by "=>" is reported as an invalid arrow function
// parameter.
func (p *parser) parseParenExprOrArrow(start uint32) js_ast.Expr {
	p.lexer.Next(js_lexer.ModeRegular)

	oldAllowIn := p.allowIn
	p.allowIn = true

	var items []js_ast.Expr
	for p.lexer.Token != js_lexer.TCloseParen {
		if p.lexer.Token == js_lexer.TDotDotDot {
			itemStart := p.atSpanStart()
			p.lexer.Next(js_lexer.ModeRegular)
			value := p.parseExpr(js_ast.LComma)
			items = append(items, js_ast.Expr{Span: p.spanFrom(itemStart), Data: &js_ast.ESpread{Value: value}})
		} else {
			items = append(items, p.parseExpr(js_ast.LComma))
		}
		if p.lexer.Token != js_lexer.TCloseParen {
			p.expect(js_lexer.TComma, "\",\"")
		}
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	p.allowIn = oldAllowIn

	if p.lexer.Token == js_lexer.TEqualsGreaterThan && !p.lexer.HasNewlineBefore {
		args := make([]js_ast.Arg, 0, len(items))
		for _, item := range items {
			args = append(args, p.exprToArg(item))
		}
		return p.parseArrowBody(start, args, false)
	}

	if len(items) == 0 {
		p.addErrorAt(p.spanFrom(start), "Unexpected \"()\"")
		panic(parserPanic{})
	}
	if len(items) == 1 {
		return items[0]
	}
	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ESequence{Exprs: items}}
}

// exprToArg converts an expression parsed inside a parenthesized
// group into an arrow-function parameter, a late-binding trick that
// avoids a separate grammar for "looks like an expression until we
// see the arrow".
func (p *parser) exprToArg(e js_ast.Expr) js_ast.Arg {
	switch d := e.Data.(type) {
	case *js_ast.EIdentifier:
		return js_ast.Arg{Binding: js_ast.Binding{Span: e.Span, Data: &js_ast.BIdentifier{Name: d.Name}}}
	case *js_ast.ESpread:
		inner := p.exprToArg(d.Value)
		inner.IsRest = true
		return inner
	case *js_ast.EAssign:
		arg := p.exprToArg(d.Target)
		arg.DefaultValue = d.Value
		return arg
	default:
		p.addErrorAt(e.Span, "Invalid arrow function parameter")
		panic(parserPanic{})
	}
}

func (p *parser) parseArrowBody(start uint32, args []js_ast.Arg, isAsync bool) js_ast.Expr {
	p.expect(js_lexer.TEqualsGreaterThan, "\"=>\"")
	fn := js_ast.Fn{Args: args, IsAsync: isAsync}
	preferExpr := false
	if p.lexer.Token == js_lexer.TOpenBrace {
		fn.Body = p.parseFnBlockBody()
	} else {
		preferExpr = true
		value := p.parseExpr(js_ast.LComma)
		fn.Body = []js_ast.Stmt{{Span: value.Span, Data: &js_ast.SReturn{Value: value}}}
	}
	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EArrow{Fn: fn, PreferExpr: preferExpr}}
}

func (p *parser) parseFunctionExpr(start uint32, isAsync bool) js_ast.Expr {
	p.lexer.Next(js_lexer.ModeRegular)
	isGenerator := false
	if p.lexer.Token == js_lexer.TAsterisk {
		isGenerator = true
		p.lexer.Next(js_lexer.ModeRegular)
	}
	var name *js_ast.LocRef
	if p.lexer.Token == js_lexer.TIdentifier {
		nameAtom := identAtom(p.source, p.arena, p.lexer.Identifier, true, p.lexer.Span())
		name = &js_ast.LocRef{Loc: p.lexer.Span(), Id: span.InvalidNodeId}
		_ = nameAtom
		p.lexer.Next(js_lexer.ModeRegular)
	}
	fn := p.parseFnBody()
	fn.Name = name
	fn.IsAsync = isAsync
	fn.IsGenerator = isGenerator
	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EFunction{Fn: fn}}
}

// parseFnBody parses "(params) { body }" or "(params) { }" for a
// method/function whose keyword and name (if any) the caller already
// consumed.
func (p *parser) parseFnBody() js_ast.Fn {
	args := p.parseFnArgs()
	body := p.parseFnBlockBody()
	return js_ast.Fn{Args: args, Body: body}
}

func (p *parser) parseFnArgs() []js_ast.Arg {
	p.expect(js_lexer.TOpenParen, "\"(\"")
	var args []js_ast.Arg
	for p.lexer.Token != js_lexer.TCloseParen {
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
		args = append(args, js_ast.Arg{Binding: binding, DefaultValue: def, IsRest: isRest})
		if p.lexer.Token != js_lexer.TCloseParen {
			p.expect(js_lexer.TComma, "\",\"")
		}
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	return args
}

func (p *parser) parseFnBlockBody() []js_ast.Stmt {
	p.expect(js_lexer.TOpenBrace, "\"{\"")
	stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace)
	p.expect(js_lexer.TCloseBrace, "\"}\"")
	return stmts
}

func (p *parser) parseNewExpr(start uint32) js_ast.Expr {
	p.lexer.Next(js_lexer.ModeRegular)
	if p.lexer.Token == js_lexer.TDot {
		p.lexer.Next(js_lexer.ModeRegular)
		if !p.lexer.IsContextualKeyword("target") {
			p.unexpected()
		}
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ENewTarget{}}
	}
	target := p.parsePrefix(js_ast.LMember)
	target = p.parseSuffix(start, target, js_ast.LCall)
	var args []js_ast.Expr
	if p.lexer.Token == js_lexer.TOpenParen {
		args = p.parseCallArgs()
	}
	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ENew{Target: target, Args: args}}
}

func (p *parser) parseImportExpr(start uint32) js_ast.Expr {
	p.lexer.Next(js_lexer.ModeRegular)
	if p.lexer.Token == js_lexer.TDot {
		p.lexer.Next(js_lexer.ModeRegular)
		if !p.lexer.IsContextualKeyword("meta") {
			p.unexpected()
		}
		p.lexer.Next(js_lexer.ModeRegular)
		return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EImportMeta{}}
	}
	p.expect(js_lexer.TOpenParen, "\"(\"")
	arg := p.parseExpr(js_ast.LComma)
	var options js_ast.Expr
	if p.lexer.Token == js_lexer.TComma {
		p.lexer.Next(js_lexer.ModeRegular)
		if p.lexer.Token != js_lexer.TCloseParen {
			options = p.parseExpr(js_ast.LComma)
		}
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	return js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EImportCall{Arg: arg, Options: options}}
}

func (p *parser) parseCallArgs() []js_ast.Expr {
	p.expect(js_lexer.TOpenParen, "\"(\"")
	var args []js_ast.Expr
	for p.lexer.Token != js_lexer.TCloseParen {
		argStart := p.atSpanStart()
		if p.lexer.Token == js_lexer.TDotDotDot {
			p.lexer.Next(js_lexer.ModeRegular)
			value := p.parseExpr(js_ast.LComma)
			args = append(args, js_ast.Expr{Span: p.spanFrom(argStart), Data: &js_ast.ESpread{Value: value}})
		} else {
			args = append(args, p.parseExpr(js_ast.LComma))
		}
		if p.lexer.Token != js_lexer.TCloseParen {
			p.expect(js_lexer.TComma, "\",\"")
		}
	}
	p.expect(js_lexer.TCloseParen, "\")\"")
	return args
}

// parseSuffix drives the precedence-climbing loop: member access is
// tried at every level, while a call stops once level reaches LCall
// and a postfix update once it reaches LPostfix; binary operators are
// taken from binOpTable.
func (p *parser) parseSuffix(start uint32, left js_ast.Expr, level js_ast.L) js_ast.Expr {
	for {
		switch p.lexer.Token {
		case js_lexer.TDot:
			p.lexer.Next(js_lexer.ModeRegular)
			nameSpan := p.lexer.Span()
			name := identAtom(p.source, p.arena, p.lexer.Identifier, true, nameSpan)
			p.lexer.Next(js_lexer.ModeRegular)
			left = js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EDot{Target: left, Name: name, NameSpan: nameSpan}}
			continue

		case js_lexer.TQuestionDot:
			p.lexer.Next(js_lexer.ModeRegular)
			if p.lexer.Token == js_lexer.TOpenParen {
				args := p.parseCallArgs()
				left = js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ECall{Target: left, Args: args, OptionalChain: js_ast.OptionalChainStart}}
				continue
			}
			if p.lexer.Token == js_lexer.TOpenBracket {
				p.lexer.Next(js_lexer.ModeRegular)
				index := p.parseExpr(js_ast.LLowest)
				p.expect(js_lexer.TCloseBracket, "\"]\"")
				left = js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EIndex{Target: left, Index: index, OptionalChain: js_ast.OptionalChainStart}}
				continue
			}
			nameSpan := p.lexer.Span()
			name := identAtom(p.source, p.arena, p.lexer.Identifier, true, nameSpan)
			p.lexer.Next(js_lexer.ModeRegular)
			left = js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EDot{Target: left, Name: name, NameSpan: nameSpan, OptionalChain: js_ast.OptionalChainStart}}
			continue

		case js_lexer.TOpenBracket:
			p.lexer.Next(js_lexer.ModeRegular)
			index := p.parseExpr(js_ast.LLowest)
			p.expect(js_lexer.TCloseBracket, "\"]\"")
			left = js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EIndex{Target: left, Index: index}}
			continue

		case js_lexer.TOpenParen:
			if level >= js_ast.LCall {
				return left
			}
			args := p.parseCallArgs()
			left = js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ECall{Target: left, Args: args}}
			continue

		case js_lexer.TNoSubstitutionTemplateLiteral, js_lexer.TTemplateHead:
			left = p.parseTemplate(start, left)
			continue

		case js_lexer.TPlusPlus, js_lexer.TMinusMinus:
			if p.lexer.HasNewlineBefore || level >= js_ast.LPostfix {
				return left
			}
			op := js_ast.UnOpPostInc
			if p.lexer.Token == js_lexer.TMinusMinus {
				op = js_ast.UnOpPostDec
			}
			p.lexer.Next(js_lexer.ModeRegular)
			left = js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EUpdate{Op: op, Value: left}}
			continue

		case js_lexer.TQuestion:
			if level >= js_ast.LConditional {
				return left
			}
			p.lexer.Next(js_lexer.ModeRegular)
			oldAllowIn := p.allowIn
			p.allowIn = true
			yes := p.parseExpr(js_ast.LComma)
			p.allowIn = oldAllowIn
			p.expect(js_lexer.TColon, "\":\"")
			no := p.parseExpr(js_ast.LComma)
			left = js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EConditional{Test: left, Yes: yes, No: no}}
			continue

		case js_lexer.TIn:
			if !p.allowIn || level >= js_ast.LCompare {
				return left
			}
		}

		info, ok := binOpTable[p.lexer.Token]
		if !ok || level >= info.level {
			return left
		}
		p.lexer.Next(js_lexer.ModeRegular)

		nextLevel := info.level + 1
		if info.op.IsRightAssociative() {
			nextLevel = info.level
		}
		right := p.parseExpr(nextLevel)

		if info.op >= js_ast.BinOpAssign {
			left = js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EAssign{Op: info.op, Target: left, Value: right}}
		} else if info.op.IsShortCircuit() {
			left = js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.ELogical{Op: info.op, Left: left, Right: right}}
		} else {
			left = js_ast.Expr{Span: p.spanFrom(start), Data: &js_ast.EBinary{Op: info.op, Left: left, Right: right}}
		}
	}
}
