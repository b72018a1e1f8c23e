// Package js_parser is a recursive-descent parser with one-token
// lookahead over the token stream js_lexer produces. It never aborts:
// a malformed construct is recorded as a diagnostic and the parser
// resynchronizes at the next statement boundary, so a Program always
// comes back well-formed even when the input wasn't.
package js_parser

import (
	"fmt"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/config"
	"github.com/astforge/astforge/internal/js_ast"
	"github.com/astforge/astforge/internal/js_lexer"
	"github.com/astforge/astforge/internal/logger"
	"github.com/astforge/astforge/internal/span"
)

type parser struct {
	lexer  *js_lexer.Lexer
	source *logger.Source
	log    *logger.Log
	arena  *arena.Arena
	opts   config.ParseOptions

	allowIn          bool
	inFunction       bool
	comments         []js_ast.Comment
	hasUseStrict     bool
}

// parserPanic unwinds to Parse's recover point; it never escapes the
// package and never represents a process-fatal condition.
type parserPanic struct{}

// Parse runs the parser to completion over source, selecting its
// grammar subset from opts.SourceType. The second return value
// reports whether the parser had to bail out of the whole file (true
// only for a lexer-level failure so catastrophic it could not
// resynchronize, which in practice never happens since the lexer
// itself never aborts).
func Parse(log *logger.Log, source *logger.Source, a *arena.Arena, opts config.ParseOptions) (program js_ast.Program, panicked bool) {
	p := &parser{
		source: source,
		log:    log,
		arena:  a,
		opts:   opts,
		allowIn: true,
	}
	p.lexer = js_lexer.NewLexer(log, source, a)

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parserPanic); ok {
				panicked = true
				return
			}
			panic(r)
		}
	}()

	var hashbang string
	if p.lexer.Token == js_lexer.THashbang {
		hashbang = p.lexer.Raw()
		_ = hashbang
		p.lexer.Next(js_lexer.ModeRegular)
	}

	stmts := p.parseStmtsUpTo(js_lexer.TEndOfFile)
	program = js_ast.Program{
		Body:                  stmts,
		Comments:              p.lexer.CommentsBefore,
		SourceLen:             uint32(len(source.Contents)),
		HasUseStrictDirective: p.hasUseStrict,
	}
	return program, false
}

func (p *parser) addError(loc logger.Loc, text string) {
	p.log.AddError(p.source, logger.ParseError, loc, text)
}

func (p *parser) addErrorAt(s span.Span, text string) {
	p.log.AddRangeError(p.source, logger.ParseError, logger.Range{
		Loc: logger.Loc{Start: int32(s.Start)},
		Len: int32(s.Len()),
	}, text)
}

func (p *parser) unexpected() {
	p.addErrorAt(p.lexer.Span(), fmt.Sprintf("Unexpected token %q", p.lexer.Raw()))
	panic(parserPanic{})
}

func (p *parser) expect(t js_lexer.T, what string) {
	if p.lexer.Token != t {
		p.addErrorAt(p.lexer.Span(), fmt.Sprintf("Expected %s but found %q", what, p.lexer.Raw()))
		panic(parserPanic{})
	}
	p.lexer.Next(js_lexer.ModeRegular)
}

func (p *parser) expectOrInsertSemicolon() {
	if p.lexer.Token == js_lexer.TSemicolon {
		p.lexer.Next(js_lexer.ModeRegular)
		return
	}
	// ASI: a newline, "}", or EOF silently closes the statement.
	if p.lexer.HasNewlineBefore || p.lexer.Token == js_lexer.TCloseBrace || p.lexer.Token == js_lexer.TEndOfFile {
		return
	}
	p.addErrorAt(p.lexer.Span(), "Expected \";\"")
	panic(parserPanic{})
}

func (p *parser) atSpanStart() uint32 { return uint32(p.lexer.Loc().Start) }

func (p *parser) spanFrom(start uint32) span.Span {
	return span.Span{Start: start, End: uint32(p.lexer.Loc().Start)}
}

// recoverToStatementBoundary implements "synchronize at statement
// boundaries" error recovery: it discards tokens until a
// plausible restart point, so one malformed statement never corrupts
// the rest of the file's diagnostics.
func (p *parser) recoverToStatementBoundary() {
	for {
		switch p.lexer.Token {
		case js_lexer.TEndOfFile, js_lexer.TSemicolon, js_lexer.TCloseBrace:
			return
		}
		p.lexer.Next(js_lexer.ModeRegular)
	}
}

func identAtom(src *logger.Source, a *arena.Arena, name string, raw bool, s span.Span) span.Atom {
	if raw {
		return span.AtomFromSource(src.Contents, s)
	}
	return span.AtomFromString(a, name)
}
