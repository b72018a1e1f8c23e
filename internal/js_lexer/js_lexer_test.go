package js_lexer_test

import (
	"testing"

	"github.com/astforge/astforge/internal/arena"
	"github.com/astforge/astforge/internal/js_lexer"
	"github.com/astforge/astforge/internal/logger"
)

func lex(t *testing.T, contents string) (*js_lexer.Lexer, *logger.Log) {
	t.Helper()
	log := logger.NewLog()
	source := &logger.Source{PrettyPath: "in.ts", Contents: contents}
	return js_lexer.NewLexer(log, source, arena.New()), log
}

func TestPunctuators(t *testing.T) {
	lexer, _ := lex(t, "<<= >>>= ?.() ??=")
	want := []js_lexer.T{
		js_lexer.TLessThanLessThanEquals,
		js_lexer.TGreaterThanGreaterThanGreaterThanEquals,
		js_lexer.TQuestionDot,
		js_lexer.TOpenParen,
		js_lexer.TCloseParen,
		js_lexer.TQuestionQuestionEquals,
	}
	for i, tok := range want {
		if lexer.Token != tok {
			t.Fatalf("token %d: got %v want %v (raw %q)", i, lexer.Token, tok, lexer.Raw())
		}
		lexer.Next(js_lexer.ModeRegular)
	}
	if lexer.Token != js_lexer.TEndOfFile {
		t.Fatalf("expected EOF, got %v", lexer.Token)
	}
}

func TestKeywordVsIdentifier(t *testing.T) {
	lexer, _ := lex(t, "class foo")
	if lexer.Token != js_lexer.TClass {
		t.Fatalf("expected TClass, got %v", lexer.Token)
	}
	lexer.Next(js_lexer.ModeRegular)
	if lexer.Token != js_lexer.TIdentifier || lexer.Identifier != "foo" {
		t.Fatalf("expected identifier foo, got %v %q", lexer.Token, lexer.Identifier)
	}
}

func TestNumericLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"0xFF", 255},
		{"0b101", 5},
		{"0o17", 15},
		{"1_000.5", 1000.5},
		{"1e3", 1000},
	}
	for _, c := range cases {
		lexer, log := lex(t, c.src)
		if lexer.Token != js_lexer.TNumericLiteral {
			t.Fatalf("%q: expected numeric literal, got %v", c.src, lexer.Token)
		}
		if lexer.Number != c.want {
			t.Fatalf("%q: expected %v, got %v", c.src, c.want, lexer.Number)
		}
		if log.HasErrors() {
			t.Fatalf("%q: unexpected errors", c.src)
		}
	}
}

func TestBigIntLiteral(t *testing.T) {
	lexer, _ := lex(t, "123n")
	if lexer.Token != js_lexer.TBigIntegerLiteral || lexer.Identifier != "123" {
		t.Fatalf("expected bigint 123, got %v %q", lexer.Token, lexer.Identifier)
	}
}

func TestStringEscapes(t *testing.T) {
	lexer, _ := lex(t, `"a\nbA\x42"`)
	if lexer.Token != js_lexer.TStringLiteral {
		t.Fatalf("expected string literal, got %v", lexer.Token)
	}
	if got, want := lexer.StringValue.String(), "a\nbAB"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestUnterminatedStringRecovers(t *testing.T) {
	lexer, log := lex(t, `"unterminated`)
	if !log.HasErrors() {
		t.Fatal("expected an error for the unterminated string")
	}
	if lexer.Token != js_lexer.TStringLiteral {
		t.Fatalf("expected a recovered string token, got %v", lexer.Token)
	}
}

func TestPrivateIdentifier(t *testing.T) {
	lexer, _ := lex(t, "#foo")
	if lexer.Token != js_lexer.TPrivateIdentifier || lexer.Identifier != "#foo" {
		t.Fatalf("expected private identifier #foo, got %v %q", lexer.Token, lexer.Identifier)
	}
}

func TestJSXChildMode(t *testing.T) {
	// NewLexer has already scanned the ">" that closes the opening tag.
	lexer, _ := lex(t, ">hello <b>")
	lexer.Next(js_lexer.ModeJSXChild)
	if lexer.Token != js_lexer.TJSXText {
		t.Fatalf("expected JSX text, got %v", lexer.Token)
	}
	if lexer.Raw() != "hello " {
		t.Fatalf("expected %q, got %q", "hello ", lexer.Raw())
	}
	lexer.Next(js_lexer.ModeJSXChild)
	if lexer.Token != js_lexer.TLessThan {
		t.Fatalf("expected '<', got %v", lexer.Token)
	}
}

func TestJSXIdentifierAllowsHyphen(t *testing.T) {
	// NewLexer has already scanned the "<" that opens the tag.
	lexer, _ := lex(t, "<data-foo")
	lexer.Next(js_lexer.ModeJSXIdentifier)
	if lexer.Token != js_lexer.TJSXIdentifier || lexer.Identifier != "data-foo" {
		t.Fatalf("expected JSX identifier data-foo, got %v %q", lexer.Token, lexer.Identifier)
	}
}

func TestRegExpScan(t *testing.T) {
	lexer, _ := lex(t, `/a[/]b/gi`)
	lexer.ScanRegExp()
	if lexer.Token != js_lexer.TRegExpLiteral {
		t.Fatalf("expected regexp literal, got %v", lexer.Token)
	}
	if lexer.Raw() != `/a[/]b/gi` {
		t.Fatalf("unexpected raw text %q", lexer.Raw())
	}
}

func TestSyntaxErrorAdvancesPastBadByte(t *testing.T) {
	lexer, log := lex(t, "\x01 foo")
	if lexer.Token != js_lexer.TSyntaxError {
		t.Fatalf("expected a syntax error token, got %v", lexer.Token)
	}
	if !log.HasErrors() {
		t.Fatal("expected a recorded diagnostic")
	}
	lexer.Next(js_lexer.ModeRegular)
	if lexer.Token != js_lexer.TIdentifier || lexer.Identifier != "foo" {
		t.Fatalf("expected lexing to resume after the bad byte, got %v %q", lexer.Token, lexer.Identifier)
	}
}
