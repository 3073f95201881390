package lexer

import (
	"testing"

	"decaf/internal/diag"
	"decaf/internal/source"
	"decaf/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("lex.decaf", []byte(src)))
	bag := diag.NewBag(16)
	lx := New(file, Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerKinds(t *testing.T) {
	toks, bag := lexAll(t, "class A extends B { int[] xs; } // trailing\nx %% 3 ||| y")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	want := []token.Kind{
		token.KwClass, token.Ident, token.KwExtends, token.Ident, token.LBrace,
		token.KwInt, token.LBracket, token.RBracket, token.Ident, token.Semicolon, token.RBrace,
		token.Ident, token.PercentPercent, token.IntLit, token.TriplePipe, token.Ident,
		token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerSpans(t *testing.T) {
	toks, _ := lexAll(t, "  foo <= 0x1F")
	if toks[0].Span.Start != 2 || toks[0].Span.End != 5 || toks[0].Text != "foo" {
		t.Errorf("ident token = %+v", toks[0])
	}
	if toks[1].Kind != token.LtEq {
		t.Errorf("expected <=, got %v", toks[1].Kind)
	}
	if toks[2].Text != "0x1F" {
		t.Errorf("hex literal text = %q", toks[2].Text)
	}
}

func TestLexerStringErrors(t *testing.T) {
	_, bag := lexAll(t, "\"open\nPrint(\"ok\");\"never closed")
	if bag.Count(diag.LexNewlineInString) != 1 {
		t.Errorf("expected newline-in-string diagnostic")
	}
	if bag.Count(diag.LexUnterminatedString) != 1 {
		t.Errorf("expected unterminated string diagnostic")
	}
}

func TestLexerBadInput(t *testing.T) {
	toks, bag := lexAll(t, "a # 99999999999 12ab")
	if toks[1].Kind != token.Invalid {
		t.Errorf("expected invalid token for '#', got %v", toks[1].Kind)
	}
	if bag.Count(diag.LexUnknownChar) != 1 || bag.Count(diag.LexBadNumber) != 2 {
		t.Errorf("diagnostics: unknown=%d badnum=%d", bag.Count(diag.LexUnknownChar), bag.Count(diag.LexBadNumber))
	}
}

func TestLexerNormalizesIdentifiers(t *testing.T) {
	// "é" precomposed vs "e" + combining acute
	toks, _ := lexAll(t, "café café")
	if toks[0].Text != toks[1].Text {
		t.Errorf("identifiers not normalized: %q vs %q", toks[0].Text, toks[1].Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := New(fs.Get(fs.AddVirtual("p", []byte("x y"))), Options{})
	if lx.Peek().Text != "x" || lx.Peek().Text != "x" {
		t.Fatal("peek consumed")
	}
	if lx.Next().Text != "x" || lx.Next().Text != "y" || lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatal("sequence broken")
	}
}
