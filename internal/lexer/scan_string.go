package lexer

import (
	"decaf/internal/diag"
	"decaf/internal/token"
)

// scanString reads a double-quoted literal. Decaf strings are single-line;
// Text keeps the quotes and escapes as written.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '"'
	for {
		switch b := lx.cursor.Peek(); {
		case lx.cursor.EOF():
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "unterminated string constant")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp) + `"`}
		case b == '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexNewlineInString, sp, "illegal newline in string constant")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp) + `"`}
		case b == '\\':
			lx.cursor.Advance(2)
		case b == '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		default:
			lx.cursor.Bump()
		}
	}
}
