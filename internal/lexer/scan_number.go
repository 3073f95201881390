package lexer

import (
	"strconv"

	"decaf/internal/diag"
	"decaf/internal/token"
)

// scanNumber reads decimal or 0x-hex integers. Values that do not fit
// into int32 are reported but still produce an IntLit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	base := 10
	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Advance(2)
		base = 16
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	// 123abc: одна ошибка на весь хвост
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, sp, "malformed number '%s'", lx.text(sp))
		return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	digits := text
	if base == 16 {
		digits = text[2:]
	}
	if _, err := strconv.ParseInt(digits, base, 32); err != nil {
		lx.report(diag.LexBadNumber, sp, "integer literal '%s' is out of range", text)
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text}
}
