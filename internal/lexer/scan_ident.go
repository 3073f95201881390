package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"decaf/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword reads an identifier. Non-ASCII identifiers are
// NFC-normalized in Token.Text so that equal names intern to one ID.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	ascii := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, size := lx.cursor.PeekRune()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r) {
			break
		}
		ascii = false
		lx.cursor.Advance(size)
	}

	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		// одиночный не-буквенный unicode-символ
		_, size := lx.cursor.PeekRune()
		lx.cursor.Advance(max(size, 1))
		sp = lx.cursor.SpanFrom(start)
		lx.report(diagUnknownChar, sp, "unrecognized character '%s'", lx.text(sp))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	text := lx.text(sp)
	if !ascii {
		text = norm.NFC.String(text)
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
