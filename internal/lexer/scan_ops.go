package lexer

import (
	"decaf/internal/token"
)

type opEntry struct {
	text string
	kind token.Kind
}

// longest first within each leading byte
var operators = []opEntry{
	{"|||", token.TriplePipe},
	{"%%", token.PercentPercent},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"=", token.Assign},
	{"<", token.Lt},
	{">", token.Gt},
	{"!", token.Bang},
	{";", token.Semicolon},
	{",", token.Comma},
	{".", token.Dot},
	{":", token.Colon},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{"{", token.LBrace},
	{"}", token.RBrace},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	rest := lx.file.Content[lx.cursor.Off:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			lx.cursor.Advance(len(op.text))
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: op.kind, Span: sp, Text: op.text}
		}
	}
	_, size := lx.cursor.PeekRune()
	lx.cursor.Advance(max(size, 1))
	sp := lx.cursor.SpanFrom(start)
	lx.report(diagUnknownChar, sp, "unrecognized character '%s'", lx.text(sp))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
