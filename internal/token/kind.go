package token

import "fmt"

// Kind enumerates token categories.
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	Ident
	IntLit
	StringLit

	// ключевые слова
	KwClass
	KwExtends
	KwStatic
	KwVoid
	KwInt
	KwBool
	KwString
	KwNew
	KwThis
	KwNull
	KwTrue
	KwFalse
	KwIf
	KwElse
	KwWhile
	KwFor
	KwReturn
	KwBreak
	KwPrint
	KwReadInteger
	KwReadLine
	KwInstanceof
	KwForeach
	KwIn
	KwVar
	KwDefault
	KwScopy

	// операторы и пунктуация
	Plus
	Minus
	Star
	Slash
	Percent
	PercentPercent
	Assign
	EqEq
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
	TriplePipe
	Bang
	Semicolon
	Comma
	Dot
	Colon
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
)

var kindNames = map[Kind]string{
	Invalid:        "invalid",
	EOF:            "end of file",
	Ident:          "identifier",
	IntLit:         "integer literal",
	StringLit:      "string literal",
	Plus:           "+",
	Minus:          "-",
	Star:           "*",
	Slash:          "/",
	Percent:        "%",
	PercentPercent: "%%",
	Assign:         "=",
	EqEq:           "==",
	BangEq:         "!=",
	Lt:             "<",
	LtEq:           "<=",
	Gt:             ">",
	GtEq:           ">=",
	AndAnd:         "&&",
	OrOr:           "||",
	TriplePipe:     "|||",
	Bang:           "!",
	Semicolon:      ";",
	Comma:          ",",
	Dot:            ".",
	Colon:          ":",
	LParen:         "(",
	RParen:         ")",
	LBracket:       "[",
	RBracket:       "]",
	LBrace:         "{",
	RBrace:         "}",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	if s, ok := keywordText[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", k)
}
