package token

import (
	"decaf/internal/source"
)

// Token is a single lexeme. Text is the exact source slice.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) IsKeyword() bool {
	_, ok := keywordText[t.Kind]
	return ok
}

func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsTypeStart reports tokens that may begin a type.
func (t Token) IsTypeStart() bool {
	switch t.Kind {
	case KwInt, KwBool, KwString, KwVoid, KwClass:
		return true
	}
	return false
}
