package parser

import (
	"decaf/internal/ast"
	"decaf/internal/token"
)

// Приоритеты бинарных операторов, от слабых к сильным
const (
	precNone     = iota
	precSameArr  // %%
	precOr       // ||
	precAnd      // &&
	precEquality // == !=
	precCompare  // < <= > >=
	precAdditive // + -
	precMul      // * / %
)

var binaryOps = map[token.Kind]struct {
	prec int
	op   ast.BinaryOp
}{
	token.OrOr:    {precOr, ast.OpOr},
	token.AndAnd:  {precAnd, ast.OpAnd},
	token.EqEq:    {precEquality, ast.OpEq},
	token.BangEq:  {precEquality, ast.OpNe},
	token.Lt:      {precCompare, ast.OpLt},
	token.LtEq:    {precCompare, ast.OpLe},
	token.Gt:      {precCompare, ast.OpGt},
	token.GtEq:    {precCompare, ast.OpGe},
	token.Plus:    {precAdditive, ast.OpAdd},
	token.Minus:   {precAdditive, ast.OpSub},
	token.Star:    {precMul, ast.OpMul},
	token.Slash:   {precMul, ast.OpDiv},
	token.Percent: {precMul, ast.OpMod},
}

// getBinaryOperatorPrec returns precNone for tokens that do not continue
// a binary expression.
func getBinaryOperatorPrec(k token.Kind) int {
	if k == token.PercentPercent {
		return precSameArr
	}
	if e, ok := binaryOps[k]; ok {
		return e.prec
	}
	return precNone
}
