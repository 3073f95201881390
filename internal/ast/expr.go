package ast

import "decaf/internal/source"

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprLit
	ExprNull
	ExprIdent
	ExprCall
	ExprBinary
	ExprUnary
	ExprIndex
	ExprNewClass
	ExprNewArray
	ExprThis
	ExprInstanceOf
	ExprCast
	ExprReadInt
	ExprReadLine
	// ExprNewSameArray is `value %% length`.
	ExprNewSameArray
	// ExprDefaultArray is `array[index] default value`.
	ExprDefaultArray
)

var exprKindNames = [...]string{
	ExprInvalid:      "invalid",
	ExprLit:          "literal",
	ExprNull:         "null",
	ExprIdent:        "ident",
	ExprCall:         "call",
	ExprBinary:       "binary",
	ExprUnary:        "unary",
	ExprIndex:        "index",
	ExprNewClass:     "new-class",
	ExprNewArray:     "new-array",
	ExprThis:         "this",
	ExprInstanceOf:   "instanceof",
	ExprCast:         "cast",
	ExprReadInt:      "ReadInteger",
	ExprReadLine:     "ReadLine",
	ExprNewSameArray: "new-same-array",
	ExprDefaultArray: "default-array",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "expr?"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitInt LitKind = iota + 1
	LitBool
	LitString
)

type LitData struct {
	Kind  LitKind
	Value source.StringID // raw token text
}

// IdentData is `name` or `owner.name`. Owner may be filled in by the
// checker with a synthesized `this` for implicit field access.
type IdentData struct {
	Owner ExprID
	Name  source.StringID
}

// CallData is `[receiver.]name(args)`. Receiver is rewritten by the
// checker: cleared for static targets, synthesized `this` otherwise.
type CallData struct {
	Receiver ExprID
	Name     source.StringID
	NameSpan source.Span
	Args     []ExprID
}

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota + 1
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
)

var binaryOpText = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpEq: "==", OpNe: "!=", OpAnd: "&&", OpOr: "||",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) && binaryOpText[op] != "" {
		return binaryOpText[op]
	}
	return "?"
}

type BinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type UnaryOp uint8

const (
	OpNeg UnaryOp = iota + 1
	OpNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpNot:
		return "!"
	}
	return "?"
}

type UnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type IndexData struct {
	Array ExprID
	Index ExprID
}

type NewClassData struct {
	Class source.StringID
}

type NewArrayData struct {
	Elem   TypeID
	Length ExprID
}

// ClassTestData backs both `instanceof(value, Class)` and `(class Class)value`.
type ClassTestData struct {
	Value ExprID
	Class source.StringID
}

type NewSameArrayData struct {
	Value  ExprID
	Length ExprID
}

type DefaultArrayData struct {
	Array   ExprID
	Index   ExprID
	Default ExprID
}
