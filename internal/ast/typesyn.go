package ast

import "decaf/internal/source"

type TypeExprKind uint8

const (
	TypeBasic TypeExprKind = iota + 1
	TypeClass
	TypeArray
)

type BasicType uint8

const (
	BasicInt BasicType = iota + 1
	BasicBool
	BasicString
	BasicVoid
)

// TypeExpr is a written type: `int`, `class Foo`, `T[]`.
type TypeExpr struct {
	Kind  TypeExprKind
	Span  source.Span
	Basic BasicType
	Name  source.StringID // class name for TypeClass
	Elem  TypeID          // element for TypeArray
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{Arena: NewArena[TypeExpr](capHint)}
}

func (t *TypeExprs) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

func (t *TypeExprs) NewBasic(sp source.Span, b BasicType) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: TypeBasic, Span: sp, Basic: b}))
}

func (t *TypeExprs) NewClass(sp source.Span, name source.StringID) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: TypeClass, Span: sp, Name: name}))
}

func (t *TypeExprs) NewArray(sp source.Span, elem TypeID) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: TypeArray, Span: sp, Elem: elem}))
}
