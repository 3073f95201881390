package ast

import "decaf/internal/source"

// Exprs manages allocation of expressions and their per-kind payloads.
type Exprs struct {
	Arena      *Arena[Expr]
	Lits       *Arena[LitData]
	Idents     *Arena[IdentData]
	Calls      *Arena[CallData]
	Binaries   *Arena[BinaryData]
	Unaries    *Arena[UnaryData]
	Indices    *Arena[IndexData]
	NewClasses *Arena[NewClassData]
	NewArrays  *Arena[NewArrayData]
	ClassTests *Arena[ClassTestData]
	SameArrays *Arena[NewSameArrayData]
	DefArrays  *Arena[DefaultArrayData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 4
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Lits:       NewArena[LitData](small),
		Idents:     NewArena[IdentData](capHint),
		Calls:      NewArena[CallData](small),
		Binaries:   NewArena[BinaryData](small),
		Unaries:    NewArena[UnaryData](small),
		Indices:    NewArena[IndexData](small),
		NewClasses: NewArena[NewClassData](small),
		NewArrays:  NewArena[NewArrayData](small),
		ClassTests: NewArena[ClassTestData](small),
		SameArrays: NewArena[NewSameArrayData](small),
		DefArrays:  NewArena[DefaultArrayData](small),
	}
}

func (e *Exprs) new(kind ExprKind, sp source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: sp, Payload: PayloadID(payload)}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Len counts allocated expressions; IDs run 1..Len.
func (e *Exprs) Len() uint32 { return e.Arena.Len() }

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewLit(sp source.Span, kind LitKind, value source.StringID) ExprID {
	return e.new(ExprLit, sp, e.Lits.Allocate(LitData{Kind: kind, Value: value}))
}

func (e *Exprs) Lit(id ExprID) (*LitData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Lits.Get(p), true
}

func (e *Exprs) NewNull(sp source.Span) ExprID     { return e.new(ExprNull, sp, 0) }
func (e *Exprs) NewThis(sp source.Span) ExprID     { return e.new(ExprThis, sp, 0) }
func (e *Exprs) NewReadInt(sp source.Span) ExprID  { return e.new(ExprReadInt, sp, 0) }
func (e *Exprs) NewReadLine(sp source.Span) ExprID { return e.new(ExprReadLine, sp, 0) }

func (e *Exprs) NewIdent(sp source.Span, owner ExprID, name source.StringID) ExprID {
	return e.new(ExprIdent, sp, e.Idents.Allocate(IdentData{Owner: owner, Name: name}))
}

func (e *Exprs) Ident(id ExprID) (*IdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

func (e *Exprs) NewCall(sp source.Span, data CallData) ExprID {
	return e.new(ExprCall, sp, e.Calls.Allocate(data))
}

func (e *Exprs) Call(id ExprID) (*CallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewBinary(sp source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, sp, e.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*BinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewUnary(sp source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, sp, e.Unaries.Allocate(UnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*UnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewIndex(sp source.Span, array, index ExprID) ExprID {
	return e.new(ExprIndex, sp, e.Indices.Allocate(IndexData{Array: array, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*IndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	if !ok {
		return nil, false
	}
	return e.Indices.Get(p), true
}

func (e *Exprs) NewNewClass(sp source.Span, class source.StringID) ExprID {
	return e.new(ExprNewClass, sp, e.NewClasses.Allocate(NewClassData{Class: class}))
}

func (e *Exprs) NewClass(id ExprID) (*NewClassData, bool) {
	p, ok := e.payload(id, ExprNewClass)
	if !ok {
		return nil, false
	}
	return e.NewClasses.Get(p), true
}

func (e *Exprs) NewNewArray(sp source.Span, elem TypeID, length ExprID) ExprID {
	return e.new(ExprNewArray, sp, e.NewArrays.Allocate(NewArrayData{Elem: elem, Length: length}))
}

func (e *Exprs) NewArray(id ExprID) (*NewArrayData, bool) {
	p, ok := e.payload(id, ExprNewArray)
	if !ok {
		return nil, false
	}
	return e.NewArrays.Get(p), true
}

func (e *Exprs) NewInstanceOf(sp source.Span, value ExprID, class source.StringID) ExprID {
	return e.new(ExprInstanceOf, sp, e.ClassTests.Allocate(ClassTestData{Value: value, Class: class}))
}

func (e *Exprs) NewCast(sp source.Span, class source.StringID, value ExprID) ExprID {
	return e.new(ExprCast, sp, e.ClassTests.Allocate(ClassTestData{Value: value, Class: class}))
}

// ClassTest returns the payload of an instanceof or cast expression.
func (e *Exprs) ClassTest(id ExprID) (*ClassTestData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprInstanceOf && expr.Kind != ExprCast) {
		return nil, false
	}
	return e.ClassTests.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewNewSameArray(sp source.Span, value, length ExprID) ExprID {
	return e.new(ExprNewSameArray, sp, e.SameArrays.Allocate(NewSameArrayData{Value: value, Length: length}))
}

func (e *Exprs) NewSameArray(id ExprID) (*NewSameArrayData, bool) {
	p, ok := e.payload(id, ExprNewSameArray)
	if !ok {
		return nil, false
	}
	return e.SameArrays.Get(p), true
}

func (e *Exprs) NewDefaultArray(sp source.Span, array, index, def ExprID) ExprID {
	return e.new(ExprDefaultArray, sp, e.DefArrays.Allocate(DefaultArrayData{Array: array, Index: index, Default: def}))
}

func (e *Exprs) DefaultArray(id ExprID) (*DefaultArrayData, bool) {
	p, ok := e.payload(id, ExprDefaultArray)
	if !ok {
		return nil, false
	}
	return e.DefArrays.Get(p), true
}
