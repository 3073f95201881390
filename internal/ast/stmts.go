package ast

import "decaf/internal/source"

// Stmts manages allocation of statements.
type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[BlockStmt]
	VarDefs  *Arena[VarDefStmt]
	Assigns  *Arena[AssignStmt]
	Exprs    *Arena[ExprStmt]
	Ifs      *Arena[IfStmt]
	Whiles   *Arena[WhileStmt]
	Fors     *Arena[ForStmt]
	Returns  *Arena[ReturnStmt]
	Prints   *Arena[PrintStmt]
	Foreachs *Arena[ForeachStmt]
	Guardeds *Arena[GuardedStmt]
	SCopies  *Arena[SCopyStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 4
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[BlockStmt](small),
		VarDefs:  NewArena[VarDefStmt](small),
		Assigns:  NewArena[AssignStmt](small),
		Exprs:    NewArena[ExprStmt](small),
		Ifs:      NewArena[IfStmt](small),
		Whiles:   NewArena[WhileStmt](small),
		Fors:     NewArena[ForStmt](small),
		Returns:  NewArena[ReturnStmt](small),
		Prints:   NewArena[PrintStmt](small),
		Foreachs: NewArena[ForeachStmt](small),
		Guardeds: NewArena[GuardedStmt](small),
		SCopies:  NewArena[SCopyStmt](small),
	}
}

func (s *Stmts) new(kind StmtKind, sp source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: sp, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(sp source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, sp, s.Blocks.Allocate(BlockStmt{Stmts: stmts}))
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewVarDef(sp source.Span, data VarDefStmt) StmtID {
	return s.new(StmtVarDef, sp, s.VarDefs.Allocate(data))
}

func (s *Stmts) VarDef(id StmtID) (*VarDefStmt, bool) {
	p, ok := s.payload(id, StmtVarDef)
	if !ok {
		return nil, false
	}
	return s.VarDefs.Get(p), true
}

func (s *Stmts) NewAssign(sp source.Span, target, value ExprID) StmtID {
	return s.new(StmtAssign, sp, s.Assigns.Allocate(AssignStmt{Target: target, Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*AssignStmt, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewExpr(sp source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, sp, s.Exprs.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewIf(sp source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, sp, s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewWhile(sp source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, sp, s.Whiles.Allocate(WhileStmt{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*WhileStmt, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewFor(sp source.Span, data ForStmt) StmtID {
	return s.new(StmtFor, sp, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*ForStmt, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewReturn(sp source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, sp, s.Returns.Allocate(ReturnStmt{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewBreak(sp source.Span) StmtID { return s.new(StmtBreak, sp, 0) }
func (s *Stmts) NewEmpty(sp source.Span) StmtID { return s.new(StmtEmpty, sp, 0) }

func (s *Stmts) NewPrint(sp source.Span, args []ExprID) StmtID {
	return s.new(StmtPrint, sp, s.Prints.Allocate(PrintStmt{Args: args}))
}

func (s *Stmts) Print(id StmtID) (*PrintStmt, bool) {
	p, ok := s.payload(id, StmtPrint)
	if !ok {
		return nil, false
	}
	return s.Prints.Get(p), true
}

func (s *Stmts) NewForeach(sp source.Span, data ForeachStmt) StmtID {
	return s.new(StmtForeach, sp, s.Foreachs.Allocate(data))
}

func (s *Stmts) Foreach(id StmtID) (*ForeachStmt, bool) {
	p, ok := s.payload(id, StmtForeach)
	if !ok {
		return nil, false
	}
	return s.Foreachs.Get(p), true
}

func (s *Stmts) NewGuarded(sp source.Span, arms []GuardArm) StmtID {
	return s.new(StmtGuarded, sp, s.Guardeds.Allocate(GuardedStmt{Arms: arms}))
}

func (s *Stmts) Guarded(id StmtID) (*GuardedStmt, bool) {
	p, ok := s.payload(id, StmtGuarded)
	if !ok {
		return nil, false
	}
	return s.Guardeds.Get(p), true
}

func (s *Stmts) NewSCopy(sp source.Span, data SCopyStmt) StmtID {
	return s.new(StmtSCopy, sp, s.SCopies.Allocate(data))
}

func (s *Stmts) SCopy(id StmtID) (*SCopyStmt, bool) {
	p, ok := s.payload(id, StmtSCopy)
	if !ok {
		return nil, false
	}
	return s.SCopies.Get(p), true
}
