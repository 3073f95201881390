package sema

import (
	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/source"
	"decaf/internal/symbols"
	"decaf/internal/types"
)

func (tc *typeChecker) checkStmt(id ast.StmtID) {
	st := tc.b.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtBlock:
		tc.checkBlock(id)
	case ast.StmtVarDef:
		tc.checkVarDef(id)
	case ast.StmtAssign:
		s, _ := tc.b.Stmts.Assign(id)
		tc.checkAssign(s.Target, s.Value)
	case ast.StmtExpr:
		s, _ := tc.b.Stmts.Expr(id)
		tc.checkExpr(s.Expr)
	case ast.StmtIf:
		s, _ := tc.b.Stmts.If(id)
		then, els := s.Then, s.Else
		tc.checkTest(s.Cond)
		tc.checkStmt(then)
		tc.checkStmt(els)
	case ast.StmtWhile:
		s, _ := tc.b.Stmts.While(id)
		body := s.Body
		tc.checkTest(s.Cond)
		tc.inLoop(id, func() { tc.checkStmt(body) })
	case ast.StmtFor:
		s, _ := tc.b.Stmts.For(id)
		data := *s
		tc.checkStmt(data.Init)
		tc.checkTest(data.Cond)
		tc.checkStmt(data.Update)
		tc.inLoop(id, func() { tc.checkStmt(data.Body) })
	case ast.StmtReturn:
		s, _ := tc.b.Stmts.Return(id)
		tc.checkReturn(id, s.Value)
	case ast.StmtBreak:
		if len(tc.loops) == 0 {
			tc.report(diag.SemaBreakOutsideLoop, st.Span, "'break' is only allowed inside a loop")
		}
	case ast.StmtPrint:
		s, _ := tc.b.Stmts.Print(id)
		tc.checkPrint(append([]ast.ExprID(nil), s.Args...))
	case ast.StmtForeach:
		tc.checkForeach(id)
	case ast.StmtGuarded:
		s, _ := tc.b.Stmts.Guarded(id)
		for _, arm := range append([]ast.GuardArm(nil), s.Arms...) {
			tc.checkTest(arm.Cond)
			tc.checkStmt(arm.Body)
		}
	case ast.StmtSCopy:
		tc.checkSCopy(id)
	case ast.StmtEmpty:
	}
}

func (tc *typeChecker) checkBlock(id ast.StmtID) {
	blk, _ := tc.b.Stmts.Block(id)
	stmts := blk.Stmts
	scope, ok := tc.bound.StmtScopes[id]
	if ok {
		tc.scopes.open(scope)
		defer tc.scopes.close()
	}
	for _, child := range stmts {
		tc.checkStmt(child)
	}
}

// inLoop runs body with a loop context pushed; break is legal inside.
func (tc *typeChecker) inLoop(loop ast.StmtID, body func()) {
	tc.loops = append(tc.loops, loop)
	defer func() { tc.loops = tc.loops[:len(tc.loops)-1] }()
	body()
}

// checkVarDef checks the initializer as an assignment to the new local.
func (tc *typeChecker) checkVarDef(id ast.StmtID) {
	def, _ := tc.b.Stmts.VarDef(id)
	if !def.Init.IsValid() {
		return
	}
	init := def.Init
	symID := tc.bound.StmtSymbols[id]
	sym := tc.table.Symbols.Get(symID)
	rt := tc.checkExpr(init)
	if sym == nil {
		return
	}
	if sym.Type == tc.builtins.Unknown {
		tc.fixType(symID, rt)
		return
	}
	tc.checkAssignable(tc.b.Stmts.Get(id).Span, sym.Type, rt)
}

func (tc *typeChecker) checkAssign(target, value ast.ExprID) {
	lt := tc.checkExpr(target)
	rt := tc.checkExpr(value)
	if lt == tc.builtins.Unknown {
		// первое присваивание фиксирует тип var
		if symID, ok := tc.result.ExprSymbols[target]; ok {
			tc.fixType(symID, rt)
			tc.result.ExprTypes[target] = rt
		}
		return
	}
	sp := tc.exprSpan(target).Cover(tc.exprSpan(value))
	tc.checkAssignable(sp, lt, rt)
}

func (tc *typeChecker) checkAssignable(sp source.Span, lt, rt types.TypeID) {
	if lt == tc.builtins.Error {
		return
	}
	if tc.types.IsFn(lt) || (!tc.absorbs(rt) && !tc.types.Compatible(rt, lt)) {
		tc.report(diag.SemaBadAssignment, sp, "incompatible operands: %s = %s", tc.label(lt), tc.label(rt))
	}
}

// fixType attaches the first concrete type to an inferred local. Orphan
// duplicates are not rebound into the scope.
func (tc *typeChecker) fixType(symID symbols.SymbolID, t types.TypeID) {
	sym := tc.table.Symbols.Get(symID)
	if sym == nil {
		return
	}
	if tc.table.LookupLocal(sym.Scope, sym.Name) != symID {
		sym.Type = t
		return
	}
	tc.table.Redeclare(symID, t)
}

func (tc *typeChecker) checkReturn(id ast.StmtID, value ast.ExprID) {
	sp := tc.b.Stmts.Get(id).Span
	want := tc.builtins.Error
	if formals := tc.table.Scopes.Get(tc.scopes.enclosing(symbols.ScopeFormals)); formals != nil {
		if sig, ok := tc.table.Signature(formals.Owner); ok {
			want = sig.Result
		}
	}

	if !value.IsValid() {
		if want != tc.builtins.Void && want != tc.builtins.Error {
			tc.report(diag.SemaBadReturnType, sp, "incompatible return: void given, %s expected", tc.label(want))
		}
		return
	}
	got := tc.checkExpr(value)
	switch {
	case want == tc.builtins.Void:
		tc.report(diag.SemaBadReturnType, sp, "incompatible return: %s given, void expected", tc.label(got))
	case tc.absorbs(got):
	case !tc.types.Compatible(got, want):
		tc.report(diag.SemaBadReturnType, sp, "incompatible return: %s given, %s expected", tc.label(got), tc.label(want))
	}
}

func (tc *typeChecker) checkPrint(args []ast.ExprID) {
	b := tc.builtins
	for i, arg := range args {
		t := tc.checkExpr(arg)
		switch t {
		case b.Bool, b.Int, b.String, b.Error, b.Unknown:
			continue
		}
		tc.report(diag.SemaBadPrintArg, tc.exprSpan(arg),
			"incompatible argument %d: %s given, int/bool/string expected", i+1, tc.label(t))
	}
}

// checkSCopy checks `scopy(dst, src)`: both sides class typed and equal.
func (tc *typeChecker) checkSCopy(id ast.StmtID) {
	s, _ := tc.b.Stmts.SCopy(id)
	dst, src := s.Dst, s.Src
	sp := tc.b.Stmts.Get(id).Span
	srcType := tc.checkExpr(src)
	srcBad := !tc.absorbs(srcType) && !tc.types.IsClass(srcType)

	symID := tc.scopes.lookup(dst, false)
	sym := tc.table.Symbols.Get(symID)
	if sym == nil || !sym.IsVariable() {
		tc.report(diag.SemaUndeclaredVar, sp, "undeclared variable '%s'", tc.b.Name(dst))
		if srcBad {
			tc.report(diag.SemaBadScopyArg, tc.exprSpan(src), "scopy src must be a class, got %s", tc.label(srcType))
		}
		return
	}
	dstType := sym.Type
	if !tc.absorbs(dstType) && !tc.types.IsClass(dstType) {
		tc.report(diag.SemaBadScopyArg, sp, "scopy dst must be a class, got %s", tc.label(dstType))
		if srcBad {
			tc.report(diag.SemaBadScopyArg, tc.exprSpan(src), "scopy src must be a class, got %s", tc.label(srcType))
		}
		return
	}
	if tc.absorbs(dstType) || tc.absorbs(srcType) {
		return
	}
	if !tc.types.Equal(dstType, srcType) {
		tc.report(diag.SemaBadScopySource, sp, "incompatible scopy: dst is %s, src is %s", tc.label(dstType), tc.label(srcType))
	}
}
