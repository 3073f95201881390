package sema

import (
	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/source"
	"decaf/internal/symbols"
	"decaf/internal/types"
)

// checkForeach types `foreach (T x in a while c) body`. The iteration
// variable is declared here, into the scope the binder opened for the
// loop, once the element type is known.
func (tc *typeChecker) checkForeach(id ast.StmtID) {
	s, _ := tc.b.Stmts.Foreach(id)
	data := *s

	declared := types.NoTypeID
	if data.VarType.IsValid() {
		declared = tc.table.ResolveTypeExpr(tc.b, data.VarType, tc.reporter)
	}
	at := tc.checkExpr(data.Array)

	scope, ok := tc.bound.StmtScopes[id]
	if !ok {
		return
	}
	tc.scopes.open(scope)
	defer tc.scopes.close()

	varType, skipBody := tc.foreachVarType(data, at, declared)
	tc.declareIterVar(id, scope, data, varType)

	if data.Filter.IsValid() {
		tc.checkTest(data.Filter)
	}
	if skipBody {
		return
	}
	tc.inLoop(id, func() { tc.checkStmt(data.Body) })
}

func (tc *typeChecker) foreachVarType(data ast.ForeachStmt, at, declared types.TypeID) (types.TypeID, bool) {
	if tc.absorbs(at) {
		// массив с ошибкой: переменная остаётся Unknown, тело проверяем
		if declared.IsValid() {
			return declared, false
		}
		return tc.builtins.Unknown, false
	}
	elem, ok := tc.types.ArrayElem(at)
	if !ok {
		tc.report(diag.SemaBadArrayOperand, tc.exprSpan(data.Array), "array operator can only be applied to arrays")
		return tc.builtins.Error, false
	}
	if !declared.IsValid() {
		return elem, false
	}
	if !tc.absorbs(declared) && !tc.types.Compatible(elem, declared) {
		tc.report(diag.SemaBadForeachType, data.VarSpan,
			"foreach variable declared as %s does not match element type %s", tc.label(declared), tc.label(elem))
		return declared, true
	}
	return declared, false
}

func (tc *typeChecker) declareIterVar(id ast.StmtID, scope symbols.ScopeID, data ast.ForeachStmt, t types.TypeID) {
	sym := symbols.Symbol{
		Name:    data.VarName,
		Kind:    symbols.SymbolVariable,
		VarKind: symbols.VarLocal,
		Span:    data.VarSpan,
		Type:    t,
		Stmt:    id,
	}
	prev := tc.enclosingLocal(scope, data.VarName, data.VarSpan)
	symID := symbols.NoSymbolID
	if !prev.IsValid() {
		symID, prev = tc.table.Declare(scope, sym)
	}
	if prev.IsValid() {
		diag.ReportError(tc.reporter, diag.SemaDuplicateDecl, data.VarSpan,
			"declaration of '"+tc.b.Name(data.VarName)+"' here conflicts with earlier declaration").
			WithNote(tc.table.Symbols.Get(prev).Span, "earlier declaration").
			Emit()
		sym.Scope = scope
		symID = tc.table.Symbols.New(&sym)
	}
	tc.result.StmtSymbols[id] = symID
}

// enclosingLocal finds a local or parameter named name declared before at
// in scope or any block between it and the method formals.
func (tc *typeChecker) enclosingLocal(scope symbols.ScopeID, name source.StringID, at source.Span) symbols.SymbolID {
	for cur := scope; ; {
		sc := tc.table.Scopes.Get(cur)
		if sc == nil || (sc.Kind != symbols.ScopeBlock && sc.Kind != symbols.ScopeFormals) {
			return symbols.NoSymbolID
		}
		if prev := sc.NameIndex[name]; prev.IsValid() && tc.table.Symbols.Get(prev).Span.Before(at) {
			return prev
		}
		cur = sc.Parent
	}
}
