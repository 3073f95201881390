package sema

import (
	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/source"
	"decaf/internal/symbols"
	"decaf/internal/types"
)

func (tc *typeChecker) checkIdent(id ast.ExprID, forRef bool) types.TypeID {
	data, _ := tc.b.Exprs.Ident(id)
	if data.Owner.IsValid() {
		return tc.checkMember(id, data.Owner, data.Name)
	}
	return tc.checkBareIdent(id, data.Name, forRef)
}

// checkBareIdent resolves `name` with declare-before-use. Fields reached
// from an instance method get a synthesized `this` owner.
func (tc *typeChecker) checkBareIdent(id ast.ExprID, name source.StringID, forRef bool) types.TypeID {
	sp := tc.exprSpan(id)
	symID := tc.scopes.lookupBefore(name, sp)
	sym := tc.table.Symbols.Get(symID)
	if sym == nil {
		tc.report(diag.SemaUndeclaredVar, sp, "undeclared variable '%s'", tc.b.Name(name))
		return tc.builtins.Error
	}

	switch sym.Kind {
	case symbols.SymbolClass:
		if !forRef {
			tc.report(diag.SemaUndeclaredVar, sp, "undeclared variable '%s'", tc.b.Name(name))
			return tc.builtins.Error
		}
		tc.result.ClassRefs[id] = true
		tc.result.ExprSymbols[id] = symID
		return sym.Type

	case symbols.SymbolFunction:
		tc.result.ExprSymbols[id] = symID
		return sym.Type
	}

	tc.result.ExprSymbols[id] = symID
	switch sym.VarKind {
	case symbols.VarLocal:
		tc.result.LValues[id] = LValueLocal
	case symbols.VarParam:
		tc.result.LValues[id] = LValueParam
	case symbols.VarField:
		if tc.static() {
			tc.report(diag.SemaStaticRefInstance, sp,
				"can not reference a non-static field '%s' from static method '%s'", tc.b.Name(name), tc.name(tc.method))
			break
		}
		tc.attachThis(id, sp)
		tc.result.LValues[id] = LValueMember
	}
	return sym.Type
}

// attachThis gives an owner-less field access an explicit `this` owner.
func (tc *typeChecker) attachThis(id ast.ExprID, sp source.Span) {
	this := tc.b.Exprs.NewThis(sp.Head())
	tc.result.ExprTypes[this] = tc.classType()
	// арена могла переехать, берём указатель заново
	data, _ := tc.b.Exprs.Ident(id)
	data.Owner = this
}

// checkMember types `owner.name` where name must be a visible field.
func (tc *typeChecker) checkMember(id, owner ast.ExprID, name source.StringID) types.TypeID {
	sp := tc.exprSpan(id)
	ot := tc.checkExprRef(owner, true)
	if tc.absorbs(ot) {
		return tc.builtins.Error
	}
	if tc.result.ClassRefs[owner] || !tc.types.IsClass(ot) {
		tc.report(diag.SemaNotClassField, sp, "cannot access field '%s' from '%s'", tc.b.Name(name), tc.label(ot))
		return tc.builtins.Error
	}

	memberID := tc.table.LookupMember(tc.table.ClassByType(ot), name)
	member := tc.table.Symbols.Get(memberID)
	if member == nil {
		tc.report(diag.SemaFieldNotFound, sp, "field '%s' not found in '%s'", tc.b.Name(name), tc.label(ot))
		return tc.builtins.Error
	}
	if member.IsFunction() {
		tc.result.ExprSymbols[id] = memberID
		return member.Type
	}
	// доступ запрещён, но тип поля сохраняем
	if !tc.types.Compatible(tc.classType(), ot) {
		tc.report(diag.SemaFieldNotAccessible, sp, "field '%s' of '%s' not accessible here", tc.b.Name(name), tc.label(ot))
	}
	tc.result.ExprSymbols[id] = memberID
	tc.result.LValues[id] = LValueMember
	return member.Type
}
