package sema

import (
	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/types"
)

func (tc *typeChecker) checkIndex(id ast.ExprID) types.TypeID {
	data, _ := tc.b.Exprs.Index(id)
	array, index := data.Array, data.Index
	at := tc.checkExpr(array)
	it := tc.checkExpr(index)

	result := tc.builtins.Error
	if elem, ok := tc.types.ArrayElem(at); ok {
		result = elem
	} else if !tc.absorbs(at) {
		tc.report(diag.SemaNotArray, tc.exprSpan(array), "[] can only be applied to arrays")
	}
	// неверный индекс не портит тип элемента
	if it != tc.builtins.Int && !tc.absorbs(it) {
		tc.report(diag.SemaSubscriptNotInt, tc.exprSpan(index), "array subscript must be an integer")
	}
	tc.result.LValues[id] = LValueArray
	return result
}

// checkNewArray types `new T[n]`.
func (tc *typeChecker) checkNewArray(id ast.ExprID) types.TypeID {
	data, _ := tc.b.Exprs.NewArray(id)
	elemExpr, length := data.Elem, data.Length
	elem := tc.table.ResolveTypeExpr(tc.b, elemExpr, tc.reporter)
	if elem == tc.builtins.Void {
		tc.report(diag.SemaBadArrayElement, tc.b.Types.Get(elemExpr).Span, "array element type must be non-void known type")
		elem = tc.builtins.Error
	}
	lt := tc.checkExpr(length)
	if lt != tc.builtins.Int && !tc.absorbs(lt) {
		tc.report(diag.SemaBadNewArrayLength, tc.exprSpan(length), "new array length must be an integer")
	}
	if elem == tc.builtins.Error {
		return elem
	}
	return tc.types.Array(elem)
}

// checkNewSameArray types `value %% n`: an n-element array filled with value.
func (tc *typeChecker) checkNewSameArray(id ast.ExprID) types.TypeID {
	data, _ := tc.b.Exprs.NewSameArray(id)
	value, length := data.Value, data.Length
	vt := tc.checkExpr(value)
	lt := tc.checkExpr(length)

	ok := vt != tc.builtins.Error
	if vt == tc.builtins.Void || vt == tc.builtins.Unknown {
		tc.report(diag.SemaBadArrayElement, tc.exprSpan(value), "array element type must be non-void known type")
		ok = false
	}
	if lt != tc.builtins.Int {
		if !tc.absorbs(lt) {
			tc.report(diag.SemaBadArrayIndex, tc.exprSpan(length), "array length must be an integer")
		}
		ok = false
	}
	if !ok {
		return tc.builtins.Error
	}
	return tc.types.Array(vt)
}

// checkDefaultArray types `a[i] default d`. A bad index or operand turns
// the whole expression into Error; a mismatched default does not.
func (tc *typeChecker) checkDefaultArray(id ast.ExprID) types.TypeID {
	data, _ := tc.b.Exprs.DefaultArray(id)
	array, index, def := data.Array, data.Index, data.Default
	at := tc.checkExpr(array)
	it := tc.checkExpr(index)
	dt := tc.checkExpr(def)

	ok := true
	if it != tc.builtins.Int {
		if !tc.absorbs(it) {
			tc.report(diag.SemaBadArrayIndex, tc.exprSpan(index), "array index must be an integer")
		}
		ok = false
	}
	elem, isArray := tc.types.ArrayElem(at)
	if !isArray {
		if !tc.absorbs(at) {
			tc.report(diag.SemaBadArrayOperand, tc.exprSpan(array), "array operator can only be applied to arrays")
		}
		return tc.builtins.Error
	}
	if !tc.absorbs(dt) && !tc.types.Equal(dt, elem) {
		tc.report(diag.SemaBadDefaultValue, tc.exprSpan(def),
			"default value type %s does not match element type %s", tc.label(dt), tc.label(elem))
	}
	if !ok {
		return tc.builtins.Error
	}
	return elem
}
