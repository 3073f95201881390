package sema

import (
	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/source"
	"decaf/internal/types"
)

func (tc *typeChecker) checkExpr(id ast.ExprID) types.TypeID {
	return tc.checkExprRef(id, false)
}

// checkExprRef types id and records the result. forRef is set when id is
// the receiver of a call or field access, where a bare class name is
// legal.
func (tc *typeChecker) checkExprRef(id ast.ExprID, forRef bool) types.TypeID {
	expr := tc.b.Exprs.Get(id)
	if expr == nil {
		return tc.builtins.Error
	}
	tc.result.Stats.Exprs++
	t := tc.typeOf(id, expr.Kind, forRef)
	tc.result.ExprTypes[id] = t
	return t
}

func (tc *typeChecker) typeOf(id ast.ExprID, kind ast.ExprKind, forRef bool) types.TypeID {
	b := tc.builtins
	switch kind {
	case ast.ExprLit:
		return tc.checkLit(id)
	case ast.ExprNull:
		return b.Null
	case ast.ExprReadInt:
		return b.Int
	case ast.ExprReadLine:
		return b.String
	case ast.ExprThis:
		return tc.checkThis(id)
	case ast.ExprIdent:
		return tc.checkIdent(id, forRef)
	case ast.ExprCall:
		return tc.checkCall(id)
	case ast.ExprUnary:
		return tc.checkUnary(id)
	case ast.ExprBinary:
		return tc.checkBinary(id)
	case ast.ExprIndex:
		return tc.checkIndex(id)
	case ast.ExprNewClass:
		return tc.checkNewClass(id)
	case ast.ExprNewArray:
		return tc.checkNewArray(id)
	case ast.ExprInstanceOf, ast.ExprCast:
		return tc.checkClassTest(id, kind)
	case ast.ExprNewSameArray:
		return tc.checkNewSameArray(id)
	case ast.ExprDefaultArray:
		return tc.checkDefaultArray(id)
	}
	return b.Error
}

func (tc *typeChecker) checkLit(id ast.ExprID) types.TypeID {
	lit, _ := tc.b.Exprs.Lit(id)
	switch lit.Kind {
	case ast.LitInt:
		return tc.builtins.Int
	case ast.LitBool:
		return tc.builtins.Bool
	case ast.LitString:
		return tc.builtins.String
	}
	return tc.builtins.Error
}

func (tc *typeChecker) checkUnary(id ast.ExprID) types.TypeID {
	data, _ := tc.b.Exprs.Unary(id)
	op := data.Op
	t := tc.checkExpr(data.Operand)
	sp := tc.exprSpan(id)
	if op == ast.OpNot {
		// результат всегда bool, даже при ошибке
		if t != tc.builtins.Bool && !tc.absorbs(t) {
			tc.report(diag.SemaBadUnaryOperand, sp, "incompatible operand: %s %s", op, tc.label(t))
		}
		return tc.builtins.Bool
	}
	if t == tc.builtins.Int {
		return t
	}
	if !tc.absorbs(t) {
		tc.report(diag.SemaBadUnaryOperand, sp, "incompatible operand: %s %s", op, tc.label(t))
	}
	return tc.builtins.Error
}

func (tc *typeChecker) checkBinary(id ast.ExprID) types.TypeID {
	data, _ := tc.b.Exprs.Binary(id)
	op, left, right := data.Op, data.Left, data.Right
	l := tc.checkExpr(left)
	r := tc.checkExpr(right)
	return tc.checkBinaryOp(tc.exprSpan(id), op, l, r)
}

// checkBinaryOp types `l op r`. Arithmetic keeps the left type so a chain
// of bad operands is reported once.
func (tc *typeChecker) checkBinaryOp(sp source.Span, op ast.BinaryOp, l, r types.TypeID) types.TypeID {
	b := tc.builtins
	if tc.absorbs(l) || tc.absorbs(r) {
		switch op {
		case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
			return l
		case ast.OpMod:
			return b.Int
		default:
			return b.Bool
		}
	}

	var ok bool
	result := b.Bool
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		ok = l == b.Int && r == b.Int
		result = l
	case ast.OpMod:
		ok = l == b.Int && r == b.Int
		result = b.Int
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		ok = l == b.Int && r == b.Int
	case ast.OpEq, ast.OpNe:
		ok = tc.types.Compatible(l, r) || tc.types.Compatible(r, l)
	case ast.OpAnd, ast.OpOr:
		ok = l == b.Bool && r == b.Bool
	}
	if !ok {
		tc.reportBinary(sp, op, l, r)
	}
	return result
}

func (tc *typeChecker) checkThis(id ast.ExprID) types.TypeID {
	if tc.static() {
		tc.report(diag.SemaThisInStatic, tc.exprSpan(id), "can not use this in static function")
		return tc.builtins.Error
	}
	return tc.classType()
}

func (tc *typeChecker) checkNewClass(id ast.ExprID) types.TypeID {
	data, _ := tc.b.Exprs.NewClass(id)
	cls := tc.table.LookupClass(data.Class)
	if !cls.IsValid() {
		tc.report(diag.SemaClassNotFound, tc.exprSpan(id), "class '%s' not found", tc.b.Name(data.Class))
		return tc.builtins.Error
	}
	tc.result.ExprSymbols[id] = cls
	return tc.table.Symbols.Get(cls).Type
}

// checkClassTest covers instanceof and casts. Both require a class-typed
// operand and a known target class.
func (tc *typeChecker) checkClassTest(id ast.ExprID, kind ast.ExprKind) types.TypeID {
	data, _ := tc.b.Exprs.ClassTest(id)
	className, value := data.Class, data.Value
	vt := tc.checkExpr(value)
	if !tc.types.IsClass(vt) && !tc.absorbs(vt) {
		tc.report(diag.SemaNotClassType, tc.exprSpan(value), "%s is not a class type", tc.label(vt))
	}
	cls := tc.table.LookupClass(className)
	if !cls.IsValid() {
		tc.report(diag.SemaClassNotFound, tc.exprSpan(id), "class '%s' not found", tc.b.Name(className))
	} else {
		tc.result.ExprSymbols[id] = cls
	}
	if kind == ast.ExprInstanceOf {
		return tc.builtins.Bool
	}
	if !cls.IsValid() {
		return tc.builtins.Error
	}
	return tc.table.Symbols.Get(cls).Type
}
