package sema

import (
	"fmt"

	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/source"
	"decaf/internal/types"
)

func (tc *typeChecker) report(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportError(tc.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

func (tc *typeChecker) exprSpan(id ast.ExprID) source.Span {
	if e := tc.b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

// checkTest reports a non-bool condition. Sentinels stay silent.
func (tc *typeChecker) checkTest(cond ast.ExprID) {
	t := tc.checkExpr(cond)
	if t != tc.builtins.Bool && !tc.absorbs(t) {
		tc.report(diag.SemaBadTestExpr, tc.exprSpan(cond), "test expression must have bool type")
	}
}

func (tc *typeChecker) reportBinary(sp source.Span, op ast.BinaryOp, l, r types.TypeID) {
	tc.report(diag.SemaBadBinaryOperands, sp, "incompatible operands: %s %s %s", tc.label(l), op, tc.label(r))
}
