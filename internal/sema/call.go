package sema

import (
	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/source"
	"decaf/internal/symbols"
	"decaf/internal/types"
)

const lengthMethod = "length"

// checkCall resolves `[receiver.]name(args)`. Arguments are typed before
// resolution so every sub-expression carries a type even when the callee
// is unknown.
func (tc *typeChecker) checkCall(id ast.ExprID) types.TypeID {
	data, _ := tc.b.Exprs.Call(id)
	receiver, name, nameSpan := data.Receiver, data.Name, data.NameSpan
	args := append([]ast.ExprID(nil), data.Args...)
	sp := tc.exprSpan(id)
	nameText := tc.b.Name(name)

	recvType := types.NoTypeID
	if receiver.IsValid() {
		recvType = tc.checkExprRef(receiver, true)
	}
	argTypes := make([]types.TypeID, len(args))
	for i, arg := range args {
		argTypes[i] = tc.checkExpr(arg)
	}

	classSym := tc.class
	if receiver.IsValid() {
		if tc.absorbs(recvType) {
			return tc.builtins.Error
		}
		if tc.types.IsArray(recvType) && nameText == lengthMethod {
			if len(args) > 0 {
				tc.report(diag.SemaBadLengthArgs, sp, "function 'length' expects 0 argument(s) but %d given", len(args))
			}
			tc.result.ArrayLength[id] = true
			return tc.builtins.Int
		}
		if !tc.types.IsClass(recvType) {
			if nameText == lengthMethod {
				tc.report(diag.SemaBadLengthReceiver, sp, "'length' can only be applied to arrays")
			} else {
				tc.report(diag.SemaNotClassField, sp, "cannot access field '%s' from '%s'", nameText, tc.label(recvType))
			}
			return tc.builtins.Error
		}
		classSym = tc.table.ClassByType(recvType)
	}
	cls := tc.table.Symbols.Get(classSym)
	if cls == nil {
		return tc.builtins.Error
	}
	classType := cls.Type

	fnID := tc.table.LookupMember(classSym, name)
	fn := tc.table.Symbols.Get(fnID)
	if fn == nil {
		tc.report(diag.SemaFieldNotFound, nameSpan, "field '%s' not found in '%s'", nameText, tc.label(classType))
		return tc.builtins.Error
	}
	if !fn.IsFunction() {
		tc.report(diag.SemaNotClassMethod, nameSpan, "'%s' is not a method in class '%s'", nameText, tc.label(classType))
		return tc.builtins.Error
	}
	tc.result.ExprSymbols[id] = fnID
	sig, _ := tc.table.Signature(fnID)

	tc.checkReceiver(id, receiver, fnID, fn)
	params := sig.Params
	if !fn.Static && len(params) > 0 {
		params = params[1:]
	}
	tc.checkArgs(nameText, sp, args, argTypes, params)
	return sig.Result
}

// checkReceiver enforces static/instance dispatch and rewrites the
// receiver slot: cleared for static targets, `this` for bare instance
// calls.
func (tc *typeChecker) checkReceiver(id, receiver ast.ExprID, fnID symbols.SymbolID, fn *symbols.Symbol) {
	sp := tc.exprSpan(id)
	switch {
	case fn.Static:
		if receiver.IsValid() {
			data, _ := tc.b.Exprs.Call(id)
			data.Receiver = ast.NoExprID
		}
	case !receiver.IsValid():
		if tc.static() {
			tc.report(diag.SemaStaticRefInstance, sp,
				"can not reference a non-static field '%s' from static method '%s'", tc.name(fnID), tc.name(tc.method))
			return
		}
		this := tc.b.Exprs.NewThis(sp.Head())
		tc.result.ExprTypes[this] = tc.classType()
		data, _ := tc.b.Exprs.Call(id)
		data.Receiver = this
	case tc.result.ClassRefs[receiver]:
		tc.report(diag.SemaInstanceViaClass, sp,
			"cannot call instance method '%s' through class '%s'", tc.name(fnID), tc.b.Name(tc.identName(receiver)))
	}
}

func (tc *typeChecker) checkArgs(name string, sp source.Span, args []ast.ExprID, argTypes, params []types.TypeID) {
	if len(params) != len(args) {
		tc.report(diag.SemaBadArgCount, sp, "function '%s' expects %d argument(s) but %d given", name, len(params), len(args))
		return
	}
	for i, at := range argTypes {
		if tc.absorbs(at) || tc.types.Compatible(at, params[i]) {
			continue
		}
		tc.report(diag.SemaBadArgType, tc.exprSpan(args[i]),
			"incompatible argument %d: %s given, %s expected", i+1, tc.label(at), tc.label(params[i]))
	}
}

func (tc *typeChecker) identName(id ast.ExprID) source.StringID {
	if data, ok := tc.b.Exprs.Ident(id); ok {
		return data.Name
	}
	return source.NoStringID
}
