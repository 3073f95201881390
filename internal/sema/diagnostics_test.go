package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"decaf/internal/diag"
	"decaf/internal/testkit"
)

func TestStaticBodyDiagnostics(t *testing.T) {
	cases := []struct {
		name string
		body string
		want []diag.Code
	}{
		{"binary chain absorbs", `int v = nope * 2 + 3 - 1;`, []diag.Code{diag.SemaUndeclaredVar}},
		{"class as value", `class A v = A;`, []diag.Code{diag.SemaUndeclaredVar}},
		{"field through class", `int v = A.x;`, []diag.Code{diag.SemaNotClassField}},
		{"field of other class", `class A a = new A(); int v = a.x;`, []diag.Code{diag.SemaFieldNotAccessible}},
		{"inaccessible field keeps type", `class A a = new A(); int v = a.x + true;`, []diag.Code{diag.SemaFieldNotAccessible, diag.SemaBadBinaryOperands}},
		{"use before declaration", `int y = z; int z = 2;`, []diag.Code{diag.SemaUndeclaredVar}},
		{"instance method through class", `A.g();`, []diag.Code{diag.SemaInstanceViaClass}},
		{"static method through class", `int v = A.k();`, nil},
		{"inherited method", `class B b = new B(); int v = b.f(1, true);`, nil},
		{"upcast", `class A a = new B();`, nil},
		{"downcast needs cast", `class B b = new A();`, []diag.Code{diag.SemaBadAssignment}},
		{"explicit downcast", `class A a = new B(); class B b = (class B) a;`, nil},
		{"instance call from static", `run();`, []diag.Code{diag.SemaStaticRefInstance}},
		{"field call", `m();`, []diag.Code{diag.SemaNotClassMethod}},
		{"missing method", `A.nope();`, []diag.Code{diag.SemaFieldNotFound}},
		{"field from static", `int v = m;`, []diag.Code{diag.SemaStaticRefInstance}},
		{"this in static", `int v = this.m;`, []diag.Code{diag.SemaThisInStatic}},
		{"argument types", `class A a = new A(); a.f(true, 1);`, []diag.Code{diag.SemaBadArgType, diag.SemaBadArgType}},
		{"bad argument absorbed", `class A a = new A(); int v = a.f(nope, false);`, []diag.Code{diag.SemaUndeclaredVar}},
		{"unary minus", `int v = -true;`, []diag.Code{diag.SemaBadUnaryOperand}},
		{"unary not", `bool v = !1;`, []diag.Code{diag.SemaBadUnaryOperand}},
		{"equality mismatch", `bool v = 1 == true;`, []diag.Code{diag.SemaBadBinaryOperands}},
		{"null equality", `class A a = null; bool v = a == null && null != a;`, nil},
		{"logic on ints", `bool v = 1 && 2;`, []diag.Code{diag.SemaBadBinaryOperands}},
		{"compare strings", `bool v = "a" < "b";`, []diag.Code{diag.SemaBadBinaryOperands}},
		{"modulo result", `int v = 1 % false;`, []diag.Code{diag.SemaBadBinaryOperands}},
		{"if condition", `if (1) { }`, []diag.Code{diag.SemaBadTestExpr}},
		{"while condition", `while ("s") { break; }`, []diag.Code{diag.SemaBadTestExpr}},
		{"for condition", `int i; for (i = 0; i; i = i + 1) { }`, []diag.Code{diag.SemaBadTestExpr}},
		{"guard condition", `if { 1 : Print(1); ||| true : Print(2); }`, []diag.Code{diag.SemaBadTestExpr}},
		{"break outside loop", `break; int v = true;`, []diag.Code{diag.SemaBreakOutsideLoop, diag.SemaBadAssignment}},
		{"break in foreach", `int[] xs = new int[1]; foreach (var x in xs) { break; }`, nil},
		{"print class", `Print(1, new A());`, []diag.Code{diag.SemaBadPrintArg}},
		{"instanceof on int", `bool v = instanceof(1, A);`, []diag.Code{diag.SemaNotClassType}},
		{"cast to unknown class", `class A a = (class Nope) new A();`, []diag.Code{diag.SemaClassNotFound}},
		{"new unknown class", `class A a = new Nope();`, []diag.Code{diag.SemaClassNotFound}},
		{"index non array", `int v = 3[0];`, []diag.Code{diag.SemaNotArray}},
		{"index not int", `int[] xs = new int[1]; int v = xs[true];`, []diag.Code{diag.SemaSubscriptNotInt}},
		{"new array length", `int[] xs = new int[true];`, []diag.Code{diag.SemaBadNewArrayLength}},
		{"new void array", `int[] xs = new void[3];`, []diag.Code{diag.SemaBadArrayElement}},
		{"length on string", `int v = "s".length();`, []diag.Code{diag.SemaBadLengthReceiver}},
		{"length with args", `int[] xs = new int[1]; int v = xs.length(1);`, []diag.Code{diag.SemaBadLengthArgs}},
		{"same array", `int[] xs = 0 %% 4;`, nil},
		{"same array bad length", `int[] xs = 1 %% true;`, []diag.Code{diag.SemaBadArrayIndex}},
		{"same array of void", `int[] xs = A.g() %% 2;`, []diag.Code{diag.SemaInstanceViaClass, diag.SemaBadArrayElement}},
		{"default value mismatch", `int[] xs = new int[1]; int v = xs[0] default true;`, []diag.Code{diag.SemaBadDefaultValue}},
		{"default on non array", `int v = 3[0] default 1;`, []diag.Code{diag.SemaBadArrayOperand}},
		{"default bad index", `int[] xs = new int[1]; int v = xs["0"] default 1;`, []diag.Code{diag.SemaBadArrayIndex}},
		{"foreach declared mismatch", `int[] xs = new int[2]; foreach (bool b in xs) { int q = true; }`, []diag.Code{diag.SemaBadForeachType}},
		{"foreach over int", `foreach (int v in 3) { }`, []diag.Code{diag.SemaBadArrayOperand}},
		{"foreach filter", `int[] xs = new int[2]; foreach (var x in xs while x) { }`, []diag.Code{diag.SemaBadTestExpr}},
		{"foreach upcast", `class B[] bs = new class B[2]; foreach (class A a in bs) { a.g(); }`, nil},
		{"foreach shadows local", `int x = 1; int[] xs = new int[1]; foreach (var x in xs) { }`, []diag.Code{diag.SemaDuplicateDecl}},
		{"scopy", `class A a = new A(); scopy(a, new A());`, nil},
		{"scopy source", `class A a = new A(); scopy(a, new B());`, []diag.Code{diag.SemaBadScopySource}},
		{"scopy non class", `int i = 1; scopy(i, 2);`, []diag.Code{diag.SemaBadScopyArg, diag.SemaBadScopyArg}},
		{"scopy undeclared", `scopy(nope, new A());`, []diag.Code{diag.SemaUndeclaredVar}},
		{"var inference", `var x; x = 5; bool y = x;`, []diag.Code{diag.SemaBadAssignment}},
		{"var initialized", `var s = "a"; int n = s;`, []diag.Code{diag.SemaBadAssignment}},
		{"void return value", `return 1;`, []diag.Code{diag.SemaBadReturnType}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertCodes(t, inStatic(t, tc.body), tc.want...)
		})
	}
}

func TestArgumentPositions(t *testing.T) {
	p := inStatic(t, `class A a = new A(); a.f(true, 1);`)
	assertCodes(t, p, diag.SemaBadArgType, diag.SemaBadArgType)
	assert.Contains(t, p.Golden(), "incompatible argument 1: bool given, int expected")
	assert.Contains(t, p.Golden(), "incompatible argument 2: int given, bool expected")

	p = inStatic(t, `Print(1, new A(), "s");`)
	assertCodes(t, p, diag.SemaBadPrintArg)
	assert.Contains(t, p.Golden(), "incompatible argument 2: class : A given, int/bool/string expected")
}

func TestInstanceBodyDiagnostics(t *testing.T) {
	cases := []struct {
		name string
		body string
		want []diag.Code
	}{
		{"implicit field", `m = m + 1;`, nil},
		{"implicit call", `run();`, nil},
		{"assign to method", `run = 1;`, []diag.Code{diag.SemaBadAssignment}},
		{"field before shadowing local", `int y = m; int m = 2;`, nil},
		{"explicit this", `int v = this.m; this.run();`, nil},
		{"static through class", `A.k();`, nil},
		{"this is a class", `class Main me = this; Print(me.m);`, nil},
		{"this mismatch", `class A a = this;`, []diag.Code{diag.SemaBadAssignment}},
		{"empty return", `return;`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertCodes(t, inInstance(t, tc.body), tc.want...)
		})
	}
}

func TestReturnDiagnostics(t *testing.T) {
	p := testkit.CheckSource(t, `
class Main {
	int f() { return; }
	void g() { return 3; }
	int h() { return true; }
	class Main k() { return nope; }
	class Main self() { return this; }
	static void main() { }
}
`)
	assertCodes(t, p, diag.SemaBadReturnType, diag.SemaBadReturnType, diag.SemaBadReturnType, diag.SemaUndeclaredVar)
	assert.Contains(t, p.Golden(), "incompatible return: void given, int expected")
	assert.Contains(t, p.Golden(), "incompatible return: int given, void expected")
	assert.Contains(t, p.Golden(), "incompatible return: bool given, int expected")
}
