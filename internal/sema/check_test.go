package sema_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/testkit"
)

const prelude = `
class A {
	int x;
	int f(int a, bool b) { return a; }
	static int k() { return 1; }
	void g() { }
}
class B extends A {
	int y;
}
class Main {
	int m;
	void run() {
%s
	}
	static void main() {
%s
	}
}
`

func inStatic(tb testing.TB, body string) *testkit.Program {
	tb.Helper()
	return testkit.CheckSource(tb, fmt.Sprintf(prelude, "", body))
}

func inInstance(tb testing.TB, body string) *testkit.Program {
	tb.Helper()
	return testkit.CheckSource(tb, fmt.Sprintf(prelude, body, ""))
}

func assertCodes(t *testing.T, p *testkit.Program, want ...diag.Code) {
	t.Helper()
	got := p.Codes()
	if !slices.Equal(got, want) {
		t.Errorf("codes = %v, want %v\n%s", got, want, p.Golden())
	}
}

func TestCleanProgram(t *testing.T) {
	p := testkit.CheckSource(t, `
class Shape {
	int sides;
	int area() { return 0; }
	void grow(int by) { sides = sides + by; }
}
class Square extends Shape {
	int side;
	int area() { return side * side; }
	static class Square make(int s) {
		class Square q = new Square();
		q.side = s;
		return q;
	}
}
class Main {
	static void main() {
		class Shape s = Square.make(3);
		int[] xs = new int[5];
		var total = 0;
		int i = 0;
		while (i < xs.length()) { xs[i] = i % 2; i = i + 1; }
		for (i = 0; i < 3; i = i + 1) { if (i == 2) break; }
		foreach (var x in xs while x > 0) { total = total + x; }
		bool ok = instanceof(s, Square) && s != null;
		class Square sq = (class Square) s;
		string[] names = "a" %% 3;
		string first = names[0] default "none";
		if { ok : Print(total, first); ||| !ok : Print("no"); }
		scopy(sq, sq);
		s.grow(2);
		Print(ReadInteger() + s.area(), ReadLine());
	}
}
`)
	require.Zero(t, p.Bag.Len(), p.Golden())
	require.NoError(t, testkit.CheckTypeInvariants(p.Builder, &p.Sema))
}

// int x = 1 + true;
func TestBinaryMismatchKeepsLeftType(t *testing.T) {
	p := testkit.CheckSource(t, "class Main {\n\tstatic void main() {\n\t\tint x = 1 + true;\n\t}\n}\n")
	assert.Equal(t, "error SEM3110 test.decaf:3:11 incompatible operands: int + bool", p.Golden())
	bin := p.ExprsOf(ast.ExprBinary)
	require.Len(t, bin, 1)
	assert.Equal(t, "int", p.TypeOf(bin[0]))
}

func TestArgCountMismatchKeepsResultType(t *testing.T) {
	p := inStatic(t, `class A a = new A(); int r = a.f(1);`)
	require.Equal(t, []diag.Code{diag.SemaBadArgCount}, p.Codes())
	assert.Contains(t, p.Bag.Items()[0].Message, "expects 2 argument(s) but 1 given")
	calls := p.ExprsOf(ast.ExprCall)
	require.Len(t, calls, 1)
	assert.Equal(t, "int", p.TypeOf(calls[0]))
}

func TestBreakOutsideLoopContinues(t *testing.T) {
	p := inStatic(t, `break; int v = true;`)
	assertCodes(t, p, diag.SemaBreakOutsideLoop, diag.SemaBadAssignment)
}

func TestVarTakesTypeOfFirstAssignment(t *testing.T) {
	p := inStatic(t, `var x; x = 5; bool y = x;`)
	require.Equal(t, []diag.Code{diag.SemaBadAssignment}, p.Codes())
	assert.Contains(t, p.Bag.Items()[0].Message, "bool = int")
	for _, id := range p.ExprsOf(ast.ExprIdent) {
		assert.Equal(t, "int", p.TypeOf(id))
	}
}

func TestMissingFieldReportedOnce(t *testing.T) {
	p := inStatic(t, `int z = new A().bar + 1;`)
	require.Equal(t, []diag.Code{diag.SemaFieldNotFound}, p.Codes())
	assert.Equal(t, "field 'bar' not found in 'class : A'", p.Bag.Items()[0].Message)
	assert.Equal(t, "error", p.TypeOf(p.IdentNamed(t, "bar")))
	bin := p.ExprsOf(ast.ExprBinary)
	require.Len(t, bin, 1)
	assert.Equal(t, "error", p.TypeOf(bin[0]))
}

func TestScopeStackBalancedWithErrors(t *testing.T) {
	p := inStatic(t, `
		int[] xs = new int[1];
		foreach (bool b in xs) { int q = nope; }
		foreach (var v in 5) { { break; } }
		while (1) { if (true) { return 3; } }
		{ { int deep = this; } }`)
	assert.NotZero(t, p.Bag.Len())
	assert.Equal(t, p.Sema.Stats.Opens, p.Sema.Stats.Closes)
	assert.Greater(t, p.Sema.Stats.Opens, 5)
}

func TestErrorAbsorbedAcrossOperators(t *testing.T) {
	p := inStatic(t, `
		int a = nope * 2 + 3 - 1;
		bool b = !missing || -gone > 3;
		Print(a, b, nope2 % 2);`)
	assertCodes(t, p, diag.SemaUndeclaredVar, diag.SemaUndeclaredVar, diag.SemaUndeclaredVar, diag.SemaUndeclaredVar)
}
