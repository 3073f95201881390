package parser

import (
	"testing"

	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/lexer"
	"decaf/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.decaf", []byte(src)))
	bag := diag.NewBag(32)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(lx, b, Options{Reporter: rep})
	return b, res.File, bag
}

func mustParse(t *testing.T, src string) (*ast.Builder, ast.FileID) {
	t.Helper()
	b, file, bag := parseSrc(t, src)
	if bag.Len() != 0 {
		for _, d := range bag.Items() {
			t.Logf("%s %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	return b, file
}

// firstMethodBody returns the statements of the first method of the first class.
func firstMethodBody(t *testing.T, b *ast.Builder, file ast.FileID) []ast.StmtID {
	t.Helper()
	cls, ok := b.Items.Class(b.Files.Get(file).Classes[0])
	if !ok {
		t.Fatal("first item is not a class")
	}
	for _, m := range cls.Members {
		if method, ok := b.Items.Method(m); ok {
			block, _ := b.Stmts.Block(method.Body)
			return block.Stmts
		}
	}
	t.Fatal("no method")
	return nil
}

func TestParseClasses(t *testing.T) {
	b, file := mustParse(t, `
class A {
	int x;
	class A[] next;
	static void main() { }
	int get(int k, bool f) { return x; }
}
class B extends A { }
`)
	classes := b.Files.Get(file).Classes
	if len(classes) != 2 {
		t.Fatalf("classes = %d", len(classes))
	}
	a, _ := b.Items.Class(classes[0])
	if b.Name(a.Name) != "A" || len(a.Members) != 4 {
		t.Fatalf("class A: name %q members %d", b.Name(a.Name), len(a.Members))
	}
	next, ok := b.Items.Field(a.Members[1])
	if !ok {
		t.Fatal("member 1 is not a field")
	}
	if typ := b.Types.Get(next.Type); typ.Kind != ast.TypeArray || b.Types.Get(typ.Elem).Kind != ast.TypeClass {
		t.Errorf("next type kind = %v", typ.Kind)
	}
	main, _ := b.Items.Method(a.Members[2])
	if !main.Static || len(main.Params) != 0 {
		t.Errorf("main: static=%v params=%d", main.Static, len(main.Params))
	}
	get, _ := b.Items.Method(a.Members[3])
	if get.Static || len(get.Params) != 2 || b.Name(get.Params[1].Name) != "f" {
		t.Errorf("get params = %+v", get.Params)
	}
	bc, _ := b.Items.Class(classes[1])
	if b.Name(bc.Parent) != "A" {
		t.Errorf("B parent = %q", b.Name(bc.Parent))
	}
}

func TestParsePrecedence(t *testing.T) {
	b, file := mustParse(t, `class A { void f() { x = 1 + 2 * 3 < 7 || !y && z; } }`)
	body := firstMethodBody(t, b, file)
	assign, ok := b.Stmts.Assign(body[0])
	if !ok {
		t.Fatal("not an assignment")
	}
	or, ok := b.Exprs.Binary(assign.Value)
	if !ok || or.Op != ast.OpOr {
		t.Fatalf("top op = %+v", or)
	}
	lt, _ := b.Exprs.Binary(or.Left)
	if lt.Op != ast.OpLt {
		t.Errorf("left of || = %v", lt.Op)
	}
	add, _ := b.Exprs.Binary(lt.Left)
	if add.Op != ast.OpAdd {
		t.Errorf("left of < = %v", add.Op)
	}
	mul, _ := b.Exprs.Binary(add.Right)
	if mul.Op != ast.OpMul {
		t.Errorf("right of + = %v", mul.Op)
	}
	and, _ := b.Exprs.Binary(or.Right)
	if and.Op != ast.OpAnd {
		t.Errorf("right of || = %v", and.Op)
	}
	if b.Exprs.Get(and.Left).Kind != ast.ExprUnary {
		t.Errorf("left of && = %v", b.Exprs.Get(and.Left).Kind)
	}
}

func TestParseExtensions(t *testing.T) {
	b, file := mustParse(t, `
class A {
	void f(int[] a) {
		var xs = 0 %% 10;
		int v = a[3] default 7;
		foreach (int x in a while x > 0) Print(x);
		foreach (var y in a) { }
		if { v > 1 : Print(1); ||| v < 1 : Print(2); }
		scopy(b, this);
	}
}`)
	body := firstMethodBody(t, b, file)
	if len(body) != 6 {
		t.Fatalf("stmts = %d", len(body))
	}
	def, _ := b.Stmts.VarDef(body[0])
	if def.Type.IsValid() || b.Exprs.Get(def.Init).Kind != ast.ExprNewSameArray {
		t.Errorf("var def = %+v", def)
	}
	def, _ = b.Stmts.VarDef(body[1])
	if b.Exprs.Get(def.Init).Kind != ast.ExprDefaultArray {
		t.Errorf("default array kind = %v", b.Exprs.Get(def.Init).Kind)
	}
	fe, ok := b.Stmts.Foreach(body[2])
	if !ok || !fe.VarType.IsValid() || !fe.Filter.IsValid() {
		t.Errorf("foreach = %+v", fe)
	}
	fe, _ = b.Stmts.Foreach(body[3])
	if fe.VarType.IsValid() || fe.Filter.IsValid() {
		t.Errorf("foreach var = %+v", fe)
	}
	g, ok := b.Stmts.Guarded(body[4])
	if !ok || len(g.Arms) != 2 {
		t.Errorf("guarded = %+v", g)
	}
	sc, ok := b.Stmts.SCopy(body[5])
	if !ok || b.Name(sc.Dst) != "b" || b.Exprs.Get(sc.Src).Kind != ast.ExprThis {
		t.Errorf("scopy = %+v", sc)
	}
}

func TestParsePrimaries(t *testing.T) {
	b, file := mustParse(t, `
class A {
	void f() {
		o = new A();
		arr = new int[][5];
		t = instanceof(o, A);
		c = (class A) o;
		n = ReadInteger();
		o.g(1, "s").h = null;
		o.length();
	}
}`)
	body := firstMethodBody(t, b, file)
	kinds := []ast.ExprKind{ast.ExprNewClass, ast.ExprNewArray, ast.ExprInstanceOf, ast.ExprCast, ast.ExprReadInt}
	for i, want := range kinds {
		assign, _ := b.Stmts.Assign(body[i])
		if got := b.Exprs.Get(assign.Value).Kind; got != want {
			t.Errorf("stmt %d: kind %v, want %v", i, got, want)
		}
	}
	arr, _ := b.Stmts.Assign(body[1])
	na, _ := b.Exprs.NewArray(arr.Value)
	if b.Types.Get(na.Elem).Kind != ast.TypeArray {
		t.Errorf("new int[][5] elem kind = %v", b.Types.Get(na.Elem).Kind)
	}
	field, _ := b.Stmts.Assign(body[5])
	id, ok := b.Exprs.Ident(field.Target)
	if !ok || b.Exprs.Get(id.Owner).Kind != ast.ExprCall {
		t.Errorf("field owner = %+v", id)
	}
	call, _ := b.Stmts.Expr(body[6])
	cd, _ := b.Exprs.Call(call.Expr)
	if b.Name(cd.Name) != "length" || !cd.Receiver.IsValid() {
		t.Errorf("length call = %+v", cd)
	}
}

func TestParseRecovers(t *testing.T) {
	b, file, bag := parseSrc(t, `
class A {
	void f() {
		x = ;
		y = 2;
	}
	int g() { return 1 }
}
class B { }
`)
	if bag.Count(diag.SynExpectExpression) != 1 {
		t.Errorf("expect-expression count = %d", bag.Count(diag.SynExpectExpression))
	}
	if bag.Count(diag.SynExpectSemicolon) != 1 {
		t.Errorf("expect-semicolon count = %d", bag.Count(diag.SynExpectSemicolon))
	}
	if got := len(b.Files.Get(file).Classes); got != 2 {
		t.Errorf("classes after recovery = %d", got)
	}
	body := firstMethodBody(t, b, file)
	if len(body) != 1 {
		t.Errorf("surviving stmts = %d", len(body))
	}
}

func TestParseRejectsNonCallStatement(t *testing.T) {
	_, _, bag := parseSrc(t, `class A { void f() { 1 + 2; f() = 3; } }`)
	if bag.Count(diag.SynUnexpectedToken) != 1 {
		t.Errorf("non-call stmt count = %d", bag.Count(diag.SynUnexpectedToken))
	}
	if bag.Count(diag.SynBadAssignTarget) != 1 {
		t.Errorf("bad target count = %d", bag.Count(diag.SynBadAssignTarget))
	}
}

func TestParseTopLevelGarbage(t *testing.T) {
	b, file, bag := parseSrc(t, `int x; class A { }`)
	if bag.Count(diag.SynUnexpectedTopLevel) != 1 {
		t.Errorf("top-level count = %d", bag.Count(diag.SynUnexpectedTopLevel))
	}
	if len(b.Files.Get(file).Classes) != 1 {
		t.Error("class A lost")
	}
}
