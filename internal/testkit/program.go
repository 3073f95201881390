package testkit

import (
	"context"
	"testing"

	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/lexer"
	"decaf/internal/parser"
	"decaf/internal/sema"
	"decaf/internal/source"
	"decaf/internal/symbols"
	"decaf/internal/types"
)

// Program is one source snippet run through parse, bind and check.
type Program struct {
	FS      *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Bound   symbols.Result
	Sema    sema.Result
	Bag     *diag.Bag
}

// CheckSource runs the whole frontend over src. Syntax errors fail the test;
// semantic diagnostics land in Bag.
func CheckSource(tb testing.TB, src string) *Program {
	tb.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.decaf", []byte(src)))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}

	strs := source.NewInterner()
	b := ast.NewBuilder(ast.Hints{}, strs)
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	pr := parser.ParseFile(lx, b, parser.Options{Reporter: rep})
	if pr.Errors != 0 || bag.HasErrors() {
		tb.Fatalf("syntax errors:\n%s", diag.FormatGoldenDiagnostics(bag.Items(), fs, false))
	}
	if err := CheckSpanInvariants(b, pr.File, file); err != nil {
		tb.Fatalf("span invariants: %v", err)
	}

	table := symbols.NewTable(symbols.Hints{}, strs, types.NewInterner(strs))
	bound := symbols.ResolveFile(b, pr.File, symbols.ResolveOptions{Table: table, Reporter: rep, Validate: true})
	res := sema.Check(context.Background(), b, &bound, sema.Options{Reporter: rep})
	return &Program{FS: fs, File: file, Builder: b, Bound: bound, Sema: res, Bag: bag}
}

// Golden renders the diagnostics one per line.
func (p *Program) Golden() string {
	return diag.FormatGoldenDiagnostics(p.Bag.Items(), p.FS, false)
}

// Codes lists diagnostic codes in report order.
func (p *Program) Codes() []diag.Code {
	out := make([]diag.Code, 0, p.Bag.Len())
	for _, d := range p.Bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// Label renders a type the way diagnostics do.
func (p *Program) Label(t types.TypeID) string {
	return types.Label(p.Sema.TypeInterner, t)
}

// ExprsOf returns every expression of kind in allocation order.
func (p *Program) ExprsOf(kind ast.ExprKind) []ast.ExprID {
	var out []ast.ExprID
	for i := uint32(1); i <= p.Builder.Exprs.Len(); i++ {
		if p.Builder.Exprs.Get(ast.ExprID(i)).Kind == kind {
			out = append(out, ast.ExprID(i))
		}
	}
	return out
}

// IdentNamed returns the first identifier expression named name.
func (p *Program) IdentNamed(tb testing.TB, name string) ast.ExprID {
	tb.Helper()
	for _, id := range p.ExprsOf(ast.ExprIdent) {
		data, _ := p.Builder.Exprs.Ident(id)
		if p.Builder.Name(data.Name) == name {
			return id
		}
	}
	tb.Fatalf("no identifier %q", name)
	return ast.NoExprID
}

// TypeOf is the recorded type label of expr.
func (p *Program) TypeOf(id ast.ExprID) string {
	return p.Label(p.Sema.ExprTypes[id])
}
