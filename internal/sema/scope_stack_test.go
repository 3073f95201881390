package sema

import (
	"testing"

	"decaf/internal/source"
	"decaf/internal/symbols"
)

func declareVar(t *testing.T, table *symbols.Table, scope symbols.ScopeID, name string, at uint32) symbols.SymbolID {
	t.Helper()
	id, prev := table.Declare(scope, symbols.Symbol{
		Name:    table.Strings.Intern(name),
		Kind:    symbols.SymbolVariable,
		VarKind: symbols.VarLocal,
		Span:    source.Span{Start: at, End: at + 1},
	})
	if prev.IsValid() {
		t.Fatalf("%s already declared", name)
	}
	return id
}

func TestScopeStackLookupOrder(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil, nil)
	outer := table.Scopes.New(symbols.ScopeBlock, table.Global(), source.Span{})
	inner := table.Scopes.New(symbols.ScopeBlock, outer, source.Span{})
	outerX := declareVar(t, table, outer, "x", 10)
	innerX := declareVar(t, table, inner, "x", 20)
	y := declareVar(t, table, outer, "y", 30)

	s := newScopeStack(table)
	s.open(table.Global())
	s.open(outer)
	s.open(inner)

	x := table.Strings.Intern("x")
	if got := s.lookup(x, false); got != innerX {
		t.Fatalf("lookup x = %d, want inner %d", got, innerX)
	}
	// объявление после использования не видно, ищем дальше наружу
	if got := s.lookupBefore(x, source.Span{Start: 15}); got != outerX {
		t.Fatalf("lookupBefore x@15 = %d, want outer %d", got, outerX)
	}
	if got := s.lookupBefore(table.Strings.Intern("y"), source.Span{Start: 25}); got.IsValid() {
		t.Fatalf("y visible before its declaration")
	}
	if got := s.lookupBefore(table.Strings.Intern("y"), source.Span{Start: 35}); got != y {
		t.Fatalf("lookupBefore y@35 = %d, want %d", got, y)
	}
	if got := s.lookup(table.Strings.Intern("y"), true); got.IsValid() {
		t.Fatalf("onlyCurrent leaked into outer frame")
	}
	if got := s.enclosing(symbols.ScopeGlobal); got != table.Global() {
		t.Fatalf("enclosing global = %d", got)
	}
	if got := s.enclosing(symbols.ScopeFormals); got.IsValid() {
		t.Fatalf("enclosing formals = %d, want none", got)
	}
}

func TestScopeStackBalance(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil, nil)
	s := newScopeStack(table)
	if s.current().IsValid() {
		t.Fatal("empty stack has a current scope")
	}
	s.open(table.Global())
	s.open(table.Global())
	s.close()
	if s.depth() != 1 || s.current() != table.Global() {
		t.Fatalf("depth = %d, current = %d", s.depth(), s.current())
	}
	s.close()
	if s.opens != 2 || s.closes != 2 {
		t.Fatalf("opens=%d closes=%d", s.opens, s.closes)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("close on empty stack did not panic")
		}
	}()
	s.close()
}
