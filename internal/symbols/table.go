package symbols

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"decaf/internal/source"
	"decaf/internal/types"
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope tree, the symbol arena and the type interner
// the symbols refer to.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	Types   *types.Interner

	global      ScopeID
	classByType map[types.TypeID]SymbolID
}

// NewTable builds a table with a single global scope. Nil interners are
// allocated fresh.
func NewTable(h Hints, strs *source.Interner, typesIn *types.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strs == nil {
		strs = source.NewInterner()
	}
	if typesIn == nil {
		typesIn = types.NewInterner(strs)
	}
	t := &Table{
		Scopes:      NewScopes(scopeCap),
		Symbols:     NewSymbols(symCap),
		Strings:     strs,
		Types:       typesIn,
		classByType: make(map[types.TypeID]SymbolID),
	}
	t.global = t.Scopes.New(ScopeGlobal, NoScopeID, source.Span{})
	return t
}

func (t *Table) Global() ScopeID { return t.global }

// Declare allocates sym inside scope. When the scope already binds the
// name, nothing is inserted and the existing symbol is returned as prev.
func (t *Table) Declare(scope ScopeID, sym Symbol) (id, prev SymbolID) {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		panic(fmt.Sprintf("symbols: declare into invalid scope %d", scope))
	}
	if existing, ok := sc.NameIndex[sym.Name]; ok {
		return NoSymbolID, existing
	}
	sym.Scope = scope
	id = t.Symbols.New(&sym)
	t.insert(scope, id)
	if sym.Kind == SymbolClass {
		t.classByType[sym.Type] = id
	}
	return id, NoSymbolID
}

func (t *Table) insert(scope ScopeID, id SymbolID) {
	sc := t.Scopes.Get(scope)
	sym := t.Symbols.Get(id)
	sc.NameIndex[sym.Name] = id
	sc.Symbols = append(sc.Symbols, id)
}

// Cancel unbinds id from its owning scope. The symbol record survives.
func (t *Table) Cancel(id SymbolID) {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return
	}
	sc := t.Scopes.Get(sym.Scope)
	if sc == nil {
		return
	}
	if sc.NameIndex[sym.Name] == id {
		delete(sc.NameIndex, sym.Name)
	}
	sc.Symbols = slices.DeleteFunc(sc.Symbols, func(s SymbolID) bool { return s == id })
}

// Redeclare removes id from its scope, attaches typ and inserts it again.
// Used once per `var` binding when its type becomes known.
func (t *Table) Redeclare(id SymbolID, typ types.TypeID) {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return
	}
	t.Cancel(id)
	sym.Type = typ
	t.insert(sym.Scope, id)
}

// LookupLocal searches a single scope.
func (t *Table) LookupLocal(scope ScopeID, name source.StringID) SymbolID {
	if sc := t.Scopes.Get(scope); sc != nil {
		return sc.NameIndex[name]
	}
	return NoSymbolID
}

// LookupClass finds a class by name in the global scope.
func (t *Table) LookupClass(name source.StringID) SymbolID {
	id := t.LookupLocal(t.global, name)
	if sym := t.Symbols.Get(id); sym != nil && sym.IsClass() {
		return id
	}
	return NoSymbolID
}

// ClassByType maps a class type back to its symbol.
func (t *Table) ClassByType(typ types.TypeID) SymbolID {
	return t.classByType[typ]
}

// LookupMember finds name among class's own members, then up the
// superclass chain.
func (t *Table) LookupMember(class SymbolID, name source.StringID) SymbolID {
	seen := 0
	for class.IsValid() && seen <= t.Symbols.Len() {
		sym := t.Symbols.Get(class)
		if sym == nil || !sym.IsClass() {
			return NoSymbolID
		}
		if id := t.LookupLocal(sym.Members, name); id.IsValid() {
			return id
		}
		class = sym.Super
		seen++
	}
	return NoSymbolID
}

// Signature returns the function type info of a method symbol.
func (t *Table) Signature(id SymbolID) (*types.FnInfo, bool) {
	sym := t.Symbols.Get(id)
	if sym == nil || !sym.IsFunction() {
		return nil, false
	}
	return t.Types.FnInfo(sym.Type)
}

// NameOf returns the symbol's name text.
func (t *Table) NameOf(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(sym.Name)
	return s
}
