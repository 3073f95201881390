package symbols

import (
	"decaf/internal/ast"
	"decaf/internal/source"
)

// ScopeKind is the lexical category of a scope.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeGlobal
	ScopeClass
	ScopeFormals
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeClass:
		return "class"
	case ScopeFormals:
		return "formals"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope maps names to symbols. Symbols keeps declaration order for
// iteration; lookup goes through NameIndex.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     SymbolID // class symbol for ScopeClass, method for ScopeFormals
	Item      ast.ItemID
	Stmt      ast.StmtID
	Span      source.Span
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
