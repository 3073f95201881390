package symbols

import (
	"decaf/internal/ast"
	"decaf/internal/source"
	"decaf/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVariable
	SymbolFunction
	SymbolClass
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolClass:
		return "class"
	default:
		return "invalid"
	}
}

// VarKind separates locals, parameters and fields.
type VarKind uint8

const (
	VarNone VarKind = iota
	VarLocal
	VarParam
	VarField
)

func (k VarKind) String() string {
	switch k {
	case VarLocal:
		return "local"
	case VarParam:
		return "param"
	case VarField:
		return "field"
	}
	return "none"
}

// Symbol is a declared entity. Which fields are meaningful depends on Kind:
//
//   - Variable: VarKind, Type.
//   - Function: Type (a function type whose first parameter is the receiver
//     for instance methods), Static, Formals.
//   - Class: Type (the class type), Members, Super.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span
	Type  types.TypeID

	VarKind VarKind
	Static  bool
	Formals ScopeID
	Members ScopeID
	Super   SymbolID

	Item ast.ItemID
	Stmt ast.StmtID
}

func (s *Symbol) IsVariable() bool { return s.Kind == SymbolVariable }
func (s *Symbol) IsFunction() bool { return s.Kind == SymbolFunction }
func (s *Symbol) IsClass() bool    { return s.Kind == SymbolClass }
