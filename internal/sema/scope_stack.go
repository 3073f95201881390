package sema

import (
	"decaf/internal/source"
	"decaf/internal/symbols"
)

// scopeStack is the traversal cursor over the binder's scope tree.
// Frames are pushed on entry to a class, method or block and popped on
// exit; opens and closes are counted so callers can assert balance.
type scopeStack struct {
	table  *symbols.Table
	frames []symbols.ScopeID
	opens  int
	closes int
}

func newScopeStack(table *symbols.Table) *scopeStack {
	return &scopeStack{table: table, frames: make([]symbols.ScopeID, 0, 8)}
}

func (s *scopeStack) open(id symbols.ScopeID) {
	s.frames = append(s.frames, id)
	s.opens++
}

func (s *scopeStack) close() {
	if len(s.frames) == 0 {
		panic("sema: scope stack underflow")
	}
	s.frames = s.frames[:len(s.frames)-1]
	s.closes++
}

func (s *scopeStack) depth() int { return len(s.frames) }

func (s *scopeStack) current() symbols.ScopeID {
	if len(s.frames) == 0 {
		return symbols.NoScopeID
	}
	return s.frames[len(s.frames)-1]
}

// lookup searches frames innermost first. Class frames see inherited
// members. With onlyCurrent only the top frame is searched.
func (s *scopeStack) lookup(name source.StringID, onlyCurrent bool) symbols.SymbolID {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if id := s.lookupFrame(s.frames[i], name); id.IsValid() {
			return id
		}
		if onlyCurrent {
			break
		}
	}
	return symbols.NoSymbolID
}

// lookupBefore is lookup with declare-before-use for block locals: a
// local declared at or after use is skipped and the search continues
// outward.
func (s *scopeStack) lookupBefore(name source.StringID, use source.Span) symbols.SymbolID {
	for i := len(s.frames) - 1; i >= 0; i-- {
		id := s.lookupFrame(s.frames[i], name)
		if !id.IsValid() {
			continue
		}
		sc := s.table.Scopes.Get(s.frames[i])
		if sc.Kind == symbols.ScopeBlock && !s.table.Symbols.Get(id).Span.Before(use) {
			continue
		}
		return id
	}
	return symbols.NoSymbolID
}

func (s *scopeStack) lookupFrame(frame symbols.ScopeID, name source.StringID) symbols.SymbolID {
	sc := s.table.Scopes.Get(frame)
	if sc == nil {
		return symbols.NoSymbolID
	}
	if sc.Kind == symbols.ScopeClass {
		return s.table.LookupMember(sc.Owner, name)
	}
	return sc.NameIndex[name]
}

// enclosing returns the innermost open scope of kind.
func (s *scopeStack) enclosing(kind symbols.ScopeKind) symbols.ScopeID {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if sc := s.table.Scopes.Get(s.frames[i]); sc != nil && sc.Kind == kind {
			return s.frames[i]
		}
	}
	return symbols.NoScopeID
}
