package symbols

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks arena invariants: parent/child backlinks, name index
// coverage and symbol ownership. All violations are joined.
func (t *Table) Validate() error {
	var errs []error

	for idx := 1; idx < len(t.Scopes.data); idx++ {
		id := ScopeID(idx) // #nosec G115 -- arena bounded by safecast on insert
		sc := &t.Scopes.data[idx]
		if sc.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", id))
		}
		if sc.Parent.IsValid() {
			parent := t.Scopes.Get(sc.Parent)
			switch {
			case parent == nil || sc.Parent == id:
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", id, sc.Parent))
			case !slices.Contains(parent.Children, id):
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", id, sc.Parent))
			}
		}
		for _, child := range sc.Children {
			if c := t.Scopes.Get(child); c == nil || c.Parent != id {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", id, child))
			}
		}
		if len(sc.NameIndex) != len(sc.Symbols) {
			errs = append(errs, fmt.Errorf("scope %d indexes %d names for %d symbols", id, len(sc.NameIndex), len(sc.Symbols)))
		}
		for name, symID := range sc.NameIndex {
			if !slices.Contains(sc.Symbols, symID) {
				errs = append(errs, fmt.Errorf("scope %d name %d references unlisted symbol %d", id, name, symID))
			}
		}
	}

	for idx := 1; idx < len(t.Symbols.data); idx++ {
		id := SymbolID(idx) // #nosec G115 -- arena bounded by safecast on insert
		sym := &t.Symbols.data[idx]
		sc := t.Scopes.Get(sym.Scope)
		if sc == nil {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", id, sym.Scope))
			continue
		}
		if sc.NameIndex[sym.Name] == id && !slices.Contains(sc.Symbols, id) {
			errs = append(errs, fmt.Errorf("symbol %d is missing from scope %d list", id, sym.Scope))
		}
	}

	return errors.Join(errs...)
}
