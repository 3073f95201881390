package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"decaf/internal/ast"
	"decaf/internal/sema"
	"decaf/internal/source"
	"decaf/internal/types"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is non-empty and within file content bounds
// 2) every class span is non-empty and fully contained in file.Span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	for _, id := range f.Classes {
		item := b.Items.Get(id)
		if item == nil {
			return fmt.Errorf("nil class for id=%d", id)
		}
		sp := item.Span
		if sp.Empty() {
			return fmt.Errorf("empty class span: %v", sp)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("class span %v is outside file span %v", sp, f.Span)
		}
	}
	return nil
}

// CheckTypeInvariants verifies the output contract of a clean check:
// every allocated expression is typed, none with a sentinel, and the
// scope stack ended balanced.
func CheckTypeInvariants(b *ast.Builder, res *sema.Result) error {
	var errs []error
	if res.Stats.Opens != res.Stats.Closes {
		errs = append(errs, fmt.Errorf("scope stack unbalanced: %d opens, %d closes", res.Stats.Opens, res.Stats.Closes))
	}
	builtins := res.TypeInterner.Builtins()
	for i := uint32(1); i <= b.Exprs.Len(); i++ {
		id := ast.ExprID(i)
		t, ok := res.ExprTypes[id]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("expr %d (%s) has no type", id, b.Exprs.Get(id).Kind))
		case t == builtins.Unknown || t == builtins.Error || t == types.NoTypeID:
			errs = append(errs, fmt.Errorf("expr %d (%s) typed %s", id, b.Exprs.Get(id).Kind, types.Label(res.TypeInterner, t)))
		}
	}
	return errors.Join(errs...)
}
