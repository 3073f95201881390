package diagfmt

import (
	"decaf/internal/ast"
	"decaf/internal/sema"
	"decaf/internal/source"
	"decaf/internal/types"
)

// SemanticsInput carries a checked file for the type dump.
type SemanticsInput struct {
	Builder *ast.Builder
	Result  *sema.Result
}

// ExprTypeJSON is one row of the expression type table.
type ExprTypeJSON struct {
	ExprID   uint32       `json:"expr_id"`
	Kind     string       `json:"kind"`
	Type     string       `json:"type"`
	LValue   string       `json:"lvalue,omitempty"`
	ClassRef bool         `json:"class_ref,omitempty"`
	Length   bool         `json:"array_length,omitempty"`
	Location LocationJSON `json:"location"`
}

// BuildExprTypes lists every typed expression in allocation order.
func BuildExprTypes(in *SemanticsInput, fs *source.FileSet, opts JSONOpts) []ExprTypeJSON {
	if in == nil || in.Builder == nil || in.Result == nil || in.Result.TypeInterner == nil {
		return nil
	}
	res := in.Result
	n := in.Builder.Exprs.Len()
	out := make([]ExprTypeJSON, 0, n)
	for raw := uint32(1); raw <= n; raw++ {
		id := ast.ExprID(raw)
		t, ok := res.ExprTypes[id]
		if !ok {
			continue
		}
		e := in.Builder.Exprs.Get(id)
		row := ExprTypeJSON{
			ExprID:   raw,
			Kind:     e.Kind.String(),
			Type:     types.Label(res.TypeInterner, t),
			ClassRef: res.ClassRefs[id],
			Length:   res.ArrayLength[id],
			Location: makeLocation(e.Span, fs, opts.PathMode, opts.IncludePositions),
		}
		if lv := res.LValues[id]; lv != sema.LValueNone {
			row.LValue = lv.String()
		}
		out = append(out, row)
	}
	return out
}
