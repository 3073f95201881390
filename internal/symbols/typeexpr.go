package symbols

import (
	"fmt"

	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/types"
)

// ResolveTypeExpr converts a written type into a TypeID. Unknown classes
// and void array elements are reported and yield the Error type.
func (t *Table) ResolveTypeExpr(b *ast.Builder, id ast.TypeID, reporter diag.Reporter) types.TypeID {
	builtins := t.Types.Builtins()
	te := b.Types.Get(id)
	if te == nil {
		return builtins.Error
	}
	switch te.Kind {
	case ast.TypeBasic:
		switch te.Basic {
		case ast.BasicInt:
			return builtins.Int
		case ast.BasicBool:
			return builtins.Bool
		case ast.BasicString:
			return builtins.String
		case ast.BasicVoid:
			return builtins.Void
		}
	case ast.TypeClass:
		cls := t.LookupClass(te.Name)
		if !cls.IsValid() {
			msg := fmt.Sprintf("class '%s' not found", b.Name(te.Name))
			diag.ReportError(reporter, diag.SemaClassNotFound, te.Span, msg).Emit()
			return builtins.Error
		}
		return t.Symbols.Get(cls).Type
	case ast.TypeArray:
		elem := t.ResolveTypeExpr(b, te.Elem, reporter)
		switch elem {
		case builtins.Error:
			return builtins.Error
		case builtins.Void:
			diag.ReportError(reporter, diag.SemaBadArrayElement, te.Span, "array element type must be non-void known type").Emit()
			return builtins.Error
		}
		return t.Types.Array(elem)
	}
	return builtins.Error
}
