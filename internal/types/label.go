package types

import (
	"strings"
)

// Label renders a type the way diagnostics print it: "int", "class : A",
// "int[][]", "(class : A, int) -> void".
func Label(in *Interner, id TypeID) string {
	return labelDepth(in, id, 0)
}

func labelDepth(in *Interner, id TypeID, depth int) string {
	if depth > 16 {
		return "..."
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindArray:
		return labelDepth(in, tt.Elem, depth+1) + "[]"
	case KindClass:
		name := "?"
		if info, ok := in.ClassInfo(id); ok && in.Strings != nil {
			if s, ok := in.Strings.Lookup(info.Name); ok {
				name = s
			}
		}
		return "class : " + name
	case KindFn:
		info, _ := in.FnInfo(id)
		var sb strings.Builder
		sb.WriteByte('(')
		for i, p := range info.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(labelDepth(in, p, depth+1))
		}
		sb.WriteString(") -> ")
		sb.WriteString(labelDepth(in, info.Result, depth+1))
		return sb.String()
	default:
		return tt.Kind.String()
	}
}
