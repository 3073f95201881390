package types

import (
	"fmt"

	"fortio.org/safecast"

	"decaf/internal/source"
)

// ClassInfo stores nominal data for a class type.
type ClassInfo struct {
	Name  source.StringID
	Decl  source.Span
	Super TypeID
}

// RegisterClass allocates a new nominal class type.
func (in *Interner) RegisterClass(name source.StringID, decl source.Span) TypeID {
	in.classes = append(in.classes, ClassInfo{Name: name, Decl: decl})
	slot, err := safecast.Conv[uint32](len(in.classes) - 1)
	if err != nil {
		panic(fmt.Errorf("class info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindClass, Payload: slot})
}

// SetClassSuper links a class to its parent. Callers must reject cycles.
func (in *Interner) SetClassSuper(id, super TypeID) {
	if info := in.classInfo(id); info != nil {
		info.Super = super
	}
}

func (in *Interner) ClassInfo(id TypeID) (*ClassInfo, bool) {
	info := in.classInfo(id)
	return info, info != nil
}

func (in *Interner) classInfo(id TypeID) *ClassInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindClass || int(tt.Payload) >= len(in.classes) {
		return nil
	}
	return &in.classes[tt.Payload]
}

// IsSubclass reports whether sub equals sup or inherits from it.
func (in *Interner) IsSubclass(sub, sup TypeID) bool {
	// guard against a cyclic chain left by a broken program
	for steps := 0; sub != NoTypeID && steps <= len(in.classes); steps++ {
		if sub == sup {
			return true
		}
		info := in.classInfo(sub)
		if info == nil {
			return false
		}
		sub = info.Super
	}
	return false
}
