package types

import (
	"fmt"

	"fortio.org/safecast"

	"decaf/internal/source"
)

// Builtins stores TypeIDs for primitive and sentinel types.
type Builtins struct {
	Int     TypeID
	Bool    TypeID
	String  TypeID
	Void    TypeID
	Null    TypeID
	Error   TypeID
	Unknown TypeID
}

// Interner hands out one TypeID per structural descriptor; classes are
// nominal and get a fresh ID per registration.
type Interner struct {
	Strings *source.Interner

	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	classes  []ClassInfo
	fns      []FnInfo
}

func NewInterner(strs *source.Interner) *Interner {
	in := &Interner{
		Strings: strs,
		types:   []Type{{Kind: KindInvalid}},
		index:   make(map[Type]TypeID, 32),
		classes: []ClassInfo{{}}, // слот 0 зарезервирован
		fns:     []FnInfo{{}},
	}
	in.builtins = Builtins{
		Int:     in.Intern(Type{Kind: KindInt}),
		Bool:    in.Intern(Type{Kind: KindBool}),
		String:  in.Intern(Type{Kind: KindString}),
		Void:    in.Intern(Type{Kind: KindVoid}),
		Null:    in.Intern(Type{Kind: KindNull}),
		Error:   in.Intern(Type{Kind: KindError}),
		Unknown: in.Intern(Type{Kind: KindUnknown}),
	}
	return in
}

func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern returns the ID for a structural descriptor.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	id := in.internRaw(t)
	in.index[t] = id
	return id
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	in.types = append(in.types, t)
	return TypeID(n)
}

func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// KindOf returns KindInvalid for unknown IDs.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

// Array interns elem[].
func (in *Interner) Array(elem TypeID) TypeID {
	return in.Intern(MakeArray(elem))
}

// ArrayElem returns the element type of an array type.
func (in *Interner) ArrayElem(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindArray {
		return NoTypeID, false
	}
	return tt.Elem, true
}

func (in *Interner) IsClass(id TypeID) bool { return in.KindOf(id) == KindClass }
func (in *Interner) IsArray(id TypeID) bool { return in.KindOf(id) == KindArray }
func (in *Interner) IsFn(id TypeID) bool    { return in.KindOf(id) == KindFn }

// IsSentinel reports Error and Unknown.
func (in *Interner) IsSentinel(id TypeID) bool {
	return id == in.builtins.Error || id == in.builtins.Unknown
}

func (in *Interner) Len() int { return len(in.types) }
