package types

// Compatible reports whether a value of type src may be used where dst
// is expected. Error on either side is compatible with everything;
// Unknown is compatible with nothing else.
func (in *Interner) Compatible(src, dst TypeID) bool {
	b := in.builtins
	if src == b.Error || dst == b.Error {
		return true
	}
	if src == b.Unknown || dst == b.Unknown {
		return false
	}
	if src == dst {
		return true
	}
	switch in.KindOf(src) {
	case KindNull:
		return in.IsClass(dst)
	case KindClass:
		return in.IsClass(dst) && in.IsSubclass(src, dst)
	default:
		// arrays and functions are interned structurally, so identity
		// already covered equal element types and equal signatures
		return false
	}
}

// Equal is strict identity; provided for symmetry with Compatible.
func (in *Interner) Equal(a, b TypeID) bool {
	return a == b
}
