package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// FnInfo stores the signature of a method. For instance methods the
// receiver class is Params[0].
type FnInfo struct {
	Params []TypeID
	Result TypeID
}

// RegisterFn creates or finds a structurally equal function type.
func (in *Interner) RegisterFn(params []TypeID, result TypeID) TypeID {
	for slot := 1; slot < len(in.fns); slot++ {
		info := in.fns[slot]
		if info.Result == result && slices.Equal(info.Params, params) {
			return in.index[Type{Kind: KindFn, Payload: uint32(slot)}] // #nosec G115 -- bounded by appendFnInfo
		}
	}
	in.fns = append(in.fns, FnInfo{Params: slices.Clone(params), Result: result})
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return in.Intern(Type{Kind: KindFn, Payload: slot})
}

func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn || int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}
