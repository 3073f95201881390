package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates the closed set of Decaf types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindBool
	KindString
	KindVoid
	KindNull
	// KindError is the recovery sentinel: absorbs every operation silently.
	KindError
	// KindUnknown types a `var` binding whose type is not fixed yet.
	KindUnknown
	KindArray
	KindClass
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindError:
		return "error"
	case KindUnknown:
		return "unknown"
	case KindArray:
		return "array"
	case KindClass:
		return "class"
	case KindFn:
		return "func"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor. Elem is set for arrays; Payload indexes
// the class or function side tables.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}

func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}
