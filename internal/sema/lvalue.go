package sema

// LValueKind tells the code generator how an assignable expression is stored.
type LValueKind uint8

const (
	LValueNone LValueKind = iota
	LValueLocal
	LValueParam
	LValueMember
	LValueArray
)

func (k LValueKind) String() string {
	switch k {
	case LValueLocal:
		return "local"
	case LValueParam:
		return "param"
	case LValueMember:
		return "member"
	case LValueArray:
		return "array"
	}
	return "none"
}
