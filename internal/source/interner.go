package source

import (
	"fmt"

	"fortio.org/safecast"
)

// StringID is a handle into Interner. NoStringID is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner maps identifier text to dense IDs.
type Interner struct {
	strs  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		strs:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID for s, allocating one on first sight.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.strs))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	id := StringID(n)
	s = string([]byte(s)) // не держим ссылку на буфер файла
	in.strs = append(in.strs, s)
	in.index[s] = id
	return id
}

func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.strs) {
		return "", false
	}
	return in.strs[id], true
}

func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("source: unknown string id %d", id))
	}
	return s
}

// Len counts interned strings including the empty one.
func (in *Interner) Len() int { return len(in.strs) }
