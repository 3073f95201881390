package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decaf/internal/source"
)

func newTestInterner() (*Interner, *source.Interner) {
	strs := source.NewInterner()
	return NewInterner(strs), strs
}

func TestInternerBuiltins(t *testing.T) {
	in, _ := newTestInterner()
	b := in.Builtins()
	for _, id := range []TypeID{b.Int, b.Bool, b.String, b.Void, b.Null, b.Error, b.Unknown} {
		require.NotEqual(t, NoTypeID, id)
	}
	assert.Equal(t, KindError, in.KindOf(b.Error))
	assert.True(t, in.IsSentinel(b.Unknown))
	assert.False(t, in.IsSentinel(b.Int))
}

func TestArraysAreStructural(t *testing.T) {
	in, _ := newTestInterner()
	b := in.Builtins()
	a1 := in.Array(b.Int)
	a2 := in.Array(b.Int)
	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, in.Array(b.Bool))

	elem, ok := in.ArrayElem(in.Array(a1))
	require.True(t, ok)
	assert.Equal(t, a1, elem)
}

func TestClassesAreNominal(t *testing.T) {
	in, strs := newTestInterner()
	name := strs.Intern("A")
	a1 := in.RegisterClass(name, source.Span{})
	a2 := in.RegisterClass(name, source.Span{})
	assert.NotEqual(t, a1, a2)
	assert.Equal(t, "class : A", Label(in, a1))
}

func TestFnDedup(t *testing.T) {
	in, _ := newTestInterner()
	b := in.Builtins()
	f1 := in.RegisterFn([]TypeID{b.Int, b.Bool}, b.Void)
	f2 := in.RegisterFn([]TypeID{b.Int, b.Bool}, b.Void)
	f3 := in.RegisterFn([]TypeID{b.Int}, b.Void)
	assert.Equal(t, f1, f2)
	assert.NotEqual(t, f1, f3)

	info, ok := in.FnInfo(f1)
	require.True(t, ok)
	assert.Equal(t, b.Void, info.Result)
	assert.Equal(t, "(int, bool) -> void", Label(in, f1))
}

func TestCompatible(t *testing.T) {
	in, strs := newTestInterner()
	b := in.Builtins()
	animal := in.RegisterClass(strs.Intern("Animal"), source.Span{})
	dog := in.RegisterClass(strs.Intern("Dog"), source.Span{})
	cat := in.RegisterClass(strs.Intern("Cat"), source.Span{})
	in.SetClassSuper(dog, animal)
	in.SetClassSuper(cat, animal)

	tests := []struct {
		name     string
		src, dst TypeID
		want     bool
	}{
		{"identity", b.Int, b.Int, true},
		{"int to bool", b.Int, b.Bool, false},
		{"error source", b.Error, b.Bool, true},
		{"error target", b.String, b.Error, true},
		{"unknown source", b.Unknown, b.Int, false},
		{"unknown target", b.Int, b.Unknown, false},
		{"unknown self", b.Unknown, b.Unknown, false},
		{"null to class", b.Null, dog, true},
		{"null to int", b.Null, b.Int, false},
		{"subclass up", dog, animal, true},
		{"superclass down", animal, dog, false},
		{"siblings", dog, cat, false},
		{"array same elem", in.Array(b.Int), in.Array(b.Int), true},
		{"array no element coercion", in.Array(dog), in.Array(animal), false},
		{"class to array", dog, in.Array(dog), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, in.Compatible(tt.src, tt.dst))
		})
	}
}

func TestIsSubclassSurvivesCycle(t *testing.T) {
	in, strs := newTestInterner()
	a := in.RegisterClass(strs.Intern("A"), source.Span{})
	c := in.RegisterClass(strs.Intern("B"), source.Span{})
	in.SetClassSuper(a, c)
	in.SetClassSuper(c, a)
	other := in.RegisterClass(strs.Intern("C"), source.Span{})
	assert.False(t, in.IsSubclass(a, other))
}

func TestLabels(t *testing.T) {
	in, _ := newTestInterner()
	b := in.Builtins()
	assert.Equal(t, "int[][]", Label(in, in.Array(in.Array(b.Int))))
	assert.Equal(t, "error", Label(in, b.Error))
	assert.Equal(t, "<invalid>", Label(in, NoTypeID))
}
