package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("main.decaf", []byte("class A {\n  int x;\n}\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{9, LineCol{1, 10}},
		{10, LineCol{2, 1}},
		{12, LineCol{2, 3}},
		{19, LineCol{3, 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x", []byte("first\nsecond\nthird")))
	if got := f.Line(1); got != "first" {
		t.Errorf("line 1 = %q", got)
	}
	if got := f.Line(3); got != "third" {
		t.Errorf("line 3 = %q", got)
	}
	if got := f.Line(4); got != "" {
		t.Errorf("line 4 = %q, want empty", got)
	}
	if got := f.Line(0); got != "" {
		t.Errorf("line 0 = %q, want empty", got)
	}
}

func TestFileSetShadowing(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("a.decaf", []byte("one"))
	second := fs.AddVirtual("./a.decaf", []byte("two"))
	if first == second {
		t.Fatal("expected distinct ids")
	}
	f, ok := fs.GetByPath("a.decaf")
	if !ok || f.ID != second {
		t.Fatalf("GetByPath returned %v, %v", f, ok)
	}
	if string(fs.Get(first).Content) != "one" {
		t.Error("older file content lost")
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.decaf")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\rc"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\rc" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b", f.Flags)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("length")
	b := in.Intern("length")
	if a != b || a == NoStringID {
		t.Fatalf("ids %d %d", a, b)
	}
	if s := in.MustLookup(a); s != "length" {
		t.Errorf("lookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("unknown id resolved")
	}
	if in.Len() != 2 {
		t.Errorf("len = %d", in.Len())
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 1}); got != a {
		t.Errorf("cross-file cover = %v", got)
	}
	if !b.Before(a) || a.Before(b) {
		t.Error("Before ordering wrong")
	}
}
