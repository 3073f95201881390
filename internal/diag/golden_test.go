package diag

import (
	"testing"

	"decaf/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	file := fs.Add("/workspace/testdata/sample.decaf", []byte("a\nb\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevWarning,
			Code:     SemaBadAssignment,
			Message:  "second",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nwrapped",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "see here"}},
		},
	}

	want := "error SYN2001 testdata/sample.decaf:1:1 first line wrapped\n" +
		"note SYN2001 testdata/sample.decaf:2:1 see here\n" +
		"warning SEM3111 testdata/sample.decaf:2:1 second"
	if got := FormatGoldenDiagnostics(diags, fs, true); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	r.Report(SemaBadTestExpr, SevError, source.Span{Start: 9, End: 10}, "late", nil)
	r.Report(SemaNotArray, SevError, source.Span{Start: 1, End: 2}, "early", nil)
	r.Report(SemaNotArray, SevError, source.Span{Start: 0, End: 1}, "dropped", nil)

	if bag.Len() != 2 || bag.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d", bag.Len(), bag.Dropped())
	}
	bag.Sort()
	if bag.Items()[0].Message != "early" {
		t.Errorf("sort order: %q first", bag.Items()[0].Message)
	}
	if !bag.HasErrors() || bag.Count(SemaNotArray) != 1 {
		t.Error("unexpected bag contents")
	}
}

func TestBagUnbounded(t *testing.T) {
	for _, limit := range []int{0, -3} {
		bag := NewBag(limit)
		r := BagReporter{Bag: bag}
		for i := range 100 {
			r.Report(SemaNotArray, SevError, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x", nil)
		}
		if bag.Len() != 100 || bag.Dropped() != 0 || bag.Cap() != 0 {
			t.Fatalf("limit %d: len=%d dropped=%d cap=%d", limit, bag.Len(), bag.Dropped(), bag.Cap())
		}
		other := NewBag(1)
		other.Add(&Diagnostic{Severity: SevError, Code: SemaNotArray})
		bag.Merge(other)
		if bag.Len() != 101 || bag.Cap() != 0 {
			t.Fatalf("limit %d after merge: len=%d cap=%d", limit, bag.Len(), bag.Cap())
		}
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 3, End: 4}
	ReportError(r, SemaUndeclaredVar, sp, "undeclared variable 'x'").Emit()
	ReportError(r, SemaUndeclaredVar, sp, "undeclared variable 'x'").Emit()
	ReportError(r, SemaUndeclaredVar, sp, "undeclared variable 'y'").Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:      "LEX1001",
		SynExpectSemicolon:  "SYN2002",
		SemaBadArgCount:     "SEM3120",
		IOLoadFileError:     "IO4001",
		ProjManifestInvalid: "PRJ5001",
		UnknownCode:         "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d: got %s, want %s", code, got, want)
		}
	}
	if SemaBadForeachType.Title() == UnknownCode.Title() {
		t.Error("missing title for SemaBadForeachType")
	}
}
