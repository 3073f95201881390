package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"decaf/internal/source"
)

type goldenLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

// FormatGoldenDiagnostics renders one line per diagnostic
// ("error SEM3100 path:line:col message"), sorted by position.
// Paths are relative to the file set's base directory.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	lines := make([]goldenLine, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, golden(fs, severityLabel(d.Severity), d.Code, d.Primary, d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, golden(fs, "note", d.Code, n.Span, n.Msg))
		}
	}
	slices.SortStableFunc(lines, func(a, b goldenLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
	}
	return sb.String()
}

func golden(fs *source.FileSet, sev string, code Code, sp source.Span, msg string) goldenLine {
	start, _ := fs.Resolve(sp)
	path := fs.Get(sp.File).DisplayPath("relative", fs.BaseDir())
	return goldenLine{
		sev:  sev,
		code: code.ID(),
		path: strings.TrimPrefix(path, "./"),
		line: start.Line,
		col:  start.Col,
		msg:  strings.Join(strings.Fields(msg), " "),
	}
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}
