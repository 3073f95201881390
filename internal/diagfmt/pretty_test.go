package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decaf/internal/diag"
	"decaf/internal/diagfmt"
	"decaf/internal/lexer"
	"decaf/internal/source"
	"decaf/internal/testkit"
)

const badAdd = "class Main {\n\tstatic void main() {\n\t\tint x = 1 + true;\n\t}\n}\n"

func TestPrettyUnderlinesSpan(t *testing.T) {
	p := testkit.CheckSource(t, badAdd)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, p.Bag, p.FS, diagfmt.PrettyOpts{})

	want := "test.decaf:3:11: error SEM3110: incompatible operands: int + bool\n" +
		" 3 |         int x = 1 + true;\n" +
		"   | " + strings.Repeat(" ", 16) + "^~~~~~~~\n"
	assert.Equal(t, want, buf.String())
}

func TestPrettyWideRunes(t *testing.T) {
	p := testkit.CheckSource(t, "class Main {\n\tstatic void main() {\n\t\tstring s = \"日本\"; int x = 1 + \"日本\";\n\t}\n}\n")
	require.Equal(t, []diag.Code{diag.SemaBadBinaryOperands}, p.Codes(), p.Golden())
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, p.Bag, p.FS, diagfmt.PrettyOpts{})

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "   | "+strings.Repeat(" ", 35)+"^"+strings.Repeat("~", 9), lines[2])
}

func TestPrettyContextAndNotes(t *testing.T) {
	p := testkit.CheckSource(t, "class Main {\n\tstatic void main() {\n\t\tint[] xs = new int[1];\n\t\tint y = 1;\n\t\tforeach (var y in xs) { }\n\t}\n}\n")
	require.Equal(t, []diag.Code{diag.SemaDuplicateDecl}, p.Codes())
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, p.Bag, p.FS, diagfmt.PrettyOpts{Context: 1, ShowNotes: true, TabWidth: 2})

	out := buf.String()
	assert.Contains(t, out, " 4 |     int y = 1;\n")
	assert.Contains(t, out, " 5 |     foreach (var y in xs) { }\n")
	assert.Contains(t, out, "  note: earlier declaration\n")
	assert.Contains(t, out, "   --> test.decaf:4:7\n")
}

func TestShort(t *testing.T) {
	p := testkit.CheckSource(t, badAdd)
	var buf bytes.Buffer
	diagfmt.Short(&buf, p.Bag, p.FS, diagfmt.PathModeBasename)
	assert.Equal(t, "test.decaf:3:11: error SEM3110: incompatible operands: int + bool\n", buf.String())
}

func TestJSONWithTypes(t *testing.T) {
	p := testkit.CheckSource(t, badAdd)
	out := diagfmt.BuildDiagnosticsOutput(p.Bag, p.FS, diagfmt.JSONOpts{IncludePositions: true},
		&diagfmt.SemanticsInput{Builder: p.Builder, Result: &p.Sema})

	require.Equal(t, 1, out.Count)
	d := out.Diagnostics[0]
	assert.Equal(t, "SEM3110", d.Code)
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, uint32(3), d.Location.StartLine)
	assert.Equal(t, uint32(11), d.Location.StartCol)

	var binary []string
	for _, row := range out.Types {
		if row.Kind == "binary" {
			binary = append(binary, row.Type)
		}
	}
	assert.Equal(t, []string{"int"}, binary)
	assert.Len(t, out.Types, 3)

	var buf bytes.Buffer
	require.NoError(t, diagfmt.JSON(&buf, p.Bag, p.FS, diagfmt.JSONOpts{Max: 0}, nil))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 1, decoded["count"])
	assert.NotContains(t, decoded, "types")
}

func TestSarif(t *testing.T) {
	p := testkit.CheckSource(t, badAdd)
	var buf bytes.Buffer
	err := diagfmt.Sarif(&buf, []*diag.Bag{p.Bag}, p.FS, diagfmt.SarifRunMeta{
		ToolName: "decaf", ToolVersion: "test", InvocationArgs: []string{"check", "test.decaf"},
	})
	require.NoError(t, err)

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Invocations []struct {
				ExecutionSuccessful bool `json:"executionSuccessful"`
			} `json:"invocations"`
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	require.Len(t, log.Runs[0].Results, 1)
	assert.Equal(t, "SEM3110", log.Runs[0].Results[0].RuleID)
	assert.Equal(t, "error", log.Runs[0].Results[0].Level)
	assert.False(t, log.Runs[0].Invocations[0].ExecutionSuccessful)
}

func TestTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.decaf", []byte("int x;")))
	toks := lexer.New(file, lexer.Options{}).All()

	var buf bytes.Buffer
	require.NoError(t, diagfmt.FormatTokensPretty(&buf, toks, fs))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], `"x" at 1:5-1:6`)

	buf.Reset()
	require.NoError(t, diagfmt.FormatTokensJSON(&buf, toks))
	var decoded []diagfmt.TokenOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 4)
}
