package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decaf/internal/driver"
	"decaf/internal/project"
)

const badAdd = "class Main {\n\tstatic void main() {\n\t\tint x = 1 + true;\n\t}\n}\n"

func checkDir(t *testing.T, files map[string]string) (string, *driver.Options, func(checkConfig) string) {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600))
	}
	opts := &driver.Options{MaxDiagnostics: 16}
	render := func(cfg checkConfig) string {
		fs, results, err := driver.CheckDir(context.Background(), dir, *opts)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, renderResults(&buf, fs, results, cfg, false))
		return buf.String()
	}
	return dir, opts, render
}

func TestInitProjectChecksClean(t *testing.T) {
	target := filepath.Join(t.TempDir(), "hello")
	created, err := initProject(target)
	require.NoError(t, err)
	assert.Equal(t, []string{project.ManifestName, "main.decaf"}, created)

	m, ok, err := project.Discover(target)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", m.Package.Name)

	_, res, err := driver.CheckFile(context.Background(), filepath.Join(target, "main.decaf"),
		driver.Options{MaxDiagnostics: 16, RequireMain: m.Check.RequireMain})
	require.NoError(t, err)
	assert.Zero(t, res.Bag.Len())

	_, err = initProject(target)
	assert.ErrorIs(t, err, project.ErrAlreadyInitialized)
}

func TestRenderFormats(t *testing.T) {
	_, _, render := checkDir(t, map[string]string{"a.decaf": badAdd, "b.decaf": badAdd})

	short := render(checkConfig{format: "short", maxDiagnostics: 16})
	lines := strings.Split(strings.TrimSpace(short), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "a.decaf:3:11: error SEM3110: incompatible operands: int + bool"), lines[0])
	assert.Contains(t, lines[1], "b.decaf:3:11")

	pretty := render(checkConfig{format: "pretty"})
	assert.Equal(t, 2, strings.Count(pretty, "error SEM3110"))
	assert.Contains(t, pretty, "\n\n")

	var perFile map[string]struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(render(checkConfig{format: "json"})), &perFile))
	assert.Len(t, perFile, 2)
	for _, v := range perFile {
		assert.Equal(t, 1, v.Count)
	}

	var sarif struct {
		Runs []struct {
			Results []json.RawMessage `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal([]byte(render(checkConfig{format: "sarif"})), &sarif))
	require.Len(t, sarif.Runs, 1)
	assert.Len(t, sarif.Runs[0].Results, 2)

	_, _, renderClean := checkDir(t, map[string]string{"ok.decaf": "class Main { static void main() { } }\n"})
	assert.Equal(t, "ok: 1 file(s) checked\n", renderClean(checkConfig{format: "pretty"}))
}

func TestEmitAnnotationsSkipsBrokenFiles(t *testing.T) {
	dir, opts, _ := checkDir(t, map[string]string{
		"good.decaf": "class Main { static void main() { int x; x = 2; } }\n",
		"bad.decaf":  badAdd,
	})
	fs, results, err := driver.CheckDir(context.Background(), dir, *opts)
	require.NoError(t, err)

	out := filepath.Join(dir, "annot")
	var log bytes.Buffer
	require.NoError(t, emitAnnotations(&log, fs, results, out))
	assert.FileExists(t, filepath.Join(out, "good.decaf.annot"))
	assert.NoFileExists(t, filepath.Join(out, "bad.decaf.annot"))
	assert.Equal(t, 1, strings.Count(log.String(), "wrote "))

	ann, err := driver.ReadAnnotations(filepath.Join(out, "good.decaf.annot"))
	require.NoError(t, err)
	assert.NotEmpty(t, ann.Exprs)
}

func TestReadUIMode(t *testing.T) {
	mode, err := readUIMode(" ON ")
	require.NoError(t, err)
	assert.Equal(t, uiModeOn, mode)
	assert.True(t, shouldUseTUI(mode, "json"))
	mode, err = readUIMode("")
	require.NoError(t, err)
	assert.Equal(t, uiModeAuto, mode)
	assert.False(t, shouldUseTUI(uiModeOff, "pretty"))
	_, err = readUIMode("sometimes")
	assert.Error(t, err)
}
