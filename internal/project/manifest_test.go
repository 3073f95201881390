package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndDiscover(t *testing.T) {
	root := t.TempDir()
	path, err := WriteManifest(root, DefaultManifest("demo"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ManifestName), path)

	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	src := filepath.Join(nested, "main.decaf")
	require.NoError(t, os.WriteFile(src, []byte("class Main {}"), 0o600))

	m, ok, err := Discover(src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, root, m.Root)
	assert.Equal(t, "demo", m.Package.Name)
	assert.Equal(t, 100, m.Check.MaxDiagnostics)
	assert.Equal(t, "pretty", m.Check.Format)
	assert.True(t, m.Check.RequireMain)
	assert.Equal(t, "off", m.Trace.Level)

	_, err = WriteManifest(root, DefaultManifest("again"))
	assert.ErrorIs(t, err, ErrAlreadyInitialized)

	gotRoot, ok, err := FindProjectRoot(nested)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, root, gotRoot)
}

func TestDiscoverNone(t *testing.T) {
	// в /tmp-дереве теста манифеста быть не должно
	dir := t.TempDir()
	if _, ok, _ := FindManifest(filepath.Dir(dir)); ok {
		t.Skip("decaf.toml above the temp dir")
	}
	m, ok, err := Discover(dir)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, m)
}

func TestLoadManifestRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "[check]\nmax_diag = 3\n", "unknown keys check.max_diag"},
		{"negative jobs", "[check]\njobs = -1\n", "check.jobs must be >= 0"},
		{"bad format", "[check]\nformat = \"xml\"\n", `check.format "xml"`},
		{"syntax", "[check\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o600))
			_, err := LoadManifest(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadManifestFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	body := `[check]
max_diagnostics = 7
format = "json"
jobs = 3
annotations = "out"

[trace]
level = "detail"
mode = "ring"
output = "trace.ndjson"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, CheckConfig{MaxDiagnostics: 7, Format: "json", Jobs: 3, Annotations: "out"}, m.Check)
	assert.Equal(t, TraceConfig{Level: "detail", Mode: "ring", Output: "trace.ndjson"}, m.Trace)
}

func TestDigest(t *testing.T) {
	a := DigestString("a")
	assert.False(t, a.IsZero())
	assert.True(t, Digest{}.IsZero())
	assert.NotEqual(t, Combine(a, DigestString("b")), Combine(DigestString("b"), a))
	assert.Len(t, a.String(), 64)
}

func TestManifestResolve(t *testing.T) {
	m := &Manifest{Root: filepath.FromSlash("/work/app")}
	assert.Equal(t, filepath.Join(m.Root, "out"), m.Resolve("out"))
	assert.Equal(t, "-", m.Resolve("-"))
	assert.Equal(t, "", m.Resolve(""))
	var none *Manifest
	assert.Equal(t, "out", none.Resolve("out"))
}
