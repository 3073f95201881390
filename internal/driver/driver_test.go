package driver_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decaf/internal/diag"
	"decaf/internal/driver"
	"decaf/internal/trace"
)

const cleanSrc = `class Counter {
	int n;
	void bump(int by) { n = n + by; }
}
class Main {
	static void main() {
		class Counter c = new Counter();
		int[] xs = new int[3];
		foreach (var x in xs) { c.bump(x); }
	}
}
`

const badAddSrc = "class Main {\n\tstatic void main() {\n\t\tint x = 1 + true;\n\t}\n}\n"

func writeFile(t *testing.T, path, src string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

type recordingSink struct {
	mu     sync.Mutex
	events []driver.Event
}

func (s *recordingSink) OnEvent(ev driver.Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *recordingSink) last(file string) driver.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out driver.Event
	for _, ev := range s.events {
		if ev.File == file {
			out = ev
		}
	}
	return out
}

func TestCheckFileClean(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "main.decaf"), cleanSrc)
	_, res, err := driver.CheckFile(context.Background(), path, driver.Options{MaxDiagnostics: 16, Timings: true, RequireMain: true})
	require.NoError(t, err)

	assert.Zero(t, res.Bag.Len())
	require.NotNil(t, res.Sema)
	assert.Equal(t, res.Sema.Stats.Opens, res.Sema.Stats.Closes)

	require.NotNil(t, res.Timing)
	var names []string
	for _, p := range res.Timing.Phases {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"load", "parse", "bind", "check"}, names)
	parse, _ := res.Timing.Phase("parse")
	assert.Equal(t, "classes=2", parse.Note)
}

func TestCheckFileSyntaxErrorStopsBeforeBinding(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "broken.decaf"), "class Main { static void main() { int x = ; } }\n")
	_, res, err := driver.CheckFile(context.Background(), path, driver.Options{MaxDiagnostics: 16})
	require.NoError(t, err)

	assert.Positive(t, res.Errors())
	assert.Nil(t, res.Bound)
	assert.Nil(t, res.Sema)
	assert.Nil(t, res.Timing)
	for _, d := range res.Bag.Items() {
		assert.Less(t, int(d.Code), 3000, "semantic diagnostic %s on a broken tree", d.Code.ID())
	}
}

func TestCheckFileZeroLimitKeepsAll(t *testing.T) {
	src := "class Main { static void main() { int a = true; int b = true; int c = true; } }\n"
	path := writeFile(t, filepath.Join(t.TempDir(), "many.decaf"), src)
	_, res, err := driver.CheckFile(context.Background(), path, driver.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Bag.Count(diag.SemaBadAssignment))
	assert.Zero(t, res.Bag.Dropped())
}

func TestCheckFileMissing(t *testing.T) {
	_, res, err := driver.CheckFile(context.Background(), filepath.Join(t.TempDir(), "nope.decaf"), driver.Options{})
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.decaf"), cleanSrc)
	b := writeFile(t, filepath.Join(dir, "sub", "b.decaf"), badAddSrc)
	writeFile(t, filepath.Join(dir, ".cache", "c.decaf"), badAddSrc)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not decaf")
	missing := filepath.Join(dir, "z.decaf")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), missing))

	sink := &recordingSink{}
	fs, results, err := driver.CheckDir(context.Background(), dir, driver.Options{
		MaxDiagnostics: 16, Jobs: 2, Timings: true, Progress: sink,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{a, b, missing}, []string{results[0].Path, results[1].Path, results[2].Path})

	assert.Zero(t, results[0].Errors())
	assert.Equal(t, 1, results[1].Bag.Count(diag.SemaBadBinaryOperands))
	assert.Equal(t, 1, results[2].Bag.Count(diag.IOLoadFileError))
	assert.Equal(t, missing, fs.Get(results[2].Bag.Items()[0].Primary.File).Path)

	assert.Equal(t, driver.StatusDone, sink.last(a).Status)
	assert.Equal(t, driver.StatusError, sink.last(b).Status)
	assert.Equal(t, driver.StageLoad, sink.last(missing).Stage)

	merged := driver.MergeBags(results, 1)
	assert.Equal(t, 2, merged.Len())
	total := driver.MergeTimings(results)
	check, ok := total.Phase("check")
	require.True(t, ok)
	assert.GreaterOrEqual(t, check.DurationMS, 0.0)
	_, ok = total.Phase("load")
	assert.True(t, ok)
}

func TestCheckDirEmpty(t *testing.T) {
	fs, results, err := driver.CheckDir(context.Background(), t.TempDir(), driver.Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, fs.Len())
}

func TestCheckTraced(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "main.decaf"), badAddSrc)
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	_, _, err := driver.CheckFile(ctx, path, driver.Options{MaxDiagnostics: 4})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "→ file")
	assert.Contains(t, out, "parse (errors=0)")
	assert.Contains(t, out, "→ check")
	assert.Contains(t, out, "diags=1")
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "t.decaf"), "int x;")
	res, err := driver.Tokenize(path, 8)
	require.NoError(t, err)
	assert.Len(t, res.Tokens, 4)
	assert.Zero(t, res.Bag.Len())
}
