package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"decaf/internal/trace"
)

func TestLevelFiltersScopes(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)

	pass := trace.Begin(tr, trace.ScopePass, "check", 0)
	class := trace.Begin(tr, trace.ScopeClass, "class:Main", pass.ID())
	method := trace.Begin(tr, trace.ScopeMethod, "method:main", class.ID())
	method.End("")
	class.End("")
	pass.WithExtra("exprs", "12").End("ok")

	out := buf.String()
	assert.Contains(t, out, "→ check")
	assert.Contains(t, out, "→ class:Main")
	assert.NotContains(t, out, "method:main")
	assert.Contains(t, out, "← check (ok) {exprs=12}")
	assert.Zero(t, method.ID())
}

func TestNDJSONEvents(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatNDJSON)
	trace.Begin(tr, trace.ScopeDriver, "decaf check", 0).End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &ev))
	assert.Equal(t, "end", ev["kind"])
	assert.Equal(t, "driver", ev["scope"])
	assert.Equal(t, "decaf check", ev["name"])
}

func TestRingKeepsTail(t *testing.T) {
	ring := trace.NewRingTracer(3, trace.LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		trace.Point(ring, trace.ScopePass, name, "", 0)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	assert.Equal(t, []string{"c", "d", "e"}, names)

	var buf bytes.Buffer
	require.NoError(t, ring.Dump(&buf, trace.FormatMsgpack))
	dec := msgpack.NewDecoder(&buf)
	var first trace.Event
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "c", first.Name)
	assert.Equal(t, trace.KindPoint, first.Kind)
}

func TestNewAndContext(t *testing.T) {
	tr, err := trace.New(trace.Config{Level: trace.LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())

	var buf bytes.Buffer
	tr, err = trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeBoth, Output: &buf})
	require.NoError(t, err)
	require.NotNil(t, trace.RingOf(tr))

	ctx := trace.WithTracer(context.Background(), tr)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
	ctx = trace.WithSpan(ctx, span)
	assert.Equal(t, span.ID(), trace.CurrentSpan(ctx).SpanID)
	span.End("")
	require.NoError(t, tr.Flush())

	assert.Len(t, trace.RingOf(tr).Snapshot(), 2)
	assert.Equal(t, trace.Nop, trace.FromContext(context.Background()))
}

func TestParsers(t *testing.T) {
	lvl, err := trace.ParseLevel("DETAIL")
	require.NoError(t, err)
	assert.Equal(t, trace.LevelDetail, lvl)
	_, err = trace.ParseLevel("loud")
	assert.Error(t, err)

	f, err := trace.ParseFormat("msgpack")
	require.NoError(t, err)
	assert.Equal(t, trace.FormatMsgpack, f)
	assert.Equal(t, trace.FormatNDJSON, trace.FormatFromPath("out/trace.ndjson"))
	assert.Equal(t, trace.FormatText, trace.FormatFromPath("-"))

	_, err = trace.ParseMode("disk")
	assert.Error(t, err)
}
