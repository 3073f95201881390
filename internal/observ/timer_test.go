package observ

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock advances by step on every reading.
func stepClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = stepClock(time.Millisecond)

	stop := tm.Track("parse")
	stop("classes=2")
	idx := tm.Begin("check")
	tm.End(idx, "")
	tm.End(42, "ignored")

	r := tm.Report()
	require.Len(t, r.Phases, 2)
	assert.Equal(t, PhaseReport{Name: "parse", DurationMS: 1, Note: "classes=2"}, r.Phases[0])
	assert.InDelta(t, 2.0, r.TotalMS, 1e-9)
	assert.Contains(t, tm.Summary(), "// classes=2")
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("bind")("")
	assert.Equal(t, -1, tm.Begin("x"))
	assert.Equal(t, Report{}, tm.Report())
}

func TestReportMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1, Note: "a.decaf"}, {Name: "check", DurationMS: 2}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "load", DurationMS: 1}, {Name: "parse", DurationMS: 4}}}

	m := a.Merge(b)
	assert.InDelta(t, 8.0, m.TotalMS, 1e-9)
	names := make([]string, 0, len(m.Phases))
	for _, p := range m.Phases {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"parse", "check", "load"}, names)

	parse, ok := m.Phase("parse")
	require.True(t, ok)
	assert.InDelta(t, 5.0, parse.DurationMS, 1e-9)
	assert.Empty(t, parse.Note)
	_, ok = m.Phase("emit")
	assert.False(t, ok)

	// исходные отчёты не меняются
	assert.Equal(t, "a.decaf", a.Phases[0].Note)
}
