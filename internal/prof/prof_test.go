package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "run.trace"),
	}
	require.True(t, cfg.Enabled())

	s, err := Start(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, p := range []string{cfg.CPU, cfg.Mem, cfg.Trace} {
		st, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, st.Size(), p)
	}
}

func TestSessionBadPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir")
	_, err := Start(Config{CPU: filepath.Join(missing, "cpu.pprof")})
	assert.ErrorContains(t, err, "failed to start cpu profile")

	// трассировка не стартовала, cpu-профиль должен быть остановлен
	cpu := filepath.Join(t.TempDir(), "cpu.pprof")
	_, err = Start(Config{CPU: cpu, Trace: filepath.Join(missing, "run.trace")})
	assert.ErrorContains(t, err, "failed to start runtime trace")
	s, err := Start(Config{CPU: cpu})
	require.NoError(t, err)
	assert.NoError(t, s.Stop())

	var none *Session
	assert.NoError(t, none.Stop())
	assert.False(t, Config{}.Enabled())
}
