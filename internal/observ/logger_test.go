package observ

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"":      zapcore.WarnLevel,
		"DEBUG": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(zapcore.WarnLevel, &buf)
	log.Info("hidden")
	log.Warn("precondition failed", zap.String("file", "a.graphql"))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "precondition failed")
	assert.Contains(t, out, `"file": "a.graphql"`)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("parse")
	timer.End(idx, "3 files")
	report := timer.Report()
	require.Len(t, report.Phases, 1)
	assert.Equal(t, "parse", report.Phases[0].Name)
	assert.Equal(t, "3 files", report.Phases[0].Note)
	assert.Contains(t, timer.Summary(), "total")

	fields := timer.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "parse", fields[0].Key)
	assert.Equal(t, "total", fields[1].Key)
}
