package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vantalint/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	m := NewProgressModel("linting", []string{"a.ts", "b.graphql"}, nil).(*progressModel)

	m.Update(eventMsg(driver.Event{File: "a.ts", Stage: driver.StageParse, Status: driver.StatusWorking}))
	assert.Equal(t, "parsing", m.items[0].status)

	m.Update(eventMsg(driver.Event{File: "a.ts", Stage: driver.StageLint, Status: driver.StatusDone, Cached: true}))
	assert.Equal(t, "cached", m.items[0].status)
	assert.Equal(t, 1, m.finished)
	assert.Equal(t, 1, m.cached)

	// a repeated terminal event does not count twice
	m.Update(eventMsg(driver.Event{File: "a.ts", Stage: driver.StageLint, Status: driver.StatusDone}))
	assert.Equal(t, 1, m.finished)

	m.Update(eventMsg(driver.Event{File: "b.graphql", Stage: driver.StageLint, Status: driver.StatusError}))
	assert.Equal(t, "error", m.items[1].status)

	m.Update(eventMsg(driver.Event{File: "unknown.ts", Status: driver.StatusDone}))
	assert.Equal(t, 2, m.finished)

	_, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	view := m.View()
	assert.True(t, strings.HasPrefix(stripANSI(view), "done: linting 2/2, 1 cached"), view)
	assert.Contains(t, view, "b.graphql")
}

func TestVisibleItemsLimitsLargeRuns(t *testing.T) {
	files := make([]string, 30)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".ts"
	}
	m := NewProgressModel("linting", files, nil).(*progressModel)
	assert.Empty(t, m.visibleItems())

	m.applyEvent(driver.Event{File: files[3], Stage: driver.StageParse, Status: driver.StatusWorking})
	visible := m.visibleItems()
	require.Len(t, visible, 1)
	assert.Equal(t, files[3], visible[0].path)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "日本...", truncate("日本語テキスト", 7))
	assert.Equal(t, 10, runewidth.StringWidth(truncate("schema/very/long/path.graphql", 10)))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
