package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liberty/internal/driver"
)

func TestPhaseStatus(t *testing.T) {
	cases := []struct {
		ev     driver.PhaseEvent
		status string
		share  float64
	}{
		{driver.PhaseEvent{Name: "load", Status: driver.PhaseStart}, "loading", 0.1},
		{driver.PhaseEvent{Name: "load", Status: driver.PhaseEnd, OK: true}, "loaded", 0.2},
		{driver.PhaseEvent{Name: "load", Status: driver.PhaseEnd}, "error", 1},
		{driver.PhaseEvent{Name: "cache", Status: driver.PhaseEnd, OK: true}, "cached", 0.9},
		{driver.PhaseEvent{Name: "parse", Status: driver.PhaseStart}, "parsing", 0.4},
		{driver.PhaseEvent{Name: "file", Status: driver.PhaseEnd, OK: true}, "done", 1},
		{driver.PhaseEvent{Name: "file", Status: driver.PhaseEnd}, "error", 1},
		{driver.PhaseEvent{Name: "other", Status: driver.PhaseStart}, "", 0},
	}
	for _, tc := range cases {
		status, share := phaseStatus(tc.ev)
		assert.Equal(t, tc.status, status, "%+v", tc.ev)
		assert.InDelta(t, tc.share, share, 1e-9, "%+v", tc.ev)
	}
}

func TestProgressModelApply(t *testing.T) {
	m := NewProgressModel("parsing", []string{"a.lib", "b.lib"}, nil).(*progressModel)

	m.applyEvent(driver.PhaseEvent{Name: "parse", Path: "a.lib", Status: driver.PhaseStart})
	assert.Equal(t, "parsing", m.items[0].status)
	assert.Equal(t, "queued", m.items[1].status)

	m.applyEvent(driver.PhaseEvent{Name: "file", Path: "a.lib", Status: driver.PhaseEnd, OK: true})
	m.applyEvent(driver.PhaseEvent{Name: "parse", Path: "a.lib", Status: driver.PhaseStart})
	assert.Equal(t, "done", m.items[0].status, "finished files keep their status")
	assert.Equal(t, 1, m.finished())
	assert.InDelta(t, 0.5, m.percent(), 1e-9)

	m.applyEvent(driver.PhaseEvent{Name: "file", Path: "unknown.lib", Status: driver.PhaseEnd})
	assert.Equal(t, 1, m.finished())

	view := m.View()
	assert.Contains(t, view, "parsing (1/2)")
	assert.Contains(t, view, "a.lib")
	assert.Contains(t, view, "queued")
}

func TestProgressModelQuitsOnClose(t *testing.T) {
	events := make(chan driver.PhaseEvent)
	close(events)
	m := NewProgressModel("x", []string{"a.lib"}, events).(*progressModel)
	msg := m.listenForEvent()()
	_, ok := msg.(doneMsg)
	require.True(t, ok)
	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.Contains(t, m.View(), "done: x (0/1)")
}

func TestRunWithProgressReturnsWorkError(t *testing.T) {
	var out bytes.Buffer
	want := errors.New("boom")
	err := RunWithProgress(&out, "parsing", []string{"a.lib"}, func(obs driver.PhaseObserver) error {
		obs(driver.PhaseEvent{Name: "file", Path: "a.lib", Status: driver.PhaseEnd, OK: true})
		return want
	})
	assert.ErrorIs(t, err, want)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghijk", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "ячейк...", truncate("ячейка_библиотеки", 8))
	assert.Equal(t, "cells/...", truncate("cells/and2_x1.lib", 9))
}
