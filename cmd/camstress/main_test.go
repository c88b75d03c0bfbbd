package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/ecscam/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWorldsAgree(t *testing.T) {
	report, err := run(context.Background(), config.Default(), options{Frames: 500, Seed: 7, Compare: true}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	assert.Equal(t, int64(500), report.TotalUpdates)
	assert.Zero(t, report.MismatchCount, "%v", report.Mismatches)
	assert.Equal(t, 26, report.Entities)
	assert.Len(t, report.ArchTime.Samples, 500)

	require.Len(t, report.Scheduler.Systems, 2)
	assert.Equal(t, int64(501), report.Scheduler.Systems[0].ExecutionCount, "warm-up tick included")
	assert.Equal(t, 26, report.Storage.TotalEntityCount)
}

func TestRunForDuration(t *testing.T) {
	report, err := run(context.Background(), config.Default(), options{Duration: 20 * time.Millisecond, Seed: 1}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	assert.Positive(t, report.TotalUpdates)
	assert.GreaterOrEqual(t, report.TotalTime, 20*time.Millisecond)
}

func TestParityCompare(t *testing.T) {
	p := &Parity{prevCamera: mgl64.Vec2{0, 0}}

	_, ok := p.compare(0, mgl64.Vec2{2, 0}, mgl64.Vec2{2, 0}, mgl64.Vec2{0, 0})
	assert.True(t, ok)

	m, ok := p.compare(3, mgl64.Vec2{2, 0}, mgl64.Vec2{4, 0}, mgl64.Vec2{0, 0})
	assert.False(t, ok)
	assert.Equal(t, 3, m.Frame)
	assert.Contains(t, m.What, "player")

	m, ok = p.compare(4, mgl64.Vec2{2, 0}, mgl64.Vec2{2, 0}, mgl64.Vec2{2, 0})
	assert.False(t, ok)
	assert.Contains(t, m.What, "camera")
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	report, err := run(context.Background(), config.Default(), options{Frames: 10, Seed: 3, Compare: true}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	for i := range maxMismatches + 5 {
		report.addMismatch(Mismatch{Frame: i, What: "camera"})
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Camera Stress Report")
	assert.Contains(t, out, "CameraSystem")
	assert.Contains(t, out, "PlayerInputSystem")
	assert.Contains(t, out, "Entities:   26")
	assert.Contains(t, out, "15 mismatching frames")
	assert.Len(t, report.Mismatches, maxMismatches)
}
