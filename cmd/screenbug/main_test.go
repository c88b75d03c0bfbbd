package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/host"
	"github.com/plus3/ecscam/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keys map[ebiten.Key]bool

func (k keys) pressed(key ebiten.Key) bool { return k[key] }

func managerOf(t *testing.T, components []host.Component) *screen.Manager {
	t.Helper()
	for _, c := range components {
		if m, ok := c.(*screen.Manager); ok {
			return m
		}
	}
	t.Fatal("no screen manager registered")
	return nil
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestFirstScreenLoadsOnce(t *testing.T) {
	for _, load := range []string{"before", "after"} {
		t.Run(load, func(t *testing.T) {
			var buf bytes.Buffer
			g, first, err := newGame(load, time.Second, newTestLogger(&buf), keys{}.pressed)
			require.NoError(t, err)

			for range 5 {
				require.NoError(t, g.Update())
			}
			assert.Equal(t, 1, first.Loads())
			assert.Equal(t, 1, strings.Count(buf.String(), "Hello from Screen1 LoadContent!"))
			assert.Contains(t, buf.String(), "count=1")
			assert.NotContains(t, buf.String(), "count=2")
		})
	}
}

func TestUnknownLoadMode(t *testing.T) {
	_, _, err := newGame("sometime", time.Second, slog.New(slog.DiscardHandler), keys{}.pressed)
	assert.ErrorContains(t, err, "-load must be before or after")
}

func TestSpaceSwapsThroughFade(t *testing.T) {
	var buf bytes.Buffer
	held := keys{ebiten.KeySpace: true}
	g, first, err := newGame("before", time.Second, newTestLogger(&buf), held.pressed)
	require.NoError(t, err)

	m := managerOf(t, g.Components())
	require.NoError(t, g.Update())
	delete(held, ebiten.KeySpace)
	require.NotNil(t, m.Transition())
	assert.Same(t, first, m.Active(), "the old screen stays until the midpoint")

	for range 70 {
		require.NoError(t, g.Update())
	}
	assert.Nil(t, m.Transition())

	next, ok := m.Active().(*Screen1)
	require.True(t, ok)
	assert.NotSame(t, first, next)
	assert.Equal(t, 1, next.Loads())
	assert.Equal(t, 1, first.Loads())
	assert.Nil(t, first.face, "swapped-out screen is unloaded")
	assert.Equal(t, 2, strings.Count(buf.String(), "Hello from Screen1 LoadContent!"))
}

func TestEscapeExits(t *testing.T) {
	held := keys{}
	g, _, err := newGame("before", time.Second, slog.New(slog.DiscardHandler), held.pressed)
	require.NoError(t, err)
	require.NoError(t, g.Update())

	held[ebiten.KeyEscape] = true
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
}

func TestCaption(t *testing.T) {
	s := NewScreen1("screen-7", 0, slog.New(slog.DiscardHandler))
	assert.Equal(t, "screen-7\nLoadContent calls: 0\nframes: 0\n\nspace: next screen  esc: quit", s.caption())
}
