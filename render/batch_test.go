package render_test

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsOrderByLayerThenInsertion(t *testing.T) {
	player, tileA, tileB := &ebiten.Image{}, &ebiten.Image{}, &ebiten.Image{}

	b := render.NewBatch()
	b.Begin(ebiten.GeoM{})
	b.Add(player, mgl64.Vec2{0, 0}, 1)
	b.Add(tileA, mgl64.Vec2{-16, 0}, 0)
	b.Add(tileB, mgl64.Vec2{16, 0}, 0)

	cmds := b.Commands()
	require.Len(t, cmds, 3)
	assert.Same(t, tileA, cmds[0].Image)
	assert.Same(t, tileB, cmds[1].Image)
	assert.Same(t, player, cmds[2].Image)
	assert.Equal(t, 3, b.Len(), "Commands does not consume the batch")
}

func TestCommandsApplyViewAfterPosition(t *testing.T) {
	var view ebiten.GeoM
	view.Translate(80, 48)
	view.Scale(5, 5)

	b := render.NewBatch()
	b.Begin(view)
	b.Add(&ebiten.Image{}, mgl64.Vec2{16, -16}, 0)

	cmds := b.Commands()
	require.Len(t, cmds, 1)

	x, y := cmds[0].GeoM.Apply(0, 0)
	assert.InDelta(t, 480, x, 1e-9)
	assert.InDelta(t, 160, y, 1e-9)

	x, y = cmds[0].GeoM.Apply(16, 16)
	assert.InDelta(t, 560, x, 1e-9)
	assert.InDelta(t, 240, y, 1e-9)
}

func TestBeginResets(t *testing.T) {
	b := render.NewBatch()
	b.Begin(ebiten.GeoM{})
	b.Add(&ebiten.Image{}, mgl64.Vec2{}, 0)
	b.Begin(ebiten.GeoM{})

	assert.Zero(t, b.Len())
	assert.Empty(t, b.Commands())
}

func TestClipBounds(t *testing.T) {
	screen := image.Rect(0, 0, 1000, 480)

	assert.Equal(t, screen, render.ClipBounds(screen, image.Rectangle{}))
	assert.Equal(t, image.Rect(100, 0, 900, 480), render.ClipBounds(screen, image.Rect(100, 0, 900, 480)))
	assert.Equal(t, image.Rect(0, 240, 800, 480), render.ClipBounds(screen, image.Rect(0, 240, 800, 720)),
		"clip is cut to the destination")
}

func TestSetClipSurvivesBegin(t *testing.T) {
	b := render.NewBatch()
	assert.True(t, b.Clip().Empty())

	b.SetClip(image.Rect(100, 0, 900, 480))
	b.Begin(ebiten.GeoM{})
	assert.Equal(t, image.Rect(100, 0, 900, 480), b.Clip())
}
