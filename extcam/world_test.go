package extcam_test

import (
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/component"
	"github.com/plus3/ecscam/config"
	"github.com/plus3/ecscam/extcam"
	"github.com/plus3/ecscam/host"
	"github.com/plus3/ecscam/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi/ecs"
)

func newHosted(t *testing.T, cfg *config.Config) (*host.Game, *extcam.World) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	w, err := extcam.NewWorld(cfg)
	require.NoError(t, err)

	g := host.New(assets.NewAtlas(assets.Headless()), slog.New(slog.NewTextHandler(io.Discard, nil)))
	g.Resize = w.Resize
	require.NoError(t, g.Add(w))
	require.NoError(t, g.Update())
	return g, w
}

func keys(k ...ebiten.Key) input.KeyboardState {
	return input.NewKeyboardState(k...)
}

func TestLifecycleSpawnsScene(t *testing.T) {
	g, w := newHosted(t, nil)

	assert.Equal(t, mgl64.Vec2{0, 0}, w.Player())
	assert.Len(t, w.Positions(), 26)
	assert.Equal(t, 27, w.Len(), "scene plus the state entity")
	assert.Equal(t, 2, g.Content.Len())

	g.Dispose()
	assert.Equal(t, 1, w.Len())
	assert.Zero(t, g.Content.Len())
}

func TestLoadBeforeInitialize(t *testing.T) {
	w, err := extcam.NewWorld(config.Default())
	require.NoError(t, err)
	assert.ErrorIs(t, w.LoadContent(host.New(assets.NewAtlas(assets.Headless()), nil)), extcam.ErrNotInitialized)
}

func TestMissingTexture(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Texture = "img/nothing"
	w, err := extcam.NewWorld(cfg)
	require.NoError(t, err)

	g := host.New(assets.NewAtlas(assets.Headless()), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, g.Add(w))
	assert.ErrorContains(t, g.Update(), "extcam: load content")
}

func TestCameraFollowsSameFrame(t *testing.T) {
	_, w := newHosted(t, nil)

	w.Step(keys(ebiten.KeyD))
	assert.Equal(t, mgl64.Vec2{2, 0}, w.Player())
	assert.Equal(t, mgl64.Vec2{2, 0}, w.Camera.Center(), "input runs before the camera")

	w.Step(keys(ebiten.KeyW, ebiten.KeyS))
	assert.Equal(t, mgl64.Vec2{2, 2}, w.Player(), "down overrides up")
	assert.Equal(t, w.Player(), w.Camera.Center())
}

func TestOnlyPlayerMoves(t *testing.T) {
	_, w := newHosted(t, nil)
	tiles := w.Positions()[:25]

	for range 5 {
		w.Step(keys(ebiten.KeyA))
	}
	assert.Equal(t, mgl64.Vec2{-10, 0}, w.Player())
	assert.Equal(t, tiles, w.Positions()[:25])
}

func TestDrawCommandsOrderedByLayer(t *testing.T) {
	_, w := newHosted(t, nil)

	cmds := w.DrawCommands()
	require.Len(t, cmds, 26)
	for _, c := range cmds[:25] {
		assert.Equal(t, int(component.LayerGround), c.Layer)
	}
	assert.Equal(t, int(component.LayerActors), cmds[25].Layer)

	// Top-left tile at (-32,-32) lands 160px up and left of the centre.
	x, y := cmds[0].GeoM.Apply(0, 0)
	assert.InDelta(t, 240, x, 1e-9)
	assert.InDelta(t, 80, y, 1e-9)
}

func TestApply(t *testing.T) {
	_, w := newHosted(t, nil)

	cfg := config.Default()
	cfg.Player.Step = 0.5
	cfg.Camera.Zoom = 50
	require.NoError(t, w.Apply(cfg))
	assert.Equal(t, cfg.Camera.MaxZoom, w.Camera.Zoom())

	w.Step(keys(ebiten.KeyS))
	assert.Equal(t, mgl64.Vec2{0, 0.5}, w.Player())

	cfg.Camera.Zoom = -1
	assert.ErrorContains(t, w.Apply(cfg), "extcam: apply config")
}

func TestHostInputAndExit(t *testing.T) {
	g, w := newHosted(t, nil)
	w.Input = input.NewScript(
		[]ebiten.Key{ebiten.KeyRight},
		[]ebiten.Key{ebiten.KeyD},
		[]ebiten.Key{ebiten.KeyEscape},
	)

	require.NoError(t, g.Update())
	assert.Equal(t, mgl64.Vec2{0, 0}, w.Player(), "arrow keys are unbound by default")
	require.NoError(t, g.Update())
	assert.Equal(t, mgl64.Vec2{2, 0}, w.Player())
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
}

func TestResize(t *testing.T) {
	g, w := newHosted(t, nil)

	g.Layout(800, 960)
	assert.Equal(t, 800, w.Camera.Adapter().Viewport().Dx())
	assert.Equal(t, 480, w.Camera.Adapter().Viewport().Dy())
	assert.Equal(t, 240, w.Camera.Adapter().Viewport().Min.Y)
}

func TestDrawClippedToViewport(t *testing.T) {
	g, w := newHosted(t, nil)
	g.Layout(1000, 480)

	for range 30 {
		w.Step(keys(ebiten.KeyD))
	}

	cmds := w.DrawCommands()
	require.NotEmpty(t, cmds)
	x, _ := cmds[0].GeoM.Apply(0, 0)
	assert.InDelta(t, 40, x, 1e-9, "left tiles reach into the bar")
	assert.Equal(t, image.Rect(100, 0, 900, 480), w.DrawClip())
}

func TestEveryControlledEntityMoves(t *testing.T) {
	g, w := newHosted(t, nil)
	id, ok := g.Content.Lookup(assets.PlayerTexture)
	require.True(t, ok)

	// Same archetype as the player, so it iterates after it.
	e := w.ECS.Create(ecs.LayerDefault, extcam.Position, extcam.Texture, extcam.Layer, extcam.Control)
	second := w.ECS.World.Entry(e)
	extcam.Position.Get(second).Vec2 = mgl64.Vec2{32, 16}
	extcam.Texture.Get(second).ID = id
	extcam.Layer.SetValue(second, component.LayerActors)

	w.Step(keys(ebiten.KeyD))
	assert.Equal(t, mgl64.Vec2{2, 0}, w.Player())
	assert.Equal(t, mgl64.Vec2{34, 16}, extcam.Position.Get(second).Vec2)
	assert.Equal(t, mgl64.Vec2{34, 16}, w.Camera.Center(), "the last controlled entity wins")
}

func TestCameraStaysWithoutControl(t *testing.T) {
	_, w := newHosted(t, nil)
	w.Step(keys(ebiten.KeyD))
	require.Equal(t, mgl64.Vec2{2, 0}, w.Camera.Center())

	extcam.Control.MustFirst(w.ECS.World).RemoveComponent(extcam.Control)
	for range 3 {
		w.Step(keys(ebiten.KeyS))
	}

	assert.Equal(t, mgl64.Vec2{2, 0}, w.Player(), "nothing is controlled, nothing moves")
	assert.Equal(t, mgl64.Vec2{2, 0}, w.Camera.Center())
}
