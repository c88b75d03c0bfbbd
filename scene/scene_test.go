package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/camera"
	"github.com/plus3/ecscam/config"
	"github.com/plus3/ecscam/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiles(t *testing.T) {
	tiles := scene.Tiles(config.Default().Grid)
	require.Len(t, tiles, 25)

	assert.Equal(t, mgl64.Vec2{-32, -32}, tiles[0])
	assert.Equal(t, mgl64.Vec2{-16, -32}, tiles[1])
	assert.Equal(t, mgl64.Vec2{0, 0}, tiles[12])
	assert.Equal(t, mgl64.Vec2{32, 32}, tiles[24])

	assert.Empty(t, scene.Tiles(config.GridConfig{Min: 1, Max: 0, TileSize: 16}))
	assert.Equal(t, []mgl64.Vec2{{0, 0}}, scene.Tiles(config.GridConfig{TileSize: 8}))
}

func TestNewCamera(t *testing.T) {
	cfg := config.Default()
	cam, err := scene.NewCamera(cfg)
	require.NoError(t, err)

	assert.Equal(t, 5.0, cam.Zoom())
	assert.IsType(t, &camera.BoxingAdapter{}, cam.Adapter())
	p := cam.WorldToScreen(mgl64.Vec2{})
	assert.InDelta(t, 400, p.X(), 1e-9)
	assert.InDelta(t, 240, p.Y(), 1e-9)

	cfg.Camera.Boxing = false
	cfg.Window.Width, cfg.Window.Height = 640, 360
	cam, err = scene.NewCamera(cfg)
	require.NoError(t, err)
	assert.IsType(t, &camera.DefaultAdapter{}, cam.Adapter())
	p = cam.WorldToScreen(mgl64.Vec2{})
	assert.InDelta(t, 320, p.X(), 1e-9)
	assert.InDelta(t, 180, p.Y(), 1e-9)
}

func TestApplyCamera(t *testing.T) {
	cfg := config.Default()
	cam, err := scene.NewCamera(cfg)
	require.NoError(t, err)

	cfg.Camera.Zoom = 2
	require.NoError(t, scene.ApplyCamera(cam, cfg))
	assert.Equal(t, 2.0, cam.Zoom())

	cfg.Camera.Zoom = 0
	assert.ErrorIs(t, scene.ApplyCamera(cam, cfg), camera.ErrInvalidZoom)
}

func TestApplyCameraRejectedKeepsLimits(t *testing.T) {
	cfg := config.Default()
	cam, err := scene.NewCamera(cfg)
	require.NoError(t, err)
	minZoom, maxZoom, zoom := cam.MinZoom, cam.MaxZoom, cam.Zoom()

	bad := config.Default()
	bad.Camera.MinZoom = 1
	bad.Camera.MaxZoom = 2
	bad.Camera.Zoom = -3
	require.ErrorIs(t, scene.ApplyCamera(cam, bad), camera.ErrInvalidZoom)

	assert.Equal(t, minZoom, cam.MinZoom)
	assert.Equal(t, maxZoom, cam.MaxZoom)
	assert.Equal(t, zoom, cam.Zoom())

	cam.ZoomIn(100)
	assert.Equal(t, maxZoom, cam.Zoom(), "later zooms clamp to the old limits")
}

func TestLoadTextures(t *testing.T) {
	atlas := assets.NewAtlas(assets.Headless())
	cfg := config.Default()

	tex, err := scene.LoadTextures(atlas, cfg)
	require.NoError(t, err)
	assert.Equal(t, "img/player", atlas.Name(tex.Player))
	assert.Equal(t, "img/bg", atlas.Name(tex.Tile))

	cfg.Grid.Texture = "img/missing"
	_, err = scene.LoadTextures(atlas, cfg)
	assert.Error(t, err)
}
