// Package scene describes the demo level independently of any ECS: one
// player sprite over a square grid of background tiles, watched by a zoomed
// camera.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/camera"
	"github.com/plus3/ecscam/config"
)

// Textures are the atlas IDs of the scene sprites.
type Textures struct {
	Player assets.TextureID
	Tile   assets.TextureID
}

// LoadTextures loads the player and tile textures named in cfg.
func LoadTextures(atlas *assets.Atlas, cfg *config.Config) (Textures, error) {
	player, err := atlas.Load(cfg.Player.Texture)
	if err != nil {
		return Textures{}, err
	}
	tile, err := atlas.Load(cfg.Grid.Texture)
	if err != nil {
		return Textures{}, err
	}
	return Textures{Player: player, Tile: tile}, nil
}

// Tiles lists tile positions row by row, top to bottom.
func Tiles(g config.GridConfig) []mgl64.Vec2 {
	tiles := make([]mgl64.Vec2, 0, g.Len())
	for y := g.Min; y <= g.Max; y++ {
		for x := g.Min; x <= g.Max; x++ {
			tiles = append(tiles, mgl64.Vec2{float64(x) * g.TileSize, float64(y) * g.TileSize})
		}
	}
	return tiles
}

// PlayerStart is where the player spawns.
func PlayerStart(cfg *config.Config) mgl64.Vec2 {
	return mgl64.Vec2{cfg.Player.X, cfg.Player.Y}
}

// NewCamera builds the camera both demos start with: looking at the origin
// at the configured zoom.
func NewCamera(cfg *config.Config) (*camera.Camera, error) {
	var adapter camera.ViewportAdapter
	if cfg.Camera.Boxing {
		adapter = camera.NewBoxingAdapter(cfg.Camera.VirtualWidth, cfg.Camera.VirtualHeight)
	} else {
		adapter = camera.NewDefaultAdapter(cfg.Window.Width, cfg.Window.Height)
	}

	cam := camera.New(adapter)
	cam.MinZoom = cfg.Camera.MinZoom
	cam.MaxZoom = cfg.Camera.MaxZoom
	if err := cam.SetZoom(cfg.Camera.Zoom); err != nil {
		return nil, err
	}
	cam.LookAt(mgl64.Vec2{})
	return cam, nil
}

// ApplyCamera copies reloadable camera settings onto an existing camera. A
// rejected zoom leaves the camera as it was.
func ApplyCamera(cam *camera.Camera, cfg *config.Config) error {
	minZoom, maxZoom := cam.MinZoom, cam.MaxZoom
	cam.MinZoom = cfg.Camera.MinZoom
	cam.MaxZoom = cfg.Camera.MaxZoom
	if err := cam.SetZoom(cfg.Camera.Zoom); err != nil {
		cam.MinZoom, cam.MaxZoom = minZoom, maxZoom
		return err
	}
	return nil
}
