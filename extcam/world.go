// Package extcam runs the camera demo on donburi as a host component: the
// world is built in Initialize, the scene spawned in LoadContent, and the
// systems run from the host's Update and Draw.
package extcam

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/camera"
	"github.com/plus3/ecscam/component"
	"github.com/plus3/ecscam/config"
	"github.com/plus3/ecscam/host"
	"github.com/plus3/ecscam/input"
	"github.com/plus3/ecscam/render"
	"github.com/plus3/ecscam/scene"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ErrNotInitialized is returned by LoadContent before Initialize has run.
var ErrNotInitialized = errors.New("extcam: world not initialized")

// World is the donburi camera demo. Add it to a host.Game.
type World struct {
	Camera *camera.Camera
	// Input is polled once per Update. Nil leaves the keyboard untouched.
	Input input.Source

	ECS *ecs.ECS

	cfg      *config.Config
	settings SettingsData
	logger   *slog.Logger
	batch    render.Batch

	state   donburi.Entity
	player  donburi.Entity
	spawned []donburi.Entity
}

// NewWorld builds the camera and input settings from cfg. The ECS itself is
// created in Initialize.
func NewWorld(cfg *config.Config) (*World, error) {
	bindings, err := cfg.Input.Bindings()
	if err != nil {
		return nil, err
	}
	cam, err := scene.NewCamera(cfg)
	if err != nil {
		return nil, err
	}
	return &World{
		Camera:   cam,
		cfg:      cfg,
		settings: SettingsData{Step: cfg.Player.Step, Bindings: bindings},
		logger:   slog.Default(),
	}, nil
}

// Initialize creates the donburi world and its systems. Input runs before
// the camera follows.
func (w *World) Initialize(g *host.Game) error {
	if g.Logger != nil {
		w.logger = g.Logger
	}

	w.ECS = ecs.NewECS(donburi.NewWorld())
	w.ECS.AddSystem(PlayerInput)
	w.ECS.AddSystem(Camera)
	w.ECS.AddRenderer(ecs.LayerDefault, Render)

	w.state = w.ECS.World.Create(View, Settings, Keyboard)
	entry := w.ECS.World.Entry(w.state)
	View.SetValue(entry, ViewData{Camera: w.Camera, Atlas: g.Content})
	Settings.SetValue(entry, w.settings)
	return nil
}

// LoadContent loads the textures and spawns the tiles, then the player.
func (w *World) LoadContent(g *host.Game) error {
	if w.ECS == nil {
		return ErrNotInitialized
	}
	textures, err := scene.LoadTextures(g.Content, w.cfg)
	if err != nil {
		return fmt.Errorf("extcam: load content: %w", err)
	}

	for _, pos := range scene.Tiles(w.cfg.Grid) {
		w.spawn(pos, textures.Tile, component.LayerGround)
	}
	w.player = w.spawn(scene.PlayerStart(w.cfg), textures.Player, component.LayerActors)
	w.ECS.World.Entry(w.player).AddComponent(Control)

	w.logger.Info("scene spawned", "entities", len(w.spawned))
	return nil
}

func (w *World) spawn(pos mgl64.Vec2, tex assets.TextureID, layer component.Layer) donburi.Entity {
	e := w.ECS.Create(ecs.LayerDefault, Position, Texture, Layer)
	entry := w.ECS.World.Entry(e)
	Position.Get(entry).Vec2 = pos
	Texture.Get(entry).ID = tex
	Layer.SetValue(entry, layer)
	w.spawned = append(w.spawned, e)
	return e
}

// UnloadContent removes the scene entities.
func (w *World) UnloadContent() {
	if w.ECS == nil {
		return
	}
	for _, e := range w.spawned {
		w.ECS.World.Remove(e)
	}
	w.spawned = w.spawned[:0]
	w.player = donburi.Null
}

// Update polls Input, returning ebiten.Termination on Escape, and runs the
// systems.
func (w *World) Update(t host.GameTime) error {
	if w.Input != nil {
		keys := w.Input.Poll()
		if keys.IsKeyDown(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		w.setKeys(keys)
	}
	w.ECS.Update()
	return nil
}

// Draw runs the renderer onto screen, clipped to the camera viewport.
func (w *World) Draw(screen *ebiten.Image, t host.GameTime) {
	w.ECS.Draw(Frame{Batch: &w.batch, Screen: screen})
}

// Clear paints the bars black and the camera viewport cornflower blue. Use
// it as host.Game.Clear.
func (w *World) Clear(screen *ebiten.Image) {
	render.ClearViewport(screen, w.Camera.Adapter().Viewport())
}

// Resize forwards the window size to the camera. Use it as host.Game.Resize.
func (w *World) Resize(width, height int) {
	w.Camera.Resize(width, height)
}

// Step runs one update with the given keys held.
func (w *World) Step(keys input.KeyboardState) {
	w.setKeys(keys)
	w.ECS.Update()
}

func (w *World) setKeys(keys input.KeyboardState) {
	Keyboard.Get(w.ECS.World.Entry(w.state)).KeyboardState = keys
}

// DrawCommands runs the renderer without a screen and returns its draw list.
func (w *World) DrawCommands() []render.Command {
	w.ECS.Draw(Frame{Batch: &w.batch})
	return w.batch.Commands()
}

// DrawClip is the viewport the last draw was limited to.
func (w *World) DrawClip() image.Rectangle {
	return w.batch.Clip()
}

// Apply takes the reloadable parts of cfg: movement, bindings and zoom.
func (w *World) Apply(cfg *config.Config) error {
	bindings, err := cfg.Input.Bindings()
	if err != nil {
		return fmt.Errorf("extcam: apply config: %w", err)
	}
	if err := scene.ApplyCamera(w.Camera, cfg); err != nil {
		return fmt.Errorf("extcam: apply config: %w", err)
	}
	w.settings = SettingsData{Step: cfg.Player.Step, Bindings: bindings}
	if w.ECS != nil {
		Settings.SetValue(w.ECS.World.Entry(w.state), w.settings)
	}
	return nil
}

// Player is the position of the spawned player.
func (w *World) Player() mgl64.Vec2 {
	return Position.Get(w.ECS.World.Entry(w.player)).Vec2
}

// Positions lists every spawned entity position in spawn order: tiles first,
// the player last.
func (w *World) Positions() []mgl64.Vec2 {
	var out []mgl64.Vec2
	for _, e := range w.spawned {
		out = append(out, Position.Get(w.ECS.World.Entry(e)).Vec2)
	}
	return out
}

// Len is the number of entities in the donburi world, the state entity
// included.
func (w *World) Len() int {
	return w.ECS.World.Len()
}
