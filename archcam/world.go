// Package archcam runs the camera demo on the ooftn archetype ECS: update
// systems on one scheduler, the render system on another driven from Draw.
package archcam

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/camera"
	"github.com/plus3/ecscam/component"
	"github.com/plus3/ecscam/config"
	"github.com/plus3/ecscam/input"
	"github.com/plus3/ecscam/render"
	"github.com/plus3/ecscam/scene"
	"github.com/plus3/ooftn/ecs"
	"github.com/plus3/ooftn/ecs/debugui"
	debugui_ebiten "github.com/plus3/ooftn/ecs/debugui/ebiten"
)

// World owns the ooftn storage, both schedulers and the camera.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Renderer  *ecs.Scheduler
	Camera    *camera.Camera
	Atlas     *assets.Atlas

	settings     *ecs.Singleton[Settings]
	keyboard     *ecs.Singleton[Keyboard]
	screen       *ecs.Singleton[Screen]
	renderSystem *RenderSystem

	player ecs.EntityId
	dt     float64
}

// NewWorld loads the textures into atlas, spawns the scene and registers the
// systems.
func NewWorld(cfg *config.Config, atlas *assets.Atlas) (*World, error) {
	bindings, err := cfg.Input.Bindings()
	if err != nil {
		return nil, err
	}
	cam, err := scene.NewCamera(cfg)
	if err != nil {
		return nil, err
	}
	textures, err := scene.LoadTextures(atlas, cfg)
	if err != nil {
		return nil, err
	}

	registry := ecs.NewComponentRegistry()
	component.Register(registry)
	ecs.RegisterComponent[debugui.ImguiItem](registry)
	ecs.RegisterComponent[debugui_ebiten.ImguiBackend](registry)
	debugui.RegisterDebugUIComponents(registry)

	storage := ecs.NewStorage(registry)

	// Singletons exist before any system registers so the systems bind to
	// the same storage slots.
	w := &World{
		Storage: storage,
		Camera:  cam,
		Atlas:   atlas,
		settings: ecs.NewSingleton[Settings](storage, Settings{
			Step:     cfg.Player.Step,
			Bindings: bindings,
		}),
		keyboard: ecs.NewSingleton[Keyboard](storage),
		screen:   ecs.NewSingleton[Screen](storage),
		dt:       1 / float64(cfg.Window.TPS),
	}
	ecs.NewSingleton[View](storage, View{Camera: cam})
	ecs.NewSingleton[Textures](storage, Textures{Atlas: atlas})

	w.player = SpawnScene(storage, cfg, textures)

	w.Scheduler = ecs.NewScheduler(storage)
	w.Scheduler.Register(&CameraSystem{})
	w.Scheduler.Register(&PlayerInputSystem{})

	w.renderSystem = &RenderSystem{}
	w.Renderer = ecs.NewScheduler(storage)
	w.Renderer.Register(w.renderSystem)

	return w, nil
}

// SpawnScene creates the player first, then the tile grid, and returns the
// player entity.
func SpawnScene(storage *ecs.Storage, cfg *config.Config, textures scene.Textures) ecs.EntityId {
	start := scene.PlayerStart(cfg)
	player := storage.Spawn(
		component.Texture{ID: textures.Player},
		component.Control{},
		component.NewPosition(start.X(), start.Y()),
		component.LayerActors,
	)

	for _, pos := range scene.Tiles(cfg.Grid) {
		storage.Spawn(
			component.NewPosition(pos.X(), pos.Y()),
			component.Texture{ID: textures.Tile},
			component.LayerGround,
		)
	}
	return player
}

// Step runs one update tick with the given keys held.
func (w *World) Step(keys input.KeyboardState) {
	w.keyboard.Get().KeyboardState = keys
	w.Scheduler.Once(w.dt)
}

// Draw runs the render scheduler against dst.
func (w *World) Draw(dst *ebiten.Image) {
	w.screen.Get().Image = dst
	w.Renderer.Once(0)
	w.screen.Get().Image = nil
}

// DrawCommands builds the frame's draw list without a screen.
func (w *World) DrawCommands() []render.Command {
	w.screen.Get().Image = nil
	w.Renderer.Once(0)
	return w.renderSystem.Commands()
}

// DrawClip is the viewport the last draw was limited to.
func (w *World) DrawClip() image.Rectangle {
	return w.renderSystem.Clip()
}

// Apply takes the reloadable parts of cfg: movement, bindings and zoom.
func (w *World) Apply(cfg *config.Config) error {
	bindings, err := cfg.Input.Bindings()
	if err != nil {
		return fmt.Errorf("archcam: apply config: %w", err)
	}
	if err := scene.ApplyCamera(w.Camera, cfg); err != nil {
		return fmt.Errorf("archcam: apply config: %w", err)
	}
	settings := w.settings.Get()
	settings.Step = cfg.Player.Step
	settings.Bindings = bindings
	return nil
}

// PlayerID is the entity SpawnScene returned for the player.
func (w *World) PlayerID() ecs.EntityId {
	return w.player
}

// Player is the position of the spawned player.
func (w *World) Player() mgl64.Vec2 {
	return ecs.ReadComponent[component.Position](w.Storage, w.player).Vec2
}

// Positions lists every entity position in query order.
func (w *World) Positions() []mgl64.Vec2 {
	var out []mgl64.Vec2
	for p := range ecs.NewQuery[struct{ *component.Position }](w.Storage).Iter() {
		out = append(out, p.Position.Vec2)
	}
	return out
}

// Stats reports the update scheduler and the storage.
func (w *World) Stats() (*ecs.SchedulerStats, *ecs.StorageStats) {
	return w.Scheduler.GetStats(), w.Storage.CollectStats()
}
