package archcam

import (
	"log/slog"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/config"
	"github.com/plus3/ecscam/input"
	"github.com/plus3/ecscam/render"
	"github.com/plus3/ooftn/ecs"
	"github.com/plus3/ooftn/ecs/debugui"
	debugui_ebiten "github.com/plus3/ooftn/ecs/debugui/ebiten"
)

// Game drives a World from ebiten.
type Game struct {
	World  *World
	Input  input.Source
	Logger *slog.Logger

	// Reload delivers hot-reloaded configs. Nil disables reloading.
	Reload <-chan *config.Config

	backend *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

// NewGame wraps w for ebiten, reading keys from src.
func NewGame(w *World, src input.Source, logger *slog.Logger) *Game {
	return &Game{World: w, Input: src, Logger: logger}
}

// EnableDebugUI opens the ECS inspector windows. It creates the ebiten window
// through the ImGui backend, so call it before ebiten.RunGame.
func (g *Game) EnableDebugUI(title string, width, height int) {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	storage := g.World.Storage
	g.backend = ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage, debugui_ebiten.ImguiBackend{
		EbitenBackend: backend,
	})
	ecs.NewSingleton[debugui.FrameTimer](storage, *debugui.NewFrameTimer())
	debugui.SpawnDebugUI(storage)
	spawnCameraWindow(g.World)
	g.World.Scheduler.Register(&debugui.ImguiSystem{})
}

// Update applies pending reloads, polls input and steps the world. Escape
// returns ebiten.Termination.
func (g *Game) Update() error {
	g.applyReloads()

	keys := g.Input.Poll()
	if keys.IsKeyDown(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.backend != nil {
		g.backend.Get().BeginFrame()
		defer g.backend.Get().EndFrame()
	}
	g.World.Step(keys)
	return nil
}

func (g *Game) applyReloads() {
	if g.Reload == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-g.Reload:
			if !ok {
				g.Reload = nil
				return
			}
			if err := g.World.Apply(cfg); err != nil {
				g.Logger.Warn("config not applied", "error", err)
				continue
			}
			g.Logger.Info("config applied", "zoom", cfg.Camera.Zoom, "step", cfg.Player.Step)
		default:
			return
		}
	}
}

// Draw clears the bars and viewport, then draws the world and the debug UI.
func (g *Game) Draw(screen *ebiten.Image) {
	render.ClearViewport(screen, g.World.Camera.Adapter().Viewport())
	g.World.Draw(screen)
	if g.backend != nil {
		g.backend.Get().Draw(screen)
	}
}

// Layout resizes the camera viewport to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.World.Camera.Resize(outsideWidth, outsideHeight)
	if g.backend != nil {
		g.backend.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
