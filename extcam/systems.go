package extcam

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/component"
	"github.com/plus3/ecscam/input"
	"github.com/plus3/ecscam/render"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

var (
	players = donburi.NewQuery(filter.Contains(Position, Control))
	sprites = donburi.NewOrderedQuery[component.Layer](filter.Contains(Position, Texture, Layer))
)

// Frame is the renderer argument. A nil Screen only fills Batch.
type Frame struct {
	Batch  *render.Batch
	Screen *ebiten.Image
}

// PlayerInput moves every controlled entity by this frame's displacement.
func PlayerInput(e *ecs.ECS) {
	world := Settings.MustFirst(e.World)
	settings := Settings.Get(world)
	keys := Keyboard.Get(world).KeyboardState

	d := input.Displacement(keys, settings.Bindings, settings.Step)
	if d == (mgl64.Vec2{}) {
		return
	}
	for entry := range players.Iter(e.World) {
		Position.Get(entry).Translate(d)
	}
}

// Camera centres the view on each controlled entity in turn; the last one
// iterated wins.
func Camera(e *ecs.ECS) {
	view := View.Get(View.MustFirst(e.World))
	if view.Camera == nil {
		return
	}
	for entry := range players.Iter(e.World) {
		view.Camera.LookAt(Position.Get(entry).Vec2)
	}
}

// Render queues every sprite by layer and flushes to the screen if there is one.
func Render(e *ecs.ECS, f Frame) {
	view := View.Get(View.MustFirst(e.World))
	if view.Camera == nil || view.Atlas == nil {
		return
	}

	f.Batch.Begin(view.Camera.GeoM())
	f.Batch.SetClip(view.Camera.Adapter().Viewport())
	for entry := range sprites.IterOrdered(e.World, Layer) {
		img, ok := view.Atlas.Image(Texture.Get(entry).ID)
		if !ok {
			continue
		}
		f.Batch.Add(img, Position.Get(entry).Vec2, Layer.GetValue(entry).Order())
	}

	if f.Screen != nil {
		f.Batch.Flush(f.Screen)
	}
}
