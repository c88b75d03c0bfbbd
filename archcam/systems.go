package archcam

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/ecscam/component"
	"github.com/plus3/ecscam/input"
	"github.com/plus3/ecscam/render"
	"github.com/plus3/ooftn/ecs"
	"github.com/plus3/ooftn/ecs/debugui"
)

type player = struct {
	*component.Position
	*component.Control
}

// CameraSystem points the camera at each controlled entity in turn, so the
// last one the query yields is where it ends up.
type CameraSystem struct {
	View    ecs.Singleton[View]
	Players ecs.Query[player]
}

// Execute looks at every controlled entity.
func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	view := s.View.Get()
	if view.Camera == nil {
		return
	}
	for p := range s.Players.Iter() {
		view.LookAt(p.Position.Vec2)
	}
}

// PlayerInputSystem moves every controlled entity by the keyboard displacement.
type PlayerInputSystem struct {
	Settings ecs.Singleton[Settings]
	Keyboard ecs.Singleton[Keyboard]
	Imgui    ecs.Singleton[debugui.ImguiInputState]
	Players  ecs.Query[player]
}

// Execute skips the frame while the debug UI has keyboard focus.
func (s *PlayerInputSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Imgui.Get().WantCaptureKeyboard {
		return
	}

	settings := s.Settings.Get()
	d := input.Displacement(s.Keyboard.Get().KeyboardState, settings.Bindings, settings.Step)
	if d == (mgl64.Vec2{}) {
		return
	}
	for p := range s.Players.Iter() {
		p.Position.Translate(d)
	}
}

// RenderSystem draws every textured entity through the camera. It runs on
// its own scheduler from ebiten's Draw.
type RenderSystem struct {
	View     ecs.Singleton[View]
	Screen   ecs.Singleton[Screen]
	Textures ecs.Singleton[Textures]

	Sprites ecs.Query[struct {
		*component.Position
		*component.Texture
		Layer *component.Layer `ecs:"optional"`
	}]

	batch render.Batch
}

// Execute queues every sprite and flushes onto the screen when one is set.
func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	view := s.View.Get()
	atlas := s.Textures.Get().Atlas
	if view.Camera == nil || atlas == nil {
		return
	}

	s.batch.Begin(view.GeoM())
	s.batch.SetClip(view.Adapter().Viewport())
	for sprite := range s.Sprites.Iter() {
		img, ok := atlas.Image(sprite.Texture.ID)
		if !ok {
			continue
		}
		layer := 0
		if sprite.Layer != nil {
			layer = sprite.Layer.Order()
		}
		s.batch.Add(img, sprite.Position.Vec2, layer)
	}

	if dst := s.Screen.Get().Image; dst != nil {
		s.batch.Flush(dst)
	}
}

// Commands is the draw list built by the last Execute that had no screen.
func (s *RenderSystem) Commands() []render.Command {
	return s.batch.Commands()
}

// Clip is the viewport the last Execute limited drawing to.
func (s *RenderSystem) Clip() image.Rectangle {
	return s.batch.Clip()
}
