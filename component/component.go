// Package component holds the plain data records shared by every demo.
package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ooftn/ecs"
)

// Position is a world-space location in pixels.
type Position struct {
	mgl64.Vec2
}

// NewPosition returns a position at (x, y).
func NewPosition(x, y float64) Position {
	return Position{mgl64.Vec2{x, y}}
}

// Translate adds d to the position in place.
func (p *Position) Translate(d mgl64.Vec2) {
	p.Vec2 = p.Vec2.Add(d)
}

// Texture references an image loaded into an assets.Atlas.
type Texture struct {
	ID assets.TextureID
}

// Control tags the entity driven by keyboard input.
type Control struct{}

// Layer orders sprites within a frame. Lower layers draw first.
type Layer int

// Layers used by the demo scene.
const (
	LayerGround Layer = iota
	LayerActors
)

// Order is the sort key for ordered queries.
func (l Layer) Order() int {
	return int(l)
}

// Register adds every component type to an ooftn registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Texture](registry)
	ecs.RegisterComponent[Control](registry)
	ecs.RegisterComponent[Layer](registry)
}
