// Package camera implements a 2D orthographic camera whose view transform is
// composed with a viewport adapter, so a fixed virtual resolution can be
// drawn into a resizable window.
package camera

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// ErrInvalidZoom is returned by SetZoom for zero, negative or NaN zooms.
var ErrInvalidZoom = errors.New("camera: zoom must be positive")

// Zoom limits a new Camera starts with.
const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 20
)

// Camera is an orthographic 2D camera. Position is the world point drawn at
// the top-left corner of the virtual viewport when Zoom is 1 and Rotation 0.
type Camera struct {
	Position mgl64.Vec2
	Origin   mgl64.Vec2
	Rotation float64

	MinZoom float64
	MaxZoom float64

	zoom    float64
	adapter ViewportAdapter
}

// New returns a camera at the origin with zoom 1 drawing through adapter.
func New(adapter ViewportAdapter) *Camera {
	c := &Camera{
		MinZoom: DefaultMinZoom,
		MaxZoom: DefaultMaxZoom,
		zoom:    1,
		adapter: adapter,
	}
	c.resetOrigin()
	return c
}

// Adapter is the viewport adapter the camera was built with.
func (c *Camera) Adapter() ViewportAdapter {
	return c.adapter
}

// Resize forwards the window size to the adapter and recentres the origin.
func (c *Camera) Resize(windowW, windowH int) {
	c.adapter.Resize(windowW, windowH)
	c.resetOrigin()
}

func (c *Camera) resetOrigin() {
	w, h := c.adapter.VirtualSize()
	c.Origin = mgl64.Vec2{w / 2, h / 2}
}

// Zoom is the current scale factor.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetZoom clamps z into [MinZoom, MaxZoom]. It rejects z without changing
// anything when z is not a positive number.
func (c *Camera) SetZoom(z float64) error {
	if z <= 0 || math.IsNaN(z) {
		return ErrInvalidZoom
	}
	c.zoom = c.clampZoom(z)
	return nil
}

// ZoomIn adds delta to the zoom, clamped.
func (c *Camera) ZoomIn(delta float64) {
	c.zoom = c.clampZoom(c.zoom + delta)
}

// ZoomOut subtracts delta from the zoom, clamped.
func (c *Camera) ZoomOut(delta float64) {
	c.zoom = c.clampZoom(c.zoom - delta)
}

func (c *Camera) clampZoom(z float64) float64 {
	lo, hi := c.MinZoom, c.MaxZoom
	if lo <= 0 {
		lo = DefaultMinZoom
	}
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(hi, z))
}

// Move translates the camera along its own axes.
func (c *Camera) Move(d mgl64.Vec2) {
	c.Position = c.Position.Add(mgl64.Rotate2D(-c.Rotation).Mul2x1(d))
}

// LookAt centres the virtual viewport on p.
func (c *Camera) LookAt(p mgl64.Vec2) {
	w, h := c.adapter.VirtualSize()
	c.Position = p.Sub(mgl64.Vec2{w / 2, h / 2})
}

// Center is the world point drawn at the middle of the virtual viewport.
func (c *Camera) Center() mgl64.Vec2 {
	return c.Position.Add(c.Origin)
}

// VirtualViewMatrix maps world coordinates to virtual screen coordinates.
func (c *Camera) VirtualViewMatrix() mgl64.Mat3 {
	ox, oy := c.Origin.X(), c.Origin.Y()
	return mgl64.Translate2D(ox, oy).
		Mul3(mgl64.Scale2D(c.zoom, c.zoom)).
		Mul3(mgl64.HomogRotate2D(c.Rotation)).
		Mul3(mgl64.Translate2D(-ox, -oy)).
		Mul3(mgl64.Translate2D(-c.Position.X(), -c.Position.Y()))
}

// ViewMatrix maps world coordinates to window coordinates.
func (c *Camera) ViewMatrix() mgl64.Mat3 {
	return c.adapter.ScaleMatrix().Mul3(c.VirtualViewMatrix())
}

// GeoM returns the view matrix in the form ebiten draw options expect.
func (c *Camera) GeoM() ebiten.GeoM {
	return ToGeoM(c.ViewMatrix())
}

// WorldToScreen maps a world point to window coordinates.
func (c *Camera) WorldToScreen(p mgl64.Vec2) mgl64.Vec2 {
	return c.ViewMatrix().Mul3x1(p.Vec3(1)).Vec2()
}

// ScreenToWorld maps a window point back into the world.
func (c *Camera) ScreenToWorld(p mgl64.Vec2) mgl64.Vec2 {
	return c.ViewMatrix().Inv().Mul3x1(p.Vec3(1)).Vec2()
}

// Rect is an axis-aligned world-space rectangle.
type Rect struct {
	Min, Max mgl64.Vec2
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p mgl64.Vec2) bool {
	return p.X() >= r.Min.X() && p.X() <= r.Max.X() &&
		p.Y() >= r.Min.Y() && p.Y() <= r.Max.Y()
}

// Intersects reports whether r and o overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X() <= o.Max.X() && o.Min.X() <= r.Max.X() &&
		r.Min.Y() <= o.Max.Y() && o.Min.Y() <= r.Max.Y()
}

// VisibleBounds is the world-space bounding box of the virtual viewport.
func (c *Camera) VisibleBounds() Rect {
	w, h := c.adapter.VirtualSize()
	inv := c.VirtualViewMatrix().Inv()
	corners := [4]mgl64.Vec2{{0, 0}, {w, 0}, {0, h}, {w, h}}

	r := Rect{
		Min: mgl64.Vec2{math.Inf(1), math.Inf(1)},
		Max: mgl64.Vec2{math.Inf(-1), math.Inf(-1)},
	}
	for _, corner := range corners {
		p := inv.Mul3x1(corner.Vec3(1)).Vec2()
		r.Min = mgl64.Vec2{math.Min(r.Min.X(), p.X()), math.Min(r.Min.Y(), p.Y())}
		r.Max = mgl64.Vec2{math.Max(r.Max.X(), p.X()), math.Max(r.Max.Y(), p.Y())}
	}
	return r
}

// ToGeoM converts the affine part of a homogeneous 2D matrix.
func ToGeoM(m mgl64.Mat3) ebiten.GeoM {
	var g ebiten.GeoM
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			g.SetElement(row, col, m.At(row, col))
		}
	}
	return g
}
