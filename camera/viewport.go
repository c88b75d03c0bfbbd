package camera

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ViewportAdapter maps a virtual resolution onto the real window.
type ViewportAdapter interface {
	// VirtualSize is the resolution the game is authored against.
	VirtualSize() (w, h float64)
	// Viewport is the window-space rectangle the virtual screen is drawn into.
	Viewport() image.Rectangle
	// ScaleMatrix maps virtual coordinates to window coordinates.
	ScaleMatrix() mgl64.Mat3
	// Resize is called with the outside size reported to ebiten.Game.Layout.
	Resize(windowW, windowH int)
	// PointToScreen maps a window point (e.g. the cursor) to virtual coordinates.
	PointToScreen(x, y float64) mgl64.Vec2
}

// DefaultAdapter uses the window size as the virtual size.
type DefaultAdapter struct {
	w, h int
}

// NewDefaultAdapter returns an adapter for a w by h window.
func NewDefaultAdapter(w, h int) *DefaultAdapter {
	return &DefaultAdapter{w: w, h: h}
}

// VirtualSize is the current window size.
func (a *DefaultAdapter) VirtualSize() (float64, float64) {
	return float64(a.w), float64(a.h)
}

// Viewport covers the whole window.
func (a *DefaultAdapter) Viewport() image.Rectangle {
	return image.Rect(0, 0, a.w, a.h)
}

// ScaleMatrix is the identity.
func (a *DefaultAdapter) ScaleMatrix() mgl64.Mat3 {
	return mgl64.Ident3()
}

// Resize makes the window size the new virtual size.
func (a *DefaultAdapter) Resize(w, h int) {
	a.w, a.h = w, h
}

// PointToScreen returns the point unchanged.
func (a *DefaultAdapter) PointToScreen(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{x, y}
}

// BoxingMode tells which sides of the window have bars.
type BoxingMode int

const (
	BoxingNone BoxingMode = iota
	BoxingLetterBox
	BoxingPillarBox
)

// String returns the lower-case mode name.
func (m BoxingMode) String() string {
	switch m {
	case BoxingLetterBox:
		return "letterbox"
	case BoxingPillarBox:
		return "pillarbox"
	default:
		return "none"
	}
}

// BoxingAdapter keeps a fixed virtual resolution, scales it uniformly to
// fit the window and centres it, leaving bars on the unused sides.
type BoxingAdapter struct {
	VirtualWidth  int
	VirtualHeight int

	mode     BoxingMode
	viewport image.Rectangle
}

// NewBoxingAdapter returns an adapter for a virtualW by virtualH screen,
// sized as if the window matched it exactly.
func NewBoxingAdapter(virtualW, virtualH int) *BoxingAdapter {
	a := &BoxingAdapter{
		VirtualWidth:  virtualW,
		VirtualHeight: virtualH,
	}
	a.Resize(virtualW, virtualH)
	return a
}

// VirtualSize is the fixed virtual resolution.
func (a *BoxingAdapter) VirtualSize() (float64, float64) {
	return float64(a.VirtualWidth), float64(a.VirtualHeight)
}

// Viewport is the centred window rectangle between the bars.
func (a *BoxingAdapter) Viewport() image.Rectangle {
	return a.viewport
}

// Mode is the boxing applied by the last Resize.
func (a *BoxingAdapter) Mode() BoxingMode {
	return a.mode
}

// Resize ignores empty windows so a minimised window keeps the last viewport.
func (a *BoxingAdapter) Resize(windowW, windowH int) {
	if windowW <= 0 || windowH <= 0 {
		return
	}
	scale := a.scaleFor(windowW, windowH)
	w := int(scale*float64(a.VirtualWidth) + 0.5)
	h := int(scale*float64(a.VirtualHeight) + 0.5)

	switch {
	case h >= windowH && w < windowW:
		a.mode = BoxingPillarBox
	case w >= windowW && h < windowH:
		a.mode = BoxingLetterBox
	default:
		a.mode = BoxingNone
	}

	x := windowW/2 - w/2
	y := windowH/2 - h/2
	a.viewport = image.Rect(x, y, x+w, y+h)
}

func (a *BoxingAdapter) scaleFor(windowW, windowH int) float64 {
	if a.VirtualWidth <= 0 || a.VirtualHeight <= 0 {
		return 1
	}
	sx := float64(windowW) / float64(a.VirtualWidth)
	sy := float64(windowH) / float64(a.VirtualHeight)
	return math.Min(sx, sy)
}

func (a *BoxingAdapter) scale() (float64, float64) {
	return float64(a.viewport.Dx()) / float64(a.VirtualWidth),
		float64(a.viewport.Dy()) / float64(a.VirtualHeight)
}

// ScaleMatrix scales virtual coordinates to the viewport size and moves
// them to its corner.
func (a *BoxingAdapter) ScaleMatrix() mgl64.Mat3 {
	sx, sy := a.scale()
	return mgl64.Translate2D(float64(a.viewport.Min.X), float64(a.viewport.Min.Y)).
		Mul3(mgl64.Scale2D(sx, sy))
}

// PointToScreen maps a window point into virtual coordinates. Points in
// the bars land outside the virtual screen.
func (a *BoxingAdapter) PointToScreen(x, y float64) mgl64.Vec2 {
	sx, sy := a.scale()
	return mgl64.Vec2{
		(x - float64(a.viewport.Min.X)) / sx,
		(y - float64(a.viewport.Min.Y)) / sy,
	}
}
