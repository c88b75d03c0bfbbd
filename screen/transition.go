package screen

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/ecscam/host"
)

// Transition covers a screen swap. The manager swaps screens once Halfway
// reports true and drops the transition once Done does.
type Transition interface {
	Update(t host.GameTime)
	Draw(dst *ebiten.Image)
	Halfway() bool
	Done() bool
}

// FadeState is the phase of a FadeTransition.
type FadeState int

const (
	FadeOut FadeState = iota
	FadeIn
	FadeDone
)

// FadeTransition fades to Color over the first half of Duration and back
// over the second half.
type FadeTransition struct {
	Duration time.Duration
	Color    color.Color

	elapsed time.Duration
}

// NewFadeTransition returns a fade through c lasting d.
func NewFadeTransition(d time.Duration, c color.Color) *FadeTransition {
	return &FadeTransition{Duration: d, Color: c}
}

// Update advances the fade by one tick.
func (f *FadeTransition) Update(t host.GameTime) {
	f.elapsed = min(f.elapsed+t.Elapsed, f.Duration)
}

// State is the current phase.
func (f *FadeTransition) State() FadeState {
	switch {
	case f.elapsed >= f.Duration:
		return FadeDone
	case f.elapsed >= f.Duration/2:
		return FadeIn
	default:
		return FadeOut
	}
}

// Halfway reports whether the fade has reached full colour.
func (f *FadeTransition) Halfway() bool {
	return f.State() != FadeOut
}

// Done reports whether the fade has finished.
func (f *FadeTransition) Done() bool {
	return f.State() == FadeDone
}

// Value is the overlay opacity: 0 at the ends, 1 at the midpoint.
func (f *FadeTransition) Value() float64 {
	half := f.Duration / 2
	if half <= 0 {
		return 0
	}
	if f.elapsed < half {
		return float64(f.elapsed) / float64(half)
	}
	return max(0, 1-float64(f.elapsed-half)/float64(f.Duration-half))
}

// Overlay is Color scaled by Value, premultiplied.
func (f *FadeTransition) Overlay() color.Color {
	c := f.Color
	if c == nil {
		c = color.Black
	}
	r, g, b, a := c.RGBA()
	v := f.Value()
	return color.RGBA64{
		R: uint16(float64(r) * v),
		G: uint16(float64(g) * v),
		B: uint16(float64(b) * v),
		A: uint16(float64(a) * v),
	}
}

// Draw covers dst with Color at the current opacity.
func (f *FadeTransition) Draw(dst *ebiten.Image) {
	if f.Value() == 0 {
		return
	}
	b := dst.Bounds()
	vector.DrawFilledRect(dst, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), f.Overlay(), false)
}
