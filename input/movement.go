package input

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultStep is the per-frame displacement in world pixels.
const DefaultStep = 2.0

// Bindings maps movement directions to keys.
type Bindings struct {
	Up    ebiten.Key
	Down  ebiten.Key
	Left  ebiten.Key
	Right ebiten.Key
}

// DefaultBindings is WASD.
func DefaultBindings() Bindings {
	return Bindings{
		Up:    ebiten.KeyW,
		Down:  ebiten.KeyS,
		Left:  ebiten.KeyA,
		Right: ebiten.KeyD,
	}
}

// ParseBindings decodes key names such as "W" or "ArrowUp". Names are matched
// case-insensitively.
func ParseBindings(up, down, left, right string) (Bindings, error) {
	var b Bindings
	var errs []error
	for _, f := range []struct {
		name string
		dst  *ebiten.Key
	}{
		{up, &b.Up},
		{down, &b.Down},
		{left, &b.Left},
		{right, &b.Right},
	} {
		if err := f.dst.UnmarshalText([]byte(f.name)); err != nil {
			errs = append(errs, fmt.Errorf("input: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Bindings{}, err
	}
	return b, b.Validate()
}

// Validate rejects bindings that share a key.
func (b Bindings) Validate() error {
	seen := make(map[ebiten.Key]string, 4)
	for _, d := range []struct {
		dir string
		key ebiten.Key
	}{
		{"up", b.Up},
		{"down", b.Down},
		{"left", b.Left},
		{"right", b.Right},
	} {
		if prev, ok := seen[d.key]; ok {
			return fmt.Errorf("input: key %s bound to both %s and %s", d.key, prev, d.dir)
		}
		seen[d.key] = d.dir
	}
	return nil
}

// Displacement returns how far the player moves this frame. Only one axis
// moves per frame: when several bound keys are held, Right wins over Left,
// which wins over Down, which wins over Up.
func Displacement(state KeyboardState, b Bindings, step float64) mgl64.Vec2 {
	var d mgl64.Vec2
	if state.IsKeyDown(b.Up) {
		d = mgl64.Vec2{0, -step}
	}
	if state.IsKeyDown(b.Down) {
		d = mgl64.Vec2{0, step}
	}
	if state.IsKeyDown(b.Left) {
		d = mgl64.Vec2{-step, 0}
	}
	if state.IsKeyDown(b.Right) {
		d = mgl64.Vec2{step, 0}
	}
	return d
}
