package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/ecscam/archcam"
	"github.com/plus3/ecscam/extcam"
)

// Mismatch records the first disagreement found in a frame.
type Mismatch struct {
	Frame int
	What  string
}

// Parity compares the two worlds tick by tick. Players must match exactly.
// archcam follows the player before moving it, so its camera must match the
// camera extcam had one tick earlier.
type Parity struct {
	prevCamera mgl64.Vec2
}

func newParity(ext *extcam.World) *Parity {
	return &Parity{prevCamera: ext.Camera.Center()}
}

func (p *Parity) Check(frame int, arch *archcam.World, ext *extcam.World) (Mismatch, bool) {
	defer func() { p.prevCamera = ext.Camera.Center() }()
	return p.compare(frame, arch.Player(), ext.Player(), arch.Camera.Center())
}

func (p *Parity) compare(frame int, archPlayer, extPlayer, archCamera mgl64.Vec2) (Mismatch, bool) {
	if archPlayer != extPlayer {
		return Mismatch{frame, fmt.Sprintf("player %v != %v", archPlayer, extPlayer)}, false
	}
	if archCamera != p.prevCamera {
		return Mismatch{frame, fmt.Sprintf("camera %v != %v", archCamera, p.prevCamera)}, false
	}
	return Mismatch{}, true
}
