package archcam

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/camera"
	"github.com/plus3/ecscam/input"
)

// Settings holds the reloadable movement settings.
type Settings struct {
	Step     float64
	Bindings input.Bindings
}

// Keyboard is the key snapshot for the frame being simulated.
type Keyboard struct {
	input.KeyboardState
}

// View is the camera the systems follow and draw through.
type View struct {
	*camera.Camera
}

// Screen is the draw target, only set while the render scheduler runs.
type Screen struct {
	*ebiten.Image
}

// Textures is the atlas sprites are looked up in.
type Textures struct {
	*assets.Atlas
}
