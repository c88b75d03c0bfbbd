package extcam

import (
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/camera"
	"github.com/plus3/ecscam/component"
	"github.com/plus3/ecscam/input"
	"github.com/yohamta/donburi"
)

var (
	Position = donburi.NewComponentType[component.Position]()
	Texture  = donburi.NewComponentType[component.Texture]()
	Layer    = donburi.NewComponentType[component.Layer]()
	Control  = donburi.NewTag("Control")
)

// ViewData, SettingsData and KeyboardData live on a single world entity.
type ViewData struct {
	Camera *camera.Camera
	Atlas  *assets.Atlas
}

// SettingsData is the movement step and key bindings.
type SettingsData struct {
	Step     float64
	Bindings input.Bindings
}

// KeyboardData holds the keys for the frame being simulated.
type KeyboardData struct {
	input.KeyboardState
}

var (
	View     = donburi.NewComponentType[ViewData]()
	Settings = donburi.NewComponentType[SettingsData]()
	Keyboard = donburi.NewComponentType[KeyboardData]()
)
