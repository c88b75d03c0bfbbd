// Package host runs an ordered list of game components inside ebiten.
//
// A component opts into each lifecycle stage by implementing the matching
// interface. On the first frame the host runs Setup, then Initialize on every
// component, then LoadContent on every component, then Ready. Each stage runs
// exactly once per component.
package host

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/assets"
)

// GameTime is passed to every Update and Draw.
type GameTime struct {
	// Elapsed is the fixed step of one tick.
	Elapsed time.Duration
	// Total is the game time accumulated over every tick so far.
	Total time.Duration
	Frame uint64
}

// Seconds is Elapsed in seconds.
func (t GameTime) Seconds() float64 {
	return t.Elapsed.Seconds()
}

// Initializer components build their state once, before any content loads.
type Initializer interface {
	Initialize(g *Game) error
}

// ContentLoader components load textures and spawn their scene once.
type ContentLoader interface {
	LoadContent(g *Game) error
}

// ContentUnloader components release their content when the game is disposed.
type ContentUnloader interface {
	UnloadContent()
}

// Updater components run every tick in the order they were added.
type Updater interface {
	Update(t GameTime) error
}

// Drawer components draw every frame in the order they were added.
type Drawer interface {
	Draw(screen *ebiten.Image, t GameTime)
}

// Component is anything implementing at least one of Initializer,
// ContentLoader, ContentUnloader, Updater or Drawer.
type Component any

// ErrNotComponent is returned by Add for values the host cannot drive.
var ErrNotComponent = errors.New("host: value implements no component interface")

// Game is an ebiten.Game that drives its components through the lifecycle.
type Game struct {
	Content *assets.Atlas
	Logger  *slog.Logger

	// Background fills the screen before components draw. Nil skips the fill.
	Background color.Color
	// Clear replaces the Background fill when set.
	Clear func(screen *ebiten.Image)

	// Setup runs on the first frame before any component is initialized.
	Setup func(g *Game) error
	// Ready runs once every component has loaded its content.
	Ready func(g *Game) error
	// Resize receives the outside size from Layout.
	Resize func(w, h int)

	// TPS is the tick rate Run sets. Zero or less means ebiten.DefaultTPS.
	TPS int

	components  []Component
	initialized bool
	exit        bool
	time        GameTime
}

// New returns an empty game. A nil logger uses slog.Default.
func New(content *assets.Atlas, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		Content: content,
		Logger:  logger,
		TPS:     ebiten.DefaultTPS,
	}
}

// Add appends c. Components added after the first frame are initialized and
// loaded immediately.
func (g *Game) Add(c Component) error {
	if !isComponent(c) {
		return fmt.Errorf("%w: %T", ErrNotComponent, c)
	}
	g.components = append(g.components, c)
	if !g.initialized {
		return nil
	}
	if err := g.initComponent(c); err != nil {
		return err
	}
	return g.loadComponent(c)
}

func isComponent(c Component) bool {
	switch c.(type) {
	case Initializer, ContentLoader, ContentUnloader, Updater, Drawer:
		return true
	}
	return false
}

// Components returns a copy of the components in the order they were added.
func (g *Game) Components() []Component {
	return slices.Clone(g.components)
}

// Initialized reports whether the first frame has run the lifecycle.
func (g *Game) Initialized() bool {
	return g.initialized
}

// Time is the game time of the last Update.
func (g *Game) Time() GameTime {
	return g.time
}

// Exit makes the next Update return ebiten.Termination.
func (g *Game) Exit() {
	g.exit = true
}

func (g *Game) initialize() error {
	if g.Setup != nil {
		if err := g.Setup(g); err != nil {
			return fmt.Errorf("host: setup: %w", err)
		}
	}

	// Snapshot first: components added during this stage are handled by Add.
	components := slices.Clone(g.components)
	g.initialized = true

	for _, c := range components {
		if err := g.initComponent(c); err != nil {
			return err
		}
	}
	for _, c := range components {
		if err := g.loadComponent(c); err != nil {
			return err
		}
	}

	if g.Ready != nil {
		if err := g.Ready(g); err != nil {
			return fmt.Errorf("host: ready: %w", err)
		}
	}
	g.Logger.Debug("host initialized", "components", len(g.components))
	return nil
}

func (g *Game) initComponent(c Component) error {
	if i, ok := c.(Initializer); ok {
		if err := i.Initialize(g); err != nil {
			return fmt.Errorf("host: initialize %T: %w", c, err)
		}
	}
	return nil
}

func (g *Game) loadComponent(c Component) error {
	if l, ok := c.(ContentLoader); ok {
		if err := l.LoadContent(g); err != nil {
			return fmt.Errorf("host: load content %T: %w", c, err)
		}
	}
	return nil
}

// Update runs the lifecycle on the first call, advances the game time by one
// fixed tick and updates every Updater. It stops at the first error.
func (g *Game) Update() error {
	if g.exit {
		return ebiten.Termination
	}
	if !g.initialized {
		if err := g.initialize(); err != nil {
			return err
		}
	}

	tps := g.TPS
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	g.time.Elapsed = time.Second / time.Duration(tps)
	g.time.Total += g.time.Elapsed
	g.time.Frame++

	for _, c := range slices.Clone(g.components) {
		u, ok := c.(Updater)
		if !ok {
			continue
		}
		if err := u.Update(g.time); err != nil {
			return err
		}
	}
	if g.exit {
		return ebiten.Termination
	}
	return nil
}

// Draw clears the screen, then draws every Drawer in order.
func (g *Game) Draw(screen *ebiten.Image) {
	switch {
	case g.Clear != nil:
		g.Clear(screen)
	case g.Background != nil:
		screen.Fill(g.Background)
	}
	for _, c := range g.components {
		if d, ok := c.(Drawer); ok {
			d.Draw(screen, g.time)
		}
	}
}

// Layout passes the outside size to Resize and uses it as the screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Resize != nil {
		g.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Dispose unloads component content in reverse order, then the atlas.
func (g *Game) Dispose() {
	for _, c := range slices.Backward(g.components) {
		if u, ok := c.(ContentUnloader); ok {
			u.UnloadContent()
		}
	}
	if g.Content != nil {
		g.Content.Unload()
	}
}

// Run hands the game to ebiten and disposes it once the loop ends.
func (g *Game) Run() error {
	defer g.Dispose()
	ebiten.SetTPS(g.TPS)
	return ebiten.RunGame(g)
}
