package screen

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/host"
)

// ErrNoScreen is returned when a nil screen is loaded.
var ErrNoScreen = errors.New("screen: nil screen")

type entry struct {
	screen      Screen
	id          uuid.UUID
	initialized bool
	loaded      bool
}

// Manager is a host component that shows one active screen at a time.
type Manager struct {
	logger  *slog.Logger
	content *assets.Atlas

	active     *entry
	next       *entry
	transition Transition

	initialized bool
	loaded      bool
}

// NewManager returns a manager with no screen.
func NewManager() *Manager {
	return &Manager{logger: slog.Default()}
}

// Active returns the screen currently shown, or nil.
func (m *Manager) Active() Screen {
	if m.active == nil {
		return nil
	}
	return m.active.screen
}

// ActiveID identifies the current load of the active screen. Loading the
// same screen value again yields a new ID.
func (m *Manager) ActiveID() uuid.UUID {
	if m.active == nil {
		return uuid.Nil
	}
	return m.active.id
}

// Transition is the running transition, or nil.
func (m *Manager) Transition() Transition {
	return m.transition
}

// LoadScreen makes s the active screen. With a transition the swap happens
// at the transition's midpoint. Before the manager is initialized the screen
// is only recorded; the host lifecycle initializes and loads it later.
func (m *Manager) LoadScreen(s Screen, transition ...Transition) error {
	if s == nil {
		return ErrNoScreen
	}
	e := &entry{screen: s, id: uuid.New()}

	if len(transition) > 0 && transition[0] != nil && m.active != nil {
		m.next = e
		m.transition = transition[0]
		m.logger.Debug("screen queued", "screen", fmt.Sprintf("%T", s), "id", e.id)
		return nil
	}
	return m.swap(e)
}

func (m *Manager) swap(e *entry) error {
	m.unload(m.active)
	m.active = e
	m.logger.Debug("screen active", "screen", fmt.Sprintf("%T", e.screen), "id", e.id)

	if m.initialized {
		if err := m.initEntry(e); err != nil {
			return err
		}
	}
	if m.loaded {
		return m.loadEntry(e)
	}
	return nil
}

func (m *Manager) initEntry(e *entry) error {
	if e.initialized {
		return nil
	}
	if err := e.screen.Initialize(m); err != nil {
		return fmt.Errorf("screen: initialize %T: %w", e.screen, err)
	}
	e.initialized = true
	return nil
}

func (m *Manager) loadEntry(e *entry) error {
	if e.loaded {
		return nil
	}
	if err := e.screen.LoadContent(m.content); err != nil {
		return fmt.Errorf("screen: load content %T: %w", e.screen, err)
	}
	e.loaded = true
	m.logger.Debug("screen content loaded", "screen", fmt.Sprintf("%T", e.screen), "id", e.id)
	return nil
}

func (m *Manager) unload(e *entry) {
	if e == nil || !e.loaded {
		return
	}
	e.screen.UnloadContent()
	e.loaded = false
}

// Initialize picks up the host logger and atlas and initializes a screen
// loaded before the host started.
func (m *Manager) Initialize(g *host.Game) error {
	if g.Logger != nil {
		m.logger = g.Logger
	}
	m.content = g.Content
	m.initialized = true
	if m.active != nil {
		return m.initEntry(m.active)
	}
	return nil
}

// LoadContent loads the active screen if it has not been loaded yet.
func (m *Manager) LoadContent(*host.Game) error {
	m.loaded = true
	if m.active != nil {
		return m.loadEntry(m.active)
	}
	return nil
}

// UnloadContent unloads the active screen.
func (m *Manager) UnloadContent() {
	m.unload(m.active)
	m.loaded = false
}

// Update advances the transition, swapping screens at its midpoint, then
// updates the active screen.
func (m *Manager) Update(t host.GameTime) error {
	if m.transition != nil {
		m.transition.Update(t)
		if m.next != nil && m.transition.Halfway() {
			next := m.next
			m.next = nil
			if err := m.swap(next); err != nil {
				return err
			}
		}
		if m.transition.Done() {
			m.transition = nil
		}
	}
	if m.active == nil {
		return nil
	}
	return m.active.screen.Update(t)
}

// Draw draws the active screen, then the transition over it.
func (m *Manager) Draw(dst *ebiten.Image, t host.GameTime) {
	if m.active != nil {
		m.active.screen.Draw(dst, t)
	}
	if m.transition != nil {
		m.transition.Draw(dst)
	}
}
