// Package screen swaps full-screen game states inside a host.Game.
//
// The manager owns the lifecycle of its screens: whichever order the game
// uses to register the manager and load the first screen, each loaded screen
// sees Initialize and LoadContent exactly once.
package screen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/host"
)

// Screen is one page of a game run by a Manager. Initialize, LoadContent
// and UnloadContent each run once every time the screen is loaded.
type Screen interface {
	Initialize(m *Manager) error
	LoadContent(content *assets.Atlas) error
	UnloadContent()
	Update(t host.GameTime) error
	Draw(dst *ebiten.Image, t host.GameTime)
}

// Base implements every Screen method as a no-op. Embed it and override
// what the screen needs; an overriding Initialize should call Base.Initialize.
type Base struct {
	manager *Manager
}

// Initialize records the manager.
func (b *Base) Initialize(m *Manager) error {
	b.manager = m
	return nil
}

// Manager is the manager the screen was initialized by.
func (b *Base) Manager() *Manager {
	return b.manager
}

// LoadContent, UnloadContent, Update and Draw do nothing.
func (b *Base) LoadContent(*assets.Atlas) error   { return nil }
func (b *Base) UnloadContent()                    {}
func (b *Base) Update(host.GameTime) error        { return nil }
func (b *Base) Draw(*ebiten.Image, host.GameTime) {}
