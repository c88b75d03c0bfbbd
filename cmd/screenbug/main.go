// Command screenbug checks that a screen's LoadContent runs once, whether the
// screen is loaded before or after the host initializes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/config"
	"github.com/plus3/ecscam/host"
	"github.com/plus3/ecscam/screen"
)

func main() {
	load := flag.String("load", "before", "when the first screen is loaded: before or after host initialization")
	fade := flag.Duration("fade", 500*time.Millisecond, "length of the fade between screens")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, *level)
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}

	game, _, err := newGame(*load, *fade, logger, inpututil.IsKeyJustPressed)
	if err != nil {
		logger.Error("screenbug setup", "error", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(800, 480)
	ebiten.SetWindowTitle("screenbug")
	if err := game.Run(); err != nil {
		logger.Error("screenbug stopped", "error", err)
		os.Exit(1)
	}
}

// newGame wires a manager and the first screen into a host. With "before"
// the screen is loaded straight away; with "after" it is loaded from the
// Ready hook once the host has initialized and loaded everything.
func newGame(load string, fade time.Duration, logger *slog.Logger, pressed func(ebiten.Key) bool) (*host.Game, *Screen1, error) {
	g := host.New(assets.NewAtlas(), logger)
	m := screen.NewManager()
	if err := g.Add(m); err != nil {
		return nil, nil, err
	}
	if err := g.Add(quitOnEscape{g: g, pressed: pressed}); err != nil {
		return nil, nil, err
	}

	first := NewScreen1("screen-1", fade, logger)
	first.pressed = pressed
	switch load {
	case "before":
		if err := m.LoadScreen(first); err != nil {
			return nil, nil, err
		}
	case "after":
		g.Ready = func(*host.Game) error {
			return m.LoadScreen(first)
		}
	default:
		return nil, nil, fmt.Errorf("screenbug: -load must be before or after, got %q", load)
	}
	logger.Info("starting screenbug", "load", load, "fade", fade)
	return g, first, nil
}

type quitOnEscape struct {
	g       *host.Game
	pressed func(ebiten.Key) bool
}

func (q quitOnEscape) Update(host.GameTime) error {
	if q.pressed(ebiten.KeyEscape) {
		q.g.Exit()
	}
	return nil
}
