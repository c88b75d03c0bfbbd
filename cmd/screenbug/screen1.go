package main

import (
	"bytes"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/host"
	"github.com/plus3/ecscam/screen"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

// Screen1 reports every LoadContent call so a double load shows up in the log
// and on screen.
type Screen1 struct {
	screen.Base

	Name string
	Fade time.Duration

	logger  *slog.Logger
	pressed func(ebiten.Key) bool
	face    *text.GoTextFace
	loads   int
	updates int
}

func NewScreen1(name string, fade time.Duration, logger *slog.Logger) *Screen1 {
	return &Screen1{
		Name:    name,
		Fade:    fade,
		logger:  logger,
		pressed: inpututil.IsKeyJustPressed,
	}
}

func (s *Screen1) LoadContent(*assets.Atlas) error {
	s.loads++
	s.logger.Info("Hello from Screen1 LoadContent!", "screen", s.Name, "count", s.loads)

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("screenbug: font: %w", err)
	}
	s.face = &text.GoTextFace{Source: src, Size: 24}
	return nil
}

func (s *Screen1) UnloadContent() {
	s.face = nil
	s.logger.Debug("screen unloaded", "screen", s.Name)
}

// Loads is how many times LoadContent ran.
func (s *Screen1) Loads() int {
	return s.loads
}

// Update swaps to a fresh screen through a fade when space is pressed. A
// swap already in flight is left alone.
func (s *Screen1) Update(t host.GameTime) error {
	s.updates++
	m := s.Manager()
	if m == nil || m.Transition() != nil || !s.pressed(ebiten.KeySpace) {
		return nil
	}
	next := NewScreen1(fmt.Sprintf("screen-%d", t.Frame), s.Fade, s.logger)
	next.pressed = s.pressed
	return m.LoadScreen(next, screen.NewFadeTransition(s.Fade, color.Black))
}

func (s *Screen1) Draw(dst *ebiten.Image, t host.GameTime) {
	dst.Fill(colornames.Cornflowerblue)
	if s.face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(24, 24)
	op.LineSpacing = s.face.Size * 1.5
	text.Draw(dst, s.caption(), s.face, op)
}

func (s *Screen1) caption() string {
	return fmt.Sprintf("%s\nLoadContent calls: %d\nframes: %d\n\nspace: next screen  esc: quit",
		s.Name, s.loads, s.updates)
}
