// Command extcam runs the camera demo on donburi inside the component host.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/config"
	"github.com/plus3/ecscam/extcam"
	"github.com/plus3/ecscam/host"
	"github.com/plus3/ecscam/input"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	flag.Parse()

	cfg, logger, err := flags.Resolve(os.Stderr)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := run(cfg, flags, logger); err != nil {
		logger.Error("extcam stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, flags *config.Flags, logger *slog.Logger) error {
	logger.Info("starting dungeons", "ecs", "donburi")
	if cfg.Debug {
		logger.Warn("debug UI is only available in archcam")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	world, err := extcam.NewWorld(cfg)
	if err != nil {
		return err
	}
	world.Input = input.Ebiten{}

	game := host.New(assets.NewAtlas(assets.WithContentDir(cfg.ContentDir)), logger)
	game.TPS = cfg.Window.TPS
	game.Clear = world.Clear
	game.Resize = world.Resize
	if err := game.Add(world); err != nil {
		return err
	}

	if flags.Watch && flags.Path != "" {
		updates, err := config.Watch(ctx, flags.Path, logger)
		if err != nil {
			return err
		}
		if err := game.Add(&reloader{world: world, updates: updates, logger: logger}); err != nil {
			return err
		}
		logger.Info("watching config", "path", flags.Path)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := game.Run(); err != nil {
		return err
	}
	logger.Info("bye")
	return nil
}

// reloader applies hot-reloaded configs between frames.
type reloader struct {
	world   *extcam.World
	updates <-chan *config.Config
	logger  *slog.Logger
}

func (r *reloader) Update(host.GameTime) error {
	for {
		select {
		case cfg, ok := <-r.updates:
			if !ok {
				r.updates = nil
				return nil
			}
			if err := r.world.Apply(cfg); err != nil {
				r.logger.Warn("config not applied", "error", err)
				continue
			}
			r.logger.Info("config applied", "zoom", cfg.Camera.Zoom, "step", cfg.Player.Step)
		default:
			return nil
		}
	}
}
