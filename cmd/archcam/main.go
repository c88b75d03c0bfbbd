// Command archcam runs the camera demo on the ooftn archetype ECS.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ecscam/archcam"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/config"
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
		logger.Error("archcam stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, flags *config.Flags, logger *slog.Logger) error {
	logger.Info("starting dungeons", "ecs", "ooftn", "debug", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	atlas := assets.NewAtlas(assets.WithContentDir(cfg.ContentDir))
	defer atlas.Unload()

	world, err := archcam.NewWorld(cfg, atlas)
	if err != nil {
		return err
	}
	game := archcam.NewGame(world, input.Ebiten{}, logger)

	if flags.Watch && flags.Path != "" {
		game.Reload, err = config.Watch(ctx, flags.Path, logger)
		if err != nil {
			return err
		}
		logger.Info("watching config", "path", flags.Path)
	}

	if cfg.Debug {
		game.EnableDebugUI(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Window.TPS)

	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	logger.Info("bye")
	return nil
}
