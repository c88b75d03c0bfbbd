// Command camstress drives both camera worlds headless with the same
// scripted input, times them and optionally checks that they agree.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/ecscam/archcam"
	"github.com/plus3/ecscam/assets"
	"github.com/plus3/ecscam/config"
	"github.com/plus3/ecscam/extcam"
	"github.com/plus3/ecscam/host"
	"github.com/plus3/ecscam/input"
)

type options struct {
	Frames   int
	Duration time.Duration
	Seed     uint64
	Compare  bool
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	var opts options
	flag.IntVar(&opts.Frames, "frames", 100000, "number of ticks to run when -duration is zero")
	flag.DurationVar(&opts.Duration, "duration", 0, "run for this long instead of a fixed frame count")
	flag.Uint64Var(&opts.Seed, "seed", 1, "seed for the scripted input")
	flag.BoolVar(&opts.Compare, "compare", false, "check both worlds agree on player and camera every tick")
	prof := flag.String("profile", "", "cpu or mem; the profile is written to the current directory")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, *level)
	if err != nil {
		slog.Error("invalid log level", "error", err)
		return 1
	}

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		logger.Error("unknown profile", "profile", *prof)
		return 1
	}

	report, err := run(context.Background(), config.Default(), opts, logger)
	if err != nil {
		logger.Error("stress run failed", "error", err)
		return 1
	}

	fmt.Println("\n--- Camera Stress Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("report failed", "error", err)
		return 1
	}
	fmt.Println("--- End of Report ---")

	if report.MismatchCount > 0 {
		return 2
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, opts options, logger *slog.Logger) (*Report, error) {
	bindings, err := cfg.Input.Bindings()
	if err != nil {
		return nil, err
	}

	arch, err := archcam.NewWorld(cfg, assets.NewAtlas(assets.Headless()))
	if err != nil {
		return nil, err
	}

	ext, err := extcam.NewWorld(cfg)
	if err != nil {
		return nil, err
	}
	game := host.New(assets.NewAtlas(assets.Headless()), logger)
	if err := game.Add(ext); err != nil {
		return nil, err
	}
	// The first host tick initializes the world and steps it with no keys;
	// archcam gets the same empty tick so both start level.
	if err := game.Update(); err != nil {
		return nil, err
	}
	arch.Step(input.KeyboardState{})

	script := input.NewRandomScript(opts.Seed, max(opts.Frames, 1), bindings)
	report := &Report{
		Frames:   opts.Frames,
		Duration: opts.Duration,
		Seed:     opts.Seed,
		Compare:  opts.Compare,
		Entities: len(ext.Positions()),
	}

	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	logger.Info("running camera stress", "frames", opts.Frames, "duration", opts.Duration, "seed", opts.Seed)
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	parity := newParity(ext)
Loop:
	for frame := 0; opts.Duration > 0 || frame < opts.Frames; frame++ {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		keys := script.Poll()

		t := time.Now()
		arch.Step(keys)
		report.ArchTime.Samples = append(report.ArchTime.Samples, time.Since(t))

		t = time.Now()
		ext.Step(keys)
		report.ExtTime.Samples = append(report.ExtTime.Samples, time.Since(t))

		if opts.Compare {
			if m, ok := parity.Check(frame, arch, ext); !ok {
				if report.MismatchCount == 0 {
					logger.Warn("worlds disagree", "frame", frame, "what", m.What)
				}
				report.addMismatch(m)
			}
		}
		report.TotalUpdates++
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.ArchTime.Finalize()
	report.ExtTime.Finalize()
	report.Scheduler, report.Storage = arch.Stats()
	report.FinalPlayer = arch.Player()

	logger.Info("camera stress finished", "updates", report.TotalUpdates, "elapsed", report.TotalTime)
	return report, nil
}
