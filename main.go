package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-torus/game"
	"github.com/sheikhrachel/go-gol-torus/model"
	"github.com/sheikhrachel/go-gol-torus/surface"
	"github.com/sheikhrachel/go-gol-torus/telemetry"
	"github.com/sheikhrachel/go-gol-torus/utils"
)

// statusLines is the number of screen rows reserved above the grid
const statusLines = 2

var errQuit = errors.New("quit requested")

type flags struct {
	configPath string
	seed       int64
	csvPath    string
	logPath    string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "config.yaml", "YAML or JSON configuration file")
	flag.Int64Var(&f.seed, "seed", 0, "random seed (0 picks one from the clock)")
	flag.StringVar(&f.csvPath, "csv", "", "write per-generation telemetry to this CSV file")
	flag.StringVar(&f.logPath, "log", "", "write structured logs to this file")
	flag.Parse()
	return f
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintln(os.Stderr, "gol:", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(f.configPath)
	if err != nil {
		fmt.Printf("Using default configuration (%v)\n", err)
		config = utils.DefaultAppConfig()
	}
	applyFlags(&config, f)

	logger, closeLog, err := newLogger(config.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	recorder, err := telemetry.Create(config.TelemetryPath)
	if err != nil {
		return err
	}
	defer recorder.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[run] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[run] failed to initialize screen")
	}
	defer screen.Fini()

	term := surface.NewTerminal(screen, config.PixelsPerColumn, config.PixelsPerRow, statusLines)
	registry := surface.NewRegistry()
	registry.Register(config.Game.CanvasID, term)

	frames := make(chan game.Frame, 64)
	ctrl := game.New(registry,
		game.WithConfig(config.Game),
		game.WithLogger(logger),
		game.WithSeed(config.Seed),
		game.WithGridPool(model.NewGridPool()),
		game.WithFrameHook(func(fr game.Frame) {
			select {
			case frames <- fr:
			default:
				logger.Warn("dropping frame event", "generation", fr.Generation)
			}
		}),
	)
	if err = ctrl.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := newSession(screen, ctrl, config, recorder, logger)
	session.displayGameInfo()

	eg, ctx := errgroup.WithContext(ctx)
	keys := make(chan rune, 16)

	eg.Go(func() error {
		return pollInput(ctx, screen, keys)
	})
	eg.Go(func() error {
		// PollEvent only returns once the screen is finalized
		<-ctx.Done()
		ctrl.Pause()
		screen.Fini()
		return nil
	})
	eg.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case fr := <-frames:
				if err := session.onFrame(fr); err != nil {
					return err
				}
			case key := <-keys:
				if err := session.onKey(key); err != nil {
					return err
				}
			}
		}
	})

	if err = eg.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}

	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		session.stats.TotalGenerations, time.Since(session.stats.StartTime).Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		session.stats.GenerationsPerSecond, session.stats.AveragePopulation)
	return nil
}

func applyFlags(config *utils.AppConfig, f flags) {
	if f.seed != 0 {
		config.Seed = f.seed
	}
	if config.Seed == 0 {
		config.Seed = utils.RandomSeed()
	}
	if f.csvPath != "" {
		config.TelemetryPath = f.csvPath
	}
	if f.logPath != "" {
		config.LogPath = f.logPath
	}
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[newLogger] failed to open %s", path)
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { file.Close() }, nil
}

// pollInput forwards key presses until the screen is finalized
func pollInput(ctx context.Context, screen tcell.Screen, keys chan<- rune) error {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			key := keyRune(ev)
			if key == 0 {
				continue
			}
			select {
			case keys <- key:
			case <-ctx.Done():
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func keyRune(ev *tcell.EventKey) rune {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 'q'
	case tcell.KeyRune:
		return ev.Rune()
	}
	return 0
}
