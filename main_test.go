package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-torus/game"
	"github.com/sheikhrachel/go-gol-torus/surface"
	"github.com/sheikhrachel/go-gol-torus/telemetry"
	"github.com/sheikhrachel/go-gol-torus/utils"
)

func TestCheckRestartConditions(t *testing.T) {
	config := utils.DefaultAppConfig()

	tests := []struct {
		living, stagnant int
		want             bool
		reason           string
	}{
		{living: 0, stagnant: 0, want: true, reason: "extinction"},
		{living: 10, stagnant: 5, want: true, reason: "stagnation detected"},
		{living: 10, stagnant: 4, want: false},
		{living: 10, stagnant: 0, want: false},
	}
	for _, tt := range tests {
		got, reason := checkRestartConditions(tt.living, tt.stagnant, config)
		if got != tt.want || reason != tt.reason {
			t.Fatalf("checkRestartConditions(%d, %d) = %v %q, expected %v %q",
				tt.living, tt.stagnant, got, reason, tt.want, tt.reason)
		}
	}

	config.StagnationThreshold = 0
	if got, _ := checkRestartConditions(10, 100, config); got {
		t.Fatalf("a zero threshold should disable stagnation restarts")
	}
}

func TestApplyFlags(t *testing.T) {
	config := utils.DefaultAppConfig()
	applyFlags(&config, flags{seed: 7, csvPath: "out.csv", logPath: "gol.log"})
	if config.Seed != 7 || config.TelemetryPath != "out.csv" || config.LogPath != "gol.log" {
		t.Fatalf("flags not applied: %+v", config)
	}

	config = utils.DefaultAppConfig()
	applyFlags(&config, flags{})
	if config.Seed == 0 {
		t.Fatalf("a zero seed should be replaced")
	}
}

type sessionFixture struct {
	session   *session
	ctrl      *game.Controller
	scheduler *game.ManualScheduler
	screen    tcell.SimulationScreen
	csv       *bytes.Buffer
	frames    []game.Frame
}

func newSessionFixture(t *testing.T, config utils.AppConfig) *sessionFixture {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(80, 20)
	t.Cleanup(screen.Fini)

	f := &sessionFixture{
		scheduler: game.NewManualScheduler(),
		screen:    screen,
		csv:       &bytes.Buffer{},
	}

	registry := surface.NewRegistry()
	registry.Register(config.Game.CanvasID, surface.NewTerminal(screen, 0, 0, statusLines))

	f.ctrl = game.New(registry,
		game.WithConfig(config.Game),
		game.WithScheduler(f.scheduler),
		game.WithSeed(5),
		game.WithFrameHook(func(fr game.Frame) { f.frames = append(f.frames, fr) }),
	)
	if err := f.ctrl.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	logger := slog.New(slog.DiscardHandler)
	f.session = newSession(screen, f.ctrl, config, telemetry.NewRecorder(f.csv), logger)
	return f
}

func (f *sessionFixture) line(row int) string {
	width, _ := f.screen.Size()
	var b strings.Builder
	for x := range width {
		r, _, _, _ := f.screen.GetContent(x, row)
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func TestSessionKeys(t *testing.T) {
	f := newSessionFixture(t, utils.DefaultAppConfig())

	if err := f.session.onKey(' '); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if f.ctrl.IsActive() {
		t.Fatalf("space should pause a running game")
	}
	if f.line(0) != "Paused" {
		t.Fatalf("status line = %q", f.line(0))
	}

	if err := f.session.onKey('n'); err != nil {
		t.Fatalf("next frame: %v", err)
	}
	if f.ctrl.Grid().GetAge() != 1 || f.ctrl.IsActive() {
		t.Fatalf("n should advance one paused generation")
	}

	if err := f.session.onKey(' '); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !f.ctrl.IsActive() {
		t.Fatalf("space should resume a paused game")
	}

	if err := f.session.onKey('r'); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if f.ctrl.Grid().GetAge() != 0 || !f.ctrl.IsActive() {
		t.Fatalf("r should restart with a fresh grid")
	}

	if err := f.session.onKey('q'); !errors.Is(err, errQuit) {
		t.Fatalf("q = %v, expected errQuit", err)
	}
	if err := f.session.onKey('x'); err != nil {
		t.Fatalf("unbound key = %v", err)
	}
}

func TestSessionOnFrame(t *testing.T) {
	config := utils.DefaultAppConfig()
	config.AutoRestart = false
	f := newSessionFixture(t, config)

	f.scheduler.FireN(3)
	if len(f.frames) != 2 {
		t.Fatalf("got %d frames, expected 2", len(f.frames))
	}
	for _, fr := range f.frames {
		if err := f.session.onFrame(fr); err != nil {
			t.Fatalf("onFrame: %v", err)
		}
	}

	if !strings.HasPrefix(f.line(0), "Gen: 2 | Living: ") {
		t.Fatalf("status line = %q", f.line(0))
	}
	lines := strings.Split(strings.TrimSpace(f.csv.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry has %d lines, expected 3:\n%s", len(lines), f.csv.String())
	}
	if f.session.stats.TotalGenerations != 2 {
		t.Fatalf("TotalGenerations = %d, expected 2", f.session.stats.TotalGenerations)
	}
}

func TestSessionRestartsOnExtinction(t *testing.T) {
	f := newSessionFixture(t, utils.DefaultAppConfig())
	f.scheduler.FireN(3)

	extinct := game.Frame{Generation: 3, Population: 0, Rows: 10, Cols: 15}
	if err := f.session.onFrame(extinct); err != nil {
		t.Fatalf("onFrame: %v", err)
	}
	if f.ctrl.Grid().GetAge() != 0 {
		t.Fatalf("extinction should restart the game")
	}
	if f.session.lastRestartGen != 1 {
		t.Fatalf("lastRestartGen = %d, expected 1", f.session.lastRestartGen)
	}
	if f.session.stats.Restarts != 1 {
		t.Fatalf("Restarts = %d, expected 1", f.session.stats.Restarts)
	}
}

func TestSessionStopsAtMaxGenerations(t *testing.T) {
	config := utils.DefaultAppConfig()
	config.MaxGenerations = 1
	f := newSessionFixture(t, config)
	f.scheduler.Fire()

	if err := f.session.onFrame(f.frames[0]); err != nil {
		t.Fatalf("onFrame: %v", err)
	}
	if f.ctrl.IsActive() {
		t.Fatalf("game should pause at the generation limit")
	}
	if !strings.Contains(f.line(0), "Status: Max generations (1)") {
		t.Fatalf("status line = %q", f.line(0))
	}
}
