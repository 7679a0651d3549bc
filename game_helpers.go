package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/go-gol-torus/game"
	"github.com/sheikhrachel/go-gol-torus/telemetry"
	"github.com/sheikhrachel/go-gol-torus/utils"
)

// session holds the terminal front end state around a running controller
type session struct {
	screen   tcell.Screen
	ctrl     *game.Controller
	config   utils.AppConfig
	recorder *telemetry.Recorder
	logger   *slog.Logger
	stats    *utils.Stats

	generation     int // generations across restarts
	lastRestartGen int
	stagnantCount  int
	lastFrameTime  time.Time
}

func newSession(
	screen tcell.Screen,
	ctrl *game.Controller,
	config utils.AppConfig,
	recorder *telemetry.Recorder,
	logger *slog.Logger,
) *session {
	return &session{
		screen:        screen,
		ctrl:          ctrl,
		config:        config,
		recorder:      recorder,
		logger:        logger,
		stats:         utils.NewStats(),
		lastFrameTime: time.Now(),
	}
}

// displayGameInfo shows the initial game information
func (s *session) displayGameInfo() {
	cfg := s.ctrl.Config()
	living := 0
	if g := s.ctrl.Grid(); g != nil {
		living = g.CountLivingCells()
	}
	s.drawLine(0, fmt.Sprintf("Grid: %dx%d | Initial living cells: %d | seed %d",
		cfg.Cols(), cfg.Rows(), living, s.config.Seed))
	s.drawLine(1, "space pause/resume | n next frame | r restart | q quit")
	s.screen.Show()
}

// onFrame updates statistics, telemetry and the status line for a rendered frame
func (s *session) onFrame(fr game.Frame) error {
	s.generation++
	livingCells, density, status := s.updateGameState(fr)

	err := s.recorder.Write(telemetry.Record{
		Generation: fr.Generation,
		Population: fr.Population,
		Births:     fr.Births,
		Deaths:     fr.Deaths,
		Survivors:  fr.Survivors,
		Density:    density,
		Stagnant:   fr.Stagnant,
		DurationUS: fr.Duration.Microseconds(),
	})
	if err != nil {
		return err
	}

	if s.config.MaxGenerations > 0 && fr.Generation >= s.config.MaxGenerations {
		s.ctrl.Pause()
		status = fmt.Sprintf("Max generations (%d)", s.config.MaxGenerations)
	}
	s.displayGameStatus(fr.Generation, livingCells, density, status)

	shouldRestart, reason := checkRestartConditions(livingCells, s.stagnantCount, s.config)
	if shouldRestart && s.config.AutoRestart && s.ctrl.IsActive() {
		s.logger.Info("restarting", "reason", reason, "generation", fr.Generation)
		return s.restartGame()
	}
	return nil
}

// updateGameState updates the statistics and returns status information
func (s *session) updateGameState(fr game.Frame) (int, float64, string) {
	livingCells := fr.Population

	// Update performance stats
	now := time.Now()
	s.stats.Update(s.generation, livingCells, fr.Rows*fr.Cols, now.Sub(s.lastFrameTime))
	s.lastFrameTime = now
	density := s.stats.Density

	if fr.Stagnant {
		s.stagnantCount++
	} else {
		s.stagnantCount = 0
	}

	status := "Active"
	if fr.Stagnant {
		status = fmt.Sprintf("Stagnant (%d)", s.stagnantCount)
	}
	if livingCells == 0 {
		status = "Extinct"
	}
	return livingCells, density, status
}

// displayGameStatus shows the current game status
func (s *session) displayGameStatus(generation, livingCells int, density float64, status string) {
	s.drawLine(0, fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s",
		generation, livingCells, density, status))
	s.drawLine(1, fmt.Sprintf("%.1f gen/sec | Avg Pop: %.1f | Peak: %d | Restarts: %d | Since restart: %d",
		s.stats.GenerationsPerSecond, s.stats.AveragePopulation,
		s.stats.PeakPopulation, s.stats.Restarts, s.generation-s.lastRestartGen))
	s.screen.Show()
}

// onKey applies a key press to the controller
func (s *session) onKey(key rune) error {
	switch key {
	case 'q', 'Q':
		return errQuit
	case ' ':
		if s.ctrl.IsActive() {
			s.ctrl.Pause()
			s.drawLine(0, "Paused")
			s.screen.Show()
			return nil
		}
		return s.ctrl.Resume()
	case 'n', 'N':
		return s.ctrl.NextFrame()
	case 'r', 'R':
		return s.restartGame()
	}
	return nil
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.AppConfig) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame replaces the grid with a freshly randomized one
func (s *session) restartGame() error {
	if err := s.ctrl.Stop(); err != nil {
		return err
	}
	if err := s.ctrl.Start(); err != nil {
		return err
	}
	s.lastRestartGen = s.generation
	s.stagnantCount = 0
	s.stats.Restarts++
	s.displayGameInfo()
	return nil
}

func (s *session) drawLine(row int, text string) {
	width, _ := s.screen.Size()
	runes := []rune(text)
	for x := range width {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		s.screen.SetContent(x, row, r, nil, tcell.StyleDefault)
	}
}
