// Package game drives a Life grid: it owns the configuration, the lifecycle
// (uninitialized, running, paused) and the frame-pacing loop that clears,
// draws and advances the grid at the configured frame rate.
package game

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-torus/model"
	"github.com/sheikhrachel/go-gol-torus/surface"
	"github.com/sheikhrachel/go-gol-torus/utils"
)

// ErrNotInitialized is returned by operations that need a started game.
var ErrNotInitialized = errors.New("game not initialized")

// State is the lifecycle state of a Controller.
type State int

const (
	Uninitialized State = iota
	Paused
	Running
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Running:
		return "running"
	default:
		return "uninitialized"
	}
}

// Frame describes one rendered tick. The grid drawn is generation
// Generation-1; Population and the transition counts describe the grid after
// the update.
type Frame struct {
	Generation int
	Population int
	Births     int
	Deaths     int
	Survivors  int
	Stagnant   bool
	Rows       int
	Cols       int
	Duration   time.Duration
}

// Controller owns one grid and the loop animating it.
type Controller struct {
	mu sync.Mutex

	cfg       utils.Config
	provider  surface.Provider
	scheduler Scheduler
	pool      *model.GridPool
	rng       *rand.Rand
	logger    *slog.Logger
	onFrame   func(Frame)

	initialized bool
	active      bool
	grid        *model.Grid
	surf        surface.Surface
	ctx         surface.Context

	// taskID identifies the live animation chain; callbacks of older chains
	// are ignored.
	taskID uint64
	cancel Cancel
	err    error
}

// Option customizes a Controller
type Option func(*Controller)

// WithConfig sets the initial configuration
func WithConfig(cfg utils.Config) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithScheduler replaces the timer-backed scheduler
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithSeed makes grid initialization deterministic
func WithSeed(seed int64) Option {
	return func(c *Controller) { c.rng = utils.NewRNG(seed) }
}

// WithGridPool recycles grid tables across Stop/Start cycles
func WithGridPool(p *model.GridPool) Option {
	return func(c *Controller) { c.pool = p }
}

// WithFrameHook registers fn to be called after every rendered frame. fn runs
// outside the controller lock and may call back into the controller.
func WithFrameHook(fn func(Frame)) Option {
	return func(c *Controller) { c.onFrame = fn }
}

// New creates a Controller that acquires its drawing surface from provider
func New(provider surface.Provider, opts ...Option) *Controller {
	c := &Controller{
		cfg:       utils.DefaultConfig(),
		provider:  provider,
		scheduler: NewRealScheduler(DefaultRefreshPeriod),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = utils.NewRNG(utils.RandomSeed())
	}
	return c
}

// Configure merges the recognized keys of partial into the configuration.
// It fails with a ConfigurationError while the game is initialized.
func (c *Controller) Configure(partial map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return errRunning()
	}
	merged, err := c.cfg.Merge(partial)
	if err != nil {
		return errors.Wrap(err, "[Controller.Configure]")
	}
	c.cfg = merged
	return nil
}

// SetConfig replaces the whole configuration. It fails with a
// ConfigurationError while the game is initialized.
func (c *Controller) SetConfig(cfg utils.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return errRunning()
	}
	c.cfg = cfg
	return nil
}

// Config returns a snapshot of the current configuration
func (c *Controller) Config() utils.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

func errRunning() error {
	return errors.WithStack(&utils.ConfigurationError{Reason: "can't re-configure a running game, stop it first"})
}

// Start initializes the game on first use and starts the animation loop.
// Starting an already running game does nothing.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		if err := c.initLocked(); err != nil {
			return err
		}
	}
	if c.active {
		return nil
	}

	c.active = true
	c.animateLocked()
	c.logger.Info("game started", "rows", c.grid.GetRows(), "cols", c.grid.GetCols(), "fps", c.cfg.FPS)
	return nil
}

func (c *Controller) initLocked() error {
	cfg := c.cfg
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "[Controller.Start]")
	}

	surf, err := c.provider.Acquire(cfg.CanvasID)
	if err != nil {
		return errors.Wrapf(err, "[Controller.Start] failed to acquire surface %q", cfg.CanvasID)
	}
	if err = surface.ValidateSurface(surf); err != nil {
		return errors.Wrapf(err, "[Controller.Start] surface %q", cfg.CanvasID)
	}
	surf.Resize(cfg.Width, cfg.Height)

	ctx := surf.Context()
	if err = surface.ValidateContext(ctx); err != nil {
		return errors.Wrapf(err, "[Controller.Start] surface %q", cfg.CanvasID)
	}

	var grid *model.Grid
	if c.pool != nil {
		grid, err = c.pool.Get(cfg.Rows(), cfg.Cols(), cfg.CellWidth, cfg.CellColor)
	} else {
		grid, err = model.NewGrid(cfg.Rows(), cfg.Cols(), cfg.CellWidth, cfg.CellColor)
	}
	if err != nil {
		return errors.Wrap(err, "[Controller.Start]")
	}
	grid.Init(c.rng)

	c.grid, c.surf, c.ctx = grid, surf, ctx
	c.initialized = true
	c.err = nil
	c.logger.Debug("game initialized", "canvas", cfg.CanvasID, "population", grid.CountLivingCells())
	return nil
}

// Stop clears the surface, halts the loop and drops the grid. The next Start
// builds a fresh random grid.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.active = false
	if !c.initialized {
		return nil
	}

	err := c.grid.Clear(c.ctx)
	surface.Present(c.ctx)

	model.GridToPool(c.grid, c.pool)
	c.grid, c.surf, c.ctx = nil, nil, nil
	c.initialized = false
	c.logger.Info("game stopped")

	if err != nil {
		return errors.Wrap(err, "[Controller.Stop]")
	}
	return nil
}

// Pause halts the loop, keeping the grid and the surface
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		c.logger.Debug("game paused")
	}
	c.active = false
	c.cancelLocked()
}

// Resume restarts the loop of a paused game
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return errors.WithStack(ErrNotInitialized)
	}
	c.active = true
	c.animateLocked()
	c.logger.Debug("game resumed")
	return nil
}

// NextFrame renders and advances exactly one generation, then leaves the game
// paused whatever its previous state
func (c *Controller) NextFrame() error {
	c.mu.Lock()

	if !c.initialized {
		c.mu.Unlock()
		return errors.WithStack(ErrNotInitialized)
	}
	c.cancelLocked()
	c.active = false

	frame, err := c.renderFrameLocked()
	hook := c.onFrame
	c.mu.Unlock()

	if err != nil {
		return errors.Wrap(err, "[Controller.NextFrame]")
	}
	if hook != nil {
		hook(frame)
	}
	return nil
}

// Grid returns a copy of the current grid, or nil when not initialized
func (c *Controller) Grid() *model.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.grid == nil {
		return nil
	}
	return c.grid.Clone()
}

// State returns the lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case !c.initialized:
		return Uninitialized
	case c.active:
		return Running
	default:
		return Paused
	}
}

// IsActive reports whether the loop is running
func (c *Controller) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// IsInitialized reports whether a grid and a surface are held
func (c *Controller) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Err returns the error that halted the loop, if any
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
