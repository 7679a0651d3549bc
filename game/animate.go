package game

import (
	"time"

	"github.com/sheikhrachel/go-gol-torus/surface"
)

// animateLocked replaces any pending chain with a new one whose first tick
// fires after one frame interval.
func (c *Controller) animateLocked() {
	c.cancelLocked()
	c.taskID++
	c.armLocked(c.taskID)
}

func (c *Controller) armLocked(id uint64) {
	c.cancel = c.scheduler.After(c.cfg.FrameInterval(), func() { c.tick(id) })
}

func (c *Controller) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) current(id uint64) bool {
	return c.active && c.initialized && id == c.taskID
}

// tick renders one frame and re-arms on the next display frame.
func (c *Controller) tick(id uint64) {
	c.mu.Lock()
	if !c.current(id) {
		c.mu.Unlock()
		return
	}

	frame, err := c.renderFrameLocked()
	if err != nil {
		c.err = err
		c.active = false
		c.cancel = nil
		c.mu.Unlock()
		c.logger.Error("animation halted", "error", err)
		return
	}

	c.cancel = c.scheduler.NextFrame(func() { c.rearm(id) })
	hook := c.onFrame
	c.mu.Unlock()

	if hook != nil {
		hook(frame)
	}
}

func (c *Controller) rearm(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(id) {
		return
	}
	c.armLocked(id)
}

// renderFrameLocked clears the surface, draws the current generation and
// advances the grid.
func (c *Controller) renderFrameLocked() (Frame, error) {
	start := time.Now()

	if err := c.grid.Clear(c.ctx); err != nil {
		return Frame{}, err
	}
	if err := c.grid.Draw(c.ctx); err != nil {
		return Frame{}, err
	}
	surface.Present(c.ctx)

	c.grid.UpdateHistory()
	c.grid.Update()

	step := c.grid.LastStep()
	frame := Frame{
		Generation: c.grid.GetAge(),
		Population: step.Births + step.Survivors,
		Births:     step.Births,
		Deaths:     step.Deaths,
		Survivors:  step.Survivors,
		Stagnant:   c.grid.IsStagnant(),
		Rows:       c.grid.GetRows(),
		Cols:       c.grid.GetCols(),
		Duration:   time.Since(start),
	}
	c.logger.Debug("frame", "generation", frame.Generation, "population", frame.Population)
	return frame, nil
}
