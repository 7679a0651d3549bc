package model

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-torus/surface"
)

// Draw paints every living cell onto ctx
func (g *Grid) Draw(ctx surface.Context) error {
	if err := surface.ValidateContext(ctx); err != nil {
		return errors.Wrap(err, "[Grid.Draw]")
	}

	for _, s := range g.cur {
		if !s.Alive {
			continue
		}
		ctx.SetFillStyle(s.Cell.Color)
		ctx.FillRect(s.Cell.X, s.Cell.Y, s.Cell.Width, s.Cell.Width)
	}
	return nil
}

// Clear wipes the whole drawing surface behind ctx
func (g *Grid) Clear(ctx surface.Context) error {
	if err := surface.ValidateContext(ctx); err != nil {
		return errors.Wrap(err, "[Grid.Clear]")
	}

	w, h := ctx.Size()
	ctx.ClearRect(0, 0, w, h)
	return nil
}
