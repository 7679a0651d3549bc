package model

import (
	"sync"

	"github.com/pkg/errors"
)

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles grid tables between runs
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an empty grid from the pool with the given dimensions and a
// generation counter of zero
func (p *GridPool) Get(rows, cols, cellWidth int, cellColor string) (*Grid, error) {
	if err := validateDimensions(rows, cols, cellWidth); err != nil {
		return nil, errors.Wrap(err, "[GridPool.Get]")
	}
	if cellColor == "" {
		cellColor = DefaultCellColor
	}

	g := p.pool.Get().(*Grid)
	g.reset(rows, cols, cellWidth, cellColor)
	return g, nil
}

// Put returns a grid to the pool, clearing its state
func (p *GridPool) Put(g *Grid) {
	g.ClearCells()
	p.pool.Put(g)
}

// reset resizes the grid, reusing the existing tables when they are large
// enough
func (g *Grid) reset(rows, cols, cellWidth int, cellColor string) {
	n := rows * cols
	cur, nxt := g.cur, g.nxt
	if cap(cur) < n || cap(nxt) < n {
		cur, nxt = make([]Slot, n), make([]Slot, n)
	} else {
		cur, nxt = cur[:n], nxt[:n]
		clear(cur)
		clear(nxt)
	}

	*g = Grid{
		rows:      rows,
		cols:      cols,
		cellWidth: cellWidth,
		cellColor: cellColor,
		cur:       cur,
		nxt:       nxt,
	}
}
