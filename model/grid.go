package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-torus/rules"
)

// InitialDensity is the probability of a slot being alive after Init.
const InitialDensity = 0.5

// Grid is the toroidal Life universe. It keeps two equally sized slot tables:
// cur holds the generation being read and nxt receives the next generation
// during Update before the two are swapped.
type Grid struct {
	rows      int
	cols      int
	cellWidth int
	cellColor string
	age       int

	cur []Slot
	nxt []Slot

	last    StepStats
	history []string // Store recent grid states for cycle detection
}

// StepStats summarizes the transitions applied by the last Update.
type StepStats struct {
	Births    int
	Deaths    int
	Survivors int
}

// NewGrid creates an empty grid with the specified dimensions
func NewGrid(rows, cols, cellWidth int, cellColor string) (*Grid, error) {
	if err := validateDimensions(rows, cols, cellWidth); err != nil {
		return nil, errors.Wrap(err, "[NewGrid]")
	}
	if cellColor == "" {
		cellColor = DefaultCellColor
	}
	return &Grid{
		rows:      rows,
		cols:      cols,
		cellWidth: cellWidth,
		cellColor: cellColor,
		cur:       make([]Slot, rows*cols),
		nxt:       make([]Slot, rows*cols),
	}, nil
}

func validateDimensions(rows, cols, cellWidth int) error {
	if rows <= 0 || cols <= 0 {
		return errors.Errorf("invalid dimensions %dx%d", rows, cols)
	}
	if cellWidth <= 0 {
		return errors.Errorf("invalid cell width %d", cellWidth)
	}
	return nil
}

// GetRows returns the number of rows
func (g *Grid) GetRows() int {
	return g.rows
}

// GetCols returns the number of columns
func (g *Grid) GetCols() int {
	return g.cols
}

// GetCellWidth returns the cell width in pixels
func (g *Grid) GetCellWidth() int {
	return g.cellWidth
}

// GetCellColor returns the colour given to newborn cells
func (g *Grid) GetCellColor() string {
	return g.cellColor
}

// GetAge returns the number of generations computed so far
func (g *Grid) GetAge() int {
	return g.age
}

// LastStep returns the transition counts of the last Update
func (g *Grid) LastStep() StepStats {
	return g.last
}

func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) newCell(row, col int) Cell {
	return Cell{
		X:     g.cellWidth * col,
		Y:     g.cellWidth * row,
		Width: g.cellWidth,
		Color: g.cellColor,
	}
}

// ClearCells kills every cell. The generation counter is left untouched.
func (g *Grid) ClearCells() {
	clear(g.cur)
	g.history = nil
}

// Set makes the cell at (row, col) alive or dead. Setting an already alive
// cell alive keeps its age. Out of range coordinates are ignored.
func (g *Grid) Set(row, col int, alive bool) {
	if !g.inBounds(row, col) {
		return
	}
	s := &g.cur[g.index(row, col)]
	switch {
	case alive && !s.Alive:
		*s = Slot{Cell: g.newCell(row, col), Alive: true}
	case !alive:
		*s = Slot{}
	}
}

// Get returns whether the cell at (row, col) is alive
func (g *Grid) Get(row, col int) bool {
	if !g.inBounds(row, col) {
		return false
	}
	return g.cur[g.index(row, col)].Alive
}

// Cell returns a copy of the cell at (row, col) and whether it is alive
func (g *Grid) Cell(row, col int) (Cell, bool) {
	if !g.inBounds(row, col) {
		return Cell{}, false
	}
	s := g.cur[g.index(row, col)]
	return s.Cell, s.Alive
}

// Init replaces the whole table with independent coin flips per slot.
func (g *Grid) Init(rng *rand.Rand) {
	g.Randomize(rng, InitialDensity)
}

// Randomize fills the grid with living cells at the given density
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for row := range g.rows {
		for col := range g.cols {
			if rng.Float64() < density {
				g.cur[g.index(row, col)] = Slot{Cell: g.newCell(row, col), Alive: true}
			} else {
				g.cur[g.index(row, col)] = Slot{}
			}
		}
	}
	g.history = nil
}

// Update advances the grid by one generation. The next generation is written
// into the spare table while the current one is only read, then the tables
// are swapped.
func (g *Grid) Update() {
	var stats StepStats

	for row := range g.rows {
		for col := range g.cols {
			idx := g.index(row, col)
			cur := g.cur[idx]

			switch rules.Apply(cur.Alive, g.LiveNeighbours(row, col)) {
			case rules.Survive:
				next := cur
				next.Cell.Age++
				g.nxt[idx] = next
				stats.Survivors++
			case rules.Birth:
				g.nxt[idx] = Slot{Cell: g.newCell(row, col), Alive: true}
				stats.Births++
			case rules.Die:
				g.nxt[idx] = Slot{}
				stats.Deaths++
			default:
				g.nxt[idx] = Slot{}
			}
		}
	}

	g.cur, g.nxt = g.nxt, g.cur
	g.age++
	g.last = stats
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, s := range g.cur {
		if s.Alive {
			count++
		}
	}
	return
}

// Cells returns copies of every living cell in row-major order
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.CountLivingCells())
	for _, s := range g.cur {
		if s.Alive {
			cells = append(cells, s.Cell)
		}
	}
	return cells
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := *g
	c.cur = append([]Slot(nil), g.cur...)
	c.nxt = make([]Slot, len(g.nxt))
	c.history = append([]string(nil), g.history...)
	return &c
}

// GetGridHash returns an MD5 hash of the current live/dead pattern
func (g *Grid) GetGridHash() string {
	h := md5.New()
	for _, s := range g.cur {
		if s.Alive {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String returns a short description of the grid
func (g *Grid) String() string {
	return fmt.Sprintf("universe aged %d", g.age)
}
