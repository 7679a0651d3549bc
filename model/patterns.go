package model

// AddGlider adds a glider pattern with its top-left corner at (row, col).
// Coordinates wrap around the grid.
func (g *Grid) AddGlider(row, col int) {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}
	g.addPattern(row, col, pattern)
}

// AddOscillator adds a horizontal blinker starting at (row, col)
func (g *Grid) AddOscillator(row, col int) {
	g.addPattern(row, col, [][]bool{{true, true, true}})
}

// AddBlock adds a 2x2 still life with its top-left corner at (row, col)
func (g *Grid) AddBlock(row, col int) {
	g.addPattern(row, col, [][]bool{
		{true, true},
		{true, true},
	})
}

func (g *Grid) addPattern(row, col int, pattern [][]bool) {
	for dr, line := range pattern {
		for dc, alive := range line {
			r, c := g.Wrap(row+dr, col+dc)
			g.Set(r, c, alive)
		}
	}
}
