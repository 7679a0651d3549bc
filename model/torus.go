package model

// NeighbourCount is the size of a Moore neighbourhood.
const NeighbourCount = 8

// neighbourOffsets lists the (row, col) deltas of a Moore neighbourhood in
// row-major order, skipping the centre.
var neighbourOffsets = [NeighbourCount][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// PositiveModulus returns x mod y normalized into [0, y). y must be positive.
func PositiveModulus(x, y int) int {
	r := x % y
	if r < 0 {
		r += y
	}
	return r
}

// Wrap maps (row, col) onto the torus.
func (g *Grid) Wrap(row, col int) (int, int) {
	return PositiveModulus(row, g.rows), PositiveModulus(col, g.cols)
}

// Neighbours returns the 8 slots around (row, col) in row-major order,
// skipping the centre. Coordinates wrap around the grid edges.
func (g *Grid) Neighbours(row, col int) [NeighbourCount]Slot {
	var out [NeighbourCount]Slot
	for i, d := range neighbourOffsets {
		out[i] = g.cur[g.neighbourIndex(row, col, d)]
	}
	return out
}

// LiveNeighbours counts the alive slots around (row, col).
func (g *Grid) LiveNeighbours(row, col int) int {
	count := 0
	for _, d := range neighbourOffsets {
		if g.cur[g.neighbourIndex(row, col, d)].Alive {
			count++
		}
	}
	return count
}

func (g *Grid) neighbourIndex(row, col int, d [2]int) int {
	r, c := g.Wrap(row+d[0], col+d[1])
	return g.index(r, c)
}
