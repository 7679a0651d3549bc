package model

// DefaultCellColor is used when a grid is created without a colour.
const DefaultCellColor = "black"

// Cell is a live cell. Position, width and colour are fixed at birth; only
// Age changes while the cell survives.
type Cell struct {
	X     int
	Y     int
	Width int
	Color string
	Age   int
}

// Slot is one position of the grid table. A slot holds a cell iff Alive.
type Slot struct {
	Cell  Cell
	Alive bool
}
