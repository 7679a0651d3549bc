package rules

// Transition describes what happens to a single cell between two generations.
type Transition uint8

const (
	// StayDead leaves a dead cell dead.
	StayDead Transition = iota
	// Birth brings a dead cell to life.
	Birth
	// Survive keeps a live cell alive.
	Survive
	// Die removes a live cell.
	Die
)

// String returns the transition name
func (t Transition) String() string {
	switch t {
	case Birth:
		return "birth"
	case Survive:
		return "survive"
	case Die:
		return "die"
	default:
		return "stay-dead"
	}
}

// Alive reports whether the cell is alive after the transition
func (t Transition) Alive() bool {
	return t == Birth || t == Survive
}

// NextAlive reports whether a cell is alive in the next generation under the
// 23/3 rule: born with exactly 3 live neighbours, surviving with 2 or 3.
func NextAlive(alive bool, neighbours int) bool {
	return neighbours == 3 || (alive && neighbours == 2)
}

// Apply classifies the change NextAlive makes to a single cell.
func Apply(alive bool, neighbours int) Transition {
	next := NextAlive(alive, neighbours)
	switch {
	case alive && next:
		return Survive
	case alive:
		return Die
	case next:
		return Birth
	}
	return StayDead
}
