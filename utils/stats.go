package utils

import "time"

// Stats tracks the population and pace of a running universe across restarts
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	ActiveCells          int
	PeakPopulation       int
	Density              float64 // percent of the grid alive at the last update
	Restarts             int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records a computed generation of a grid holding area cells, of which
// population are alive. duration is the time since the previous generation.
func (s *Stats) Update(generation, population, area int, duration time.Duration) {
	s.TotalGenerations = generation
	s.ActiveCells = population
	s.PeakPopulation = max(s.PeakPopulation, population)
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	s.Density = 0
	if area > 0 {
		s.Density = float64(population) / float64(area) * 100
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}
