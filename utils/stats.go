package utils

import (
	"fmt"
	"time"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	Generation           int
	Population           int
	Cells                int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one generation. duration is the wall time it took.
func (s *Stats) Update(generation, population, cells int, duration time.Duration) {
	s.Generation = generation
	s.Population = population
	s.Cells = cells
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Density returns the live share of the grid as a percentage.
func (s *Stats) Density() float64 {
	if s.Cells == 0 {
		return 0
	}
	return float64(s.Population) / float64(s.Cells) * 100
}

// String is the one-line status shown under the grid.
func (s *Stats) String() string {
	return fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | %.1f gen/sec | Avg Pop: %.1f",
		s.Generation, s.Population, s.Density(), s.GenerationsPerSecond, s.AveragePopulation)
}
