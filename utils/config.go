package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is the cause of every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Toroidal         bool    `json:"toroidal"`
	Speed            int     `json:"speed"` // generations per second
	MaxGenerations   int     `json:"max_generations"`
	RandomDensity    float64 `json:"random_density"`
	Pattern          string  `json:"pattern"`
	Workers          int     `json:"workers"`
	StopOnStagnation bool    `json:"stop_on_stagnation"`
	Interactive      bool    `json:"interactive"`
	Quiet            bool    `json:"quiet"`
	LogFile          string  `json:"log_file"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:            60,
		Height:           30,
		Toroidal:         false,
		Speed:            12,
		MaxGenerations:   1000,
		RandomDensity:    1.0 / 7,
		Workers:          1,
		StopOnStagnation: true,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] file: %+v", filename)
	}

	return config, nil
}

// Validate rejects values the engine or the scheduler cannot use.
func (c Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative grid size %dx%d", c.Width, c.Height)
	case c.Speed <= 0:
		return errors.Wrapf(ErrInvalidConfig, "speed must be positive, got %d", c.Speed)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative max_generations %d", c.MaxGenerations)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random_density %v outside [0,1]", c.RandomDensity)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative workers %d", c.Workers)
	}
	return nil
}

// Interval returns the delay between generations.
func (c Config) Interval() time.Duration {
	return IntervalFor(c.Speed)
}

// IntervalFor converts a speed in generations per second to a tick interval.
func IntervalFor(speed int) time.Duration {
	if speed <= 0 {
		speed = 1
	}
	return time.Second / time.Duration(speed)
}
