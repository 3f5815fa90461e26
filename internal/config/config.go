// Package config loads calculator settings from defaults, an optional TOML
// file and CALC_-prefixed environment variables.
package config

// Config holds all application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log" toml:"log" validate:"required"`
	Display DisplayConfig `mapstructure:"display" toml:"display" validate:"required"`
	Plot    PlotConfig    `mapstructure:"plot" toml:"plot" validate:"required"`
	Solver  SolverConfig  `mapstructure:"solver" toml:"solver" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" toml:"format" validate:"required,oneof=json text"`
}

// DisplayConfig controls how results are rendered.
type DisplayConfig struct {
	// Precision is the number of significant digits; -1 prints the
	// shortest exact representation.
	Precision   int `mapstructure:"precision" toml:"precision" validate:"gte=-1,lte=17"`
	HistoryTail int `mapstructure:"history_tail" toml:"history_tail" validate:"gte=0,lte=100"`
}

// PlotConfig is the default sampling domain for plot mode.
type PlotConfig struct {
	Min  float64 `mapstructure:"min" toml:"min"`
	Max  float64 `mapstructure:"max" toml:"max" validate:"gtfield=Min"`
	Step float64 `mapstructure:"step" toml:"step" validate:"gt=0"`
}

// SolverConfig tunes the numeric root sweep.
type SolverConfig struct {
	SearchRange   float64 `mapstructure:"search_range" toml:"search_range" validate:"gt=0"`
	Tolerance     float64 `mapstructure:"tolerance" toml:"tolerance" validate:"gt=0"`
	MaxIterations int     `mapstructure:"max_iterations" toml:"max_iterations" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", Format: "json"},
		Display: DisplayConfig{Precision: -1, HistoryTail: 5},
		Plot:    PlotConfig{Min: -10, Max: 10, Step: 0.1},
		Solver:  SolverConfig{SearchRange: 100, Tolerance: 1e-10, MaxIterations: 100},
	}
}
