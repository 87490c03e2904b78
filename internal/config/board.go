package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical board defaults file,
// the single source of truth for default display and grouping values.
const DefaultConfigPath = "config/board.defaults.json"

// BoardConfig holds tunable display and grouping parameters. Fields are
// pointers so a partial JSON file only overrides what it names; the Get*
// accessors supply defaults for the rest.
type BoardConfig struct {
	// Tolerance is the vertical span below which points share a group.
	Tolerance *float64 `json:"tolerance,omitempty"`

	// Chart appearance.
	SymbolSize *int    `json:"symbol_size,omitempty"`
	ChartTheme *string `json:"chart_theme,omitempty"`

	// Chart axis range; both axes share it.
	AxisMin *float64 `json:"axis_min,omitempty"`
	AxisMax *float64 `json:"axis_max,omitempty"`

	// RandomSeed fixes the random coordinate stream; 0 seeds from the
	// clock.
	RandomSeed *int64 `json:"random_seed,omitempty"`
}

// EmptyBoardConfig returns a BoardConfig with all fields unset.
func EmptyBoardConfig() *BoardConfig {
	return &BoardConfig{}
}

// LoadBoardConfig loads a BoardConfig from a JSON file. Fields omitted from
// the file keep their defaults, so partial configs are safe.
func LoadBoardConfig(path string) (*BoardConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyBoardConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *BoardConfig) Validate() error {
	if c.Tolerance != nil {
		t := *c.Tolerance
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			return fmt.Errorf("tolerance must be a finite non-negative number, got %v", t)
		}
	}
	if c.SymbolSize != nil && *c.SymbolSize <= 0 {
		return fmt.Errorf("symbol_size must be positive, got %d", *c.SymbolSize)
	}
	if c.GetAxisMin() >= c.GetAxisMax() {
		return fmt.Errorf("axis range [%v, %v] is inverted or empty", c.GetAxisMin(), c.GetAxisMax())
	}
	return nil
}

// GetTolerance returns the grouping tolerance or the default.
func (c *BoardConfig) GetTolerance() float64 {
	if c.Tolerance == nil {
		return 1.0
	}
	return *c.Tolerance
}

// GetSymbolSize returns the chart marker size or the default.
func (c *BoardConfig) GetSymbolSize() int {
	if c.SymbolSize == nil {
		return 10
	}
	return *c.SymbolSize
}

// GetChartTheme returns the ECharts theme name or the default.
func (c *BoardConfig) GetChartTheme() string {
	if c.ChartTheme == nil {
		return "white"
	}
	return *c.ChartTheme
}

// GetAxisMin returns the lower chart axis bound or the default.
func (c *BoardConfig) GetAxisMin() float64 {
	if c.AxisMin == nil {
		return 0.0
	}
	return *c.AxisMin
}

// GetAxisMax returns the upper chart axis bound or the default.
func (c *BoardConfig) GetAxisMax() float64 {
	if c.AxisMax == nil {
		return 10.0
	}
	return *c.AxisMax
}

// GetRandomSeed returns the configured seed, or 0 to seed from the clock.
func (c *BoardConfig) GetRandomSeed() int64 {
	if c.RandomSeed == nil {
		return 0
	}
	return *c.RandomSeed
}
