package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/synthetic-bedrock/internal/bedrock"
)

// DefaultConfigPath is the path to the shipped sweep defaults file.
const DefaultConfigPath = "config/sweep.defaults.json"

// SweepConfig is the JSON schema for a sweep run. Every field is optional;
// the Get* accessors fall back to the values in DefaultSweepConfig.
type SweepConfig struct {
	// Grid
	Length *int `json:"length,omitempty"` // grid side length in cells
	Scale  *int `json:"scale,omitempty"`  // tor side length in cells

	// Error model
	Scenario         *string  `json:"scenario,omitempty"`          // con, ind, ran, sys, com or 1-5
	ConstantFraction *float64 `json:"constant_fraction,omitempty"` // bedrock fraction for "con"
	Offset           *int     `json:"offset,omitempty"`            // cells, for "sys" and "com"
	ErrorRate        *float64 `json:"error_rate,omitempty"`        // flip probability, for "ran" and "com"

	// Fraction sweep, evenly spaced and inclusive at both ends
	FractionStart *float64 `json:"fraction_start,omitempty"`
	FractionEnd   *float64 `json:"fraction_end,omitempty"`
	FractionCount *int     `json:"fraction_count,omitempty"`

	// Seeds
	TruthSeed *int64 `json:"truth_seed,omitempty"`
	ModelSeed *int64 `json:"model_seed,omitempty"`

	// Output
	DisplayFraction *float64 `json:"display_fraction,omitempty"` // bedrock fraction of the plotted map
	OutputDir       *string  `json:"output_dir,omitempty"`
	Workers         *int     `json:"workers,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }
func ptrInt64(v int64) *int64       { return &v }

// EmptySweepConfig returns a SweepConfig with all fields unset.
func EmptySweepConfig() *SweepConfig {
	return &SweepConfig{}
}

// DefaultSweepConfig returns a SweepConfig with every field set to its
// default value.
func DefaultSweepConfig() *SweepConfig {
	return &SweepConfig{
		Length:           ptrInt(100),
		Scale:            ptrInt(2),
		Scenario:         ptrString("com"),
		ConstantFraction: ptrFloat64(0),
		Offset:           ptrInt(3),
		ErrorRate:        ptrFloat64(0.05),
		FractionStart:    ptrFloat64(0.01),
		FractionEnd:      ptrFloat64(0.99),
		FractionCount:    ptrInt(100),
		TruthSeed:        ptrInt64(1),
		ModelSeed:        ptrInt64(2),
		DisplayFraction:  ptrFloat64(0.5),
		OutputDir:        ptrString("out"),
		Workers:          ptrInt(1),
	}
}

// LoadSweepConfig loads a SweepConfig from a JSON file.
// The file must have a .json extension and be at most 1MB. Fields omitted
// from the file keep their defaults through the Get* accessors.
func LoadSweepConfig(path string) (*SweepConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptySweepConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that are set. Cross-field checks use the
// effective values, so a partial config is validated against the defaults.
func (c *SweepConfig) Validate() error {
	if c.GetLength() < 1 {
		return fmt.Errorf("length must be >= 1, got %d", c.GetLength())
	}
	if c.GetScale() < 1 || c.GetScale() > c.GetLength() {
		return fmt.Errorf("scale must be in [1, length=%d], got %d", c.GetLength(), c.GetScale())
	}

	if _, err := c.GetScenario(); err != nil {
		return err
	}

	if v := c.GetConstantFraction(); !inUnitInterval(v) {
		return fmt.Errorf("constant_fraction must be between 0 and 1, got %f", v)
	}
	if v := c.GetErrorRate(); !inUnitInterval(v) {
		return fmt.Errorf("error_rate must be between 0 and 1, got %f", v)
	}
	if v := c.GetOffset(); v <= -c.GetLength() || v >= c.GetLength() {
		return fmt.Errorf("offset magnitude must be less than length=%d, got %d", c.GetLength(), v)
	}

	start, end := c.GetFractionStart(), c.GetFractionEnd()
	if !inUnitInterval(start) || !inUnitInterval(end) || start > end {
		return fmt.Errorf("fraction range must satisfy 0 <= start <= end <= 1, got %f..%f", start, end)
	}
	if c.GetFractionCount() < 1 {
		return fmt.Errorf("fraction_count must be >= 1, got %d", c.GetFractionCount())
	}

	if v := c.GetDisplayFraction(); !inUnitInterval(v) {
		return fmt.Errorf("display_fraction must be between 0 and 1, got %f", v)
	}
	if c.GetWorkers() < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.GetWorkers())
	}
	if c.OutputDir != nil && *c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}

// inUnitInterval reports whether v is in [0,1]. NaN is rejected.
func inUnitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// GetLength returns the length value or the default.
func (c *SweepConfig) GetLength() int {
	if c.Length == nil {
		return 100
	}
	return *c.Length
}

// GetScale returns the scale value or the default.
func (c *SweepConfig) GetScale() int {
	if c.Scale == nil {
		return 2
	}
	return *c.Scale
}

// GetScenario parses the scenario value, defaulting to the combined
// offset-plus-random scenario.
func (c *SweepConfig) GetScenario() (bedrock.Scenario, error) {
	if c.Scenario == nil {
		return bedrock.ScenarioCombined, nil
	}
	return bedrock.ParseScenario(*c.Scenario)
}

// GetConstantFraction returns the constant_fraction value or the default.
func (c *SweepConfig) GetConstantFraction() float64 {
	if c.ConstantFraction == nil {
		return 0
	}
	return *c.ConstantFraction
}

// GetOffset returns the offset value or the default.
func (c *SweepConfig) GetOffset() int {
	if c.Offset == nil {
		return 3
	}
	return *c.Offset
}

// GetErrorRate returns the error_rate value or the default.
func (c *SweepConfig) GetErrorRate() float64 {
	if c.ErrorRate == nil {
		return 0.05
	}
	return *c.ErrorRate
}

// GetFractionStart returns the fraction_start value or the default.
func (c *SweepConfig) GetFractionStart() float64 {
	if c.FractionStart == nil {
		return 0.01
	}
	return *c.FractionStart
}

// GetFractionEnd returns the fraction_end value or the default.
func (c *SweepConfig) GetFractionEnd() float64 {
	if c.FractionEnd == nil {
		return 0.99
	}
	return *c.FractionEnd
}

// GetFractionCount returns the fraction_count value or the default.
func (c *SweepConfig) GetFractionCount() int {
	if c.FractionCount == nil {
		return 100
	}
	return *c.FractionCount
}

// GetTruthSeed returns the truth_seed value or the default.
func (c *SweepConfig) GetTruthSeed() int64 {
	if c.TruthSeed == nil {
		return 1
	}
	return *c.TruthSeed
}

// GetModelSeed returns the model_seed value or the default.
func (c *SweepConfig) GetModelSeed() int64 {
	if c.ModelSeed == nil {
		return 2
	}
	return *c.ModelSeed
}

// GetDisplayFraction returns the display_fraction value or the default.
func (c *SweepConfig) GetDisplayFraction() float64 {
	if c.DisplayFraction == nil {
		return 0.5
	}
	return *c.DisplayFraction
}

// GetOutputDir returns the output_dir value or the default.
func (c *SweepConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "out"
	}
	return *c.OutputDir
}

// GetWorkers returns the workers value or the default.
func (c *SweepConfig) GetWorkers() int {
	if c.Workers == nil {
		return 1
	}
	return *c.Workers
}
