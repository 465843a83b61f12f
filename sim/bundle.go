package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim/trace"
)

// Bundle holds the run configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and keep the defaults.
// Empty slices mean "not set" as well; the CLI then falls back to its own defaults.
type Bundle struct {
	Memory     MemoryBundle  `yaml:"memory"`
	Strategies []string      `yaml:"strategies"`
	Tables     []TableConfig `yaml:"tables"`
	TraceLevel string        `yaml:"trace_level"`
}

// MemoryBundle holds memory overrides.
type MemoryBundle struct {
	Limit           *int64 `yaml:"limit"`
	PageSize        *int64 `yaml:"page_size"`
	ReleaseOnExpiry *bool  `yaml:"release_on_expiry"`
}

// TableConfig names one job table source. Path may be a local path or any afs URL.
type TableConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// LoadBundle reads and parses a YAML run configuration file.
// Unknown keys are rejected so typos surface as errors.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var bundle Bundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &bundle, nil
}

// ValidStrategies is the set of recognized allocation strategy names.
// Shared by Validate() and NewAllocationStrategy() to avoid duplication.
var ValidStrategies = map[string]bool{"": true, "naive": true, "best-fit": true, "first-fit": true, "worst-fit": true}

// StrategyNames lists the strategies in report order.
var StrategyNames = []string{"naive", "best-fit", "first-fit", "worst-fit"}

// IsValidStrategy returns true if name is a recognized allocation strategy.
func IsValidStrategy(name string) bool {
	return ValidStrategies[name]
}

// Validate checks that all names and parameter ranges in the bundle are valid.
func (b *Bundle) Validate() error {
	for _, name := range b.Strategies {
		if !IsValidStrategy(name) {
			return fmt.Errorf("unknown allocation strategy %q", name)
		}
	}
	if !trace.IsValidTraceLevel(b.TraceLevel) {
		return fmt.Errorf("unknown trace level %q", b.TraceLevel)
	}
	if b.Memory.Limit != nil && *b.Memory.Limit <= 0 {
		return fmt.Errorf("memory limit must be positive, got %d", *b.Memory.Limit)
	}
	if b.Memory.PageSize != nil && *b.Memory.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", *b.Memory.PageSize)
	}
	for i, t := range b.Tables {
		if t.Path == "" {
			return fmt.Errorf("table %d has no path", i)
		}
	}
	return nil
}

// MemoryConfig returns DefaultMemoryConfig with the bundle's overrides applied.
func (b *Bundle) MemoryConfig() MemoryConfig {
	cfg := DefaultMemoryConfig()
	if b.Memory.Limit != nil {
		cfg.MemoryLimit = *b.Memory.Limit
	}
	if b.Memory.PageSize != nil {
		cfg.PageSize = *b.Memory.PageSize
	}
	if b.Memory.ReleaseOnExpiry != nil {
		cfg.ReleaseOnExpiry = *b.Memory.ReleaseOnExpiry
	}
	return cfg
}
