package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// IndustryBenchmark holds the per-industry savings assumption used by the
// savings projector. Percentages come from verified installation results.
type IndustryBenchmark struct {
	// SavingsPercentage is the typical verified savings, 0-100.
	SavingsPercentage float64 `yaml:"savings_percentage"`
}

// Benchmarks maps an industry tag to its benchmark figures.
type Benchmarks struct {
	Default    IndustryBenchmark            `yaml:"default"`
	Industries map[string]IndustryBenchmark `yaml:"industries"`
}

// For returns the benchmark for the given industry, falling back to the
// default entry for unknown tags.
func (b Benchmarks) For(industry string) IndustryBenchmark {
	if bm, ok := b.Industries[strings.ToLower(strings.TrimSpace(industry))]; ok {
		return bm
	}
	return b.Default
}

// LoadBenchmarks reads the benchmark table from a YAML file and validates it.
// A missing or malformed file is a configuration error.
func LoadBenchmarks(path string) (Benchmarks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Benchmarks{}, fmt.Errorf("read benchmarks file: %w", err)
	}

	var b Benchmarks
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Benchmarks{}, fmt.Errorf("parse benchmarks file: %w", err)
	}

	if err := b.validate(); err != nil {
		return Benchmarks{}, err
	}
	return b, nil
}

// DefaultBenchmarks returns the built-in table used when no file is supplied.
func DefaultBenchmarks() Benchmarks {
	return Benchmarks{
		Default: IndustryBenchmark{SavingsPercentage: 11},
		Industries: map[string]IndustryBenchmark{
			"casino":          {SavingsPercentage: 8.59},
			"hospital":        {SavingsPercentage: 12},
			"hotel":           {SavingsPercentage: 14},
			"multifamily":     {SavingsPercentage: 14},
			"qsr":             {SavingsPercentage: 12.5},
			"office_building": {SavingsPercentage: 15},
			"data_center":     {SavingsPercentage: 10},
			"manufacturing":   {SavingsPercentage: 11},
			"education":       {SavingsPercentage: 13},
		},
	}
}

func (b Benchmarks) validate() error {
	check := func(name string, bm IndustryBenchmark) error {
		if bm.SavingsPercentage < 0 || bm.SavingsPercentage > 100 {
			return fmt.Errorf("benchmark %q: savings_percentage must be in [0,100]", name)
		}
		return nil
	}
	if err := check("default", b.Default); err != nil {
		return err
	}
	for name, bm := range b.Industries {
		if err := check(name, bm); err != nil {
			return err
		}
	}
	return nil
}
