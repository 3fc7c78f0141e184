// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"math"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ctmcsim/simulate"
)

// Generator kinds accepted in GeneratorSpec.Kind.
const (
	KindCycle        = "cycle"
	KindComplete     = "complete"
	KindStar         = "star"
	KindBirthDeath   = "birth_death"
	KindRandomSparse = "random_sparse"
	KindRates        = "rates"    // off-diagonal table, diagonal recomputed
	KindExplicit     = "explicit" // full Q, validated as given
)

// Defaults used by Default().
const (
	DefaultKind     = KindCycle
	DefaultStates   = 3
	DefaultRate     = 1.0
	DefaultDuration = 1e5
	DefaultBurnIn   = 10000
	DefaultSeed     = 1
	DefaultReplicas = 1
	DefaultLogLevel = "info"
)

// GeneratorSpec describes how to obtain Q.
type GeneratorSpec struct {
	Kind        string      `mapstructure:"kind" yaml:"kind"`
	States      int         `mapstructure:"states" yaml:"states,omitempty"`
	Rate        float64     `mapstructure:"rate" yaml:"rate,omitempty"`
	Up          float64     `mapstructure:"up" yaml:"up,omitempty"`
	Down        float64     `mapstructure:"down" yaml:"down,omitempty"`
	Probability float64     `mapstructure:"probability" yaml:"probability,omitempty"`
	Seed        int64       `mapstructure:"seed" yaml:"seed,omitempty"`
	Rows        [][]float64 `mapstructure:"rows" yaml:"rows,omitempty"`
}

// Config is the full run configuration read by the ctmcsim command.
type Config struct {
	Chain         GeneratorSpec `mapstructure:"generator" yaml:"generator"`
	Labels        []string      `mapstructure:"labels" yaml:"labels,omitempty"`
	InitialState  int           `mapstructure:"initial_state" yaml:"initial_state"`
	Duration      float64       `mapstructure:"duration" yaml:"duration"`
	Jumps         int64         `mapstructure:"jumps" yaml:"jumps,omitempty"`
	BurnIn        int           `mapstructure:"burn_in" yaml:"burn_in"`
	PathLog       bool          `mapstructure:"path_log" yaml:"path_log"`
	AnalyzeBurnIn int           `mapstructure:"analyze_burn_in" yaml:"analyze_burn_in,omitempty"`
	Seed          int64         `mapstructure:"seed" yaml:"seed"`
	Replicas      int           `mapstructure:"replicas" yaml:"replicas"`
	Parallel      int           `mapstructure:"parallel" yaml:"parallel,omitempty"`
	LogLevel      string        `mapstructure:"log_level" yaml:"log_level"`
	MetricsFile   string        `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`
}

// Default returns a runnable configuration: a unit-rate 3-cycle measured
// for 1e5 time units after 10000 burn-in jumps.
func Default() Config {
	return Config{
		Chain:     GeneratorSpec{Kind: DefaultKind, States: DefaultStates, Rate: DefaultRate},
		Duration:  DefaultDuration,
		BurnIn:    DefaultBurnIn,
		Seed:      DefaultSeed,
		Replicas:  DefaultReplicas,
		LogLevel:  DefaultLogLevel,
	}
}

// Load reads and parses a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default(). The document is first read into a
// generic map and then decoded with mapstructure, which rejects unknown
// keys and accepts integers where reals are expected.
func Parse(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config: yaml: %v: %w", err, ErrInvalidConfig)
	}

	cfg := Default()
	if len(raw) == 0 {
		return cfg, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err = dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("config: decode: %v: %w", err, ErrInvalidConfig)
	}

	return cfg, nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// States returns the state count implied by the generator spec.
func (c Config) States() int {
	switch c.Chain.Kind {
	case KindRates, KindExplicit:
		return len(c.Chain.Rows)
	}
	return c.Chain.States
}

// Validate checks ranges that do not require building Q.
func (c Config) Validate() error {
	g := c.Chain
	switch g.Kind {
	case KindCycle, KindComplete, KindStar, KindBirthDeath, KindRandomSparse:
		if g.States < 1 {
			return fmt.Errorf("config: generator.states=%d: %w", g.States, ErrInvalidConfig)
		}
	case KindRates, KindExplicit:
		if len(g.Rows) == 0 {
			return fmt.Errorf("config: generator kind %q: %w", g.Kind, ErrMissingRates)
		}
	default:
		return fmt.Errorf("config: generator kind %q: %w", g.Kind, ErrUnknownKind)
	}

	if g.Rate < 0 || math.IsNaN(g.Rate) || math.IsInf(g.Rate, 0) {
		return fmt.Errorf("config: generator.rate=%g: %w", g.Rate, ErrInvalidConfig)
	}

	n := c.States()
	switch {
	case len(c.Labels) != 0 && len(c.Labels) != n:
		return fmt.Errorf("config: %d labels for %d states: %w", len(c.Labels), n, ErrInvalidConfig)
	case c.InitialState < 0 || c.InitialState >= n:
		return fmt.Errorf("config: initial_state=%d not in [0,%d): %w", c.InitialState, n, ErrInvalidConfig)
	case c.Duration < 0 || math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0):
		return fmt.Errorf("config: duration=%g: %w", c.Duration, ErrInvalidConfig)
	case c.Jumps < 0:
		return fmt.Errorf("config: jumps=%d: %w", c.Jumps, ErrInvalidConfig)
	case c.BurnIn < 0:
		return fmt.Errorf("config: burn_in=%d: %w", c.BurnIn, ErrInvalidConfig)
	case c.AnalyzeBurnIn < 0:
		return fmt.Errorf("config: analyze_burn_in=%d: %w", c.AnalyzeBurnIn, ErrInvalidConfig)
	case c.AnalyzeBurnIn > 0 && !c.PathLog:
		return fmt.Errorf("config: analyze_burn_in needs path_log: %w", ErrInvalidConfig)
	case c.Replicas < 1:
		return fmt.Errorf("config: replicas=%d: %w", c.Replicas, ErrInvalidConfig)
	case c.Replicas > 1 && c.PathLog:
		return fmt.Errorf("config: path_log is only supported with a single replica: %w", ErrInvalidConfig)
	}

	return nil
}

// Plan converts the run settings into a replica plan.
func (c Config) Plan() simulate.Plan {
	return simulate.Plan{
		Replicas: c.Replicas,
		Seed:     c.Seed,
		BurnIn:   c.BurnIn,
		Duration: c.Duration,
		Jumps:    c.Jumps,
		Parallel: c.Parallel,
	}
}
