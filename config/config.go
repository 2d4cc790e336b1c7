package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/e11jah/pavl"
)

// Default values applied when fields are absent from the file.
const (
	DefaultMinQuality = 0.5
)

// Operation names accepted in a script.
const (
	OpInsert  = "insert"
	OpMeasure = "measure"
	OpDelete  = "delete"
)

// Config is the top-level file layout.
type Config struct {
	Tree   TreeConfig   `yaml:"tree"`
	Signal SignalConfig `yaml:"signal"`
	Script []Op         `yaml:"script"`
}

type TreeConfig struct {
	// PruneThreshold is the quality below which a measurement fails.
	PruneThreshold float64 `yaml:"prune_threshold"`

	// PruneStreak is the number of consecutive failures that delete an entry.
	PruneStreak int `yaml:"prune_streak"`

	ToggleOnMeasure bool `yaml:"toggle_on_measure"`
	ToggleOnUpdate  bool `yaml:"toggle_on_update"`
}

type SignalConfig struct {
	// MinQuality is the extraction cutoff used when printing the signal.
	MinQuality float64 `yaml:"min_quality"`
}

// Op is one scripted tree operation.
type Op struct {
	// Op is one of: insert | measure | delete.
	Op    string `yaml:"op"`
	Key   int    `yaml:"key"`
	Value string `yaml:"value"`

	// Quality defaults to 1.0 for insert and is required for measure.
	Quality *float64 `yaml:"quality"`

	// Polarity is "+", "-" or empty.
	Polarity string `yaml:"polarity"`
}

// Report summarises a script run.
type Report struct {
	Applied int
	Missing int
	Pruned  int
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes data on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	d := pavl.DefaultConfig()
	return &Config{
		Tree: TreeConfig{
			PruneThreshold:  d.PruneThreshold,
			PruneStreak:     d.PruneStreakLimit,
			ToggleOnMeasure: d.ToggleOnMeasure,
			ToggleOnUpdate:  d.ToggleOnUpdate,
		},
		Signal: SignalConfig{
			MinQuality: DefaultMinQuality,
		},
	}
}

func validate(cfg *Config) error {
	if err := cfg.Tree.Pavl().Validate(); err != nil {
		return fmt.Errorf("tree: %w", err)
	}
	if cfg.Signal.MinQuality < 0 || cfg.Signal.MinQuality > 1 {
		return fmt.Errorf("signal.min_quality %v outside [0,1]", cfg.Signal.MinQuality)
	}
	for i, op := range cfg.Script {
		switch op.Op {
		case OpInsert, OpDelete:
		case OpMeasure:
			if op.Quality == nil {
				return fmt.Errorf("script[%d]: measure requires quality", i)
			}
		default:
			return fmt.Errorf("script[%d]: unknown op %q", i, op.Op)
		}
		if op.Quality != nil && (*op.Quality < 0 || *op.Quality > 1) {
			return fmt.Errorf("script[%d]: quality %v outside [0,1]", i, *op.Quality)
		}
		if _, err := pavl.ParsePolarity(op.Polarity); err != nil {
			return fmt.Errorf("script[%d]: %w", i, err)
		}
	}
	return nil
}

// Pavl converts the file settings to a tree Config without hooks.
func (c TreeConfig) Pavl() pavl.Config {
	return pavl.Config{
		PruneThreshold:   c.PruneThreshold,
		PruneStreakLimit: c.PruneStreak,
		ToggleOnMeasure:  c.ToggleOnMeasure,
		ToggleOnUpdate:   c.ToggleOnUpdate,
	}
}

// Apply runs the script against t in order. Measurements and deletes of
// absent keys are counted as missing and skipped.
func (c *Config) Apply(t pavl.Tree[int, string], log *slog.Logger) (Report, error) {
	if log == nil {
		log = slog.Default()
	}
	var r Report
	for i, op := range c.Script {
		p, err := pavl.ParsePolarity(op.Polarity)
		if err != nil {
			return r, fmt.Errorf("script[%d]: %w", i, err)
		}
		switch op.Op {
		case OpInsert:
			opts := []pavl.EntryOption{pavl.WithPolarity(p)}
			if op.Quality != nil {
				opts = append(opts, pavl.WithQuality(*op.Quality))
			}
			t.Insert(op.Key, op.Value, opts...)
		case OpMeasure:
			out, err := t.Measure(op.Key, *op.Quality, p)
			if errors.Is(err, pavl.ErrKeyNotFound) {
				log.Warn("measure skipped", "step", i, "key", op.Key)
				r.Missing++
				continue
			}
			if err != nil {
				return r, fmt.Errorf("script[%d]: %w", i, err)
			}
			if out.Pruned {
				r.Pruned++
			}
		case OpDelete:
			if !t.Delete(op.Key) {
				log.Warn("delete skipped", "step", i, "key", op.Key)
				r.Missing++
				continue
			}
		default:
			return r, fmt.Errorf("script[%d]: unknown op %q", i, op.Op)
		}
		r.Applied++
	}
	return r, nil
}
