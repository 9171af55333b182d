//
//  ChronoClust — density-based projected clustering over data streams.
//
//  Copyright © 2017 - 2026 the Cytoclust project. All rights reserved.
//

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/cytoclust/chronoclust/entities/errorcompounder"
)

// Defaults follow the parameterisation of the reference HDDStream
// configuration. They describe a dataset normalised to [0,1].
const (
	DefaultEpsilon           = float64(0.3)
	DefaultUpsilonMultiplier = float64(2)
	DefaultDelta             = float64(0.3)
	DefaultBeta              = float64(0.2)
	DefaultK                 = float64(100)
	DefaultLambda            = float64(0.5)
	DefaultMuMultiplier      = float64(0.01)
	DefaultOmicronMultiplier = float64(0.0001)
)

// Config carries the clustering parameters. All values are supplied
// once before the first batch and are immutable afterwards; the
// batch-dependent thresholds (mu, omicron, pi fallback) are derived by
// the engine from these multipliers each batch.
type Config struct {
	// Epsilon is the radius threshold a microcluster's projected
	// radius may not exceed when a point is merged into it.
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`

	// UpsilonMultiplier scales epsilon into the radius used by the
	// offline clustering step.
	UpsilonMultiplier float64 `json:"upsilon" yaml:"upsilon"`

	// Delta is the variance threshold under which a dimension counts
	// as preferred. Must lie in [0,1].
	Delta float64 `json:"delta" yaml:"delta"`

	// Beta scales the density threshold into the weight a microcluster
	// needs to qualify as potential-core.
	Beta float64 `json:"beta" yaml:"beta"`

	// K is the preference weight written into the preference vector
	// for preferred dimensions. Must be greater than 1 so preferred
	// and non-preferred entries stay distinguishable.
	K float64 `json:"k" yaml:"k"`

	// Lambda is the exponential decay rate per elapsed day.
	Lambda float64 `json:"lambda" yaml:"lambda"`

	// Pi caps a potential-core microcluster's projected
	// dimensionality. Zero or negative falls back to the dataset
	// dimensionality on first use.
	Pi int `json:"pi" yaml:"pi"`

	// MuMultiplier scales the current batch size into the density
	// threshold mu.
	MuMultiplier float64 `json:"mu" yaml:"mu"`

	// OmicronMultiplier scales the previous batch size into the
	// outlier survival weight omicron.
	OmicronMultiplier float64 `json:"omicron" yaml:"omicron"`
}

func (c *Config) SetDefaults() {
	if c.Epsilon == 0 {
		c.Epsilon = DefaultEpsilon
	}
	if c.UpsilonMultiplier == 0 {
		c.UpsilonMultiplier = DefaultUpsilonMultiplier
	}
	if c.Delta == 0 {
		c.Delta = DefaultDelta
	}
	if c.Beta == 0 {
		c.Beta = DefaultBeta
	}
	if c.K == 0 {
		c.K = DefaultK
	}
	if c.Lambda == 0 {
		c.Lambda = DefaultLambda
	}
	if c.MuMultiplier == 0 {
		c.MuMultiplier = DefaultMuMultiplier
	}
	if c.OmicronMultiplier == 0 {
		c.OmicronMultiplier = DefaultOmicronMultiplier
	}
}

// Validate checks the startup preconditions. A delta outside [0,1]
// makes the whole parameterisation meaningless, so any error returned
// here must abort the run before the first batch.
func (c Config) Validate() error {
	ec := errorcompounder.New()

	if c.Delta < 0 || c.Delta > 1 {
		ec.Addf("delta %v is out of range, must be within 0-1", c.Delta)
	}
	if c.Epsilon <= 0 {
		ec.Addf("epsilon must be positive, got %v", c.Epsilon)
	}
	if c.UpsilonMultiplier <= 0 {
		ec.Addf("upsilon multiplier must be positive, got %v", c.UpsilonMultiplier)
	}
	if c.Beta <= 0 {
		ec.Addf("beta must be positive, got %v", c.Beta)
	}
	if c.K <= 1 {
		ec.Addf("preference weight k must be greater than 1, got %v", c.K)
	}
	if c.Lambda < 0 {
		ec.Addf("decay rate lambda must not be negative, got %v", c.Lambda)
	}
	if c.MuMultiplier <= 0 {
		ec.Addf("mu multiplier must be positive, got %v", c.MuMultiplier)
	}
	if c.OmicronMultiplier < 0 {
		ec.Addf("omicron multiplier must not be negative, got %v", c.OmicronMultiplier)
	}

	return ec.ToError()
}

// FromFile reads a yaml or json config file, applies defaults for
// omitted values and validates the result.
func FromFile(name string) (Config, error) {
	var config Config

	file, err := os.ReadFile(name)
	if err != nil {
		return config, fmt.Errorf("read config file: %w", err)
	}

	m := regexp.MustCompile(`.*\.(\w+)$`).FindStringSubmatch(name)
	if len(m) < 2 {
		return config, fmt.Errorf("config file does not have a file ending, got '%s'", name)
	}

	switch m[1] {
	case "json":
		if err := json.Unmarshal(file, &config); err != nil {
			return config, fmt.Errorf("error unmarshalling the json config file: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(file, &config); err != nil {
			return config, fmt.Errorf("error unmarshalling the yaml config file: %w", err)
		}
	default:
		return config, fmt.Errorf("unsupported config file extension '%s', use .yaml or .json", m[1])
	}

	config.SetDefaults()

	return config, config.Validate()
}
