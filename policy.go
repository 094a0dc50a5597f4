package pathkit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the tunable constants of health scoring. They are empirical
// choices, not geometric laws.
type Policy struct {
	// Closed sub-paths with at most this many anchors always score 100.
	TinyClosedAnchors int `yaml:"tiny_closed_anchors"`
	// Sub-paths with at most this many anchors always score 100.
	TinyAnchors int `yaml:"tiny_anchors"`
	// Bounding box diagonal at which density isn't scaled.
	ReferenceDiagonal float64 `yaml:"reference_diagonal"`
	// Scaled anchors per 100 units of length at which the density penalty
	// starts and saturates.
	DensityLow  float64 `yaml:"density_low"`
	DensityHigh float64 `yaml:"density_high"`
	// Weights of the density and collinear penalties. They should sum to 1.
	DensityWeight   float64 `yaml:"density_weight"`
	CollinearWeight float64 `yaml:"collinear_weight"`
	// Anchors turning by less than this many degrees are collinear.
	CollinearDegrees float64 `yaml:"collinear_degrees"`
	// Estimated savings: a constant fraction for lossless cleanup, plus a
	// fraction proportional to the average collinear fraction, capped.
	CleanupSavings float64 `yaml:"cleanup_savings"`
	HealSavings    float64 `yaml:"heal_savings"`
	MaxSavings     float64 `yaml:"max_savings"`
}

// DefaultPolicy returns the default scoring constants.
func DefaultPolicy() Policy {
	return Policy{
		TinyClosedAnchors: 8,
		TinyAnchors:       3,
		ReferenceDiagonal: 80,
		DensityLow:        2,
		DensityHigh:       8,
		DensityWeight:     0.65,
		CollinearWeight:   0.35,
		CollinearDegrees:  5,
		CleanupSavings:    0.12,
		HealSavings:       0.5,
		MaxSavings:        0.52,
	}
}

// ParsePolicy parses a YAML policy. Fields absent from data keep their
// default values.
func ParsePolicy(data []byte) (Policy, error) {
	pol := DefaultPolicy()
	if err := yaml.Unmarshal(data, &pol); err != nil {
		return Policy{}, fmt.Errorf("parse policy: %w", err)
	}
	return pol, pol.Validate()
}

// LoadPolicy reads a YAML policy file. See [ParsePolicy].
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy %s: %w", path, err)
	}
	pol, err := ParsePolicy(data)
	if err != nil {
		return Policy{}, fmt.Errorf("%s: %w", path, err)
	}
	return pol, nil
}

// Validate checks that the values are usable.
func (pol Policy) Validate() error {
	if pol.TinyClosedAnchors < 0 || pol.TinyAnchors < 0 {
		return fmt.Errorf("tiny anchor counts must be >= 0")
	}
	if pol.ReferenceDiagonal <= 0 {
		return fmt.Errorf("reference_diagonal must be > 0")
	}
	if pol.DensityHigh <= pol.DensityLow {
		return fmt.Errorf("density_high (%g) must exceed density_low (%g)", pol.DensityHigh, pol.DensityLow)
	}
	if pol.DensityWeight < 0 || pol.CollinearWeight < 0 || pol.DensityWeight+pol.CollinearWeight > 1 {
		return fmt.Errorf("weights must be >= 0 and sum to at most 1")
	}
	if pol.CollinearDegrees < 0 || pol.CollinearDegrees >= 180 {
		return fmt.Errorf("collinear_degrees must be in [0, 180)")
	}
	if pol.MaxSavings < 0 || pol.MaxSavings > 1 {
		return fmt.Errorf("max_savings must be in [0, 1]")
	}
	return nil
}
