package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const PolicyVersion = "2025.1"

const (
	VariantModeFirst = "first"
	VariantModeAll   = "all"
)

// Spec fields the extractor can fill from "Label: value" text.
const (
	FieldPower      = "power"
	FieldHashrate   = "hashrate"
	FieldEfficiency = "efficiency"
	FieldAlgorithm  = "algorithm"
)

var ErrInvalidPolicy = errors.New("invalid catalog policy")

// Policy is the versioned business configuration of the pipeline. A YAML
// policy file overlays DefaultPolicy; keys it omits keep their defaults.
type Policy struct {
	Version    string           `yaml:"version"`
	Pricing    PricingPolicy    `yaml:"pricing"`
	Extraction ExtractionPolicy `yaml:"extraction"`
}

type PricingPolicy struct {
	FXRate              float64 `yaml:"fx_rate"`
	Markdown            float64 `yaml:"markdown"`
	UsedRatio           float64 `yaml:"used_ratio"`
	UsedFloor           float64 `yaml:"used_floor"`
	BulkUnits           int     `yaml:"bulk_units"`
	BulkFactor          float64 `yaml:"bulk_factor"`
	BulkCeiling         float64 `yaml:"bulk_ceiling"`
	FeaturedProbability float64 `yaml:"featured_probability"`
	// ExemptAccessories suppresses used/bulk variants for accessory records.
	ExemptAccessories bool `yaml:"exempt_accessories"`
}

type ManufacturerHint struct {
	Match string `yaml:"match"`
	Name  string `yaml:"name"`
}

type ExtractionPolicy struct {
	Labels              map[string][]string `yaml:"labels"`
	DefaultPower        int                 `yaml:"default_power"`
	Unknown             string              `yaml:"unknown"`
	Manufacturers       []ManufacturerHint  `yaml:"manufacturers"`
	DefaultManufacturer string              `yaml:"default_manufacturer"`
	VariantMode         string              `yaml:"variant_mode"`
	Image               string              `yaml:"image"`
}

func DefaultPolicy() Policy {
	return Policy{
		Version: PolicyVersion,
		Pricing: PricingPolicy{
			FXRate:              1.1,
			Markdown:            0.8,
			UsedRatio:           0.65,
			UsedFloor:           400,
			BulkUnits:           5,
			BulkFactor:          0.95,
			BulkCeiling:         4000,
			FeaturedProbability: 0.15,
		},
		Extraction: ExtractionPolicy{
			Labels: map[string][]string{
				FieldPower:      {"leistungsaufnahme", "stromverbrauch", "power consumption", "power"},
				FieldHashrate:   {"hashrate", "hashrate (th/s)", "hash rate"},
				FieldEfficiency: {"energieeffizienz", "power efficiency", "efficiency"},
				FieldAlgorithm:  {"algorithmus", "algorithm"},
			},
			DefaultPower: 3000,
			Unknown:      "Unknown",
			Manufacturers: []ManufacturerHint{
				{Match: "whatsminer", Name: "MicroBT"},
				{Match: "avalon", Name: "Canaan"},
				{Match: "iceriver", Name: "IceRiver"},
				{Match: "goldshell", Name: "Goldshell"},
				{Match: "jasminer", Name: "Jasminer"},
				{Match: "antminer", Name: "Bitmain"},
			},
			DefaultManufacturer: "Bitmain",
			VariantMode:         VariantModeFirst,
			Image:               "/miner-new.png",
		},
	}
}

// LoadPolicy reads a YAML policy file on top of the defaults. An empty path
// yields the defaults unchanged.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parse policy %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (p Policy) Validate() error {
	pr := p.Pricing
	switch {
	case p.Version == "":
		return fmt.Errorf("%w: version is required", ErrInvalidPolicy)
	case pr.FXRate <= 0:
		return fmt.Errorf("%w: fx_rate must be positive", ErrInvalidPolicy)
	case pr.Markdown <= 0 || pr.Markdown > 1:
		return fmt.Errorf("%w: markdown must be in (0,1]", ErrInvalidPolicy)
	case pr.UsedRatio <= 0 || pr.UsedRatio > 1:
		return fmt.Errorf("%w: used_ratio must be in (0,1]", ErrInvalidPolicy)
	case pr.BulkUnits < 1:
		return fmt.Errorf("%w: bulk_units must be at least 1", ErrInvalidPolicy)
	case pr.BulkFactor <= 0 || pr.BulkFactor > 1:
		return fmt.Errorf("%w: bulk_factor must be in (0,1]", ErrInvalidPolicy)
	case pr.FeaturedProbability < 0 || pr.FeaturedProbability > 1:
		return fmt.Errorf("%w: featured_probability must be in [0,1]", ErrInvalidPolicy)
	case p.Extraction.DefaultPower <= 0:
		return fmt.Errorf("%w: default_power must be positive", ErrInvalidPolicy)
	case p.Extraction.VariantMode != VariantModeFirst && p.Extraction.VariantMode != VariantModeAll:
		return fmt.Errorf("%w: variant_mode must be %q or %q", ErrInvalidPolicy, VariantModeFirst, VariantModeAll)
	}
	return nil
}
