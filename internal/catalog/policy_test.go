package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPolicyIsValid(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Errorf("Expected default policy to validate, got %v", err)
	}
}

func TestLoadPolicyEmptyPath(t *testing.T) {
	p, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.Pricing.FXRate != 1.1 || p.Extraction.VariantMode != VariantModeFirst {
		t.Errorf("Expected defaults, got %+v", p)
	}
}

func TestLoadPolicyOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	yaml := "version: \"2025.2\"\npricing:\n  markdown: 0.75\n  exempt_accessories: true\nextraction:\n  variant_mode: all\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.Version != "2025.2" || p.Pricing.Markdown != 0.75 || !p.Pricing.ExemptAccessories {
		t.Errorf("Expected overridden values, got %+v", p.Pricing)
	}
	if p.Extraction.VariantMode != VariantModeAll {
		t.Errorf("Expected variant mode all, got %s", p.Extraction.VariantMode)
	}
	if p.Pricing.FXRate != 1.1 || p.Pricing.BulkUnits != 5 {
		t.Errorf("Expected omitted keys to keep defaults, got %+v", p.Pricing)
	}
}

func TestLoadPolicyErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPolicy(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("pricing:\n  markdown: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPolicy(bad); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("Expected ErrInvalidPolicy, got %v", err)
	}
}

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Policy)
	}{
		{"no version", func(p *Policy) { p.Version = "" }},
		{"zero fx", func(p *Policy) { p.Pricing.FXRate = 0 }},
		{"used ratio", func(p *Policy) { p.Pricing.UsedRatio = 1.2 }},
		{"bulk units", func(p *Policy) { p.Pricing.BulkUnits = 0 }},
		{"bulk factor", func(p *Policy) { p.Pricing.BulkFactor = 0 }},
		{"probability", func(p *Policy) { p.Pricing.FeaturedProbability = -0.1 }},
		{"power", func(p *Policy) { p.Extraction.DefaultPower = 0 }},
		{"variant mode", func(p *Policy) { p.Extraction.VariantMode = "some" }},
	}
	for _, tt := range tests {
		p := DefaultPolicy()
		tt.mutate(&p)
		if err := p.Validate(); !errors.Is(err, ErrInvalidPolicy) {
			t.Errorf("%s: Expected ErrInvalidPolicy, got %v", tt.name, err)
		}
	}
}
