package seeder

import (
	"testing"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
)

func TestToRow(t *testing.T) {
	r := catalog.ProductRecord{
		ID:           "s21-hyd-used",
		Name:         "Antminer S21 Hyd (Used)",
		Price:        1234.565,
		Currency:     "USD",
		Category:     []string{"bitcoin-miner", "sha256", "hydro"},
		Manufacturer: "Bitmain",
		Algorithm:    "SHA-256",
		Hashrate:     "335 TH/s",
		Power:        5360,
		Efficiency:   "16 J/TH",
		Description:  "desc",
		Image:        "/miner-new.png",
		Cooling:      "Hydro",
		Stock:        3,
		Condition:    "used",
		Featured:     true,
	}

	p := ToRow(r)

	if p.Slug != "s21-hyd-used" || p.Model != r.Name {
		t.Errorf("Expected slug from id and model from name, got %q/%q", p.Slug, p.Model)
	}
	if p.Price != 123457 {
		t.Errorf("Expected 123457 cents, got %d", p.Price)
	}
	if p.Category != "bitcoin-miner" {
		t.Errorf("Expected primary category bitcoin-miner, got %s", p.Category)
	}
	if p.Cooling != model.CoolingHydro || p.Condition != model.ConditionUsed {
		t.Errorf("Expected hydro/used, got %s/%s", p.Cooling, p.Condition)
	}
	if len(p.Specifications.Category) != 3 || p.Specifications.Power != 5360 {
		t.Errorf("Unexpected specifications %+v", p.Specifications)
	}
	if !p.InStock || !p.Featured {
		t.Error("Expected in stock and featured")
	}
	if p.ImageURL == nil || *p.ImageURL != "/miner-new.png" {
		t.Errorf("Expected image url, got %v", p.ImageURL)
	}
}

func TestToRowDefaults(t *testing.T) {
	p := ToRow(catalog.ProductRecord{ID: "x", Name: "X", Cooling: "Liquid", Condition: "refurbished"})

	if p.Category != model.Uncategorized {
		t.Errorf("Expected %s, got %s", model.Uncategorized, p.Category)
	}
	if p.Specifications.Category == nil {
		t.Error("Expected empty tag list, got nil")
	}
	if p.Cooling != model.CoolingAir || p.Condition != model.ConditionNew {
		t.Errorf("Expected air/new, got %s/%s", p.Cooling, p.Condition)
	}
	if p.InStock {
		t.Error("Expected zero stock to be out of stock")
	}
	if p.Currency != catalog.CurrencyUSD || p.ImageURL != nil || p.Description != nil {
		t.Errorf("Unexpected defaults %+v", p)
	}
}
