package seeder

import (
	"strings"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"github.com/fashionnova610-sys/Minerhaolan/internal/model"
)

// ToRow maps a pipeline record onto the products table.
func ToRow(r catalog.ProductRecord) model.Product {
	category := model.Uncategorized
	if len(r.Category) > 0 && r.Category[0] != "" {
		category = r.Category[0]
	}

	tags := r.Category
	if tags == nil {
		tags = []string{}
	}

	p := model.Product{
		Slug:         r.ID,
		Name:         r.Name,
		Manufacturer: r.Manufacturer,
		Model:        r.Name,
		Algorithm:    r.Algorithm,
		Hashrate:     r.Hashrate,
		Power:        r.Power,
		Efficiency:   r.Efficiency,
		Price:        catalog.ToCents(r.Price),
		Currency:     r.Currency,
		Condition:    condition(r.Condition),
		Cooling:      cooling(r.Cooling),
		Category:     category,
		Specifications: model.Specifications{
			Category:   tags,
			Hashrate:   r.Hashrate,
			Power:      r.Power,
			Efficiency: r.Efficiency,
			Algorithm:  r.Algorithm,
		},
		InStock:  r.Stock > 0,
		Featured: r.Featured,
	}
	if p.Currency == "" {
		p.Currency = catalog.CurrencyUSD
	}
	if r.Image != "" {
		img := r.Image
		p.ImageURL = &img
	}
	if r.Description != "" {
		desc := r.Description
		p.Description = &desc
	}
	return p
}

func ToRows(records []catalog.ProductRecord) []model.Product {
	rows := make([]model.Product, len(records))
	for i, r := range records {
		rows[i] = ToRow(r)
	}
	return rows
}

func cooling(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case model.CoolingHydro:
		return model.CoolingHydro
	case model.CoolingImmersion:
		return model.CoolingImmersion
	default:
		return model.CoolingAir
	}
}

func condition(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), model.ConditionUsed) {
		return model.ConditionUsed
	}
	return model.ConditionNew
}
