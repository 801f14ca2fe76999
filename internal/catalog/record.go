// Package catalog holds the pipeline's intermediate product record, the
// versioned pricing/extraction policy and the JSON files passed between
// the extract, expand and seed stages.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ConditionNew  = "new"
	ConditionUsed = "used"

	CoolingAir       = "Air"
	CoolingHydro     = "Hydro"
	CoolingImmersion = "Immersion"

	CurrencyUSD = "USD"
)

var ErrInvalidRecord = errors.New("invalid product record")

// ProductRecord is the transient, pipeline-internal shape of a catalog entry.
// Price is in dollars until the seeder converts it to cents.
type ProductRecord struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	Category     []string `json:"category"`
	Manufacturer string   `json:"manufacturer"`
	Algorithm    string   `json:"algorithm"`
	Hashrate     string   `json:"hashrate"`
	Power        int      `json:"power"`
	Efficiency   string   `json:"efficiency"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Cooling      string   `json:"cooling"`
	Stock        int      `json:"stock"`
	Condition    string   `json:"condition"`
	Featured     bool     `json:"featured"`
	IsNew        bool     `json:"isNew"`
}

// Validate reports why a record cannot enter the expander. Fields the
// expander can fill with sentinels are not checked here.
func (r *ProductRecord) Validate() error {
	var problems []string
	if strings.TrimSpace(r.ID) == "" {
		problems = append(problems, "missing id")
	}
	if strings.TrimSpace(r.Name) == "" {
		problems = append(problems, "missing name")
	}
	if r.Price < 0 {
		problems = append(problems, "negative price")
	}
	if r.Power < 0 {
		problems = append(problems, "negative power")
	}
	if r.Stock < 0 {
		problems = append(problems, "negative stock")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(problems, ", "))
	}
	return nil
}

// Clone returns a deep copy; variants must never share the category slice.
func (r ProductRecord) Clone() ProductRecord {
	out := r
	out.Category = append([]string(nil), r.Category...)
	return out
}

// HasTag reports whether tag is part of the record's category set.
func (r *ProductRecord) HasTag(tag string) bool {
	for _, c := range r.Category {
		if c == tag {
			return true
		}
	}
	return false
}

// Dedupe returns tags without blanks or repeats, keeping first-seen order.
func Dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
