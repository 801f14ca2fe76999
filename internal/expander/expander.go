// Package expander merges extracted and curated records, classifies and
// normalizes them, and derives the priced new/used/bulk variants.
package expander

import (
	"strings"
	"time"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
	"go.uber.org/zap"
)

const ReasonDuplicateID = "duplicate id"

type Rejection struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type Result struct {
	Records  []catalog.ProductRecord `json:"records"`
	Rejected []Rejection             `json:"rejected,omitempty"`
	Merge    MergeReport             `json:"merge"`
}

type Expander struct {
	policy catalog.Policy
	rng    catalog.Rand
	year   int
	logger logger.ZapLogger
}

// New builds an expander. A zero year means the current year.
func New(policy catalog.Policy, rng catalog.Rand, year int, log logger.ZapLogger) *Expander {
	if year == 0 {
		year = time.Now().Year()
	}
	return &Expander{policy: policy, rng: rng, year: year, logger: log}
}

// Expand produces the final catalog: every accepted record followed by its
// variants, then the fixed accessories. Invalid records are rejected with a
// reason and the run continues.
func (e *Expander) Expand(base, overrides []catalog.ProductRecord) Result {
	merged, mergeReport := Merge(base, overrides)
	res := Result{Merge: mergeReport}

	accessories := Accessories()
	seen := make(map[string]struct{}, len(merged)*3+len(accessories))
	for _, a := range accessories {
		seen[a.ID] = struct{}{}
	}
	reject := func(r catalog.ProductRecord, reason string) {
		res.Rejected = append(res.Rejected, Rejection{ID: r.ID, Name: r.Name, Reason: reason})
		e.logger.Warn("Rejected catalog record",
			zap.String("id", r.ID),
			zap.String("name", r.Name),
			zap.String("reason", reason),
		)
	}

	for _, raw := range merged {
		if err := raw.Validate(); err != nil {
			reject(raw, err.Error())
			continue
		}
		if _, dup := seen[raw.ID]; dup {
			reject(raw, ReasonDuplicateID)
			continue
		}
		seen[raw.ID] = struct{}{}

		newRec, accessory := e.transform(raw)
		res.Records = append(res.Records, newRec)

		if accessory && e.policy.Pricing.ExemptAccessories {
			continue
		}
		for _, derive := range []variantFunc{usedVariant, bulkVariant} {
			v, ok := derive(e.policy.Pricing, e.rng, newRec)
			if !ok {
				continue
			}
			if _, dup := seen[v.ID]; dup {
				reject(v, ReasonDuplicateID)
				continue
			}
			seen[v.ID] = struct{}{}
			res.Records = append(res.Records, v)
		}
	}

	res.Records = append(res.Records, accessories...)

	e.logger.Info("Expansion finished",
		zap.Int("base", mergeReport.Base),
		zap.Int("overrides", mergeReport.Overrides),
		zap.Int("replaced", mergeReport.Replaced),
		zap.Int("appended", mergeReport.Appended),
		zap.Int("rejected", len(res.Rejected)),
		zap.Int("records", len(res.Records)),
	)
	return res
}

// transform applies markdown, classification, normalization, the description
// rewrite and the featured draw to one validated record.
func (e *Expander) transform(raw catalog.ProductRecord) (catalog.ProductRecord, bool) {
	r := e.fillDefaults(raw.Clone())

	class := Classify(r)

	r.Price = catalog.Scale(r.Price, e.policy.Pricing.Markdown)
	r.Category = class.Tags
	r.Manufacturer = NormalizeManufacturer(r.Manufacturer)
	r.Algorithm = NormalizeAlgorithm(r.Algorithm)
	if class.Accessory {
		r.Description = accessoryDescription(e.year, r)
	} else {
		r.Description = minerDescription(e.year, r, class.Bitcoin)
	}
	r.Condition = catalog.ConditionNew
	r.IsNew = true
	r.Featured = e.rng.Float64() < e.policy.Pricing.FeaturedProbability
	return r, class.Accessory
}

// fillDefaults replaces blank optional fields, which hand-written overrides
// commonly omit, with the extraction sentinels.
func (e *Expander) fillDefaults(r catalog.ProductRecord) catalog.ProductRecord {
	ex := e.policy.Extraction
	blank := func(s string) bool { return strings.TrimSpace(s) == "" }

	r.Name = strings.TrimSpace(r.Name)
	if blank(r.Currency) {
		r.Currency = catalog.CurrencyUSD
	}
	if blank(r.Manufacturer) {
		r.Manufacturer = ex.DefaultManufacturer
	}
	if blank(r.Algorithm) {
		r.Algorithm = ex.Unknown
	}
	if blank(r.Hashrate) {
		r.Hashrate = ex.Unknown
	}
	if blank(r.Efficiency) {
		r.Efficiency = ex.Unknown
	}
	if blank(r.Cooling) {
		r.Cooling = catalog.CoolingAir
	}
	if blank(r.Image) {
		r.Image = ex.Image
	}
	return r
}
