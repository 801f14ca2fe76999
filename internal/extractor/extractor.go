// Package extractor turns scraped product pages into catalog records using
// the JSON-LD Product/ProductGroup block each page embeds.
package extractor

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

var ErrNoProduct = errors.New("no Product structured data found")

var (
	hydroWord     = regexp.MustCompile(`\bhyd\b`)
	immersionWord = regexp.MustCompile(`\bimm\b`)
)

type Extractor struct {
	policy catalog.ExtractionPolicy
	fxRate float64
	specs  *specScanner
	rng    catalog.Rand
	logger logger.ZapLogger
}

func New(policy catalog.Policy, rng catalog.Rand, log logger.ZapLogger) *Extractor {
	return &Extractor{
		policy: policy.Extraction,
		fxRate: policy.Pricing.FXRate,
		specs:  newSpecScanner(policy.Extraction.Labels),
		rng:    rng,
		logger: log,
	}
}

// Extract parses one product page. Depending on the variant mode a
// ProductGroup yields its first variant only or one record per variant.
func (e *Extractor) Extract(filename string, doc []byte) ([]catalog.ProductRecord, error) {
	blocks, errs := ScanStructuredData(doc)
	for _, err := range errs {
		e.logger.Warn("Skipping malformed structured data", zap.String("file", filename), zap.Error(err))
	}

	var productLd map[string]interface{}
	for _, b := range blocks {
		if hasType(b, "Product", "ProductGroup") {
			productLd = b
			break
		}
	}
	if productLd == nil {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoProduct)
	}

	baseID := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	items := []map[string]interface{}{productLd}
	fanOut := false
	if hasType(productLd, "ProductGroup") {
		if variants := objects(productLd["hasVariant"]); len(variants) > 0 {
			if e.policy.VariantMode == catalog.VariantModeAll {
				items = variants
				fanOut = len(variants) > 1
			} else {
				items = variants[:1]
			}
		}
	}

	records := make([]catalog.ProductRecord, 0, len(items))
	for i, item := range items {
		id := baseID
		if i > 0 {
			id = fmt.Sprintf("%s-%d", baseID, i+1)
		}
		rec, err := e.build(id, productLd, item, fanOut)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (e *Extractor) build(id string, group, item map[string]interface{}, fanOut bool) (catalog.ProductRecord, error) {
	primary, secondary := group, item
	if fanOut {
		primary, secondary = item, group
	}

	name := strings.TrimSpace(firstString(primary["name"], secondary["name"]))
	if name == "" {
		return catalog.ProductRecord{}, errors.New("product has no name")
	}
	description := firstString(primary["description"], secondary["description"])

	priceEUR := offerPrice(item)
	if priceEUR == 0 {
		priceEUR = offerPrice(group)
	}

	specs := e.specs.Scan(description)

	power := e.policy.DefaultPower
	if v, ok := specs[catalog.FieldPower]; ok {
		if w := parseWatts(v); w > 0 {
			power = w
		}
	}

	manufacturer := e.manufacturer(group, item, name)
	cooling := coolingFromName(name)

	return catalog.ProductRecord{
		ID:           id,
		Name:         name,
		Price:        catalog.Scale(priceEUR, e.fxRate),
		Currency:     catalog.CurrencyUSD,
		Category:     catalog.Dedupe([]string{"asic-miner", strings.ToLower(cooling), strings.ToLower(manufacturer)}),
		Manufacturer: manufacturer,
		Algorithm:    e.specOrUnknown(specs, catalog.FieldAlgorithm),
		Hashrate:     e.specOrUnknown(specs, catalog.FieldHashrate),
		Power:        power,
		Efficiency:   e.specOrUnknown(specs, catalog.FieldEfficiency),
		Description:  description,
		Image:        e.policy.Image,
		Cooling:      cooling,
		Stock:        catalog.Between(e.rng, 1, 50),
		Condition:    catalog.ConditionNew,
		IsNew:        true,
	}, nil
}

func (e *Extractor) specOrUnknown(specs map[string]string, field string) string {
	if v, ok := specs[field]; ok {
		return v
	}
	return e.policy.Unknown
}

// manufacturer prefers an explicit brand, then known model-line names in the
// product name, then the configured default.
func (e *Extractor) manufacturer(group, item map[string]interface{}, name string) string {
	if brand := brandName(group["brand"]); brand != "" {
		return brand
	}
	if brand := brandName(item["brand"]); brand != "" {
		return brand
	}
	lower := strings.ToLower(name)
	for _, hint := range e.policy.Manufacturers {
		if hint.Match != "" && strings.Contains(lower, strings.ToLower(hint.Match)) {
			return hint.Name
		}
	}
	return e.policy.DefaultManufacturer
}

func coolingFromName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "hydro") || hydroWord.MatchString(lower):
		return catalog.CoolingHydro
	case strings.Contains(lower, "immersion") || immersionWord.MatchString(lower):
		return catalog.CoolingImmersion
	default:
		return catalog.CoolingAir
	}
}

// offerPrice reads price (or lowPrice) from the first listed offer. Strings
// and numbers are both accepted; anything unparseable counts as zero.
func offerPrice(block map[string]interface{}) float64 {
	var offer map[string]interface{}
	switch v := block["offers"].(type) {
	case map[string]interface{}:
		offer = v
	case []interface{}:
		if offers := objects(v); len(offers) > 0 {
			offer = offers[0]
		}
	}
	if offer == nil {
		return 0
	}
	for _, key := range []string{"price", "lowPrice"} {
		raw, ok := offer[key]
		if !ok || raw == nil {
			continue
		}
		if s, isString := raw.(string); isString {
			raw = strings.TrimSpace(s)
		}
		if f, err := cast.ToFloat64E(raw); err == nil && f > 0 {
			return f
		}
	}
	return 0
}

func brandName(v interface{}) string {
	switch b := v.(type) {
	case map[string]interface{}:
		return strings.TrimSpace(cast.ToString(b["name"]))
	case string:
		return strings.TrimSpace(b)
	}
	return ""
}

func firstString(values ...interface{}) string {
	for _, v := range values {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func objects(v interface{}) []map[string]interface{} {
	list, ok := v.([]interface{})
	if !ok {
		if m, isMap := v.(map[string]interface{}); isMap {
			return []map[string]interface{}{m}
		}
		return nil
	}
	out := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if m, isMap := item.(map[string]interface{}); isMap {
			out = append(out, m)
		}
	}
	return out
}
