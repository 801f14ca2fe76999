package expander

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"github.com/fashionnova610-sys/Minerhaolan/pkg/logger"
)

type fixedRand struct {
	n int
	f float64
}

func (r fixedRand) IntN(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func (r fixedRand) Float64() float64 { return r.f }

func newTestExpander(policy catalog.Policy, rng catalog.Rand) *Expander {
	return New(policy, rng, 2025, logger.NewNop())
}

func byID(records []catalog.ProductRecord) map[string]catalog.ProductRecord {
	out := make(map[string]catalog.ProductRecord, len(records))
	for _, r := range records {
		out[r.ID] = r
	}
	return out
}

func TestExpandVariants(t *testing.T) {
	e := newTestExpander(catalog.DefaultPolicy(), fixedRand{n: 2, f: 0.9})

	res := e.Expand([]catalog.ProductRecord{
		rec("mid", "Antminer S19", 1000),
		rec("cheap", "Antminer S9", 400),
		rec("pricey", "Antminer S21 Hyd", 6000),
	}, nil)

	got := byID(res.Records)

	tests := []struct {
		id    string
		price float64
		exist bool
	}{
		{"mid", 800, true},
		{"mid-used", 520, true},
		{"mid-bulk-5", 3800, true},
		{"cheap", 320, true},
		{"cheap-used", 0, false},
		{"cheap-bulk-5", 1520, true},
		{"pricey", 4800, true},
		{"pricey-used", 3120, true},
		{"pricey-bulk-5", 0, false},
	}
	for _, tt := range tests {
		r, ok := got[tt.id]
		if ok != tt.exist {
			t.Errorf("%s: Expected present=%v, got %v", tt.id, tt.exist, ok)
			continue
		}
		if ok && r.Price != tt.price {
			t.Errorf("%s: Expected price %v, got %v", tt.id, tt.price, r.Price)
		}
	}

	used := got["mid-used"]
	if used.Name != "Antminer S19 (Used)" || used.Condition != catalog.ConditionUsed || used.IsNew {
		t.Errorf("Unexpected used variant: %+v", used)
	}
	if !used.HasTag(TagUsedMiner) {
		t.Errorf("Expected used-miner tag, got %v", used.Category)
	}
	if used.Stock != 3 {
		t.Errorf("Expected used stock 3, got %d", used.Stock)
	}
	if !strings.HasPrefix(used.Description, "[USED/REFURBISHED] Antminer S19.") {
		t.Errorf("Unexpected used description %q", used.Description)
	}

	bulk := got["mid-bulk-5"]
	if bulk.Name != "Antminer S19 (Bulk Pack 5x)" || bulk.Condition != catalog.ConditionNew {
		t.Errorf("Unexpected bulk variant: %+v", bulk)
	}
	if bulk.HasTag(TagUsedMiner) {
		t.Error("Expected bulk variant without used-miner tag")
	}
	if bulk.Stock < 1 || bulk.Stock > 5 {
		t.Errorf("Expected bulk stock in [1,5], got %d", bulk.Stock)
	}

	if res.Records[0].ID != "mid" || res.Records[1].ID != "mid-used" || res.Records[2].ID != "mid-bulk-5" {
		t.Errorf("Expected new, used, bulk order, got %s %s %s", res.Records[0].ID, res.Records[1].ID, res.Records[2].ID)
	}
}

func TestExpandNewRecord(t *testing.T) {
	e := newTestExpander(catalog.DefaultPolicy(), fixedRand{f: 0.1})

	base := rec("s19", "Antminer S19", 1000)
	base.Manufacturer = "bitmain"
	base.Algorithm = "sha256"
	base.Hashrate = "95 TH/s"
	base.Efficiency = "34.5 J/TH"
	base.Cooling = catalog.CoolingAir
	base.Stock = 17

	res := e.Expand([]catalog.ProductRecord{base}, nil)
	r := res.Records[0]

	if r.Manufacturer != "Bitmain" || r.Algorithm != "SHA-256" {
		t.Errorf("Expected normalized fields, got %q %q", r.Manufacturer, r.Algorithm)
	}
	if !r.Featured {
		t.Error("Expected featured when draw is below probability")
	}
	if r.Stock != 17 {
		t.Errorf("Expected new variant to keep stock, got %d", r.Stock)
	}
	if !strings.HasPrefix(r.Description, "[2025 Model] Antminer S19 is a high-efficiency SHA-256 miner from Bitmain.") {
		t.Errorf("Unexpected description %q", r.Description)
	}
	if !strings.Contains(r.Description, "Perfect for Bitcoin mining operations.") {
		t.Errorf("Expected bitcoin wording, got %q", r.Description)
	}
	for _, v := range res.Records[1:] {
		if v.Featured {
			t.Errorf("Expected variant %s never featured", v.ID)
		}
	}
}

func TestExpandFillsBlankOverrideFields(t *testing.T) {
	e := newTestExpander(catalog.DefaultPolicy(), fixedRand{f: 0.9})

	res := e.Expand(nil, []catalog.ProductRecord{{ID: "manual", Name: "  Mystery Rig ", Price: 100, Power: 2000}})
	r := res.Records[0]
	if r.Name != "Mystery Rig" || r.Currency != catalog.CurrencyUSD || r.Algorithm != "Unknown" || r.Cooling != catalog.CoolingAir {
		t.Errorf("Expected defaults filled, got %+v", r)
	}
	if !r.HasTag(TagAltcoinOther) || !r.HasTag("air-cooled") {
		t.Errorf("Unexpected tags %v", r.Category)
	}
}

func TestExpandPSUThresholdsApplyUniformly(t *testing.T) {
	e := newTestExpander(catalog.DefaultPolicy(), fixedRand{f: 0.9})

	psu := catalog.ProductRecord{ID: "psu", Name: "PSU 3600W", Price: 1000, Algorithm: "N/A", Manufacturer: "Generic"}
	res := e.Expand([]catalog.ProductRecord{psu}, nil)
	got := byID(res.Records)

	r := got["psu"]
	if !r.HasTag(TagAccessories) || !r.HasTag("psu") {
		t.Errorf("Expected accessories and psu tags, got %v", r.Category)
	}
	if r.HasTag(TagAltcoinOther) || r.HasTag(TagHomeMiner) {
		t.Errorf("Expected no miner tags on accessory, got %v", r.Category)
	}
	if !strings.Contains(r.Description, "High quality accessory") {
		t.Errorf("Expected accessory description, got %q", r.Description)
	}
	if _, ok := got["psu-used"]; !ok {
		t.Error("Expected used variant for accessory above floor by default")
	}
	if _, ok := got["psu-bulk-5"]; !ok {
		t.Error("Expected bulk variant for accessory under ceiling by default")
	}
}

func TestExpandPSUExemptAccessories(t *testing.T) {
	policy := catalog.DefaultPolicy()
	policy.Pricing.ExemptAccessories = true
	e := newTestExpander(policy, fixedRand{f: 0.9})

	psu := catalog.ProductRecord{ID: "psu", Name: "PSU 3600W", Price: 1000, Algorithm: "N/A", Manufacturer: "Generic"}
	res := e.Expand([]catalog.ProductRecord{psu}, nil)
	got := byID(res.Records)

	if _, ok := got["psu-used"]; ok {
		t.Error("Expected no used variant for exempt accessory")
	}
	if _, ok := got["psu-bulk-5"]; ok {
		t.Error("Expected no bulk variant for exempt accessory")
	}
	if len(res.Records) != 1+6 {
		t.Errorf("Expected psu plus 6 accessories, got %d", len(res.Records))
	}
}

func TestExpandScrypt(t *testing.T) {
	e := newTestExpander(catalog.DefaultPolicy(), fixedRand{f: 0.9})

	l9 := rec("l9", "Antminer L9", 5000)
	l9.Algorithm = "Scrypt"
	res := e.Expand([]catalog.ProductRecord{l9}, nil)

	r := res.Records[0]
	for _, tag := range []string{"litecoin", "doge", "scrypt", TagAltcoinMiner} {
		if !r.HasTag(tag) {
			t.Errorf("Expected tag %q, got %v", tag, r.Category)
		}
	}
	if r.HasTag(TagAltcoinOther) {
		t.Errorf("Expected mapped algorithm not to be altcoin-other, got %v", r.Category)
	}
	if !strings.Contains(r.Description, "Perfect for Altcoin mining operations.") {
		t.Errorf("Expected altcoin wording, got %q", r.Description)
	}
}

func TestExpandRejections(t *testing.T) {
	e := newTestExpander(catalog.DefaultPolicy(), fixedRand{f: 0.9})

	res := e.Expand([]catalog.ProductRecord{
		rec("x-used", "Antminer X Refurb", 100),
		rec("x", "Antminer X", 1000),
		rec("x", "Antminer X Clone", 1000),
		{ID: "bad", Name: "", Price: 10},
		rec("acc-0", "Lookalike", 10),
		{ID: "neg", Name: "Negative", Price: -1},
	}, nil)

	reasons := make(map[string]string)
	for _, rj := range res.Rejected {
		reasons[rj.ID+"|"+rj.Name] = rj.Reason
	}

	if reasons["x-used|Antminer X (Used)"] != ReasonDuplicateID {
		t.Errorf("Expected colliding used variant rejected, got %v", reasons)
	}
	if reasons["x|Antminer X Clone"] != ReasonDuplicateID {
		t.Errorf("Expected duplicate base id rejected, got %v", reasons)
	}
	if reasons["acc-0|Lookalike"] != ReasonDuplicateID {
		t.Errorf("Expected reserved accessory id rejected, got %v", reasons)
	}
	if !strings.Contains(reasons["bad|"], "missing name") {
		t.Errorf("Expected missing name rejection, got %v", reasons)
	}
	if !strings.Contains(reasons["neg|Negative"], "negative price") {
		t.Errorf("Expected negative price rejection, got %v", reasons)
	}
	if len(res.Rejected) != 5 {
		t.Errorf("Expected 5 rejections, got %d", len(res.Rejected))
	}

	seen := make(map[string]bool)
	for _, r := range res.Records {
		if seen[r.ID] {
			t.Errorf("Duplicate id %q in output", r.ID)
		}
		seen[r.ID] = true
	}
	if !seen["x"] || !seen["x-bulk-5"] || !seen["x-used"] {
		t.Errorf("Expected surviving records x, x-bulk-5 and x-used, got %v", seen)
	}
}

func TestExpandAppendsAccessories(t *testing.T) {
	e := newTestExpander(catalog.DefaultPolicy(), fixedRand{f: 0.9})

	res := e.Expand(nil, nil)
	if len(res.Records) != 6 {
		t.Fatalf("Expected 6 accessories, got %d", len(res.Records))
	}
	for i, r := range res.Records {
		if r.ID != accessoryID(i) || r.Stock != 50 || r.Featured || r.Power != 0 {
			t.Errorf("Unexpected accessory %+v", r)
		}
		if r.Image != accessoryImage {
			t.Errorf("Expected generic image, got %q", r.Image)
		}
	}
	if res.Records[2].Name != "Hydro Cooling Radiator Kit" || res.Records[2].Price != 450 {
		t.Errorf("Unexpected radiator kit %+v", res.Records[2])
	}
}

func TestExpandIsReproducibleWithSeed(t *testing.T) {
	base := []catalog.ProductRecord{
		rec("a", "Antminer S19", 1000),
		rec("b", "Whatsminer M30S", 2500),
		rec("c", "Antminer S21", 6000),
	}
	overrides := []catalog.ProductRecord{rec("m", "whatsminer m30s", 2600)}

	run := func() []byte {
		e := newTestExpander(catalog.DefaultPolicy(), catalog.NewRand(42))
		data, err := json.Marshal(e.Expand(base, overrides))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return data
	}

	first, second := run(), run()
	if string(first) != string(second) {
		t.Error("Expected identical output for identical seed and year")
	}
}
