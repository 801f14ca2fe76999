package expander

import (
	"strings"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
)

const (
	TagAccessories  = "accessories"
	TagBitcoinMiner = "bitcoin-miner"
	TagAltcoinMiner = "altcoin-miner"
	TagAltcoinOther = "altcoin-other"
	TagHomeMiner    = "home-miner"
	TagUsedMiner    = "used-miner"
)

var accessoryKeywords = []string{"psu", "power supply", "fan", "cable", "silencer", "container", "cord"}

type keywordTags struct {
	keyword string
	tags    []string
}

// Checked in order; every matching entry contributes its tags.
var algorithmCoins = []keywordTags{
	{"sha-256", []string{TagBitcoinMiner, "sha256"}},
	{"sha256", []string{TagBitcoinMiner, "sha256"}},
	{"scrypt", []string{"litecoin", "doge", "scrypt"}},
	{"ethash", []string{"etc", "ethash"}},
	{"etchash", []string{"etc", "ethash"}},
	{"kheavyhash", []string{"kaspa", "kheavyhash"}},
	{"blake3", []string{"alephium", "blake3"}},
	{"blake2b", []string{"kadena", "blake2b"}},
	{"x11", []string{"dash", "x11"}},
	{"equihash", []string{"zcash", "equihash"}},
	{"eaglesong", []string{"ckb", "eaglesong"}},
	{"randomx", []string{"monero", "randomx"}},
}

var manufacturerSlugs = []keywordTags{
	{"bitmain", []string{"bitmain"}},
	{"microbt", []string{"microbt"}},
	{"canaan", []string{"canaan"}},
	{"goldshell", []string{"goldshell"}},
	{"iceriver", []string{"iceriver"}},
	{"jasminer", []string{"jasminer"}},
	{"ipollo", []string{"ipollo"}},
	{"elphapex", []string{"elphapex"}},
	{"bitdeer", []string{"bitdeer"}},
	{"volcminer", []string{"volcminer"}},
	{"desiweminer", []string{"desiweminer"}},
	{"wind miner", []string{"wind-miner"}},
}

var coolingTags = []keywordTags{
	{"hydro", []string{"hydro-miner"}},
	{"immersion", []string{"immersion"}},
	{"air", []string{"air-cooled"}},
}

// Classification is the tag set inferred for one record.
type Classification struct {
	Tags      []string
	Accessory bool
	Bitcoin   bool
}

func IsAccessory(name string) bool {
	return containsAny(strings.ToLower(name), accessoryKeywords...)
}

// Classify infers category tags from a record's raw name, algorithm,
// manufacturer, cooling and power. Tags keep first-occurrence order.
func Classify(r catalog.ProductRecord) Classification {
	name := strings.ToLower(r.Name)
	algo := strings.ToLower(r.Algorithm)
	manu := strings.ToLower(r.Manufacturer)

	var c Classification
	var tags []string

	if containsAny(name, accessoryKeywords...) {
		c.Accessory = true
		tags = append(tags, TagAccessories)
		if containsAny(name, "psu", "power supply") {
			tags = append(tags, "psu")
		}
		if strings.Contains(name, "fan") {
			tags = append(tags, "cooling")
		}
		if containsAny(name, "cable", "cord") {
			tags = append(tags, "cables")
		}
	} else {
		c.Bitcoin = containsAny(algo, "sha-256", "sha256")
		if c.Bitcoin {
			tags = append(tags, TagBitcoinMiner)
		} else {
			tags = append(tags, TagAltcoinMiner)
		}
	}

	mapped := false
	for _, m := range algorithmCoins {
		if strings.Contains(algo, m.keyword) {
			tags = append(tags, m.tags...)
			mapped = true
		}
	}
	if !mapped && !c.Bitcoin && !c.Accessory {
		tags = append(tags, TagAltcoinOther)
	}

	for _, m := range manufacturerSlugs {
		if strings.Contains(manu, m.keyword) {
			tags = append(tags, m.tags...)
		}
	}

	if !c.Accessory {
		cooling := strings.ToLower(r.Cooling)
		for _, m := range coolingTags {
			if strings.Contains(cooling, m.keyword) {
				tags = append(tags, m.tags...)
			}
		}
		if r.Power < 800 || containsAny(manu, "jasminer", "ipollo") || strings.Contains(name, "home") {
			tags = append(tags, TagHomeMiner)
		}
	}

	c.Tags = catalog.Dedupe(tags)
	return c
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
