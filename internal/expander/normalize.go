package expander

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var canonicalManufacturers = map[string]string{
	"bitmain":     "Bitmain",
	"microbt":     "MicroBT",
	"canaan":      "Canaan",
	"goldshell":   "Goldshell",
	"iceriver":    "IceRiver",
	"jasminer":    "Jasminer",
	"ipollo":      "iPollo",
	"elphapex":    "ElphaPex",
	"bitdeer":     "Bitdeer",
	"volcminer":   "VolcMiner",
	"desiweminer": "DesiweMiner",
	"wind miner":  "Wind Miner",
	"generic":     "Generic",
}

// NormalizeManufacturer returns the canonical spelling for known vendors and
// title case for everything else.
func NormalizeManufacturer(name string) string {
	key := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	if canonical, ok := canonicalManufacturers[key]; ok {
		return canonical
	}
	return cases.Title(language.Und).String(key)
}

// First matching substring wins, so "sha" must stay ahead of the rest.
var canonicalAlgorithms = []struct {
	match string
	name  string
}{
	{"sha", "SHA-256"},
	{"scrypt", "Scrypt"},
	{"ethash", "Ethash"},
	{"equihash", "Equihash"},
	{"x11", "X11"},
	{"blake3", "Blake3"},
	{"kheavyhash", "KHeavyHash"},
	{"eaglesong", "Eaglesong"},
	{"kadena", "Kadena"},
	{"handshake", "Handshake"},
	{"randomx", "RandomX"},
}

// NormalizeAlgorithm maps known algorithm spellings to one canonical name and
// returns anything else unchanged.
func NormalizeAlgorithm(algo string) string {
	lower := strings.ToLower(algo)
	for _, a := range canonicalAlgorithms {
		if strings.Contains(lower, a.match) {
			return a.name
		}
	}
	return algo
}
