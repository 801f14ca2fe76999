package expander

import (
	"strings"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
)

type MergeReport struct {
	Base      int `json:"base"`
	Overrides int `json:"overrides"`
	Replaced  int `json:"replaced"`
	Appended  int `json:"appended"`
}

// MergeKey is the identity used to match an override to a base record.
func MergeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Merge applies curated overrides on top of extracted records. An override
// fully replaces the first base record with the same key; when several
// overrides share a key the last one wins. Unmatched overrides are appended
// in input order. Duplicate names inside base are all kept.
func Merge(base, overrides []catalog.ProductRecord) ([]catalog.ProductRecord, MergeReport) {
	report := MergeReport{Base: len(base), Overrides: len(overrides)}

	out := make([]catalog.ProductRecord, 0, len(base)+len(overrides))
	firstBase := make(map[string]int, len(base))
	for _, r := range base {
		key := MergeKey(r.Name)
		if _, ok := firstBase[key]; !ok {
			firstBase[key] = len(out)
		}
		out = append(out, r.Clone())
	}

	replaced := make(map[int]struct{})
	appended := make(map[string]int)
	for _, o := range overrides {
		key := MergeKey(o.Name)
		if pos, ok := firstBase[key]; ok {
			out[pos] = o.Clone()
			replaced[pos] = struct{}{}
			continue
		}
		if pos, ok := appended[key]; ok {
			out[pos] = o.Clone()
			continue
		}
		appended[key] = len(out)
		out = append(out, o.Clone())
	}

	report.Replaced = len(replaced)
	report.Appended = len(appended)
	return out, report
}
