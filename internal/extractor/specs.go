package extractor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// specScanner pulls "Label: value" pairs for known label synonyms out of free
// text. Labels that are not configured are never interpreted.
type specScanner struct {
	re     *regexp.Regexp
	fields map[string]string
}

var (
	spaceRun = regexp.MustCompile(`\s+`)

	// otherLabel ends a value at an unconfigured "Noise:" style label.
	otherLabel = regexp.MustCompile(`\s\p{L}[\p{L}-]*(?:\s\p{L}[\p{L}-]*)?\s*:`)
)

func newSpecScanner(labels map[string][]string) *specScanner {
	fields := make(map[string]string)
	var synonyms []string
	for field, names := range labels {
		for _, name := range names {
			key := normalizeLabel(name)
			if key == "" {
				continue
			}
			if _, dup := fields[key]; !dup {
				synonyms = append(synonyms, key)
			}
			fields[key] = field
		}
	}
	if len(synonyms) == 0 {
		return &specScanner{fields: fields}
	}

	// Longest first so "power consumption" wins over "power".
	sort.Slice(synonyms, func(i, j int) bool {
		if len(synonyms[i]) != len(synonyms[j]) {
			return len(synonyms[i]) > len(synonyms[j])
		}
		return synonyms[i] < synonyms[j]
	})
	alts := make([]string, len(synonyms))
	for i, s := range synonyms {
		alts[i] = strings.ReplaceAll(regexp.QuoteMeta(s), " ", `\s+`)
	}
	re := regexp.MustCompile(`(?i)\b(` + strings.Join(alts, "|") + `)\s*:`)
	return &specScanner{re: re, fields: fields}
}

// Scan maps spec fields to raw values; the first occurrence of a field wins.
func (s *specScanner) Scan(text string) map[string]string {
	out := make(map[string]string)
	if s.re == nil || text == "" {
		return out
	}

	matches := s.re.FindAllStringSubmatchIndex(text, -1)
	for i, m := range matches {
		field := s.fields[normalizeLabel(text[m[2]:m[3]])]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		value := text[m[1]:end]
		if cut := strings.IndexAny(value, "\n;|"); cut >= 0 {
			value = value[:cut]
		}
		if loc := otherLabel.FindStringIndex(value); loc != nil {
			value = value[:loc[0]]
		}
		value = strings.TrimRight(strings.TrimSpace(value), ",. ")
		if value == "" || field == "" {
			continue
		}
		if _, seen := out[field]; !seen {
			out[field] = value
		}
	}
	return out
}

func normalizeLabel(s string) string {
	return spaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

var (
	powerNumber = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)*)\s*(kw|w)?`)
	grouped     = regexp.MustCompile(`^\d{1,3}(?:[.,]\d{3})+$`)
)

// parseWatts reads the first number of a power value. "3,500 W" and
// "3.500W" are thousands-grouped; "3.5 kW" is scaled to watts.
func parseWatts(value string) int {
	m := powerNumber.FindStringSubmatch(value)
	if m == nil {
		return 0
	}
	num, unit := m[1], strings.ToLower(m[2])

	if unit == "kw" {
		f, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", "."), 64)
		if err != nil {
			return 0
		}
		return int(f*1000 + 0.5)
	}
	if grouped.MatchString(num) {
		num = strings.NewReplacer(",", "", ".", "").Replace(num)
	} else if cut := strings.IndexAny(num, ".,"); cut >= 0 {
		num = num[:cut]
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0
	}
	return n
}
