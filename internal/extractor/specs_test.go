package extractor

import (
	"testing"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
)

func TestSpecScannerGermanLabels(t *testing.T) {
	s := newSpecScanner(catalog.DefaultPolicy().Extraction.Labels)

	got := s.Scan("Hashrate: 200 TH/s\nLeistungsaufnahme: 3.500 W\nAlgorithmus: SHA-256\nEnergieeffizienz: 17,5 J/TH")

	want := map[string]string{
		catalog.FieldHashrate:   "200 TH/s",
		catalog.FieldPower:      "3.500 W",
		catalog.FieldAlgorithm:  "SHA-256",
		catalog.FieldEfficiency: "17,5 J/TH",
	}
	for field, value := range want {
		if got[field] != value {
			t.Errorf("Expected %s %q, got %q", field, value, got[field])
		}
	}
}

func TestSpecScannerInlineLabels(t *testing.T) {
	s := newSpecScanner(catalog.DefaultPolicy().Extraction.Labels)

	got := s.Scan("Power Consumption: 3250W, Hashrate: 110 TH/s Noise: 75 dB. Power efficiency: 29.5 J/TH")

	if got[catalog.FieldPower] != "3250W" {
		t.Errorf("Expected power 3250W, got %q", got[catalog.FieldPower])
	}
	if got[catalog.FieldHashrate] != "110 TH/s" {
		t.Errorf("Expected hashrate to stop at the next label, got %q", got[catalog.FieldHashrate])
	}
	if got[catalog.FieldEfficiency] != "29.5 J/TH" {
		t.Errorf("Expected efficiency 29.5 J/TH, got %q", got[catalog.FieldEfficiency])
	}
}

func TestSpecScannerFirstOccurrenceWins(t *testing.T) {
	s := newSpecScanner(catalog.DefaultPolicy().Extraction.Labels)

	got := s.Scan("Power: 3010 W; Stromverbrauch: 3500 W")
	if got[catalog.FieldPower] != "3010 W" {
		t.Errorf("Expected first power value, got %q", got[catalog.FieldPower])
	}
}

func TestSpecScannerNoLabels(t *testing.T) {
	s := newSpecScanner(nil)
	if got := s.Scan("Power: 3000 W"); len(got) != 0 {
		t.Errorf("Expected no fields without labels, got %v", got)
	}
}

func TestParseWatts(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3250W", 3250},
		{"3.500 W", 3500},
		{"3,500 W", 3500},
		{"3.5 kW", 3500},
		{"3250.5 W", 3250},
		{"ca. 3400 W (+/- 5%)", 3400},
		{"n/a", 0},
	}
	for _, tt := range tests {
		if got := parseWatts(tt.in); got != tt.want {
			t.Errorf("parseWatts(%q): Expected %d, got %d", tt.in, tt.want, got)
		}
	}
}
