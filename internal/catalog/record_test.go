package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	ok := ProductRecord{ID: "s21", Name: "Antminer S21", Price: 10}
	if err := ok.Validate(); err != nil {
		t.Errorf("Expected valid record, got %v", err)
	}

	bad := ProductRecord{ID: " ", Price: -1, Stock: -2}
	err := bad.Validate()
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("Expected ErrInvalidRecord, got %v", err)
	}
	for _, want := range []string{"missing id", "missing name", "negative price", "negative stock"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %q", want, err.Error())
		}
	}
}

func TestCloneDoesNotShareCategory(t *testing.T) {
	r := ProductRecord{ID: "a", Category: []string{"asic-miner"}}
	c := r.Clone()
	c.Category[0] = "changed"
	c.Category = append(c.Category, "extra")

	if r.Category[0] != "asic-miner" || len(r.Category) != 1 {
		t.Errorf("Expected original untouched, got %v", r.Category)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"asic-miner", "", "air", "asic-miner", "bitmain", "air"})
	want := []string{"asic-miner", "air", "bitmain"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if !(&ProductRecord{Category: got}).HasTag("air") {
		t.Error("Expected HasTag to find air")
	}
}
