package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteAndReadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "products.json")
	in := []ProductRecord{{ID: "s21", Name: "Antminer S21", Price: 3999, Category: []string{"bitcoin-miner"}, IsNew: true}}

	if err := WriteRecords(path, in); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"isNew": true`) {
		t.Errorf("Expected camelCase isNew key, got %s", data)
	}

	out, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(out) != 1 || out[0].ID != "s21" || out[0].Price != 3999 {
		t.Errorf("Unexpected records %+v", out)
	}
}

func TestWriteRecordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := WriteRecords(path, nil); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Expected [], got %s", data)
	}
}

func TestReadOptionalRecords(t *testing.T) {
	records, err := ReadOptionalRecords(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil || records != nil {
		t.Errorf("Expected nil, nil for a missing file, got %v, %v", records, err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadOptionalRecords(bad); err == nil {
		t.Error("Expected decode error for a malformed file")
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	err := WriteCSV(path, []ProductRecord{{ID: "s21", Name: "Antminer S21", Price: 3999, Category: []string{"bitcoin-miner", "sha256"}, Stock: 4}})
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header and one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,name,price,currency,category") {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "bitcoin-miner|sha256") {
		t.Errorf("Expected joined tags, got %q", lines[1])
	}
}
