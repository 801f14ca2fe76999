package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
)

// ReadRecords loads a JSON array of records written by a previous stage.
func ReadRecords(path string) ([]ProductRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var records []ProductRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// ReadOptionalRecords is ReadRecords for files that may legitimately be
// absent, such as the hand-maintained override file.
func ReadOptionalRecords(path string) ([]ProductRecord, error) {
	if path == "" {
		return nil, nil
	}
	records, err := ReadRecords(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return records, err
}

func WriteRecords(path string, records []ProductRecord) error {
	if records == nil {
		records = []ProductRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, append(data, '\n'))
}

type csvRow struct {
	ID           string  `csv:"id"`
	Name         string  `csv:"name"`
	Price        float64 `csv:"price"`
	Currency     string  `csv:"currency"`
	Category     string  `csv:"category"`
	Manufacturer string  `csv:"manufacturer"`
	Algorithm    string  `csv:"algorithm"`
	Hashrate     string  `csv:"hashrate"`
	Power        int     `csv:"power"`
	Efficiency   string  `csv:"efficiency"`
	Cooling      string  `csv:"cooling"`
	Condition    string  `csv:"condition"`
	Stock        int     `csv:"stock"`
	Featured     bool    `csv:"featured"`
}

// WriteCSV exports records as a flat sheet for manual review; category tags
// are joined with "|".
func WriteCSV(path string, records []ProductRecord) error {
	rows := make([]*csvRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, &csvRow{
			ID:           r.ID,
			Name:         r.Name,
			Price:        r.Price,
			Currency:     r.Currency,
			Category:     strings.Join(r.Category, "|"),
			Manufacturer: r.Manufacturer,
			Algorithm:    r.Algorithm,
			Hashrate:     r.Hashrate,
			Power:        r.Power,
			Efficiency:   r.Efficiency,
			Cooling:      r.Cooling,
			Condition:    r.Condition,
			Stock:        r.Stock,
			Featured:     r.Featured,
		})
	}
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return writeFile(path, []byte(out))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
