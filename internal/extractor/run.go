package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
	"go.uber.org/zap"
)

type FileFailure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Report summarises one extraction run.
type Report struct {
	Scanned   int           `json:"scanned"`
	Extracted int           `json:"extracted"`
	Skipped   int           `json:"skipped"`
	Records   int           `json:"records"`
	Failures  []FileFailure `json:"failures,omitempty"`
}

// Run extracts every *.html page in dir in lexical order. A page that cannot
// be read or parsed is logged and skipped; it never aborts the run.
func (e *Extractor) Run(ctx context.Context, dir string) ([]catalog.ProductRecord, Report, error) {
	var report Report

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, report, fmt.Errorf("read source dir %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".html") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	records := make([]catalog.ProductRecord, 0, len(files))
	for _, name := range files {
		select {
		case <-ctx.Done():
			return records, report, ctx.Err()
		default:
		}

		report.Scanned++
		path := filepath.Join(dir, name)

		doc, err := os.ReadFile(path)
		if err != nil {
			e.skip(&report, name, err)
			continue
		}
		recs, err := e.Extract(name, doc)
		if err != nil {
			e.skip(&report, name, err)
			continue
		}

		report.Extracted++
		records = append(records, recs...)
	}
	report.Records = len(records)

	e.logger.Info("Extraction finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("extracted", report.Extracted),
		zap.Int("skipped", report.Skipped),
		zap.Int("records", report.Records),
	)
	return records, report, nil
}

func (e *Extractor) skip(report *Report, file string, err error) {
	report.Skipped++
	report.Failures = append(report.Failures, FileFailure{File: file, Reason: err.Error()})
	e.logger.Warn("Skipping product page", zap.String("file", file), zap.Error(err))
}
