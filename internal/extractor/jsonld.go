package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

const ldJSONType = "application/ld+json"

// ScanStructuredData returns every JSON-LD object embedded in doc. Arrays and
// @graph containers are flattened. Blocks that are not valid JSON are
// reported in the second return value and otherwise ignored.
func ScanStructuredData(doc []byte) ([]map[string]interface{}, []error) {
	var (
		blocks []map[string]interface{}
		errs   []error
		buf    bytes.Buffer
		inLD   bool
		index  int
	)

	z := html.NewTokenizer(bytes.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				errs = append(errs, err)
			}
			if inLD {
				// unterminated script at EOF
				blocks, errs = appendBlock(blocks, errs, buf.Bytes(), index)
			}
			return blocks, errs
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "script" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "type" && strings.EqualFold(strings.TrimSpace(string(val)), ldJSONType) {
					inLD = true
					buf.Reset()
				}
				if !more {
					break
				}
			}
		case html.TextToken:
			if inLD {
				buf.Write(z.Text())
			}
		case html.EndTagToken:
			if !inLD {
				continue
			}
			if name, _ := z.TagName(); string(name) == "script" {
				blocks, errs = appendBlock(blocks, errs, buf.Bytes(), index)
				index++
				inLD = false
			}
		}
	}
}

func appendBlock(blocks []map[string]interface{}, errs []error, raw []byte, index int) ([]map[string]interface{}, []error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return blocks, errs
	}
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return blocks, append(errs, fmt.Errorf("structured data block %d: %w", index, err))
	}
	return flatten(blocks, data), errs
}

func flatten(out []map[string]interface{}, data interface{}) []map[string]interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out = append(out, v)
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				out = flatten(out, item)
			}
		}
	case []interface{}:
		for _, item := range v {
			out = flatten(out, item)
		}
	}
	return out
}

// hasType reports whether the block's @type (string or list) names one of types.
func hasType(block map[string]interface{}, types ...string) bool {
	matches := func(s string) bool {
		for _, t := range types {
			if s == t {
				return true
			}
		}
		return false
	}
	switch v := block["@type"].(type) {
	case string:
		return matches(v)
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && matches(s) {
				return true
			}
		}
	}
	return false
}
