package extractor

import "testing"

func TestScanStructuredDataSkipsMalformedBlocks(t *testing.T) {
	doc := []byte(`<html><head>
<script type="application/ld+json">{ not json</script>
<script type="text/javascript">var x = {"@type": "Product"};</script>
<script type="application/ld+json">{"@type": "BreadcrumbList"}</script>
<script type="Application/LD+JSON">[{"@type": "Product", "name": "A"}]</script>
</head></html>`)

	blocks, errs := ScanStructuredData(doc)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d (%v)", len(errs), errs)
	}
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if !hasType(blocks[1], "Product") {
		t.Errorf("Expected second block to be a Product, got %v", blocks[1]["@type"])
	}
}

func TestScanStructuredDataFlattensGraph(t *testing.T) {
	doc := []byte(`<script type="application/ld+json">
{"@context": "https://schema.org", "@graph": [
  {"@type": "Organization", "name": "Shop"},
  {"@type": ["Thing", "ProductGroup"], "name": "Group"}
]}</script>`)

	blocks, errs := ScanStructuredData(doc)
	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if len(blocks) != 3 {
		t.Fatalf("Expected container plus 2 graph nodes, got %d", len(blocks))
	}
	if !hasType(blocks[2], "Product", "ProductGroup") {
		t.Errorf("Expected list-typed node to match ProductGroup")
	}
	if hasType(blocks[1], "Product", "ProductGroup") {
		t.Errorf("Expected Organization not to match")
	}
}
