package expander

import (
	"fmt"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
)

type variantFunc func(catalog.PricingPolicy, catalog.Rand, catalog.ProductRecord) (catalog.ProductRecord, bool)

// usedVariant derives the refurbished listing of a discounted new record.
// It reports false when the base price does not exceed the used floor.
func usedVariant(p catalog.PricingPolicy, rng catalog.Rand, newRec catalog.ProductRecord) (catalog.ProductRecord, bool) {
	if newRec.Price <= p.UsedFloor {
		return catalog.ProductRecord{}, false
	}
	v := newRec.Clone()
	v.ID = newRec.ID + "-used"
	v.Name = newRec.Name + " (Used)"
	v.Price = catalog.Scale(newRec.Price, p.UsedRatio)
	v.Category = catalog.Dedupe(append(v.Category, TagUsedMiner))
	v.Condition = catalog.ConditionUsed
	v.IsNew = false
	v.Description = usedDescription(newRec.Name)
	v.Stock = catalog.Between(rng, 1, 15)
	v.Featured = false
	return v, true
}

// bulkVariant derives the multi-unit pack of a discounted new record. It
// reports false when the base price is not under the bulk ceiling.
func bulkVariant(p catalog.PricingPolicy, rng catalog.Rand, newRec catalog.ProductRecord) (catalog.ProductRecord, bool) {
	if newRec.Price >= p.BulkCeiling {
		return catalog.ProductRecord{}, false
	}
	v := newRec.Clone()
	v.ID = fmt.Sprintf("%s-bulk-%d", newRec.ID, p.BulkUnits)
	v.Name = fmt.Sprintf("%s (Bulk Pack %dx)", newRec.Name, p.BulkUnits)
	v.Price = catalog.Scale(newRec.Price, float64(p.BulkUnits), p.BulkFactor)
	v.Condition = catalog.ConditionNew
	v.IsNew = true
	v.Description = bulkDescription(newRec.Name, p.BulkUnits)
	v.Stock = catalog.Between(rng, 1, p.BulkUnits)
	v.Featured = false
	return v, true
}
