package expander

import (
	"fmt"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
)

func minerDescription(year int, r catalog.ProductRecord, bitcoin bool) string {
	target := "Altcoin"
	if bitcoin {
		target = "Bitcoin"
	}
	return fmt.Sprintf(
		"[%d Model] %s is a high-efficiency %s miner from %s. "+
			"Features state-of-the-art cooling and industry-leading hashrate of %s. "+
			"Perfect for %s mining operations. Power consumption: %dW. Efficiency: %s.",
		year, r.Name, r.Algorithm, r.Manufacturer, r.Hashrate, target, r.Power, r.Efficiency,
	)
}

func accessoryDescription(year int, r catalog.ProductRecord) string {
	return fmt.Sprintf(
		"[%d Model] %s - High quality accessory for your mining setup. Manufacturer: %s. Condition: New.",
		year, r.Name, r.Manufacturer,
	)
}

func usedDescription(name string) string {
	return fmt.Sprintf("[USED/REFURBISHED] %s. Fully tested and verified. 30-day warranty.", name)
}

func bulkDescription(name string, units int) string {
	return fmt.Sprintf("[BULK PACK] %d units of %s. Volume discount included.", units, name)
}
