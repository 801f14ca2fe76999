package expander

import (
	"fmt"

	"github.com/fashionnova610-sys/Minerhaolan/internal/catalog"
)

const accessoryImage = "https://images.unsplash.com/photo-1555664424-778a69022365?w=800"

var stockAccessories = []struct {
	name  string
	price float64
	tag   string
}{
	{"High Performance PSU 3600W", 150, "psu"},
	{"Silent Fan Kit (120mm)", 25, "cooling"},
	{"Hydro Cooling Radiator Kit", 450, "hydro-rack"},
	{"Heavy Duty Power Cable (C19)", 15, "cables"},
	{"Miner Control Board (Generic)", 120, "control-boards"},
	{"Noise Reduction Silencer Box", 180, "silencer"},
}

func accessoryID(i int) string {
	return fmt.Sprintf("acc-%d", i)
}

// Accessories returns the fixed add-on items appended to every catalog.
// Their prices are final and never marked down.
func Accessories() []catalog.ProductRecord {
	out := make([]catalog.ProductRecord, 0, len(stockAccessories))
	for i, a := range stockAccessories {
		out = append(out, catalog.ProductRecord{
			ID:           accessoryID(i),
			Name:         a.name,
			Price:        a.price,
			Currency:     catalog.CurrencyUSD,
			Category:     []string{TagAccessories, a.tag},
			Manufacturer: "Generic",
			Algorithm:    "N/A",
			Hashrate:     "N/A",
			Power:        0,
			Efficiency:   "N/A",
			Description:  fmt.Sprintf("Premium quality %s for your mining setup.", a.name),
			Image:        accessoryImage,
			Cooling:      "air",
			Stock:        50,
			Condition:    catalog.ConditionNew,
			IsNew:        true,
		})
	}
	return out
}
