package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

const (
	ConditionNew  = "new"
	ConditionUsed = "used"

	CoolingAir       = "air"
	CoolingHydro     = "hydro"
	CoolingImmersion = "immersion"

	Uncategorized = "uncategorized"
)

type Product struct {
	BaseModel
	Slug           string         `db:"slug" json:"slug"`
	Name           string         `db:"name" json:"name"`
	Manufacturer   string         `db:"manufacturer" json:"manufacturer"`
	Model          string         `db:"model" json:"model"`
	Algorithm      string         `db:"algorithm" json:"algorithm"`
	Hashrate       string         `db:"hashrate" json:"hashrate"`
	Power          int            `db:"power" json:"power"` // watts
	Efficiency     string         `db:"efficiency" json:"efficiency"`
	Price          int64          `db:"price" json:"price"` // cents
	Currency       string         `db:"currency" json:"currency"`
	Condition      string         `db:"condition" json:"condition"`
	Cooling        string         `db:"cooling" json:"cooling"`
	Category       string         `db:"category" json:"category"` // primary tag
	ImageURL       *string        `db:"image_url" json:"image_url"`
	Description    *string        `db:"description" json:"description"`
	Specifications Specifications `db:"specifications" json:"specifications"`
	InStock        bool           `db:"in_stock" json:"in_stock"`
	Featured       bool           `db:"featured" json:"featured"`
}

// Specifications is the jsonb side column carrying the full tag list and the
// key specs for flexible querying.
type Specifications struct {
	Category   []string `json:"category"`
	Hashrate   string   `json:"hashrate"`
	Power      int      `json:"power"`
	Efficiency string   `json:"efficiency"`
	Algorithm  string   `json:"algorithm"`
}

// Value encodes as text; lib/pq would send a []byte as bytea.
func (s Specifications) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (s *Specifications) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = Specifications{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("specifications: unsupported type %T", src)
	}
}
