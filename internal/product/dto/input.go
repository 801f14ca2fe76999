package dto

type CreateProductInput struct {
	Slug         string
	Name         string
	Manufacturer string
	Model        string
	Algorithm    string
	Hashrate     string
	Power        int
	Efficiency   string
	Price        int64 // cents
	Currency     string
	Condition    string
	Cooling      string
	Category     string
	Tags         []string
	ImageURL     string
	Description  string
	InStock      *bool
	Featured     bool
}

// UpdateProductInput is a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	ID       int64
	Name     *string
	Price    *int64
	InStock  *bool
	Featured *bool
}
