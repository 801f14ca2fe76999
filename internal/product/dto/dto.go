package dto

type ProductFilters struct {
	Category     string // any tag, not only the primary one
	Manufacturer string
	Condition    string
	Featured     *bool
	InStock      *bool
	SearchQuery  string // name, manufacturer, algorithm
	SortBy       string // created_at, price, name
	SortOrder    string // asc, desc
	Page         int
	PageSize     int
}
