package dto

type CategoryFilters struct {
	Prefix   string // tag prefix, e.g. "sha" or "antminer"
	InStock  *bool
	Page     int
	PageSize int
}
