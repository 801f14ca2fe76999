package model

// CategoryFacet is one category tag with the number of products carrying it.
type CategoryFacet struct {
	Tag   string `db:"tag" json:"tag"`
	Count int    `db:"count" json:"count"`
}
