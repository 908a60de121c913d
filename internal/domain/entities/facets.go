package entities

// FacetOption is one selectable value of a facet dimension.
type FacetOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PriceRange bounds the price facet slider.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FacetSnapshot bundles every facet dimension of the whole catalog. Counts
// ignore the active filter selection; the snapshot is recomputed only when
// the catalog changes.
type FacetSnapshot struct {
	Levels     []FacetOption `json:"levels"`
	Durations  []FacetOption `json:"durations"`
	Formats    []FacetOption `json:"formats"`
	Categories []FacetOption `json:"categories"`
	PriceRange PriceRange    `json:"priceRange"`
}
