package domain

// Platform size limits for placed items, in container pixels.
const (
	MinItemSize = 40.0
	MaxItemSize = 200.0
)

// CatalogItem is a selectable decoration template supplied by the catalog.
// The editor never mutates it.
type CatalogItem struct {
	ID    string `json:"id"`
	Image string `json:"image"` // file path or data URL
	Name  string `json:"name"`
}

// PlacedItem is one decoration instance on the photo. Position and size are
// in container space (the rendered photo element), not natural pixels.
type PlacedItem struct {
	ID           string  `json:"id"`
	SourceItemID string  `json:"sourceItemId"`
	Image        string  `json:"image"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Rotation     int     `json:"rotation"` // degrees, kept in [0,360)
}

type CatalogStore interface {
	List() ([]CatalogItem, error)
	Get(id string) (*CatalogItem, error)
	Has(id string) bool
	ReplaceAll(items []CatalogItem) error
}
