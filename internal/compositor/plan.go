// Package compositor renders the photo and its placed items into a single
// natural-resolution PNG.
package compositor

import (
	"jewelry/internal/domain"
	"jewelry/internal/geometry"
	"jewelry/internal/scene"
)

// Placement is the natural-pixel geometry of one item in the export.
type Placement struct {
	ItemID   string  `json:"itemId"`
	Image    string  `json:"image"`
	CenterX  float64 `json:"centerX"`
	CenterY  float64 `json:"centerY"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation int     `json:"rotation"`
}

// Plan maps every item of s from container space into natural-pixel space.
// The result depends only on its inputs and keeps scene order.
func Plan(s scene.Scene, container, natural domain.Size) ([]Placement, error) {
	scale, err := geometry.NaturalScale(container, natural)
	if err != nil {
		return nil, err
	}
	out := make([]Placement, len(s))
	for i, it := range s {
		out[i] = Placement{
			ItemID:   it.ID,
			Image:    it.Image,
			CenterX:  (it.X + it.Width/2) * scale.X,
			CenterY:  (it.Y + it.Height/2) * scale.Y,
			Width:    it.Width * scale.X,
			Height:   it.Height * scale.Y,
			Rotation: it.Rotation,
		}
	}
	return out, nil
}
