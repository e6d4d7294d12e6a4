package mcpserver

import (
	"math"

	"jewelry/internal/domain"
)

const (
	GridSize = 10.0
	Padding  = 4.0
)

// LayoutEngine picks drop points for items added without a position
// so that agent-placed items don't overlap existing ones.
type LayoutEngine struct {
	gridSize float64
	padding  float64
}

func NewLayoutEngine() *LayoutEngine {
	return &LayoutEngine{
		gridSize: GridSize,
		padding:  Padding,
	}
}

// snap rounds v to the nearest grid point.
func (le *LayoutEngine) snap(v float64) float64 {
	return math.Round(v/le.gridSize) * le.gridSize
}

// rect is a simple axis-aligned bounding box.
type rect struct {
	x, y, w, h float64
}

func (a rect) intersects(b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

// NextCenter finds the first free grid position, scanning rows top to
// bottom, for an item of the given size and returns its centre, which is
// the drop point AddItem expects. When nothing fits the container centre
// is returned.
func (le *LayoutEngine) NextCenter(existing []domain.PlacedItem, size float64, container domain.Size) (float64, float64) {
	centerX, centerY := container.Width/2, container.Height/2
	if size > container.Width || size > container.Height {
		return centerX, centerY
	}

	occupied := make([]rect, len(existing))
	for i, it := range existing {
		occupied[i] = rect{
			x: it.X - le.padding,
			y: it.Y - le.padding,
			w: it.Width + le.padding*2,
			h: it.Height + le.padding*2,
		}
	}

	candidate := rect{w: size, h: size}
	for y := 0.0; y+size <= container.Height; y += le.gridSize {
		for x := 0.0; x+size <= container.Width; x += le.gridSize {
			candidate.x = le.snap(x)
			candidate.y = le.snap(y)
			if candidate.x+size > container.Width || candidate.y+size > container.Height {
				continue
			}

			overlaps := false
			for _, occ := range occupied {
				if candidate.intersects(occ) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return candidate.x + size/2, candidate.y + size/2
			}
		}
	}
	return centerX, centerY
}
