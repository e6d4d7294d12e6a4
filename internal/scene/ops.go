package scene

import (
	"github.com/google/uuid"

	"jewelry/internal/domain"
	"jewelry/internal/geometry"
)

const (
	RotateStep      = 15 // degrees per rotate step
	ResizeStep      = 10 // pixels per grow/shrink step
	DefaultItemSize = domain.MinItemSize
)

// AddOptions tunes AddItem. The zero value uses DefaultItemSize and uuids.
type AddOptions struct {
	Size  float64
	NewID func() string
}

// ItemSize is the side length new items get.
func (o AddOptions) ItemSize() float64 {
	if o.Size <= 0 {
		return DefaultItemSize
	}
	return geometry.Clamp(o.Size, domain.MinItemSize, domain.MaxItemSize)
}

func (o AddOptions) newID() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return uuid.NewString()
}

// AddItem places a catalog item centred on the drop point and clamps it
// into the container. It returns the new scene and the created item.
func AddItem(s Scene, item domain.CatalogItem, dropX, dropY float64, container domain.Size, opts AddOptions) (Scene, domain.PlacedItem) {
	size := opts.ItemSize()
	x, y := geometry.ClampPosition(dropX-size/2, dropY-size/2, size, container)
	placed := domain.PlacedItem{
		ID:           opts.newID(),
		SourceItemID: item.ID,
		Image:        item.Image,
		X:            x,
		Y:            y,
		Width:        size,
		Height:       size,
	}
	out := make(Scene, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, placed)
	return out, placed
}

// MoveItem offsets an item by (dx, dy) and clamps it into the container.
func MoveItem(s Scene, id string, dx, dy float64, container domain.Size) Scene {
	return update(s, id, func(it *domain.PlacedItem) {
		it.X = geometry.Clamp(it.X+dx, 0, container.Width-it.Width)
		it.Y = geometry.Clamp(it.Y+dy, 0, container.Height-it.Height)
	})
}

// RotateItem turns an item one step clockwise (direction > 0) or
// counter-clockwise (direction < 0).
func RotateItem(s Scene, id string, direction int) Scene {
	step := 0
	switch {
	case direction > 0:
		step = RotateStep
	case direction < 0:
		step = -RotateStep
	}
	return update(s, id, func(it *domain.PlacedItem) {
		it.Rotation = NormalizeRotation(it.Rotation + step)
	})
}

// ResizeItem grows or shrinks an item symmetrically within the size limits.
// The position is left as is.
func ResizeItem(s Scene, id string, delta float64) Scene {
	return update(s, id, func(it *domain.PlacedItem) {
		size := geometry.Clamp(it.Width+delta, domain.MinItemSize, domain.MaxItemSize)
		it.Width, it.Height = size, size
	})
}

// RemoveItem drops an item. The bool reports whether anything was removed,
// so the caller can clear a selection that pointed at it.
func RemoveItem(s Scene, id string) (Scene, bool) {
	out := make(Scene, 0, len(s))
	removed := false
	for _, it := range s {
		if it.ID == id {
			removed = true
			continue
		}
		out = append(out, it)
	}
	return out, removed
}

// NormalizeRotation maps any angle in degrees into [0, 360).
func NormalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// update copies s and applies fn to the item with the given id. A missing
// id yields an unchanged copy.
func update(s Scene, id string, fn func(*domain.PlacedItem)) Scene {
	out := s.Clone()
	if _, i, ok := out.Find(id); ok {
		fn(&out[i])
	}
	return out
}
