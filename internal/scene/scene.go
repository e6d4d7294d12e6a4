// Package scene holds the placed-item model, the pure placement and
// transform operations, and the linear undo/redo history.
package scene

import "jewelry/internal/domain"

// Scene is the ordered set of placed items. Order is z-order: the last item
// is drawn on top and wins hit-testing.
type Scene []domain.PlacedItem

// Clone returns an independent copy. A nil scene clones to an empty one.
func (s Scene) Clone() Scene {
	out := make(Scene, len(s))
	copy(out, s)
	return out
}

// Find returns the item with the given id and its index.
func (s Scene) Find(id string) (domain.PlacedItem, int, bool) {
	for i, it := range s {
		if it.ID == id {
			return it, i, true
		}
	}
	return domain.PlacedItem{}, -1, false
}

func (s Scene) Contains(id string) bool {
	_, _, ok := s.Find(id)
	return ok
}

// Equal compares two scenes item by item, order included.
func (s Scene) Equal(other Scene) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Items returns the scene as a plain slice, never nil, for JSON encoding.
func (s Scene) Items() []domain.PlacedItem {
	return []domain.PlacedItem(s.Clone())
}
