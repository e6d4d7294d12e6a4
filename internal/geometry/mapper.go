// Package geometry converts between viewport, container and natural-pixel
// coordinate spaces and tracks the rendered size of the photo element.
package geometry

import (
	"errors"

	"jewelry/internal/domain"
)

// ErrEmptyContainer is returned when a scale factor is requested for a
// container with a zero dimension.
var ErrEmptyContainer = errors.New("container has zero size")

// Scale maps container pixels to natural image pixels.
type Scale struct {
	X float64 `json:"scaleX"`
	Y float64 `json:"scaleY"`
}

// ClientToContainer converts a viewport point into container-relative coordinates.
func ClientToContainer(clientX, clientY float64, container domain.Rect) domain.Point {
	return domain.Point{X: clientX - container.Left, Y: clientY - container.Top}
}

// NaturalScale returns natural/container for each axis.
func NaturalScale(container, natural domain.Size) (Scale, error) {
	if container.Empty() {
		return Scale{}, ErrEmptyContainer
	}
	return Scale{
		X: natural.Width / container.Width,
		Y: natural.Height / container.Height,
	}, nil
}

// Clamp limits v to [lo, hi]. When hi < lo (an item larger than its
// container) lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampPosition keeps a square item of the given size inside the container.
func ClampPosition(x, y, size float64, container domain.Size) (float64, float64) {
	return Clamp(x, 0, container.Width-size), Clamp(y, 0, container.Height-size)
}
