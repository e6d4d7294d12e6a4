package domain

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a viewport rectangle as reported by getBoundingClientRect.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}
