package app

import (
	"jewelry/internal/domain"
	"jewelry/internal/interaction"
)

// DragEndInput is what the frontend reports when a drag gesture ends.
type DragEndInput struct {
	OverCanvas bool          `json:"overCanvas"`
	DeltaX     float64       `json:"deltaX"`
	DeltaY     float64       `json:"deltaY"`
	Pointer    *domain.Point `json:"pointer,omitempty"`    // final pointer position, if known
	Activation *domain.Point `json:"activation,omitempty"` // pointer position when the drag started
	Container  domain.Rect   `json:"container"`            // photo container viewport rect
}

func (in DragEndInput) toDragEnd() interaction.DragEnd {
	return interaction.DragEnd{
		OverCanvas: in.OverCanvas,
		Delta:      domain.Point{X: in.DeltaX, Y: in.DeltaY},
		Pointer:    in.Pointer,
		Activation: in.Activation,
		Container:  in.Container,
	}
}

// KeyInput is a KeyboardEvent reduced to what the editor binds.
type KeyInput struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Meta  bool   `json:"meta"`
	Shift bool   `json:"shift"`
}

// ExportView is the frontend view of a finished export.
type ExportView struct {
	Filename string `json:"filename"`
	Path     string `json:"path"` // empty when the save dialog was cancelled
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Preview  string `json:"preview"` // PNG data URL
}
