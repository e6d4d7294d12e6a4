package domain

// SceneState is the complete editor state returned to the frontend for rendering.
type SceneState struct {
	Items     []PlacedItem `json:"items"`
	Selection string       `json:"selection"` // empty when nothing is selected
	CanUndo   bool         `json:"canUndo"`
	CanRedo   bool         `json:"canRedo"`
	CanExport bool         `json:"canExport"`
	Container Size         `json:"container"`
	Natural   Size         `json:"natural"`
}
