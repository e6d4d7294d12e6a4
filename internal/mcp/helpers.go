package mcpserver

import "fmt"

func getFloat(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}

// requireItemID returns the placed item id named by the itemId argument.
func (s *Server) requireItemID(args map[string]any) (string, error) {
	id, _ := args["itemId"].(string)
	if id == "" {
		return "", fmt.Errorf("itemId is required")
	}
	for _, it := range s.editor.State().Items {
		if it.ID == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("item %s is not placed on the photo", id)
}
