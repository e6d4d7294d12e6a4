// Package catalog reads the decoration catalog manifest and keeps the
// catalog store in sync with it.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"jewelry/internal/domain"
)

var ErrInvalidManifest = errors.New("invalid catalog manifest")

// Manifest is the on-disk catalog description:
//
//	items:
//	  - id: ring1
//	    image: ring1.png
//	    name: Gold Ring
type Manifest struct {
	Items []ManifestItem `yaml:"items"`
}

type ManifestItem struct {
	ID    string `yaml:"id"`
	Image string `yaml:"image"`
	Name  string `yaml:"name"`
}

// LoadManifest reads a manifest file. Relative image paths are resolved
// against the manifest's directory.
func LoadManifest(path string) ([]domain.CatalogItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data, filepath.Dir(path))
}

// ParseManifest decodes manifest YAML, resolving relative images against dir.
func ParseManifest(data []byte, dir string) ([]domain.CatalogItem, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	items := make([]domain.CatalogItem, 0, len(m.Items))
	seen := make(map[string]bool, len(m.Items))
	for i, mi := range m.Items {
		id := strings.TrimSpace(mi.ID)
		if id == "" || mi.Image == "" {
			return nil, fmt.Errorf("%w: item %d needs an id and an image", ErrInvalidManifest, i)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidManifest, id)
		}
		seen[id] = true

		name := mi.Name
		if name == "" {
			name = id
		}
		items = append(items, domain.CatalogItem{
			ID:    id,
			Image: resolveImage(mi.Image, dir),
			Name:  name,
		})
	}
	return items, nil
}

func resolveImage(ref, dir string) string {
	if strings.HasPrefix(ref, "data:") || filepath.IsAbs(ref) || dir == "" {
		return ref
	}
	return filepath.Join(dir, ref)
}
