package compositor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"jewelry/internal/domain"
	"jewelry/internal/scene"
)

const DefaultFilenamePrefix = "dental-jewelry"

var (
	ErrNoPhoto = errors.New("no photo to export")
	ErrNoItems = errors.New("no items placed")
)

// Request is a frozen copy of everything an export needs. It shares nothing
// with the live editor state.
type Request struct {
	Photo     image.Image
	Scene     scene.Scene
	Container domain.Size
}

// Result is an encoded composite.
type Result struct {
	Filename   string      `json:"filename"`
	PNG        []byte      `json:"-"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Placements []Placement `json:"placements"`
}

// Exporter plans, loads, composes and encodes.
type Exporter struct {
	loader Loader
	prefix string
	now    func() time.Time
	log    *slog.Logger
}

// NewExporter creates an Exporter. An empty prefix uses DefaultFilenamePrefix.
func NewExporter(loader Loader, prefix string, logger *slog.Logger) *Exporter {
	if prefix == "" {
		prefix = DefaultFilenamePrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{loader: loader, prefix: prefix, now: time.Now, log: logger}
}

// Export renders req. Item images are all loaded before anything is drawn;
// one failed load fails the export.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	if req.Photo == nil {
		return nil, ErrNoPhoto
	}
	if len(req.Scene) == 0 {
		return nil, ErrNoItems
	}
	b := req.Photo.Bounds()
	natural := domain.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}

	placements, err := Plan(req.Scene, req.Container, natural)
	if err != nil {
		return nil, err
	}

	refs := make([]string, len(placements))
	for i, p := range placements {
		refs[i] = p.Image
	}
	start := e.now()
	images, err := LoadAll(ctx, e.loader, refs)
	if err != nil {
		return nil, err
	}

	img, err := Compose(req.Photo, placements, images)
	if err != nil {
		return nil, err
	}
	data, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Filename:   Filename(e.prefix, e.now()),
		PNG:        data,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Placements: placements,
	}
	e.log.Info("composite exported",
		"file", res.Filename,
		"items", len(placements),
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"bytes", len(data),
		"elapsed", e.now().Sub(start))
	return res, nil
}
