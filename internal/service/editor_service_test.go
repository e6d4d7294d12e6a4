package service_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"jewelry/internal/compositor"
	"jewelry/internal/domain"
	"jewelry/internal/geometry"
	"jewelry/internal/interaction"
	"jewelry/internal/service"
)

// ─────────────────────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────────────────────

type fakeCatalog []domain.CatalogItem

func (c fakeCatalog) List() ([]domain.CatalogItem, error) { return c, nil }

func (c fakeCatalog) Lookup(id string) (domain.CatalogItem, bool) {
	for _, it := range c {
		if it.ID == id {
			return it, true
		}
	}
	return domain.CatalogItem{}, false
}

var testCatalog = fakeCatalog{
	{ID: "ring1", Image: "ring1.png", Name: "Ring"},
	{ID: "broken", Image: "broken.png", Name: "Broken"},
}

// gateLoader serves solid images; "broken.png" always fails. When gate is
// set, every load waits for it to close.
type gateLoader struct {
	gate chan struct{}
}

func (l *gateLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	if l.gate != nil {
		select {
		case <-l.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if ref == "broken.png" {
		return nil, errors.New("decode failed")
	}
	return solid(8, 8, color.RGBA{B: 255, A: 255}), nil
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func newEditor(t *testing.T, loader compositor.Loader) (*service.EditorService, *service.MockEmitter) {
	t.Helper()
	if loader == nil {
		loader = &gateLoader{}
	}
	emitter := &service.MockEmitter{}
	n := 0
	svc := service.NewEditorService(context.Background(), testCatalog,
		compositor.NewExporter(loader, "", nil), emitter, service.EditorOptions{
			ResizeDebounce: 10 * time.Millisecond,
			NewID: func() string {
				n++
				return fmt.Sprintf("p%d", n)
			},
		})
	t.Cleanup(func() { svc.Close(context.Background()) })
	return svc, emitter
}

// readyEditor has a 600x400 photo displayed in a 300x200 container.
func readyEditor(t *testing.T, loader compositor.Loader) (*service.EditorService, *service.MockEmitter) {
	t.Helper()
	svc, emitter := newEditor(t, loader)
	svc.SetPhoto(solid(600, 400, color.RGBA{R: 255, A: 255}))
	svc.PhotoLoaded(300, 200)
	return svc, emitter
}

// ─────────────────────────────────────────────────────────────
// Editing
// ─────────────────────────────────────────────────────────────

func TestEditor_AddItem(t *testing.T) {
	svc, emitter := readyEditor(t, nil)

	placed, err := svc.AddItem("ring1", 50, 50)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if placed.X != 30 || placed.Y != 30 || placed.Width != 40 || placed.Rotation != 0 {
		t.Errorf("unexpected placed item %+v", placed)
	}

	st := svc.State()
	if !st.CanUndo || st.CanRedo {
		t.Errorf("expected canUndo only, got %+v", st)
	}
	if st.Selection != placed.ID {
		t.Errorf("expected new item selected, got %q", st.Selection)
	}
	if !st.CanExport {
		t.Error("expected export to be available")
	}

	last, ok := emitter.Last(service.EventSceneChanged)
	if !ok {
		t.Fatal("expected a scene:changed event")
	}
	if got := last.Data.(domain.SceneState); len(got.Items) != 1 {
		t.Errorf("expected 1 item in emitted state, got %d", len(got.Items))
	}
}

func TestEditor_AddUnknownCatalogItem(t *testing.T) {
	svc, _ := readyEditor(t, nil)
	if _, err := svc.AddItem("nope", 10, 10); !errors.Is(err, service.ErrUnknownCatalogItem) {
		t.Errorf("expected ErrUnknownCatalogItem, got %v", err)
	}
}

func TestEditor_DirectOperations(t *testing.T) {
	svc, _ := readyEditor(t, nil)
	placed, _ := svc.AddItem("ring1", 280, 180)

	if !svc.MoveItem(placed.ID, -100, -100) {
		t.Error("expected move to change the scene")
	}
	if !svc.RotateItem(placed.ID, -1) {
		t.Error("expected rotate to change the scene")
	}
	if !svc.ResizeItem(placed.ID, 1000) {
		t.Error("expected resize to change the scene")
	}

	it := svc.State().Items[0]
	if it.X != 160 || it.Y != 60 || it.Rotation != 345 || it.Width != 200 {
		t.Errorf("unexpected item %+v", it)
	}

	if svc.MoveItem("missing", 1, 1) || svc.RotateItem("missing", 1) || svc.ResizeItem("missing", 10) || svc.RemoveItem("missing") {
		t.Error("expected operations on a missing id to be no-ops")
	}

	if !svc.RemoveItem(placed.ID) {
		t.Fatal("expected remove to change the scene")
	}
	st := svc.State()
	if len(st.Items) != 0 || st.Selection != "" {
		t.Errorf("expected empty scene with no selection, got %+v", st)
	}
}

func TestEditor_DragFlow(t *testing.T) {
	svc, emitter := readyEditor(t, nil)
	rect := domain.Rect{Left: 20, Top: 10, Width: 300, Height: 200}

	if err := svc.DragStart("ring1"); err != nil {
		t.Fatalf("DragStart: %v", err)
	}
	out := svc.DragEnd(interaction.DragEnd{
		OverCanvas: true,
		Delta:      domain.Point{X: 300, Y: 100},
		Pointer:    &domain.Point{X: 120, Y: 110},
		Container:  rect,
	})
	if out != interaction.OutcomeAdded {
		t.Fatalf("expected OutcomeAdded, got %s", out)
	}
	id := svc.State().Selection
	if it := svc.State().Items[0]; it.X != 80 || it.Y != 80 {
		t.Errorf("expected (80, 80), got (%.0f, %.0f)", it.X, it.Y)
	}
	if len(emitter.Named(service.EventSelectionChanged)) == 0 {
		t.Error("expected a selection:changed event")
	}

	if err := svc.DragStart(id); err != nil {
		t.Fatalf("DragStart placed: %v", err)
	}
	if out := svc.DragEnd(interaction.DragEnd{Delta: domain.Point{X: 10, Y: 0}}); out != interaction.OutcomeMoved {
		t.Errorf("expected OutcomeMoved off-canvas, got %s", out)
	}
	if it := svc.State().Items[0]; it.X != 90 {
		t.Errorf("expected x=90, got %.0f", it.X)
	}
}

func TestEditor_Keyboard(t *testing.T) {
	svc, _ := readyEditor(t, nil)
	placed, _ := svc.AddItem("ring1", 100, 100)

	if !svc.HandleKey("z", true, false, false) {
		t.Fatal("expected ctrl+z to be bound")
	}
	st := svc.State()
	if len(st.Items) != 0 || !st.CanRedo {
		t.Errorf("expected undo to empty the scene, got %+v", st)
	}
	svc.HandleKey("Z", false, true, true)
	if len(svc.State().Items) != 1 {
		t.Error("expected cmd+shift+z to redo")
	}

	svc.Select(placed.ID)
	svc.HandleKey("Delete", false, false, false)
	if len(svc.State().Items) != 0 {
		t.Error("expected Delete to remove the selected item")
	}

	if svc.HandleKey("ArrowUp", false, false, false) {
		t.Error("expected arrow keys to be unbound")
	}
}

func TestEditor_Retake(t *testing.T) {
	svc, _ := readyEditor(t, nil)
	svc.AddItem("ring1", 100, 100)
	svc.Retake()

	st := svc.State()
	if len(st.Items) != 0 || st.CanUndo || st.Selection != "" || st.CanExport {
		t.Errorf("expected a clean editor after retake, got %+v", st)
	}
	if !st.Natural.Empty() {
		t.Error("expected no photo after retake")
	}
}

func TestEditor_ContainerResizeDebounced(t *testing.T) {
	svc, emitter := readyEditor(t, nil)
	svc.ContainerResized(350, 220)
	svc.ContainerResized(400, 250)

	deadline := time.Now().Add(time.Second)
	for svc.State().Container.Width != 400 {
		if time.Now().After(deadline) {
			t.Fatalf("container never resized, got %v", svc.State().Container)
		}
		time.Sleep(5 * time.Millisecond)
	}
	last, _ := emitter.Last(service.EventContainerResized)
	if last.Data.(domain.Size).Height != 250 {
		t.Errorf("expected last resize event height 250, got %+v", last.Data)
	}
}

func TestEditor_CapturePhotoDataURL(t *testing.T) {
	svc, emitter := newEditor(t, nil)
	data, _ := compositor.EncodePNG(solid(64, 48, color.White))

	natural, err := svc.CapturePhoto(compositor.EncodeDataURL(data))
	if err != nil {
		t.Fatalf("CapturePhoto: %v", err)
	}
	if natural.Width != 64 || natural.Height != 48 {
		t.Errorf("expected 64x48, got %v", natural)
	}
	if _, ok := emitter.Last(service.EventPhotoCaptured); !ok {
		t.Error("expected a photo:captured event")
	}
	if _, err := svc.CapturePhoto("garbage"); err == nil {
		t.Error("expected an error for a malformed data URL")
	}
}

// ─────────────────────────────────────────────────────────────
// Export
// ─────────────────────────────────────────────────────────────

func TestEditor_ExportPreconditions(t *testing.T) {
	ctx := context.Background()

	svc, _ := newEditor(t, nil)
	if _, err := svc.Export(ctx); !errors.Is(err, service.ErrExportUnavailable) || !errors.Is(err, service.ErrNoPhoto) {
		t.Errorf("expected unavailable/no photo, got %v", err)
	}

	svc.SetPhoto(solid(10, 10, color.White))
	if _, err := svc.Export(ctx); !errors.Is(err, geometry.ErrEmptyContainer) {
		t.Errorf("expected empty container, got %v", err)
	}

	svc.PhotoLoaded(100, 100)
	if _, err := svc.Export(ctx); !errors.Is(err, compositor.ErrNoItems) {
		t.Errorf("expected no items, got %v", err)
	}
	if svc.CanExport() {
		t.Error("expected CanExport false without items")
	}
}

func TestEditor_Export(t *testing.T) {
	svc, emitter := readyEditor(t, nil)
	svc.AddItem("ring1", 50, 50)
	before := svc.State()

	res, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Width != 600 || res.Height != 400 || len(res.PNG) == 0 {
		t.Errorf("unexpected result %dx%d (%d bytes)", res.Width, res.Height, len(res.PNG))
	}
	if p := res.Placements[0]; p.CenterX != 100 || p.CenterY != 100 || p.Width != 80 {
		t.Errorf("unexpected placement %+v", p)
	}
	if _, ok := emitter.Last(service.EventExportCompleted); !ok {
		t.Error("expected an export:completed event")
	}
	after := svc.State()
	if after.CanUndo != before.CanUndo || len(after.Items) != len(before.Items) {
		t.Error("expected export to leave the editor state alone")
	}
}

func TestEditor_ExportFailure(t *testing.T) {
	svc, emitter := readyEditor(t, nil)
	svc.AddItem("ring1", 50, 50)
	svc.AddItem("broken", 150, 150)
	before := svc.State()

	if _, err := svc.Export(context.Background()); err == nil {
		t.Fatal("expected export to fail")
	} else if errors.Is(err, service.ErrExportUnavailable) {
		t.Errorf("expected a runtime failure, got a precondition error: %v", err)
	}
	if _, ok := emitter.Last(service.EventExportError); !ok {
		t.Error("expected an export:error event")
	}
	after := svc.State()
	if len(after.Items) != len(before.Items) || after.CanUndo != before.CanUndo {
		t.Error("expected a failed export to leave the scene alone")
	}
	if !svc.CanExport() {
		t.Error("expected the guard to be released after a failure")
	}
}

func TestEditor_ExportSingleFlight(t *testing.T) {
	loader := &gateLoader{gate: make(chan struct{})}
	svc, _ := readyEditor(t, loader)
	svc.AddItem("ring1", 50, 50)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Export(context.Background())
		done <- err
	}()

	deadline := time.Now().Add(time.Second)
	for svc.CanExport() {
		if time.Now().After(deadline) {
			t.Fatal("first export never started")
		}
		time.Sleep(2 * time.Millisecond)
	}

	if _, err := svc.Export(context.Background()); !errors.Is(err, service.ErrExportBusy) {
		t.Errorf("expected ErrExportBusy, got %v", err)
	}

	close(loader.gate)
	if err := <-done; err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	if !svc.CanExport() {
		t.Error("expected export to be available again")
	}
}
