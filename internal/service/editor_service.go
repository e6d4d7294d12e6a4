package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"jewelry/internal/compositor"
	"jewelry/internal/domain"
	"jewelry/internal/geometry"
	"jewelry/internal/interaction"
	"jewelry/internal/scene"
)

// ─────────────────────────────────────────────────────────────
// Editor Service: the photo, its scene history and exports
// ─────────────────────────────────────────────────────────────

const exportJob = "export"

var (
	// ErrExportUnavailable wraps every reason an export is refused before
	// it starts. The UI treats it as a disabled action, not a failure.
	ErrExportUnavailable  = errors.New("export unavailable")
	ErrExportBusy         = errors.New("export already in progress")
	ErrNoPhoto            = errors.New("no photo captured")
	ErrUnknownCatalogItem = errors.New("unknown catalog item")
)

// Catalog is the read side of the decoration catalog.
type Catalog interface {
	List() ([]domain.CatalogItem, error)
	Lookup(id string) (domain.CatalogItem, bool)
}

// EditorOptions configures an EditorService.
type EditorOptions struct {
	ItemSize           float64
	ActivationDistance float64
	ResizeDebounce     time.Duration
	MaxSnapshots       int
	Logger             *slog.Logger
	NewID              func() string
}

// EditorService owns one editing session. Wails calls bindings from several
// goroutines, so every method serializes on mu.
type EditorService struct {
	ctx      context.Context
	emitter  EventEmitter
	catalog  Catalog
	exporter *compositor.Exporter
	log      *slog.Logger
	itemSize float64
	newID    func() string

	mu      sync.Mutex
	photo   image.Image
	history *scene.History
	tracker *geometry.Tracker
	ctrl    *interaction.Controller
	guard   runningJobsGuard
}

// NewEditorService creates an EditorService with an empty scene and no photo.
func NewEditorService(ctx context.Context, catalog Catalog, exporter *compositor.Exporter, emitter EventEmitter, opts EditorOptions) *EditorService {
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &EditorService{
		ctx:      ctx,
		emitter:  emitter,
		catalog:  catalog,
		exporter: exporter,
		log:      logger.With("component", "editor"),
		itemSize: opts.ItemSize,
		newID:    opts.NewID,
		history:  scene.NewHistory(opts.MaxSnapshots),
	}
	s.tracker = geometry.NewTracker(opts.ResizeDebounce, func(size domain.Size) {
		s.emitter.Emit(s.ctx, EventContainerResized, size)
	})
	s.ctrl = interaction.NewController(editorStore{s}, catalog, interaction.Options{
		ActivationDistance: opts.ActivationDistance,
		ItemSize:           opts.ItemSize,
		NewID:              opts.NewID,
		OnSelect: func(id string) {
			s.emitter.Emit(s.ctx, EventSelectionChanged, map[string]string{"selection": id})
		},
	})
	return s
}

// Close drops pending resize updates and waits for a running export.
func (s *EditorService) Close(ctx context.Context) {
	s.tracker.Stop()
	s.guard.WaitAll(ctx)
}

// ── Photo lifecycle ───────────────────────────────────────

// SetPhoto starts a new session on photo. The scene and its history are
// discarded; this is not undoable.
func (s *EditorService) SetPhoto(photo image.Image) domain.Size {
	s.mu.Lock()
	s.photo = photo
	s.history.Reset()
	s.ctrl.Reset()
	natural := s.naturalSize()
	s.mu.Unlock()

	s.log.Info("photo captured", "width", natural.Width, "height", natural.Height)
	s.emitter.Emit(s.ctx, EventPhotoCaptured, natural)
	s.emitScene()
	return natural
}

// CapturePhoto decodes a captured photo data URL and starts a new session.
func (s *EditorService) CapturePhoto(dataURL string) (domain.Size, error) {
	img, err := compositor.DecodeDataURL(dataURL)
	if err != nil {
		return domain.Size{}, fmt.Errorf("capture photo: %w", err)
	}
	return s.SetPhoto(img), nil
}

// Retake discards the photo and the whole scene.
func (s *EditorService) Retake() {
	s.mu.Lock()
	s.photo = nil
	s.history.Reset()
	s.ctrl.Reset()
	s.mu.Unlock()

	s.tracker.Set(domain.Size{})
	s.log.Info("photo discarded")
	s.emitScene()
}

// PhotoLoaded records the rendered size once the photo element has loaded.
func (s *EditorService) PhotoLoaded(width, height float64) {
	s.tracker.Set(domain.Size{Width: width, Height: height})
}

// ContainerResized records a resize observation; bursts are debounced.
func (s *EditorService) ContainerResized(width, height float64) {
	s.tracker.Observe(domain.Size{Width: width, Height: height})
}

// ItemSize is the side length of newly placed items.
func (s *EditorService) ItemSize() float64 {
	return scene.AddOptions{Size: s.itemSize}.ItemSize()
}

// ── Catalog ───────────────────────────────────────────────

func (s *EditorService) Catalog() ([]domain.CatalogItem, error) {
	if s.catalog == nil {
		return []domain.CatalogItem{}, nil
	}
	return s.catalog.List()
}

// ── Drag and drop ─────────────────────────────────────────

func (s *EditorService) DragStart(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.DragStart(id)
}

func (s *EditorService) DragEnd(ev interaction.DragEnd) interaction.Outcome {
	s.mu.Lock()
	out := s.ctrl.DragEnd(ev)
	s.mu.Unlock()

	if out == interaction.OutcomeAdded || out == interaction.OutcomeMoved {
		s.emitScene()
	}
	return out
}

func (s *EditorService) DragCancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.DragCancel()
}

// Click selects a placed item, or clears the selection when id is empty.
func (s *EditorService) Click(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Click(id)
}

// ── Keyboard and toolbar ──────────────────────────────────

// HandleKey decodes a key press and applies it. It reports whether the key
// was bound.
func (s *EditorService) HandleKey(key string, ctrl, meta, shift bool) bool {
	intent, ok := interaction.ParseKey(key, ctrl, meta, shift)
	if !ok {
		return false
	}
	s.Apply(intent)
	return true
}

// Apply runs an intent against the selection. It reports whether the scene changed.
func (s *EditorService) Apply(intent interaction.Intent) bool {
	s.mu.Lock()
	changed := s.ctrl.Apply(intent)
	s.mu.Unlock()

	if changed {
		s.log.Debug("intent applied", "intent", intent)
		s.emitScene()
	}
	return changed
}

// ── Direct operations (agents, tests) ─────────────────────

// Select selects a placed item by id, or clears the selection for "".
// Unknown ids are ignored.
func (s *EditorService) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Select(id)
}

// AddItem places a catalog item centred on (x, y) in container space and selects it.
func (s *EditorService) AddItem(catalogID string, x, y float64) (domain.PlacedItem, error) {
	if s.catalog == nil {
		return domain.PlacedItem{}, ErrUnknownCatalogItem
	}
	item, ok := s.catalog.Lookup(catalogID)
	if !ok {
		return domain.PlacedItem{}, fmt.Errorf("%w: %s", ErrUnknownCatalogItem, catalogID)
	}

	s.mu.Lock()
	next, placed := scene.AddItem(s.history.Current(), item, x, y, s.tracker.Size(), scene.AddOptions{
		Size:  s.itemSize,
		NewID: s.newID,
	})
	s.history.Commit(next)
	s.ctrl.Select(placed.ID)
	s.mu.Unlock()

	s.emitScene()
	return placed, nil
}

func (s *EditorService) MoveItem(id string, dx, dy float64) bool {
	return s.commitIf(func(cur scene.Scene) scene.Scene {
		return scene.MoveItem(cur, id, dx, dy, s.tracker.Size())
	})
}

func (s *EditorService) RotateItem(id string, direction int) bool {
	return s.commitIf(func(cur scene.Scene) scene.Scene {
		return scene.RotateItem(cur, id, direction)
	})
}

func (s *EditorService) ResizeItem(id string, delta float64) bool {
	return s.commitIf(func(cur scene.Scene) scene.Scene {
		return scene.ResizeItem(cur, id, delta)
	})
}

func (s *EditorService) RemoveItem(id string) bool {
	return s.commitIf(func(cur scene.Scene) scene.Scene {
		next, _ := scene.RemoveItem(cur, id)
		return next
	})
}

// commitIf commits op's result when it differs from the current scene.
func (s *EditorService) commitIf(op func(scene.Scene) scene.Scene) bool {
	s.mu.Lock()
	cur := s.history.Current()
	next := op(cur)
	changed := !next.Equal(cur)
	if changed {
		s.history.Commit(next)
		s.ctrl.SyncSelection()
	}
	s.mu.Unlock()

	if changed {
		s.emitScene()
	}
	return changed
}

// ── State ─────────────────────────────────────────────────

// State returns everything the frontend needs to render the editor.
func (s *EditorService) State() domain.SceneState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// CanExport reports whether an export request would be accepted now.
func (s *EditorService) CanExport() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportPrecondition() == nil
}

func (s *EditorService) stateLocked() domain.SceneState {
	return domain.SceneState{
		Items:     s.history.Current().Items(),
		Selection: s.ctrl.Selection(),
		CanUndo:   s.history.CanUndo(),
		CanRedo:   s.history.CanRedo(),
		CanExport: s.exportPrecondition() == nil,
		Container: s.tracker.Size(),
		Natural:   s.naturalSize(),
	}
}

func (s *EditorService) naturalSize() domain.Size {
	if s.photo == nil {
		return domain.Size{}
	}
	b := s.photo.Bounds()
	return domain.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (s *EditorService) emitScene() {
	s.emitter.Emit(s.ctx, EventSceneChanged, s.State())
}

// ── Export ────────────────────────────────────────────────

// exportPrecondition must be called with mu held.
func (s *EditorService) exportPrecondition() error {
	switch {
	case s.photo == nil:
		return fmt.Errorf("%w: %w", ErrExportUnavailable, ErrNoPhoto)
	case s.tracker.Size().Empty():
		return fmt.Errorf("%w: %w", ErrExportUnavailable, geometry.ErrEmptyContainer)
	case len(s.history.Current()) == 0:
		return fmt.Errorf("%w: %w", ErrExportUnavailable, compositor.ErrNoItems)
	case s.guard.Running(exportJob):
		return fmt.Errorf("%w: %w", ErrExportUnavailable, ErrExportBusy)
	}
	return nil
}

// Export renders the current scene at the photo's natural resolution.
// Refused requests return an error wrapping ErrExportUnavailable. A runtime
// failure is reported through EventExportError; the scene is never touched.
func (s *EditorService) Export(ctx context.Context) (*compositor.Result, error) {
	s.mu.Lock()
	if err := s.exportPrecondition(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if !s.guard.TryLock(exportJob) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrExportUnavailable, ErrExportBusy)
	}
	req := compositor.Request{
		Photo:     s.photo,
		Scene:     s.history.Current(),
		Container: s.tracker.Size(),
	}
	s.mu.Unlock()
	defer s.guard.Unlock(exportJob)

	res, err := s.exporter.Export(ctx, req)
	if err != nil {
		s.log.Error("export failed", "err", err)
		s.emitter.Emit(s.ctx, EventExportError, map[string]string{"message": err.Error()})
		return nil, fmt.Errorf("export: %w", err)
	}
	s.emitter.Emit(s.ctx, EventExportCompleted, map[string]any{
		"filename": res.Filename,
		"width":    res.Width,
		"height":   res.Height,
	})
	return res, nil
}

// ── SceneStore adapter ────────────────────────────────────

// editorStore exposes the history to the interaction controller. Its
// methods run with mu already held.
type editorStore struct{ s *EditorService }

func (e editorStore) Current() scene.Scene { return e.s.history.Current() }
func (e editorStore) Commit(next scene.Scene) { e.s.history.Commit(next) }
func (e editorStore) Undo() bool { return e.s.history.Undo() }
func (e editorStore) Redo() bool { return e.s.history.Redo() }
func (e editorStore) Container() domain.Size { return e.s.tracker.Size() }
