// Package interaction turns pointer and keyboard gestures into scene commits.
//
// The Controller is a two-state machine (idle, dragging). It is not safe for
// concurrent use; callers serialize access the way the UI event loop would.
package interaction

import (
	"errors"
	"math"
	"time"

	"jewelry/internal/domain"
	"jewelry/internal/geometry"
	"jewelry/internal/scene"
)

const (
	DefaultActivationDistance = 5.0
	clickSuppressWindow       = 300 * time.Millisecond
)

var (
	ErrDragActive        = errors.New("a drag session is already active")
	ErrUnknownDragSource = errors.New("drag source is neither a catalog item nor a placed item")
)

// Kind tells where a dragged item came from.
type Kind string

const (
	KindFromCatalog  Kind = "from-catalog"
	KindMovingPlaced Kind = "moving-placed"
)

// DragSession exists only between drag start and drag end/cancel.
type DragSession struct {
	ActiveID string `json:"activeId"`
	Kind     Kind   `json:"kind"`
}

// DragEnd describes the release of a drag gesture. Pointer is the release
// point in viewport coordinates; when it is nil the drop point falls back to
// Activation + Delta.
type DragEnd struct {
	OverCanvas bool          `json:"overCanvas"`
	Delta      domain.Point  `json:"delta"`
	Pointer    *domain.Point `json:"pointer,omitempty"`
	Activation *domain.Point `json:"activation,omitempty"`
	Container  domain.Rect   `json:"container"`
}

// Outcome reports what a drag end did.
type Outcome string

const (
	OutcomeNone  Outcome = "none"
	OutcomeAdded Outcome = "added"
	OutcomeMoved Outcome = "moved"
	OutcomeClick Outcome = "click"
)

// SceneStore is the history-backed scene the controller edits.
type SceneStore interface {
	Current() scene.Scene
	Commit(next scene.Scene)
	Undo() bool
	Redo() bool
	Container() domain.Size
}

// CatalogLookup resolves catalog item ids.
type CatalogLookup interface {
	Lookup(id string) (domain.CatalogItem, bool)
}

// Options configures a Controller. Zero values pick the defaults.
type Options struct {
	ActivationDistance float64
	ItemSize           float64
	NewID              func() string
	Now                func() time.Time
	// OnSelect is called with the new selection (empty = none) whenever it changes.
	OnSelect func(selected string)
}

// Controller coordinates drag sessions, selection and keyboard intents.
type Controller struct {
	store   SceneStore
	catalog CatalogLookup
	opts    Options

	session       *DragSession
	selection     string
	suppressID    string
	suppressUntil time.Time
}

// NewController creates a Controller in the idle state.
func NewController(store SceneStore, catalog CatalogLookup, opts Options) *Controller {
	if opts.ActivationDistance <= 0 {
		opts.ActivationDistance = DefaultActivationDistance
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{store: store, catalog: catalog, opts: opts}
}

// Session returns the active drag session, or nil when idle.
func (c *Controller) Session() *DragSession {
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// Selection returns the selected placed item id, or "".
func (c *Controller) Selection() string {
	return c.selection
}

// DragStart opens a drag session for a catalog item or a placed item.
// Dragging a placed item also selects it.
func (c *Controller) DragStart(id string) error {
	if c.session != nil {
		return ErrDragActive
	}
	switch {
	case c.isCatalogItem(id):
		c.session = &DragSession{ActiveID: id, Kind: KindFromCatalog}
	case c.store.Current().Contains(id):
		c.session = &DragSession{ActiveID: id, Kind: KindMovingPlaced}
		c.setSelection(id)
	default:
		return ErrUnknownDragSource
	}
	return nil
}

// DragEnd closes the session and commits the resulting placement, if any.
// A gesture that never travelled past the activation distance is a click.
func (c *Controller) DragEnd(ev DragEnd) Outcome {
	session := c.session
	c.session = nil
	if session == nil {
		return OutcomeNone
	}

	if math.Hypot(ev.Delta.X, ev.Delta.Y) <= c.opts.ActivationDistance {
		return OutcomeClick
	}
	switch session.Kind {
	case KindFromCatalog:
		if !ev.OverCanvas {
			return OutcomeNone
		}
		return c.dropFromCatalog(session.ActiveID, ev)
	case KindMovingPlaced:
		c.suppressClick(session.ActiveID)
		return c.moveBy(session.ActiveID, ev)
	}
	return OutcomeNone
}

// DragCancel abandons the session without committing.
func (c *Controller) DragCancel() {
	c.session = nil
}

// Click handles a tap on a placed item (id) or on the canvas background ("").
// The release click on the item a real drag just ended on is ignored; any
// other click goes through and ends the suppression.
func (c *Controller) Click(id string) {
	suppressed := id != "" && id == c.suppressID && c.opts.Now().Before(c.suppressUntil)
	c.suppressID = ""
	c.suppressUntil = time.Time{}
	if suppressed {
		return
	}
	c.Select(id)
}

// Select sets the selection to a placed item, or clears it when id is
// empty. Unknown ids are ignored. It reports whether id is now selected.
func (c *Controller) Select(id string) bool {
	if id != "" && !c.store.Current().Contains(id) {
		return false
	}
	c.setSelection(id)
	return true
}

// Reset returns to idle with nothing selected. Used on retake.
func (c *Controller) Reset() {
	c.session = nil
	c.suppressID = ""
	c.suppressUntil = time.Time{}
	c.setSelection("")
}

// SyncSelection clears a selection whose item no longer exists in the
// current scene, e.g. after undoing the add that created it.
func (c *Controller) SyncSelection() {
	if c.selection != "" && !c.store.Current().Contains(c.selection) {
		c.setSelection("")
	}
}

func (c *Controller) dropFromCatalog(catalogID string, ev DragEnd) Outcome {
	item, ok := c.catalog.Lookup(catalogID)
	if !ok {
		return OutcomeNone
	}
	var drop domain.Point
	switch {
	case ev.Pointer != nil:
		drop = geometry.ClientToContainer(ev.Pointer.X, ev.Pointer.Y, ev.Container)
	case ev.Activation != nil:
		drop = geometry.ClientToContainer(ev.Activation.X+ev.Delta.X, ev.Activation.Y+ev.Delta.Y, ev.Container)
	default:
		return OutcomeNone
	}

	next, placed := scene.AddItem(c.store.Current(), item, drop.X, drop.Y, c.container(ev), scene.AddOptions{
		Size:  c.opts.ItemSize,
		NewID: c.opts.NewID,
	})
	c.store.Commit(next)
	c.setSelection(placed.ID)
	c.suppressClick(placed.ID)
	return OutcomeAdded
}

func (c *Controller) moveBy(id string, ev DragEnd) Outcome {
	cur := c.store.Current()
	if !cur.Contains(id) {
		return OutcomeNone
	}
	next := scene.MoveItem(cur, id, ev.Delta.X, ev.Delta.Y, c.container(ev))
	if next.Equal(cur) {
		return OutcomeNone
	}
	c.store.Commit(next)
	return OutcomeMoved
}

// container is the tracked container size, or the size reported with the
// drag end when nothing has been tracked yet.
func (c *Controller) container(ev DragEnd) domain.Size {
	if size := c.store.Container(); !size.Empty() {
		return size
	}
	return ev.Container.Size()
}

// suppressClick arms suppression of the release click on id.
func (c *Controller) suppressClick(id string) {
	c.suppressID = id
	c.suppressUntil = c.opts.Now().Add(clickSuppressWindow)
}

func (c *Controller) isCatalogItem(id string) bool {
	if c.catalog == nil {
		return false
	}
	_, ok := c.catalog.Lookup(id)
	return ok
}

func (c *Controller) setSelection(id string) {
	if c.selection == id {
		return
	}
	c.selection = id
	if c.opts.OnSelect != nil {
		c.opts.OnSelect(id)
	}
}
