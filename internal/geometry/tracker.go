package geometry

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"jewelry/internal/domain"
)

// DefaultResizeDebounce coalesces bursts of resize observations.
const DefaultResizeDebounce = 100 * time.Millisecond

// Tracker holds the current rendered size of the photo container.
// Resize observations are debounced; load notifications apply immediately.
type Tracker struct {
	mu       sync.Mutex
	size     domain.Size
	pending  domain.Size
	stopped  bool
	onChange func(domain.Size)
	debounce func(f func())
}

// NewTracker creates a Tracker. onChange may be nil.
func NewTracker(wait time.Duration, onChange func(domain.Size)) *Tracker {
	if wait <= 0 {
		wait = DefaultResizeDebounce
	}
	return &Tracker{
		onChange: onChange,
		debounce: debounce.New(wait),
	}
}

// Size returns the last applied container size.
func (t *Tracker) Size() domain.Size {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

// Set applies a size immediately, e.g. when the photo finishes loading.
func (t *Tracker) Set(size domain.Size) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.pending = size
	t.mu.Unlock()
	t.apply()
}

// Observe records a resize event. Only the last observation of a burst is
// applied, once the debounce window has passed without new events.
func (t *Tracker) Observe(size domain.Size) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.pending = size
	t.mu.Unlock()
	t.debounce(t.apply)
}

// Stop drops any pending update. Later observations are ignored.
func (t *Tracker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *Tracker) apply() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	changed := t.size != t.pending
	t.size = t.pending
	size := t.size
	cb := t.onChange
	t.mu.Unlock()

	if changed && cb != nil {
		cb(size)
	}
}
