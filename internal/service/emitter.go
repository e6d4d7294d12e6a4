package service

import (
	"context"
	"sync"
)

// ─────────────────────────────────────────────────────────────
// EventEmitter — decouples services from wailsRuntime
// ─────────────────────────────────────────────────────────────

// Events emitted to the frontend.
const (
	EventSceneChanged     = "scene:changed"
	EventSelectionChanged = "selection:changed"
	EventContainerResized = "container:resized"
	EventPhotoCaptured    = "photo:captured"
	EventCatalogUpdated   = "catalog:updated"
	EventExportCompleted  = "export:completed"
	EventExportError      = "export:error"
)

// EventEmitter is an interface for emitting events to the frontend.
// The app package implements this by delegating to wailsRuntime.EventsEmit.
// Services receive this interface instead of a wailsRuntime context,
// which makes them independently testable with a mock emitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// NoopEmitter drops every event. Used in headless mode.
type NoopEmitter struct{}

func (NoopEmitter) Emit(context.Context, string, any) {}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	mu     sync.Mutex
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// Named returns the recorded events with the given name, oldest first.
func (m *MockEmitter) Named(event string) []EmittedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []EmittedEvent
	for _, e := range m.Events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// Last returns the most recent event with the given name.
func (m *MockEmitter) Last(event string) (EmittedEvent, bool) {
	named := m.Named(event)
	if len(named) == 0 {
		return EmittedEvent{}, false
	}
	return named[len(named)-1], true
}
