package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	EventApprovalRequired  = "mcp:approval-required"
	EventApprovalDismissed = "mcp:approval-dismissed"
)

var ErrRejected = errors.New("action rejected by user")

// EventEmitter allows the approval queue to notify the frontend.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// PendingAction represents a destructive operation awaiting user approval.
type PendingAction struct {
	ID          string `json:"id"`
	Tool        string `json:"tool"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	Metadata    string `json:"metadata"` // JSON with extra context (e.g. item IDs)
}

// actionResult is sent through the channel when user approves/rejects.
type actionResult struct {
	approved bool
}

// ApprovalQueue manages human-in-the-loop approval for destructive MCP tool calls.
// Requests are announced with EventApprovalRequired and answered through
// Approve / Reject from the frontend.
type ApprovalQueue struct {
	mu          sync.Mutex
	pending     map[string]chan actionResult
	ctx         context.Context
	emitter     EventEmitter
	timeout     time.Duration
	autoApprove bool
}

func NewApprovalQueue(ctx context.Context, emitter EventEmitter) *ApprovalQueue {
	return &ApprovalQueue{
		pending: make(map[string]chan actionResult),
		ctx:     ctx,
		emitter: emitter,
		timeout: 120 * time.Second,
	}
}

// SetAutoApprove makes every request succeed immediately.
func (q *ApprovalQueue) SetAutoApprove(v bool) {
	q.mu.Lock()
	q.autoApprove = v
	q.mu.Unlock()
}

// SetTimeout changes how long a request waits for an answer.
func (q *ApprovalQueue) SetTimeout(d time.Duration) {
	q.mu.Lock()
	q.timeout = d
	q.mu.Unlock()
}

// Request sends an approval request and blocks until approved/rejected.
// metadata is optional JSON with extra context (e.g. item IDs for highlighting).
func (q *ApprovalQueue) Request(tool, description string, metadata ...string) (bool, error) {
	q.mu.Lock()
	auto, timeout := q.autoApprove, q.timeout
	q.mu.Unlock()
	if auto {
		return true, nil
	}

	id := uuid.New().String()
	meta := "{}"
	if len(metadata) > 0 && metadata[0] != "" {
		meta = metadata[0]
	}

	ch := make(chan actionResult, 1)
	q.mu.Lock()
	q.pending[id] = ch
	q.mu.Unlock()
	defer q.cleanup(id)

	q.emitter.Emit(q.ctx, EventApprovalRequired, PendingAction{
		ID:          id,
		Tool:        tool,
		Description: description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Metadata:    meta,
	})

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-ch:
		if !result.approved {
			return false, fmt.Errorf("%w: %s", ErrRejected, tool)
		}
		return true, nil
	case <-timer.C:
		q.emitter.Emit(q.ctx, EventApprovalDismissed, map[string]string{"id": id})
		return false, fmt.Errorf("action timed out after %s: %s", timeout, tool)
	case <-q.ctx.Done():
		return false, q.ctx.Err()
	}
}

// Pending returns the ids of requests still waiting for an answer.
func (q *ApprovalQueue) Pending() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := make([]string, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	return ids
}

// Approve marks a pending action as approved.
func (q *ApprovalQueue) Approve(actionID string) {
	q.resolve(actionID, true)
}

// Reject marks a pending action as rejected.
func (q *ApprovalQueue) Reject(actionID string) {
	q.resolve(actionID, false)
}

func (q *ApprovalQueue) resolve(actionID string, approved bool) {
	q.mu.Lock()
	ch, ok := q.pending[actionID]
	q.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- actionResult{approved: approved}:
	default:
	}
}

func (q *ApprovalQueue) cleanup(id string) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}
