// Package handoff carries a completed analysis from the submission flow to
// the result-rendering flow. The transfer is navigation-scoped: one Put,
// at most one Take, nothing durable behind it. A result view entered with
// nothing pending gets an explicit absent signal, never a crash.
package handoff

import (
	"sync"

	"github.com/okian/swingmatch/internal/domain/model"
	"github.com/okian/swingmatch/internal/domain/preview"
	"github.com/okian/swingmatch/pkg/metrics"
)

// Result is the payload handed from submission to rendering: the immutable
// analysis response plus the local preview of the submitted video. Whoever
// takes it owns the preview and must Release it when done.
type Result struct {
	Response *model.AnalysisResponse
	Preview  *preview.Reference
}

// Mailbox is a capacity-one, take-once transfer slot.
type Mailbox struct {
	mu      sync.Mutex
	pending *Result
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Put deposits a result, replacing any undelivered one. The replaced
// result's preview is released immediately since no view can reach it
// anymore.
func (m *Mailbox) Put(r Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != nil && m.pending.Preview != nil {
		_ = m.pending.Preview.Release()
	}
	m.pending = &r
}

// Take removes and returns the pending result. The second return is false
// when nothing is pending — a direct link, refresh, or back-button replay —
// and the caller renders its fallback state.
func (m *Mailbox) Take() (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		metrics.RecordHandoffMissed()
		return Result{}, false
	}
	r := *m.pending
	m.pending = nil
	metrics.RecordHandoffDelivered()
	return r, true
}

// Pending reports whether a result is waiting without consuming it.
func (m *Mailbox) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil
}

// Clear drops any undelivered result, releasing its preview. Used on
// teardown of the owning view.
func (m *Mailbox) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != nil && m.pending.Preview != nil {
		_ = m.pending.Preview.Release()
	}
	m.pending = nil
}
