package submission

import (
	"github.com/okian/swingmatch/internal/domain/model"
	"github.com/okian/swingmatch/pkg/logger"
)

// Option applies a configuration option to the Workflow.
type Option func(*Workflow)

// WithLogger sets a custom logger for the workflow.
func WithLogger(l logger.Logger) Option {
	return func(w *Workflow) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDelivery sets the hand-off target invoked on the Succeeded
// transition. Without one, the workflow retains the result and releases
// the preview on Close.
func WithDelivery(d Delivery) Option {
	return func(w *Workflow) {
		if d != nil {
			w.deliver = d
		}
	}
}

// WithHand sets the initial hand preference.
func WithHand(h model.Hand) Option {
	return func(w *Workflow) {
		if h.Valid() {
			w.hand = h
		}
	}
}

// WithOnDone registers a callback invoked with the terminal state of each
// attempt, after the transition is applied.
func WithOnDone(cb func(State)) Option {
	return func(w *Workflow) {
		if cb != nil {
			w.onDone = cb
		}
	}
}
