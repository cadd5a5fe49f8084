package submission

import "errors"

// Sentinel kinds for workflow errors. These allow errors.Is from callers.
var (
	// ErrNoVideoSelected means submit was attempted with nothing staged.
	// UIs are expected to disable submission instead of hitting this.
	ErrNoVideoSelected = errors.New("no video selected")

	// ErrAlreadySubmitting rejects re-entrant submits; nothing is queued.
	ErrAlreadySubmitting = errors.New("submission already in flight")

	// ErrCompleted rejects a submit after success; the result has already
	// been handed off and the workflow is done.
	ErrCompleted = errors.New("submission already completed")

	// ErrClosed rejects any operation on a torn-down workflow.
	ErrClosed = errors.New("workflow closed")
)
