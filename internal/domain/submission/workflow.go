// Package submission drives one video through the remote analysis service
// and owns the pending/success/failure state of that attempt. A Workflow is
// the sole writer to its state: callers observe it, the single in-flight
// request mutates it, and teardown discards whatever is still in flight.
package submission

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/swingmatch/internal/domain/model"
	"github.com/okian/swingmatch/internal/domain/preview"
	"github.com/okian/swingmatch/pkg/logger"
	"github.com/okian/swingmatch/pkg/metrics"
)

// State is the workflow's position in idle -> submitting -> succeeded|failed.
type State uint8

// Workflow states.
const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

// String returns the state name for logs and errors.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Analyzer abstracts the remote analysis client.
type Analyzer interface {
	AnalyzeSwing(ctx context.Context, video io.Reader, filename string, hand model.Hand) (*model.AnalysisResponse, error)
}

// Delivery receives the completed result and the local preview the moment
// the workflow reaches Succeeded. Ownership of the preview moves with the
// call; the receiver must eventually Release it.
type Delivery func(*model.AnalysisResponse, *preview.Reference)

// Workflow is a single-submission state machine. All methods are safe for
// concurrent use, but the model is cooperative: one in-flight request at a
// time, re-entrant submits rejected rather than queued.
type Workflow struct {
	mu sync.Mutex

	state     State
	videoName string
	video     []byte
	hand      model.Hand
	failure   string
	response  *model.AnalysisResponse
	retained  *preview.Reference

	// generation invalidates in-flight completions after Close or a
	// later submit, so a late result never mutates newer state.
	generation uint64
	closed     bool

	analyzer Analyzer
	deliver  Delivery
	onDone   func(State)
	logger   logger.Logger
}

// New creates a workflow around the given analyzer.
func New(analyzer Analyzer, opts ...Option) *Workflow {
	w := &Workflow{
		state:    Idle,
		hand:     model.DefaultHand(),
		analyzer: analyzer,
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named("submission")
	}
	return w
}

// SelectVideo stages the video for the next submit. Selection is rejected
// while a request is in flight.
func (w *Workflow) SelectVideo(name string, video []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.closed:
		return ErrClosed
	case w.state == Submitting:
		return ErrAlreadySubmitting
	}
	w.videoName = name
	w.video = video
	return nil
}

// SelectHand stages the hand preference for the next submit.
func (w *Workflow) SelectHand(h model.Hand) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.closed:
		return ErrClosed
	case w.state == Submitting:
		return ErrAlreadySubmitting
	case !h.Valid():
		return model.ErrInvalidHand
	}
	w.hand = h
	return nil
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Selected returns the staged video name and whether one is staged.
func (w *Workflow) Selected() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.videoName, len(w.video) > 0
}

// Failure returns the user-facing message of the last failure, or "".
func (w *Workflow) Failure() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failure
}

// Result returns the analysis response after a successful submit.
func (w *Workflow) Result() (*model.AnalysisResponse, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.response, w.state == Succeeded
}

// Submit sends the staged video for analysis. It is the workflow's only
// suspension point: the request runs on its own goroutine and the returned
// channel closes when the attempt reaches a terminal state (or its result
// is discarded). Submitting while Submitting has no effect beyond the
// error; nothing is queued.
func (w *Workflow) Submit(ctx context.Context) (<-chan struct{}, error) {
	w.mu.Lock()

	switch {
	case w.closed:
		w.mu.Unlock()
		return nil, ErrClosed
	case w.state == Submitting:
		w.mu.Unlock()
		return nil, ErrAlreadySubmitting
	case w.state == Succeeded:
		w.mu.Unlock()
		return nil, ErrCompleted
	case len(w.video) == 0:
		w.mu.Unlock()
		return nil, ErrNoVideoSelected
	}

	attemptID := uuid.NewString()
	w.state = Submitting
	w.failure = ""
	gen := w.generation
	name, video, hand := w.videoName, w.video, w.hand
	done := make(chan struct{})
	w.mu.Unlock()

	metrics.RecordSubmissionStarted()
	w.logger.Info(ctx, "submitting swing for analysis",
		logger.String("attempt", attemptID),
		logger.String("video", name),
		logger.String("hand", string(hand)),
	)

	go func() {
		resp, err := w.analyzer.AnalyzeSwing(ctx, bytes.NewReader(video), name, hand)
		w.complete(ctx, gen, attemptID, resp, err)
		close(done)
	}()

	return done, nil
}

// complete applies the outcome of one attempt, unless the workflow moved
// on (closed or re-submitted) in the meantime — then the outcome is
// dropped without touching state.
func (w *Workflow) complete(ctx context.Context, gen uint64, attemptID string, resp *model.AnalysisResponse, err error) {
	w.mu.Lock()

	if w.closed || gen != w.generation {
		w.mu.Unlock()
		metrics.RecordSubmissionDiscarded()
		w.logger.Debug(ctx, "discarding result of torn-down submission",
			logger.String("attempt", attemptID),
		)
		return
	}

	var next State
	if err != nil {
		// TransportError.Error() is the user-facing message.
		w.state = Failed
		w.failure = err.Error()
		next = Failed
		metrics.RecordSubmissionFailed()
		w.logger.Warn(ctx, "submission failed",
			logger.String("attempt", attemptID),
			logger.String("message", w.failure),
		)
	} else {
		pv, perr := preview.New(w.videoName, bytes.NewReader(w.video))
		if perr != nil {
			// The analysis still succeeded; the result view just has no
			// local clip to play back.
			pv = nil
			w.logger.Warn(ctx, "preview creation failed",
				logger.String("attempt", attemptID),
				logger.Error(perr),
			)
		}

		w.state = Succeeded
		w.response = resp
		if w.deliver != nil {
			// Ownership of the preview moves with the transition.
			w.deliver(resp, pv)
		} else {
			w.retained = pv
		}
		next = Succeeded
		metrics.RecordSubmissionSucceeded()
		w.logger.Info(ctx, "submission succeeded",
			logger.String("attempt", attemptID),
			logger.String("most_similar", resp.MostSimilarPlayer),
		)
	}

	cb := w.onDone
	w.mu.Unlock()

	if cb != nil {
		cb(next)
	}
}

// Dismiss acknowledges a failure and returns to Idle. The staged video and
// hand stay selected so the user can retry without re-picking the file.
// Dismissing any other state is a no-op.
func (w *Workflow) Dismiss() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.state == Failed {
		w.state = Idle
		w.failure = ""
	}
	return nil
}

// Close tears the workflow down. Any in-flight request keeps running but
// its eventual outcome is discarded; a retained, undelivered preview is
// released. Closing twice is a no-op.
func (w *Workflow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	w.generation++

	if w.retained != nil {
		_ = w.retained.Release()
		w.retained = nil
	}
	return nil
}
