package submission_test

import (
	"context"
	"errors"
	"io"
	"os"
	"sync/atomic"
	"testing"
	"time"

	analysis "github.com/okian/swingmatch/internal/adapters/analysis"
	model "github.com/okian/swingmatch/internal/domain/model"
	preview "github.com/okian/swingmatch/internal/domain/preview"
	submission "github.com/okian/swingmatch/internal/domain/submission"
	"github.com/okian/swingmatch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubAnalyzer returns a canned outcome, optionally blocking until released.
type stubAnalyzer struct {
	resp  *model.AnalysisResponse
	err   error
	block chan struct{}
	calls int32
}

func (s *stubAnalyzer) AnalyzeSwing(_ context.Context, video io.Reader, _ string, _ model.Hand) (*model.AnalysisResponse, error) {
	atomic.AddInt32(&s.calls, 1)
	_, _ = io.ReadAll(video)
	if s.block != nil {
		<-s.block
	}
	return s.resp, s.err
}

func sampleResponse() *model.AnalysisResponse {
	url := "https://example.com/references/Federer"
	return &model.AnalysisResponse{
		MostSimilarPlayer: "Federer",
		Similarities: []model.PlayerSimilarity{
			{Player: "Federer", OverallSimilarity: 0.92, BodyGroups: map[string]float64{"arm": 0.9}},
		},
		Coaching: []model.CoachingTip{
			{Type: model.TipStrength, BodyPart: "hip", Message: "Good rotation"},
		},
		Phases: &model.SwingPhases{
			Preparation:   model.PhaseSpan{0, 1},
			ForwardSwing:  model.PhaseSpan{1, 2},
			Contact:       2,
			FollowThrough: model.PhaseSpan{2, 3},
			Recovery:      model.PhaseSpan{3, 4},
		},
		Landmarks:         model.NullLandmarkSequence(),
		ReferenceVideoURL: &url,
	}
}

func waitDone(done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

func TestSubmitSuccess(t *testing.T) {
	ctx := context.Background()

	Convey("Given a workflow with a staged video", t, func() {
		resp := sampleResponse()
		stub := &stubAnalyzer{resp: resp}

		var delivered *model.AnalysisResponse
		var deliveredPreview *preview.Reference
		var terminal submission.State

		w := submission.New(stub,
			submission.WithDelivery(func(r *model.AnalysisResponse, p *preview.Reference) {
				delivered = r
				deliveredPreview = p
			}),
			submission.WithOnDone(func(s submission.State) { terminal = s }),
		)
		defer w.Close() //nolint:errcheck

		So(w.SelectVideo("forehand.mp4", []byte("fake mp4 bytes")), ShouldBeNil)
		So(w.SelectHand(model.RightHand), ShouldBeNil)
		So(w.State(), ShouldEqual, submission.Idle)

		Convey("When the submission succeeds", func() {
			done, err := w.Submit(ctx)
			So(err, ShouldBeNil)
			So(waitDone(done), ShouldBeTrue)

			Convey("Then the exact payload is retained unmodified", func() {
				So(w.State(), ShouldEqual, submission.Succeeded)
				got, ok := w.Result()
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, resp)
				So(terminal, ShouldEqual, submission.Succeeded)
			})

			Convey("And the result was handed off with a live preview", func() {
				So(delivered, ShouldEqual, resp)
				So(deliveredPreview, ShouldNotBeNil)
				data, readErr := os.ReadFile(deliveredPreview.Path())
				So(readErr, ShouldBeNil)
				So(string(data), ShouldEqual, "fake mp4 bytes")
				So(deliveredPreview.Release(), ShouldBeNil)
			})

			Convey("And submitting again is rejected", func() {
				_, err := w.Submit(ctx)
				So(errors.Is(err, submission.ErrCompleted), ShouldBeTrue)
			})
		})
	})
}

func TestSubmitFailure(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service that rejects the video", t, func() {
		stub := &stubAnalyzer{err: &analysis.TransportError{Message: "video too short", Status: 500}}
		w := submission.New(stub)
		defer w.Close() //nolint:errcheck

		So(w.SelectVideo("short.mp4", []byte("clip")), ShouldBeNil)

		Convey("When the submission fails", func() {
			done, err := w.Submit(ctx)
			So(err, ShouldBeNil)
			So(waitDone(done), ShouldBeTrue)

			Convey("Then the detail message is surfaced verbatim", func() {
				So(w.State(), ShouldEqual, submission.Failed)
				So(w.Failure(), ShouldEqual, "video too short")
			})

			Convey("And dismissing returns to Idle with the file retained", func() {
				So(w.Dismiss(), ShouldBeNil)
				So(w.State(), ShouldEqual, submission.Idle)
				So(w.Failure(), ShouldBeEmpty)
				name, staged := w.Selected()
				So(staged, ShouldBeTrue)
				So(name, ShouldEqual, "short.mp4")

				Convey("And the retry succeeds without re-picking the file", func() {
					stub.err = nil
					stub.resp = sampleResponse()
					done, err := w.Submit(ctx)
					So(err, ShouldBeNil)
					So(waitDone(done), ShouldBeTrue)
					So(w.State(), ShouldEqual, submission.Succeeded)
				})
			})
		})
	})
}

func TestSubmitReentry(t *testing.T) {
	ctx := context.Background()

	Convey("Given a submission in flight", t, func() {
		stub := &stubAnalyzer{resp: sampleResponse(), block: make(chan struct{})}
		w := submission.New(stub)
		defer w.Close() //nolint:errcheck

		So(w.SelectVideo("forehand.mp4", []byte("clip")), ShouldBeNil)
		done, err := w.Submit(ctx)
		So(err, ShouldBeNil)
		So(w.State(), ShouldEqual, submission.Submitting)

		Convey("When submitting again while Submitting", func() {
			_, err := w.Submit(ctx)

			Convey("Then it is rejected without a second request", func() {
				So(errors.Is(err, submission.ErrAlreadySubmitting), ShouldBeTrue)

				close(stub.block)
				So(waitDone(done), ShouldBeTrue)
				So(atomic.LoadInt32(&stub.calls), ShouldEqual, 1)
				So(w.State(), ShouldEqual, submission.Succeeded)
			})
		})

		Convey("When changing the selection while Submitting", func() {
			err := w.SelectVideo("other.mp4", []byte("other"))
			handErr := w.SelectHand(model.LeftHand)

			Convey("Then both are rejected", func() {
				So(errors.Is(err, submission.ErrAlreadySubmitting), ShouldBeTrue)
				So(errors.Is(handErr, submission.ErrAlreadySubmitting), ShouldBeTrue)

				close(stub.block)
				So(waitDone(done), ShouldBeTrue)
			})
		})
	})
}

func TestSubmitWithoutVideo(t *testing.T) {
	Convey("Given a workflow with nothing staged", t, func() {
		w := submission.New(&stubAnalyzer{})
		defer w.Close() //nolint:errcheck

		Convey("When submitting", func() {
			_, err := w.Submit(context.Background())

			Convey("Then it is rejected with ErrNoVideoSelected", func() {
				So(errors.Is(err, submission.ErrNoVideoSelected), ShouldBeTrue)
				So(w.State(), ShouldEqual, submission.Idle)
			})
		})
	})
}

func TestCloseDiscardsInFlightResult(t *testing.T) {
	ctx := context.Background()

	Convey("Given a submission in flight", t, func() {
		stub := &stubAnalyzer{resp: sampleResponse(), block: make(chan struct{})}

		var deliveries int32
		var callbacks int32
		w := submission.New(stub,
			submission.WithDelivery(func(_ *model.AnalysisResponse, p *preview.Reference) {
				atomic.AddInt32(&deliveries, 1)
				if p != nil {
					_ = p.Release()
				}
			}),
			submission.WithOnDone(func(submission.State) { atomic.AddInt32(&callbacks, 1) }),
		)

		So(w.SelectVideo("forehand.mp4", []byte("clip")), ShouldBeNil)
		done, err := w.Submit(ctx)
		So(err, ShouldBeNil)

		Convey("When the workflow is torn down before the response arrives", func() {
			So(w.Close(), ShouldBeNil)
			close(stub.block)
			So(waitDone(done), ShouldBeTrue)

			Convey("Then the result is discarded without mutating anything", func() {
				_, ok := w.Result()
				So(ok, ShouldBeFalse)
				So(atomic.LoadInt32(&deliveries), ShouldEqual, 0)
				So(atomic.LoadInt32(&callbacks), ShouldEqual, 0)
			})

			Convey("And every later operation reports the closed workflow", func() {
				So(errors.Is(w.SelectVideo("x.mp4", []byte("x")), submission.ErrClosed), ShouldBeTrue)
				So(errors.Is(w.Dismiss(), submission.ErrClosed), ShouldBeTrue)
				_, err := w.Submit(ctx)
				So(errors.Is(err, submission.ErrClosed), ShouldBeTrue)
				So(w.Close(), ShouldBeNil)
			})
		})
	})
}

func TestSelectHandValidation(t *testing.T) {
	Convey("Given an idle workflow", t, func() {
		w := submission.New(&stubAnalyzer{})
		defer w.Close() //nolint:errcheck

		Convey("Then only real hands are accepted", func() {
			So(w.SelectHand(model.LeftHand), ShouldBeNil)
			So(errors.Is(w.SelectHand(model.Hand("both")), model.ErrInvalidHand), ShouldBeTrue)
		})
	})
}
