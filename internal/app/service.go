// Package app wires the analysis client, submission workflow, and result
// hand-off into the service a frontend (or the CLI) drives.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/swingmatch/internal/adapters/handoff"
	"github.com/okian/swingmatch/internal/domain/model"
	"github.com/okian/swingmatch/internal/domain/preview"
	"github.com/okian/swingmatch/internal/domain/submission"
	"github.com/okian/swingmatch/pkg/logger"
)

// Analyzer is the full remote-service surface the app needs.
type Analyzer interface {
	submission.Analyzer
	Health(ctx context.Context) (*model.HealthStatus, error)
}

// Service drives one submission at a time end to end: stage a video, run
// it through the workflow, and deliver the result through the mailbox the
// result view reads from.
type Service struct {
	client  Analyzer
	mailbox *handoff.Mailbox
	hand    model.Hand
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClient sets the remote analysis client. Required.
func WithClient(c Analyzer) Option {
	return func(s *Service) {
		if c != nil {
			s.client = c
		}
	}
}

// WithMailbox sets the hand-off mailbox shared with the result view.
func WithMailbox(m *handoff.Mailbox) Option {
	return func(s *Service) {
		if m != nil {
			s.mailbox = m
		}
	}
}

// WithDefaultHand sets the hand used when a submission does not pick one.
func WithDefaultHand(h model.Hand) Option {
	return func(s *Service) {
		if h.Valid() {
			s.hand = h
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service using the provided options.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		mailbox: handoff.NewMailbox(),
		hand:    model.DefaultHand(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		return nil, ErrNoClient
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}
	return s, nil
}

// Mailbox exposes the hand-off slot the result view takes from.
func (s *Service) Mailbox() *handoff.Mailbox {
	return s.mailbox
}

// HealthCheck probes the remote service.
func (s *Service) HealthCheck(ctx context.Context) (*model.HealthStatus, error) {
	return s.client.Health(ctx)
}

// AnalyzeFile submits the video at path and blocks until the attempt
// reaches a terminal state, then takes the result from the mailbox. On
// failure the returned error message is the dismissible, user-facing one.
// The caller owns the result's preview.
func (s *Service) AnalyzeFile(ctx context.Context, path string, hand model.Hand) (handoff.Result, error) {
	video, err := os.ReadFile(path)
	if err != nil {
		return handoff.Result{}, fmt.Errorf("%w: %w", ErrReadVideo, err)
	}

	if !hand.Valid() {
		hand = s.hand
	}

	w := submission.New(s.client,
		submission.WithLogger(s.logger),
		submission.WithHand(hand),
		submission.WithDelivery(func(r *model.AnalysisResponse, p *preview.Reference) {
			s.mailbox.Put(handoff.Result{Response: r, Preview: p})
		}),
	)
	defer w.Close() //nolint:errcheck

	if err := w.SelectVideo(filepath.Base(path), video); err != nil {
		return handoff.Result{}, err
	}

	done, err := w.Submit(ctx)
	if err != nil {
		return handoff.Result{}, err
	}

	select {
	case <-done:
	case <-ctx.Done():
		// Workflow teardown (the deferred Close) discards the eventual
		// outcome; nothing dangles.
		return handoff.Result{}, ctx.Err()
	}

	if w.State() == submission.Failed {
		return handoff.Result{}, errors.New(w.Failure())
	}

	res, ok := s.mailbox.Take()
	if !ok {
		return handoff.Result{}, ErrNoResult
	}
	return res, nil
}

// RenderSummary writes one analysis result to w as plain text. Charts and
// video playback belong to the frontend; this is the minimal rendering the
// CLI needs.
func (s *Service) RenderSummary(w io.Writer, res handoff.Result) {
	resp := res.Response
	fmt.Fprintf(w, "Most similar player: %s\n", resp.MostSimilarPlayer)

	fmt.Fprintln(w, "\nSimilarity:")
	for _, sim := range resp.RankedSimilarities() {
		fmt.Fprintf(w, "  %-10s %6.1f\n", sim.Player, sim.OverallSimilarity)
		for group, score := range sim.BodyGroups {
			fmt.Fprintf(w, "    %-20s %6.1f\n", group, score)
		}
	}

	if len(resp.Coaching) > 0 {
		fmt.Fprintln(w, "\nCoaching:")
		for _, tip := range resp.Coaching {
			fmt.Fprintf(w, "  [%s] %s: %s\n", tip.Type, tip.BodyPart, tip.Message)
		}
	}

	if p := resp.Phases; p != nil {
		fmt.Fprintln(w, "\nSwing phases (frames):")
		fmt.Fprintf(w, "  preparation    %d-%d\n", p.Preparation.Start(), p.Preparation.End())
		fmt.Fprintf(w, "  forward swing  %d-%d\n", p.ForwardSwing.Start(), p.ForwardSwing.End())
		fmt.Fprintf(w, "  contact        %d\n", p.Contact)
		fmt.Fprintf(w, "  follow through %d-%d\n", p.FollowThrough.Start(), p.FollowThrough.End())
		fmt.Fprintf(w, "  recovery       %d-%d\n", p.Recovery.Start(), p.Recovery.End())
	}

	if resp.ReferenceVideoURL != nil {
		fmt.Fprintf(w, "\nReference video: %s\n", *resp.ReferenceVideoURL)
	}
	if res.Preview != nil {
		fmt.Fprintf(w, "Local preview:   %s\n", res.Preview.Path())
	}
}
