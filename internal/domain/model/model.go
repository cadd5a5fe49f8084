// Package model contains the analysis contract shared with the remote
// swing-analysis service. Field names mirror the service's JSON schema
// for /api/analyze and /api/health.
package model

import (
	"fmt"
	"sort"
)

// Hand is the player's dominant hand for a submission.
type Hand string

// Supported hand preferences.
const (
	RightHand Hand = "right"
	LeftHand  Hand = "left"
)

// DefaultHand is the hand used when the caller never picked one.
func DefaultHand() Hand { return RightHand }

// Valid reports whether h is a supported hand preference.
func (h Hand) Valid() bool {
	return h == RightHand || h == LeftHand
}

// PlayerSimilarity scores one reference player against the submitted swing.
// BodyGroups maps a body-group name (e.g. "Racket Arm") to its per-group
// similarity score. The service does not promise a score range or a sort
// order for the containing slice.
type PlayerSimilarity struct {
	Player            string             `json:"player"`
	OverallSimilarity float64            `json:"overall_similarity"`
	BodyGroups        map[string]float64 `json:"body_groups"`
}

// TipKind discriminates coaching tips.
type TipKind string

// Coaching tip kinds.
const (
	TipStrength    TipKind = "strength"
	TipImprovement TipKind = "improvement"
)

// Valid reports whether k is a known tip kind.
func (k TipKind) Valid() bool {
	return k == TipStrength || k == TipImprovement
}

// CoachingTip is one piece of feedback about a body part. Slice order is
// presentation order only.
type CoachingTip struct {
	Type     TipKind `json:"type"`
	BodyPart string  `json:"body_part"`
	Message  string  `json:"message"`
}

// PhaseSpan is a [start, end] frame interval within the swing.
type PhaseSpan [2]int

// Start returns the first frame of the span.
func (s PhaseSpan) Start() int { return s[0] }

// End returns the last frame of the span.
func (s PhaseSpan) End() int { return s[1] }

// Valid reports whether start <= end.
func (s PhaseSpan) Valid() bool { return s[0] <= s[1] }

// SwingPhases names the temporal segments of the forehand motion.
// Contact is a single frame instant, the rest are intervals.
type SwingPhases struct {
	Preparation   PhaseSpan `json:"preparation"`
	ForwardSwing  PhaseSpan `json:"forward_swing"`
	Contact       int       `json:"contact"`
	FollowThrough PhaseSpan `json:"follow_through"`
	Recovery      PhaseSpan `json:"recovery"`
}

// CheckSpans verifies start <= end for every interval.
func (p SwingPhases) CheckSpans() error {
	spans := map[string]PhaseSpan{
		"preparation":    p.Preparation,
		"forward_swing":  p.ForwardSwing,
		"follow_through": p.FollowThrough,
		"recovery":       p.Recovery,
	}
	for name, span := range spans {
		if !span.Valid() {
			return fmt.Errorf("%w: %s [%d, %d]", ErrInvalidSpan, name, span[0], span[1])
		}
	}
	return nil
}

// Validate checks the spans and additionally that contact falls within the
// forward swing or follow-through. The contact check is advisory and is not
// applied when decoding a response.
func (p SwingPhases) Validate() error {
	if err := p.CheckSpans(); err != nil {
		return err
	}
	if p.Contact < p.ForwardSwing.Start() || p.Contact > p.FollowThrough.End() {
		return fmt.Errorf("%w: contact %d outside [%d, %d]",
			ErrContactOutOfRange, p.Contact, p.ForwardSwing.Start(), p.FollowThrough.End())
	}
	return nil
}

// AnalysisResponse is the terminal artifact of a submission. It is immutable
// once decoded; nothing downstream mutates it.
type AnalysisResponse struct {
	MostSimilarPlayer string             `json:"most_similar_player"`
	Similarities      []PlayerSimilarity `json:"similarities"`
	Coaching          []CoachingTip      `json:"coaching"`
	Phases            *SwingPhases       `json:"phases"`
	Landmarks         LandmarkSequence   `json:"landmarks,omitzero"`
	ReferenceVideoURL *string            `json:"reference_video_url"`
}

// Validate rejects a decoded response that is missing a required field or
// carries an inverted phase span. Callers run it right after decoding so a
// malformed payload never escapes the client.
func (r *AnalysisResponse) Validate() error {
	if r.MostSimilarPlayer == "" {
		return fmt.Errorf("%w: most_similar_player", ErrMissingField)
	}
	if r.Similarities == nil {
		return fmt.Errorf("%w: similarities", ErrMissingField)
	}
	for i, s := range r.Similarities {
		if s.Player == "" {
			return fmt.Errorf("%w: similarities[%d].player", ErrMissingField, i)
		}
	}
	if r.Coaching == nil {
		return fmt.Errorf("%w: coaching", ErrMissingField)
	}
	for i, tip := range r.Coaching {
		if !tip.Type.Valid() {
			return fmt.Errorf("%w: coaching[%d].type %q", ErrInvalidTipKind, i, tip.Type)
		}
	}
	if r.Phases == nil {
		return fmt.Errorf("%w: phases", ErrMissingField)
	}
	return r.Phases.CheckSpans()
}

// RankedSimilarities returns a copy sorted by overall similarity, best
// first. The decoded slice keeps whatever order the service sent.
func (r *AnalysisResponse) RankedSimilarities() []PlayerSimilarity {
	ranked := make([]PlayerSimilarity, len(r.Similarities))
	copy(ranked, r.Similarities)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallSimilarity > ranked[j].OverallSimilarity
	})
	return ranked
}

// HealthStatus is the liveness probe payload from /api/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
