package model

import "encoding/json"

// FrameLandmarks maps a landmark name to its value for one video frame.
// A nil map stands for a frame the pose detector could not analyze and
// round-trips as JSON null.
type FrameLandmarks map[string]float64

// landmarkState tracks which of the three payload shapes the sequence
// decoded from: the field was missing, the field was null, or the field
// carried a frame list.
type landmarkState uint8

const (
	landmarksAbsent landmarkState = iota
	landmarksNull
	landmarksPresent
)

// LandmarkSequence holds per-frame landmark data with full three-state
// fidelity: the whole sequence may be absent from the payload, present but
// null, or present with one entry per analyzed frame (each of which may
// itself be null). One decode/encode round trip preserves all three states,
// which is why this is a distinct type rather than a nullable slice.
//
// The zero value is the absent state; combined with the omitzero tag on
// AnalysisResponse.Landmarks, a missing field stays missing on re-encode.
type LandmarkSequence struct {
	state  landmarkState
	frames []FrameLandmarks
}

// NewLandmarkSequence builds a present sequence from frames.
func NewLandmarkSequence(frames []FrameLandmarks) LandmarkSequence {
	if frames == nil {
		frames = []FrameLandmarks{}
	}
	return LandmarkSequence{state: landmarksPresent, frames: frames}
}

// NullLandmarkSequence builds the present-but-null state.
func NullLandmarkSequence() LandmarkSequence {
	return LandmarkSequence{state: landmarksNull}
}

// IsZero reports the absent state. encoding/json consults it for omitzero.
func (s LandmarkSequence) IsZero() bool { return s.state == landmarksAbsent }

// Null reports the present-but-null state.
func (s LandmarkSequence) Null() bool { return s.state == landmarksNull }

// Frames returns the frame list and whether frame data is present at all.
func (s LandmarkSequence) Frames() ([]FrameLandmarks, bool) {
	if s.state != landmarksPresent {
		return nil, false
	}
	return s.frames, true
}

// MarshalJSON emits null for the null (and absent, when not omitted)
// states and the frame list otherwise. Nil frames marshal as null
// elements via the map's default encoding.
func (s LandmarkSequence) MarshalJSON() ([]byte, error) {
	if s.state != landmarksPresent {
		return []byte("null"), nil
	}
	return json.Marshal(s.frames)
}

// UnmarshalJSON distinguishes null from a frame list. It is only invoked
// when the field is present, so the absent state never reaches it.
func (s *LandmarkSequence) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = NullLandmarkSequence()
		return nil
	}
	var frames []FrameLandmarks
	if err := json.Unmarshal(data, &frames); err != nil {
		return err
	}
	*s = NewLandmarkSequence(frames)
	return nil
}
