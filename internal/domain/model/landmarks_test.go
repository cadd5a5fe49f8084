package model_test

import (
	"encoding/json"
	"testing"

	model "github.com/okian/swingmatch/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

// decodeEncode round-trips a payload through AnalysisResponse once.
func decodeEncode(payload string) (map[string]json.RawMessage, error) {
	var resp model.AnalysisResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, err
	}
	out, err := json.Marshal(&resp)
	if err != nil {
		return nil, err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(out, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

const payloadSkeleton = `{"most_similar_player": "Federer", "similarities": [], "coaching": [], "phases": {"preparation": [0, 1], "forward_swing": [1, 2], "contact": 2, "follow_through": [2, 3], "recovery": [3, 4]}`

func TestLandmarkSequenceRoundTrip(t *testing.T) {
	convey.Convey("Given a payload without a landmarks field", t, func() {
		keys, err := decodeEncode(payloadSkeleton + `}`)

		convey.Convey("Then the re-encoded payload omits the field", func() {
			convey.So(err, convey.ShouldBeNil)
			_, present := keys["landmarks"]
			convey.So(present, convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given a payload with null landmarks", t, func() {
		keys, err := decodeEncode(payloadSkeleton + `, "landmarks": null}`)

		convey.Convey("Then the re-encoded payload keeps the explicit null", func() {
			convey.So(err, convey.ShouldBeNil)
			raw, present := keys["landmarks"]
			convey.So(present, convey.ShouldBeTrue)
			convey.So(string(raw), convey.ShouldEqual, "null")
		})
	})

	convey.Convey("Given a payload with a frame list", t, func() {
		keys, err := decodeEncode(payloadSkeleton + `, "landmarks": [null, {"nose_x": 0.51, "nose_y": 0.22}, {}]}`)

		convey.Convey("Then every frame survives, including null and empty ones", func() {
			convey.So(err, convey.ShouldBeNil)
			raw, present := keys["landmarks"]
			convey.So(present, convey.ShouldBeTrue)

			var frames []map[string]float64
			convey.So(json.Unmarshal(raw, &frames), convey.ShouldBeNil)
			convey.So(len(frames), convey.ShouldEqual, 3)
			convey.So(frames[0], convey.ShouldBeNil)
			convey.So(frames[1]["nose_x"], convey.ShouldEqual, 0.51)
			convey.So(frames[2], convey.ShouldNotBeNil)
			convey.So(len(frames[2]), convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given a payload with an empty frame list", t, func() {
		keys, err := decodeEncode(payloadSkeleton + `, "landmarks": []}`)

		convey.Convey("Then the empty list is not collapsed to null", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(keys["landmarks"]), convey.ShouldEqual, "[]")
		})
	})
}

func TestLandmarkSequenceStates(t *testing.T) {
	convey.Convey("Given the three sequence states", t, func() {
		convey.Convey("Then the zero value is absent", func() {
			var s model.LandmarkSequence
			convey.So(s.IsZero(), convey.ShouldBeTrue)
			convey.So(s.Null(), convey.ShouldBeFalse)
			_, ok := s.Frames()
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Then the null constructor is present but null", func() {
			s := model.NullLandmarkSequence()
			convey.So(s.IsZero(), convey.ShouldBeFalse)
			convey.So(s.Null(), convey.ShouldBeTrue)
			_, ok := s.Frames()
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Then a nil frame slice still counts as present", func() {
			s := model.NewLandmarkSequence(nil)
			convey.So(s.IsZero(), convey.ShouldBeFalse)
			convey.So(s.Null(), convey.ShouldBeFalse)
			frames, ok := s.Frames()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(len(frames), convey.ShouldEqual, 0)

			out, err := json.Marshal(s)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(out), convey.ShouldEqual, "[]")
		})
	})
}
