package scoring

import (
	"math"
	"testing"

	"github.com/azybler/openlrdecoder/pkg/model"
)

func TestScoreFOWInvariants(t *testing.T) {
	for f := model.FOWUndefined; f <= model.FOWOther; f++ {
		if got := ScoreFOW(f, f); got != 1.0 {
			t.Errorf("ScoreFOW(%d,%d) = %f, want 1.0", f, f, got)
		}
	}
	for actual := model.FOWUndefined; actual <= model.FOWOther; actual++ {
		if got := ScoreFOW(model.FOWUndefined, actual); got != 0.5 {
			t.Errorf("ScoreFOW(Undefined,%d) = %f, want 0.5", actual, got)
		}
	}
	for wanted := model.FOWUndefined; wanted <= model.FOWOther; wanted++ {
		if got := ScoreFOW(wanted, model.FOWUndefined); got != 0.5 {
			t.Errorf("ScoreFOW(%d,Undefined) = %f, want 0.5", wanted, got)
		}
	}
}

func TestScoreFRC(t *testing.T) {
	if got := ScoreFRC(model.FRC3, model.FRC3); got != 1.0 {
		t.Errorf("ScoreFRC(3,3) = %f, want 1.0", got)
	}
	if got := ScoreFRC(model.FRC0, model.FRC7); got != 0.0 {
		t.Errorf("ScoreFRC(0,7) = %f, want 0.0", got)
	}
}

func TestScoreAngleDifference(t *testing.T) {
	if got := ScoreAngleDifference(45, 45); got != 1.0 {
		t.Errorf("same angle = %f, want 1.0", got)
	}
	if got := ScoreAngleDifference(0, 180); math.Abs(got) > 1e-9 {
		t.Errorf("opposite angle = %f, want 0.0", got)
	}
	a := ScoreAngleDifference(10, 200)
	b := ScoreAngleDifference(200, 10)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("not symmetric: %f vs %f", a, b)
	}
}

func TestScoreGeo(t *testing.T) {
	origin := model.Coordinate{Lon: 0, Lat: 0}
	radius := 100.0

	if got := ScoreGeo(origin, origin, radius); got != 1.0 {
		t.Errorf("zero distance = %f, want 1.0", got)
	}

	// A point beyond the radius scores 0.
	far := model.Coordinate{Lon: 0, Lat: 10} // way beyond radius
	if got := ScoreGeo(origin, far, radius); got != 0.0 {
		t.Errorf("far point = %f, want 0.0", got)
	}
}

func TestWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	sum := w.FOW + w.FRC + w.Geo + w.Bearing
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("default weights sum to %f, want 1.0", sum)
	}
}
