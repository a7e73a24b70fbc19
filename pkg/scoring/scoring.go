// Package scoring computes the similarity score between a Location
// Reference Point and a candidate point-on-line. The score is a weighted
// sum of four sub-scores — form-of-way, functional road class, geography,
// and bearing — each in [0,1].
package scoring

import (
	"math"

	"github.com/azybler/openlrdecoder/pkg/model"
	"github.com/azybler/openlrdecoder/pkg/wgs84"
)

// BearDist is the metric distance, in meters, a point is projected forward
// along the candidate's direction of travel before computing its bearing.
const BearDist = 20.0

// Weights are the four sub-score weights. They must sum to 1.
type Weights struct {
	FOW     float64
	FRC     float64
	Geo     float64
	Bearing float64
}

// DefaultWeights splits the score evenly across all four sub-scores.
func DefaultWeights() Weights {
	return Weights{FOW: 0.25, FRC: 0.25, Geo: 0.25, Bearing: 0.25}
}

// fowStandIn[wanted][actual] scores how well a candidate's form-of-way
// stands in for the LRP's expected form-of-way. Reproduced verbatim from
// the OpenLR reference scoring table; row/column order matches model.FOW's
// iota order (Undefined, Motorway, MultipleCarriageway, SingleCarriageway,
// Roundabout, TrafficSquare, Sliproad, Other).
var fowStandIn = [8][8]float64{
	{0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50}, // Undefined
	{0.50, 1.00, 0.75, 0.00, 0.00, 0.00, 0.00, 0.00}, // Motorway
	{0.50, 0.75, 1.00, 0.75, 0.50, 0.00, 0.00, 0.00}, // MultipleCarriageway
	{0.50, 0.00, 0.75, 1.00, 0.50, 0.50, 0.00, 0.00}, // SingleCarriageway
	{0.50, 0.00, 0.50, 0.50, 1.00, 0.50, 0.00, 0.00}, // Roundabout
	{0.50, 0.00, 0.00, 0.50, 0.50, 1.00, 0.00, 0.00}, // TrafficSquare
	{0.50, 0.00, 0.00, 0.00, 0.00, 0.00, 1.00, 0.00}, // Sliproad
	{0.50, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 1.00}, // Other
}

// ScoreFOW returns the form-of-way sub-score for a candidate whose form of
// way is actual, given the LRP expected wanted.
func ScoreFOW(wanted, actual model.FOW) float64 {
	return fowStandIn[wanted][actual]
}

// ScoreFRC returns the functional-road-class sub-score, clamped to [0,1].
func ScoreFRC(wanted, actual model.FRC) float64 {
	diff := actual - wanted
	if diff < 0 {
		diff = -diff
	}
	score := 1.0 - float64(diff)/7.0
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// ScoreGeo returns the geographic sub-score: 1.0 at zero distance, linearly
// decreasing to 0.0 at radius meters or more.
func ScoreGeo(wanted model.Coordinate, actual model.Coordinate, radius float64) float64 {
	dist := wgs84.Distance(wanted, actual)
	if dist < radius {
		return 1.0 - dist/radius
	}
	return 0.0
}

// ScoreAngleDifference scores the similarity of two angles in degrees:
// 1.0 when equal, 0.0 when 180° apart, symmetric modulo 360°.
func ScoreAngleDifference(a, b float64) float64 {
	diff := math.Mod(math.Abs(a-b)+180, 360) - 180
	return 1 - math.Abs(diff)/180
}

// ScoreBearing scores the difference between the LRP's expected bearing and
// the candidate's actual bearing, probed BearDist meters forward along the
// candidate's direction of travel. isLastLRP selects the reversed
// before-split polyline (the last LRP looks backward along its approach).
func ScoreBearing(wanted model.LRP, actual model.PointOnLine, isLastLRP bool) float64 {
	before, after := actual.Split()

	var coords []model.Coordinate
	if isLastLRP {
		if before == nil {
			return 0.0
		}
		coords = reversed(before)
	} else {
		if after == nil {
			return 0.0
		}
		coords = after
	}

	bearingPoint := wgs84.ProjectAlongPath(coords, BearDist)
	bear := wgs84.Bearing(actual.Position(), bearingPoint) * 180 / math.Pi
	return ScoreAngleDifference(wanted.Bearing, bear)
}

func reversed(coords []model.Coordinate) []model.Coordinate {
	out := make([]model.Coordinate, len(coords))
	for i, c := range coords {
		out[len(coords)-1-i] = c
	}
	return out
}

// Breakdown is the per-component result of scoring one candidate.
type Breakdown struct {
	FOW     float64
	FRC     float64
	Geo     float64
	Bearing float64
	Total   float64
}

// Score scores candidate against wanted using the four sub-scores weighted
// by w. isLastLRP is passed through to the bearing (and, per an open
// question preserved from the source implementation, not to the geographic
// sub-score) computation only.
func Score(wanted model.LRP, candidate model.PointOnLine, w Weights, radius float64, isLastLRP bool) Breakdown {
	b := Breakdown{
		FOW:     ScoreFOW(wanted.FOW, candidate.Line.FOW()),
		FRC:     ScoreFRC(wanted.FRC, candidate.Line.FRC()),
		Geo:     ScoreGeo(wanted.Coordinate, candidate.Position(), radius),
		Bearing: ScoreBearing(wanted, candidate, isLastLRP),
	}
	b.Total = w.FOW*b.FOW + w.FRC*b.FRC + w.Geo*b.Geo + w.Bearing*b.Bearing
	return b
}
