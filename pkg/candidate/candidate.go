// Package candidate enumerates and ranks candidate points-on-lines around
// a Location Reference Point. Grounded on the teacher's pkg/routing/snap.go
// Snapper, generalized from "find the single nearest edge" to "enumerate
// and rank every edge/node within radius."
package candidate

import (
	"sort"

	"github.com/azybler/openlrdecoder/pkg/config"
	"github.com/azybler/openlrdecoder/pkg/mapref"
	"github.com/azybler/openlrdecoder/pkg/model"
	"github.com/azybler/openlrdecoder/pkg/observer"
	"github.com/azybler/openlrdecoder/pkg/scoring"
	"github.com/azybler/openlrdecoder/pkg/wgs84"
)

type dedupKey struct {
	line   model.LineID
	offset int64 // offset quantized to avoid float-equality surprises
}

const offsetQuantum = 1e9

func keyFor(lineID model.LineID, offset float64) dedupKey {
	return dedupKey{line: lineID, offset: int64(offset * offsetQuantum)}
}

// Generate enumerates, scores, filters, and ranks candidate PointOnLines
// for lrp on m, per spec §4.4. isLastLRP is passed through to the scorer's
// bearing computation. lrpIndex is only used for observer notifications.
// obs receives a notification per enumerated and per rejected candidate;
// pass observer.Noop{} for none.
func Generate(lrpIndex int, lrp model.LRP, m mapref.Map, cfg config.Config, isLastLRP bool, obs observer.Observer) []model.Candidate {
	seen := make(map[dedupKey]bool)
	var points []model.PointOnLine

	addPoint := func(l model.Line, offset float64) {
		k := keyFor(l.ID(), offset)
		if seen[k] {
			return
		}
		seen[k] = true
		points = append(points, model.PointOnLine{Line: l, RelativeOffset: offset})
	}

	// (a) line ends whose start or end node lies within radius.
	for n := range m.FindNodesCloseTo(lrp.Coordinate, cfg.SearchRadius) {
		for _, l := range n.OutgoingLines() {
			addPoint(l, 0.0)
		}
		for _, l := range n.IncomingLines() {
			addPoint(l, 1.0)
		}
	}

	// (b) perpendicular projection onto every nearby line's interior.
	for l := range m.FindLinesCloseTo(lrp.Coordinate, cfg.SearchRadius) {
		offset := projectOntoLine(lrp.Coordinate, l)
		addPoint(l, offset)
	}

	candidates := make([]model.Candidate, 0, len(points))
	for _, p := range points {
		breakdown := scoring.Score(lrp, p, cfg.Weights, cfg.SearchRadius, isLastLRP)
		c := model.Candidate{Point: p, Score: breakdown.Total}
		obs.CandidateEnumerated(lrpIndex, c)

		if c.Score < cfg.MinCandidateScore || breakdown.Geo == 0 {
			obs.CandidateRejected(lrpIndex, c, "below minimum score")
			continue
		}
		candidates = append(candidates, c)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].Point.Line.ID() != candidates[j].Point.Line.ID() {
			return candidates[i].Point.Line.ID() < candidates[j].Point.Line.ID()
		}
		return candidates[i].Point.RelativeOffset < candidates[j].Point.RelativeOffset
	})

	return candidates
}

// projectOntoLine finds the perpendicular projection of c onto l's
// polyline, walking each segment and returning the closest offset as a
// fraction of the line's total length.
func projectOntoLine(c model.Coordinate, l model.Line) float64 {
	coords := l.Coordinates()
	if len(coords) < 2 {
		return 0
	}

	bestDist := -1.0
	bestOffset := 0.0
	var travelled float64

	for i := 0; i < len(coords)-1; i++ {
		segLen := wgs84.Distance(coords[i], coords[i+1])
		dist, ratio := wgs84.ProjectPerpendicular(c, coords[i], coords[i+1])
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			if l.Length() > 0 {
				bestOffset = (travelled + ratio*segLen) / l.Length()
			}
		}
		travelled += segLen
	}

	if bestOffset < 0 {
		return 0
	}
	if bestOffset > 1 {
		return 1
	}
	return bestOffset
}
