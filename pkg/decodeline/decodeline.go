// Package decodeline orchestrates the full line-location decode: building
// candidate lists per LRP, searching for an admissible route between every
// adjacent pair, backtracking on failure, concatenating the accepted
// routes, and trimming the result by the reference's positive/negative
// offsets. Grounded on the teacher's pkg/ch/contractor.go explicit-stack
// iteration discipline and pkg/routing/unpack.go's explicit (not
// recursive) path-walking style, applied here to backtracking instead of
// shortcut expansion.
package decodeline

import (
	"context"

	"github.com/azybler/openlrdecoder/pkg/candidate"
	"github.com/azybler/openlrdecoder/pkg/config"
	"github.com/azybler/openlrdecoder/pkg/mapref"
	"github.com/azybler/openlrdecoder/pkg/model"
	"github.com/azybler/openlrdecoder/pkg/observer"
	"github.com/azybler/openlrdecoder/pkg/openlr"
	"github.com/azybler/openlrdecoder/pkg/pathsearch"
	"github.com/azybler/openlrdecoder/pkg/pointproj"
)

// Decode resolves ref against m, returning the concatenated and
// offset-trimmed line location.
func Decode(ctx context.Context, ref openlr.LineLocationRef, m mapref.Map, cfg config.Config, obs observer.Observer) (model.LineLocation, error) {
	if obs == nil {
		obs = observer.Noop{}
	}

	n := len(ref.LRPs)
	if n < 2 {
		err := newError(InvalidReference, 0, 0, 0, "line location requires at least 2 LRPs", nil)
		obs.DecodeFailed(err)
		return model.LineLocation{}, err
	}
	if ref.PositiveOffset+ref.NegativeOffset >= 1.0 {
		err := newError(EmptyLocation, 0, 0, 0, "positive+negative offsets consume the entire route", nil)
		obs.DecodeFailed(err)
		return model.LineLocation{}, err
	}

	total, err := BuildRoute(ctx, ref.LRPs, m, cfg, obs)
	if err != nil {
		obs.DecodeFailed(err)
		return model.LineLocation{}, err
	}

	loc, err := trim(total, ref.PositiveOffset, ref.NegativeOffset)
	if err != nil {
		obs.DecodeFailed(err)
		return model.LineLocation{}, err
	}

	obs.DecodeSucceeded(loc)
	return loc, nil
}

// BuildRoute resolves the chain of LRPs into one glued Route, without
// trimming: per-LRP candidate generation, DFS-with-backtracking route
// search between every adjacent pair (§4.6 steps 1-4), and concatenation.
// Used by Decode for line locations, and directly by pkg/decode for
// point-along-line and POI-with-access-point locations, which apply their
// own offset math instead of the p/q trim of step 5.
func BuildRoute(ctx context.Context, lrps []model.LRP, m mapref.Map, cfg config.Config, obs observer.Observer) (model.Route, error) {
	if obs == nil {
		obs = observer.Noop{}
	}

	n := len(lrps)
	if n < 2 {
		return model.Route{}, newError(InvalidReference, 0, 0, 0, "a route requires at least 2 LRPs", nil)
	}

	candidates := make([][]model.Candidate, n)
	for i, lrp := range lrps {
		isLast := i == n-1
		candidates[i] = candidate.Generate(i, lrp, m, cfg, isLast, obs)
		if len(candidates[i]) == 0 {
			return model.Route{}, newError(NoCandidates, i, 0, 0, "no admissible candidate within search radius", nil)
		}
	}

	routes, err := searchRoutes(ctx, lrps, candidates, cfg, m, obs)
	if err != nil {
		return model.Route{}, err
	}

	return concatenate(routes), nil
}

// searchRoutes runs the DFS-with-backtracking search of spec §4.6 step 2-4:
// an iterative stack of (lrpIndex, candidateCursor) frames realized here as
// a pos[] array, one cursor per LRP, advanced right-to-left on failure.
func searchRoutes(ctx context.Context, lrps []model.LRP, candidates [][]model.Candidate, cfg config.Config, m mapref.Map, obs observer.Observer) ([]model.Route, error) {
	n := len(candidates)
	pos := make([]int, n)
	routes := make([]model.Route, n-1)

	pair := 0
	for {
		if pair < 0 {
			return nil, newError(NoRoute, 0, 0, n-1, "exhausted every candidate combination", nil)
		}
		if pair == n-1 {
			return routes, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, newError(Cancelled, 0, pair, pair+1, "", err)
		}

		lrp := lrps[pair]
		from := candidates[pair][pos[pair]].Point
		to := candidates[pair+1][pos[pair+1]].Point

		route, routeErr := pathsearch.FindRoute(ctx, from, to, lrp.DistanceToNext, lrp.LowestFRCToNext, cfg, m)
		if routeErr == nil {
			routes[pair] = route
			obs.RouteFound(pair, pair+1, route)
			pair++
			continue
		}

		obs.RouteRejected(pair, pair+1, routeErr.Error())

		k := pair + 1
		pos[k]++
		for pos[k] >= len(candidates[k]) {
			pos[k] = 0
			k--
			if k < 0 {
				break
			}
			pos[k]++
		}
		switch {
		case k < 0:
			pair = -1
		case k == 0:
			pair = 0
		default:
			pair = k - 1
		}
	}
}

// concatenate glues the per-pair routes into one Route, inserting each
// shared-candidate line — split across two pairs' partial arcs — as a
// single fully-traversed intermediate entry per spec §4.6 step 4.
//
// A pair route that resolves via the §4.5 same-line shortcut (Start and
// End on the same line, no intermediate) never contributes a junction to
// glue: its own Length() already accounts only for the offset span it
// actually covers, not a full line traversal, so the line it sits on must
// not be added again. Symmetrically, while the accumulated route has not
// yet left its own starting line (still a same-line span with nothing
// glued in yet), that line's full remainder is already folded into the
// accumulated Start's own partial length, so the first non-degenerate pair
// route that finally leaves it must not glue it either — only once the
// accumulation has genuinely moved past its start line does a later
// junction need gluing.
func concatenate(routes []model.Route) model.Route {
	start := routes[0].Start
	end := routes[0].End
	intermediate := append([]model.Line{}, routes[0].Intermediate...)

	for i := 1; i < len(routes); i++ {
		r := routes[i]
		stillOnStartLine := len(intermediate) == 0 && start.Line.ID() == end.Line.ID()
		sameLineRoute := r.Start.Line.ID() == r.End.Line.ID()

		if !sameLineRoute && !stillOnStartLine {
			intermediate = append(intermediate, end.Line)
		}
		intermediate = append(intermediate, r.Intermediate...)
		end = r.End
	}

	return model.Route{
		Start:        start,
		Intermediate: intermediate,
		End:          end,
	}
}

// trim cuts total by p from the start and q from the end (spec §4.6 step
// 5), both expressed as fractions of total.Length().
func trim(total model.Route, p, q float64) (model.LineLocation, error) {
	totalLen := total.Length()
	startDist := p * totalLen
	endDist := totalLen - q*totalLen
	if endDist-startDist <= 0 {
		return model.LineLocation{}, newError(EmptyLocation, 0, 0, 0, "trim offsets leave no route", nil)
	}

	startLine, startOffsetM, err := pointproj.Walk(total, startDist)
	if err != nil {
		return model.LineLocation{}, newError(PathExhausted, 0, 0, 0, "positive offset walk overshot the route", err)
	}
	endLine, endOffsetM, err := pointproj.Walk(total, endDist)
	if err != nil {
		return model.LineLocation{}, newError(PathExhausted, 0, 0, 0, "negative offset walk overshot the route", err)
	}

	startPt := model.PointOnLine{Line: startLine, RelativeOffset: clampUnit(startOffsetM / startLine.Length())}
	endPt := model.PointOnLine{Line: endLine, RelativeOffset: clampUnit(endOffsetM / endLine.Length())}

	return model.LineLocation{
		Start:        startPt,
		Intermediate: betweenLines(total, startLine, endLine),
		End:          endPt,
	}, nil
}

// betweenLines returns the lines strictly between startLine and endLine in
// total's traversal order.
func betweenLines(total model.Route, startLine, endLine model.Line) []model.Line {
	seq := make([]model.Line, 0, len(total.Intermediate)+2)
	seq = append(seq, total.Start.Line)
	seq = append(seq, total.Intermediate...)
	seq = append(seq, total.End.Line)

	startIdx, endIdx := -1, -1
	for i, l := range seq {
		if startIdx == -1 && l == startLine {
			startIdx = i
		}
		if l == endLine && i >= startIdx {
			endIdx = i
		}
	}
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx+1 {
		return nil
	}
	return append([]model.Line{}, seq[startIdx+1:endIdx]...)
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
