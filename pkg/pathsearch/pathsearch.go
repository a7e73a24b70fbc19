// Package pathsearch finds a route between two candidate points-on-lines
// whose length matches an encoded target distance within tolerance and
// that respects a lowest-FRC-to-next ceiling. Grounded on the teacher's
// pkg/routing/dijkstra.go (MinHeap, touched-list reset) collapsed from
// bidirectional CH search to a single-direction search over mapref.Map,
// with FRC-ceiling filtering applied at expansion time the way
// pkg/ch/witness.go filters excluded/contracted nodes inline in its relax
// loop.
package pathsearch

import (
	"context"
	"errors"
	"math"

	"github.com/azybler/openlrdecoder/pkg/config"
	"github.com/azybler/openlrdecoder/pkg/mapref"
	"github.com/azybler/openlrdecoder/pkg/model"
)

// ErrNoRoute is returned when the frontier is exhausted without reaching
// the target, or no reached path fits the admissible distance window.
var ErrNoRoute = errors.New("pathsearch: no admissible route")

// heapItem is one entry in the search frontier.
type heapItem struct {
	node model.Node
	dist float64
}

// minHeap is a concrete-typed binary min-heap, avoiding interface boxing
// in the hot expansion loop — same discipline as the teacher's
// routing.MinHeap.
type minHeap struct {
	items []heapItem
}

func (h *minHeap) push(node model.Node, dist float64) {
	h.items = append(h.items, heapItem{node, dist})
	i := len(h.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) pop() heapItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	n--
	i := 0
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
	return item
}

func (h *minHeap) empty() bool { return len(h.items) == 0 }

// nodeKey identifies a model.Node for use as a map key; nodes are compared
// by their reported coordinate since mapref.Node has no stable identity of
// its own.
type nodeKey = model.Coordinate

// FindRoute finds a route from `from` to `to` with length in the window
// [(1-ε)·D, (1+ε)·D+τ], traversing only lines with FRC ≤ maxFRC, per
// spec §4.5.
func FindRoute(ctx context.Context, from, to model.PointOnLine, targetDist float64, maxFRC model.FRC, cfg config.Config, m mapref.Map) (model.Route, error) {
	// Same-line shortcut (§4.5 step 1).
	if from.Line.ID() == to.Line.ID() && to.RelativeOffset >= from.RelativeOffset {
		route := model.Route{Start: from, End: to}
		if admissible(route.Length(), targetDist, cfg) {
			return route, nil
		}
		return model.Route{}, ErrNoRoute
	}

	// Graph search (§4.5 step 2): Dijkstra from from.Line.EndNode() to
	// to.Line.StartNode() over lines with frc <= maxFRC.
	dist := make(map[nodeKey]float64)
	pred := make(map[nodeKey]model.Line) // line used to reach this node
	predNode := make(map[nodeKey]model.Node)

	start := from.Line.EndNode()
	target := to.Line.StartNode()

	startKey := start.Coordinates()
	targetKey := target.Coordinates()

	dist[startKey] = 0
	var h minHeap
	h.push(start, 0)

	found := false
	iterations := 0

	for !h.empty() {
		iterations++
		if iterations&255 == 0 {
			if err := ctx.Err(); err != nil {
				return model.Route{}, err
			}
		}

		item := h.pop()
		u := item.node
		uKey := u.Coordinates()
		if item.dist > dist[uKey] {
			continue
		}
		if uKey == targetKey {
			found = true
			break
		}

		for _, l := range u.OutgoingLines() {
			if l.FRC() > maxFRC {
				continue
			}
			v := l.EndNode()
			vKey := v.Coordinates()
			newDist := item.dist + l.Length()
			if existing, ok := dist[vKey]; !ok || newDist < existing {
				dist[vKey] = newDist
				pred[vKey] = l
				predNode[vKey] = u
				h.push(v, newDist)
			}
		}
	}

	if !found {
		return model.Route{}, ErrNoRoute
	}

	// Reconstruct the intermediate line sequence from target back to start.
	var intermediate []model.Line
	cur := targetKey
	for cur != startKey {
		l, ok := pred[cur]
		if !ok {
			return model.Route{}, ErrNoRoute
		}
		intermediate = append(intermediate, l)
		cur = predNode[cur].Coordinates()
	}
	for i, j := 0, len(intermediate)-1; i < j; i, j = i+1, j-1 {
		intermediate[i], intermediate[j] = intermediate[j], intermediate[i]
	}

	route := model.Route{Start: from, Intermediate: intermediate, End: to}
	if !admissible(route.Length(), targetDist, cfg) {
		return model.Route{}, ErrNoRoute
	}
	return route, nil
}

func admissible(length, target float64, cfg config.Config) bool {
	lo := (1 - cfg.DistanceTolerance) * target
	hi := (1+cfg.DistanceTolerance)*target + cfg.DistanceSlack
	return length >= lo && length <= hi && !math.IsNaN(length)
}
