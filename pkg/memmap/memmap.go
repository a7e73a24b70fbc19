// Package memmap is a concrete, in-memory mapref.Map implementation: a
// demo/test collaborator for the decoding core, the way the teacher's
// pkg/graph + pkg/osm exist solely to feed pkg/routing. Lines are held in a
// map keyed by id; spatial queries over lines and nodes are backed by R-tree
// indexes.
package memmap

import (
	"iter"
	"math"

	"github.com/tidwall/rtree"

	"github.com/azybler/openlrdecoder/pkg/mapref"
	"github.com/azybler/openlrdecoder/pkg/model"
	"github.com/azybler/openlrdecoder/pkg/wgs84"
)

// line implements model.Line over in-memory data.
type line struct {
	id        model.LineID
	length    float64
	fow       model.FOW
	frc       model.FRC
	coords    []model.Coordinate
	startNode *node
	endNode   *node
}

func (l *line) ID() model.LineID              { return l.id }
func (l *line) Length() float64               { return l.length }
func (l *line) FOW() model.FOW                { return l.fow }
func (l *line) FRC() model.FRC                { return l.frc }
func (l *line) Coordinates() []model.Coordinate { return l.coords }
func (l *line) StartNode() model.Node         { return l.startNode }
func (l *line) EndNode() model.Node           { return l.endNode }

// node implements model.Node over in-memory data.
type node struct {
	coord    model.Coordinate
	outgoing []model.Line
	incoming []model.Line
}

func (n *node) Coordinates() model.Coordinate { return n.coord }
func (n *node) OutgoingLines() []model.Line   { return n.outgoing }
func (n *node) IncomingLines() []model.Line   { return n.incoming }

// Map is an in-memory mapref.Map, spatially indexed with an R-tree over
// lines' bounding boxes and nodes' coordinates.
type Map struct {
	lines    map[model.LineID]*line
	lineTree rtree.RTreeG[*line]
	nodeTree rtree.RTreeG[*node]
}

// New creates an empty Map. Use Builder to populate one from raw edges.
func New() *Map {
	return &Map{lines: make(map[model.LineID]*line)}
}

// GetLine implements mapref.Map.
func (m *Map) GetLine(id model.LineID) (model.Line, error) {
	l, ok := m.lines[id]
	if !ok {
		return nil, mapref.ErrLineNotFound
	}
	return l, nil
}

// GetLines implements mapref.Map.
func (m *Map) GetLines() iter.Seq[model.Line] {
	return func(yield func(model.Line) bool) {
		for _, l := range m.lines {
			if !yield(l) {
				return
			}
		}
	}
}

// degreesForMeters converts a metric radius to an approximate latitude
// degrees margin, generous enough to over-select candidates from the
// R-tree; exact filtering happens with wgs84.Distance downstream.
func degreesForMeters(meters float64) float64 {
	const metersPerDegree = 111_320.0
	return meters / metersPerDegree
}

// lonDegreesForMeters converts a metric radius to a longitude degrees
// margin at latitude c.Lat. A degree of longitude shrinks with cos(lat)
// away from the equator, so the equator-calibrated metersPerDegree must be
// widened by 1/cos(lat); otherwise the query box under-selects east/west at
// non-equatorial latitudes and wgs84.Distance downstream can never re-add a
// candidate the box dropped.
func lonDegreesForMeters(meters, lat float64) float64 {
	cos := math.Cos(lat * math.Pi / 180)
	if cos < 1e-9 {
		cos = 1e-9
	}
	return degreesForMeters(meters) / cos
}

// FindNodesCloseTo implements mapref.Map.
func (m *Map) FindNodesCloseTo(c model.Coordinate, radius float64) iter.Seq[model.Node] {
	latMargin := degreesForMeters(radius)
	lonMargin := lonDegreesForMeters(radius, c.Lat)
	min := [2]float64{c.Lon - lonMargin, c.Lat - latMargin}
	max := [2]float64{c.Lon + lonMargin, c.Lat + latMargin}

	return func(yield func(model.Node) bool) {
		stop := false
		m.nodeTree.Search(min, max, func(_, _ [2]float64, n *node) bool {
			if wgs84.Distance(c, n.coord) <= radius {
				if !yield(n) {
					stop = true
					return false
				}
			}
			return true
		})
		_ = stop
	}
}

// FindLinesCloseTo implements mapref.Map.
func (m *Map) FindLinesCloseTo(c model.Coordinate, radius float64) iter.Seq[model.Line] {
	latMargin := degreesForMeters(radius)
	lonMargin := lonDegreesForMeters(radius, c.Lat)
	min := [2]float64{c.Lon - lonMargin, c.Lat - latMargin}
	max := [2]float64{c.Lon + lonMargin, c.Lat + latMargin}

	return func(yield func(model.Line) bool) {
		m.lineTree.Search(min, max, func(_, _ [2]float64, l *line) bool {
			closest := math.Inf(1)
			coords := l.coords
			for i := 0; i < len(coords)-1; i++ {
				d, _ := wgs84.ProjectPerpendicular(c, coords[i], coords[i+1])
				if d < closest {
					closest = d
				}
			}
			if closest <= radius {
				return yield(l)
			}
			return true
		})
	}
}
