package memmap

import (
	"github.com/azybler/openlrdecoder/pkg/model"
	"github.com/azybler/openlrdecoder/pkg/wgs84"
)

// RawEdge is one directed road segment to add to a Map under construction.
// FromCoord/ToCoord anchor the endpoints; endpoints whose coordinates
// truncate to the same 1e-7 degree key are merged into one node, the way the teacher's
// builder.Build merges node IDs referenced by multiple edges.
type RawEdge struct {
	ID        model.LineID
	FromCoord model.Coordinate
	ToCoord   model.Coordinate
	Shape     []model.Coordinate // intermediate points, excluding From/To
	FOW       model.FOW
	FRC       model.FRC
	Length    float64 // meters; computed from geometry if zero
}

// Builder accumulates RawEdges and produces a Map, compacting shared
// endpoints into nodes and building both the bidirectional adjacency and
// the R-tree spatial index in one pass — the in-memory analogue of the
// teacher's CSR-construction builder.Build.
type Builder struct {
	edges    []RawEdge
	nodeKeys map[coordKey]*node
}

// coordKey quantizes a coordinate to merge endpoints shared by multiple
// edges, mirroring how OSM node IDs naturally dedupe shared endpoints.
type coordKey struct {
	lon, lat int64
}

const coordQuantum = 1e7 // ~1cm of precision, enough to dedupe shared nodes

func keyFor(c model.Coordinate) coordKey {
	return coordKey{
		lon: int64(c.Lon * coordQuantum),
		lat: int64(c.Lat * coordQuantum),
	}
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{nodeKeys: make(map[coordKey]*node)}
}

// AddEdge queues a directed edge for inclusion in the built Map.
func (b *Builder) AddEdge(e RawEdge) {
	b.edges = append(b.edges, e)
}

// Build constructs the Map from all queued edges.
func (b *Builder) Build() *Map {
	m := New()

	nodeFor := func(c model.Coordinate) *node {
		k := keyFor(c)
		if n, ok := b.nodeKeys[k]; ok {
			return n
		}
		n := &node{coord: c}
		b.nodeKeys[k] = n
		return n
	}

	for _, e := range b.edges {
		from := nodeFor(e.FromCoord)
		to := nodeFor(e.ToCoord)

		coords := make([]model.Coordinate, 0, len(e.Shape)+2)
		coords = append(coords, e.FromCoord)
		coords = append(coords, e.Shape...)
		coords = append(coords, e.ToCoord)

		length := e.Length
		if length == 0 {
			length = pathLength(coords)
		}

		l := &line{
			id:        e.ID,
			length:    length,
			fow:       e.FOW,
			frc:       e.FRC,
			coords:    coords,
			startNode: from,
			endNode:   to,
		}

		from.outgoing = append(from.outgoing, l)
		to.incoming = append(to.incoming, l)

		m.lines[l.id] = l

		minLon, minLat := coords[0].Lon, coords[0].Lat
		maxLon, maxLat := coords[0].Lon, coords[0].Lat
		for _, c := range coords[1:] {
			minLon, maxLon = minMax(minLon, maxLon, c.Lon)
			minLat, maxLat = minMax(minLat, maxLat, c.Lat)
		}
		m.lineTree.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, l)
	}

	for _, n := range b.nodeKeys {
		m.nodeTree.Insert([2]float64{n.coord.Lon, n.coord.Lat}, [2]float64{n.coord.Lon, n.coord.Lat}, n)
	}

	return m
}

func minMax(lo, hi, v float64) (float64, float64) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}

func pathLength(coords []model.Coordinate) float64 {
	var total float64
	for i := 0; i < len(coords)-1; i++ {
		total += wgs84.Distance(coords[i], coords[i+1])
	}
	return total
}
