// Package mapref defines the abstract contract the decoding core uses to
// enumerate candidates and traverse the road graph. The map itself — its
// storage, spatial index, and geometry source — lives outside the core;
// this package only describes the shape a reader must expose.
package mapref

import (
	"errors"
	"iter"

	"github.com/azybler/openlrdecoder/pkg/model"
)

// ErrLineNotFound is returned by Map.GetLine when no line with the given
// id exists on the map.
var ErrLineNotFound = errors.New("mapref: line not found")

// Map is the abstract contract over a target map's lines and nodes. The
// core assumes no particular spatial index; it only requires that radius
// queries are consistent with the coordinates each Line/Node reports.
type Map interface {
	// GetLine looks up a line by id. Returns ErrLineNotFound if absent.
	GetLine(id model.LineID) (model.Line, error)

	// GetLines iterates every line on the map.
	GetLines() iter.Seq[model.Line]

	// FindNodesCloseTo iterates nodes whose coordinates lie within radius
	// meters of c.
	FindNodesCloseTo(c model.Coordinate, radius float64) iter.Seq[model.Node]

	// FindLinesCloseTo iterates lines whose geometry lies within radius
	// meters of c.
	FindLinesCloseTo(c model.Coordinate, radius float64) iter.Seq[model.Line]
}
