// Package model defines the OpenLR decoding data model shared by every
// component of the core: coordinates, road classification, location
// reference points, and the candidate/route types the search builds up.
package model

import "github.com/azybler/openlrdecoder/pkg/wgs84"

// Coordinate is a WGS84 (longitude, latitude) pair in degrees.
type Coordinate = wgs84.Coordinate

// FRC is a Functional Road Class, an ordinal from 0 (most important) to 7.
type FRC int

const (
	FRC0 FRC = iota
	FRC1
	FRC2
	FRC3
	FRC4
	FRC5
	FRC6
	FRC7
)

// FOW is a Form of Way, the shape category of a road segment.
type FOW int

const (
	FOWUndefined FOW = iota
	FOWMotorway
	FOWMultipleCarriageway
	FOWSingleCarriageway
	FOWRoundabout
	FOWTrafficSquare
	FOWSliproad
	FOWOther
)

// LRP is one Location Reference Point in an OpenLR reference. The last LRP
// in a sequence carries a zero LowestFRCToNext/DistanceToNext since it has
// no "next" point.
type LRP struct {
	Coordinate     Coordinate
	FRC            FRC
	FOW            FOW
	Bearing        float64 // degrees
	LowestFRCToNext FRC
	DistanceToNext float64 // meters
}

// LineID identifies a Line on the target map.
type LineID uint64

// PointOnLine is a fractional position along a single Line.
//
// RelativeOffset is in [0,1]: 0 is the line's start, 1 is its end.
type PointOnLine struct {
	Line           Line
	RelativeOffset float64
}

// Position returns the geographic coordinate of the point.
func (p PointOnLine) Position() Coordinate {
	return wgs84.ProjectAlongPath(p.Line.Coordinates(), p.Line.Length()*p.RelativeOffset)
}

// Split divides the line's polyline into the portion before and after this
// point. Either side is nil if the offset sits exactly at that end.
func (p PointOnLine) Split() (before, after []Coordinate) {
	coords := p.Line.Coordinates()
	if len(coords) == 0 {
		return nil, nil
	}
	if p.RelativeOffset <= 0 {
		return nil, coords
	}
	if p.RelativeOffset >= 1 {
		return coords, nil
	}

	d := p.Line.Length() * p.RelativeOffset
	splitPoint := wgs84.ProjectAlongPath(coords, d)

	remaining := d
	for i := 0; i < len(coords)-1; i++ {
		segLen := wgs84.Distance(coords[i], coords[i+1])
		if remaining <= segLen {
			before = append(append([]Coordinate{}, coords[:i+1]...), splitPoint)
			after = append([]Coordinate{splitPoint}, coords[i+1:]...)
			return before, after
		}
		remaining -= segLen
	}
	return coords, nil
}

// Candidate is a scored PointOnLine attached to one LRP during decoding.
type Candidate struct {
	Point PointOnLine
	Score float64
}

// Line is an identified, directed road segment on the target map.
type Line interface {
	ID() LineID
	Length() float64 // meters
	FOW() FOW
	FRC() FRC
	Coordinates() []Coordinate // start -> end
	StartNode() Node
	EndNode() Node
}

// Node is a junction on the target map's road graph.
type Node interface {
	Coordinates() Coordinate
	OutgoingLines() []Line
	IncomingLines() []Line
}

// Route is a contiguous traversal from a start PointOnLine to an end
// PointOnLine, with zero or more whole intermediate lines in between.
type Route struct {
	Start        PointOnLine
	Intermediate []Line
	End          PointOnLine
}

// Length returns the metric length of the route per the §4.5/§3 degenerate
// same-line adjustment: when Start and End share one line, the naive sum
// double counts the line, so the route collapses to the single in-line span.
func (r Route) Length() float64 {
	if r.Start.Line != nil && r.End.Line != nil && r.Start.Line.ID() == r.End.Line.ID() && len(r.Intermediate) == 0 {
		return r.Start.Line.Length() * (r.End.RelativeOffset - r.Start.RelativeOffset)
	}

	total := r.Start.Line.Length() * (1 - r.Start.RelativeOffset)
	for _, l := range r.Intermediate {
		total += l.Length()
	}
	total += r.End.Line.Length() * r.End.RelativeOffset
	return total
}

// Lines returns the route's lines in traversal order: the start line, every
// intermediate line, then the end line (deduplicated for the same-line case).
func (r Route) Lines() []Line {
	if r.Start.Line != nil && r.End.Line != nil && r.Start.Line.ID() == r.End.Line.ID() && len(r.Intermediate) == 0 {
		return []Line{r.Start.Line}
	}
	lines := make([]Line, 0, len(r.Intermediate)+2)
	lines = append(lines, r.Start.Line)
	lines = append(lines, r.Intermediate...)
	lines = append(lines, r.End.Line)
	return lines
}

// LineLocation is the final decoded output of a line-location reference:
// the concatenation of per-LRP-pair routes, trimmed by positive/negative
// offset.
type LineLocation struct {
	Start        PointOnLine
	Intermediate []Line
	End          PointOnLine
}
