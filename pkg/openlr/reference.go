// Package openlr defines the wire-level location reference types the
// decoder consumes, and the binary/base64 physical format they are
// serialized in.
package openlr

import "github.com/azybler/openlrdecoder/pkg/model"

// Orientation describes a point's direction relevance along its line.
type Orientation int

const (
	OrientationNoOrientation Orientation = iota
	OrientationWithLineDirection
	OrientationAgainstLineDirection
	OrientationBothDirections
)

// SideOfRoad describes which side of the referenced line a point lies on.
type SideOfRoad int

const (
	SideOfRoadOnRoadOrUnknown SideOfRoad = iota
	SideOfRoadRight
	SideOfRoadLeft
	SideOfRoadBoth
)

// LineLocationRef is a line location reference: an ordered LRP chain plus
// trim offsets expressed as fractions of total decoded route length.
type LineLocationRef struct {
	LRPs           []model.LRP
	PositiveOffset float64 // p, fraction trimmed from the start
	NegativeOffset float64 // q, fraction trimmed from the end
}

// PointAlongLineLocation references a point that lies somewhere along the
// route between two LRPs.
type PointAlongLineLocation struct {
	LRPs           [2]model.LRP
	PositiveOffset float64
	Orientation    Orientation
	SideOfRoad     SideOfRoad
}

// PoiWithAccessPointLocation references a point of interest near, but not
// necessarily on, the route between two LRPs.
type PoiWithAccessPointLocation struct {
	LRPs           [2]model.LRP
	PositiveOffset float64
	Orientation    Orientation
	SideOfRoad     SideOfRoad
	POI            model.Coordinate
}

// GeoCoordinateLocation is a single standalone coordinate, passed through
// without any map-matching.
type GeoCoordinateLocation struct {
	Coordinate model.Coordinate
}
