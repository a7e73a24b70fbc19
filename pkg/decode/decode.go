// Package decode is the top-level dispatcher over the location reference
// kinds this decoder understands. Ported from the original implementation's
// decoding/__init__.py top-level decode() type switch; each concrete kind's
// logic stays with its own result type in this file rather than a single
// generic function, the way the original's point_locations.py separates
// decode_pointalongline/decode_poi_with_accesspoint from line_location.py's
// line-location path.
package decode

import (
	"context"
	"fmt"

	"github.com/azybler/openlrdecoder/pkg/config"
	"github.com/azybler/openlrdecoder/pkg/decodeline"
	"github.com/azybler/openlrdecoder/pkg/mapref"
	"github.com/azybler/openlrdecoder/pkg/model"
	"github.com/azybler/openlrdecoder/pkg/observer"
	"github.com/azybler/openlrdecoder/pkg/openlr"
	"github.com/azybler/openlrdecoder/pkg/pointproj"
)

// PointAlongLine is a dereferenced point-along-line location.
type PointAlongLine struct {
	Line           model.Line
	PositiveOffset float64 // meters from Line's own start
	Side           openlr.SideOfRoad
	Orientation    openlr.Orientation
}

// Coordinates returns the point's geographic position.
func (p PointAlongLine) Coordinates() model.Coordinate {
	return model.PointOnLine{Line: p.Line, RelativeOffset: p.PositiveOffset / p.Line.Length()}.Position()
}

// PoiWithAccessPoint is a dereferenced point-of-interest-with-access-point
// location: a POI coordinate plus the road access point that leads to it.
type PoiWithAccessPoint struct {
	Line           model.Line
	PositiveOffset float64 // meters from Line's own start, the access point
	Side           openlr.SideOfRoad
	Orientation    openlr.Orientation
	POI            model.Coordinate
}

// AccessPointCoordinates returns the geographic position of the access
// point on the road (not the POI itself).
func (p PoiWithAccessPoint) AccessPointCoordinates() model.Coordinate {
	return model.PointOnLine{Line: p.Line, RelativeOffset: p.PositiveOffset / p.Line.Length()}.Position()
}

// DecodePointAlongLine decodes a point-along-line reference against m.
func DecodePointAlongLine(ctx context.Context, ref openlr.PointAlongLineLocation, m mapref.Map, cfg config.Config, obs observer.Observer) (PointAlongLine, error) {
	path, err := decodeline.BuildRoute(ctx, ref.LRPs[:], m, cfg, obs)
	if err != nil {
		return PointAlongLine{}, err
	}

	absoluteOffset := path.Length() * ref.PositiveOffset
	line, offset, err := pointproj.Walk(path, absoluteOffset)
	if err != nil {
		return PointAlongLine{}, fmt.Errorf("decode: projecting point along line: %w", err)
	}

	return PointAlongLine{
		Line:           line,
		PositiveOffset: offset,
		Side:           ref.SideOfRoad,
		Orientation:    ref.Orientation,
	}, nil
}

// DecodePoiWithAccessPoint decodes a POI-with-access-point reference against m.
func DecodePoiWithAccessPoint(ctx context.Context, ref openlr.PoiWithAccessPointLocation, m mapref.Map, cfg config.Config, obs observer.Observer) (PoiWithAccessPoint, error) {
	path, err := decodeline.BuildRoute(ctx, ref.LRPs[:], m, cfg, obs)
	if err != nil {
		return PoiWithAccessPoint{}, err
	}

	// Offset base is standardized on total route length for both point
	// location kinds; the original's POI decoder used a sum-of-whole-lines
	// base instead, which double counts the partial start/end lines (see
	// the POI offset base decision in SPEC_FULL.md §10).
	absoluteOffset := path.Length() * ref.PositiveOffset
	line, offset, err := pointproj.Walk(path, absoluteOffset)
	if err != nil {
		return PoiWithAccessPoint{}, fmt.Errorf("decode: projecting access point: %w", err)
	}

	return PoiWithAccessPoint{
		Line:           line,
		PositiveOffset: offset,
		Side:           ref.SideOfRoad,
		Orientation:    ref.Orientation,
		POI:            ref.POI,
	}, nil
}

// DecodeLineLocation decodes a full line-location reference against m.
func DecodeLineLocation(ctx context.Context, ref openlr.LineLocationRef, m mapref.Map, cfg config.Config, obs observer.Observer) (model.LineLocation, error) {
	return decodeline.Decode(ctx, ref, m, cfg, obs)
}

// DecodeGeoCoordinate decodes a geo-coordinate reference: a pass-through, no
// map-matching involved.
func DecodeGeoCoordinate(ref openlr.GeoCoordinateLocation) model.Coordinate {
	return ref.Coordinate
}

// Decode dispatches ref to the matching decoder by its concrete type,
// returning the kind-specific result as `any`. ref must be one of
// openlr.LineLocationRef, openlr.PointAlongLineLocation,
// openlr.PoiWithAccessPointLocation, or openlr.GeoCoordinateLocation.
// Callers that know the reference kind ahead of time should prefer the
// typed Decode* functions above; this exists for callers (like cmd/decode)
// that only know the kind at runtime.
func Decode(ctx context.Context, ref any, m mapref.Map, cfg config.Config, obs observer.Observer) (any, error) {
	switch r := ref.(type) {
	case openlr.LineLocationRef:
		return DecodeLineLocation(ctx, r, m, cfg, obs)
	case openlr.PointAlongLineLocation:
		return DecodePointAlongLine(ctx, r, m, cfg, obs)
	case openlr.PoiWithAccessPointLocation:
		return DecodePoiWithAccessPoint(ctx, r, m, cfg, obs)
	case openlr.GeoCoordinateLocation:
		return DecodeGeoCoordinate(r), nil
	default:
		return nil, &decodeline.DecodeError{
			Kind:    decodeline.InvalidReference,
			Message: fmt.Sprintf("unsupported reference type %T", ref),
		}
	}
}
