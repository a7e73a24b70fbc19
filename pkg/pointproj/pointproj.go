// Package pointproj walks a metric distance along a Route and returns the
// (line, offset-in-meters) reached. Grounded on the original Python
// implementation's point_along_linelocation (see DESIGN.md for the one
// correctness fix applied: the source's end-of-route branch returns a
// fixed offset regardless of how far short of the route's end the walk
// actually lands, which breaks walks into the interior of the end line).
package pointproj

import (
	"errors"

	"github.com/azybler/openlrdecoder/pkg/model"
)

// ErrPathExhausted is returned when d exceeds the route's total length.
var ErrPathExhausted = errors.New("pointproj: path exhausted")

// Walk steps d meters into route from its start and returns the line and
// the offset in meters from that line's own start.
func Walk(route model.Route, d float64) (model.Line, float64, error) {
	if d > route.Length() {
		return nil, 0, ErrPathExhausted
	}
	remaining := d

	startRemaining := route.Start.Line.Length() * (1.0 - route.Start.RelativeOffset)
	if remaining <= startRemaining {
		return route.Start.Line, route.Start.Line.Length()*route.Start.RelativeOffset + remaining, nil
	}
	remaining -= startRemaining

	for _, l := range route.Intermediate {
		if remaining > l.Length() {
			remaining -= l.Length()
		} else {
			return l, remaining, nil
		}
	}

	endOffset := route.End.Line.Length() * route.End.RelativeOffset
	if remaining <= endOffset {
		return route.End.Line, remaining, nil
	}

	return nil, 0, ErrPathExhausted
}
