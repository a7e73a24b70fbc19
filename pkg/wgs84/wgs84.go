// Package wgs84 implements the geodesy primitives the decoder core relies on:
// great-circle distance, forward bearing, and metric projection along a
// polyline. All reasoning about metric distance elsewhere in this module
// reduces to these functions so that candidate enumeration and route length
// computation never drift against each other.
package wgs84

import "math"

const earthRadiusMeters = 6_371_000.0

// Coordinate is a WGS84 (longitude, latitude) pair in degrees.
type Coordinate struct {
	Lon float64
	Lat float64
}

// Distance returns the great-circle distance between a and b, in meters.
func Distance(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Bearing returns the forward azimuth from a to b, in radians, measured
// clockwise from true north.
func Bearing(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	theta := math.Atan2(y, x)
	return math.Mod(theta+2*math.Pi, 2*math.Pi)
}

// ProjectAlongPath walks d meters from the start of path along its segments
// and returns the coordinate reached. If d exceeds the path's total length,
// the last vertex is returned. An empty path returns the zero Coordinate.
func ProjectAlongPath(path []Coordinate, d float64) Coordinate {
	if len(path) == 0 {
		return Coordinate{}
	}
	if len(path) == 1 || d <= 0 {
		return path[0]
	}

	remaining := d
	for i := 0; i < len(path)-1; i++ {
		segLen := Distance(path[i], path[i+1])
		if remaining <= segLen {
			if segLen == 0 {
				return path[i]
			}
			t := remaining / segLen
			return Coordinate{
				Lon: path[i].Lon + t*(path[i+1].Lon-path[i].Lon),
				Lat: path[i].Lat + t*(path[i+1].Lat-path[i].Lat),
			}
		}
		remaining -= segLen
	}
	return path[len(path)-1]
}

// PathLength returns the total metric length of path, in meters.
func PathLength(path []Coordinate) float64 {
	if len(path) < 2 {
		return 0
	}
	var total float64
	for i := 0; i < len(path)-1; i++ {
		total += Distance(path[i], path[i+1])
	}
	return total
}

// ProjectPerpendicular computes the perpendicular distance from p to segment
// ab, and the projection ratio along ab clamped to [0,1]. Works in an
// equirectangular projection centered on the segment, matching the
// teacher's planar-approximation approach for cheap local projections;
// distance itself is still reported via the haversine-consistent Distance
// so candidate ranking and route-length math never diverge.
func ProjectPerpendicular(p, a, b Coordinate) (dist float64, ratio float64) {
	if a == b {
		return Distance(p, a), 0
	}

	cosLat := math.Cos((a.Lat + b.Lat) / 2 * math.Pi / 180)

	ax := a.Lon * cosLat
	ay := a.Lat
	bx := b.Lon * cosLat
	by := b.Lat
	px := p.Lon * cosLat
	py := p.Lat

	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, a), 0
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Coordinate{
		Lon: a.Lon + t*(b.Lon-a.Lon),
		Lat: a.Lat + t*(b.Lat-a.Lat),
	}
	return Distance(p, closest), t
}
