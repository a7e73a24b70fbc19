package openlr

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/azybler/openlrdecoder/pkg/model"
)

// ErrMalformedReference is returned when a binary reference is too short,
// carries an out-of-range field, or fails its internal consistency checks.
var ErrMalformedReference = errors.New("openlr: malformed binary reference")

// degreeFactor is the coordinate quantization step: 2^24 values span the
// full -180..180 longitude range, the way the OpenLR binary physical
// format quantizes both longitude and latitude.
const degreeFactor = 360.0 / (1 << 24)

// headerHasPositiveOffset / headerHasNegativeOffset are bit flags in the
// reference's leading header byte.
const (
	headerHasPositiveOffset = 1 << 7
	headerHasNegativeOffset = 1 << 6
)

// ParseBase64 decodes a base64-encoded line location reference.
func ParseBase64(s string) (LineLocationRef, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return LineLocationRef{}, fmt.Errorf("%w: %v", ErrMalformedReference, err)
	}
	return Parse(raw)
}

// Parse decodes a binary line location reference.
//
// Layout: header byte (offset flags), LRP count byte, then per LRP: an
// absolute 3+3 byte coordinate for the first LRP or a relative 2+2 byte
// delta coordinate for every later one, one byte FRC, one byte FOW, one
// byte bearing (scaled 0-255 over 360 degrees), and, for every LRP but the
// last, one byte lowest-FRC-to-next plus a big-endian uint16 distance to
// next in meters. The header flags gate one trailing scaled byte each for
// the positive and negative offset fractions.
func Parse(raw []byte) (LineLocationRef, error) {
	if len(raw) < 2 {
		return LineLocationRef{}, fmt.Errorf("%w: too short", ErrMalformedReference)
	}

	header := raw[0]
	n := int(raw[1])
	if n < 2 {
		return LineLocationRef{}, fmt.Errorf("%w: line location needs at least 2 LRPs, got %d", ErrMalformedReference, n)
	}

	lrps := make([]model.LRP, n)
	offset := 2
	var prev model.Coordinate

	for i := 0; i < n; i++ {
		var c model.Coordinate
		if i == 0 {
			if len(raw) < offset+6 {
				return LineLocationRef{}, fmt.Errorf("%w: truncated first LRP coordinate", ErrMalformedReference)
			}
			c.Lon = float64(decodeAbs24(raw[offset:offset+3])) * degreeFactor
			c.Lat = float64(decodeAbs24(raw[offset+3:offset+6])) * degreeFactor
			offset += 6
		} else {
			if len(raw) < offset+4 {
				return LineLocationRef{}, fmt.Errorf("%w: truncated LRP %d coordinate delta", ErrMalformedReference, i)
			}
			dLon := int16(binary.BigEndian.Uint16(raw[offset : offset+2]))
			dLat := int16(binary.BigEndian.Uint16(raw[offset+2 : offset+4]))
			c.Lon = prev.Lon + float64(dLon)*degreeFactor
			c.Lat = prev.Lat + float64(dLat)*degreeFactor
			offset += 4
		}
		prev = c

		if len(raw) < offset+3 {
			return LineLocationRef{}, fmt.Errorf("%w: truncated LRP %d attributes", ErrMalformedReference, i)
		}
		frc := model.FRC(raw[offset])
		fow := model.FOW(raw[offset+1])
		bearing := float64(raw[offset+2]) * (360.0 / 256.0)
		offset += 3

		lrp := model.LRP{Coordinate: c, FRC: frc, FOW: fow, Bearing: bearing}

		if i < n-1 {
			if len(raw) < offset+3 {
				return LineLocationRef{}, fmt.Errorf("%w: truncated LRP %d successor fields", ErrMalformedReference, i)
			}
			lrp.LowestFRCToNext = model.FRC(raw[offset])
			lrp.DistanceToNext = float64(binary.BigEndian.Uint16(raw[offset+1 : offset+3]))
			offset += 3
		}

		lrps[i] = lrp
	}

	ref := LineLocationRef{LRPs: lrps}

	if header&headerHasPositiveOffset != 0 {
		if len(raw) < offset+1 {
			return LineLocationRef{}, fmt.Errorf("%w: truncated positive offset", ErrMalformedReference)
		}
		ref.PositiveOffset = float64(raw[offset]) / 255.0
		offset++
	}
	if header&headerHasNegativeOffset != 0 {
		if len(raw) < offset+1 {
			return LineLocationRef{}, fmt.Errorf("%w: truncated negative offset", ErrMalformedReference)
		}
		ref.NegativeOffset = float64(raw[offset]) / 255.0
		offset++
	}

	return ref, nil
}

// decodeAbs24 reads a big-endian 24-bit two's-complement integer.
func decodeAbs24(b []byte) int32 {
	v := int32(b[0])<<16 | int32(b[1])<<8 | int32(b[2])
	if v&(1<<23) != 0 {
		v -= 1 << 24
	}
	return v
}
