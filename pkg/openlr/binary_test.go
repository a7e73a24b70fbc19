package openlr

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/azybler/openlrdecoder/pkg/model"
)

// encodeAbs24 writes a big-endian 24-bit two's-complement integer.
func encodeAbs24(v int32) []byte {
	return []byte{byte(v >> 16), byte(v >> 8), byte(v)}
}

// buildTwoLRPReference hand-assembles a minimal two-LRP line location
// reference at given coordinates, with no offsets.
func buildTwoLRPReference(t *testing.T, lon0, lat0, lon1, lat1 float64) []byte {
	t.Helper()
	var raw []byte
	raw = append(raw, 0x00) // header: no offsets
	raw = append(raw, 2)    // 2 LRPs

	// LRP 0: absolute coordinate.
	raw = append(raw, encodeAbs24(int32(lon0/degreeFactor))...)
	raw = append(raw, encodeAbs24(int32(lat0/degreeFactor))...)
	raw = append(raw, byte(model.FRC3), byte(model.FOWSingleCarriageway), 64) // bearing ~90deg
	raw = append(raw, byte(model.FRC3))
	distBuf := make([]byte, 2)
	binary.BigEndian.PutUint16(distBuf, 800)
	raw = append(raw, distBuf...)

	// LRP 1: relative coordinate delta.
	dLon := int16((lon1 - lon0) / degreeFactor)
	dLat := int16((lat1 - lat0) / degreeFactor)
	deltaBuf := make([]byte, 4)
	binary.BigEndian.PutUint16(deltaBuf[0:2], uint16(dLon))
	binary.BigEndian.PutUint16(deltaBuf[2:4], uint16(dLat))
	raw = append(raw, deltaBuf...)
	raw = append(raw, byte(model.FRC3), byte(model.FOWSingleCarriageway), 64)
	// last LRP: no successor fields.

	return raw
}

func TestParseTwoLRPReference(t *testing.T) {
	raw := buildTwoLRPReference(t, 103.0000, 1.0000, 103.0090, 1.0000)

	ref, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(ref.LRPs) != 2 {
		t.Fatalf("got %d LRPs, want 2", len(ref.LRPs))
	}
	if got, want := ref.LRPs[0].Coordinate.Lon, 103.0000; abs(got-want) > 1e-4 {
		t.Errorf("lrp0 lon = %f, want ~%f", got, want)
	}
	if got, want := ref.LRPs[1].Coordinate.Lon, 103.0090; abs(got-want) > 1e-4 {
		t.Errorf("lrp1 lon = %f, want ~%f", got, want)
	}
	if ref.LRPs[0].DistanceToNext != 800 {
		t.Errorf("lrp0 distance to next = %f, want 800", ref.LRPs[0].DistanceToNext)
	}
	if ref.LRPs[0].LowestFRCToNext != model.FRC3 {
		t.Errorf("lrp0 lowest frc to next = %v, want FRC3", ref.LRPs[0].LowestFRCToNext)
	}
}

func TestParseBase64RoundTrip(t *testing.T) {
	raw := buildTwoLRPReference(t, 103.0000, 1.0000, 103.0090, 1.0000)
	encoded := base64.StdEncoding.EncodeToString(raw)

	ref, err := ParseBase64(encoded)
	if err != nil {
		t.Fatalf("ParseBase64 error: %v", err)
	}
	if len(ref.LRPs) != 2 {
		t.Fatalf("got %d LRPs, want 2", len(ref.LRPs))
	}
}

func TestParseRejectsTruncated(t *testing.T) {
	if _, err := Parse([]byte{0x00, 2, 1, 2}); err == nil {
		t.Fatal("expected error on truncated reference")
	}
}

func TestParseRejectsSingleLRP(t *testing.T) {
	if _, err := Parse([]byte{0x00, 1}); err == nil {
		t.Fatal("expected error on single-LRP line location")
	}
}

func TestParseOffsets(t *testing.T) {
	raw := buildTwoLRPReference(t, 103.0000, 1.0000, 103.0090, 1.0000)
	raw[0] = headerHasPositiveOffset | headerHasNegativeOffset
	raw = append(raw, 25, 50) // p ~= 25/255, q ~= 50/255

	ref, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if abs(ref.PositiveOffset-25.0/255.0) > 1e-9 {
		t.Errorf("positive offset = %f, want %f", ref.PositiveOffset, 25.0/255.0)
	}
	if abs(ref.NegativeOffset-50.0/255.0) > 1e-9 {
		t.Errorf("negative offset = %f, want %f", ref.NegativeOffset, 50.0/255.0)
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
