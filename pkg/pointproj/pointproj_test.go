package pointproj

import (
	"testing"

	"github.com/azybler/openlrdecoder/pkg/memmap"
	"github.com/azybler/openlrdecoder/pkg/model"
)

// buildTwoLineRoute builds a 1000m route made of two joined 500m lines,
// start and end pinned to the route's own endpoints.
func buildTwoLineRoute() (model.Route, *memmap.Map) {
	b := memmap.NewBuilder()
	b.AddEdge(memmap.RawEdge{
		ID:        1,
		FromCoord: model.Coordinate{Lon: 103.0000, Lat: 1.0000},
		ToCoord:   model.Coordinate{Lon: 103.0045, Lat: 1.0000},
		FRC:       model.FRC3,
		Length:    500,
	})
	b.AddEdge(memmap.RawEdge{
		ID:        2,
		FromCoord: model.Coordinate{Lon: 103.0045, Lat: 1.0000},
		ToCoord:   model.Coordinate{Lon: 103.0090, Lat: 1.0000},
		FRC:       model.FRC3,
		Length:    500,
	})
	m := b.Build()
	l1, _ := m.GetLine(1)
	l2, _ := m.GetLine(2)

	route := model.Route{
		Start: model.PointOnLine{Line: l1, RelativeOffset: 0.0},
		End:   model.PointOnLine{Line: l2, RelativeOffset: 1.0},
	}
	return route, m
}

func TestWalkWithinStartLine(t *testing.T) {
	route, _ := buildTwoLineRoute()

	line, offset, err := Walk(route, 200)
	if err != nil {
		t.Fatalf("Walk error: %v", err)
	}
	if line.ID() != 1 {
		t.Errorf("line = %d, want 1", line.ID())
	}
	if abs(offset-200) > 0.5 {
		t.Errorf("offset = %f, want ~200", offset)
	}
}

func TestWalkAtMidpoint(t *testing.T) {
	route, _ := buildTwoLineRoute()

	// 500m from the route start: exactly the junction between the two
	// lines, same scenario as spec's POI-decode at poffs=0.5.
	line, offset, err := Walk(route, 500)
	if err != nil {
		t.Fatalf("Walk error: %v", err)
	}
	if line.ID() != 1 {
		t.Errorf("line = %d, want 1", line.ID())
	}
	if abs(offset-500) > 0.5 {
		t.Errorf("offset = %f, want ~500", offset)
	}
}

func TestWalkWithinEndLine(t *testing.T) {
	route, _ := buildTwoLineRoute()

	line, offset, err := Walk(route, 750)
	if err != nil {
		t.Fatalf("Walk error: %v", err)
	}
	if line.ID() != 2 {
		t.Errorf("line = %d, want 2", line.ID())
	}
	if abs(offset-250) > 0.5 {
		t.Errorf("offset = %f, want ~250", offset)
	}
}

func TestWalkExactlyAtRouteEnd(t *testing.T) {
	route, _ := buildTwoLineRoute()

	line, offset, err := Walk(route, 1000)
	if err != nil {
		t.Fatalf("Walk error: %v", err)
	}
	if line.ID() != 2 {
		t.Errorf("line = %d, want 2", line.ID())
	}
	if abs(offset-500) > 0.5 {
		t.Errorf("offset = %f, want ~500", offset)
	}
}

func TestWalkPastRouteEnd(t *testing.T) {
	route, _ := buildTwoLineRoute()

	if _, _, err := Walk(route, 1001); err != ErrPathExhausted {
		t.Errorf("got err %v, want ErrPathExhausted", err)
	}
}

func TestWalkRespectsPartialStartOffset(t *testing.T) {
	route, m := buildTwoLineRoute()
	l1, _ := m.GetLine(1)
	route.Start = model.PointOnLine{Line: l1, RelativeOffset: 0.2} // 100m in

	line, offset, err := Walk(route, 50)
	if err != nil {
		t.Fatalf("Walk error: %v", err)
	}
	if line.ID() != 1 {
		t.Errorf("line = %d, want 1", line.ID())
	}
	if abs(offset-150) > 0.5 {
		t.Errorf("offset = %f, want ~150 (100m already-travelled + 50m walked)", offset)
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
