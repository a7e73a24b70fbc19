package pathsearch

import (
	"context"
	"testing"

	"github.com/azybler/openlrdecoder/pkg/config"
	"github.com/azybler/openlrdecoder/pkg/memmap"
	"github.com/azybler/openlrdecoder/pkg/model"
)

// buildJunctionMap creates two 500m lines joined at a node:
//
//	A ---500m--- N ---500m--- B
func buildJunctionMap() *memmap.Map {
	b := memmap.NewBuilder()
	b.AddEdge(memmap.RawEdge{
		ID:        1,
		FromCoord: model.Coordinate{Lon: 103.0000, Lat: 1.0000},
		ToCoord:   model.Coordinate{Lon: 103.0045, Lat: 1.0000},
		FOW:       model.FOWSingleCarriageway,
		FRC:       model.FRC3,
		Length:    500,
	})
	b.AddEdge(memmap.RawEdge{
		ID:        2,
		FromCoord: model.Coordinate{Lon: 103.0045, Lat: 1.0000},
		ToCoord:   model.Coordinate{Lon: 103.0090, Lat: 1.0000},
		FOW:       model.FOWSingleCarriageway,
		FRC:       model.FRC3,
		Length:    500,
	})
	return b.Build()
}

func TestFindRouteSameLineShortcut(t *testing.T) {
	m := memmap.NewBuilder()
	m.AddEdge(memmap.RawEdge{
		ID:        1,
		FromCoord: model.Coordinate{Lon: 103.0000, Lat: 1.0000},
		ToCoord:   model.Coordinate{Lon: 103.0090, Lat: 1.0000},
		FOW:       model.FOWSingleCarriageway,
		FRC:       model.FRC3,
		Length:    1000,
	})
	built := m.Build()
	line, _ := built.GetLine(1)

	from := model.PointOnLine{Line: line, RelativeOffset: 0.1}
	to := model.PointOnLine{Line: line, RelativeOffset: 0.9}

	cfg := config.DefaultConfig()
	route, err := FindRoute(context.Background(), from, to, 800, model.FRC3, cfg, built)
	if err != nil {
		t.Fatalf("FindRoute error: %v", err)
	}
	if len(route.Intermediate) != 0 {
		t.Errorf("expected no intermediate lines, got %d", len(route.Intermediate))
	}
	if got, want := route.Length(), 800.0; abs(got-want) > 1 {
		t.Errorf("route length = %f, want ~%f", got, want)
	}
}

func TestFindRouteAcrossJunction(t *testing.T) {
	built := buildJunctionMap()
	l1, _ := built.GetLine(1)
	l2, _ := built.GetLine(2)

	from := model.PointOnLine{Line: l1, RelativeOffset: 0.0}
	to := model.PointOnLine{Line: l2, RelativeOffset: 1.0}

	cfg := config.DefaultConfig()
	route, err := FindRoute(context.Background(), from, to, 1000, model.FRC3, cfg, built)
	if err != nil {
		t.Fatalf("FindRoute error: %v", err)
	}
	if got, want := route.Length(), 1000.0; abs(got-want) > 1 {
		t.Errorf("route length = %f, want ~%f", got, want)
	}
}

func TestFindRouteFRCCeilingRejectsShortcut(t *testing.T) {
	b := memmap.NewBuilder()
	// Approach line ending at node A.
	b.AddEdge(memmap.RawEdge{
		ID:        1,
		FromCoord: model.Coordinate{Lon: 102.9990, Lat: 1.0000},
		ToCoord:   model.Coordinate{Lon: 103.0000, Lat: 1.0000}, // node A
		FRC:       model.FRC2,
		Length:    100,
	})
	// Direct A->B shortcut: low importance (frc=5), forbidden by the
	// ceiling, short.
	b.AddEdge(memmap.RawEdge{
		ID:        2,
		FromCoord: model.Coordinate{Lon: 103.0000, Lat: 1.0000}, // node A
		ToCoord:   model.Coordinate{Lon: 103.0010, Lat: 1.0000}, // node B
		FRC:       model.FRC5,
		Length:    100,
	})
	// Detour via higher-importance (frc=2) lines, longer.
	b.AddEdge(memmap.RawEdge{
		ID:        3,
		FromCoord: model.Coordinate{Lon: 103.0000, Lat: 1.0000}, // node A
		ToCoord:   model.Coordinate{Lon: 103.0000, Lat: 1.0010}, // node C
		FRC:       model.FRC2,
		Length:    150,
	})
	b.AddEdge(memmap.RawEdge{
		ID:        4,
		FromCoord: model.Coordinate{Lon: 103.0000, Lat: 1.0010}, // node C
		ToCoord:   model.Coordinate{Lon: 103.0010, Lat: 1.0000}, // node B
		FRC:       model.FRC2,
		Length:    150,
	})
	// Departure line starting at node B.
	b.AddEdge(memmap.RawEdge{
		ID:        5,
		FromCoord: model.Coordinate{Lon: 103.0010, Lat: 1.0000}, // node B
		ToCoord:   model.Coordinate{Lon: 103.0020, Lat: 1.0000},
		FRC:       model.FRC2,
		Length:    100,
	})
	built := b.Build()
	approach, _ := built.GetLine(1)
	departure, _ := built.GetLine(5)

	from := model.PointOnLine{Line: approach, RelativeOffset: 1.0}
	to := model.PointOnLine{Line: departure, RelativeOffset: 0.0}

	cfg := config.DefaultConfig()
	cfg.DistanceTolerance = 0.3

	route, err := FindRoute(context.Background(), from, to, 300, model.FRC2, cfg, built)
	if err != nil {
		t.Fatalf("expected detour to be admissible, got error: %v", err)
	}
	if len(route.Intermediate) != 2 {
		t.Errorf("expected the 2-line detour, got %d intermediate lines", len(route.Intermediate))
	}
	for _, l := range route.Intermediate {
		if l.ID() == 2 {
			t.Errorf("route used the FRC-5 shortcut line, which exceeds the FRC-2 ceiling")
		}
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
