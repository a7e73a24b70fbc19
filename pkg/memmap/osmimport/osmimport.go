// Package osmimport builds a memmap.Map from an OpenStreetMap PBF extract.
// Grounded on the teacher's pkg/osm/parser.go two-pass scan
// (isCarAccessible/directionFlags, referenced-node collection, then
// coordinate resolution), generalized to also assign FRC/FOW per edge from
// the way's highway tag, which the teacher's CH-routing import has no
// concept of.
package osmimport

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/azybler/openlrdecoder/pkg/memmap"
	"github.com/azybler/openlrdecoder/pkg/model"
)

// carHighways lists highway tag values accessible by car, same set as the
// teacher's CH-routing importer.
var carHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

// frcByHighway maps an OSM highway tag to a Functional Road Class. Values
// follow the usual OpenLR FRC convention: FRC0 is the most important
// (motorways), FRC7 the least.
var frcByHighway = map[string]model.FRC{
	"motorway":       model.FRC0,
	"motorway_link":  model.FRC0,
	"trunk":          model.FRC1,
	"trunk_link":     model.FRC1,
	"primary":        model.FRC2,
	"primary_link":   model.FRC2,
	"secondary":      model.FRC3,
	"secondary_link": model.FRC3,
	"tertiary":       model.FRC4,
	"tertiary_link":  model.FRC4,
	"unclassified":   model.FRC5,
	"residential":    model.FRC5,
	"living_street":  model.FRC6,
	"service":        model.FRC7,
}

func fowFor(tags osm.Tags) model.FOW {
	if tags.Find("junction") == "roundabout" {
		return model.FOWRoundabout
	}
	hw := tags.Find("highway")
	switch hw {
	case "motorway", "motorway_link", "trunk", "trunk_link":
		if tags.Find("dual_carriageway") == "yes" || tags.Find("lanes") == "4" {
			return model.FOWMultipleCarriageway
		}
		return model.FOWMotorway
	case "":
		return model.FOWUndefined
	default:
		return model.FOWSingleCarriageway
	}
}

func isCarAccessible(tags osm.Tags) bool {
	hw := tags.Find("highway")
	if !carHighways[hw] {
		return false
	}
	if tags.Find("area") == "yes" {
		return false
	}
	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false
	}
	if tags.Find("motor_vehicle") == "no" {
		return false
	}
	return true
}

func directionFlags(tags osm.Tags) (forward, backward bool) {
	forward, backward = true, true

	hw := tags.Find("highway")
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}

	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward, backward = true, false
	case "-1", "reverse":
		forward, backward = false, true
	case "no":
		forward, backward = true, true
	case "reversible":
		forward, backward = false, false
	}

	return forward, backward
}

type wayInfo struct {
	NodeIDs  []osm.NodeID
	FRC      model.FRC
	FOW      model.FOW
	Forward  bool
	Backward bool
}

// Import reads an OSM PBF extract and returns a populated memmap.Map. rs is
// scanned twice (once for ways, once for nodes), so it must support
// seeking back to the start.
func Import(ctx context.Context, rs io.ReadSeeker) (*memmap.Map, error) {
	referencedNodes := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if !isCarAccessible(w.Tags) || len(w.Nodes) < 2 {
			continue
		}
		fwd, bwd := directionFlags(w.Tags)
		if !fwd && !bwd {
			continue
		}

		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			referencedNodes[wn.ID] = struct{}{}
		}

		hw := w.Tags.Find("highway")
		frc, ok := frcByHighway[hw]
		if !ok {
			frc = model.FRC7
		}

		ways = append(ways, wayInfo{
			NodeIDs:  nodeIDs,
			FRC:      frc,
			FOW:      fowFor(w.Tags),
			Forward:  fwd,
			Backward: bwd,
		})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("osmimport: pass 1 (ways): %w", err)
	}
	scanner.Close()
	log.Printf("osmimport: pass 1 complete: %d ways, %d referenced nodes", len(ways), len(referencedNodes))

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("osmimport: seek for pass 2: %w", err)
	}

	coords := make(map[osm.NodeID]model.Coordinate, len(referencedNodes))
	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referencedNodes[n.ID]; !needed {
			continue
		}
		coords[n.ID] = model.Coordinate{Lon: n.Lon, Lat: n.Lat}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("osmimport: pass 2 (nodes): %w", err)
	}
	scanner.Close()
	log.Printf("osmimport: pass 2 complete: %d node coordinates collected", len(coords))

	builder := memmap.NewBuilder()
	var nextID model.LineID = 1
	var skipped int

	addEdge := func(from, to osm.NodeID, frc model.FRC, fow model.FOW) {
		fromCoord, fromOk := coords[from]
		toCoord, toOk := coords[to]
		if !fromOk || !toOk {
			skipped++
			return
		}
		builder.AddEdge(memmap.RawEdge{
			ID:        nextID,
			FromCoord: fromCoord,
			ToCoord:   toCoord,
			FOW:       fow,
			FRC:       frc,
		})
		nextID++
	}

	for _, w := range ways {
		for i := 0; i < len(w.NodeIDs)-1; i++ {
			if w.Forward {
				addEdge(w.NodeIDs[i], w.NodeIDs[i+1], w.FRC, w.FOW)
			}
			if w.Backward {
				addEdge(w.NodeIDs[i+1], w.NodeIDs[i], w.FRC, w.FOW)
			}
		}
	}
	if skipped > 0 {
		log.Printf("osmimport: skipped %d edges due to missing node coordinates", skipped)
	}
	log.Printf("osmimport: built %d directed edges", nextID-1)

	return builder.Build(), nil
}
