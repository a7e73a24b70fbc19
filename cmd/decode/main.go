package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/azybler/openlrdecoder/pkg/config"
	"github.com/azybler/openlrdecoder/pkg/decode"
	"github.com/azybler/openlrdecoder/pkg/memmap/osmimport"
	"github.com/azybler/openlrdecoder/pkg/model"
	"github.com/azybler/openlrdecoder/pkg/observer"
	"github.com/azybler/openlrdecoder/pkg/openlr"
)

func main() {
	mapPath := flag.String("map", "", "Path to .osm.pbf map extract")
	ref := flag.String("ref", "", "Base64-encoded OpenLR location reference")
	radius := flag.Float64("radius", 0, "Candidate search radius in meters (0 = use default)")
	flag.Parse()

	if *mapPath == "" || *ref == "" {
		fmt.Fprintln(os.Stderr, "Usage: decode --map <file.osm.pbf> --ref <base64> [--radius meters]")
		os.Exit(1)
	}

	start := time.Now()

	log.Printf("Opening map file %s...", *mapPath)
	f, err := os.Open(*mapPath)
	if err != nil {
		log.Fatalf("Failed to open map file: %v", err)
	}
	defer f.Close()

	log.Println("Importing map...")
	m, err := osmimport.Import(context.Background(), f)
	if err != nil {
		log.Fatalf("Failed to import map: %v", err)
	}
	log.Printf("Map loaded in %s", time.Since(start).Round(time.Millisecond))

	cfg := config.DefaultConfig()
	if *radius > 0 {
		cfg.SearchRadius = *radius
	}

	log.Println("Parsing location reference...")
	parsed, err := openlr.ParseBase64(*ref)
	if err != nil {
		log.Fatalf("Failed to parse reference: %v", err)
	}

	log.Println("Decoding...")
	result, err := decode.Decode(context.Background(), parsed, m, cfg, observer.Noop{})
	if err != nil {
		log.Fatalf("Decode failed: %v", err)
	}

	printResult(result)
	log.Printf("Done in %s", time.Since(start).Round(time.Millisecond))
}

// printResult formats the result by its concrete kind. decode.Decode only
// ever returns one of these four, per its own doc comment.
func printResult(result any) {
	switch r := result.(type) {
	case model.LineLocation:
		fmt.Printf("line location: start_line=%d start_offset=%.1fm end_line=%d end_offset=%.1fm intermediate_lines=%d\n",
			r.Start.Line.ID(), r.Start.Line.Length()*r.Start.RelativeOffset,
			r.End.Line.ID(), r.End.Line.Length()*r.End.RelativeOffset,
			len(r.Intermediate))
	case decode.PointAlongLine:
		pos := r.Coordinates()
		fmt.Printf("point along line: line=%d offset=%.1fm at (%.6f, %.6f)\n", r.Line.ID(), r.PositiveOffset, pos.Lon, pos.Lat)
	case decode.PoiWithAccessPoint:
		pos := r.AccessPointCoordinates()
		fmt.Printf("poi with access point: access_line=%d access_offset=%.1fm at (%.6f, %.6f), poi=(%.6f, %.6f)\n",
			r.Line.ID(), r.PositiveOffset, pos.Lon, pos.Lat, r.POI.Lon, r.POI.Lat)
	case model.Coordinate:
		fmt.Printf("geo coordinate: (%.6f, %.6f)\n", r.Lon, r.Lat)
	default:
		fmt.Printf("decoded: %+v\n", r)
	}
}
