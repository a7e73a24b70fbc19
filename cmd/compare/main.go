// Command compare decodes the same OpenLR reference against two map
// snapshots and serves a side-by-side diff view, adapting the teacher's
// cmd/visualize embed+HTTP-preview shape (concurrent backend queries via
// sync.WaitGroup, an embedded static frontend) to comparing two decodes of
// one reference instead of three routing providers for one coordinate pair.
package main

import (
	"context"
	"embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/azybler/openlrdecoder/pkg/config"
	"github.com/azybler/openlrdecoder/pkg/decode"
	"github.com/azybler/openlrdecoder/pkg/mapref"
	"github.com/azybler/openlrdecoder/pkg/memmap/osmimport"
	"github.com/azybler/openlrdecoder/pkg/model"
	"github.com/azybler/openlrdecoder/pkg/observer"
	"github.com/azybler/openlrdecoder/pkg/openlr"
)

//go:embed static
var staticFiles embed.FS

type compareRequest struct {
	Ref string `json:"ref"`
}

type snapshotResult struct {
	Kind                string   `json:"kind,omitempty"`
	LatencyMs           int64    `json:"latency_ms"`
	StartLineID         uint64   `json:"start_line_id,omitempty"`
	EndLineID           uint64   `json:"end_line_id,omitempty"`
	LengthMeters        float64  `json:"length_meters,omitempty"`
	IntermediateLineIDs []uint64 `json:"intermediate_line_ids,omitempty"`
	Error               string   `json:"error,omitempty"`
}

type compareResponse struct {
	MapA snapshotResult `json:"map_a"`
	MapB snapshotResult `json:"map_b"`
	Diff diffSummary    `json:"diff"`
}

type diffSummary struct {
	SameStartLine     bool    `json:"same_start_line"`
	SameEndLine       bool    `json:"same_end_line"`
	LengthDeltaMeters float64 `json:"length_delta_meters"`
}

var (
	mapA, mapB mapref.Map
	cfg        config.Config
)

func main() {
	port := flag.Int("port", 3001, "HTTP port to serve on")
	mapAPath := flag.String("map-a", "", "Path to the first .osm.pbf map snapshot")
	mapBPath := flag.String("map-b", "", "Path to the second .osm.pbf map snapshot")
	flag.Parse()

	if *mapAPath == "" || *mapBPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: compare --map-a <file.osm.pbf> --map-b <file.osm.pbf> [--port 3001]")
		os.Exit(1)
	}

	cfg = config.DefaultConfig()

	var err error
	mapA, err = loadMap(*mapAPath)
	if err != nil {
		log.Fatalf("Failed to load map A: %v", err)
	}
	mapB, err = loadMap(*mapBPath)
	if err != nil {
		log.Fatalf("Failed to load map B: %v", err)
	}

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(staticFS)))
	mux.HandleFunc("/api/compare", handleCompare)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Compare server starting on http://localhost:%d", *port)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func loadMap(path string) (mapref.Map, error) {
	log.Printf("Importing map %s...", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return osmimport.Import(context.Background(), f)
}

func handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req compareRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 4096)).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ref, err := openlr.ParseBase64(req.Ref)
	if err != nil {
		http.Error(w, "invalid reference", http.StatusBadRequest)
		return
	}

	var resp compareResponse
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		resp.MapA = decodeAgainst(r.Context(), ref, mapA)
	}()
	go func() {
		defer wg.Done()
		resp.MapB = decodeAgainst(r.Context(), ref, mapB)
	}()

	wg.Wait()

	resp.Diff = diffSummary{
		SameStartLine:     resp.MapA.StartLineID == resp.MapB.StartLineID,
		SameEndLine:       resp.MapA.EndLineID == resp.MapB.EndLineID,
		LengthDeltaMeters: resp.MapA.LengthMeters - resp.MapB.LengthMeters,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func decodeAgainst(ctx context.Context, ref openlr.LineLocationRef, m mapref.Map) snapshotResult {
	start := time.Now()
	loc, err := decode.DecodeLineLocation(ctx, ref, m, cfg, observer.Noop{})
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return snapshotResult{LatencyMs: latency, Error: err.Error()}
	}

	ids := make([]uint64, len(loc.Intermediate))
	for i, l := range loc.Intermediate {
		ids[i] = uint64(l.ID())
	}

	return snapshotResult{
		Kind:                "line_location",
		LatencyMs:           latency,
		StartLineID:         uint64(loc.Start.Line.ID()),
		EndLineID:           uint64(loc.End.Line.ID()),
		LengthMeters:        lineLocationLength(loc),
		IntermediateLineIDs: ids,
	}
}

func lineLocationLength(loc model.LineLocation) float64 {
	total := loc.Start.Line.Length() * (1 - loc.Start.RelativeOffset)
	for _, l := range loc.Intermediate {
		total += l.Length()
	}
	total += loc.End.Line.Length() * loc.End.RelativeOffset
	return total
}
