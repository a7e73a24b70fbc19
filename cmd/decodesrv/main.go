package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/azybler/openlrdecoder/pkg/config"
	"github.com/azybler/openlrdecoder/pkg/memmap/osmimport"
	"github.com/azybler/openlrdecoder/pkg/obslog"
)

func main() {
	mapPath := flag.String("map", "", "Path to .osm.pbf map extract")
	port := flag.Int("port", 8091, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	radius := flag.Float64("radius", 0, "Candidate search radius in meters (0 = use default)")
	flag.Parse()

	if *mapPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: decodesrv --map <file.osm.pbf> [--port 8091] [--cors-origin origin]")
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

	// Reclaim memory from import-time temporaries before serving traffic.
	runtime.GC()
	debug.FreeOSMemory()

	log.Printf("Ready in %s", time.Since(start).Round(time.Millisecond))

	cfg := config.DefaultConfig()
	if *radius > 0 {
		cfg.SearchRadius = *radius
	}

	logger := slog.Default()
	obs := obslog.New(logger)

	srvCfg := DefaultServerConfig(fmt.Sprintf(":%d", *port))
	srvCfg.CORSOrigin = *corsOrigin

	handlers := NewHandlers(m, cfg, obs)
	srv := newServer(srvCfg, handlers, logger)

	if err := listenAndServe(srv, logger); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
