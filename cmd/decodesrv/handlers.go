package main

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/azybler/openlrdecoder/pkg/config"
	"github.com/azybler/openlrdecoder/pkg/decode"
	"github.com/azybler/openlrdecoder/pkg/decodeline"
	"github.com/azybler/openlrdecoder/pkg/mapref"
	"github.com/azybler/openlrdecoder/pkg/model"
	"github.com/azybler/openlrdecoder/pkg/observer"
	"github.com/azybler/openlrdecoder/pkg/openlr"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	m   mapref.Map
	cfg config.Config
	obs observer.Observer
}

// NewHandlers creates handlers serving decodes against m.
func NewHandlers(m mapref.Map, cfg config.Config, obs observer.Observer) *Handlers {
	return &Handlers{m: m, cfg: cfg, obs: obs}
}

// HandleDecode handles POST /api/v1/decode.
func (h *Handlers) HandleDecode(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	var req DecodeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 8192)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	ref, err := openlr.ParseBase64(req.Ref)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_reference")
		return
	}

	result, err := decode.Decode(r.Context(), ref, h.m, h.cfg, h.obs)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	resp := toResponse(result)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

func toResponse(result any) DecodeResponse {
	switch r := result.(type) {
	case model.LineLocation:
		ids := make([]uint64, len(r.Intermediate))
		for i, l := range r.Intermediate {
			ids[i] = uint64(l.ID())
		}
		return DecodeResponse{
			Kind: "line_location",
			LineLocation: &lineLocation{
				StartLineID:         uint64(r.Start.Line.ID()),
				StartOffsetMeters:   r.Start.Line.Length() * r.Start.RelativeOffset,
				EndLineID:           uint64(r.End.Line.ID()),
				EndOffsetMeters:     r.End.Line.Length() * r.End.RelativeOffset,
				IntermediateLineIDs: ids,
			},
		}
	case decode.PointAlongLine:
		pos := r.Coordinates()
		return DecodeResponse{
			Kind: "point_along_line",
			PointAlongLine: &pointResult{
				LineID:       uint64(r.Line.ID()),
				OffsetMeters: r.PositiveOffset,
				Position:     latLngJSON{Lat: pos.Lat, Lng: pos.Lon},
			},
		}
	case decode.PoiWithAccessPoint:
		pos := r.AccessPointCoordinates()
		return DecodeResponse{
			Kind: "poi_with_access_point",
			PoiAccessPoint: &poiResult{
				AccessLineID:       uint64(r.Line.ID()),
				AccessOffsetMeters: r.PositiveOffset,
				AccessPosition:     latLngJSON{Lat: pos.Lat, Lng: pos.Lon},
				POI:                latLngJSON{Lat: r.POI.Lat, Lng: r.POI.Lon},
			},
		}
	case model.Coordinate:
		return DecodeResponse{
			Kind:          "geo_coordinate",
			GeoCoordinate: &latLngJSON{Lat: r.Lat, Lng: r.Lon},
		}
	default:
		return DecodeResponse{Kind: "unknown"}
	}
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var decodeErr *decodeline.DecodeError
	if errors.As(err, &decodeErr) {
		switch decodeErr.Kind {
		case decodeline.NoCandidates, decodeline.NoRoute, decodeline.PathExhausted, decodeline.EmptyLocation:
			writeError(w, http.StatusUnprocessableEntity, decodeErr.Kind.String())
			return
		case decodeline.InvalidReference:
			writeError(w, http.StatusBadRequest, decodeErr.Kind.String())
			return
		case decodeline.Cancelled:
			writeError(w, http.StatusServiceUnavailable, "request_timeout")
			return
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusServiceUnavailable, "request_timeout")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error")
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code})
}
