// Package obslog adapts the decoder's observer.Observer hooks to structured
// logging via log/slog, in the idiom the OpenStreetMap-domain examples in
// the retrieval pack use (slog.Default().With(...) plus key-value Info/Debug
// calls) rather than the teacher's bare log.Printf.
package obslog

import (
	"log/slog"

	"github.com/azybler/openlrdecoder/pkg/model"
)

// Observer logs candidate and route events at Debug level and the final
// decode outcome at Info level, with a logger scoped by "component".
type Observer struct {
	logger *slog.Logger
}

// New creates an Observer. If logger is nil, slog.Default() is used.
func New(logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{logger: logger.With("component", "openlr_decoder")}
}

func (o *Observer) CandidateEnumerated(lrpIndex int, c model.Candidate) {
	o.logger.Debug("candidate enumerated",
		"lrp_index", lrpIndex,
		"line_id", c.Point.Line.ID(),
		"offset", c.Point.RelativeOffset,
		"score", c.Score,
	)
}

func (o *Observer) CandidateRejected(lrpIndex int, c model.Candidate, reason string) {
	o.logger.Debug("candidate rejected",
		"lrp_index", lrpIndex,
		"line_id", c.Point.Line.ID(),
		"offset", c.Point.RelativeOffset,
		"score", c.Score,
		"reason", reason,
	)
}

func (o *Observer) RouteFound(fromIndex, toIndex int, route model.Route) {
	o.logger.Debug("route found",
		"from_index", fromIndex,
		"to_index", toIndex,
		"length_m", route.Length(),
		"intermediate_lines", len(route.Intermediate),
	)
}

func (o *Observer) RouteRejected(fromIndex, toIndex int, reason string) {
	o.logger.Debug("route rejected",
		"from_index", fromIndex,
		"to_index", toIndex,
		"reason", reason,
	)
}

func (o *Observer) DecodeSucceeded(loc model.LineLocation) {
	o.logger.Info("decode succeeded",
		"intermediate_lines", len(loc.Intermediate),
	)
}

func (o *Observer) DecodeFailed(err error) {
	o.logger.Info("decode failed", "error", err)
}
