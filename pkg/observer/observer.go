// Package observer defines the decoder's passive telemetry sink: a small
// set of callback hooks fired at decision points, purely for logging and
// tests. Observer calls must never influence decoding state.
package observer

import "github.com/azybler/openlrdecoder/pkg/model"

// Observer receives non-authoritative notifications from a decode call.
type Observer interface {
	// CandidateEnumerated fires once per candidate produced for an LRP.
	CandidateEnumerated(lrpIndex int, c model.Candidate)

	// CandidateRejected fires when a candidate is filtered out, with a
	// short human-readable reason.
	CandidateRejected(lrpIndex int, c model.Candidate, reason string)

	// RouteFound fires when an admissible route is found between a
	// chosen candidate pair.
	RouteFound(fromIndex, toIndex int, route model.Route)

	// RouteRejected fires when a candidate pair's route search fails or
	// is inadmissible, with a short human-readable reason.
	RouteRejected(fromIndex, toIndex int, reason string)

	// DecodeSucceeded fires once, when a full decode completes.
	DecodeSucceeded(loc model.LineLocation)

	// DecodeFailed fires once, when a decode call returns an error.
	DecodeFailed(err error)
}

// Noop is a zero-cost Observer that discards every notification. Its
// methods allocate nothing, so installing it as the default has no hot-loop
// cost.
type Noop struct{}

func (Noop) CandidateEnumerated(int, model.Candidate)         {}
func (Noop) CandidateRejected(int, model.Candidate, string)   {}
func (Noop) RouteFound(int, int, model.Route)                 {}
func (Noop) RouteRejected(int, int, string)                   {}
func (Noop) DecodeSucceeded(model.LineLocation)                {}
func (Noop) DecodeFailed(error)                                {}

var _ Observer = Noop{}

// Multi fans a notification out to every observer in the slice, in order.
type Multi []Observer

func (m Multi) CandidateEnumerated(lrpIndex int, c model.Candidate) {
	for _, o := range m {
		o.CandidateEnumerated(lrpIndex, c)
	}
}

func (m Multi) CandidateRejected(lrpIndex int, c model.Candidate, reason string) {
	for _, o := range m {
		o.CandidateRejected(lrpIndex, c, reason)
	}
}

func (m Multi) RouteFound(fromIndex, toIndex int, route model.Route) {
	for _, o := range m {
		o.RouteFound(fromIndex, toIndex, route)
	}
}

func (m Multi) RouteRejected(fromIndex, toIndex int, reason string) {
	for _, o := range m {
		o.RouteRejected(fromIndex, toIndex, reason)
	}
}

func (m Multi) DecodeSucceeded(loc model.LineLocation) {
	for _, o := range m {
		o.DecodeSucceeded(loc)
	}
}

func (m Multi) DecodeFailed(err error) {
	for _, o := range m {
		o.DecodeFailed(err)
	}
}

var _ Observer = Multi{}
