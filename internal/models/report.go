package models

// OutcomeKind classifies the result of one service action.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeFailure
	OutcomeSkipped
	// OutcomeAdvisory asks the user to make a change by hand
	OutcomeAdvisory
)

// Marker is the single glyph shown before the outcome message.
func (k OutcomeKind) Marker() string {
	switch k {
	case OutcomeSuccess:
		return "✓"
	case OutcomeFailure:
		return "✗"
	case OutcomeAdvisory:
		return "!"
	default:
		return "-"
	}
}

// Outcome is the result of executing one step against a service.
type Outcome struct {
	Service string
	Kind    OutcomeKind
	Message string
}

// DispatchReport holds outcomes in execution order.
type DispatchReport struct {
	Outcomes []Outcome
}

func (r *DispatchReport) Add(service string, kind OutcomeKind, msg string) {
	r.Outcomes = append(r.Outcomes, Outcome{Service: service, Kind: kind, Message: msg})
}

// Failed reports whether any service failed.
func (r *DispatchReport) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Kind == OutcomeFailure {
			return true
		}
	}
	return false
}

// For returns all outcomes recorded for a service.
func (r *DispatchReport) For(service string) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Service == service {
			out = append(out, o)
		}
	}
	return out
}
