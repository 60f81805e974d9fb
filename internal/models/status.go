package models

import "time"

// StatusDefinition is one row of the status catalog.
type StatusDefinition struct {
	Keyword     string // unique short identifier typed on the command line
	DisplayText string // human readable status sentence
	Emoji       string // presence icon code, e.g. ":calendar:"
	ChatDND     bool   // suppress chat notifications while the status is active
	HostBusy    bool   // mark the code host as having limited availability
	Absence     bool   // long absence: show the return date in the chat text and remind about tracker OOO
}

// Transition is the kind of presence change a keyword requests.
type Transition int

const (
	// TransitionAnnounce sets a catalog status
	TransitionAnnounce Transition = iota
	// TransitionReturn ends an announced status and reports being back
	TransitionReturn
	// TransitionClear resets every service to neutral
	TransitionClear
)

func (t Transition) String() string {
	switch t {
	case TransitionAnnounce:
		return "announce"
	case TransitionReturn:
		return "return"
	case TransitionClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Request is a fully resolved invocation, ready for planning.
type Request struct {
	Transition Transition
	Status     StatusDefinition // zero for TransitionClear
	Return     *time.Time       // nil means indefinite
}
