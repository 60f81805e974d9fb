package models

import (
	"fmt"
	"time"
)

// ActionKind identifies what a service should do.
type ActionKind int

const (
	ActionNoChange ActionKind = iota
	ActionSet
	ActionClear
	// ActionAdvise is used for services that can only be changed by hand
	ActionAdvise
)

func (k ActionKind) String() string {
	switch k {
	case ActionNoChange:
		return "no-change"
	case ActionSet:
		return "set"
	case ActionClear:
		return "clear"
	case ActionAdvise:
		return "advise"
	default:
		return "unknown"
	}
}

// ServiceAction is the desired state for one external service.
type ServiceAction struct {
	Service string
	Kind    ActionKind

	// Set fields
	Text      string
	Icon      string
	Limited   bool       // chat DND or code-host limited availability
	ExpiresAt *time.Time // nil means no expiration

	// SnoozeMinutes is the chat DND length; zero when Limited is false.
	SnoozeMinutes int64
	// EndSnooze ends chat DND before the main action runs.
	EndSnooze bool
	// Scope restricts a code-host status to one organization.
	Scope string

	// WantOOO is the tracker OOO state the status implies (ActionAdvise only).
	WantOOO bool

	// Detail is the report message shown when the action succeeds.
	Detail string
}

// Describe renders the action for dry runs.
func (a ServiceAction) Describe() string {
	switch a.Kind {
	case ActionSet:
		s := fmt.Sprintf("set %q %s", a.Text, a.Icon)
		if a.Limited {
			if a.SnoozeMinutes > 0 {
				s += fmt.Sprintf(" dnd=%dm", a.SnoozeMinutes)
			} else {
				s += " busy"
			}
		}
		if a.ExpiresAt != nil {
			s += " until " + a.ExpiresAt.Format(time.RFC3339)
		}
		if a.Scope != "" {
			s += " scope=" + a.Scope
		}
		if a.EndSnooze {
			s = "end dnd, " + s
		}
		return s
	case ActionClear:
		return "clear"
	case ActionAdvise:
		if a.WantOOO {
			return "check out of office is set"
		}
		return "check out of office is cleared"
	default:
		return "no change"
	}
}
