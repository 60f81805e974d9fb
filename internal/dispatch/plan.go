// Package dispatch decides what each external service should do for a status
// keyword and carries those decisions out, one service at a time.
package dispatch

import (
	"fmt"
	"time"

	"github.com/julianstephens/st/internal/catalog"
	"github.com/julianstephens/st/internal/constants"
	"github.com/julianstephens/st/internal/models"
	"github.com/julianstephens/st/internal/utils"
)

const (
	msgNoChange        = "No change"
	msgCleared         = "Cleared"
	msgLimited         = "Limited availability"
	msgOrgOnly         = " (organization only)"
	msgSetOOO          = "Set Out of Office manually: Profile (icon) > Set out of office"
	msgClearOOO        = "Clear Out of Office manually: Profile (icon) > Set out of office"
	msgOOOAlreadySet   = "Out of Office already set"
	msgChatClearedDone = "Cleared (DND off)"
)

// Plan is the full set of decisions for one invocation.
type Plan struct {
	Request models.Request
	Now     time.Time
	Chat    models.ServiceAction
	Host    models.ServiceAction
	Tracker models.ServiceAction
}

// Actions returns the per-service actions in execution order.
func (p Plan) Actions() []models.ServiceAction {
	return []models.ServiceAction{p.Chat, p.Host, p.Tracker}
}

// NewRequest resolves the keyword and its date/time tokens. For lunch the
// first token is a time and the second is ignored; lunch always has a return
// time. Tokens are still validated for clear even though clear ignores them.
func NewRequest(keyword, dateToken, timeToken string, now time.Time) (models.Request, error) {
	transition, def, err := catalog.Resolve(keyword)
	if err != nil {
		return models.Request{}, err
	}
	req := models.Request{Transition: transition, Status: def}

	if def.Keyword == constants.KeywordLunch {
		back, err := utils.ResolveLunchReturn(dateToken, now)
		if err != nil {
			return models.Request{}, err
		}
		req.Return = &back
		return req, nil
	}

	if dateToken != "" {
		back, err := utils.ResolveReturn(dateToken, timeToken, now)
		if err != nil {
			return models.Request{}, err
		}
		if transition != models.TransitionClear {
			req.Return = &back
		}
	}
	return req, nil
}

// SnoozeMinutes is the DND length until back, or the full-day fallback when
// there is no return time or it has already passed.
func SnoozeMinutes(back *time.Time, now time.Time) int64 {
	if back == nil {
		return constants.DNDFallbackMinutes
	}
	diff := int64(back.Sub(now) / time.Minute)
	if diff > 0 {
		return diff
	}
	return constants.DNDFallbackMinutes
}

// BuildPlan computes every service action without touching the network.
// scope is the optional code-host organization id.
func BuildPlan(req models.Request, now time.Time, scope string) Plan {
	return Plan{
		Request: req,
		Now:     now,
		Chat:    chatAction(req, now),
		Host:    hostAction(req, scope),
		Tracker: trackerAction(req),
	}
}

func chatAction(req models.Request, now time.Time) models.ServiceAction {
	a := models.ServiceAction{Service: constants.ServiceSlack}

	if req.Transition == models.TransitionClear {
		a.Kind = models.ActionClear
		a.EndSnooze = true
		a.Detail = msgChatClearedDone
		return a
	}

	def := req.Status
	a.Kind = models.ActionSet
	a.Text = def.DisplayText
	a.Icon = def.Emoji
	a.ExpiresAt = req.Return
	a.EndSnooze = req.Transition == models.TransitionReturn

	shown := def.DisplayText
	if def.Absence && req.Return != nil {
		a.Text = fmt.Sprintf("%s. %s", def.DisplayText, utils.FormatHorizon(*req.Return, now, false))
		shown = fmt.Sprintf("%s. %s", def.DisplayText, utils.FormatHorizon(*req.Return, now, true))
	}

	var dnd string
	if def.ChatDND {
		a.Limited = true
		a.SnoozeMinutes = SnoozeMinutes(req.Return, now)
		if req.Return != nil {
			dnd = fmt.Sprintf(" (DND until %s)", utils.FormatTime(*req.Return))
		} else {
			dnd = " (DND on)"
		}
	}
	if a.EndSnooze {
		dnd += " (DND off)"
	}
	a.Detail = fmt.Sprintf("%s %s%s", shown, def.Emoji, dnd)
	return a
}

func hostAction(req models.Request, scope string) models.ServiceAction {
	a := models.ServiceAction{Service: constants.ServiceGitHub}

	switch req.Transition {
	case models.TransitionClear, models.TransitionReturn:
		a.Kind = models.ActionClear
		a.Detail = msgCleared
	case models.TransitionAnnounce:
		if !req.Status.HostBusy {
			a.Kind = models.ActionNoChange
			a.Detail = msgNoChange
			return a
		}
		a.Kind = models.ActionSet
		a.Text = req.Status.DisplayText
		a.Icon = req.Status.Emoji
		a.Limited = true
		a.ExpiresAt = req.Return
		a.Scope = scope
		a.Detail = msgLimited
		if scope != "" {
			a.Detail += msgOrgOnly
		}
	}
	return a
}

func trackerAction(req models.Request) models.ServiceAction {
	a := models.ServiceAction{Service: constants.ServiceAsana, Kind: models.ActionNoChange, Detail: msgNoChange}

	switch req.Transition {
	case models.TransitionAnnounce:
		if req.Status.Absence {
			a.Kind = models.ActionAdvise
			a.WantOOO = true
		}
	case models.TransitionReturn, models.TransitionClear:
		a.Kind = models.ActionAdvise
		a.WantOOO = false
	}
	return a
}
