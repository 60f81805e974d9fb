package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/st/internal/errors"
	"github.com/julianstephens/st/internal/logger"
	"github.com/julianstephens/st/internal/models"
)

// Chat is the chat presence service.
type Chat interface {
	SetProfile(ctx context.Context, text, emoji string, expiresAt int64) error
	ClearProfile(ctx context.Context) error
	SetSnooze(ctx context.Context, minutes int64) error
	EndSnooze(ctx context.Context) error
}

// Host is the code-host availability service.
type Host interface {
	SetLimitedAvailability(ctx context.Context, message, emoji, expiresAt, scope string) error
	ClearStatus(ctx context.Context) error
}

// Tracker is the project tracker. It can only be read.
type Tracker interface {
	IsOutOfOffice(ctx context.Context) (bool, error)
}

// Services bundles the three adapters.
type Services struct {
	Chat    Chat
	Host    Host
	Tracker Tracker
}

// Execute runs the plan against each service in order: chat, code host, tracker.
// Every service is attempted exactly once; failures are recorded and never retried.
func Execute(ctx context.Context, plan Plan, svc Services) models.DispatchReport {
	var report models.DispatchReport
	runChat(ctx, plan.Chat, svc.Chat, &report)
	runHost(ctx, plan.Host, svc.Host, &report)
	runTracker(ctx, plan.Tracker, svc.Tracker, &report)
	return report
}

func fail(report *models.DispatchReport, service string, err error) {
	logger.Warn("service action failed", "service", service, "error", err)
	report.Add(service, models.OutcomeFailure, err.Error())
}

func runChat(ctx context.Context, a models.ServiceAction, chat Chat, report *models.DispatchReport) {
	logger.Debug("dispatching", "service", a.Service, "action", a.Kind.String())

	switch a.Kind {
	case models.ActionClear:
		if err := chat.ClearProfile(ctx); err != nil {
			fail(report, a.Service, err)
			return
		}
		if err := chat.EndSnooze(ctx); err != nil {
			fail(report, a.Service, err)
			return
		}
		report.Add(a.Service, models.OutcomeSuccess, a.Detail)

	case models.ActionSet:
		if a.EndSnooze {
			// A missing token is reported once, by the profile update below
			if err := chat.EndSnooze(ctx); err != nil && !errors.Is(err, errors.ErrMissingCredential) {
				fail(report, a.Service, fmt.Errorf("ending DND: %w", err))
			}
		}
		var expires int64
		if a.ExpiresAt != nil {
			expires = a.ExpiresAt.Unix()
		}
		if err := chat.SetProfile(ctx, a.Text, a.Icon, expires); err != nil {
			fail(report, a.Service, err)
			return
		}
		if a.Limited {
			if err := chat.SetSnooze(ctx, a.SnoozeMinutes); err != nil {
				fail(report, a.Service, err)
				return
			}
		}
		report.Add(a.Service, models.OutcomeSuccess, a.Detail)

	default:
		report.Add(a.Service, models.OutcomeSkipped, a.Detail)
	}
}

func runHost(ctx context.Context, a models.ServiceAction, host Host, report *models.DispatchReport) {
	logger.Debug("dispatching", "service", a.Service, "action", a.Kind.String())

	switch a.Kind {
	case models.ActionSet:
		var expires string
		if a.ExpiresAt != nil {
			expires = a.ExpiresAt.UTC().Format(time.RFC3339)
		}
		if err := host.SetLimitedAvailability(ctx, a.Text, a.Icon, expires, a.Scope); err != nil {
			fail(report, a.Service, err)
			return
		}
		report.Add(a.Service, models.OutcomeSuccess, a.Detail)

	case models.ActionClear:
		if err := host.ClearStatus(ctx); err != nil {
			fail(report, a.Service, err)
			return
		}
		report.Add(a.Service, models.OutcomeSuccess, a.Detail)

	default:
		report.Add(a.Service, models.OutcomeSkipped, a.Detail)
	}
}

func runTracker(ctx context.Context, a models.ServiceAction, tracker Tracker, report *models.DispatchReport) {
	logger.Debug("dispatching", "service", a.Service, "action", a.Kind.String())

	if a.Kind != models.ActionAdvise {
		report.Add(a.Service, models.OutcomeSkipped, a.Detail)
		return
	}

	// An unreadable tracker counts as "not set"
	ooo, err := tracker.IsOutOfOffice(ctx)
	if err != nil {
		logger.Debug("tracker out-of-office check unavailable", "error", err)
		ooo = false
	}

	switch {
	case a.WantOOO && ooo:
		report.Add(a.Service, models.OutcomeSuccess, msgOOOAlreadySet)
	case a.WantOOO:
		report.Add(a.Service, models.OutcomeAdvisory, msgSetOOO)
	case ooo:
		report.Add(a.Service, models.OutcomeAdvisory, msgClearOOO)
	default:
		report.Add(a.Service, models.OutcomeSkipped, msgNoChange)
	}
}
