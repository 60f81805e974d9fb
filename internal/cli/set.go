package cli

import (
	"context"

	"github.com/julianstephens/st/internal/dispatch"
	"github.com/julianstephens/st/internal/logger"
)

// SetCmd resolves a status keyword and pushes it to every service.
type SetCmd struct {
	Keyword string `arg:"" help:"Status keyword: lunch, zoom, tuple, meet, eod, vacation, sick, away, back, clear."`
	Date    string `arg:"" optional:"" help:"When you'll return (friday, 3/10, 3-10-2026, tomorrow). For lunch, the return time."`
	Time    string `arg:"" optional:"" help:"What time you'll return (8am, 9:30am, 15:00). Defaults to 7am. Ignored for lunch."`
	DryRun  bool   `help:"Show what would be sent without contacting any service."`
}

func (cmd *SetCmd) Run(ctx *Context) error {
	now := ctx.Clock.Now()

	// All parsing happens before any service is contacted
	req, err := dispatch.NewRequest(cmd.Keyword, cmd.Date, cmd.Time, now)
	if err != nil {
		return err
	}
	logger.Debug("resolved request", "keyword", req.Status.Keyword, "transition", req.Transition.String(), "return", req.Return)

	plan := dispatch.BuildPlan(req, now, ctx.Config.GitHubOrgID)
	printer := dispatch.NewPrinter(ctx.Out, ctx.Err)
	if cmd.DryRun {
		printer.Plan(plan)
		return nil
	}

	report := dispatch.Execute(context.Background(), plan, ctx.Services)
	printer.Report(report)
	if report.Failed() {
		logger.Info("dispatch finished with failures", "keyword", req.Status.Keyword)
	}
	return nil
}
