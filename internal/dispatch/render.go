package dispatch

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/st/internal/models"
)

// Printer writes report lines. Failures go to the error writer.
type Printer struct {
	out, errOut io.Writer
	styles      map[models.OutcomeKind]lipgloss.Style
}

func NewPrinter(out, errOut io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:    out,
		errOut: errOut,
		styles: map[models.OutcomeKind]lipgloss.Style{
			models.OutcomeSuccess:  r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
			models.OutcomeFailure:  lipgloss.NewRenderer(errOut).NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			models.OutcomeAdvisory: r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			models.OutcomeSkipped:  r.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

func (p *Printer) line(service, marker, msg string) string {
	return fmt.Sprintf("  %-7s %s %s\n", service, marker, msg)
}

// Report prints one line per outcome.
func (p *Printer) Report(report models.DispatchReport) {
	for _, o := range report.Outcomes {
		marker := p.styles[o.Kind].Render(o.Kind.Marker())
		w := p.out
		if o.Kind == models.OutcomeFailure {
			w = p.errOut
		}
		fmt.Fprint(w, p.line(o.Service, marker, o.Message))
	}
}

// Plan prints the planned actions without executing them.
func (p *Printer) Plan(plan Plan) {
	for _, a := range plan.Actions() {
		marker := p.styles[models.OutcomeSkipped].Render("~")
		fmt.Fprint(p.out, p.line(a.Service, marker, a.Describe()))
	}
}
