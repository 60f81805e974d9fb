package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/st/internal/catalog"
	"github.com/julianstephens/st/internal/constants"
)

// ListCmd prints every status keyword.
type ListCmd struct{}

func (cmd *ListCmd) Run(ctx *Context) error {
	r := lipgloss.NewRenderer(ctx.Out)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("KEYWORD", "TEXT", "EMOJI", "DND", "BUSY").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for _, s := range catalog.All() {
		t.Row(s.Keyword, s.DisplayText, s.Emoji, yesNo(s.ChatDND), yesNo(s.HostBusy))
	}
	t.Row(constants.KeywordClear, "(clears every service)", "", "off", "off")

	fmt.Fprintln(ctx.Out, t.Render())
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
