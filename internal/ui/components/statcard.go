package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltscope/internal/ui/theme"
)

// StatCard is a bordered label/value pair with an optional detail line.
type StatCard struct {
	Label  string
	Value  string
	Detail string
	Width  int
}

// View renders the card.
func (c StatCard) View() string {
	body := theme.StatLabel.Render(c.Label) + "\n" + theme.StatValue.Render(c.Value)
	if c.Detail != "" {
		body += "\n" + c.Detail
	}
	style := theme.Card
	if c.Width > 2 {
		style = style.Width(c.Width - 2)
	}
	return style.Render(body)
}

// StatRow lays cards side by side, splitting width evenly.
func StatRow(cards []StatCard, width int) string {
	if len(cards) == 0 {
		return ""
	}
	w := width / len(cards)
	views := make([]string, len(cards))
	for i, c := range cards {
		c.Width = w
		views[i] = c.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}
