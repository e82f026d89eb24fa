package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltscope/internal/ui/theme"
)

// ShareBar displays a percentage as a horizontal gauge.
type ShareBar struct {
	Percent float64 // 0-100
	Width   int
	Fill    color.Color
}

// View renders the gauge followed by the percentage.
func (p ShareBar) View() string {
	label := fmt.Sprintf(" %.1f%%", p.Percent)
	barWidth := p.Width - len(label)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent / 100)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	fill := p.Fill
	if fill == nil {
		fill = theme.Clean
	}

	return lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}
