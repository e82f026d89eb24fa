package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltscope/internal/ui/theme"
)

// The dashboard needs room for two chart cards side by side; below the
// compact width they stack.
const (
	MinWidth  = 80
	MinHeight = 24

	compactWidth = 100
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// CredentialStatus is the header's right-hand indicator.
type CredentialStatus struct {
	Present bool
	Masked  string
	Model   string
}

var (
	bar = lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	brand    = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	plain    = lipgloss.NewStyle().Foreground(theme.Text)
	dim      = lipgloss.NewStyle().Foreground(theme.TextDim)
	keyOn    = lipgloss.NewStyle().Foreground(theme.Success)
	keyOff   = lipgloss.NewStyle().Foreground(theme.Accent)
	hintKey  = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	tooSmall = lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center, lipgloss.Center)
)

func IsCompactWidth(width int) bool { return width < compactWidth }

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the terminal with a resize request.
func RenderMinSizeMessage(width, height int) string {
	return tooSmall.Width(width).Height(height).Render(fmt.Sprintf(
		"voltscope needs at least %d×%d\n\nthis terminal is %d×%d",
		MinWidth, MinHeight, width, height,
	))
}

// RenderHeader draws the brand on the left, the screen title centered and
// the credential indicator on the right. The title yields first when the
// bar is too narrow for all three.
func RenderHeader(title string, status CredentialStatus, width int) string {
	right := keyOff.Render("○ no API key")
	if status.Present {
		right = keyOn.Render("● "+status.Masked) + dim.Render("  "+status.Model)
	}
	left := brand.Render("  ⚡ voltscope")

	// Border plus one cell of padding on each side.
	inner := max(width-4, 0)
	side := max(lipgloss.Width(left), lipgloss.Width(right))
	mid := inner - 2*side
	if mid < lipgloss.Width(title)+2 {
		mid = max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
		title = ""
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.PlaceHorizontal(side, lipgloss.Left, left),
		lipgloss.PlaceHorizontal(mid, lipgloss.Center, plain.Render(title)),
		lipgloss.PlaceHorizontal(side, lipgloss.Right, right),
	)
	return bar.Width(width).Render(row)
}

func RenderFooter(hints []KeyHint, width int) string {
	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(hintKey.Render(h.Key) + " " + dim.Render(h.Description))
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, body and footer, clipping or padding the body
// to whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content),
		footer,
	)
}

// Centered wraps s to width and centers each line.
func Centered(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}
