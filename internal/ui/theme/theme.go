package theme

import (
	"charm.land/lipgloss/v2"
	"github.com/guptarohit/asciigraph"
)

// Color palette, slate background with energy-source accents
var (
	Primary   = lipgloss.Color("#10B981") // Emerald
	Secondary = lipgloss.Color("#38BDF8") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Clean fills share bars.
var Clean = lipgloss.Color("#10B981")

// Line chart palette, nearest xterm-256 matches of the PNG export colors.
var (
	PlotFossil = asciigraph.LightSlateGray
	PlotClean  = asciigraph.MediumSeaGreen
	PlotSolar  = asciigraph.Orange
	PlotWind   = asciigraph.DodgerBlue
	PlotCoal   = asciigraph.DimGray
	PlotGas    = asciigraph.Tomato
	PlotAxis   = asciigraph.SlateGray
	PlotLabel  = asciigraph.DarkGray
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(TextDim)

	TrendPositive = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	TrendNegative = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	TrendNeutral = lipgloss.NewStyle().
			Foreground(TextDim).
			Bold(true)
)

// Components
var (
	TabActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 2)

	StatLabel = lipgloss.NewStyle().
			Foreground(TextDim)

	StatValue = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)
