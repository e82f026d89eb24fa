package dashboard

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/voltscope/internal/aggregate"
	"github.com/abhisek/voltscope/internal/credential"
	"github.com/abhisek/voltscope/internal/energy"
	"github.com/abhisek/voltscope/internal/narrative"
	"github.com/abhisek/voltscope/internal/router"
	"github.com/abhisek/voltscope/internal/screen"
	"github.com/abhisek/voltscope/internal/screens/apikey"
	"github.com/abhisek/voltscope/internal/screens/story"
	"github.com/abhisek/voltscope/internal/ui/components"
	"github.com/abhisek/voltscope/internal/ui/layout"
	"github.com/abhisek/voltscope/internal/ui/theme"
)

// Deps are the services the dashboard reads from.
type Deps struct {
	Service  *aggregate.Service
	Narrator *narrative.Client
	Gate     credential.Gate
}

// Chart identifies one of the dashboard's two charts.
type Chart int

const (
	ChartTransition Chart = iota
	ChartTechnology
	chartCount
)

// chartHeight is the number of plot rows in each line chart.
const chartHeight = 8

func (c Chart) String() string {
	if c == ChartTechnology {
		return "Technology Race"
	}
	return "The Energy Transition"
}

func (c Chart) subject() string {
	if c == ChartTechnology {
		return narrative.TechnologySubject
	}
	return narrative.TransitionSubject
}

// insightMsg carries a finished insight back to the slot that asked for
// it. It is broadcast so a result still lands while another screen is on
// top.
type insightMsg struct {
	chart  Chart
	ticket uint64
	result narrative.Result
}

func (insightMsg) Broadcast() {}

// DashboardScreen shows one region at a time: headline stats, the two
// charts and their on-demand insights.
type DashboardScreen struct {
	deps    Deps
	regions []energy.Region
	tabs    components.Tabs
	focus   Chart

	stats      energy.DerivedStats
	transition []energy.TransitionPoint
	technology []energy.TechnologyPoint
	errMsg     string

	insights [chartCount]narrative.Slot
	spinner  spinner.Model
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard with the first region selected.
func New(deps Deps) *DashboardScreen {
	regions := deps.Service.Regions()
	labels := make([]string, len(regions))
	for i, r := range regions {
		labels[i] = r.String()
	}

	d := &DashboardScreen{
		deps:    deps,
		regions: regions,
		tabs:    components.NewTabs(labels),
		spinner: components.NewSpinner(),
	}
	d.load()
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Global Energy Transition"
}

// Region returns the selected region.
func (d *DashboardScreen) Region() energy.Region {
	return d.regions[d.tabs.Selected]
}

// Focus returns the chart that i and x act on.
func (d *DashboardScreen) Focus() Chart {
	return d.focus
}

// Insight returns the slot of chart c.
func (d *DashboardScreen) Insight(c Chart) *narrative.Slot {
	return &d.insights[c]
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Region"},
		{Key: "Tab", Description: "Chart"},
		{Key: "i", Description: "Insight"},
		{Key: "x", Description: "Dismiss"},
		{Key: "s", Description: "Story"},
	}
	if !d.deps.Gate.HasCredential() {
		hints = append(hints, layout.KeyHint{Key: "k", Description: "Add API key"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "k", Description: "Change key"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// load reads the selected region's projections. The slices are replaced,
// never mutated, so in-flight commands may keep reading the old ones.
func (d *DashboardScreen) load() {
	region := d.Region()
	d.errMsg = ""

	stats, err := d.deps.Service.LatestStats(region)
	if err != nil {
		d.errMsg = err.Error()
		return
	}
	transition, err := d.deps.Service.TransitionSeries(region)
	if err != nil {
		d.errMsg = err.Error()
		return
	}
	technology, err := d.deps.Service.TechnologySeries(region)
	if err != nil {
		d.errMsg = err.Error()
		return
	}
	d.stats, d.transition, d.technology = stats, transition, technology
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case insightMsg:
		d.insights[msg.chart].Finish(msg.ticket, msg.result)
		return d, nil

	case spinner.TickMsg:
		if !d.loading() {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyPressMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *DashboardScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		d.focus = (d.focus + 1) % chartCount
		return d, nil
	case "i":
		if d.errMsg != "" {
			return d, nil
		}
		return d, d.requestInsight(d.focus)
	case "x":
		d.insights[d.focus].Clear()
		return d, nil
	case "s":
		if d.errMsg != "" {
			return d, nil
		}
		return d, router.Push(story.New(d.deps.Narrator, d.Region(), d.stats))
	case "k":
		return d, router.Push(apikey.New(d.deps.Gate))
	}

	var changed bool
	d.tabs, changed = d.tabs.Update(msg)
	if changed {
		d.load()
		for i := range d.insights {
			d.insights[i].Clear()
		}
	}
	return d, nil
}

// requestInsight starts the chart's slot and returns the command that
// asks the narrator. The result comes back as an insightMsg.
func (d *DashboardScreen) requestInsight(c Chart) tea.Cmd {
	ticket := d.insights[c].Start()
	narrator := d.deps.Narrator
	region := d.Region()
	transition, technology := d.transition, d.technology

	fetch := func() tea.Msg {
		ctx := context.Background()
		var res narrative.Result
		if c == ChartTechnology {
			res = narrative.ChartInsight(ctx, narrator, c.subject(), technology, region)
		} else {
			res = narrative.ChartInsight(ctx, narrator, c.subject(), transition, region)
		}
		return insightMsg{chart: c, ticket: ticket, result: res}
	}
	return tea.Batch(fetch, d.spinner.Tick)
}

func (d *DashboardScreen) loading() bool {
	for i := range d.insights {
		if d.insights[i].State() == narrative.StateLoading {
			return true
		}
	}
	return false
}

func (d *DashboardScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(" " + d.tabs.View())
	b.WriteString("\n\n")

	if d.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\nError: " + d.errMsg))
		return b.String()
	}

	b.WriteString(d.renderStats(width))
	b.WriteString("\n")

	if layout.IsCompactWidth(width) {
		b.WriteString(d.renderPanel(ChartTransition, width))
		b.WriteString("\n")
		b.WriteString(d.renderPanel(ChartTechnology, width))
	} else {
		half := width / 2
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			d.renderPanel(ChartTransition, half),
			d.renderPanel(ChartTechnology, width-half),
		))
	}
	return b.String()
}

func (d *DashboardScreen) renderStats(width int) string {
	s := d.stats
	return components.StatRow([]components.StatCard{
		{
			Label:  "Renewable Share",
			Value:  fmt.Sprintf("%.1f%%", s.RenewablesShare),
			Detail: components.ShareBar{Percent: s.RenewablesShare, Width: width/4 - 4}.View(),
		},
		{
			Label:  "CO2 Emissions",
			Value:  fmt.Sprintf("%.2f Gt", float64(s.CO2)/1000),
			Detail: theme.Hint.Render(fmt.Sprintf("%d annual estimate", s.Year)),
		},
		{
			Label:  "Clean Energy",
			Value:  humanize.Comma(int64(s.TotalRenewables)) + " TWh",
			Detail: theme.Hint.Render("Solar, Wind, Hydro"),
		},
		{
			Label:  "Fossil Fuels",
			Value:  humanize.Comma(int64(s.TotalFossil)) + " TWh",
			Detail: theme.Hint.Render("Coal, Gas, Oil"),
		},
	}, width)
}

func (d *DashboardScreen) renderPanel(c Chart, width int) string {
	inner := width - 4

	var body string
	// Two cells of slack keep plot rows from wrapping inside the card.
	if c == ChartTechnology {
		body = d.renderTechnology(inner - 2)
	} else {
		body = d.renderTransition(inner - 2)
	}

	title := theme.Unselected.Render(c.String())
	style := theme.Card
	if c == d.focus {
		title = theme.Selected.Render("▸ " + c.String())
		style = theme.FocusedCard
	}

	content := title + "\n" + body + "\n\n" + d.renderInsight(c, inner)
	return style.Width(width - 2).Render(content)
}

func (d *DashboardScreen) renderTransition(width int) string {
	n := len(d.transition)
	fossil := make([]float64, n)
	clean := make([]float64, n)
	for i, p := range d.transition {
		fossil[i] = float64(p.FossilTotal)
		clean[i] = float64(p.CleanTotal)
	}
	return components.LineChart{
		Series: []components.Series{
			{Name: "Fossil", Values: fossil, Color: theme.PlotFossil},
			{Name: "Clean", Values: clean, Color: theme.PlotClean},
		},
		Width:   width,
		Height:  chartHeight,
		Caption: yearSpan(n, func(i int) int { return d.transition[i].Year }),
	}.View()
}

func (d *DashboardScreen) renderTechnology(width int) string {
	n := len(d.technology)
	solar := make([]float64, n)
	wind := make([]float64, n)
	coal := make([]float64, n)
	gas := make([]float64, n)
	for i, p := range d.technology {
		solar[i] = float64(p.Solar)
		wind[i] = float64(p.Wind)
		coal[i] = float64(p.Coal)
		gas[i] = float64(p.Gas)
	}
	return components.LineChart{
		Series: []components.Series{
			{Name: "Solar", Values: solar, Color: theme.PlotSolar},
			{Name: "Wind", Values: wind, Color: theme.PlotWind},
			{Name: "Coal", Values: coal, Color: theme.PlotCoal},
			{Name: "Gas", Values: gas, Color: theme.PlotGas},
		},
		Width:   width,
		Height:  chartHeight,
		Caption: yearSpan(n, func(i int) int { return d.technology[i].Year }),
	}.View()
}

// yearSpan captions a chart with its first and last year.
func yearSpan(n int, year func(i int) int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d to %d, TWh", year(0), year(n-1))
}

func (d *DashboardScreen) renderInsight(c Chart, width int) string {
	slot := &d.insights[c]
	wrap := lipgloss.NewStyle().Width(width)

	switch slot.State() {
	case narrative.StateLoading:
		return d.spinner.View() + " " + theme.Hint.Render("Analyzing trends...")
	case narrative.StateSucceeded:
		res := slot.Result()
		text := wrap.Foreground(theme.Text).Render(slot.Text())
		if res.Insight == nil {
			return text
		}
		return trendBadge(res.Insight.Trend) + "\n" + text
	case narrative.StateFailed:
		return wrap.Foreground(theme.TextDim).Italic(true).Render(slot.Text())
	}
	return theme.Hint.Render("Press i for an AI insight")
}

func trendBadge(t narrative.Trend) string {
	switch t {
	case narrative.TrendPositive:
		return theme.TrendPositive.Render("▲ positive")
	case narrative.TrendNegative:
		return theme.TrendNegative.Render("▼ negative")
	}
	return theme.TrendNeutral.Render("● neutral")
}
