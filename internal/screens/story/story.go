package story

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"github.com/abhisek/voltscope/internal/energy"
	"github.com/abhisek/voltscope/internal/narrative"
	"github.com/abhisek/voltscope/internal/screen"
	"github.com/abhisek/voltscope/internal/ui/components"
	"github.com/abhisek/voltscope/internal/ui/layout"
	"github.com/abhisek/voltscope/internal/ui/theme"
)

// storyMsg delivers a composed story to the slot that requested it.
type storyMsg struct {
	ticket uint64
	result narrative.Result
}

// StoryScreen composes and shows the long-form story for one region.
type StoryScreen struct {
	narrator *narrative.Client
	region   energy.Region
	stats    energy.DerivedStats
	slot     narrative.Slot
	spinner  spinner.Model

	rendered      string
	renderedText  string
	renderedWidth int
}

var _ screen.Screen = (*StoryScreen)(nil)
var _ screen.KeyHintProvider = (*StoryScreen)(nil)

// New creates a story screen for region. Generation starts on Init.
func New(narrator *narrative.Client, region energy.Region, stats energy.DerivedStats) *StoryScreen {
	return &StoryScreen{
		narrator: narrator,
		region:   region,
		stats:    stats,
		spinner:  components.NewSpinner(),
	}
}

func (s *StoryScreen) Init() tea.Cmd {
	return s.generate()
}

func (s *StoryScreen) Title() string {
	return "The Narrative: " + s.region.String()
}

func (s *StoryScreen) KeyHints() []layout.KeyHint {
	if s.slot.State() == narrative.StateLoading {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "r", Description: "Regenerate"},
		{Key: "Esc", Description: "Back"},
	}
}

// State exposes the story slot's lifecycle.
func (s *StoryScreen) State() narrative.State {
	return s.slot.State()
}

func (s *StoryScreen) generate() tea.Cmd {
	ticket := s.slot.Start()
	narrator, region, stats := s.narrator, s.region, s.stats

	fetch := func() tea.Msg {
		return storyMsg{ticket: ticket, result: narrator.ComposeStory(context.Background(), region, stats)}
	}
	return tea.Batch(fetch, s.spinner.Tick)
}

func (s *StoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case storyMsg:
		s.slot.Finish(msg.ticket, msg.result)
		return s, nil

	case spinner.TickMsg:
		if s.slot.State() != narrative.StateLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if msg.String() == "r" && s.slot.State() != narrative.StateLoading {
			return s, s.generate()
		}
	}
	return s, nil
}

func (s *StoryScreen) View(width, height int) string {
	cw := min(width-4, 96)
	center := func(str string) string { return layout.Centered(str, width) }

	switch s.slot.State() {
	case narrative.StateLoading:
		return center("\n\n\n" + s.spinner.View() + " " + theme.Hint.Render("Writing the story for "+s.region.String()+"..."))
	case narrative.StateFailed:
		return center("\n\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(s.slot.Text()) +
			"\n\n" + theme.Hint.Render("Press r to try again."))
	case narrative.StateSucceeded:
		return center(s.body(cw))
	}
	return ""
}

// renderMarkdown renders a story with glamour's dark style, wrapped to
// width. Single newlines are kept so a bold headline stays on its own line.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.DarkStyle),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(md)
	}
	out, err := r.Render(md)
	if err != nil {
		return lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(md)
	}
	return strings.Trim(out, "\n")
}

// body caches the rendered story; glamour is too slow to run every frame.
func (s *StoryScreen) body(width int) string {
	text := s.slot.Text()
	if s.rendered == "" || s.renderedText != text || s.renderedWidth != width {
		s.rendered = renderMarkdown(text, width)
		s.renderedText = text
		s.renderedWidth = width
	}
	return s.rendered
}
