package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltscope/internal/ui/theme"
)

// Tabs is a horizontal tab bar. Left/right cycle through the labels and
// the digit keys jump to a tab directly.
type Tabs struct {
	Labels   []string
	Selected int
}

// NewTabs creates a tab bar with the first tab selected.
func NewTabs(labels []string) Tabs {
	return Tabs{Labels: labels}
}

// Update handles keyboard navigation. It reports whether the selection
// changed.
func (t Tabs) Update(msg tea.Msg) (Tabs, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(t.Labels) == 0 {
		return t, false
	}

	prev := t.Selected
	switch key := kmsg.String(); key {
	case "left", "h":
		t.Selected = (t.Selected - 1 + len(t.Labels)) % len(t.Labels)
	case "right", "l":
		t.Selected = (t.Selected + 1) % len(t.Labels)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(t.Labels) {
			t.Selected = n - 1
		}
	}
	return t, t.Selected != prev
}

// View renders the tab bar.
func (t Tabs) View() string {
	parts := make([]string, len(t.Labels))
	for i, label := range t.Labels {
		text := strconv.Itoa(i+1) + " " + label
		if i == t.Selected {
			parts[i] = theme.TabActive.Render(text)
		} else {
			parts[i] = theme.TabInactive.Render(text)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, " "))
}
