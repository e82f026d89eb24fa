package app

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltscope/internal/aggregate"
	"github.com/abhisek/voltscope/internal/credential"
	"github.com/abhisek/voltscope/internal/narrative"
	"github.com/abhisek/voltscope/internal/router"
	"github.com/abhisek/voltscope/internal/screen"
	"github.com/abhisek/voltscope/internal/screens/dashboard"
	"github.com/abhisek/voltscope/internal/ui/layout"
)

// Options wires the TUI to its services.
type Options struct {
	Service  *aggregate.Service
	Narrator *narrative.Client
	Gate     credential.Gate

	// Model is shown next to the masked key in the header.
	Model string

	// LogFile receives stdlib log output while the TUI runs. Empty
	// discards it.
	LogFile string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	gate   credential.Gate
	model  string
	width  int
	height int
}

// newAppModel creates a new AppModel with the dashboard screen.
func newAppModel(opts Options) AppModel {
	home := dashboard.New(dashboard.Deps{
		Service:  opts.Service,
		Narrator: opts.Narrator,
		Gate:     opts.Gate,
	})
	return AppModel{
		router: router.New(home),
		gate:   opts.Gate,
		model:  opts.Model,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.router.Depth() == 1 {
				return m, tea.Quit
			}
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := layout.CredentialStatus{Present: m.gate.HasCredential(), Model: m.model}
	if status.Present {
		status.Masked = credential.Mask(m.gate.Key())
	}
	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.LogFile != "" {
		f, err := tea.LogToFile(opts.LogFile, "voltscope")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
