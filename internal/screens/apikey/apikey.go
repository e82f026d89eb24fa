package apikey

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltscope/internal/credential"
	"github.com/abhisek/voltscope/internal/router"
	"github.com/abhisek/voltscope/internal/screen"
	"github.com/abhisek/voltscope/internal/ui/components"
	"github.com/abhisek/voltscope/internal/ui/layout"
	"github.com/abhisek/voltscope/internal/ui/theme"
)

// KeyScreen collects an API key with a masked input and hands it to the
// credential gate. The key never leaves memory.
type KeyScreen struct {
	gate   credential.Gate
	input  components.TextInput
	errMsg string
}

var _ screen.Screen = (*KeyScreen)(nil)
var _ screen.KeyHintProvider = (*KeyScreen)(nil)

// New creates a key entry screen bound to gate.
func New(gate credential.Gate) *KeyScreen {
	return &KeyScreen{
		gate:  gate,
		input: components.NewSecretInput("paste your API key", 48),
	}
}

func (k *KeyScreen) Init() tea.Cmd {
	return k.input.Init()
}

func (k *KeyScreen) Title() string {
	return "API Key"
}

func (k *KeyScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Use key"},
		{Key: "Esc", Description: "Cancel"},
	}
	if k.gate.HasCredential() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+X", Description: "Forget key"})
	}
	return hints
}

func (k *KeyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			if err := k.gate.Select(k.input.Value()); err != nil {
				k.errMsg = err.Error()
				k.input.Submit(false)
				return k, nil
			}
			return k, router.Pop()
		case "ctrl+x":
			k.gate.Clear()
			return k, router.Pop()
		}
		k.errMsg = ""
	}

	var cmd tea.Cmd
	k.input, cmd = k.input.Update(msg)
	return k, cmd
}

func (k *KeyScreen) View(width, height int) string {
	cw := min(width-4, 64)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(cw).Render("Connect an API key"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Narratives are generated by your configured provider. The key is kept in memory for this session only."))
	b.WriteString("\n\n")

	if k.gate.HasCredential() {
		b.WriteString(theme.Hint.Render("Current key: " + credential.Mask(k.gate.Key())))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Card.Width(cw - 2).Render(k.input.View()))

	if k.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(k.errMsg))
	}

	return layout.Centered(b.String(), width)
}
