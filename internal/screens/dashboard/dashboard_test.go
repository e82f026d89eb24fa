package dashboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/voltscope/internal/aggregate"
	"github.com/abhisek/voltscope/internal/credential"
	"github.com/abhisek/voltscope/internal/energy"
	"github.com/abhisek/voltscope/internal/fixture"
	"github.com/abhisek/voltscope/internal/llm"
	"github.com/abhisek/voltscope/internal/narrative"
	"github.com/abhisek/voltscope/internal/router"
	"github.com/abhisek/voltscope/internal/screens/apikey"
	"github.com/abhisek/voltscope/internal/screens/story"
)

func newTestDashboard(key string, responses ...llm.MockResponse) (*DashboardScreen, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	gate := credential.NewGate(key)
	d := New(Deps{
		Service:  aggregate.NewService(fixture.New(fixture.WithSeed(1))),
		Narrator: narrative.NewClient(gate, narrative.StaticProvider(mock), narrative.Config{}),
		Gate:     gate,
	})
	return d, mock
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

// drain runs cmd and any batched commands, returning the produced
// messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findInsight(t *testing.T, msgs []tea.Msg) insightMsg {
	t.Helper()
	for _, m := range msgs {
		if im, ok := m.(insightMsg); ok {
			return im
		}
	}
	t.Fatalf("no insightMsg among %d messages", len(msgs))
	return insightMsg{}
}

func TestRegionNavigation(t *testing.T) {
	d, _ := newTestDashboard("")

	if d.Region() != energy.World {
		t.Fatalf("expected World first, got %s", d.Region())
	}

	d.Update(press("right"))
	if d.Region() != energy.NorthAmerica {
		t.Errorf("right should select North America, got %s", d.Region())
	}

	d.Update(press("4"))
	if d.Region() != energy.AsiaPacific {
		t.Errorf("4 should select Asia Pacific, got %s", d.Region())
	}

	d.Update(press("right"))
	if d.Region() != energy.World {
		t.Errorf("right from the last tab should wrap to World, got %s", d.Region())
	}
}

func TestRegionChangeReloadsStats(t *testing.T) {
	d, _ := newTestDashboard("")
	world := d.stats

	d.Update(press("3"))

	if d.stats == world {
		t.Error("stats should change with the region")
	}
	if d.stats.Year != energy.LastYear {
		t.Errorf("expected latest year %d, got %d", energy.LastYear, d.stats.Year)
	}
}

func TestInsight_Success(t *testing.T) {
	d, mock := newTestDashboard("key", llm.MockText(`{"content":"Coal has peaked.","trend":"positive"}`))

	_, cmd := d.Update(press("i"))
	if cmd == nil {
		t.Fatal("expected an insight command")
	}
	if d.Insight(ChartTransition).State() != narrative.StateLoading {
		t.Fatalf("expected loading, got %s", d.Insight(ChartTransition).State())
	}

	d.Update(findInsight(t, drain(cmd)))

	slot := d.Insight(ChartTransition)
	if slot.State() != narrative.StateSucceeded {
		t.Fatalf("expected succeeded, got %s", slot.State())
	}
	if slot.Text() != "Coal has peaked." {
		t.Errorf("unexpected text %q", slot.Text())
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 provider call, got %d", mock.CallCount())
	}
	req, _ := mock.LastCall()
	if !strings.Contains(req.Prompt, narrative.TransitionSubject) {
		t.Error("prompt should name the transition chart")
	}
	if !strings.Contains(d.View(120, 40), "Coal has peaked.") {
		t.Error("view should show the insight")
	}
}

func TestInsight_FocusedChart(t *testing.T) {
	d, mock := newTestDashboard("key", llm.MockText(`{"content":"Solar overtakes gas.","trend":"positive"}`))

	d.Update(press("tab"))
	if d.Focus() != ChartTechnology {
		t.Fatalf("tab should focus the technology chart")
	}

	_, cmd := d.Update(press("i"))
	d.Update(findInsight(t, drain(cmd)))

	if d.Insight(ChartTechnology).State() != narrative.StateSucceeded {
		t.Errorf("technology slot should hold the result")
	}
	if d.Insight(ChartTransition).State() != narrative.StateIdle {
		t.Errorf("transition slot should stay idle")
	}
	req, _ := mock.LastCall()
	if !strings.Contains(req.Prompt, narrative.TechnologySubject) {
		t.Error("prompt should name the technology chart")
	}
}

func TestInsight_NoCredentialShowsFallback(t *testing.T) {
	d, mock := newTestDashboard("")

	_, cmd := d.Update(press("i"))
	d.Update(findInsight(t, drain(cmd)))

	slot := d.Insight(ChartTransition)
	if slot.State() != narrative.StateFailed {
		t.Fatalf("expected failed, got %s", slot.State())
	}
	if slot.Text() != narrative.FallbackSeries {
		t.Errorf("expected fallback, got %q", slot.Text())
	}
	if mock.CallCount() != 0 {
		t.Errorf("no provider call without a key, got %d", mock.CallCount())
	}
}

func TestInsight_StaleAfterRegionChange(t *testing.T) {
	d, _ := newTestDashboard("key", llm.MockText(`{"content":"World insight.","trend":"neutral"}`))

	_, cmd := d.Update(press("i"))
	d.Update(press("right"))

	d.Update(findInsight(t, drain(cmd)))

	if d.Insight(ChartTransition).State() != narrative.StateIdle {
		t.Errorf("result for the previous region must be dropped, got %s", d.Insight(ChartTransition).State())
	}
}

func TestInsight_Dismiss(t *testing.T) {
	d, _ := newTestDashboard("key", llm.MockText(`{"content":"Gas plateaus.","trend":"neutral"}`))

	_, cmd := d.Update(press("i"))
	d.Update(findInsight(t, drain(cmd)))
	d.Update(press("x"))

	if d.Insight(ChartTransition).State() != narrative.StateIdle {
		t.Errorf("x should dismiss the insight")
	}
}

func TestStoryKeyPushesStoryScreen(t *testing.T) {
	d, _ := newTestDashboard("")

	_, cmd := d.Update(press("s"))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*story.StoryScreen); !ok {
		t.Errorf("expected story screen, got %T", msg.Screen)
	}
}

func TestKeyKeyPushesKeyScreen(t *testing.T) {
	d, _ := newTestDashboard("")

	_, cmd := d.Update(press("k"))
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*apikey.KeyScreen); !ok {
		t.Errorf("expected key screen, got %T", msg.Screen)
	}
}

func TestKeyHintsMentionMissingKey(t *testing.T) {
	d, _ := newTestDashboard("")

	found := false
	for _, h := range d.KeyHints() {
		if h.Key == "k" && h.Description == "Add API key" {
			found = true
		}
	}
	if !found {
		t.Error("footer should hint k to add a key")
	}
}

func TestView(t *testing.T) {
	d, _ := newTestDashboard("")

	view := d.View(120, 40)
	for _, want := range []string{"World", "Renewable Share", "CO2 Emissions", "Clean Energy", "Fossil Fuels", "Technology Race", "Press i"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}

	if compact := d.View(80, 24); !strings.Contains(compact, "The Energy Transition") {
		t.Error("compact view should still render the transition chart")
	}
}

func TestView_ChartLegends(t *testing.T) {
	d, _ := newTestDashboard("")

	view := ansi.Strip(d.View(160, 60))
	for _, want := range []string{"■ Fossil", "■ Clean", "■ Solar", "■ Wind", "■ Coal", "■ Gas", "2000 to 2024, TWh"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
	if !strings.Contains(view, "┤") {
		t.Error("charts should draw a y axis")
	}
}

func TestInsightMsgIsBroadcast(t *testing.T) {
	var msg tea.Msg = insightMsg{}
	if _, ok := msg.(router.Broadcast); !ok {
		t.Error("insight results must reach the dashboard while covered")
	}
}
