package narrative

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/abhisek/voltscope/internal/credential"
	"github.com/abhisek/voltscope/internal/energy"
	"github.com/abhisek/voltscope/internal/llm"
)

// countingFactory wraps a provider and counts how often it is built.
type countingFactory struct {
	provider llm.Provider
	err      error
	builds   int
	keys     []string
}

func (f *countingFactory) build(_ context.Context, key string) (llm.Provider, error) {
	f.builds++
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	return f.provider, nil
}

func newTestClient(key string, responses ...llm.MockResponse) (*Client, *llm.MockProvider, *countingFactory) {
	mock := llm.NewMockProvider(responses...)
	factory := &countingFactory{provider: mock}
	return NewClient(credential.NewGate(key), factory.build, Config{}), mock, factory
}

func transitionSeries(n int) []energy.TransitionPoint {
	out := make([]energy.TransitionPoint, n)
	for i := range out {
		out[i] = energy.TransitionPoint{Year: energy.FirstYear + i, FossilTotal: 20000 - 100*i, CleanTotal: 4000 + 300*i}
	}
	return out
}

var europeStats = energy.DerivedStats{
	Year:            2024,
	TotalRenewables: 2534,
	TotalFossil:     4450,
	RenewablesShare: 36.2834,
	CO2:             3102,
}

func mustContain(t *testing.T, s string, subs ...string) {
	t.Helper()
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			t.Errorf("expected %q in:\n%s", sub, s)
		}
	}
}

func TestDownsample(t *testing.T) {
	years := func(pts []energy.TransitionPoint) []int {
		var out []int
		for _, p := range pts {
			out = append(out, p.Year)
		}
		return out
	}

	tests := []struct {
		n    int
		want []int
	}{
		{25, []int{2000, 2005, 2010, 2015, 2020, 2024}},
		{6, []int{2000, 2005}}, // last element already kept at index 5
		{7, []int{2000, 2005, 2006}},
		{1, []int{2000}},
		{0, nil},
	}
	for _, tt := range tests {
		if got := years(Downsample(transitionSeries(tt.n))); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Downsample(%d points) years = %v, want %v", tt.n, got, tt.want)
		}
	}

	in := transitionSeries(10)
	out := Downsample(in)
	out[0].CleanTotal = -1
	if in[0].CleanTotal == -1 {
		t.Error("downsample must not alias its input")
	}
}

func TestSummarizeSeries_NoCredential(t *testing.T) {
	c, mock, factory := newTestClient("")

	res := SummarizeSeries(context.Background(), c, "Energy Mix", transitionSeries(25), energy.Europe)

	if res.OK() {
		t.Fatal("expected failure without a credential")
	}
	if res.Reason != ReasonMissingCredential || !errors.Is(res.Err, ErrMissingCredential) {
		t.Errorf("reason = %s, err = %v", res.Reason, res.Err)
	}
	if res.Display() != FallbackSeries {
		t.Errorf("display = %q", res.Display())
	}
	if res.RequestID == "" {
		t.Error("failed results still carry a request id")
	}
	if mock.CallCount() != 0 || factory.builds != 0 {
		t.Errorf("no provider work without a credential: calls=%d builds=%d", mock.CallCount(), factory.builds)
	}
}

// halfGate claims a credential but hands out an empty key, as happens when
// the key is cleared between the two reads.
type halfGate struct{}

func (halfGate) HasCredential() bool { return true }
func (halfGate) Key() string         { return "" }
func (halfGate) Select(string) error { return nil }
func (halfGate) Clear()              {}

func TestClient_EmptyKeyIsMissingCredential(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("should not be sent"))
	factory := &countingFactory{provider: mock}
	c := NewClient(halfGate{}, factory.build, Config{})

	res := c.ComposeStory(context.Background(), energy.Europe, europeStats)

	if res.Reason != ReasonMissingCredential {
		t.Errorf("reason = %s, want %s", res.Reason, ReasonMissingCredential)
	}
	if mock.CallCount() != 0 || factory.builds != 0 {
		t.Errorf("an empty key must not reach the provider: calls=%d builds=%d", mock.CallCount(), factory.builds)
	}
}

func TestSummarizeSeries_Success(t *testing.T) {
	c, mock, _ := newTestClient("key", llm.MockText("  Europe's coal exit is now locked in.\n"))

	res := SummarizeSeries(context.Background(), c, "Transition Progress", transitionSeries(25), energy.Europe)

	if !res.OK() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.Kind != KindSeries {
		t.Errorf("kind = %s", res.Kind)
	}
	if res.Text != "Europe's coal exit is now locked in." || res.Display() != res.Text {
		t.Errorf("text = %q, display = %q", res.Text, res.Display())
	}
	if res.Insight != nil {
		t.Error("plain summaries carry no insight")
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected exactly one request, got %d", mock.CallCount())
	}

	req, _ := mock.LastCall()
	if req.System != journalistSystemPrompt {
		t.Errorf("system prompt = %q", req.System)
	}
	if req.Schema != nil {
		t.Error("summaries are unstructured")
	}
	mustContain(t, req.Prompt,
		"region: Europe.",
		"Chart Subject: Transition Progress",
		`{"year":2024,"fossilTotal":17600,"cleanTotal":11200}`,
		`{"year":2005,`,
		"max 2 sentences",
		"Use active voice.",
	)
	if strings.Contains(req.Prompt, `{"year":2001,`) {
		t.Error("prompt should only carry downsampled years")
	}
}

func TestSummarizeSeries_ProviderRejects(t *testing.T) {
	c, mock, _ := newTestClient("bad-key", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("401 unauthorized")}})

	res := SummarizeSeries(context.Background(), c, "Energy Mix", transitionSeries(25), energy.World)

	if res.Reason != ReasonExternalFailure {
		t.Errorf("reason = %s", res.Reason)
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(res.Err, &unavail) {
		t.Errorf("expected ErrProviderUnavailable, got %v", res.Err)
	}
	if d := res.Display(); d != FallbackSeries || strings.HasPrefix(d, "**") || strings.HasPrefix(d, "#") {
		t.Errorf("display = %q", d)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d", mock.CallCount())
	}
}

func TestSummarizeSeries_EmptyResponse(t *testing.T) {
	c, _, _ := newTestClient("key", llm.MockText("  \n "))

	res := SummarizeSeries(context.Background(), c, "Energy Mix", transitionSeries(25), energy.World)

	if res.Reason != ReasonEmptyResponse || !errors.Is(res.Err, ErrEmptyResponse) {
		t.Errorf("reason = %s, err = %v", res.Reason, res.Err)
	}
	if res.Display() != FallbackSeries {
		t.Errorf("display = %q", res.Display())
	}
}

func TestClient_ProviderFactoryError(t *testing.T) {
	factory := &countingFactory{err: errors.New("bad config")}
	c := NewClient(credential.NewGate("key"), factory.build, Config{})

	res := c.ComposeStory(context.Background(), energy.Europe, europeStats)

	if res.Reason != ReasonExternalFailure || res.Display() != FallbackStory {
		t.Errorf("reason = %s, display = %q", res.Reason, res.Display())
	}
}

func TestClient_ProviderPanicIsContained(t *testing.T) {
	c := NewClient(credential.NewGate("key"), StaticProvider(panicProvider{}), Config{})

	res := c.ComposeStory(context.Background(), energy.Europe, europeStats)

	if res.Reason != ReasonExternalFailure || res.Display() != FallbackStory {
		t.Errorf("reason = %s, display = %q", res.Reason, res.Display())
	}
	if res.RequestID == "" {
		t.Error("request id lost after panic")
	}
}

type panicProvider struct{}

func (panicProvider) Generate(context.Context, llm.Request) (*llm.Response, error) {
	panic("boom")
}

func (panicProvider) ModelID() string { return "panic" }

func TestClient_ProviderCachedPerKey(t *testing.T) {
	gate := credential.NewGate("key-1")
	mock := llm.NewMockProvider(llm.MockText("a"), llm.MockText("b"), llm.MockText("c"))
	factory := &countingFactory{provider: mock}
	c := NewClient(gate, factory.build, Config{})
	ctx := context.Background()

	c.ComposeStory(ctx, energy.World, europeStats)
	c.ComposeStory(ctx, energy.World, europeStats)
	if factory.builds != 1 {
		t.Fatalf("builds = %d, want 1", factory.builds)
	}

	if err := gate.Select("key-2"); err != nil {
		t.Fatal(err)
	}
	c.ComposeStory(ctx, energy.World, europeStats)
	if factory.builds != 2 {
		t.Fatalf("builds = %d, want 2", factory.builds)
	}
	if want := []string{"key-1", "key-2"}; !reflect.DeepEqual(factory.keys, want) {
		t.Errorf("keys = %v, want %v", factory.keys, want)
	}
}

func TestClient_RequestIDsUnique(t *testing.T) {
	c, _, _ := newTestClient("")
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		res := c.ComposeStory(context.Background(), energy.World, europeStats)
		if seen[res.RequestID] {
			t.Fatalf("duplicate request id %s", res.RequestID)
		}
		seen[res.RequestID] = true
	}
}

func TestComposeStory_Success(t *testing.T) {
	story := "**Europe Turns the Corner**\n\nCoal still matters.\n\nWind is winning."
	c, mock, _ := newTestClient("key", llm.MockText(story))

	res := c.ComposeStory(context.Background(), energy.Europe, europeStats)

	if !res.OK() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.Kind != KindStory || res.Display() != story {
		t.Errorf("kind = %s, display = %q", res.Kind, res.Display())
	}

	req, _ := mock.LastCall()
	if req.System != storySystemPrompt {
		t.Errorf("system prompt = %q", req.System)
	}
	mustContain(t, req.Prompt,
		"energy transition in Europe.",
		"Key Stats for 2024:",
		"Renewable Share: 36.3%",
		"CO2 Emissions: 3102 Million Tonnes",
		"Fossil Fuel Total: 4450 TWh",
		"Renewable Total: 2534 TWh",
		"Format the output with Markdown.",
	)
}

func TestComposeStory_NoCredential(t *testing.T) {
	c, mock, _ := newTestClient("")

	res := c.ComposeStory(context.Background(), energy.Europe, europeStats)

	if res.Reason != ReasonMissingCredential || res.Display() != FallbackStory {
		t.Errorf("reason = %s, display = %q", res.Reason, res.Display())
	}
	if mock.CallCount() != 0 {
		t.Errorf("calls = %d", mock.CallCount())
	}
}

func TestChartInsight_Structured(t *testing.T) {
	c, mock, _ := newTestClient("key", llm.MockText(`{"content":"Solar is compounding faster than coal can adapt.","trend":"positive"}`))

	res := ChartInsight(context.Background(), c, "Energy Mix Evolution", transitionSeries(25), energy.AsiaPacific)

	if !res.OK() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.Kind != KindInsight {
		t.Errorf("kind = %s", res.Kind)
	}
	if res.Insight == nil {
		t.Fatal("expected a decoded insight")
	}
	if res.Insight.Title != "Energy Mix Evolution" || res.Insight.Trend != TrendPositive {
		t.Errorf("insight = %+v", res.Insight)
	}
	if res.Display() != res.Insight.Content {
		t.Errorf("display = %q", res.Display())
	}

	req, _ := mock.LastCall()
	if req.Schema != InsightSchema {
		t.Error("insights must request the insight schema")
	}
	mustContain(t, req.Prompt, "positive, negative, or neutral")
}

func TestChartInsight_InvalidTrend(t *testing.T) {
	c, _, _ := newTestClient("key", llm.MockText(`{"content":"Gas rises.","trend":"up"}`))

	res := ChartInsight(context.Background(), c, "Energy Mix Evolution", transitionSeries(25), energy.World)

	if res.Reason != ReasonExternalFailure {
		t.Errorf("reason = %s", res.Reason)
	}
	var inv *llm.ErrInvalidResponse
	if !errors.As(res.Err, &inv) {
		t.Errorf("expected ErrInvalidResponse, got %v", res.Err)
	}
	if res.Insight != nil || res.Display() != FallbackSeries {
		t.Errorf("insight = %+v, display = %q", res.Insight, res.Display())
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	c, _, _ := newTestClient("key", llm.MockText("never read"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.ComposeStory(ctx, energy.World, europeStats)

	if res.Reason != ReasonExternalFailure || !errors.Is(res.Err, context.Canceled) {
		t.Errorf("reason = %s, err = %v", res.Reason, res.Err)
	}
}
