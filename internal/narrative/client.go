// Package narrative asks a text-generation provider to narrate energy
// data. Every call returns a tagged Result; failures never surface as Go
// errors or panics.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/voltscope/internal/credential"
	"github.com/abhisek/voltscope/internal/energy"
	"github.com/abhisek/voltscope/internal/llm"
)

// ProviderFunc builds a provider authenticated with apiKey.
type ProviderFunc func(ctx context.Context, apiKey string) (llm.Provider, error)

// StaticProvider returns a ProviderFunc that ignores the key and always
// yields p. Used with the mock and demo providers.
func StaticProvider(p llm.Provider) ProviderFunc {
	return func(context.Context, string) (llm.Provider, error) { return p, nil }
}

// Client issues narrative requests. The credential is checked through the
// gate before every call, so a missing key costs no request.
type Client struct {
	gate        credential.Gate
	newProvider ProviderFunc
	cfg         Config

	mu        sync.Mutex
	cachedKey string
	cached    llm.Provider
}

// NewClient creates a narrative client.
func NewClient(gate credential.Gate, newProvider ProviderFunc, cfg Config) *Client {
	return &Client{gate: gate, newProvider: newProvider, cfg: cfg}
}

// SummarizeSeries asks for a one or two sentence insight about a chart
// series. The series is downsampled before it is embedded in the prompt.
func SummarizeSeries[T any](ctx context.Context, c *Client, title string, series []T, region energy.Region) Result {
	prompt, err := buildSeriesPrompt(title, region, Downsample(series))
	if err != nil {
		return c.fail(Result{RequestID: uuid.NewString(), Kind: KindSeries}, ReasonExternalFailure, err)
	}
	res, _ := c.run(ctx, KindSeries, llm.Request{
		System:      journalistSystemPrompt,
		Prompt:      prompt,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	return res
}

// ChartInsight is SummarizeSeries with a structured reply: the provider
// must return content plus a trend label, validated against InsightSchema.
func ChartInsight[T any](ctx context.Context, c *Client, title string, series []T, region energy.Region) Result {
	prompt, err := buildInsightPrompt(title, region, Downsample(series))
	if err != nil {
		return c.fail(Result{RequestID: uuid.NewString(), Kind: KindInsight}, ReasonExternalFailure, err)
	}
	res, resp := c.run(ctx, KindInsight, llm.Request{
		System:      journalistSystemPrompt,
		Prompt:      prompt,
		Schema:      InsightSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if !res.OK() {
		return res
	}

	var out struct {
		Content string `json:"content"`
		Trend   Trend  `json:"trend"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return c.fail(res, ReasonExternalFailure, fmt.Errorf("parse insight: %w", err))
	}
	out.Content = strings.TrimSpace(out.Content)
	if out.Content == "" {
		return c.fail(res, ReasonEmptyResponse, ErrEmptyResponse)
	}

	res.Text = out.Content
	res.Insight = &Insight{Title: title, Content: out.Content, Trend: out.Trend}
	return res
}

// ComposeStory asks for a three-paragraph markdown story built around the
// region's latest headline numbers.
func (c *Client) ComposeStory(ctx context.Context, region energy.Region, stats energy.DerivedStats) Result {
	res, _ := c.run(ctx, KindStory, llm.Request{
		System:      storySystemPrompt,
		Prompt:      buildStoryPrompt(region, stats),
		MaxTokens:   c.cfg.StoryMaxTokens,
		Temperature: c.cfg.Temperature,
	})
	return res
}

// run issues exactly one provider call for kind. On success the Result
// carries the trimmed reply text and the raw response is returned for
// structured decoding.
func (c *Client) run(ctx context.Context, kind Kind, req llm.Request) (res Result, resp *llm.Response) {
	res = Result{RequestID: uuid.NewString(), Kind: kind}

	defer func() {
		if p := recover(); p != nil {
			res = c.fail(Result{RequestID: res.RequestID, Kind: kind}, ReasonExternalFailure, fmt.Errorf("provider panic: %v", p))
			resp = nil
		}
	}()

	// One read, so a key cleared mid-call cannot reach the provider as "".
	key := c.gate.Key()
	if key == "" {
		return c.fail(res, ReasonMissingCredential, ErrMissingCredential), nil
	}

	provider, err := c.provider(ctx, key)
	if err != nil {
		return c.fail(res, ReasonExternalFailure, err), nil
	}

	ctx = llm.WithRequestID(llm.WithPurpose(ctx, string(kind)), res.RequestID)
	resp, err = provider.Generate(ctx, req)
	if err != nil {
		return c.fail(res, ReasonExternalFailure, err), nil
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return c.fail(res, ReasonEmptyResponse, ErrEmptyResponse), nil
	}
	res.Text = text
	return res, resp
}

// provider returns the provider for key, rebuilding it only when the key
// changes.
func (c *Client) provider(ctx context.Context, key string) (llm.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.cachedKey == key {
		return c.cached, nil
	}
	p, err := c.newProvider(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	c.cached, c.cachedKey = p, key
	return p, nil
}

func (c *Client) fail(res Result, reason Reason, err error) Result {
	res.Text = ""
	res.Insight = nil
	res.Reason = reason
	res.Err = err
	log.Printf("narrative %s %s failed (%s): %v", res.Kind, res.RequestID, reason, err)
	return res
}
