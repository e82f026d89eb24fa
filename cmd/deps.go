package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/voltscope/internal/aggregate"
	"github.com/abhisek/voltscope/internal/config"
	"github.com/abhisek/voltscope/internal/credential"
	"github.com/abhisek/voltscope/internal/fixture"
	"github.com/abhisek/voltscope/internal/llm"
	"github.com/abhisek/voltscope/internal/narrative"
	"github.com/abhisek/voltscope/internal/store"
)

// newService builds the aggregation service over a freshly generated
// fixture.
func newService(cfg config.Config) *aggregate.Service {
	var opts []fixture.Option
	if cfg.Seed != 0 {
		opts = append(opts, fixture.WithSeed(cfg.Seed))
	}
	return aggregate.NewService(fixture.New(opts...))
}

// narration bundles the narrative client with the resources it holds.
type narration struct {
	llm    llm.Config
	store  *store.Store
	gate   *credential.MemoryGate
	client *narrative.Client
}

// openNarration resolves provider settings, opens the audit store and
// builds a narrative client. A missing key is not an error: the gate
// starts empty and every call returns its fallback.
func openNarration(cfg config.Config) (*narration, error) {
	llmCfg, err := llm.ResolveConfig()
	if err != nil {
		return nil, err
	}
	if err := llmCfg.Validate(); err != nil && !errors.Is(err, llm.ErrMissingAPIKey) {
		return nil, err
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	gate := credential.NewGate(llmCfg.APIKey())
	events := st.EventRepo()
	newProvider := func(ctx context.Context, key string) (llm.Provider, error) {
		return llm.NewProvider(ctx, llmCfg.WithAPIKey(key), events)
	}

	client := narrative.NewClient(gate, newProvider, narrative.Config{
		MaxTokens:      cfg.Narrative.MaxTokens,
		StoryMaxTokens: cfg.Narrative.StoryMaxTokens,
		Temperature:    cfg.Narrative.Temperature,
	})

	return &narration{llm: llmCfg, store: st, gate: gate, client: client}, nil
}

func (n *narration) Close() error {
	return n.store.Close()
}
