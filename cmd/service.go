package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/socratai/socratai/internal/extract"
	"github.com/socratai/socratai/internal/llm"
	"github.com/socratai/socratai/internal/quizgen"
	"github.com/socratai/socratai/internal/session"
	"github.com/socratai/socratai/internal/store"
	"github.com/spf13/cobra"
)

// buildService opens the store and wires the generation cascade. The
// caller owns the returned store and must Close it. When no LLM
// provider is configured, the cascade runs on its fallback tiers.
func buildService(cmd *cobra.Command) (*session.Service, *store.Store, error) {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	cfg := quizgen.DefaultConfig()

	var providers []llm.Provider
	llmCfg := llm.ConfigFromEnv()
	if llmCfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			llmCfg = discovered
		}
	}
	if llmCfg.Validate() == nil {
		providers, err = llm.NewRankedProviders(ctx, llmCfg, st.EventRepo())
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("init LLM providers: %w", err)
		}
	} else {
		fmt.Fprintln(os.Stderr, "LLM provider not configured; using fallback generation only.")
	}

	registry := quizgen.NewRegistry(providers, cfg)
	cascade := quizgen.NewCascade(registry, cfg)

	return session.New(st, sourceExtractor{}, cascade), st, nil
}

// sourceExtractor resolves a source argument: an existing file path is
// read from disk, anything else is treated as inline text.
type sourceExtractor struct{}

func (sourceExtractor) Extract(ctx context.Context, source string) (string, error) {
	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		return extract.File{}.Extract(ctx, source)
	}
	return extract.PlainText{}.Extract(ctx, source)
}
