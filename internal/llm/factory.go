package llm

import (
	"context"
	"fmt"

	"github.com/socratai/socratai/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewProviderFromEnv discovers configuration from the environment and
// builds a Provider. SOCRATAI_* variables win over bare API key probing.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}

// NewRankedProviders builds the ordered provider list the generation
// cascade walks for its primary tier. For Gemini this is one provider per
// configured model (sharing a single client); for OpenAI and Anthropic it
// is a single provider. Each entry is wrapped with event logging only —
// the cascade owns its own attempt policy, so no retry middleware here.
func NewRankedProviders(ctx context.Context, cfg Config, eventRepo store.EventRepo) ([]Provider, error) {
	switch cfg.Provider {
	case "gemini":
		first, err := NewGeminiProvider(ctx, cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("initializing gemini provider: %w", err)
		}
		models := cfg.Gemini.Models
		if len(models) == 0 {
			models = DefaultGeminiModels()
		}
		out := make([]Provider, 0, len(models))
		for i, m := range models {
			p := first
			if i > 0 {
				p = first.WithModel(m)
			}
			out = append(out, WithLogging(p, eventRepo))
		}
		return out, nil
	case "openai", "anthropic":
		p, err := NewProvider(ctx, cfg, eventRepo)
		if err != nil {
			return nil, err
		}
		return []Provider{p}, nil
	case "mock":
		return []Provider{NewMockProvider()}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
