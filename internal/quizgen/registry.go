package quizgen

import "github.com/socratai/socratai/internal/llm"

// Registry owns the ordered tier list the cascade walks. Constructed
// once at service startup and shared by reference; no process-wide
// singletons.
type Registry struct {
	tiers []Tier
}

// NewRegistry assembles the standard four-tier cascade: ranked LLM
// providers, public trivia, local extractive fallback, deterministic
// templates. Providers may be empty, in which case the primary tier is
// omitted.
func NewRegistry(providers []llm.Provider, cfg Config) *Registry {
	var tiers []Tier
	if len(providers) > 0 {
		tiers = append(tiers, NewLLMTier(providers, cfg))
	}
	tiers = append(tiers,
		NewTriviaTier(cfg),
		NewExtractiveTier(cfg),
		NewTemplateTier(cfg),
	)
	return &Registry{tiers: tiers}
}

// NewRegistryWithTiers builds a registry over an explicit tier list.
// Used by tests and callers with custom cascades.
func NewRegistryWithTiers(tiers ...Tier) *Registry {
	return &Registry{tiers: tiers}
}

// Tiers returns the ordered tier list.
func (r *Registry) Tiers() []Tier {
	return r.tiers
}
