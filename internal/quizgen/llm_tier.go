package quizgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/socratai/socratai/internal/llm"
)

// Tier is one rung of the generation cascade. A tier returns the
// validated questions it could produce; the cascade decides whether the
// yield is sufficient.
type Tier interface {
	// Name identifies the tier for question provenance and logging.
	Name() string

	// Generate produces validated questions for the request. A tier
	// that cannot serve the request returns an empty slice or an error;
	// the cascade treats both the same way and advances.
	Generate(ctx context.Context, req GenerationRequest) ([]Question, error)
}

// LLMTier is the primary tier. It walks an ordered list of providers
// (fastest and cheapest first), giving each a bounded number of
// attempts, and accepts the first response whose validated yield meets
// the request threshold.
type LLMTier struct {
	providers []llm.Provider
	cfg       Config
}

// NewLLMTier creates the primary tier over ranked providers.
func NewLLMTier(providers []llm.Provider, cfg Config) *LLMTier {
	return &LLMTier{providers: providers, cfg: cfg}
}

func (t *LLMTier) Name() string { return "llm" }

func (t *LLMTier) Generate(ctx context.Context, req GenerationRequest) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	llmReq := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      QuestionSetSchema(req.Type),
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	}

	var lastErr error
	for _, p := range t.providers {
		questions, err := t.tryModel(ctx, p, llmReq, req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if len(questions) >= req.threshold() {
			return questions, nil
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("all models exhausted: %w", lastErr)
	}
	return nil, errors.New("no model produced a sufficient question set")
}

// tryModel gives one provider its attempt budget. A rate limit abandons
// the model immediately; other failures retry after a short pause.
func (t *LLMTier) tryModel(ctx context.Context, p llm.Provider, llmReq llm.Request, req GenerationRequest) ([]Question, error) {
	attempts := t.cfg.ModelAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(t.cfg.AttemptBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := p.Generate(ctx, llmReq)
		if err != nil {
			var rateLimit *llm.ErrRateLimit
			if errors.As(err, &rateLimit) {
				return nil, fmt.Errorf("model %s rate limited: %w", p.ModelID(), err)
			}
			lastErr = err
			continue
		}

		candidates, err := ParseCandidates(resp.Content)
		if err != nil {
			lastErr = err
			continue
		}

		questions := filterCandidates(candidates, req.Type, t.cfg.Validators, t.Name())
		if len(questions) == 0 {
			lastErr = errors.New("no candidate survived validation")
			continue
		}
		if len(questions) > req.Count {
			questions = questions[:req.Count]
		}
		return questions, nil
	}
	return nil, lastErr
}
