package quizgen

import (
	"context"
	"errors"
)

// Cascade walks an ordered tier list and returns the first sufficient
// question set. It degrades tier by tier and never surfaces a provider
// failure to the caller: the worst well-formed outcome is a short or
// template-filled set.
type Cascade struct {
	registry *Registry
	cfg      Config
}

// NewCascade creates a cascade over the registry's tiers.
func NewCascade(registry *Registry, cfg Config) *Cascade {
	return &Cascade{registry: registry, cfg: cfg}
}

// ErrBadRequest indicates the generation request itself is malformed.
// The only error Generate can return besides context cancellation.
var ErrBadRequest = errors.New("malformed generation request")

// Generate produces a quiz for the request. Each tier runs under its
// own timeout; a stalled or failing tier is skipped. The first tier
// whose validated yield reaches ceil(Count/2) wins. If no tier reaches
// the threshold, the best partial result is returned rather than an
// error.
func (c *Cascade) Generate(ctx context.Context, req GenerationRequest) (*QuizSet, error) {
	if req.Count <= 0 || !req.Type.Valid() {
		return nil, ErrBadRequest
	}

	var best []Question
	for _, tier := range c.registry.Tiers() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		questions := c.runTier(ctx, tier, req)
		if len(questions) > req.Count {
			questions = questions[:req.Count]
		}
		if len(questions) >= req.threshold() {
			return c.quizSet(req, questions), nil
		}
		if len(questions) > len(best) {
			best = questions
		}
	}

	// All tiers below threshold. The template tier makes this
	// unreachable in practice, but degrade to whatever was produced.
	return c.quizSet(req, best), nil
}

func (c *Cascade) runTier(ctx context.Context, tier Tier, req GenerationRequest) []Question {
	tierCtx := ctx
	if c.cfg.TierTimeout > 0 {
		var cancel context.CancelFunc
		tierCtx, cancel = context.WithTimeout(ctx, c.cfg.TierTimeout)
		defer cancel()
	}

	questions, err := tier.Generate(tierCtx, req)
	if err != nil {
		return nil
	}
	return questions
}

func (c *Cascade) quizSet(req GenerationRequest, questions []Question) *QuizSet {
	if questions == nil {
		questions = []Question{}
	}
	return &QuizSet{
		Questions:    questions,
		Difficulty:   req.Difficulty,
		BloomLevel:   req.Focus,
		QuestionType: req.Type,
		TopicCount:   len(req.Topics),
	}
}
