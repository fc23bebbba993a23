package quizgen

import (
	"context"
	"fmt"
	"math/rand"
)

// TemplateTier is the last-resort tier: a deterministic generator that
// cycles fixed templates over the requested topics. It always yields
// exactly the requested count and cannot fail.
type TemplateTier struct {
	cfg Config
}

// NewTemplateTier creates the template tier.
func NewTemplateTier(cfg Config) *TemplateTier {
	return &TemplateTier{cfg: cfg}
}

func (t *TemplateTier) Name() string { return "template" }

// mcqTemplates pairs a question stem with its options. The first option
// is the correct one before shuffling.
var mcqTemplates = []struct {
	stem    string
	options [4]string
}{
	{
		stem: "What is the primary purpose of %s?",
		options: [4]string{
			"To solve specific problems in the domain",
			"To provide a framework for analysis",
			"To establish foundational principles",
			"To enable practical applications",
		},
	},
	{
		stem: "Which characteristic best describes %s?",
		options: [4]string{
			"It follows systematic methodologies",
			"It requires iterative refinement",
			"It builds on established theories",
			"It enables measurable outcomes",
		},
	},
	{
		stem: "How does %s contribute to the field?",
		options: [4]string{
			"By providing analytical frameworks",
			"By enabling practical solutions",
			"By establishing theoretical foundations",
			"By facilitating understanding",
		},
	},
}

func (t *TemplateTier) Generate(_ context.Context, req GenerationRequest) ([]Question, error) {
	topics := req.Topics
	if len(topics) == 0 {
		topics = []string{"the subject matter"}
	}

	candidates := make([]Candidate, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		topic := topics[i%len(topics)]
		switch req.Type {
		case TypeFillUps:
			candidates = append(candidates, Candidate{
				Question:   fmt.Sprintf("The concept of %s provides the foundation for this area of study.", BlankToken),
				AnswerText: topic,
			})
		case TypeShortAnswer:
			candidates = append(candidates, Candidate{
				Question: fmt.Sprintf("Describe the main purpose of %s.", topic),
				Keywords: []string{topic},
			})
		default:
			tpl := mcqTemplates[i%len(mcqTemplates)]
			options := make([]string, len(tpl.options))
			copy(options, tpl.options[:])
			correct := options[0]
			rand.Shuffle(len(options), func(a, b int) {
				options[a], options[b] = options[b], options[a]
			})
			idx := 0
			for j, o := range options {
				if o == correct {
					idx = j
					break
				}
			}
			candidates = append(candidates, Candidate{
				Question:    fmt.Sprintf(tpl.stem, topic),
				Options:     options,
				AnswerIndex: idx,
				HasIndex:    true,
			})
		}
	}
	return filterCandidates(candidates, req.Type, t.cfg.Validators, t.Name()), nil
}
