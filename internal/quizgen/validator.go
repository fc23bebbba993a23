package quizgen

import (
	"fmt"
	"strings"
)

// Validator checks a raw candidate against the rules for its question
// type. Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error
	// messages and logging), e.g. "structural", "denylist".
	Name() string

	// Validate checks the candidate and returns nil if it passes.
	Validate(c *Candidate, qt QuestionType) *ValidationError
}

// ValidationError describes why a candidate failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	minQuestionLen    = 10
	minMCQQuestionLen = 15
	maxOptionLen      = 500
	minOptionLen      = 2
	optionCount       = 4
)

// StructuralValidator checks that required fields are present, within
// length limits, and shaped correctly for the question type.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c *Candidate, qt QuestionType) *ValidationError {
	minLen := minQuestionLen
	if qt == TypeMCQ {
		minLen = minMCQQuestionLen
	}
	if len(c.Question) < minLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("question shorter than %d characters", minLen),
		}
	}

	switch qt {
	case TypeMCQ:
		if len(c.Options) != optionCount {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("expected %d options, got %d", optionCount, len(c.Options)),
			}
		}
		for i, opt := range c.Options {
			if len(strings.TrimSpace(opt)) < minOptionLen || len(opt) > maxOptionLen {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("option %d length out of bounds", i),
				}
			}
		}
		if !c.HasIndex || c.AnswerIndex < 0 || c.AnswerIndex >= optionCount {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "correct_answer must be an integer in 0-3",
			}
		}
	case TypeFillUps:
		if !strings.Contains(c.Question, BlankToken) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "question has no blank placeholder",
			}
		}
		if strings.TrimSpace(c.AnswerText) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "correct_answer must be a non-empty string",
			}
		}
	case TypeShortAnswer:
		keywords := c.Keywords
		if len(keywords) == 0 && strings.TrimSpace(c.AnswerText) != "" {
			keywords = []string{c.AnswerText}
		}
		if len(keywords) == 0 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "correct_answer must be a keyword or keyword list",
			}
		}
		for _, k := range keywords {
			if strings.TrimSpace(k) == "" {
				return &ValidationError{
					Validator: v.Name(),
					Message:   "empty keyword in correct_answer",
				}
			}
		}
	default:
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("unknown question type %q", qt),
		}
	}

	return nil
}

// denylist holds lowercase fragments that mark a degenerate or joke
// option. Any mcq option containing one fails validation outright.
var denylist = []string{
	"tastes good", "causes global warming", "holiday destination",
	"musical instrument", "type of food", "color", "edible",
	"fictional character", "biological organism", "none of the above",
	"all of the above", "not important", "unrelated",
}

// DenylistValidator rejects mcq candidates whose options contain known
// nonsense phrases, which leak from low-quality generation.
type DenylistValidator struct{}

func (v *DenylistValidator) Name() string { return "denylist" }

func (v *DenylistValidator) Validate(c *Candidate, qt QuestionType) *ValidationError {
	if qt != TypeMCQ {
		return nil
	}
	for _, opt := range c.Options {
		lower := strings.ToLower(opt)
		for _, bad := range denylist {
			if strings.Contains(lower, bad) {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("option contains denylisted phrase %q", bad),
				}
			}
		}
	}
	return nil
}

// filterCandidates runs every candidate through the validator chain and
// converts survivors into tagged Questions. Failures discard the single
// record, never the batch.
func filterCandidates(candidates []Candidate, qt QuestionType, validators []Validator, source string) []Question {
	questions := make([]Question, 0, len(candidates))
outer:
	for i := range candidates {
		c := &candidates[i]
		for _, v := range validators {
			if verr := v.Validate(c, qt); verr != nil {
				continue outer
			}
		}
		q := Question{
			Text:   c.Question,
			Type:   qt,
			Source: source,
		}
		switch qt {
		case TypeMCQ:
			q.Options = c.Options
			q.AnswerIndex = c.AnswerIndex
		case TypeFillUps:
			q.Answer = c.AnswerText
		case TypeShortAnswer:
			q.Keywords = c.Keywords
			if len(q.Keywords) == 0 {
				q.Keywords = []string{c.AnswerText}
			}
		}
		questions = append(questions, q)
	}
	return questions
}
