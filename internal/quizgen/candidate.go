package quizgen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Candidate is a raw question record as produced by a provider, before
// validation. The correct_answer field is polymorphic on the wire: an
// option index for mcq, the blank-filling string for fill_ups, a keyword
// list for short_answer.
type Candidate struct {
	Question string
	Options  []string

	// Exactly one of the following is populated, depending on how
	// correct_answer decoded.
	AnswerIndex int
	HasIndex    bool
	AnswerText  string
	Keywords    []string
}

type candidateWire struct {
	Question      string          `json:"question"`
	Options       []string        `json:"options"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
}

// UnmarshalJSON decodes the wire record, resolving the polymorphic
// correct_answer field by its JSON type.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var w candidateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Question = w.Question
	c.Options = w.Options
	c.HasIndex = false
	c.AnswerText = ""
	c.Keywords = nil

	raw := strings.TrimSpace(string(w.CorrectAnswer))
	if raw == "" || raw == "null" {
		return nil
	}
	switch raw[0] {
	case '"':
		return json.Unmarshal(w.CorrectAnswer, &c.AnswerText)
	case '[':
		return json.Unmarshal(w.CorrectAnswer, &c.Keywords)
	default:
		if err := json.Unmarshal(w.CorrectAnswer, &c.AnswerIndex); err != nil {
			return fmt.Errorf("correct_answer is neither index, string, nor list: %w", err)
		}
		c.HasIndex = true
		return nil
	}
}

var (
	codeFenceOpenRe  = regexp.MustCompile("^```(?:json)?\\s*")
	codeFenceCloseRe = regexp.MustCompile("\\s*```$")
	jsonArrayRe      = regexp.MustCompile(`\[[\s\S]*\]`)
)

// ParseCandidates extracts a candidate list from raw provider output.
// It tolerates the usual LLM sloppiness: markdown code fences around the
// payload, prose before or after the array, and either a bare array or
// an object with a "questions" field.
func ParseCandidates(raw []byte) ([]Candidate, error) {
	text := strings.TrimSpace(string(raw))
	text = codeFenceOpenRe.ReplaceAllString(text, "")
	text = codeFenceCloseRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	// Structured-output providers return {"questions": [...]}.
	var wrapped struct {
		Questions []Candidate `json:"questions"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil && wrapped.Questions != nil {
		return wrapped.Questions, nil
	}

	match := jsonArrayRe.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("no question array in provider output")
	}
	var candidates []Candidate
	if err := json.Unmarshal([]byte(match), &candidates); err != nil {
		return nil, fmt.Errorf("parsing question array: %w", err)
	}
	return candidates, nil
}
