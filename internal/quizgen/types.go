package quizgen

import "github.com/socratai/socratai/internal/adaptive"

// QuestionType selects the shape of generated questions.
type QuestionType string

const (
	// TypeMCQ is a four-option multiple choice question.
	TypeMCQ QuestionType = "mcq"

	// TypeFillUps is a cloze question whose text contains BlankToken.
	TypeFillUps QuestionType = "fill_ups"

	// TypeShortAnswer is a free-text question scored against keywords.
	TypeShortAnswer QuestionType = "short_answer"
)

// Valid reports whether t is one of the enumerated question types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeMCQ, TypeFillUps, TypeShortAnswer:
		return true
	}
	return false
}

// BlankToken is the placeholder a fill_ups question carries where the
// learner's answer goes.
const BlankToken = "_____"

// Question is a validated question ready for presentation and scoring.
type Question struct {
	// Text is the question prompt displayed to the learner.
	Text string `json:"question"`

	// Options holds exactly 4 entries for mcq questions, nil otherwise.
	Options []string `json:"options,omitempty"`

	// AnswerIndex is the index of the correct option, 0-3. Only
	// meaningful for mcq questions.
	AnswerIndex int `json:"answer_index"`

	// Answer is the exact string that fills the blank. Only set for
	// fill_ups questions.
	Answer string `json:"answer,omitempty"`

	// Keywords are the phrases a short_answer response must mention.
	Keywords []string `json:"keywords,omitempty"`

	// Type tags the question with its shape.
	Type QuestionType `json:"type"`

	// Source records which cascade tier produced the question,
	// e.g. "gemini", "opentdb", "extractive", "template".
	Source string `json:"source,omitempty"`
}

// QuizSet is the persisted quiz record: the accepted questions plus the
// generation parameters they were produced under.
type QuizSet struct {
	Questions    []Question          `json:"questions"`
	Difficulty   adaptive.Difficulty `json:"difficulty"`
	BloomLevel   adaptive.Bloom      `json:"bloom_level"`
	QuestionType QuestionType        `json:"question_type"`
	TopicCount   int                 `json:"topic_count"`
}

// GenerationRequest carries everything the cascade needs to produce one
// quiz.
type GenerationRequest struct {
	// Topics are the candidate topics to draw questions from.
	Topics []string

	// Context is the raw source text questions should be grounded in.
	// Empty means general knowledge.
	Context string

	// Count is the number of questions requested.
	Count int

	// Difficulty is the target difficulty tier.
	Difficulty adaptive.Difficulty

	// Focus is the target cognitive level.
	Focus adaptive.Bloom

	// Type is the question shape to generate.
	Type QuestionType
}

// threshold is the minimum number of valid questions a tier must yield
// for its output to be accepted: ceil(Count / 2).
func (r GenerationRequest) threshold() int {
	return (r.Count + 1) / 2
}
