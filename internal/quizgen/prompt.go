package quizgen

import (
	"fmt"
	"strings"

	"github.com/socratai/socratai/internal/adaptive"
)

const (
	maxPromptTopics  = 10
	maxPromptContext = 6000
)

const systemPrompt = `You are an expert academic question writer creating assessment questions from course material.

Rules:
- Each question must test a specific fact, concept, or relationship from the material. "What is the primary purpose of the activation function in a neural network?" is good; "Why is Machine Learning important?" is not.
- For multiple choice, all 4 options must come from the same domain, be grammatically consistent with the stem, be similar in length, and be believably wrong. Never use joke options like "It tastes good", "It causes global warming", "None of the above" or "All of the above".
- Only one option may be definitively correct.
- If context is provided, questions must be answerable from that context.
- Return ONLY a valid JSON object of the form {"questions": [...]}. No markdown, no explanation, no code blocks.`

var difficultyGuide = map[adaptive.Difficulty]string{
	adaptive.DifficultyEasy:   "Test basic recall and fundamental understanding. Use straightforward language.",
	adaptive.DifficultyMedium: "Test application and analysis. Require connecting multiple concepts.",
	adaptive.DifficultyHard:   "Test evaluation and synthesis. Require deep understanding and critical thinking.",
}

var bloomGuide = map[adaptive.Bloom]string{
	adaptive.BloomRemember:   "Focus on factual recall: Define, List, State, Identify.",
	adaptive.BloomUnderstand: "Test comprehension: Explain, Describe, Summarize, Interpret.",
	adaptive.BloomApply:      "Use knowledge in new situations: Calculate, Solve, Demonstrate, Apply.",
	adaptive.BloomAnalyze:    "Break down concepts: Compare, Contrast, Differentiate, Organize.",
	adaptive.BloomEvaluate:   "Make judgments: Assess, Critique, Justify, Evaluate effectiveness.",
	adaptive.BloomMixed:      "Vary across Bloom's levels for comprehensive assessment.",
	adaptive.BloomAll:        "Cover every Bloom's level at least once across the set.",
}

// outputContract describes the exact record shape the provider must
// emit for each question type.
var outputContract = map[QuestionType]string{
	TypeMCQ: `{
  "questions": [
    {
      "question": "Clear, specific question text ending with a question mark?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": 0
    }
  ]
}
Where "options" has exactly 4 strings and "correct_answer" is the 0-indexed position (0, 1, 2, or 3) of the correct option.`,
	TypeFillUps: `{
  "questions": [
    {
      "question": "A statement with the missing term replaced by ` + BlankToken + `.",
      "correct_answer": "the exact string that fills the blank"
    }
  ]
}
Do not include an "options" field. The question text must contain the ` + BlankToken + ` placeholder exactly once.`,
	TypeShortAnswer: `{
  "questions": [
    {
      "question": "An open question requiring a brief written answer?",
      "correct_answer": ["required keyword or phrase", "another required keyword"]
    }
  ]
}
Do not include an "options" field. "correct_answer" is the list of keywords a complete answer must mention.`,
}

// buildUserMessage renders the generation request into a single
// instruction payload. Topics and context are capped to bound payload
// size. Pure transformation, no side effects.
func buildUserMessage(req GenerationRequest) string {
	topics := req.Topics
	if len(topics) > maxPromptTopics {
		topics = topics[:maxPromptTopics]
	}
	context := req.Context
	if len(context) > maxPromptContext {
		context = context[:maxPromptContext]
	}
	if strings.TrimSpace(context) == "" {
		context = "No specific context provided. Generate questions based on general knowledge of the topics."
	}

	dGuide, ok := difficultyGuide[req.Difficulty]
	if !ok {
		dGuide = "Mix of difficulty levels."
	}
	bGuide, ok := bloomGuide[req.Focus]
	if !ok {
		bGuide = "Mix of cognitive levels."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create %d %s questions.\n\n", req.Count, questionTypeLabel(req.Type))
	fmt.Fprintf(&b, "=== SOURCE MATERIAL ===\nTopics: %s\n\nContext:\n%s\n\n", strings.Join(topics, ", "), context)
	fmt.Fprintf(&b, "=== GENERATION REQUIREMENTS ===\n\nDIFFICULTY: %s\n%s\n\n", strings.ToUpper(string(req.Difficulty)), dGuide)
	fmt.Fprintf(&b, "BLOOM'S LEVEL: %s\n%s\n\n", req.Focus, bGuide)
	fmt.Fprintf(&b, "=== OUTPUT FORMAT ===\n\n%s\n\n", outputContract[req.Type])
	fmt.Fprintf(&b, "Generate exactly %d questions now:", req.Count)
	return b.String()
}

func questionTypeLabel(t QuestionType) string {
	switch t {
	case TypeMCQ:
		return "multiple choice"
	case TypeFillUps:
		return "fill in the blank"
	case TypeShortAnswer:
		return "short answer"
	}
	return string(t)
}
