package quizgen

import "github.com/socratai/socratai/internal/llm"

// QuestionSetSchema returns the JSON schema for structured LLM output
// of the given question type. The correct_answer shape varies by type,
// so each type gets its own schema under its own name; a shared name
// would collide in the provider-side compiled-schema cache.
func QuestionSetSchema(qt QuestionType) *llm.Schema {
	name := "quiz-questions-" + string(TypeMCQ)
	var record map[string]any
	switch qt {
	case TypeFillUps:
		name = "quiz-questions-" + string(qt)
		record = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "A statement containing the blank placeholder " + BlankToken,
				},
				"correct_answer": map[string]any{
					"type":        "string",
					"description": "The exact string that fills the blank",
				},
			},
			"required":             []any{"question", "correct_answer"},
			"additionalProperties": false,
		}
	case TypeShortAnswer:
		name = "quiz-questions-" + string(qt)
		record = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "An open question requiring a brief written answer",
				},
				"correct_answer": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Keywords a complete answer must mention",
				},
			},
			"required":             []any{"question", "correct_answer"},
			"additionalProperties": false,
		}
	default: // mcq
		record = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "Clear, specific question text ending with a question mark",
				},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"minItems":    4,
					"maxItems":    4,
					"description": "Exactly 4 answer options",
				},
				"correct_answer": map[string]any{
					"type":        "integer",
					"minimum":     0,
					"maximum":     3,
					"description": "0-indexed position of the correct option",
				},
			},
			"required":             []any{"question", "options", "correct_answer"},
			"additionalProperties": false,
		}
	}

	return &llm.Schema{
		Name:        name,
		Description: "A set of generated quiz questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":  "array",
					"items": record,
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}
