package quizgen

import (
	"strings"
	"testing"

	"github.com/socratai/socratai/internal/adaptive"
)

func TestBuildUserMessage_CapsContext(t *testing.T) {
	req := testRequest(5)
	req.Context = strings.Repeat("a", 10000)

	msg := buildUserMessage(req)
	if len(msg) > 8000 {
		t.Errorf("expected capped payload, got %d bytes", len(msg))
	}
}

func TestBuildUserMessage_CapsTopics(t *testing.T) {
	req := testRequest(5)
	req.Topics = nil
	for i := 0; i < 15; i++ {
		req.Topics = append(req.Topics, "Topic Variant "+string(rune('A'+i)))
	}

	msg := buildUserMessage(req)
	if strings.Contains(msg, "Topic Variant K") {
		t.Error("expected topics capped at 10")
	}
	if !strings.Contains(msg, "Topic Variant J") {
		t.Error("expected 10th topic present")
	}
}

func TestBuildUserMessage_EmptyContext(t *testing.T) {
	req := testRequest(5)
	msg := buildUserMessage(req)
	if !strings.Contains(msg, "general knowledge") {
		t.Error("expected general-knowledge instruction for empty context")
	}
}

func TestBuildUserMessage_DifficultyAndBloom(t *testing.T) {
	req := testRequest(5)
	req.Difficulty = adaptive.DifficultyHard
	req.Focus = adaptive.BloomAnalyze

	msg := buildUserMessage(req)
	if !strings.Contains(msg, "DIFFICULTY: HARD") {
		t.Error("expected difficulty header")
	}
	if !strings.Contains(msg, "Compare, Contrast, Differentiate") {
		t.Error("expected Analyze guidance")
	}
}

func TestBuildUserMessage_OutputContractPerType(t *testing.T) {
	req := testRequest(5)

	req.Type = TypeMCQ
	if msg := buildUserMessage(req); !strings.Contains(msg, `"correct_answer": 0`) {
		t.Error("mcq contract must show an index answer")
	}

	req.Type = TypeFillUps
	if msg := buildUserMessage(req); !strings.Contains(msg, BlankToken) {
		t.Error("fill_ups contract must mention the blank placeholder")
	}

	req.Type = TypeShortAnswer
	if msg := buildUserMessage(req); !strings.Contains(msg, "required keyword") {
		t.Error("short_answer contract must mention keywords")
	}

	// Every contract example must show the same wrapper object the
	// structured-output schema enforces.
	for _, qt := range []QuestionType{TypeMCQ, TypeFillUps, TypeShortAnswer} {
		req.Type = qt
		if msg := buildUserMessage(req); !strings.Contains(msg, `"questions": [`) {
			t.Errorf("%s contract must use the questions wrapper object", qt)
		}
	}
}

func TestQuestionSetSchema_PerType(t *testing.T) {
	seen := map[string]QuestionType{}
	for _, qt := range []QuestionType{TypeMCQ, TypeFillUps, TypeShortAnswer} {
		schema := QuestionSetSchema(qt)
		if want := "quiz-questions-" + string(qt); schema.Name != want {
			t.Errorf("%s: schema name %q, want %q", qt, schema.Name, want)
		}
		// Names must not collide across types: compiled schemas are
		// cached downstream and a shared name would pin the first
		// type's shape for the rest of the process.
		if prev, ok := seen[schema.Name]; ok {
			t.Errorf("%s: schema name %q already used by %s", qt, schema.Name, prev)
		}
		seen[schema.Name] = qt
		props, ok := schema.Definition["properties"].(map[string]any)
		if !ok {
			t.Fatalf("%s: schema has no properties", qt)
		}
		if _, ok := props["questions"]; !ok {
			t.Errorf("%s: schema missing questions field", qt)
		}
	}
}
