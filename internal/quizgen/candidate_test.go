package quizgen

import "testing"

func TestParseCandidates_BareArray(t *testing.T) {
	raw := `[{"question": "What is the rank of a matrix?", "options": ["a", "b", "c", "d"], "correct_answer": 2}]`
	got, err := ParseCandidates([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Question != "What is the rank of a matrix?" {
		t.Errorf("unexpected question: %q", got[0].Question)
	}
	if !got[0].HasIndex || got[0].AnswerIndex != 2 {
		t.Errorf("expected answer index 2, got %+v", got[0])
	}
}

func TestParseCandidates_CodeFences(t *testing.T) {
	raw := "```json\n[{\"question\": \"What is the rank of a matrix?\", \"options\": [\"a\", \"b\", \"c\", \"d\"], \"correct_answer\": 0}]\n```"
	got, err := ParseCandidates([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
}

func TestParseCandidates_ProseAroundArray(t *testing.T) {
	raw := `Here are your questions: [{"question": "What defines an orthogonal matrix?", "correct_answer": "its transpose equals its inverse"}] Hope this helps!`
	got, err := ParseCandidates([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].AnswerText != "its transpose equals its inverse" {
		t.Errorf("unexpected answer text: %q", got[0].AnswerText)
	}
}

func TestParseCandidates_WrappedObject(t *testing.T) {
	raw := `{"questions": [{"question": "Which keywords describe eigenvalues?", "correct_answer": ["scalar", "characteristic polynomial"]}]}`
	got, err := ParseCandidates([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if len(got[0].Keywords) != 2 {
		t.Errorf("expected 2 keywords, got %v", got[0].Keywords)
	}
	if got[0].HasIndex {
		t.Error("list answer must not set an index")
	}
}

func TestParseCandidates_NoArray(t *testing.T) {
	if _, err := ParseCandidates([]byte("I cannot generate questions for this material.")); err == nil {
		t.Fatal("expected error for output without a JSON array")
	}
}

func TestParseCandidates_MalformedArray(t *testing.T) {
	if _, err := ParseCandidates([]byte(`[{"question": }]`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
