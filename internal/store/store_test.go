package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSessionRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	topics := []string{"Determinant of a Matrix", "Inverse of a Matrix"}
	id, err := st.SessionRepo().Create(ctx, "syllabus.txt", "1. Determinant of a Matrix", topics)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	sess, err := st.SessionRepo().Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "syllabus.txt", sess.Source)
	require.Equal(t, topics, sess.Topics)
}

func TestSessionNotFound(t *testing.T) {
	st := openTestStore(t)

	_, err := st.SessionRepo().Get(context.Background(), "nope")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestQuizRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sessionID, err := st.SessionRepo().Create(ctx, "text", "", nil)
	require.NoError(t, err)

	data := []byte(`{"questions":[],"difficulty":"Medium"}`)
	quizID, err := st.QuizRepo().Save(ctx, sessionID, data, "mcq", "Medium")
	require.NoError(t, err)

	quiz, err := st.QuizRepo().Get(ctx, quizID)
	require.NoError(t, err)
	require.Equal(t, sessionID, quiz.SessionID)
	// Quiz data round-trips unchanged.
	require.Equal(t, string(data), quiz.Data)
	require.Equal(t, "mcq", quiz.QuizType)
}

func TestLastScore_DefaultsBeforeSubmissions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sessionID, err := st.SessionRepo().Create(ctx, "text", "", nil)
	require.NoError(t, err)

	score, err := st.SubmissionRepo().LastScore(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, DefaultScore, score)
}

func TestSubmissionsAndStats(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sessionID, err := st.SessionRepo().Create(ctx, "text", "", []string{"Probability Theory"})
	require.NoError(t, err)
	quizID, err := st.QuizRepo().Save(ctx, sessionID, []byte(`{}`), "mcq", "Medium")
	require.NoError(t, err)

	_, err = st.SubmissionRepo().Save(ctx, quizID, sessionID, 40, []byte(`[]`))
	require.NoError(t, err)
	_, err = st.SubmissionRepo().Save(ctx, quizID, sessionID, 80, []byte(`[]`))
	require.NoError(t, err)

	score, err := st.SubmissionRepo().LastScore(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, 80.0, score)

	stats, err := st.SubmissionRepo().Stats(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalQuizzes)
	require.Equal(t, 60.0, stats.AverageScore)
	require.Len(t, stats.History, 2)
	require.Equal(t, 1, stats.History[0].QuizNumber)
	require.Contains(t, stats.TopicPerformance, "Probability Theory")
}

func TestStats_NoSubmissions(t *testing.T) {
	st := openTestStore(t)

	_, err := st.SubmissionRepo().Stats(context.Background(), "empty-session")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestLearnerStateUpsert(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sessionID, err := st.SessionRepo().Create(ctx, "text", "", nil)
	require.NoError(t, err)

	_, err = st.SubmissionRepo().GetState(ctx, sessionID)
	require.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, st.SubmissionRepo().SaveState(ctx, sessionID, []byte(`{"module":1}`)))
	require.NoError(t, st.SubmissionRepo().SaveState(ctx, sessionID, []byte(`{"module":2}`)))

	data, err := st.SubmissionRepo().GetState(ctx, sessionID)
	require.NoError(t, err)
	require.JSONEq(t, `{"module":2}`, string(data))
}

func TestLLMEvents(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini",
		Model:    "gemini-2.0-flash-lite",
		Purpose:  "quiz-gen",
		Success:  true,
	}))
	require.NoError(t, st.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.0-flash",
		Purpose:      "parse",
		Success:      false,
		ErrorMessage: "rate limited",
	}))

	events, err := st.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	// Newest first.
	require.Equal(t, "gemini-2.0-flash", events[0].Model)

	filtered, err := st.EventRepo().QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-gen", Limit: 10})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.True(t, filtered[0].Success)
}
