package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/socratai/socratai/internal/adaptive"
	"github.com/socratai/socratai/internal/session"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit <quiz-id> <answers.json>",
	Short: "Score a quiz submission",
	Long: `Score a quiz submission. The answers file holds a JSON array with one
entry per question: {"index": 2, "text": "...", "time_taken": 12.5, "skipped": false}.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		advanceSession, _ := cmd.Flags().GetString("advance")

		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read answers: %w", err)
		}
		var answers []session.Answer
		if err := json.Unmarshal(data, &answers); err != nil {
			return fmt.Errorf("parse answers: %w", err)
		}

		svc, st, err := buildService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := svc.SubmitQuiz(cmd.Context(), args[0], answers)
		if err != nil {
			return fmt.Errorf("submit quiz: %w", err)
		}

		fmt.Printf("Score: %.1f%% (%d/%d)\n", res.Score, res.Correct, res.Total)
		fmt.Printf("Next difficulty: %s\n", res.NextDifficulty)
		for _, r := range res.Results {
			mark := "✗"
			if r.IsCorrect {
				mark = "✓"
			}
			fmt.Printf("%s %2d. %s (correct: %s)\n", mark, r.QuestionIndex+1, r.UserAnswer, r.CorrectAnswer)
		}

		if advanceSession == "" {
			return nil
		}

		results := make([]adaptive.ModuleResult, len(res.Results))
		for i, r := range res.Results {
			results[i] = adaptive.ModuleResult{Correct: r.IsCorrect}
			if i < len(answers) {
				results[i].TimeTaken = answers[i].TimeTaken
				results[i].Skipped = answers[i].Skipped
			} else {
				results[i].Skipped = true
			}
		}
		state, err := svc.AdvanceModule(cmd.Context(), advanceSession, results)
		if err != nil {
			return fmt.Errorf("advance module: %w", err)
		}
		fmt.Printf("\nModule %d next: %s difficulty, %s focus\n", state.Module, state.Difficulty, state.Focus)
		return nil
	},
}

func init() {
	submitCmd.Flags().String("advance", "", "Session ID whose adaptive module should advance with these results")
}
