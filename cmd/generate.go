package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/socratai/socratai/internal/adaptive"
	"github.com/socratai/socratai/internal/quizgen"
	"github.com/socratai/socratai/internal/session"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <session-id>",
	Short: "Generate a quiz for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		qType, _ := cmd.Flags().GetString("type")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		module, _ := cmd.Flags().GetBool("module")
		asJSON, _ := cmd.Flags().GetBool("json")

		svc, st, err := buildService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		var res *session.QuizResult
		if module {
			res, err = svc.GenerateModuleQuiz(cmd.Context(), args[0])
		} else {
			res, err = svc.GenerateQuiz(cmd.Context(), args[0], session.GenerateOptions{
				Count:      count,
				Type:       quizgen.QuestionType(qType),
				Difficulty: adaptive.Difficulty(difficulty),
			})
		}
		if err != nil {
			return fmt.Errorf("generate quiz: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		fmt.Printf("Quiz:       %s\n", res.QuizID)
		fmt.Printf("Difficulty: %s  Focus: %s  Type: %s\n\n",
			res.Quiz.Difficulty, res.Quiz.BloomLevel, res.Quiz.QuestionType)
		for i, q := range res.Quiz.Questions {
			fmt.Printf("%d. %s\n", i+1, q.Text)
			for j, opt := range q.Options {
				fmt.Printf("   %c) %s\n", 'a'+j, opt)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntP("count", "n", 10, "Number of questions")
	generateCmd.Flags().StringP("type", "t", "mcq", "Question type: mcq, fill_ups, short_answer")
	generateCmd.Flags().StringP("difficulty", "d", "", "Difficulty override: Easy, Medium, Hard")
	generateCmd.Flags().Bool("module", false, "Generate the current adaptive module quiz")
	generateCmd.Flags().Bool("json", false, "Print the full quiz record as JSON")
}
