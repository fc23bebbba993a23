package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/socratai/socratai/internal/session"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <session-id>",
	Short: "Show a session's performance history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := buildService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := svc.Stats(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				fmt.Println("No submissions recorded for this session yet.")
				return nil
			}
			return fmt.Errorf("load stats: %w", err)
		}

		fmt.Printf("Session:       %s\n", stats.SessionID)
		fmt.Printf("Quizzes taken: %d\n", stats.TotalQuizzes)
		fmt.Printf("Average score: %.1f%%\n\n", stats.AverageScore)

		fmt.Printf("%-6s  %-19s  %s\n", "Quiz", "Taken", "Score")
		fmt.Println(strings.Repeat("─", 40))
		for _, p := range stats.History {
			fmt.Printf("%-6d  %-19s  %.1f%%\n",
				p.QuizNumber, p.CreatedAt.Local().Format("2006-01-02 15:04:05"), p.Score)
		}
		return nil
	},
}
