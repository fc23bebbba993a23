package cmd

import (
	"github.com/socratai/socratai/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "socratai",
	Short: "Adaptive quiz generation from course material",
	Long:  "SocratAI — generates adaptive quizzes from syllabi and notes, adjusting difficulty and cognitive focus to the learner.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SOCRATAI_DB env var)")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SOCRATAI_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
