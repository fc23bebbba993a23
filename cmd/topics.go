package cmd

import (
	"fmt"

	"github.com/socratai/socratai/internal/topics"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics <file-or-text>",
	Short: "Extract candidate topics from course material",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := sourceExtractor{}.Extract(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("extract text: %w", err)
		}

		topicList := topics.Extract(text)
		if len(topicList) == 0 {
			fmt.Println("No topics found.")
			return nil
		}
		for i, t := range topicList {
			fmt.Printf("%2d. %s\n", i+1, t)
		}
		return nil
	},
}
