package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage learning sessions",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <file-or-text>",
	Short: "Create a session from course material",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := buildService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := svc.Start(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}

		fmt.Printf("Session:  %s\n", res.SessionID)
		fmt.Printf("Text:     %d characters\n", res.TextLength)
		fmt.Printf("Topics:   %d\n", len(res.Topics))
		for i, t := range res.Topics {
			fmt.Printf("%2d. %s\n", i+1, t)
		}
		return nil
	},
}

var sessionStateCmd = &cobra.Command{
	Use:   "state <session-id>",
	Short: "Show the learner's adaptive state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := buildService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		state, err := svc.State(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	},
}

func init() {
	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionStateCmd)
}
