package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <proposal-id> <won|lost>",
	Short: "Record whether a proposal won the job",
	Long: `Record the outcome of a proposal. Winning proposals teach Proposly the tone
and structure to reuse for similar jobs.`,
	Args: cobra.ExactArgs(2),
	Example: `  proposly feedback 12 won
  proposly feedback 13 lost`,
	RunE: func(cmd *cobra.Command, args []string) error {
		proposalID, err := parseID(args[0], "proposal")
		if err != nil {
			return err
		}

		var success bool
		switch strings.ToLower(args[1]) {
		case "won", "success", "yes":
			success = true
		case "lost", "failed", "no":
			success = false
		default:
			return fmt.Errorf("invalid outcome %q: use won or lost", args[1])
		}

		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		if _, err := currentApp(cmd).Feedback.Record(cmd.Context(), proposalID, userID, success); err != nil {
			return fmt.Errorf("record feedback: %w", err)
		}

		if success {
			fmt.Printf("✓ Proposal %d marked as won; its style will guide future proposals\n", proposalID)
		} else {
			fmt.Printf("✓ Proposal %d marked as lost\n", proposalID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
}
