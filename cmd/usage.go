package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show today's generation quota and past usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		a := currentApp(cmd)
		today, err := a.Proposals.UsageToday(cmd.Context(), userID)
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render("Usage"))
		printField("Date:", today.Date)
		printField("Used:", fmt.Sprintf("%d / %d", today.Used, today.Limit))
		printField("Remaining:", fmt.Sprintf("%d", today.Remaining))

		history, _ := cmd.Flags().GetBool("history")
		if !history {
			return nil
		}

		logs, err := a.Store.ListUsage(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("fetch usage history: %w", err)
		}
		fmt.Println(labelStyle.Render("\nHistory:"))
		for _, l := range logs {
			fmt.Printf("  %s  %-20s %d\n", l.Date, l.RequestType, l.Count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
	usageCmd.Flags().Bool("history", false, "Also list usage for previous days")
}
