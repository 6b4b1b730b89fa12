package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khrees2412/proposly/internal/prompt"
)

var proposalsCmd = &cobra.Command{
	Use:     "proposals",
	Aliases: []string{"proposal"},
	Short:   "Browse generated proposals",
}

var listProposalsCmd = &cobra.Command{
	Use:   "list",
	Short: "List your proposals, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		proposals, err := currentApp(cmd).Proposals.ListProposals(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("fetch proposals: %w", err)
		}

		if len(proposals) == 0 {
			fmt.Println("No proposals yet. Generate one with 'proposly generate \"<job description>\"'")
			return nil
		}

		fmt.Println(titleStyle.Render("Your Proposals"))
		for _, p := range proposals {
			fmt.Printf("%s %s  %s\n", labelStyle.Render(fmt.Sprintf("#%d", p.ID)),
				p.CreatedAt.Format("2006-01-02 15:04"), valueStyle.Render(p.Request.DetectedJobType))
			fmt.Printf("   %s\n", prompt.Truncate(p.Request.JobDescription, 80))
		}
		return nil
	},
}

var showProposalCmd = &cobra.Command{
	Use:   "show <proposal-id>",
	Short: "Show a proposal and the job it answered",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proposalID, err := parseID(args[0], "proposal")
		if err != nil {
			return err
		}
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		p, err := currentApp(cmd).Proposals.GetProposal(cmd.Context(), userID, proposalID)
		if err != nil {
			return fmt.Errorf("fetch proposal: %w", err)
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Proposal #%d", p.ID)))
		printField("Created:", p.CreatedAt.Format("2006-01-02 15:04"))
		printField("Job Type:", p.Request.DetectedJobType)
		printField("Model:", p.ModelUsed)
		printField("Tokens:", fmt.Sprintf("%d", p.TokensUsed))

		fmt.Println(labelStyle.Render("\nJob Description:"))
		fmt.Println(p.Request.JobDescription)
		fmt.Println(labelStyle.Render("\nProposal:"))
		fmt.Println(p.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(proposalsCmd)
	proposalsCmd.AddCommand(listProposalsCmd)
	proposalsCmd.AddCommand(showProposalCmd)
}
