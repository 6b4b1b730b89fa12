package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/proposly/pkg/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate [job description]",
	Short: "Generate a proposal for a job",
	Long: `Generate a proposal from a job description given as arguments, or from a
job posting URL loaded in headless Chrome.`,
	Example: `  proposly generate "Need a Laravel developer to build a clinic booking site"
  proposly generate --url https://www.upwork.com/jobs/~0123 --provider gemini`,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		provider, _ := cmd.Flags().GetString("provider")

		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		a := currentApp(cmd)
		description := strings.Join(args, " ")
		if url != "" {
			if description != "" {
				return fmt.Errorf("pass either a job description or --url, not both")
			}
			cmd.Printf("Fetching job posting from %s...\n", url)
			description, err = a.Fetcher.Fetch(cmd.Context(), url)
			if err != nil {
				return fmt.Errorf("fetch job posting: %w", err)
			}
		}

		cmd.Println("Generating proposal with AI...")
		res, err := a.Proposals.Generate(cmd.Context(), userID, description, provider)
		if err != nil {
			return fmt.Errorf("generate proposal: %w", err)
		}

		printAnalysis(res.JobAnalysis)
		printMatch(res.MatchedProjects)

		fmt.Println(titleStyle.Render(fmt.Sprintf("Proposal #%d", res.Proposal.ID)))
		fmt.Println(res.Proposal.Content)
		fmt.Println()
		printField("Provider:", res.ProviderUsed)
		printField("Model:", res.Proposal.ModelUsed)
		printField("Tokens:", fmt.Sprintf("%d", res.TokensUsed))
		fmt.Printf("\nRecord the outcome with 'proposly feedback %d won|lost'\n", res.Proposal.ID)
		return nil
	},
}

func printAnalysis(a models.JobAnalysis) {
	fmt.Println(titleStyle.Render("Job Analysis"))
	printField("Job Type:", a.JobType)
	printField("Industry:", a.Industry)
	printField("Skills:", strings.Join(a.Skills, ", "))
	printField("Integrations:", strings.Join(a.Integrations, ", "))
}

func printMatch(m *models.MatchResult) {
	if m == nil {
		return
	}
	fmt.Println(titleStyle.Render("Matched Projects"))
	if m.SkillsOnly {
		fmt.Println(m.Message)
		return
	}
	for i, sp := range m.Projects {
		fmt.Printf("%d. %s (score %d: %d skills, %d integrations",
			i+1, sp.Project.Title, sp.Score, sp.SkillMatches, sp.IntegrationMatches)
		if sp.IndustryMatch {
			fmt.Print(", industry")
		}
		fmt.Println(")")
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("url", "", "Load the job description from a posting URL")
	generateCmd.Flags().String("provider", "", "AI provider to use (claude, openai, gemini)")
}
