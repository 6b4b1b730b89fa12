package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/proposly/pkg/models"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage your portfolio projects",
	Long:  "Past projects are scored against each job and the best ones are cited in proposals",
}

var addProjectCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a past project",
	Example: `  proposly project add --title "Clinic booking portal" --industry healthcare \
    --skills Laravel,Vue --integrations Stripe,Twilio --outcome "Cut no-shows by 30%"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		title, _ := flags.GetString("title")
		if strings.TrimSpace(title) == "" {
			return fmt.Errorf("--title is required")
		}

		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		description, _ := flags.GetString("description")
		industry, _ := flags.GetString("industry")
		challenges, _ := flags.GetString("challenges")
		outcome, _ := flags.GetString("outcome")
		skills, _ := flags.GetStringSlice("skills")
		integrations, _ := flags.GetStringSlice("integrations")

		project := &models.Project{
			UserID:      userID,
			Title:       title,
			Description: description,
			Industry:    industry,
			Challenges:  challenges,
			Outcome:     outcome,
		}
		for _, name := range skills {
			project.Skills = append(project.Skills, models.Skill{Name: name})
		}
		for _, name := range integrations {
			project.Integrations = append(project.Integrations, models.ProjectIntegration{Name: name})
		}

		if err := currentApp(cmd).Store.CreateProject(cmd.Context(), project); err != nil {
			return fmt.Errorf("add project: %w", err)
		}

		fmt.Printf("✓ Added project: %s (ID: %d)\n", project.Title, project.ID)
		return nil
	},
}

var listProjectsCmd = &cobra.Command{
	Use:   "list",
	Short: "List your projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		projects, err := currentApp(cmd).Store.ListProjects(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("fetch projects: %w", err)
		}
		if len(projects) == 0 {
			fmt.Println("No projects found. Add one with 'proposly project add --title <title>'")
			return nil
		}

		fmt.Println(titleStyle.Render("Your Projects"))
		for _, p := range projects {
			fmt.Printf("\n%s %s\n", labelStyle.Render(fmt.Sprintf("%d.", p.ID)), p.Title)
			if p.Industry != "" {
				fmt.Printf("   Industry: %s\n", p.Industry)
			}
			if len(p.Skills) > 0 {
				fmt.Printf("   Skills: %s\n", strings.Join(p.SkillNames(), ", "))
			}
			if len(p.Integrations) > 0 {
				fmt.Printf("   Integrations: %s\n", strings.Join(p.IntegrationNames(), ", "))
			}
			if p.Outcome != "" {
				fmt.Printf("   Outcome: %s\n", p.Outcome)
			}
		}
		return nil
	},
}

var removeProjectCmd = &cobra.Command{
	Use:   "remove <project-id>",
	Short: "Remove a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		removed, err := currentApp(cmd).Store.DeleteProject(cmd.Context(), userID, projectID)
		if err != nil {
			return fmt.Errorf("remove project: %w", err)
		}
		if !removed {
			return fmt.Errorf("project %d not found", projectID)
		}

		fmt.Printf("✓ Removed project (ID: %d)\n", projectID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(addProjectCmd)
	projectCmd.AddCommand(listProjectsCmd)
	projectCmd.AddCommand(removeProjectCmd)

	addProjectCmd.Flags().String("title", "", "Project title (required)")
	addProjectCmd.Flags().String("description", "", "What the project was")
	addProjectCmd.Flags().String("industry", "", "Client industry")
	addProjectCmd.Flags().String("challenges", "", "Key challenges solved")
	addProjectCmd.Flags().String("outcome", "", "Measurable outcome")
	addProjectCmd.Flags().StringSlice("skills", nil, "Comma-separated skills used")
	addProjectCmd.Flags().StringSlice("integrations", nil, "Comma-separated integrations used")
}
