package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khrees2412/proposly/pkg/models"
)

var validLevels = []string{models.ProficiencyBeginner, models.ProficiencyIntermediate, models.ProficiencyExpert}

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage your skills",
	Long:  "Add, list, and remove skills from your profile and browse the shared catalog",
}

var addSkillCmd = &cobra.Command{
	Use:   "add <skill-name>",
	Short: "Add a skill, or change its level",
	Args:  cobra.ExactArgs(1),
	Example: `  proposly skill add "Go"
  proposly skill add "Laravel" --level expert`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")

		valid := false
		for _, l := range validLevels {
			if l == level {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid level, must be one of: %v", validLevels)
		}

		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		skill, err := currentApp(cmd).Store.AddUserSkill(cmd.Context(), userID, args[0], level)
		if err != nil {
			return fmt.Errorf("add skill: %w", err)
		}

		fmt.Printf("✓ Added skill: %s (%s)\n", skill.SkillName, skill.ProficiencyLevel)
		return nil
	},
}

var listSkillsCmd = &cobra.Command{
	Use:   "list",
	Short: "List your skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		skills, err := currentApp(cmd).Store.ListUserSkills(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("fetch skills: %w", err)
		}

		if len(skills) == 0 {
			fmt.Println("No skills found. Add skills with 'proposly skill add <skill-name>'")
			return nil
		}

		fmt.Println(titleStyle.Render("Your Skills"))
		for i, skill := range skills {
			fmt.Printf("%d. %s (%s)\n", i+1, skill.SkillName, skill.ProficiencyLevel)
		}
		return nil
	},
}

var removeSkillCmd = &cobra.Command{
	Use:   "remove <skill-name>",
	Short: "Remove a skill from your profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		removed, err := currentApp(cmd).Store.RemoveUserSkill(cmd.Context(), userID, args[0])
		if err != nil {
			return fmt.Errorf("remove skill: %w", err)
		}
		if !removed {
			fmt.Printf("You don't have the skill %q\n", args[0])
			return nil
		}

		fmt.Printf("✓ Removed skill: %s\n", args[0])
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the shared skill catalog",
	Example: `  proposly skill catalog
  proposly skill catalog --all
  proposly skill catalog --deactivate "jQuery"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		deactivate, _ := cmd.Flags().GetString("deactivate")
		activate, _ := cmd.Flags().GetString("activate")

		store := currentApp(cmd).Store
		if deactivate != "" || activate != "" {
			name, active := activate, true
			if deactivate != "" {
				name, active = deactivate, false
			}
			if err := store.SetSkillActive(cmd.Context(), name, active); err != nil {
				return fmt.Errorf("update catalog: %w", err)
			}
			state := "active"
			if !active {
				state = "inactive"
			}
			fmt.Printf("✓ %s is now %s\n", name, state)
			return nil
		}

		skills, err := store.ListSkills(cmd.Context(), !all)
		if err != nil {
			return fmt.Errorf("fetch catalog: %w", err)
		}
		if len(skills) == 0 {
			fmt.Println("The catalog is empty.")
			return nil
		}

		fmt.Println(titleStyle.Render("Skill Catalog"))
		for _, s := range skills {
			fmt.Printf("  • %s", s.Name)
			if !s.Active {
				fmt.Print(" (inactive)")
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(skillCmd)

	skillCmd.AddCommand(addSkillCmd)
	skillCmd.AddCommand(listSkillsCmd)
	skillCmd.AddCommand(removeSkillCmd)
	skillCmd.AddCommand(catalogCmd)

	addSkillCmd.Flags().String("level", models.ProficiencyIntermediate, "Proficiency level (beginner, intermediate, expert)")

	catalogCmd.Flags().Bool("all", false, "Include inactive skills")
	catalogCmd.Flags().String("deactivate", "", "Hide a skill from the catalog")
	catalogCmd.Flags().String("activate", "", "Restore a hidden skill")
	catalogCmd.MarkFlagsMutuallyExclusive("deactivate", "activate")
}
