package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your freelancer profile",
	Long:  "View and update the profile used to personalize your proposals",
}

var showProfileCmd = &cobra.Command{
	Use:   "show",
	Short: "Display your profile information",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		profile, err := currentApp(cmd).Store.GetProfile(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		if profile == nil {
			fmt.Println("No profile found for this user.")
			return nil
		}

		fmt.Println(titleStyle.Render("Your Profile"))
		printField("Title:", profile.Title)
		printField("Experience:", fmt.Sprintf("%d years", profile.YearsExperience))
		printField("Tone:", profile.DefaultTone)
		printField("Writing Style:", profile.WritingStyleNotes)
		printField("Bio:", profile.Bio)
		if profile.Birthday != nil {
			printField("Birthday:", profile.Birthday.Format("2006-01-02"))
		}
		printField("Country:", profile.Country)
		printField("City:", profile.City)
		printField("Address:", profile.Address)
		printField("Portfolio:", profile.PortfolioURL)
		printField("GitHub:", profile.GitHubURL)
		printField("LinkedIn:", profile.LinkedInURL)

		if len(profile.Skills) > 0 {
			fmt.Println(labelStyle.Render("\nSkills:"))
			for _, skill := range profile.Skills {
				fmt.Printf("  • %s (%s)\n", skill.SkillName, skill.ProficiencyLevel)
			}
		}
		return nil
	},
}

var setProfileCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Example: `  proposly profile set --title "Laravel developer" --years 6
  proposly profile set --tone friendly --style "Short paragraphs, no jargon"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser(cmd)
		if err != nil {
			return err
		}

		a := currentApp(cmd)
		profile, err := a.Store.GetProfile(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		if profile == nil {
			return fmt.Errorf("no profile found for user %d", userID)
		}

		flags := cmd.Flags()
		stringFields := map[string]*string{
			"title":     &profile.Title,
			"tone":      &profile.DefaultTone,
			"style":     &profile.WritingStyleNotes,
			"bio":       &profile.Bio,
			"country":   &profile.Country,
			"city":      &profile.City,
			"address":   &profile.Address,
			"portfolio": &profile.PortfolioURL,
			"github":    &profile.GitHubURL,
			"linkedin":  &profile.LinkedInURL,
		}

		updated := false
		for name, field := range stringFields {
			if flags.Changed(name) {
				*field, _ = flags.GetString(name)
				updated = true
			}
		}
		if flags.Changed("years") {
			years, _ := flags.GetInt("years")
			if years < 0 {
				return fmt.Errorf("--years must not be negative")
			}
			profile.YearsExperience = years
			updated = true
		}
		if flags.Changed("birthday") {
			raw, _ := flags.GetString("birthday")
			birthday, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fmt.Errorf("invalid birthday format, use YYYY-MM-DD")
			}
			profile.Birthday = &birthday
			updated = true
		}

		if !updated {
			fmt.Println("No fields to update. Use flags like --title, --years, --tone, etc.")
			return nil
		}

		if err := a.Store.UpdateProfile(cmd.Context(), profile); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}

		fmt.Println("✓ Profile updated successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(setProfileCmd)

	setProfileCmd.Flags().String("title", "", "Professional title")
	setProfileCmd.Flags().Int("years", 0, "Years of experience")
	setProfileCmd.Flags().String("tone", "", "Default tone (professional, friendly, enthusiastic)")
	setProfileCmd.Flags().String("style", "", "Writing style notes")
	setProfileCmd.Flags().String("bio", "", "Short bio")
	setProfileCmd.Flags().String("birthday", "", "Birthday (YYYY-MM-DD)")
	setProfileCmd.Flags().String("country", "", "Country")
	setProfileCmd.Flags().String("city", "", "City")
	setProfileCmd.Flags().String("address", "", "Address")
	setProfileCmd.Flags().String("portfolio", "", "Portfolio site URL")
	setProfileCmd.Flags().String("github", "", "GitHub URL")
	setProfileCmd.Flags().String("linkedin", "", "LinkedIn URL")
}
