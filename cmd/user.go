package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khrees2412/proposly/pkg/models"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var createUserCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a user with an empty profile",
	Example: `  proposly user create --name "Ada Obi" --email ada@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		if name == "" {
			return fmt.Errorf("--name is required")
		}

		user := &models.User{Name: name, Email: email}
		if err := currentApp(cmd).Store.CreateUser(cmd.Context(), user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Printf("✓ Created user %s (ID: %d)\n", user.Name, user.ID)
		fmt.Println("Next steps:")
		fmt.Printf("  1. Fill in your profile: proposly -u %d profile set --title \"Full-stack developer\"\n", user.ID)
		fmt.Printf("  2. Add skills: proposly -u %d skill add Laravel --level expert\n", user.ID)
		fmt.Printf("  3. Add past projects: proposly -u %d project add --title \"Clinic portal\"\n", user.ID)
		return nil
	},
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := currentApp(cmd).Store.ListUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch users: %w", err)
		}
		if len(users) == 0 {
			fmt.Println("No users found. Create one with 'proposly user create --name <name>'")
			return nil
		}

		fmt.Println(titleStyle.Render("Users"))
		for _, u := range users {
			fmt.Printf("%s %s", labelStyle.Render(fmt.Sprintf("%d.", u.ID)), u.Name)
			if u.Email != "" {
				fmt.Printf(" <%s>", u.Email)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(createUserCmd)
	userCmd.AddCommand(listUsersCmd)

	createUserCmd.Flags().String("name", "", "Full name (required)")
	createUserCmd.Flags().String("email", "", "Email address")
}
