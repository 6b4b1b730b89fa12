package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/khrees2412/proposly/internal/app"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

var (
	configFile string
	userFlag   int
)

var rootCmd = &cobra.Command{
	Use:   "proposly",
	Short: "AI-assisted freelance proposal writer",
	Long: `Proposly writes short, personalized Upwork-style proposals from a job description,
your profile and your past projects, and learns from the proposals that win.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp(cmd.Context(), configFile)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		cmd.SetContext(app.WithApp(cmd.Context(), application))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if a := app.FromContext(cmd.Context()); a != nil {
			return a.Close()
		}
		return nil
	},
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.proposly/config.yaml)")
	rootCmd.PersistentFlags().IntVarP(&userFlag, "user", "u", 1, "id of the acting user")
}

func currentApp(cmd *cobra.Command) *app.App {
	return app.FromContext(cmd.Context())
}

var errNoUser = errors.New("user not found, create one with 'proposly user create --name <name>'")

// currentUser returns the --user id after checking that the user exists
func currentUser(cmd *cobra.Command) (int, error) {
	user, err := currentApp(cmd).Store.GetUser(cmd.Context(), userFlag)
	if err != nil {
		return 0, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return 0, fmt.Errorf("user %d: %w", userFlag, errNoUser)
	}
	return user.ID, nil
}

func parseID(arg, what string) (int, error) {
	var id int
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: must be a positive number", what)
	}
	return id, nil
}

func printField(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%s %s\n", labelStyle.Render(label), valueStyle.Render(value))
}
