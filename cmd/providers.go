package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Inspect and test AI providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(titleStyle.Render("AI Providers"))
		for _, p := range currentApp(cmd).Gateway.Providers() {
			status := "✗ Not configured"
			if p.Configured {
				status = "✓ Configured"
			}
			if p.Default {
				status += " (default)"
			}
			fmt.Printf("%s %s  %s\n", labelStyle.Render(p.Name+":"), valueStyle.Render(p.Model), status)
		}
		return nil
	},
}

var testProviderCmd = &cobra.Command{
	Use:   "test <provider>",
	Short: "Send a tiny request to check a provider's credentials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(args[0])
		fmt.Printf("Testing %s...\n", name)
		if err := currentApp(cmd).Gateway.TestConnection(cmd.Context(), name); err != nil {
			return err
		}
		fmt.Printf("✓ %s connection OK\n", name)
		return nil
	},
}

var compareProvidersCmd = &cobra.Command{
	Use:   "compare <prompt>",
	Short: "Run a prompt on every configured provider",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := currentApp(cmd).Gateway.Compare(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		for _, r := range results {
			fmt.Println(titleStyle.Render(fmt.Sprintf("%s (%s)", r.Provider, r.ModelUsed)))
			if !r.Success {
				fmt.Println(errorStyle.Render("failed: " + r.Error))
				continue
			}
			fmt.Println(r.Content)
			fmt.Printf("\n%s %d\n", labelStyle.Render("Tokens:"), r.TokensUsed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
	providersCmd.AddCommand(testProviderCmd)
	providersCmd.AddCommand(compareProvidersCmd)
}
