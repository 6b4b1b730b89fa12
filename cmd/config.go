package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khrees2412/proposly/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		a := currentApp(cmd)
		cfg := a.Config

		fmt.Println(titleStyle.Render("Configuration"))
		printField("Config File:", a.ConfigPath)
		printField("Database:", cfg.Database.Path)
		printField("Default Provider:", cfg.AI.DefaultProvider)
		printField("Temperature:", fmt.Sprintf("%.2f", cfg.AI.Temperature))
		printField("Timeout:", cfg.AI.Timeout.String())
		printField("Daily Limit:", fmt.Sprintf("%d", cfg.Generation.DailyLimit))
		printField("Server Address:", cfg.Server.Addr)

		// Only report whether keys are set, never the keys themselves
		providers := []struct {
			name string
			cfg  config.ProviderConfig
		}{
			{"Claude", cfg.AI.Claude},
			{"OpenAI", cfg.AI.OpenAI},
			{"Gemini", cfg.AI.Gemini},
		}
		for _, p := range providers {
			status := "✗ Not configured"
			if p.cfg.Configured() {
				status = "✓ Configured"
			}
			fmt.Printf("%s %s %s\n", labelStyle.Render(p.name+" Key:"), status, valueStyle.Render("("+p.cfg.Model+")"))
		}
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  proposly config set --key ai.claude.api_key --value sk-ant-...
  proposly config set --key ai.default_provider --value gemini
  proposly config set --key generation.daily_limit --value 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("both --key and --value are required")
		}

		if err := config.Set(currentApp(cmd).ConfigPath, key, value); err != nil {
			return fmt.Errorf("update config: %w", err)
		}

		fmt.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
