package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/khrees2412/proposly/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Example: `  proposly serve
  proposly serve --addr 127.0.0.1:9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := currentApp(cmd)

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = a.Config.Server.Addr
		}
		if !a.Config.Log.Debug {
			gin.SetMode(gin.ReleaseMode)
		}

		router := server.NewRouter(server.RouterConfig{
			ProposalHandler: server.NewProposalHandler(a.Proposals, a.Feedback),
			ProviderHandler: server.NewProviderHandler(a.Gateway),
			Logger:          a.Logger,
		})
		return server.New(addr, router, a.Logger).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (defaults to server.addr from the config)")
}
