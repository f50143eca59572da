package main

import (
	"os"
	"os/signal"

	"github.com/dangerclosesec/polar/internal/server"
	"github.com/spf13/cobra"
)

var port string

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (defaults to SERVER_PORT)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP parse service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port != "" {
			cfg.Server.Port = port
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return server.Run(ctx, cfg, logger)
	},
}
