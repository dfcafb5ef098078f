package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/server"
)

func serveCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Receive universal links over HTTP",
		Long: `Serve universal links for the configured domains. Each GET request is
dispatched as a browsing-web activity and answered with the resulting route.
The apple-app-site-association file is served for the configured app ids.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.startApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if addr == "" {
				addr = g.cfg.Server.Address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd, "serving universal links on %s", addr)
			return server.New(app, g.cfg.Server.AppIDs).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}
