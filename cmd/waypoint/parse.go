package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

func parseCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse URL...",
		Short: "Print the route each URL resolves to",
		Long: `Parse URLs without dispatching them and print each route as JSON.

Examples:
  waypoint parse myapp://products/42/reviews
  waypoint parse "https://shop.example.com/profile/ada?tab=orders"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := waypoint.New(g.cfg)
			if err != nil {
				return err
			}

			for _, raw := range args {
				rt, err := app.Parse(raw)
				if err != nil {
					warn(cmd, "%s", err)
					continue
				}

				data, err := json.MarshalIndent(rt, "", "  ")
				if err != nil {
					return fmt.Errorf("encode route: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))

				if rt.Kind() == route.KindNone {
					if s, ok := app.Router().Suggest(raw); ok {
						info(cmd, "did you mean %q?", s)
					}
				}
			}
			return nil
		},
	}

	return cmd
}
