package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func openCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open URL...",
		Short: "Dispatch URLs in order and print the resulting state",
		Long: `Start the app, dispatch each URL as if the platform had delivered it,
then print the navigation stack and the coordinator tree.

Examples:
  waypoint open myapp://products/42 myapp://products/99/reviews`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.startApp()
			if err != nil {
				return err
			}
			defer app.Close()

			for _, raw := range args {
				handled, err := app.HandleURL(raw)
				if err != nil {
					return err
				}
				if handled {
					success(cmd, "%s", raw)
				} else {
					warn(cmd, "%s not handled", raw)
				}
			}

			out := cmd.OutOrStdout()
			screens := make([]string, 0)
			for _, s := range app.Screens() {
				screens = append(screens, s.String())
			}
			fmt.Fprintf(out, "\nscreens: %s\n\n", strings.Join(screens, " > "))
			fmt.Fprint(out, app.Tree())
			return nil
		},
	}

	return cmd
}
