package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globals holds the persistent flags and the configuration they resolve to.
type globals struct {
	configPath string
	logLevel   string
	debug      bool

	cfg waypoint.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "waypoint",
		Short: "Deep-link router and coordinator tree",
		Long: `Waypoint resolves custom-scheme URLs and universal links into routes
and dispatches them through a tree of navigation coordinators.

  • parse   show the route a URL resolves to
  • open    dispatch URLs and print the resulting screens and tree
  • serve   receive universal links over HTTP
  • config  write a default configuration file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			waypoint.Close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to a TOML config file (default $WAYPOINT_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Log router and coordinator internals")

	rootCmd.AddCommand(
		parseCmd(g),
		openCmd(g),
		serveCmd(g),
		configCmd(g),
		versionCmd(),
	)

	return rootCmd
}

func (g *globals) load() error {
	cfg, err := waypoint.LoadConfig(g.configPath)
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	g.cfg = cfg

	waypoint.Init(waypoint.Options{
		LogPath:  cfg.Log.Path,
		LogLevel: cfg.Log.Level,
		Debug:    g.debug,
	})
	return nil
}

// startApp builds and starts an App from the loaded configuration.
func (g *globals) startApp() (*waypoint.App, error) {
	app, err := waypoint.New(g.cfg)
	if err != nil {
		return nil, err
	}
	if err := app.Start(); err != nil {
		return nil, err
	}
	return app, nil
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
