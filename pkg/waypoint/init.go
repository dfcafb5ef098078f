// Package waypoint wires a deep-link router, a coordinator tree and a
// navigation context into a single App.
//
// A typical host loads a Config, calls Init to set up logging, builds an App
// and starts it, then feeds it every URL or universal-link activity the
// platform delivers:
//
//	cfg, err := waypoint.LoadConfig("")
//	if err != nil {
//		return err
//	}
//	waypoint.Init(waypoint.Options{LogPath: cfg.Log.Path, LogLevel: cfg.Log.Level})
//	defer waypoint.Close()
//
//	app, err := waypoint.New(cfg)
//	if err != nil {
//		return err
//	}
//	if err := app.Start(); err != nil {
//		return err
//	}
//	handled, err := app.HandleURL("myapp://products/42/reviews")
package waypoint

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
)

// Options configures logging for the process.
type Options struct {
	LogPath  string // Full path for the log file including filename (creates parent directories)
	LogLevel string // Application log level: debug, info, warn or error
	Debug    bool   // Log router and coordinator internals at debug level
}

// Init sets up the application and internal loggers.
// Call it once, before building an App.
// If WAYPOINT_DEBUG is set or ENVIRONMENT=DEV, internal logging is at debug level regardless of options.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if options.Debug || os.Getenv(constants.DebugEnvVar) != "" || constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}
}

// Close flushes and closes the log file, if one was opened.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
