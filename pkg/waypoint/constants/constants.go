// Package constants defines shared constants and configuration defaults
// used throughout waypoint.
package constants

import "os"

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names.
const (
	ConfigPathEnvVar = "WAYPOINT_CONFIG"
	LogLevelEnvVar   = "WAYPOINT_LOG_LEVEL"
	// DebugEnvVar turns on debug logging for the router and coordinator tree.
	DebugEnvVar = "WAYPOINT_DEBUG"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Defaults used when no configuration file is present.
const (
	DefaultScheme        = "myapp"
	DefaultDomain        = "shop.example.com"
	DefaultLanguage      = "en"
	DefaultServerAddress = ":8080"
	DefaultLogLevel      = "info"
)

// ActivityTypeBrowsingWeb is the activity type carrying a universal link.
const ActivityTypeBrowsingWeb = "browsing-web"
